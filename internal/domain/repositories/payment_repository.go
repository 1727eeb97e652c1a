package repositories

import (
	"context"

	"github.com/google/uuid"
	"legalease.backend/internal/domain/entities"
)

// PaymentRepository defines payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	GetByReference(ctx context.Context, reference string) (*entities.Payment, error)
	// UpdateStatus moves a payment to status if it is currently one of from; ErrInvalidState otherwise
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus, from ...entities.PaymentStatus) error
	ListByContract(ctx context.Context, contractID uuid.UUID) ([]*entities.Payment, error)
	DeleteByContract(ctx context.Context, contractID uuid.UUID) error
}
