package repositories

import (
	"context"

	"github.com/google/uuid"
	"legalease.backend/internal/domain/entities"
	"legalease.backend/pkg/utils"
)

// ContractGuard is the stored state a conditional update requires.
// Zero-valued fields are not checked.
type ContractGuard struct {
	Statuses        []entities.ContractStatus
	PaymentStatuses []entities.ContractPaymentStatus
	UserID          *uuid.UUID
	Unassigned      bool
}

// ContractChanges lists the columns to write. Nil fields are left untouched.
type ContractChanges struct {
	Status          *entities.ContractStatus
	PaymentStatus   *entities.ContractPaymentStatus
	LawyerID        *uuid.UUID
	Title           *string
	OriginalFileURL *string
	ReviewedFileURL *string
	PaymentID       *string
}

// ContractRepository defines contract data operations
type ContractRepository interface {
	Create(ctx context.Context, contract *entities.Contract) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Contract, error)
	// Update applies changes only while the row matches guard; ErrInvalidState otherwise
	Update(ctx context.Context, id uuid.UUID, guard ContractGuard, changes ContractChanges) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter entities.ContractFilter, pagination utils.PaginationParams) ([]*entities.Contract, int64, error)
}
