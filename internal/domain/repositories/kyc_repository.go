package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"legalease.backend/internal/domain/entities"
	"legalease.backend/pkg/utils"
)

// KYCReview is an admin decision to persist
type KYCReview struct {
	Status          entities.KYCStatus
	ReviewedBy      uuid.UUID
	ReviewedAt      time.Time
	RejectionReason string
}

// KYCRepository defines KYC submission data operations
type KYCRepository interface {
	Create(ctx context.Context, kyc *entities.KYCData) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.KYCData, error)
	// Resubmit replaces a rejected submission; ErrInvalidState if it is not rejected
	Resubmit(ctx context.Context, kyc *entities.KYCData) error
	Review(ctx context.Context, userID uuid.UUID, review KYCReview) error
	List(ctx context.Context, status entities.KYCStatus, pagination utils.PaginationParams) ([]*entities.KYCData, int64, error)
}
