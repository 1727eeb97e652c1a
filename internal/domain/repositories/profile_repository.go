package repositories

import (
	"context"

	"github.com/google/uuid"
	"legalease.backend/internal/domain/entities"
	"legalease.backend/pkg/utils"
)

// ProfileRepository defines profile data operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *entities.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entities.Profile, error)
	UpdateFullName(ctx context.Context, id uuid.UUID, fullName string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error
	SetKYCCompleted(ctx context.Context, id uuid.UUID, completed bool) error
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
	ListByRole(ctx context.Context, role entities.UserRole) ([]*entities.Profile, error)
	List(ctx context.Context, search string, pagination utils.PaginationParams) ([]*entities.Profile, int64, error)
}
