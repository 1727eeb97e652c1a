package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"legalease.backend/internal/domain/entities"
	domainerrors "legalease.backend/internal/domain/errors"
	"legalease.backend/internal/domain/repositories"
	"legalease.backend/pkg/logger"
	"legalease.backend/pkg/utils"
)

// AdminUsecase handles profile administration
type AdminUsecase struct {
	profileRepo repositories.ProfileRepository
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(profileRepo repositories.ProfileRepository) *AdminUsecase {
	return &AdminUsecase{profileRepo: profileRepo}
}

// ListLawyers returns every profile with the lawyer role
func (u *AdminUsecase) ListLawyers(ctx context.Context) ([]*entities.Profile, error) {
	return u.profileRepo.ListByRole(ctx, entities.UserRoleLawyer)
}

// ListUsers searches profiles by email or name
func (u *AdminUsecase) ListUsers(ctx context.Context, search string, pagination utils.PaginationParams) ([]*entities.Profile, int64, error) {
	return u.profileRepo.List(ctx, search, pagination)
}

// SetRole changes a profile's role. Admins cannot change their own role.
func (u *AdminUsecase) SetRole(ctx context.Context, actor Actor, userID uuid.UUID, role entities.UserRole) (*entities.Profile, error) {
	if !role.Valid() {
		return nil, domainerrors.BadRequest("Invalid role")
	}
	if actor.ID == userID {
		return nil, domainerrors.BadRequest("You cannot change your own role")
	}

	if err := u.profileRepo.SetRole(ctx, userID, role); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, err
	}

	logger.LogAuthEvent(ctx, "role_changed",
		zap.String("user_id", userID.String()),
		zap.String("role", string(role)),
		zap.String("actor_id", actor.ID.String()),
	)
	return u.profileRepo.GetByID(ctx, userID)
}
