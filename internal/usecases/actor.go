package usecases

import (
	"github.com/google/uuid"
	"legalease.backend/internal/domain/entities"
)

// Actor is the authenticated caller of an operation
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  entities.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == entities.UserRoleAdmin
}
