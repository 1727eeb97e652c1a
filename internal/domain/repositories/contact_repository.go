package repositories

import (
	"context"

	"legalease.backend/internal/domain/entities"
)

// ContactMessageRepository stores contact form messages
type ContactMessageRepository interface {
	Create(ctx context.Context, msg *entities.ContactMessage) error
}
