package repositories

import (
	"context"

	"gorm.io/gorm"
	"legalease.backend/internal/domain/entities"
	"legalease.backend/internal/infrastructure/models"
)

// ContactMessageRepository stores contact form submissions
type ContactMessageRepository struct {
	db *gorm.DB
}

func NewContactMessageRepository(db *gorm.DB) *ContactMessageRepository {
	return &ContactMessageRepository{db: db}
}

func (r *ContactMessageRepository) Create(ctx context.Context, msg *entities.ContactMessage) error {
	m := &models.ContactMessage{
		ID:        msg.ID,
		Name:      msg.Name,
		Company:   stringPtr(msg.Company),
		Email:     msg.Email,
		Phone:     stringPtr(msg.Phone),
		Service:   stringPtr(msg.Service),
		Message:   msg.Message,
		CreatedAt: msg.CreatedAt,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	msg.CreatedAt = m.CreatedAt
	return nil
}
