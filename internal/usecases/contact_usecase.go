package usecases

import (
	"context"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"legalease.backend/internal/domain/entities"
	domainerrors "legalease.backend/internal/domain/errors"
	"legalease.backend/internal/domain/repositories"
	"legalease.backend/pkg/logger"
	"legalease.backend/pkg/utils"
)

const maxContactMessageLength = 5000

// ContactUsecase stores contact form messages and forwards them to admins
type ContactUsecase struct {
	contactRepo repositories.ContactMessageRepository
	notifier    Notifier
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(contactRepo repositories.ContactMessageRepository, notifier Notifier) *ContactUsecase {
	return &ContactUsecase{contactRepo: contactRepo, notifier: notifier}
}

// Submit validates and stores a contact message
func (u *ContactUsecase) Submit(ctx context.Context, input *entities.ContactInput) (*entities.ContactMessage, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	message := strings.TrimSpace(input.Message)
	if name == "" || email == "" || message == "" {
		return nil, domainerrors.BadRequest("Name, email, and message are required")
	}
	if !govalidator.IsEmail(email) {
		return nil, domainerrors.BadRequest("Invalid email address")
	}
	if len(message) > maxContactMessageLength {
		return nil, domainerrors.BadRequest("Message is too long")
	}

	msg := &entities.ContactMessage{
		ID:      utils.GenerateUUIDv7(),
		Name:    name,
		Company: optional(input.Company),
		Email:   email,
		Phone:   optional(input.Phone),
		Service: optional(input.Service),
		Message: message,
	}
	if err := u.contactRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Contact message received", zap.String("message_id", msg.ID.String()))
	u.notifier.NotifyAdmins(ctx, TemplateContactMessage, map[string]interface{}{
		"name":    msg.Name,
		"email":   msg.Email,
		"company": msg.Company.String,
		"phone":   msg.Phone.String,
		"service": msg.Service.String,
		"message": msg.Message,
	})
	return msg, nil
}

func optional(s string) null.String {
	s = strings.TrimSpace(s)
	return null.NewString(s, s != "")
}
