package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"legalease.backend/internal/domain/entities"
	domainerrors "legalease.backend/internal/domain/errors"
	"legalease.backend/internal/infrastructure/models"
)

// PaymentRepository implements payment data operations
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create creates a new payment; references are unique
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	m := &models.Payment{
		ID:                payment.ID,
		UserID:            payment.UserID,
		ContractID:        payment.ContractID,
		Amount:            payment.Amount,
		Currency:          payment.Currency,
		PaystackReference: payment.PaystackReference,
		Status:            string(payment.Status),
		CreatedAt:         payment.CreatedAt,
		UpdatedAt:         payment.UpdatedAt,
	}
	if m.Currency == "" {
		m.Currency = entities.CurrencyNGN
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	payment.Currency = m.Currency
	payment.CreatedAt, payment.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

// GetByReference gets a payment by its gateway reference
func (r *PaymentRepository) GetByReference(ctx context.Context, reference string) (*entities.Payment, error) {
	var m models.Payment
	if err := readDB(ctx, r.db).Where("paystack_reference = ?", reference).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return r.toEntity(&m), nil
}

// UpdateStatus moves a payment to status when it currently sits in one of from
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus, from ...entities.PaymentStatus) error {
	db := GetDB(ctx, r.db)
	query := db.Model(&models.Payment{}).Where("id = ?", id)
	if len(from) > 0 {
		allowed := make([]string, 0, len(from))
		for _, s := range from {
			allowed = append(allowed, string(s))
		}
		query = query.Where("status IN ?", allowed)
	}

	result := query.Updates(map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&models.Payment{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrNotFound
	}
	return domainerrors.ErrInvalidState
}

// ListByContract lists the payments attached to a contract
func (r *PaymentRepository) ListByContract(ctx context.Context, contractID uuid.UUID) ([]*entities.Payment, error) {
	var rows []models.Payment
	if err := GetDB(ctx, r.db).Where("contract_id = ?", contractID).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Payment, 0, len(rows))
	for i := range rows {
		items = append(items, r.toEntity(&rows[i]))
	}
	return items, nil
}

// DeleteByContract removes every payment of a contract. Zero rows is not an error.
func (r *PaymentRepository) DeleteByContract(ctx context.Context, contractID uuid.UUID) error {
	return GetDB(ctx, r.db).Where("contract_id = ?", contractID).Delete(&models.Payment{}).Error
}

func (r *PaymentRepository) toEntity(m *models.Payment) *entities.Payment {
	return &entities.Payment{
		ID:                m.ID,
		UserID:            m.UserID,
		ContractID:        m.ContractID,
		Amount:            m.Amount,
		Currency:          m.Currency,
		PaystackReference: m.PaystackReference,
		Status:            entities.PaymentStatus(m.Status),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
