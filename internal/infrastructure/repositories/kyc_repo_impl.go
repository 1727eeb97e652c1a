package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"legalease.backend/internal/domain/entities"
	domainerrors "legalease.backend/internal/domain/errors"
	domainRepos "legalease.backend/internal/domain/repositories"
	"legalease.backend/internal/infrastructure/models"
	"legalease.backend/pkg/utils"
)

// KYCRepository implements KYC submission data operations
type KYCRepository struct {
	db *gorm.DB
}

// NewKYCRepository creates a new KYC repository
func NewKYCRepository(db *gorm.DB) *KYCRepository {
	return &KYCRepository{db: db}
}

// Create stores a first submission for a user
func (r *KYCRepository) Create(ctx context.Context, kyc *entities.KYCData) error {
	m := r.toModel(kyc)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	kyc.CreatedAt, kyc.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

// GetByUserID gets the submission belonging to a user
func (r *KYCRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.KYCData, error) {
	var m models.KYCData
	if err := readDB(ctx, r.db).Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return r.toEntity(&m), nil
}

// Resubmit overwrites a rejected submission and resets its review
func (r *KYCRepository) Resubmit(ctx context.Context, kyc *entities.KYCData) error {
	updates := map[string]interface{}{
		"first_name":       kyc.FirstName,
		"last_name":        kyc.LastName,
		"phone_number":     kyc.PhoneNumber,
		"address":          kyc.Address,
		"city":             kyc.City,
		"state":            kyc.State,
		"country":          kyc.Country,
		"id_type":          string(kyc.IDType),
		"id_number":        kyc.IDNumber,
		"id_document_url":  stringPtr(kyc.IDDocumentURL),
		"terms_accepted":   kyc.TermsAccepted,
		"privacy_accepted": kyc.PrivacyAccepted,
		"status":           string(entities.KYCPending),
		"reviewed_by":      nil,
		"reviewed_at":      nil,
		"rejection_reason": nil,
		"updated_at":       time.Now(),
	}
	result := GetDB(ctx, r.db).Model(&models.KYCData{}).
		Where("user_id = ? AND status = ?", kyc.UserID, string(entities.KYCRejected)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInvalidState
	}
	return nil
}

// Review records an admin decision
func (r *KYCRepository) Review(ctx context.Context, userID uuid.UUID, review domainRepos.KYCReview) error {
	updates := map[string]interface{}{
		"status":      string(review.Status),
		"reviewed_by": review.ReviewedBy,
		"reviewed_at": review.ReviewedAt,
		"updated_at":  time.Now(),
	}
	if review.RejectionReason != "" {
		updates["rejection_reason"] = review.RejectionReason
	} else {
		updates["rejection_reason"] = nil
	}

	result := GetDB(ctx, r.db).Model(&models.KYCData{}).Where("user_id = ?", userID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List returns submissions, optionally filtered by status, newest first
func (r *KYCRepository) List(ctx context.Context, status entities.KYCStatus, pagination utils.PaginationParams) ([]*entities.KYCData, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.KYCData{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}

	var rows []models.KYCData
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.KYCData, 0, len(rows))
	for i := range rows {
		items = append(items, r.toEntity(&rows[i]))
	}
	return items, total, nil
}

func (r *KYCRepository) toModel(k *entities.KYCData) *models.KYCData {
	return &models.KYCData{
		ID:              k.ID,
		UserID:          k.UserID,
		FirstName:       k.FirstName,
		LastName:        k.LastName,
		PhoneNumber:     k.PhoneNumber,
		Address:         k.Address,
		City:            k.City,
		State:           k.State,
		Country:         k.Country,
		IDType:          string(k.IDType),
		IDNumber:        k.IDNumber,
		IDDocumentURL:   stringPtr(k.IDDocumentURL),
		TermsAccepted:   k.TermsAccepted,
		PrivacyAccepted: k.PrivacyAccepted,
		Status:          string(k.Status),
		ReviewedBy:      k.ReviewedBy,
		ReviewedAt:      timePtr(k.ReviewedAt),
		RejectionReason: stringPtr(k.RejectionReason),
		CreatedAt:       k.CreatedAt,
		UpdatedAt:       k.UpdatedAt,
	}
}

func (r *KYCRepository) toEntity(m *models.KYCData) *entities.KYCData {
	return &entities.KYCData{
		ID:              m.ID,
		UserID:          m.UserID,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		PhoneNumber:     m.PhoneNumber,
		Address:         m.Address,
		City:            m.City,
		State:           m.State,
		Country:         m.Country,
		IDType:          entities.IDType(m.IDType),
		IDNumber:        m.IDNumber,
		IDDocumentURL:   nullString(m.IDDocumentURL),
		TermsAccepted:   m.TermsAccepted,
		PrivacyAccepted: m.PrivacyAccepted,
		Status:          entities.KYCStatus(m.Status),
		ReviewedBy:      m.ReviewedBy,
		ReviewedAt:      null.TimeFromPtr(m.ReviewedAt),
		RejectionReason: nullString(m.RejectionReason),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
