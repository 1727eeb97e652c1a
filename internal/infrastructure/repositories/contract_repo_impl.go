package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"legalease.backend/internal/domain/entities"
	domainerrors "legalease.backend/internal/domain/errors"
	domainRepos "legalease.backend/internal/domain/repositories"
	"legalease.backend/internal/infrastructure/models"
	"legalease.backend/pkg/utils"
)

// ContractRepository implements contract data operations
type ContractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new contract repository
func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// Create creates a new contract
func (r *ContractRepository) Create(ctx context.Context, contract *entities.Contract) error {
	m := &models.Contract{
		ID:              contract.ID,
		UserID:          contract.UserID,
		LawyerID:        contract.LawyerID,
		Title:           contract.Title,
		OriginalFileURL: stringPtr(contract.OriginalFileURL),
		ReviewedFileURL: stringPtr(contract.ReviewedFileURL),
		Status:          string(contract.Status),
		PricingTier:     string(contract.PricingTier),
		PaymentID:       stringPtr(contract.PaymentID),
		PaymentStatus:   string(contract.PaymentStatus),
		Notes:           stringPtr(contract.Notes),
		CreatedAt:       contract.CreatedAt,
		UpdatedAt:       contract.UpdatedAt,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	contract.CreatedAt, contract.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

// GetByID gets a contract by ID
func (r *ContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Contract, error) {
	var m models.Contract
	if err := readDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return r.toEntity(&m), nil
}

// Update writes changes in one conditional statement. When no row matches
// the guard it tells a missing contract apart from a state mismatch.
func (r *ContractRepository) Update(ctx context.Context, id uuid.UUID, guard domainRepos.ContractGuard, changes domainRepos.ContractChanges) error {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if changes.Status != nil {
		updates["status"] = string(*changes.Status)
	}
	if changes.PaymentStatus != nil {
		updates["payment_status"] = string(*changes.PaymentStatus)
	}
	if changes.LawyerID != nil {
		updates["lawyer_id"] = *changes.LawyerID
	}
	if changes.Title != nil {
		updates["title"] = *changes.Title
	}
	if changes.OriginalFileURL != nil {
		updates["original_file_url"] = *changes.OriginalFileURL
	}
	if changes.ReviewedFileURL != nil {
		updates["reviewed_file_url"] = *changes.ReviewedFileURL
	}
	if changes.PaymentID != nil {
		updates["payment_id"] = *changes.PaymentID
	}

	db := GetDB(ctx, r.db)
	query := db.Model(&models.Contract{}).Where("id = ?", id)
	if len(guard.Statuses) > 0 {
		query = query.Where("status IN ?", statusStrings(guard.Statuses))
	}
	if len(guard.PaymentStatuses) > 0 {
		ps := make([]string, 0, len(guard.PaymentStatuses))
		for _, s := range guard.PaymentStatuses {
			ps = append(ps, string(s))
		}
		query = query.Where("payment_status IN ?", ps)
	}
	if guard.UserID != nil {
		query = query.Where("user_id = ?", *guard.UserID)
	}
	if guard.Unassigned {
		query = query.Where("lawyer_id IS NULL")
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&models.Contract{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrNotFound
	}
	return domainerrors.ErrInvalidState
}

// Delete removes a contract row
func (r *ContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Delete(&models.Contract{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists contracts matching filter, newest first.
// UserID and LawyerID together match either side.
func (r *ContractRepository) List(ctx context.Context, filter entities.ContractFilter, pagination utils.PaginationParams) ([]*entities.Contract, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.Contract{})
	switch {
	case filter.UserID != nil && filter.LawyerID != nil:
		query = query.Where("user_id = ? OR lawyer_id = ?", *filter.UserID, *filter.LawyerID)
	case filter.UserID != nil:
		query = query.Where("user_id = ?", *filter.UserID)
	case filter.LawyerID != nil:
		query = query.Where("lawyer_id = ?", *filter.LawyerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}

	var rows []models.Contract
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.Contract, 0, len(rows))
	for i := range rows {
		items = append(items, r.toEntity(&rows[i]))
	}
	return items, total, nil
}

func statusStrings(list []entities.ContractStatus) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, string(s))
	}
	return out
}

func (r *ContractRepository) toEntity(m *models.Contract) *entities.Contract {
	return &entities.Contract{
		ID:              m.ID,
		UserID:          m.UserID,
		LawyerID:        m.LawyerID,
		Title:           m.Title,
		OriginalFileURL: nullString(m.OriginalFileURL),
		ReviewedFileURL: nullString(m.ReviewedFileURL),
		Status:          entities.ContractStatus(m.Status),
		PricingTier:     entities.PricingTier(m.PricingTier),
		PaymentID:       nullString(m.PaymentID),
		PaymentStatus:   entities.ContractPaymentStatus(m.PaymentStatus),
		Notes:           nullString(m.Notes),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
