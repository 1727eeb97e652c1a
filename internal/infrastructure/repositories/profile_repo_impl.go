package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"legalease.backend/internal/domain/entities"
	domainerrors "legalease.backend/internal/domain/errors"
	"legalease.backend/internal/infrastructure/models"
	"legalease.backend/pkg/utils"
)

// ProfileRepository implements profile data operations
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create creates a new profile. Emails are stored lower-cased.
func (r *ProfileRepository) Create(ctx context.Context, profile *entities.Profile) error {
	m := &models.Profile{
		ID:            profile.ID,
		Email:         strings.ToLower(strings.TrimSpace(profile.Email)),
		FullName:      stringPtr(profile.FullName),
		Role:          string(profile.Role),
		KYCCompleted:  profile.KYCCompleted,
		EmailVerified: profile.EmailVerified,
		CreatedAt:     profile.CreatedAt,
		UpdatedAt:     profile.UpdatedAt,
	}
	if profile.PasswordHash != "" {
		hash := profile.PasswordHash
		m.PasswordHash = &hash
	}
	if m.Role == "" {
		m.Role = string(entities.UserRoleUser)
	}

	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	profile.Role = entities.UserRole(m.Role)
	profile.CreatedAt, profile.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

// GetByID gets a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	var m models.Profile
	if err := readDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return r.toEntity(&m), nil
}

// GetByEmail gets a profile by email, case-insensitively
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*entities.Profile, error) {
	var m models.Profile
	email = strings.ToLower(strings.TrimSpace(email))
	if err := GetDB(ctx, r.db).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return r.toEntity(&m), nil
}

// UpdateFullName sets the display name
func (r *ProfileRepository) UpdateFullName(ctx context.Context, id uuid.UUID, fullName string) error {
	return r.update(ctx, id, map[string]interface{}{"full_name": fullName})
}

// UpdatePassword replaces the stored password hash
func (r *ProfileRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.update(ctx, id, map[string]interface{}{"password_hash": passwordHash})
}

// SetRole changes a profile's role
func (r *ProfileRepository) SetRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error {
	return r.update(ctx, id, map[string]interface{}{"role": string(role)})
}

// SetKYCCompleted flips the KYC flag
func (r *ProfileRepository) SetKYCCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	return r.update(ctx, id, map[string]interface{}{"kyc_completed": completed})
}

// MarkEmailVerified records a confirmed email address
func (r *ProfileRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	return r.update(ctx, id, map[string]interface{}{"email_verified": true})
}

func (r *ProfileRepository) update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := GetDB(ctx, r.db).Model(&models.Profile{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByRole returns every profile holding role
func (r *ProfileRepository) ListByRole(ctx context.Context, role entities.UserRole) ([]*entities.Profile, error) {
	var rows []models.Profile
	if err := GetDB(ctx, r.db).Where("role = ?", string(role)).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.toEntities(rows), nil
}

// List lists profiles with optional search filter on email and name
func (r *ProfileRepository) List(ctx context.Context, search string, pagination utils.PaginationParams) ([]*entities.Profile, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.Profile{})
	if search = strings.TrimSpace(search); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(COALESCE(full_name, '')) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}

	var rows []models.Profile
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return r.toEntities(rows), total, nil
}

func (r *ProfileRepository) toEntities(rows []models.Profile) []*entities.Profile {
	items := make([]*entities.Profile, 0, len(rows))
	for i := range rows {
		items = append(items, r.toEntity(&rows[i]))
	}
	return items
}

func (r *ProfileRepository) toEntity(m *models.Profile) *entities.Profile {
	p := &entities.Profile{
		ID:            m.ID,
		Email:         m.Email,
		FullName:      nullString(m.FullName),
		Role:          entities.UserRole(m.Role),
		KYCCompleted:  m.KYCCompleted,
		EmailVerified: m.EmailVerified,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.PasswordHash != nil {
		p.PasswordHash = *m.PasswordHash
	}
	return p
}
