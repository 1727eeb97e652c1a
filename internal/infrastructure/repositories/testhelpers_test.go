package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"legalease.backend/internal/domain/entities"
	"legalease.backend/internal/infrastructure/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, db.AutoMigrate(models.All()...), "migrate")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func seedProfile(t *testing.T, db *gorm.DB, email string, role entities.UserRole) *entities.Profile {
	t.Helper()
	now := time.Now()
	p := &entities.Profile{
		ID:        uuid.New(),
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, NewProfileRepository(db).Create(t.Context(), p))
	return p
}

func seedContract(t *testing.T, db *gorm.DB, userID uuid.UUID, status entities.ContractStatus) *entities.Contract {
	t.Helper()
	now := time.Now()
	c := &entities.Contract{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         "NDA Review",
		Status:        status,
		PricingTier:   entities.TierNDABasic,
		PaymentStatus: entities.ContractPaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, NewContractRepository(db).Create(t.Context(), c))
	return c
}
