package models

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName      *string   `gorm:"type:varchar(120)"`
	Role          string    `gorm:"type:varchar(20);not null;default:'user';index"`
	KYCCompleted  bool      `gorm:"column:kyc_completed;not null;default:false"`
	EmailVerified bool      `gorm:"not null;default:false"`
	PasswordHash  *string   `gorm:"type:varchar(255)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Profile) TableName() string {
	return "profiles"
}
