package models

import (
	"time"

	"github.com/google/uuid"
)

type Contract struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	LawyerID        *uuid.UUID `gorm:"type:uuid;index"`
	Title           string     `gorm:"type:varchar(255);not null"`
	OriginalFileURL *string    `gorm:"type:text"`
	ReviewedFileURL *string    `gorm:"type:text"`
	Status          string     `gorm:"type:varchar(32);not null;index"`
	PricingTier     string     `gorm:"type:varchar(32);not null"`
	PaymentID       *string    `gorm:"type:varchar(255)"`
	PaymentStatus   string     `gorm:"type:varchar(20);not null;default:'pending'"`
	Notes           *string    `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Contract) TableName() string {
	return "contracts"
}
