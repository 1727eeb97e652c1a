package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index"`
	ContractID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount            int64     `gorm:"not null"`
	Currency          string    `gorm:"type:varchar(3);not null;default:'NGN'"`
	PaystackReference string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Status            string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Payment) TableName() string {
	return "payments"
}
