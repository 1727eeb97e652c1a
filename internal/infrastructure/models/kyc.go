package models

import (
	"time"

	"github.com/google/uuid"
)

type KYCData struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	FirstName       string     `gorm:"type:varchar(100);not null"`
	LastName        string     `gorm:"type:varchar(100);not null"`
	PhoneNumber     string     `gorm:"type:varchar(32);not null"`
	Address         string     `gorm:"type:varchar(255);not null"`
	City            string     `gorm:"type:varchar(100);not null"`
	State           string     `gorm:"type:varchar(100);not null"`
	Country         string     `gorm:"type:varchar(100);not null"`
	IDType          string     `gorm:"column:id_type;type:varchar(32);not null"`
	IDNumber        string     `gorm:"column:id_number;type:varchar(64);not null"`
	IDDocumentURL   *string    `gorm:"column:id_document_url;type:text"`
	TermsAccepted   bool       `gorm:"not null;default:false"`
	PrivacyAccepted bool       `gorm:"not null;default:false"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	ReviewedBy      *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (KYCData) TableName() string {
	return "kyc_data"
}
