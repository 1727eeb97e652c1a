package models

import (
	"time"

	"github.com/google/uuid"
)

type ContactMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(120);not null"`
	Company   *string   `gorm:"type:varchar(120)"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Phone     *string   `gorm:"type:varchar(32)"`
	Service   *string   `gorm:"type:varchar(64)"`
	Message   string    `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}

// All lists every persisted model, in dependency order
func All() []interface{} {
	return []interface{}{
		&Profile{},
		&KYCData{},
		&Contract{},
		&Payment{},
		&ContactMessage{},
	}
}
