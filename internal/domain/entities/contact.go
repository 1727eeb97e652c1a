package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ContactMessage is a message left through the public contact form
type ContactMessage struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Company   null.String `json:"company"`
	Email     string      `json:"email"`
	Phone     null.String `json:"phone"`
	Service   null.String `json:"service"`
	Message   string      `json:"message"`
	CreatedAt time.Time   `json:"created_at"`
}

// ContactInput is the public contact form payload
type ContactInput struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message"`
}
