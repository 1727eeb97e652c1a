package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents a Paystack charge outcome
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// CurrencyNGN is the only settlement currency
const CurrencyNGN = "NGN"

// Payment is a single Paystack transaction for a contract
type Payment struct {
	ID                uuid.UUID     `json:"id"`
	UserID            uuid.UUID     `json:"user_id"`
	ContractID        uuid.UUID     `json:"contract_id"`
	Amount            int64         `json:"amount"`
	Currency          string        `json:"currency"`
	PaystackReference string        `json:"paystack_reference"`
	Status            PaymentStatus `json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// AmountInKobo converts the whole-naira amount to the gateway's minor unit
func (p *Payment) AmountInKobo() int64 {
	return p.Amount * 100
}

// PaymentReference builds the reference sent to Paystack for a contract checkout
func PaymentReference(contractID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("contract-%s-%d", contractID, at.UnixMilli())
}

// InitializePaymentInput is the direct gateway initialize payload
type InitializePaymentInput struct {
	Email     string                 `json:"email" binding:"required,email"`
	Amount    int64                  `json:"amount" binding:"required,gt=0"`
	Reference string                 `json:"reference" binding:"required"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// PaymentInitialization is the gateway's answer to initialize
type PaymentInitialization struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// PaymentVerification is the gateway's view of a transaction
type PaymentVerification struct {
	Reference       string    `json:"reference"`
	Status          string    `json:"status"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	GatewayResponse string    `json:"gateway_response"`
	CustomerEmail   string    `json:"customer_email"`
	PaidAt          time.Time `json:"paid_at"`
}

// GatewayEvent is a verified Paystack webhook event
type GatewayEvent struct {
	Event           string
	Reference       string
	Amount          int64
	CustomerEmail   string
	GatewayResponse string
}

// Paystack webhook event names
const (
	EventChargeSuccess = "charge.success"
	EventChargeFailed  = "charge.failed"
)
