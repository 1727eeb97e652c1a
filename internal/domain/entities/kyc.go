package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// KYCStatus represents KYC verification status
type KYCStatus string

const (
	KYCPending  KYCStatus = "pending"
	KYCApproved KYCStatus = "approved"
	KYCRejected KYCStatus = "rejected"
)

// IDType is the kind of identity document submitted
type IDType string

const (
	IDTypeNIN            IDType = "nin"
	IDTypePassport       IDType = "passport"
	IDTypeDriversLicense IDType = "drivers_license"
)

// Valid reports whether t is an accepted document type
func (t IDType) Valid() bool {
	switch t {
	case IDTypeNIN, IDTypePassport, IDTypeDriversLicense:
		return true
	}
	return false
}

// KYCAction is an admin decision on a submission
type KYCAction string

const (
	KYCActionApprove KYCAction = "approve"
	KYCActionReject  KYCAction = "reject"
)

// Result is the status a submission ends in after the action
func (a KYCAction) Result() (KYCStatus, bool) {
	switch a {
	case KYCActionApprove:
		return KYCApproved, true
	case KYCActionReject:
		return KYCRejected, true
	}
	return "", false
}

// KYCData is a user's identity verification submission
type KYCData struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"user_id"`
	FirstName       string      `json:"first_name"`
	LastName        string      `json:"last_name"`
	PhoneNumber     string      `json:"phone_number"`
	Address         string      `json:"address"`
	City            string      `json:"city"`
	State           string      `json:"state"`
	Country         string      `json:"country"`
	IDType          IDType      `json:"id_type"`
	IDNumber        string      `json:"id_number"`
	IDDocumentURL   null.String `json:"id_document_url"`
	TermsAccepted   bool        `json:"terms_accepted"`
	PrivacyAccepted bool        `json:"privacy_accepted"`
	Status          KYCStatus   `json:"status"`
	ReviewedBy      *uuid.UUID  `json:"reviewed_by"`
	ReviewedAt      null.Time   `json:"reviewed_at"`
	RejectionReason null.String `json:"rejection_reason"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// FullName joins first and last name
func (k *KYCData) FullName() string {
	if k.LastName == "" {
		return k.FirstName
	}
	return k.FirstName + " " + k.LastName
}

// CanResubmit reports whether a new submission may replace this one
func (k *KYCData) CanResubmit() bool {
	return k.Status == KYCRejected
}

// SubmitKYCInput holds the multipart form fields of a KYC submission
type SubmitKYCInput struct {
	FirstName       string `form:"firstName" binding:"required,max=100"`
	LastName        string `form:"lastName" binding:"required,max=100"`
	PhoneNumber     string `form:"phoneNumber" binding:"required,max=32"`
	Address         string `form:"address" binding:"required,max=255"`
	City            string `form:"city" binding:"required,max=100"`
	State           string `form:"state" binding:"required,max=100"`
	Country         string `form:"country" binding:"required,max=100"`
	IDType          IDType `form:"idType" binding:"required"`
	IDNumber        string `form:"idNumber" binding:"required,max=64"`
	TermsAccepted   bool   `form:"termsAccepted"`
	PrivacyAccepted bool   `form:"privacyAccepted"`
}

// VerifyKYCInput is the admin review payload
type VerifyKYCInput struct {
	UserID string    `json:"userId"`
	Action KYCAction `json:"action"`
	Reason string    `json:"reason"`
}
