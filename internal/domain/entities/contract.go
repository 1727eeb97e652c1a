package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ContractStatus is the review lifecycle state of a contract
type ContractStatus string

const (
	ContractAwaitingPayment  ContractStatus = "awaiting_payment"
	ContractAwaitingUpload   ContractStatus = "awaiting_upload"
	ContractPaymentConfirmed ContractStatus = "payment_confirmed"
	ContractAssigned         ContractStatus = "assigned_to_lawyer"
	ContractUnderReview      ContractStatus = "under_review"
	ContractCompleted        ContractStatus = "completed"
)

// Valid reports whether s is a known status
func (s ContractStatus) Valid() bool {
	switch s {
	case ContractAwaitingPayment, ContractAwaitingUpload, ContractPaymentConfirmed,
		ContractAssigned, ContractUnderReview, ContractCompleted:
		return true
	}
	return false
}

// Label is the human readable status used in emails
func (s ContractStatus) Label() string {
	switch s {
	case ContractAwaitingPayment:
		return "Awaiting Payment"
	case ContractAwaitingUpload:
		return "Awaiting Upload"
	case ContractPaymentConfirmed:
		return "Payment Confirmed"
	case ContractAssigned:
		return "Assigned to Lawyer"
	case ContractUnderReview:
		return "Under Review"
	case ContractCompleted:
		return "Completed"
	}
	return string(s)
}

// ContractPaymentStatus mirrors the outcome of the contract's payment
type ContractPaymentStatus string

const (
	ContractPaymentPending   ContractPaymentStatus = "pending"
	ContractPaymentCompleted ContractPaymentStatus = "completed"
	ContractPaymentFailed    ContractPaymentStatus = "failed"
)

// Statuses a lawyer may set directly through update-status.
var LawyerSettableStatuses = []ContractStatus{ContractAssigned, ContractUnderReview}

// Statuses from which a lawyer may act on a contract.
var ReviewableStatuses = []ContractStatus{ContractAssigned, ContractUnderReview}

// Contract is a document submitted for review
type Contract struct {
	ID              uuid.UUID             `json:"id"`
	UserID          uuid.UUID             `json:"user_id"`
	LawyerID        *uuid.UUID            `json:"lawyer_id"`
	Title           string                `json:"title"`
	OriginalFileURL null.String           `json:"original_file_url"`
	ReviewedFileURL null.String           `json:"reviewed_file_url"`
	Status          ContractStatus        `json:"status"`
	PricingTier     PricingTier           `json:"pricing_tier"`
	PaymentID       null.String           `json:"payment_id"`
	PaymentStatus   ContractPaymentStatus `json:"payment_status"`
	Notes           null.String           `json:"notes"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// CanUpload reports whether the client may attach the original document
func (c *Contract) CanUpload() bool {
	return c.Status == ContractAwaitingUpload && c.PaymentStatus == ContractPaymentCompleted
}

// CanAssign reports whether an admin may assign a lawyer
func (c *Contract) CanAssign() bool {
	return c.Status == ContractPaymentConfirmed && c.LawyerID == nil
}

// InReview reports whether the assigned lawyer may act on the contract
func (c *Contract) InReview() bool {
	return containsStatus(ReviewableStatuses, c.Status)
}

// IsAssignedTo reports whether lawyerID is the assigned lawyer
func (c *Contract) IsAssignedTo(lawyerID uuid.UUID) bool {
	return c.LawyerID != nil && *c.LawyerID == lawyerID
}

// StatusAfterPayment is the status a successful charge moves the contract to.
func (c *Contract) StatusAfterPayment() ContractStatus {
	if c.OriginalFileURL.Valid && c.OriginalFileURL.String != "" {
		return ContractPaymentConfirmed
	}
	return ContractAwaitingUpload
}

// VisibleTo reports whether a caller with the given id and role may read the contract
func (c *Contract) VisibleTo(userID uuid.UUID, role UserRole) bool {
	switch role {
	case UserRoleAdmin:
		return true
	case UserRoleLawyer:
		return c.IsAssignedTo(userID) || c.UserID == userID
	}
	return c.UserID == userID
}

// IsLawyerSettable reports whether a lawyer may set s through update-status
func IsLawyerSettable(s ContractStatus) bool {
	return containsStatus(LawyerSettableStatuses, s)
}

func containsStatus(list []ContractStatus, s ContractStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ContractFilter narrows contract listings
type ContractFilter struct {
	UserID   *uuid.UUID
	LawyerID *uuid.UUID
	Status   ContractStatus
}

// CheckoutInput starts a new contract at tier selection
type CheckoutInput struct {
	PricingTier PricingTier `json:"pricingTier" binding:"required"`
	Title       string      `json:"title" binding:"max=255"`
}

// CheckoutResult is returned after payment initialization
type CheckoutResult struct {
	Contract         *Contract `json:"contract"`
	Payment          *Payment  `json:"payment"`
	AuthorizationURL string    `json:"authorizationUrl"`
	AccessCode       string    `json:"accessCode"`
	Reference        string    `json:"reference"`
}

// AssignContractInput is the admin assignment payload
type AssignContractInput struct {
	ContractID string `json:"contractId"`
	LawyerID   string `json:"lawyerId"`
}

// UpdateStatusInput is the lawyer status update payload
type UpdateStatusInput struct {
	ContractID     string         `json:"contractId"`
	Status         ContractStatus `json:"status"`
	PreviousStatus ContractStatus `json:"previousStatus"`
}

// CompleteReviewInput is the review completion payload
type CompleteReviewInput struct {
	ContractID      string `json:"contractId"`
	ReviewedFileURL string `json:"reviewedFileUrl"`
}

// UploadedFile is a validated multipart file
type UploadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadResult is returned after the client attaches the original document
type UploadResult struct {
	ContractID string `json:"contractId"`
	FileURL    string `json:"fileUrl"`
}

// DeleteResult reports which storage objects were removed
type DeleteResult struct {
	Original bool `json:"original"`
	Reviewed bool `json:"reviewed"`
}
