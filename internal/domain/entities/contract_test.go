package entities

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
)

func TestContract_CanUpload(t *testing.T) {
	cases := []struct {
		name    string
		status  ContractStatus
		payment ContractPaymentStatus
		want    bool
	}{
		{"ready", ContractAwaitingUpload, ContractPaymentCompleted, true},
		{"unpaid", ContractAwaitingUpload, ContractPaymentPending, false},
		{"payment failed", ContractAwaitingUpload, ContractPaymentFailed, false},
		{"still awaiting payment", ContractAwaitingPayment, ContractPaymentCompleted, false},
		{"already uploaded", ContractPaymentConfirmed, ContractPaymentCompleted, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Contract{Status: tc.status, PaymentStatus: tc.payment}
			assert.Equal(t, tc.want, c.CanUpload())
		})
	}
}

func TestContract_CanAssign(t *testing.T) {
	lawyer := uuid.New()

	assert.True(t, (&Contract{Status: ContractPaymentConfirmed}).CanAssign())
	assert.False(t, (&Contract{Status: ContractPaymentConfirmed, LawyerID: &lawyer}).CanAssign())
	assert.False(t, (&Contract{Status: ContractAwaitingUpload}).CanAssign())
	assert.False(t, (&Contract{Status: ContractAssigned, LawyerID: &lawyer}).CanAssign())
}

func TestContract_StatusAfterPayment(t *testing.T) {
	noFile := &Contract{Status: ContractAwaitingPayment}
	assert.Equal(t, ContractAwaitingUpload, noFile.StatusAfterPayment())

	withFile := &Contract{Status: ContractAwaitingPayment, OriginalFileURL: null.StringFrom("https://x/documents/contracts/a.pdf")}
	assert.Equal(t, ContractPaymentConfirmed, withFile.StatusAfterPayment())

	emptyFile := &Contract{OriginalFileURL: null.StringFrom("")}
	assert.Equal(t, ContractAwaitingUpload, emptyFile.StatusAfterPayment())
}

func TestContract_ReviewAndVisibility(t *testing.T) {
	owner, lawyer, stranger := uuid.New(), uuid.New(), uuid.New()
	c := &Contract{UserID: owner, LawyerID: &lawyer, Status: ContractAssigned}

	assert.True(t, c.InReview())
	assert.True(t, c.IsAssignedTo(lawyer))
	assert.False(t, c.IsAssignedTo(stranger))

	assert.True(t, c.VisibleTo(owner, UserRoleUser))
	assert.True(t, c.VisibleTo(lawyer, UserRoleLawyer))
	assert.True(t, c.VisibleTo(stranger, UserRoleAdmin))
	assert.False(t, c.VisibleTo(stranger, UserRoleUser))
	assert.False(t, c.VisibleTo(stranger, UserRoleLawyer))

	c.Status = ContractCompleted
	assert.False(t, c.InReview())
}

func TestContractStatus_ValidAndLabel(t *testing.T) {
	assert.True(t, ContractUnderReview.Valid())
	assert.False(t, ContractStatus("archived").Valid())
	assert.Equal(t, "Under Review", ContractUnderReview.Label())
	assert.Equal(t, "archived", ContractStatus("archived").Label())

	assert.True(t, IsLawyerSettable(ContractUnderReview))
	assert.True(t, IsLawyerSettable(ContractAssigned))
	assert.False(t, IsLawyerSettable(ContractCompleted))
	assert.False(t, IsLawyerSettable(ContractPaymentConfirmed))
}

func TestPaymentReferenceAndKobo(t *testing.T) {
	id := uuid.MustParse("0190b2a4-7c1e-7d2a-8f00-000000000001")
	at := time.UnixMilli(1700000000123)

	ref := PaymentReference(id, at)
	assert.Equal(t, "contract-0190b2a4-7c1e-7d2a-8f00-000000000001-1700000000123", ref)
	assert.True(t, strings.HasPrefix(ref, "contract-"))

	p := &Payment{Amount: 60000}
	assert.Equal(t, int64(6000000), p.AmountInKobo())
}
