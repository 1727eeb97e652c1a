package usecases_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"legalease.backend/internal/domain/entities"
	domainerrors "legalease.backend/internal/domain/errors"
	"legalease.backend/internal/domain/repositories"
	"legalease.backend/internal/infrastructure/paystack"
	"legalease.backend/internal/infrastructure/storage"
	"legalease.backend/internal/usecases"
	"legalease.backend/pkg/utils"
)

type contractFixture struct {
	contracts *MockContractRepository
	payments  *MockPaymentRepository
	profiles  *MockProfileRepository
	uow       *MockUnitOfWork
	storage   *MockStorage
	gateway   *MockGateway
	notifier  *notifierSpy
	uc        *usecases.ContractUsecase
}

func newContractFixture() *contractFixture {
	f := &contractFixture{
		contracts: new(MockContractRepository),
		payments:  new(MockPaymentRepository),
		profiles:  new(MockProfileRepository),
		uow:       new(MockUnitOfWork),
		storage:   new(MockStorage),
		gateway:   new(MockGateway),
		notifier:  &notifierSpy{},
	}
	f.uc = usecases.NewContractUsecase(f.contracts, f.payments, f.profiles, f.uow, f.storage, f.gateway, f.notifier, "https://legalease.test")
	return f
}

func TestContractUsecase_Pricing(t *testing.T) {
	tiers := newContractFixture().uc.Pricing()
	require.Len(t, tiers, 3)
	assert.Equal(t, entities.TierNDABasic, tiers[0].Key)
	assert.Equal(t, int64(60000), tiers[0].Price)
}

func TestContractUsecase_Checkout_Success(t *testing.T) {
	f := newContractFixture()
	user := &entities.Profile{ID: uuid.New(), Email: "ada@example.com", KYCCompleted: true}
	f.profiles.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()

	var created *entities.Contract
	f.contracts.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entities.Contract)
	}).Return(nil).Once()
	f.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *entities.Payment) bool {
		return p.Amount == 60000 && p.Currency == "NGN" && p.Status == entities.PaymentStatusPending
	})).Return(nil).Once()
	f.gateway.On("InitializeTransaction", mock.Anything, mock.MatchedBy(func(req paystack.TransactionRequest) bool {
		return req.Amount == 6000000 && req.Email == "ada@example.com" &&
			req.CallbackURL == "https://legalease.test/dashboard" &&
			req.Metadata["pricing_tier"] == "nda_basic" &&
			strings.HasPrefix(req.Reference, "contract-")
	})).Return(&entities.PaymentInitialization{AuthorizationURL: "https://checkout.paystack.com/x", AccessCode: "ac"}, nil).Once()

	result, err := f.uc.Checkout(context.Background(), usecases.Actor{ID: user.ID}, &entities.CheckoutInput{PricingTier: entities.TierNDABasic})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, entities.ContractAwaitingPayment, created.Status)
	assert.Equal(t, entities.ContractPaymentPending, created.PaymentStatus)
	assert.Equal(t, "NDA Review", created.Title)
	assert.Equal(t, "contract-"+created.ID.String(), result.Reference[:len("contract-")+36])
	assert.Equal(t, result.Reference, created.PaymentID.String)
	assert.Equal(t, "https://checkout.paystack.com/x", result.AuthorizationURL)
	assert.False(t, result.Contract.CreatedAt.IsZero())
	assert.False(t, result.Payment.CreatedAt.IsZero())
	f.gateway.AssertExpectations(t)
	f.payments.AssertExpectations(t)
}

func TestContractUsecase_Checkout_RequiresKYC(t *testing.T) {
	f := newContractFixture()
	user := &entities.Profile{ID: uuid.New()}
	f.profiles.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()

	_, err := f.uc.Checkout(context.Background(), usecases.Actor{ID: user.ID}, &entities.CheckoutInput{PricingTier: entities.TierNDABasic})
	requireStatus(t, err, http.StatusForbidden)
	assert.ErrorIs(t, err, domainerrors.ErrKYCRequired)
	f.contracts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestContractUsecase_Checkout_UnknownTier(t *testing.T) {
	f := newContractFixture()
	_, err := f.uc.Checkout(context.Background(), usecases.Actor{ID: uuid.New()}, &entities.CheckoutInput{PricingTier: "gold"})
	requireStatus(t, err, http.StatusBadRequest)
}

func TestContractUsecase_Checkout_GatewayFailure(t *testing.T) {
	f := newContractFixture()
	user := &entities.Profile{ID: uuid.New(), Email: "ada@example.com", KYCCompleted: true}
	f.profiles.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	f.contracts.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	f.payments.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	f.gateway.On("InitializeTransaction", mock.Anything, mock.Anything).
		Return(nil, domainerrors.ServiceUnavailable("Payment service unavailable", nil)).Once()

	_, err := f.uc.Checkout(context.Background(), usecases.Actor{ID: user.ID}, &entities.CheckoutInput{PricingTier: entities.TierSLAReview})
	requireStatus(t, err, http.StatusServiceUnavailable)
}

func awaitingUpload(userID uuid.UUID) *entities.Contract {
	return &entities.Contract{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         "NDA Review",
		Status:        entities.ContractAwaitingUpload,
		PricingTier:   entities.TierNDABasic,
		PaymentStatus: entities.ContractPaymentCompleted,
	}
}

func TestContractUsecase_Upload_Success(t *testing.T) {
	f := newContractFixture()
	user := &entities.Profile{ID: uuid.New(), Email: "ada@example.com", KYCCompleted: true}
	contract := awaitingUpload(user.ID)

	f.profiles.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()
	f.contracts.On("GetByID", mock.Anything, contract.ID).Return(contract, nil).Once()
	f.storage.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "contracts/"+user.ID.String()+"-"+contract.ID.String()+"-") && strings.HasSuffix(key, ".pdf")
	}), pdfBytes, "application/pdf").Return("https://cdn.test/documents/contracts/a.pdf", nil).Once()
	f.contracts.On("Update", mock.Anything, contract.ID, mock.MatchedBy(func(g repositories.ContractGuard) bool {
		return len(g.Statuses) == 1 && g.Statuses[0] == entities.ContractAwaitingUpload &&
			len(g.PaymentStatuses) == 1 && g.PaymentStatuses[0] == entities.ContractPaymentCompleted &&
			g.UserID != nil && *g.UserID == user.ID
	}), mock.MatchedBy(func(c repositories.ContractChanges) bool {
		return *c.Status == entities.ContractPaymentConfirmed && *c.Title == "mutual-nda.pdf" &&
			*c.OriginalFileURL == "https://cdn.test/documents/contracts/a.pdf"
	})).Return(nil).Once()

	result, err := f.uc.Upload(context.Background(), usecases.Actor{ID: user.ID}, contract.ID.String(),
		&entities.UploadedFile{Name: "mutual-nda.pdf", ContentType: "application/pdf", Data: pdfBytes})
	require.NoError(t, err)
	assert.Equal(t, contract.ID.String(), result.ContractID)
	assert.Equal(t, "https://cdn.test/documents/contracts/a.pdf", result.FileURL)

	sent, ok := f.notifier.find(usecases.TemplateContractUploaded)
	require.True(t, ok)
	assert.True(t, sent.Admins)
	f.contracts.AssertExpectations(t)
}

func TestContractUsecase_Upload_NotReady(t *testing.T) {
	user := &entities.Profile{ID: uuid.New(), KYCCompleted: true}
	file := &entities.UploadedFile{Name: "a.pdf", Data: pdfBytes}

	cases := map[string]*entities.Contract{
		"awaiting payment": {ID: uuid.New(), UserID: user.ID, Status: entities.ContractAwaitingPayment, PaymentStatus: entities.ContractPaymentPending},
		"payment failed":   {ID: uuid.New(), UserID: user.ID, Status: entities.ContractAwaitingUpload, PaymentStatus: entities.ContractPaymentFailed},
		"someone else's":   awaitingUpload(uuid.New()),
	}
	for name, contract := range cases {
		t.Run(name, func(t *testing.T) {
			f := newContractFixture()
			f.profiles.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()
			f.contracts.On("GetByID", mock.Anything, contract.ID).Return(contract, nil).Once()

			_, err := f.uc.Upload(context.Background(), usecases.Actor{ID: user.ID}, contract.ID.String(), file)
			requireStatus(t, err, http.StatusNotFound)
			assert.ErrorIs(t, err, domainerrors.ErrInvalidState)
			f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestContractUsecase_Upload_RaceLostRemovesFile(t *testing.T) {
	f := newContractFixture()
	user := &entities.Profile{ID: uuid.New(), KYCCompleted: true}
	contract := awaitingUpload(user.ID)

	f.profiles.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()
	f.contracts.On("GetByID", mock.Anything, contract.ID).Return(contract, nil).Once()
	f.storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("https://cdn.test/documents/contracts/b.pdf", nil).Once()
	f.contracts.On("Update", mock.Anything, contract.ID, mock.Anything, mock.Anything).Return(domainerrors.ErrInvalidState).Once()
	f.storage.On("Delete", mock.Anything, "https://cdn.test/documents/contracts/b.pdf").Return(nil).Once()

	_, err := f.uc.Upload(context.Background(), usecases.Actor{ID: user.ID}, contract.ID.String(), &entities.UploadedFile{Name: "b.pdf", Data: pdfBytes})
	requireStatus(t, err, http.StatusNotFound)
	f.storage.AssertExpectations(t)
}

func TestContractUsecase_Upload_BadFile(t *testing.T) {
	f := newContractFixture()
	user := &entities.Profile{ID: uuid.New(), KYCCompleted: true}
	contract := awaitingUpload(user.ID)
	f.profiles.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()
	f.contracts.On("GetByID", mock.Anything, contract.ID).Return(contract, nil).Once()

	_, err := f.uc.Upload(context.Background(), usecases.Actor{ID: user.ID}, contract.ID.String(),
		&entities.UploadedFile{Name: "photo.png", Data: []byte("\x89PNG\r\n\x1a\n")})
	requireStatus(t, err, http.StatusBadRequest)
}

func paymentConfirmed() *entities.Contract {
	return &entities.Contract{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		Title:           "mutual-nda.pdf",
		Status:          entities.ContractPaymentConfirmed,
		PricingTier:     entities.TierNDABasic,
		PaymentStatus:   entities.ContractPaymentCompleted,
		OriginalFileURL: null.StringFrom("https://cdn.test/documents/contracts/a.pdf"),
	}
}

func TestContractUsecase_Assign_Success(t *testing.T) {
	f := newContractFixture()
	contract := paymentConfirmed()
	lawyer := &entities.Profile{ID: uuid.New(), Email: "lawyer@example.com", Role: entities.UserRoleLawyer, FullName: null.StringFrom("Barr. Bola")}

	f.contracts.On("GetByID", mock.Anything, contract.ID).Return(contract, nil).Once()
	f.profiles.On("GetByID", mock.Anything, lawyer.ID).Return(lawyer, nil).Once()
	f.profiles.On("GetByID", mock.Anything, contract.UserID).Return(&entities.Profile{Email: "client@example.com"}, nil).Once()
	f.contracts.On("Update", mock.Anything, contract.ID, repositories.ContractGuard{
		Statuses:   []entities.ContractStatus{entities.ContractPaymentConfirmed},
		Unassigned: true,
	}, mock.MatchedBy(func(c repositories.ContractChanges) bool {
		return *c.Status == entities.ContractAssigned && *c.LawyerID == lawyer.ID
	})).Return(nil).Once()

	got, err := f.uc.Assign(context.Background(), &entities.AssignContractInput{ContractID: contract.ID.String(), LawyerID: lawyer.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, entities.ContractAssigned, got.Status)
	assert.True(t, got.IsAssignedTo(lawyer.ID))

	sent, ok := f.notifier.find(usecases.TemplateContractAssigned)
	require.True(t, ok)
	assert.Equal(t, "lawyer@example.com", sent.To)
	assert.Equal(t, "NDA Review", sent.Data["tier_name"])
	assert.Equal(t, "client", sent.Data["user_name"])
	f.contracts.AssertExpectations(t)
}

func TestContractUsecase_Assign_Guards(t *testing.T) {
	lawyer := &entities.Profile{ID: uuid.New(), Role: entities.UserRoleLawyer}

	t.Run("already assigned", func(t *testing.T) {
		f := newContractFixture()
		contract := paymentConfirmed()
		other := uuid.New()
		contract.LawyerID = &other
		f.contracts.On("GetByID", mock.Anything, contract.ID).Return(contract, nil).Once()

		_, err := f.uc.Assign(context.Background(), &entities.AssignContractInput{ContractID: contract.ID.String(), LawyerID: lawyer.ID.String()})
		requireStatus(t, err, http.StatusNotFound)
	})

	t.Run("not a lawyer", func(t *testing.T) {
		f := newContractFixture()
		contract := paymentConfirmed()
		user := &entities.Profile{ID: uuid.New(), Role: entities.UserRoleUser}
		f.contracts.On("GetByID", mock.Anything, contract.ID).Return(contract, nil).Once()
		f.profiles.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()

		_, err := f.uc.Assign(context.Background(), &entities.AssignContractInput{ContractID: contract.ID.String(), LawyerID: user.ID.String()})
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("lawyer missing", func(t *testing.T) {
		f := newContractFixture()
		contract := paymentConfirmed()
		f.contracts.On("GetByID", mock.Anything, contract.ID).Return(contract, nil).Once()
		f.profiles.On("GetByID", mock.Anything, lawyer.ID).Return(nil, domainerrors.ErrNotFound).Once()

		_, err := f.uc.Assign(context.Background(), &entities.AssignContractInput{ContractID: contract.ID.String(), LawyerID: lawyer.ID.String()})
		requireStatus(t, err, http.StatusNotFound)
	})

	t.Run("lost race", func(t *testing.T) {
		f := newContractFixture()
		contract := paymentConfirmed()
		f.contracts.On("GetByID", mock.Anything, contract.ID).Return(contract, nil).Once()
		f.profiles.On("GetByID", mock.Anything, lawyer.ID).Return(lawyer, nil).Once()
		f.contracts.On("Update", mock.Anything, contract.ID, mock.Anything, mock.Anything).Return(domainerrors.ErrInvalidState).Once()

		_, err := f.uc.Assign(context.Background(), &entities.AssignContractInput{ContractID: contract.ID.String(), LawyerID: lawyer.ID.String()})
		requireStatus(t, err, http.StatusNotFound)
		assert.Empty(t, f.notifier.templates())
	})

	t.Run("bad ids", func(t *testing.T) {
		f := newContractFixture()
		_, err := f.uc.Assign(context.Background(), &entities.AssignContractInput{ContractID: "x", LawyerID: lawyer.ID.String()})
		requireStatus(t, err, http.StatusBadRequest)
	})
}

func assignedTo(lawyerID uuid.UUID, status entities.ContractStatus) *entities.Contract {
	c := paymentConfirmed()
	c.LawyerID = &lawyerID
	c.Status = status
	return c
}

func TestContractUsecase_UpdateStatus(t *testing.T) {
	lawyerID := uuid.New()
	lawyer := usecases.Actor{ID: lawyerID, Role: entities.UserRoleLawyer}

	t.Run("under review notifies once", func(t *testing.T) {
		f := newContractFixture()
		contract := assignedTo(lawyerID, entities.ContractAssigned)
		f.contracts.On("GetByID", mock.Anything, contract.ID).Return(contract, nil).Once()
		f.contracts.On("Update", mock.Anything, contract.ID, repositories.ContractGuard{Statuses: entities.ReviewableStatuses}, mock.Anything).Return(nil).Once()
		f.profiles.On("GetByID", mock.Anything, contract.UserID).Return(&entities.Profile{Email: "client@example.com"}, nil).Once()
		f.profiles.On("GetByID", mock.Anything, lawyerID).Return(nil, domainerrors.ErrNotFound).Once()

		got, err := f.uc.UpdateStatus(context.Background(), lawyer, &entities.UpdateStatusInput{
			ContractID: contract.ID.String(),
			Status:     entities.ContractUnderReview,
		})
		require.NoError(t, err)
		assert.Equal(t, entities.ContractUnderReview, got.Status)

		sent, ok := f.notifier.find(usecases.TemplateUnderReview)
		require.True(t, ok)
		assert.Equal(t, "client@example.com", sent.To)
		assert.Equal(t, "Your lawyer", sent.Data["lawyer_name"])
	})

	t.Run("already under review does not notify", func(t *testing.T) {
		f := newContractFixture()
		contract := assignedTo(lawyerID, entities.ContractUnderReview)
		f.contracts.On("GetByID", mock.Anything, contract.ID).Return(contract, nil).Once()
		f.contracts.On("Update", mock.Anything, contract.ID, mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.uc.UpdateStatus(context.Background(), lawyer, &entities.UpdateStatusInput{
			ContractID:     contract.ID.String(),
			Status:         entities.ContractUnderReview,
			PreviousStatus: entities.ContractUnderReview,
		})
		require.NoError(t, err)
		assert.Empty(t, f.notifier.templates())
	})

	t.Run("target not settable", func(t *testing.T) {
		f := newContractFixture()
		_, err := f.uc.UpdateStatus(context.Background(), lawyer, &entities.UpdateStatusInput{
			ContractID: uuid.NewString(),
			Status:     entities.ContractCompleted,
		})
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("not in review", func(t *testing.T) {
		f := newContractFixture()
		contract := paymentConfirmed()
		f.contracts.On("GetByID", mock.Anything, contract.ID).Return(contract, nil).Once()

		_, err := f.uc.UpdateStatus(context.Background(), lawyer, &entities.UpdateStatusInput{
			ContractID: contract.ID.String(),
			Status:     entities.ContractUnderReview,
		})
		requireStatus(t, err, http.StatusNotFound)
	})

	t.Run("other lawyer", func(t *testing.T) {
		f := newContractFixture()
		contract := assignedTo(uuid.New(), entities.ContractAssigned)
		f.contracts.On("GetByID", mock.Anything, contract.ID).Return(contract, nil).Once()

		_, err := f.uc.UpdateStatus(context.Background(), lawyer, &entities.UpdateStatusInput{
			ContractID: contract.ID.String(),
			Status:     entities.ContractUnderReview,
		})
		requireStatus(t, err, http.StatusForbidden)
	})

	t.Run("admin may act", func(t *testing.T) {
		f := newContractFixture()
		contract := assignedTo(uuid.New(), entities.ContractUnderReview)
		f.contracts.On("GetByID", mock.Anything, contract.ID).Return(contract, nil).Once()
		f.contracts.On("Update", mock.Anything, contract.ID, mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.uc.UpdateStatus(context.Background(), usecases.Actor{ID: uuid.New(), Role: entities.UserRoleAdmin}, &entities.UpdateStatusInput{
			ContractID: contract.ID.String(),
			Status:     entities.ContractAssigned,
		})
		require.NoError(t, err)
	})
}

func TestContractUsecase_CompleteReview(t *testing.T) {
	lawyerID := uuid.New()
	lawyer := usecases.Actor{ID: lawyerID, Role: entities.UserRoleLawyer}

	f := newContractFixture()
	contract := assignedTo(lawyerID, entities.ContractUnderReview)
	f.contracts.On("GetByID", mock.Anything, contract.ID).Return(contract, nil).Once()
	f.contracts.On("Update", mock.Anything, contract.ID, mock.Anything, mock.MatchedBy(func(c repositories.ContractChanges) bool {
		return *c.Status == entities.ContractCompleted && *c.ReviewedFileURL == "https://cdn.test/documents/reviewed-contracts/r.pdf"
	})).Return(nil).Once()
	f.profiles.On("GetByID", mock.Anything, contract.UserID).Return(&entities.Profile{Email: "client@example.com"}, nil).Once()
	f.profiles.On("GetByID", mock.Anything, lawyerID).Return(&entities.Profile{FullName: null.StringFrom("Barr. Bola")}, nil).Once()

	got, err := f.uc.CompleteReview(context.Background(), lawyer, &entities.CompleteReviewInput{
		ContractID:      contract.ID.String(),
		ReviewedFileURL: "https://cdn.test/documents/reviewed-contracts/r.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.ContractCompleted, got.Status)

	sent, ok := f.notifier.find(usecases.TemplateReviewCompleted)
	require.True(t, ok)
	assert.Equal(t, "Barr. Bola", sent.Data["lawyer_name"])

	_, err = f.uc.CompleteReview(context.Background(), lawyer, &entities.CompleteReviewInput{ContractID: contract.ID.String()})
	requireStatus(t, err, http.StatusBadRequest)
}

func TestContractUsecase_UploadReviewed(t *testing.T) {
	lawyerID := uuid.New()
	f := newContractFixture()
	contract := assignedTo(lawyerID, entities.ContractUnderReview)

	f.contracts.On("GetByID", mock.Anything, contract.ID).Return(contract, nil).Once()
	f.storage.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "reviewed-contracts/"+contract.ID.String()+"-")
	}), pdfBytes, "application/pdf").Return("https://cdn.test/documents/reviewed-contracts/r.pdf", nil).Once()
	f.contracts.On("Update", mock.Anything, contract.ID, mock.Anything, mock.Anything).Return(nil).Once()
	f.profiles.On("GetByID", mock.Anything, mock.Anything).Return(&entities.Profile{Email: "client@example.com"}, nil)

	got, err := f.uc.UploadReviewed(context.Background(), usecases.Actor{ID: lawyerID, Role: entities.UserRoleLawyer},
		contract.ID.String(), &entities.UploadedFile{Name: "reviewed.pdf", Data: pdfBytes})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/documents/reviewed-contracts/r.pdf", got.ReviewedFileURL.String)
}

func TestContractUsecase_Delete(t *testing.T) {
	owner := uuid.New()

	t.Run("owner deletes with tolerated missing object", func(t *testing.T) {
		f := newContractFixture()
		contract := paymentConfirmed()
		contract.UserID = owner
		contract.ReviewedFileURL = null.StringFrom("https://cdn.test/documents/reviewed-contracts/gone.pdf")

		f.contracts.On("GetByID", mock.Anything, contract.ID).Return(contract, nil).Once()
		f.storage.On("Delete", mock.Anything, contract.OriginalFileURL.String).Return(nil).Once()
		f.storage.On("Delete", mock.Anything, contract.ReviewedFileURL.String).Return(storage.ErrObjectNotFound).Once()
		f.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
		f.payments.On("DeleteByContract", mock.Anything, contract.ID).Return(nil).Once()
		f.contracts.On("Delete", mock.Anything, contract.ID).Return(nil).Once()

		result, err := f.uc.Delete(context.Background(), usecases.Actor{ID: owner, Role: entities.UserRoleUser}, contract.ID.String())
		require.NoError(t, err)
		assert.Equal(t, &entities.DeleteResult{Original: true, Reviewed: false}, result)
		f.payments.AssertExpectations(t)
		f.contracts.AssertExpectations(t)
	})

	t.Run("missing", func(t *testing.T) {
		f := newContractFixture()
		id := uuid.New()
		f.contracts.On("GetByID", mock.Anything, id).Return(nil, domainerrors.ErrNotFound).Once()

		_, err := f.uc.Delete(context.Background(), usecases.Actor{ID: owner}, id.String())
		requireStatus(t, err, http.StatusNotFound)
	})

	t.Run("not owner", func(t *testing.T) {
		f := newContractFixture()
		contract := paymentConfirmed()
		f.contracts.On("GetByID", mock.Anything, contract.ID).Return(contract, nil).Once()

		_, err := f.uc.Delete(context.Background(), usecases.Actor{ID: owner, Role: entities.UserRoleUser}, contract.ID.String())
		requireStatus(t, err, http.StatusNotFound)
		f.storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("database failure", func(t *testing.T) {
		f := newContractFixture()
		contract := &entities.Contract{ID: uuid.New(), UserID: owner}
		f.contracts.On("GetByID", mock.Anything, contract.ID).Return(contract, nil).Once()
		f.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
		f.payments.On("DeleteByContract", mock.Anything, contract.ID).Return(errors.New("db down")).Once()

		_, err := f.uc.Delete(context.Background(), usecases.Actor{ID: owner}, contract.ID.String())
		require.Error(t, err)
		f.contracts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestContractUsecase_ListScopesByRole(t *testing.T) {
	id := uuid.New()
	page := utils.GetPaginationParams(1, 20)

	f := newContractFixture()
	f.contracts.On("List", mock.Anything, entities.ContractFilter{UserID: &id}, page).Return([]*entities.Contract{}, int64(0), nil).Once()
	f.contracts.On("List", mock.Anything, entities.ContractFilter{LawyerID: &id, Status: entities.ContractUnderReview}, page).Return([]*entities.Contract{}, int64(0), nil).Once()
	f.contracts.On("List", mock.Anything, entities.ContractFilter{}, page).Return([]*entities.Contract{}, int64(0), nil).Once()

	_, _, err := f.uc.List(context.Background(), usecases.Actor{ID: id, Role: entities.UserRoleUser}, "", page)
	require.NoError(t, err)
	_, _, err = f.uc.List(context.Background(), usecases.Actor{ID: id, Role: entities.UserRoleLawyer}, entities.ContractUnderReview, page)
	require.NoError(t, err)
	_, _, err = f.uc.List(context.Background(), usecases.Actor{ID: id, Role: entities.UserRoleAdmin}, "", page)
	require.NoError(t, err)
	f.contracts.AssertExpectations(t)

	_, _, err = f.uc.List(context.Background(), usecases.Actor{ID: id}, "archived", page)
	requireStatus(t, err, http.StatusBadRequest)
}

func TestContractUsecase_GetVisibility(t *testing.T) {
	f := newContractFixture()
	contract := paymentConfirmed()
	f.contracts.On("GetByID", mock.Anything, contract.ID).Return(contract, nil)

	_, err := f.uc.Get(context.Background(), usecases.Actor{ID: contract.UserID, Role: entities.UserRoleUser}, contract.ID.String())
	require.NoError(t, err)

	_, err = f.uc.Get(context.Background(), usecases.Actor{ID: uuid.New(), Role: entities.UserRoleUser}, contract.ID.String())
	requireStatus(t, err, http.StatusNotFound)

	_, err = f.uc.Get(context.Background(), usecases.Actor{ID: uuid.New(), Role: entities.UserRoleAdmin}, contract.ID.String())
	require.NoError(t, err)
}
