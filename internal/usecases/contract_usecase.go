package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"legalease.backend/internal/domain/entities"
	domainerrors "legalease.backend/internal/domain/errors"
	"legalease.backend/internal/domain/repositories"
	"legalease.backend/internal/infrastructure/paystack"
	"legalease.backend/internal/infrastructure/storage"
	"legalease.backend/pkg/filecheck"
	"legalease.backend/pkg/logger"
	"legalease.backend/pkg/utils"
)

const (
	msgNotReadyForUpload     = "Contract not found or not ready for upload"
	msgNotReadyForAssignment = "Contract not found or not ready for assignment"
	msgNotInReview           = "Contract not found or not in review"
	msgContractNotFound      = "Contract not found"
)

// ContractUsecase drives the contract review lifecycle
type ContractUsecase struct {
	contractRepo repositories.ContractRepository
	paymentRepo  repositories.PaymentRepository
	profileRepo  repositories.ProfileRepository
	uow          repositories.UnitOfWork
	storage      DocumentStorage
	gateway      PaymentGateway
	notifier     Notifier
	appURL       string
	now          func() time.Time
}

// NewContractUsecase creates a new contract usecase
func NewContractUsecase(
	contractRepo repositories.ContractRepository,
	paymentRepo repositories.PaymentRepository,
	profileRepo repositories.ProfileRepository,
	uow repositories.UnitOfWork,
	storage DocumentStorage,
	gateway PaymentGateway,
	notifier Notifier,
	appURL string,
) *ContractUsecase {
	return &ContractUsecase{
		contractRepo: contractRepo,
		paymentRepo:  paymentRepo,
		profileRepo:  profileRepo,
		uow:          uow,
		storage:      storage,
		gateway:      gateway,
		notifier:     notifier,
		appURL:       strings.TrimRight(appURL, "/"),
		now:          time.Now,
	}
}

// Pricing returns the tier catalogue
func (u *ContractUsecase) Pricing() []entities.TierInfo {
	return entities.PricingCatalogue()
}

func kycRequired() error {
	return domainerrors.NewAppError(http.StatusForbidden, domainerrors.CodeForbidden,
		"Please complete KYC verification first", domainerrors.ErrKYCRequired)
}

func (u *ContractUsecase) requireKYC(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	profile, err := u.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("Profile not found")
		}
		return nil, err
	}
	if !profile.KYCCompleted {
		return nil, kycRequired()
	}
	return profile, nil
}

// Checkout creates a contract awaiting payment and opens a hosted Paystack checkout for it
func (u *ContractUsecase) Checkout(ctx context.Context, actor Actor, input *entities.CheckoutInput) (*entities.CheckoutResult, error) {
	form := entities.NewCheckoutForm()
	if err := form.SelectTier(input.PricingTier); err != nil {
		return nil, domainerrors.BadRequest("Invalid pricing tier")
	}

	profile, err := u.requireKYC(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	invoice, err := form.Submit()
	if err != nil {
		return nil, err
	}

	now := u.now()
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = invoice.Tier.Name
	}
	contract := &entities.Contract{
		ID:            utils.GenerateUUIDv7(),
		UserID:        profile.ID,
		Title:         title,
		Status:        entities.ContractAwaitingPayment,
		PricingTier:   invoice.Tier.Key,
		PaymentStatus: entities.ContractPaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	reference := entities.PaymentReference(contract.ID, now)
	contract.PaymentID = null.StringFrom(reference)

	payment := &entities.Payment{
		ID:                utils.GenerateUUIDv7(),
		UserID:            profile.ID,
		ContractID:        contract.ID,
		Amount:            invoice.Amount,
		Currency:          invoice.Currency,
		PaystackReference: reference,
		Status:            entities.PaymentStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.contractRepo.Create(txCtx, contract); err != nil {
			return err
		}
		return u.paymentRepo.Create(txCtx, payment)
	})
	if err != nil {
		return nil, err
	}

	session, err := u.gateway.InitializeTransaction(ctx, paystack.TransactionRequest{
		Email:     profile.Email,
		Amount:    payment.AmountInKobo(),
		Reference: reference,
		Metadata: map[string]interface{}{
			"contract_id":  contract.ID.String(),
			"user_id":      profile.ID.String(),
			"pricing_tier": string(contract.PricingTier),
		},
		CallbackURL: u.appURL + "/dashboard",
	})
	if err != nil {
		logger.LogPaymentEvent(ctx, "initialize_failed", reference, zap.Error(err))
		return nil, err
	}

	logger.LogContractEvent(ctx, "checkout", contract.ID.String(),
		zap.String("tier", string(contract.PricingTier)),
		zap.String("reference", reference),
	)
	return &entities.CheckoutResult{
		Contract:         contract,
		Payment:          payment,
		AuthorizationURL: session.AuthorizationURL,
		AccessCode:       session.AccessCode,
		Reference:        reference,
	}, nil
}

// Upload attaches the original document to a paid contract
func (u *ContractUsecase) Upload(ctx context.Context, actor Actor, contractID string, file *entities.UploadedFile) (*entities.UploadResult, error) {
	id, ok := utils.ParseUUID(contractID)
	if !ok {
		return nil, domainerrors.BadRequest("Missing or invalid contractId")
	}
	if file == nil {
		return nil, domainerrors.BadRequest("File is required")
	}

	profile, err := u.requireKYC(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	contract, err := u.contractRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.StateMismatch(msgNotReadyForUpload)
		}
		return nil, err
	}
	if contract.UserID != actor.ID || !contract.CanUpload() {
		return nil, domainerrors.StateMismatch(msgNotReadyForUpload)
	}

	checked, err := filecheck.Validate(filecheck.ContractRules, file.Name, file.ContentType, file.Data)
	if err != nil {
		return nil, fileError(err)
	}

	key := fmt.Sprintf("%s/%s-%s-%d%s", entities.FolderContracts, actor.ID, contract.ID, u.now().UnixMilli(), checked.Extension)
	fileURL, err := u.storage.Upload(ctx, key, file.Data, checked.ContentType)
	if err != nil {
		logger.Error(ctx, "Failed to upload contract", zap.String("contract_id", contract.ID.String()), zap.Error(err))
		return nil, domainerrors.InternalServerError("Failed to upload file")
	}

	title := strings.TrimSpace(file.Name)
	status := entities.ContractPaymentConfirmed
	err = u.contractRepo.Update(ctx, contract.ID, repositories.ContractGuard{
		Statuses:        []entities.ContractStatus{entities.ContractAwaitingUpload},
		PaymentStatuses: []entities.ContractPaymentStatus{entities.ContractPaymentCompleted},
		UserID:          &actor.ID,
	}, repositories.ContractChanges{
		Status:          &status,
		Title:           &title,
		OriginalFileURL: &fileURL,
	})
	if err != nil {
		if delErr := u.storage.Delete(ctx, fileURL); delErr != nil {
			logger.Warn(ctx, "Failed to remove orphaned upload", zap.String("url", fileURL), zap.Error(delErr))
		}
		if isGuardMiss(err) {
			return nil, domainerrors.StateMismatch(msgNotReadyForUpload)
		}
		return nil, err
	}

	logger.LogContractEvent(ctx, "uploaded", contract.ID.String(), zap.String("url", fileURL))
	u.notifier.NotifyAdmins(ctx, TemplateContractUploaded, map[string]interface{}{
		"user_name":      profile.DisplayName("Client"),
		"user_email":     profile.Email,
		"contract_title": title,
		"tier_name":      entities.TierName(contract.PricingTier),
	})

	return &entities.UploadResult{ContractID: contract.ID.String(), FileURL: fileURL}, nil
}

// Assign hands a paid, uploaded contract to a lawyer
func (u *ContractUsecase) Assign(ctx context.Context, input *entities.AssignContractInput) (*entities.Contract, error) {
	contractID, ok := utils.ParseUUID(input.ContractID)
	if !ok {
		return nil, domainerrors.BadRequest("Missing or invalid contractId")
	}
	lawyerID, ok := utils.ParseUUID(input.LawyerID)
	if !ok {
		return nil, domainerrors.BadRequest("Missing or invalid lawyerId")
	}

	contract, err := u.contractRepo.GetByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.StateMismatch(msgNotReadyForAssignment)
		}
		return nil, err
	}
	if !contract.CanAssign() {
		return nil, domainerrors.StateMismatch(msgNotReadyForAssignment)
	}

	lawyer, err := u.profileRepo.GetByID(ctx, lawyerID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Lawyer not found")
		}
		return nil, err
	}
	if lawyer.Role != entities.UserRoleLawyer {
		return nil, domainerrors.BadRequest("Selected user is not a lawyer")
	}

	status := entities.ContractAssigned
	err = u.contractRepo.Update(ctx, contract.ID, repositories.ContractGuard{
		Statuses:   []entities.ContractStatus{entities.ContractPaymentConfirmed},
		Unassigned: true,
	}, repositories.ContractChanges{
		Status:   &status,
		LawyerID: &lawyerID,
	})
	if err != nil {
		if isGuardMiss(err) {
			return nil, domainerrors.StateMismatch(msgNotReadyForAssignment)
		}
		return nil, err
	}
	contract.Status = status
	contract.LawyerID = &lawyerID

	logger.LogContractEvent(ctx, "assigned", contract.ID.String(), zap.String("lawyer_id", lawyerID.String()))

	clientName := "Client"
	if client, err := u.profileRepo.GetByID(ctx, contract.UserID); err == nil {
		clientName = client.DisplayName("Client")
	}
	u.notifier.Notify(ctx, TemplateContractAssigned, lawyer.Email, map[string]interface{}{
		"lawyer_name":    lawyer.DisplayName("Counsel"),
		"user_name":      clientName,
		"contract_title": contract.Title,
		"tier_name":      entities.TierName(contract.PricingTier),
	})
	return contract, nil
}

// reviewable loads a contract the actor may act on as its reviewer
func (u *ContractUsecase) reviewable(ctx context.Context, actor Actor, id uuid.UUID) (*entities.Contract, error) {
	contract, err := u.contractRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.StateMismatch(msgNotInReview)
		}
		return nil, err
	}
	if !contract.InReview() {
		return nil, domainerrors.StateMismatch(msgNotInReview)
	}
	if !actor.IsAdmin() && !contract.IsAssignedTo(actor.ID) {
		return nil, domainerrors.Forbidden("You are not assigned to this contract")
	}
	return contract, nil
}

// UpdateStatus lets the assigned lawyer move a contract between the review states
func (u *ContractUsecase) UpdateStatus(ctx context.Context, actor Actor, input *entities.UpdateStatusInput) (*entities.Contract, error) {
	id, ok := utils.ParseUUID(input.ContractID)
	if !ok {
		return nil, domainerrors.BadRequest("Missing or invalid contractId")
	}
	if !entities.IsLawyerSettable(input.Status) {
		return nil, domainerrors.BadRequest("Invalid status")
	}

	contract, err := u.reviewable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	previous := input.PreviousStatus
	if previous == "" {
		previous = contract.Status
	}

	status := input.Status
	err = u.contractRepo.Update(ctx, contract.ID, repositories.ContractGuard{
		Statuses: entities.ReviewableStatuses,
	}, repositories.ContractChanges{Status: &status})
	if err != nil {
		if isGuardMiss(err) {
			return nil, domainerrors.StateMismatch(msgNotInReview)
		}
		return nil, err
	}
	contract.Status = status

	logger.LogContractEvent(ctx, "status_updated", contract.ID.String(),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
	)

	if status == entities.ContractUnderReview && previous != entities.ContractUnderReview {
		u.notifyClient(ctx, contract, TemplateUnderReview, map[string]interface{}{
			"status_label": status.Label(),
		})
	}
	return contract, nil
}

// CompleteReview records the reviewed document and closes the contract
func (u *ContractUsecase) CompleteReview(ctx context.Context, actor Actor, input *entities.CompleteReviewInput) (*entities.Contract, error) {
	id, ok := utils.ParseUUID(input.ContractID)
	if !ok {
		return nil, domainerrors.BadRequest("Missing or invalid contractId")
	}
	reviewedURL := strings.TrimSpace(input.ReviewedFileURL)
	if reviewedURL == "" {
		return nil, domainerrors.BadRequest("Missing required fields: contractId, reviewedFileUrl")
	}

	contract, err := u.reviewable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return u.complete(ctx, contract, reviewedURL)
}

// UploadReviewed stores the lawyer's reviewed document and completes the review
func (u *ContractUsecase) UploadReviewed(ctx context.Context, actor Actor, contractID string, file *entities.UploadedFile) (*entities.Contract, error) {
	id, ok := utils.ParseUUID(contractID)
	if !ok {
		return nil, domainerrors.BadRequest("Missing or invalid contractId")
	}
	if file == nil {
		return nil, domainerrors.BadRequest("File is required")
	}

	contract, err := u.reviewable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	checked, err := filecheck.Validate(filecheck.ContractRules, file.Name, file.ContentType, file.Data)
	if err != nil {
		return nil, fileError(err)
	}

	key := fmt.Sprintf("%s/%s-%d%s", entities.FolderReviewedContracts, contract.ID, u.now().UnixMilli(), checked.Extension)
	fileURL, err := u.storage.Upload(ctx, key, file.Data, checked.ContentType)
	if err != nil {
		logger.Error(ctx, "Failed to upload reviewed contract", zap.String("contract_id", contract.ID.String()), zap.Error(err))
		return nil, domainerrors.InternalServerError("Failed to upload file")
	}

	completed, err := u.complete(ctx, contract, fileURL)
	if err != nil {
		if delErr := u.storage.Delete(ctx, fileURL); delErr != nil {
			logger.Warn(ctx, "Failed to remove orphaned upload", zap.String("url", fileURL), zap.Error(delErr))
		}
		return nil, err
	}
	return completed, nil
}

func (u *ContractUsecase) complete(ctx context.Context, contract *entities.Contract, reviewedURL string) (*entities.Contract, error) {
	status := entities.ContractCompleted
	err := u.contractRepo.Update(ctx, contract.ID, repositories.ContractGuard{
		Statuses: entities.ReviewableStatuses,
	}, repositories.ContractChanges{
		Status:          &status,
		ReviewedFileURL: &reviewedURL,
	})
	if err != nil {
		if isGuardMiss(err) {
			return nil, domainerrors.StateMismatch(msgNotInReview)
		}
		return nil, err
	}
	contract.Status = status
	contract.ReviewedFileURL = null.StringFrom(reviewedURL)

	logger.LogContractEvent(ctx, "review_completed", contract.ID.String())
	u.notifyClient(ctx, contract, TemplateReviewCompleted, nil)
	return contract, nil
}

// notifyClient emails the contract owner, naming the assigned lawyer
func (u *ContractUsecase) notifyClient(ctx context.Context, contract *entities.Contract, template string, extra map[string]interface{}) {
	client, err := u.profileRepo.GetByID(ctx, contract.UserID)
	if err != nil {
		logger.Warn(ctx, "Contract owner not found for notification",
			zap.String("contract_id", contract.ID.String()), zap.Error(err))
		return
	}

	lawyerName := "Your lawyer"
	if contract.LawyerID != nil {
		if lawyer, err := u.profileRepo.GetByID(ctx, *contract.LawyerID); err == nil {
			lawyerName = lawyer.DisplayName("Your lawyer")
		}
	}

	data := map[string]interface{}{
		"user_name":      client.DisplayName("Client"),
		"lawyer_name":    lawyerName,
		"contract_title": contract.Title,
	}
	for k, v := range extra {
		data[k] = v
	}
	u.notifier.Notify(ctx, template, client.Email, data)
}

// Delete removes a contract, its payments and its stored documents
func (u *ContractUsecase) Delete(ctx context.Context, actor Actor, contractID string) (*entities.DeleteResult, error) {
	id, ok := utils.ParseUUID(contractID)
	if !ok {
		return nil, domainerrors.BadRequest("Missing or invalid contractId")
	}

	contract, err := u.contractRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(msgContractNotFound)
		}
		return nil, err
	}
	if !actor.IsAdmin() && contract.UserID != actor.ID {
		return nil, domainerrors.NotFound(msgContractNotFound)
	}

	result := &entities.DeleteResult{
		Original: u.deleteObject(ctx, contract.ID, contract.OriginalFileURL),
		Reviewed: u.deleteObject(ctx, contract.ID, contract.ReviewedFileURL),
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.paymentRepo.DeleteByContract(txCtx, contract.ID); err != nil {
			return err
		}
		return u.contractRepo.Delete(txCtx, contract.ID)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(msgContractNotFound)
		}
		return nil, err
	}

	logger.LogContractEvent(ctx, "deleted", contract.ID.String(),
		zap.String("actor_id", actor.ID.String()),
		zap.Bool("original_deleted", result.Original),
		zap.Bool("reviewed_deleted", result.Reviewed),
	)
	return result, nil
}

func (u *ContractUsecase) deleteObject(ctx context.Context, contractID uuid.UUID, fileURL null.String) bool {
	if !fileURL.Valid || fileURL.String == "" {
		return false
	}
	if err := u.storage.Delete(ctx, fileURL.String); err != nil {
		if !errors.Is(err, storage.ErrObjectNotFound) {
			logger.Warn(ctx, "Failed to delete contract file",
				zap.String("contract_id", contractID.String()),
				zap.String("url", fileURL.String),
				zap.Error(err),
			)
		}
		return false
	}
	return true
}

// List returns the contracts visible to the actor's role
func (u *ContractUsecase) List(ctx context.Context, actor Actor, status entities.ContractStatus, pagination utils.PaginationParams) ([]*entities.Contract, int64, error) {
	if status != "" && !status.Valid() {
		return nil, 0, domainerrors.BadRequest("Invalid status filter")
	}

	filter := entities.ContractFilter{Status: status}
	switch actor.Role {
	case entities.UserRoleAdmin:
	case entities.UserRoleLawyer:
		filter.LawyerID = &actor.ID
	default:
		filter.UserID = &actor.ID
	}
	return u.contractRepo.List(ctx, filter, pagination)
}

// Get returns a contract visible to the actor
func (u *ContractUsecase) Get(ctx context.Context, actor Actor, contractID string) (*entities.Contract, error) {
	id, ok := utils.ParseUUID(contractID)
	if !ok {
		return nil, domainerrors.NotFound(msgContractNotFound)
	}
	contract, err := u.contractRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(msgContractNotFound)
		}
		return nil, err
	}
	if !contract.VisibleTo(actor.ID, actor.Role) {
		return nil, domainerrors.NotFound(msgContractNotFound)
	}
	return contract, nil
}

func isGuardMiss(err error) bool {
	return errors.Is(err, domainerrors.ErrInvalidState) || errors.Is(err, domainerrors.ErrNotFound)
}
