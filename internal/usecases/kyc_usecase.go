package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"legalease.backend/internal/domain/entities"
	domainerrors "legalease.backend/internal/domain/errors"
	"legalease.backend/internal/domain/repositories"
	"legalease.backend/pkg/filecheck"
	"legalease.backend/pkg/logger"
	"legalease.backend/pkg/utils"
)

// KYCUsecase handles identity verification submissions and reviews
type KYCUsecase struct {
	kycRepo     repositories.KYCRepository
	profileRepo repositories.ProfileRepository
	storage     DocumentStorage
	notifier    Notifier
	now         func() time.Time
}

// NewKYCUsecase creates a new KYC usecase
func NewKYCUsecase(
	kycRepo repositories.KYCRepository,
	profileRepo repositories.ProfileRepository,
	storage DocumentStorage,
	notifier Notifier,
) *KYCUsecase {
	return &KYCUsecase{
		kycRepo:     kycRepo,
		profileRepo: profileRepo,
		storage:     storage,
		notifier:    notifier,
		now:         time.Now,
	}
}

// Submit stores the identity document and records a pending submission.
// A rejected submission may be replaced; pending or approved ones may not.
func (u *KYCUsecase) Submit(ctx context.Context, actor Actor, input *entities.SubmitKYCInput, file *entities.UploadedFile) (*entities.KYCData, error) {
	if !input.IDType.Valid() {
		return nil, domainerrors.BadRequest("Invalid ID type")
	}
	if !input.TermsAccepted || !input.PrivacyAccepted {
		return nil, domainerrors.BadRequest("You must accept the terms of service and privacy policy")
	}
	if file == nil {
		return nil, domainerrors.BadRequest("ID document is required")
	}
	checked, err := filecheck.Validate(filecheck.KYCRules, file.Name, file.ContentType, file.Data)
	if err != nil {
		return nil, fileError(err)
	}

	existing, err := u.kycRepo.GetByUserID(ctx, actor.ID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil && !existing.CanResubmit() {
		return nil, domainerrors.Conflict("KYC submission already exists")
	}

	key := fmt.Sprintf("%s/%s-%d%s", entities.FolderKYCDocuments, actor.ID, u.now().UnixMilli(), checked.Extension)
	fileURL, err := u.storage.Upload(ctx, key, file.Data, checked.ContentType)
	if err != nil {
		logger.Error(ctx, "Failed to upload KYC document", zap.String("user_id", actor.ID.String()), zap.Error(err))
		return nil, domainerrors.InternalServerError("Failed to upload ID document")
	}

	kyc := &entities.KYCData{
		ID:              utils.GenerateUUIDv7(),
		UserID:          actor.ID,
		FirstName:       strings.TrimSpace(input.FirstName),
		LastName:        strings.TrimSpace(input.LastName),
		PhoneNumber:     strings.TrimSpace(input.PhoneNumber),
		Address:         strings.TrimSpace(input.Address),
		City:            strings.TrimSpace(input.City),
		State:           strings.TrimSpace(input.State),
		Country:         strings.TrimSpace(input.Country),
		IDType:          input.IDType,
		IDNumber:        strings.TrimSpace(input.IDNumber),
		IDDocumentURL:   null.StringFrom(fileURL),
		TermsAccepted:   input.TermsAccepted,
		PrivacyAccepted: input.PrivacyAccepted,
		Status:          entities.KYCPending,
	}

	if existing != nil {
		kyc.ID = existing.ID
		err = u.kycRepo.Resubmit(ctx, kyc)
	} else {
		err = u.kycRepo.Create(ctx, kyc)
	}
	if err != nil {
		u.discard(ctx, fileURL)
		switch {
		case errors.Is(err, domainerrors.ErrAlreadyExists), errors.Is(err, domainerrors.ErrInvalidState):
			return nil, domainerrors.Conflict("KYC submission already exists")
		}
		return nil, err
	}

	logger.Info(ctx, "KYC submitted", zap.String("user_id", actor.ID.String()), zap.Bool("resubmission", existing != nil))
	u.notifier.NotifyAdmins(ctx, TemplateKYCSubmitted, map[string]interface{}{
		"full_name":  kyc.FullName(),
		"user_email": actor.Email,
		"id_type":    idTypeLabel(kyc.IDType),
	})
	return kyc, nil
}

func (u *KYCUsecase) discard(ctx context.Context, fileURL string) {
	if err := u.storage.Delete(ctx, fileURL); err != nil {
		logger.Warn(ctx, "Failed to remove orphaned KYC document", zap.String("url", fileURL), zap.Error(err))
	}
}

// GetMine returns the caller's submission
func (u *KYCUsecase) GetMine(ctx context.Context, userID uuid.UUID) (*entities.KYCData, error) {
	kyc, err := u.kycRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("KYC submission not found")
		}
		return nil, err
	}
	return kyc, nil
}

// List returns submissions, optionally filtered by status
func (u *KYCUsecase) List(ctx context.Context, status entities.KYCStatus, pagination utils.PaginationParams) ([]*entities.KYCData, int64, error) {
	switch status {
	case "", entities.KYCPending, entities.KYCApproved, entities.KYCRejected:
	default:
		return nil, 0, domainerrors.BadRequest("Invalid status filter")
	}
	return u.kycRepo.List(ctx, status, pagination)
}

// Verify records an admin decision and mirrors it onto the profile
func (u *KYCUsecase) Verify(ctx context.Context, reviewer Actor, input *entities.VerifyKYCInput) (entities.KYCStatus, error) {
	userID, ok := utils.ParseUUID(input.UserID)
	if !ok {
		return "", domainerrors.BadRequest("Missing required fields: userId, action")
	}

	status, ok := input.Action.Result()
	if !ok {
		return "", domainerrors.BadRequest("Invalid action. Must be 'approve' or 'reject'")
	}
	reason := strings.TrimSpace(input.Reason)
	switch status {
	case entities.KYCApproved:
		reason = ""
	case entities.KYCRejected:
		if reason == "" {
			return "", domainerrors.BadRequest("Rejection reason is required")
		}
	}

	if _, err := u.kycRepo.GetByUserID(ctx, userID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.NotFound("KYC submission not found")
		}
		return "", err
	}

	err := u.kycRepo.Review(ctx, userID, repositories.KYCReview{
		Status:          status,
		ReviewedBy:      reviewer.ID,
		ReviewedAt:      u.now(),
		RejectionReason: reason,
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.NotFound("KYC submission not found")
		}
		return "", err
	}

	if err := u.profileRepo.SetKYCCompleted(ctx, userID, status == entities.KYCApproved); err != nil {
		logger.Error(ctx, "Failed to update profile KYC flag", zap.String("user_id", userID.String()), zap.Error(err))
	}

	logger.Info(ctx, "KYC reviewed",
		zap.String("user_id", userID.String()),
		zap.String("reviewer_id", reviewer.ID.String()),
		zap.String("status", string(status)),
	)

	if profile, err := u.profileRepo.GetByID(ctx, userID); err == nil {
		decision := "Approved"
		if status == entities.KYCRejected {
			decision = "Rejected"
		}
		u.notifier.Notify(ctx, TemplateKYCDecision, profile.Email, map[string]interface{}{
			"user_name": profile.DisplayName("Client"),
			"approved":  status == entities.KYCApproved,
			"decision":  decision,
			"reason":    reason,
		})
	}
	return status, nil
}

func idTypeLabel(t entities.IDType) string {
	switch t {
	case entities.IDTypeNIN:
		return "National Identification Number"
	case entities.IDTypePassport:
		return "International Passport"
	case entities.IDTypeDriversLicense:
		return "Driver's License"
	}
	return string(t)
}

// fileError turns a filecheck rejection into a 400
func fileError(err error) error {
	var invalid *filecheck.Error
	if errors.As(err, &invalid) {
		return domainerrors.BadRequest(invalid.Message)
	}
	return err
}
