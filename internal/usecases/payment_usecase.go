package usecases

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"legalease.backend/internal/domain/entities"
	domainerrors "legalease.backend/internal/domain/errors"
	"legalease.backend/internal/domain/repositories"
	"legalease.backend/internal/infrastructure/paystack"
	"legalease.backend/pkg/logger"
)

// Webhook outcomes, also used as metric labels
const (
	OutcomeProcessed        = "processed"
	OutcomeDuplicate        = "duplicate"
	OutcomeUnknownReference = "unknown_reference"
	OutcomeIgnored          = "ignored"
	OutcomeError            = "error"
)

// PaymentUsecase applies gateway outcomes to payments and their contracts
type PaymentUsecase struct {
	paymentRepo  repositories.PaymentRepository
	contractRepo repositories.ContractRepository
	profileRepo  repositories.ProfileRepository
	uow          repositories.UnitOfWork
	gateway      PaymentGateway
	notifier     Notifier
}

// NewPaymentUsecase creates a new payment usecase
func NewPaymentUsecase(
	paymentRepo repositories.PaymentRepository,
	contractRepo repositories.ContractRepository,
	profileRepo repositories.ProfileRepository,
	uow repositories.UnitOfWork,
	gateway PaymentGateway,
	notifier Notifier,
) *PaymentUsecase {
	return &PaymentUsecase{
		paymentRepo:  paymentRepo,
		contractRepo: contractRepo,
		profileRepo:  profileRepo,
		uow:          uow,
		gateway:      gateway,
		notifier:     notifier,
	}
}

// transition is what a committed webhook changed, used for notifications
type transition struct {
	payment  *entities.Payment
	contract *entities.Contract
}

// HandleEvent applies a verified webhook event. Only storage failures return an error.
func (u *PaymentUsecase) HandleEvent(ctx context.Context, event *entities.GatewayEvent) (string, error) {
	switch event.Event {
	case entities.EventChargeSuccess:
		return u.markSuccess(ctx, event.Reference)
	case entities.EventChargeFailed:
		return u.markFailed(ctx, event.Reference, event.GatewayResponse)
	}
	logger.Debug(ctx, "Ignoring webhook event", zap.String("event", event.Event))
	return OutcomeIgnored, nil
}

// markSuccess moves the payment to success and the contract out of awaiting_payment in one transaction.
// Redelivery finds the payment already successful and changes nothing.
func (u *PaymentUsecase) markSuccess(ctx context.Context, reference string) (string, error) {
	var done *transition
	outcome := OutcomeDuplicate

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		payment, err := u.paymentRepo.GetByReference(lockCtx, reference)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				outcome = OutcomeUnknownReference
				return nil
			}
			return err
		}
		if payment.Status == entities.PaymentStatusSuccess {
			return nil
		}

		err = u.paymentRepo.UpdateStatus(txCtx, payment.ID, entities.PaymentStatusSuccess,
			entities.PaymentStatusPending, entities.PaymentStatusFailed)
		if err != nil {
			if errors.Is(err, domainerrors.ErrInvalidState) {
				return nil
			}
			return err
		}
		payment.Status = entities.PaymentStatusSuccess
		outcome = OutcomeProcessed

		contract, err := u.contractRepo.GetByID(lockCtx, payment.ContractID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				logger.Warn(ctx, "Contract missing for payment", zap.String("reference", reference))
				done = &transition{payment: payment}
				return nil
			}
			return err
		}

		paid := entities.ContractPaymentCompleted
		guard := repositories.ContractGuard{}
		changes := repositories.ContractChanges{PaymentStatus: &paid}
		if contract.Status == entities.ContractAwaitingPayment {
			next := contract.StatusAfterPayment()
			guard.Statuses = []entities.ContractStatus{entities.ContractAwaitingPayment}
			changes.Status = &next
		}
		if err := u.contractRepo.Update(txCtx, contract.ID, guard, changes); err != nil {
			if !errors.Is(err, domainerrors.ErrInvalidState) {
				return err
			}
		} else {
			contract.PaymentStatus = paid
			if changes.Status != nil {
				contract.Status = *changes.Status
			}
		}

		done = &transition{payment: payment, contract: contract}
		return nil
	})
	if err != nil {
		logger.LogPaymentEvent(ctx, "charge_success_failed", reference, zap.Error(err))
		return OutcomeError, err
	}

	logger.LogPaymentEvent(ctx, "charge_success", reference, zap.String("outcome", outcome))
	if done != nil {
		u.notifySuccess(ctx, done)
	}
	return outcome, nil
}

// markFailed records a failed charge. A successful payment is never downgraded.
func (u *PaymentUsecase) markFailed(ctx context.Context, reference, reason string) (string, error) {
	var done *transition
	outcome := OutcomeDuplicate

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		payment, err := u.paymentRepo.GetByReference(lockCtx, reference)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				outcome = OutcomeUnknownReference
				return nil
			}
			return err
		}
		if payment.Status != entities.PaymentStatusPending {
			return nil
		}

		err = u.paymentRepo.UpdateStatus(txCtx, payment.ID, entities.PaymentStatusFailed, entities.PaymentStatusPending)
		if err != nil {
			if errors.Is(err, domainerrors.ErrInvalidState) {
				return nil
			}
			return err
		}
		payment.Status = entities.PaymentStatusFailed
		outcome = OutcomeProcessed

		failed := entities.ContractPaymentFailed
		err = u.contractRepo.Update(txCtx, payment.ContractID, repositories.ContractGuard{
			Statuses:        []entities.ContractStatus{entities.ContractAwaitingPayment},
			PaymentStatuses: []entities.ContractPaymentStatus{entities.ContractPaymentPending, entities.ContractPaymentFailed},
		}, repositories.ContractChanges{PaymentStatus: &failed})
		if err != nil && !errors.Is(err, domainerrors.ErrInvalidState) && !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		contract, err := u.contractRepo.GetByID(txCtx, payment.ContractID)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}
		done = &transition{payment: payment, contract: contract}
		return nil
	})
	if err != nil {
		logger.LogPaymentEvent(ctx, "charge_failed_error", reference, zap.Error(err))
		return OutcomeError, err
	}

	logger.LogPaymentEvent(ctx, "charge_failed", reference, zap.String("outcome", outcome), zap.String("reason", reason))
	if done != nil {
		u.notifyFailure(ctx, done, reason)
	}
	return outcome, nil
}

func (u *PaymentUsecase) notificationData(ctx context.Context, t *transition) (map[string]interface{}, string) {
	data := map[string]interface{}{
		"amount":         FormatNaira(t.payment.Amount),
		"reference":      t.payment.PaystackReference,
		"contract_title": "your contract",
		"tier_name":      "",
		"user_name":      "Client",
		"user_email":     "",
	}
	if t.contract != nil {
		data["contract_title"] = t.contract.Title
		data["tier_name"] = entities.TierName(t.contract.PricingTier)
	}

	email := ""
	if profile, err := u.profileRepo.GetByID(ctx, t.payment.UserID); err == nil {
		email = profile.Email
		data["user_name"] = profile.DisplayName("Client")
		data["user_email"] = profile.Email
	} else {
		logger.Warn(ctx, "Payer profile not found for notification",
			zap.String("reference", t.payment.PaystackReference), zap.Error(err))
	}
	return data, email
}

func (u *PaymentUsecase) notifySuccess(ctx context.Context, t *transition) {
	data, email := u.notificationData(ctx, t)
	if email != "" {
		u.notifier.Notify(ctx, TemplatePaymentConfirmation, email, data)
	}
	u.notifier.NotifyAdmins(ctx, TemplatePaymentReceived, data)
}

func (u *PaymentUsecase) notifyFailure(ctx context.Context, t *transition, reason string) {
	data, email := u.notificationData(ctx, t)
	data["reason"] = reason
	if email != "" {
		u.notifier.Notify(ctx, TemplatePaymentFailedUser, email, data)
	}
	u.notifier.NotifyAdmins(ctx, TemplatePaymentFailedAdmin, data)
}

// Initialize proxies a transaction initialization. Amount is in naira.
func (u *PaymentUsecase) Initialize(ctx context.Context, input *entities.InitializePaymentInput) (*entities.PaymentInitialization, error) {
	email := normalizeEmail(input.Email)
	reference := strings.TrimSpace(input.Reference)
	if email == "" || reference == "" || input.Amount <= 0 {
		return nil, domainerrors.BadRequest("Missing required fields: email, amount, reference")
	}

	result, err := u.gateway.InitializeTransaction(ctx, paystack.TransactionRequest{
		Email:     email,
		Amount:    input.Amount * 100,
		Reference: reference,
		Metadata:  input.Metadata,
	})
	if err != nil {
		logger.LogPaymentEvent(ctx, "initialize_failed", reference, zap.Error(err))
		return nil, err
	}
	return result, nil
}

// Verify asks the gateway for a transaction's status and reconciles a success locally
func (u *PaymentUsecase) Verify(ctx context.Context, reference string) (*entities.PaymentVerification, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, domainerrors.BadRequest("Reference is required")
	}

	verification, err := u.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		logger.LogPaymentEvent(ctx, "verify_failed", reference, zap.Error(err))
		return nil, err
	}

	if verification.Status == string(entities.PaymentStatusSuccess) {
		if _, err := u.markSuccess(ctx, reference); err != nil {
			return nil, err
		}
	}
	return verification, nil
}
