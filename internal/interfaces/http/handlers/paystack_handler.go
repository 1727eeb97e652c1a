package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"legalease.backend/internal/domain/entities"
	domainerrors "legalease.backend/internal/domain/errors"
	"legalease.backend/internal/infrastructure/paystack"
	"legalease.backend/internal/interfaces/http/response"
	"legalease.backend/internal/usecases"
	"legalease.backend/pkg/logger"
	"legalease.backend/pkg/metrics"
)

type PaymentService interface {
	HandleEvent(ctx context.Context, event *entities.GatewayEvent) (string, error)
	Initialize(ctx context.Context, input *entities.InitializePaymentInput) (*entities.PaymentInitialization, error)
	Verify(ctx context.Context, reference string) (*entities.PaymentVerification, error)
}

// PaystackHandler handles the gateway webhook and the proxy routes
type PaystackHandler struct {
	paymentUsecase PaymentService
	secretKey      string
}

// NewPaystackHandler creates a new Paystack handler
func NewPaystackHandler(paymentUsecase PaymentService, secretKey string) *PaystackHandler {
	return &PaystackHandler{paymentUsecase: paymentUsecase, secretKey: secretKey}
}

// Webhook applies a signed gateway event.
// Verified events are always acknowledged unless storage failed, so Paystack retries only then.
// POST /api/paystack/webhook
func (h *PaystackHandler) Webhook(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Unable to read request body"))
		return
	}

	if !paystack.VerifySignature(h.secretKey, body, c.GetHeader(paystack.SignatureHeader)) {
		logger.Warn(ctx, "Rejected webhook with invalid signature", zap.String("ip", c.ClientIP()))
		metrics.WebhookEvent("unknown", "invalid_signature")
		response.Error(c, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidSignature, "Invalid signature", domainerrors.ErrInvalidSignature))
		return
	}

	event, err := paystack.ParseEvent(body)
	if err != nil {
		metrics.WebhookEvent("unknown", usecases.OutcomeIgnored)
		response.Success(c, http.StatusOK, gin.H{"received": true})
		return
	}

	outcome, err := h.paymentUsecase.HandleEvent(ctx, event)
	metrics.WebhookEvent(event.Event, outcome)
	if err != nil {
		logger.Error(ctx, "Webhook processing failed",
			zap.String("event", event.Event),
			zap.String("reference", event.Reference),
			zap.Error(err),
		)
		response.Error(c, domainerrors.InternalServerError("Failed to process webhook"))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"received": true})
}

// Initialize proxies a transaction initialization; amount is in naira
// POST /api/paystack/initialize
func (h *PaystackHandler) Initialize(c *gin.Context) {
	var input entities.InitializePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Missing required fields: email, amount, reference"))
		return
	}

	result, err := h.paymentUsecase.Initialize(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": true, "data": result})
}

// Verify checks a transaction with the gateway
// GET /api/paystack/verify?reference=
func (h *PaystackHandler) Verify(c *gin.Context) {
	result, err := h.paymentUsecase.Verify(c.Request.Context(), c.Query("reference"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": true, "data": result})
}
