package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"legalease.backend/internal/domain/entities"
	domainerrors "legalease.backend/internal/domain/errors"
	"legalease.backend/internal/interfaces/http/response"
	"legalease.backend/internal/usecases"
	"legalease.backend/pkg/filecheck"
	"legalease.backend/pkg/utils"
)

type KYCService interface {
	Submit(ctx context.Context, actor usecases.Actor, input *entities.SubmitKYCInput, file *entities.UploadedFile) (*entities.KYCData, error)
	GetMine(ctx context.Context, userID uuid.UUID) (*entities.KYCData, error)
	List(ctx context.Context, status entities.KYCStatus, pagination utils.PaginationParams) ([]*entities.KYCData, int64, error)
	Verify(ctx context.Context, reviewer usecases.Actor, input *entities.VerifyKYCInput) (entities.KYCStatus, error)
}

// KYCHandler handles identity verification endpoints
type KYCHandler struct {
	kycUsecase KYCService
}

// NewKYCHandler creates a new KYC handler
func NewKYCHandler(kycUsecase KYCService) *KYCHandler {
	return &KYCHandler{kycUsecase: kycUsecase}
}

// Submit stores a KYC submission with its ID document
// POST /api/kyc
func (h *KYCHandler) Submit(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	limitUpload(c, filecheck.KYCRules)
	var input entities.SubmitKYCInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, formError(err, filecheck.KYCRules, domainerrors.BadRequest("All personal and identity fields are required")))
		return
	}
	file, err := readUpload(c, "idDocument", filecheck.KYCRules)
	if err != nil {
		response.Error(c, err)
		return
	}

	kyc, err := h.kycUsecase.Submit(c.Request.Context(), actor, &input, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "KYC submitted successfully", gin.H{"kyc": kyc})
}

// GetMine returns the caller's submission
// GET /api/kyc/me
func (h *KYCHandler) GetMine(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	kyc, err := h.kycUsecase.GetMine(c.Request.Context(), actor.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"kyc": kyc})
}

// List returns submissions for review
// GET /api/admin/kyc?status=pending
func (h *KYCHandler) List(c *gin.Context) {
	pagination := paginationFrom(c)
	items, total, err := h.kycUsecase.List(c.Request.Context(), entities.KYCStatus(c.Query("status")), pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, listBody("submissions", items, total, pagination))
}

// Verify approves or rejects a submission
// POST /api/kyc/verify
func (h *KYCHandler) Verify(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var input entities.VerifyKYCInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}

	status, err := h.kycUsecase.Verify(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "KYC submission "+string(status)+" successfully", gin.H{"status": status})
}
