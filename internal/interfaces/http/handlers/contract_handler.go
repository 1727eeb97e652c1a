package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"legalease.backend/internal/domain/entities"
	domainerrors "legalease.backend/internal/domain/errors"
	"legalease.backend/internal/interfaces/http/response"
	"legalease.backend/internal/usecases"
	"legalease.backend/pkg/filecheck"
	"legalease.backend/pkg/utils"
)

type ContractService interface {
	Pricing() []entities.TierInfo
	Checkout(ctx context.Context, actor usecases.Actor, input *entities.CheckoutInput) (*entities.CheckoutResult, error)
	Upload(ctx context.Context, actor usecases.Actor, contractID string, file *entities.UploadedFile) (*entities.UploadResult, error)
	Assign(ctx context.Context, input *entities.AssignContractInput) (*entities.Contract, error)
	UpdateStatus(ctx context.Context, actor usecases.Actor, input *entities.UpdateStatusInput) (*entities.Contract, error)
	CompleteReview(ctx context.Context, actor usecases.Actor, input *entities.CompleteReviewInput) (*entities.Contract, error)
	UploadReviewed(ctx context.Context, actor usecases.Actor, contractID string, file *entities.UploadedFile) (*entities.Contract, error)
	Delete(ctx context.Context, actor usecases.Actor, contractID string) (*entities.DeleteResult, error)
	List(ctx context.Context, actor usecases.Actor, status entities.ContractStatus, pagination utils.PaginationParams) ([]*entities.Contract, int64, error)
	Get(ctx context.Context, actor usecases.Actor, contractID string) (*entities.Contract, error)
}

// ContractHandler handles the contract review lifecycle
type ContractHandler struct {
	contractUsecase ContractService
}

// NewContractHandler creates a new contract handler
func NewContractHandler(contractUsecase ContractService) *ContractHandler {
	return &ContractHandler{contractUsecase: contractUsecase}
}

func contractSummary(contract *entities.Contract) gin.H {
	return gin.H{
		"id":        contract.ID,
		"lawyer_id": contract.LawyerID,
		"status":    contract.Status,
	}
}

// Pricing returns the tier catalogue
// GET /api/pricing
func (h *ContractHandler) Pricing(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"tiers": h.contractUsecase.Pricing()})
}

// Checkout creates a contract and starts its payment
// POST /api/contracts/checkout
func (h *ContractHandler) Checkout(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var input entities.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("pricingTier is required"))
		return
	}

	result, err := h.contractUsecase.Checkout(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// Upload attaches the original document to a paid contract
// POST /api/contracts/upload
func (h *ContractHandler) Upload(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	limitUpload(c, filecheck.ContractRules)
	file, err := readUpload(c, "file", filecheck.ContractRules)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.contractUsecase.Upload(c.Request.Context(), actor, c.PostForm("contractId"), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Contract uploaded successfully", gin.H{
		"contractId": result.ContractID,
		"fileUrl":    result.FileURL,
	})
}

// Assign hands a contract to a lawyer
// POST /api/contracts/assign
func (h *ContractHandler) Assign(c *gin.Context) {
	var input entities.AssignContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}

	contract, err := h.contractUsecase.Assign(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Contract assigned successfully", gin.H{
		"contract": contractSummary(contract),
	})
}

// UpdateStatus moves a contract between the lawyer-settable states
// POST /api/contracts/update-status
func (h *ContractHandler) UpdateStatus(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var input entities.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}

	contract, err := h.contractUsecase.UpdateStatus(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Contract status updated successfully", gin.H{
		"contract": contractSummary(contract),
	})
}

// CompleteReview records the reviewed document by URL
// POST /api/contracts/complete-review
func (h *ContractHandler) CompleteReview(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var input entities.CompleteReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}

	contract, err := h.contractUsecase.CompleteReview(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Review completed successfully", gin.H{
		"contract": contractSummary(contract),
	})
}

// UploadReviewed stores the reviewed document and completes the review
// POST /api/contracts/upload-reviewed
func (h *ContractHandler) UploadReviewed(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	limitUpload(c, filecheck.ContractRules)
	file, err := readUpload(c, "file", filecheck.ContractRules)
	if err != nil {
		response.Error(c, err)
		return
	}

	contract, err := h.contractUsecase.UploadReviewed(c.Request.Context(), actor, c.PostForm("contractId"), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Reviewed contract uploaded successfully", gin.H{
		"contract": contractSummary(contract),
		"fileUrl":  contract.ReviewedFileURL.String,
	})
}

// Delete removes a contract, its payments and its files
// DELETE /api/contracts/delete?contractId=
func (h *ContractHandler) Delete(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	result, err := h.contractUsecase.Delete(c.Request.Context(), actor, c.Query("contractId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Contract deleted successfully", gin.H{"filesDeleted": result})
}

// List returns the contracts visible to the caller
// GET /api/contracts
func (h *ContractHandler) List(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	pagination := paginationFrom(c)
	items, total, err := h.contractUsecase.List(c.Request.Context(), actor, entities.ContractStatus(c.Query("status")), pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, listBody("contracts", items, total, pagination))
}

// Get returns one contract
// GET /api/contracts/:id
func (h *ContractHandler) Get(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	contract, err := h.contractUsecase.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contract": contract})
}
