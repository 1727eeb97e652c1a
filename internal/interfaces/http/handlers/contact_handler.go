package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"legalease.backend/internal/domain/entities"
	domainerrors "legalease.backend/internal/domain/errors"
	"legalease.backend/internal/interfaces/http/response"
)

type ContactService interface {
	Submit(ctx context.Context, input *entities.ContactInput) (*entities.ContactMessage, error)
}

// ContactHandler handles the public contact form
type ContactHandler struct {
	contactUsecase ContactService
}

func NewContactHandler(contactUsecase ContactService) *ContactHandler {
	return &ContactHandler{contactUsecase: contactUsecase}
}

// Submit
// POST /api/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var input entities.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Name, email, and message are required"))
		return
	}

	if _, err := h.contactUsecase.Submit(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Message sent successfully", nil)
}
