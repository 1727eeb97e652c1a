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
	"legalease.backend/pkg/utils"
)

type AdminService interface {
	ListLawyers(ctx context.Context) ([]*entities.Profile, error)
	ListUsers(ctx context.Context, search string, pagination utils.PaginationParams) ([]*entities.Profile, int64, error)
	SetRole(ctx context.Context, actor usecases.Actor, userID uuid.UUID, role entities.UserRole) (*entities.Profile, error)
}

// AdminHandler handles admin endpoints
type AdminHandler struct {
	adminUsecase AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase AdminService) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase}
}

// ListLawyers returns lawyers available for assignment
// GET /api/admin/lawyers
func (h *AdminHandler) ListLawyers(c *gin.Context) {
	lawyers, err := h.adminUsecase.ListLawyers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"lawyers": lawyers})
}

// ListUsers lists all users
// GET /api/admin/users?search=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	pagination := paginationFrom(c)
	users, total, err := h.adminUsecase.ListUsers(c.Request.Context(), c.Query("search"), pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, listBody("users", users, total, pagination))
}

// UpdateRole changes a user's role
// PUT /api/admin/users/:id/role
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	var input entities.UpdateRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Role is required"))
		return
	}

	profile, err := h.adminUsecase.SetRole(c.Request.Context(), actor, userID, input.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Role updated successfully", gin.H{"profile": profile})
}
