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
)

type AuthService interface {
	Register(ctx context.Context, input *entities.RegisterInput) (*entities.Profile, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*entities.AuthResponse, error)
	RequestMagicLink(ctx context.Context, email string) error
	VerifyMagicLink(ctx context.Context, token string) (*entities.AuthResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
	RequestPasswordReset(ctx context.Context, email string) error
	CompletePasswordReset(ctx context.Context, token, password string) error
	EnsureProfile(ctx context.Context, actor usecases.Actor, fullName string) (*entities.Profile, bool, error)
	Me(ctx context.Context, userID uuid.UUID) (*entities.Profile, error)
	StartOAuth(ctx context.Context, provider, redirect string) (string, error)
	CompleteOAuth(ctx context.Context, provider string, input *entities.OAuthCallbackInput) (*entities.AuthResponse, error)
}

// AuthHandler handles authentication and profile endpoints
type AuthHandler struct {
	authUsecase AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase AuthService) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

type emailRequest struct {
	Email string `json:"email" binding:"required"`
}

type tokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// Register handles password registration
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("A valid email and a password of at least 8 characters are required"))
		return
	}

	profile, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusCreated, "Registration successful. Please check your email for verification.", gin.H{
		"profile": profile,
	})
}

// Login handles password login
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Email and password are required"))
		return
	}

	auth, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, auth)
}

// RefreshToken exchanges a refresh token for a new pair
// POST /api/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("refreshToken is required"))
		return
	}

	auth, err := h.authUsecase.RefreshToken(c.Request.Context(), input.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, auth)
}

// RequestMagicLink emails a sign-in link
// POST /api/auth/magic-link
func (h *AuthHandler) RequestMagicLink(c *gin.Context) {
	var input emailRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Email is required"))
		return
	}
	if err := h.authUsecase.RequestMagicLink(c.Request.Context(), input.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "If the address is valid, a sign-in link is on its way", nil)
}

// VerifyMagicLink signs the user in from a magic link token
// POST /api/auth/magic-link/verify
func (h *AuthHandler) VerifyMagicLink(c *gin.Context) {
	var input tokenRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Token is required"))
		return
	}

	auth, err := h.authUsecase.VerifyMagicLink(c.Request.Context(), input.Token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, auth)
}

// VerifyEmail handles email verification
// POST /api/auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var input tokenRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Token is required"))
		return
	}
	if err := h.authUsecase.VerifyEmail(c.Request.Context(), input.Token); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Email verified successfully", nil)
}

// ResendVerification
// POST /api/auth/resend-verification
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var input emailRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Email is required"))
		return
	}
	if err := h.authUsecase.ResendVerification(c.Request.Context(), input.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "If the account needs verification, an email is on its way", nil)
}

// RequestPasswordReset
// POST /api/auth/password-reset
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var input emailRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Email is required"))
		return
	}
	if err := h.authUsecase.RequestPasswordReset(c.Request.Context(), input.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "If an account exists, a reset link is on its way", nil)
}

// CompletePasswordReset
// POST /api/auth/password-reset/complete
func (h *AuthHandler) CompletePasswordReset(c *gin.Context) {
	var input struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Token and password are required"))
		return
	}
	if err := h.authUsecase.CompletePasswordReset(c.Request.Context(), input.Token, input.Password); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Password updated successfully", nil)
}

// StartOAuth redirects the browser to the provider consent screen
// GET /api/auth/oauth/:provider?redirect=/dashboard
func (h *AuthHandler) StartOAuth(c *gin.Context) {
	authURL, err := h.authUsecase.StartOAuth(c.Request.Context(), c.Param("provider"), c.Query("redirect"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusFound, authURL)
}

// CompleteOAuth signs the user in with the code the provider returned
// POST /api/auth/oauth/:provider/callback
func (h *AuthHandler) CompleteOAuth(c *gin.Context) {
	var input entities.OAuthCallbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Code and state are required"))
		return
	}

	auth, err := h.authUsecase.CompleteOAuth(c.Request.Context(), c.Param("provider"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, auth)
}

// Me returns the caller's profile
// GET /api/profiles/me
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	profile, err := h.authUsecase.Me(c.Request.Context(), actor.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}

// EnsureProfile creates the caller's profile when missing
// POST /api/profiles/ensure
func (h *AuthHandler) EnsureProfile(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var input struct {
		FullName string `json:"fullName"`
	}
	// the body is optional
	_ = c.ShouldBindJSON(&input)

	profile, created, err := h.authUsecase.EnsureProfile(c.Request.Context(), actor, input.FullName)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Success(c, status, gin.H{"profile": profile, "created": created})
}
