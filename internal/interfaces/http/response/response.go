package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "legalease.backend/internal/domain/errors"
	"legalease.backend/pkg/logger"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Message sends a {"message": ...} body merged with extra fields
func Message(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error sends an error response
func Error(c *gin.Context, err error) {
	appErr := toAppError(err)
	if appErr.Status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "Request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", appErr.Status),
			zap.Error(err),
		)
	}

	c.JSON(appErr.Status, gin.H{
		"code":  appErr.Code,
		"error": appErr.Message,
	})
}

// ErrorWithError sends an error response with a specific status and code
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":  code,
		"error": message,
	})
}

func toAppError(err error) *domainerrors.AppError {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound("Resource not found")
	case errors.Is(err, domainerrors.ErrInvalidState):
		return domainerrors.StateMismatch("Resource not found or not in the expected state")
	case errors.Is(err, domainerrors.ErrInvalidInput), errors.Is(err, domainerrors.ErrBadRequest):
		return domainerrors.BadRequest(err.Error())
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return domainerrors.Unauthorized("Invalid email or password")
	case errors.Is(err, domainerrors.ErrTokenExpired):
		return domainerrors.Unauthorized("Token has expired")
	case errors.Is(err, domainerrors.ErrInvalidSignature):
		return domainerrors.Unauthorized("Invalid signature")
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return domainerrors.Unauthorized("Unauthorized")
	case errors.Is(err, domainerrors.ErrKYCRequired):
		return domainerrors.Forbidden("KYC verification must be approved first")
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.Forbidden("Forbidden")
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return domainerrors.Conflict("Resource already exists")
	case errors.Is(err, domainerrors.ErrRateLimited):
		return domainerrors.TooManyRequests("Too many requests, please try again later")
	case errors.Is(err, domainerrors.ErrPaymentGateway):
		return domainerrors.BadGateway("Payment gateway error", err)
	case errors.Is(err, domainerrors.ErrUpstreamUnavailable):
		return domainerrors.ServiceUnavailable("Upstream service unavailable", err)
	}
	return domainerrors.InternalError(err)
}
