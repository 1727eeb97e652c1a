package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrAlreadyExists       = errors.New("resource already exists")
	ErrInvalidInput        = errors.New("invalid input")
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTokenExpired        = errors.New("token expired")
	ErrEmailNotVerified    = errors.New("email not verified")
	ErrInvalidState        = errors.New("resource not in expected state")
	ErrKYCRequired         = errors.New("kyc verification required")
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrRateLimited         = errors.New("rate limit exceeded")
	ErrPaymentGateway      = errors.New("payment gateway error")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
)

// Error codes returned in the JSON body
const (
	CodeBadRequest         = "ERR_BAD_REQUEST"
	CodeInvalidInput       = "ERR_INVALID_INPUT"
	CodeUnauthorized       = "ERR_UNAUTHORIZED"
	CodeForbidden          = "ERR_FORBIDDEN"
	CodeNotFound           = "ERR_NOT_FOUND"
	CodeConflict           = "ERR_CONFLICT"
	CodeTooManyRequests    = "ERR_RATE_LIMITED"
	CodeInternalError      = "ERR_INTERNAL"
	CodeBadGateway         = "ERR_BAD_GATEWAY"
	CodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"

	CodeIdempotencyConflict = "ERR_IDEMPOTENCY_CONFLICT"
	CodeInvalidSignature    = "ERR_INVALID_SIGNATURE"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

func TooManyRequests(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, CodeTooManyRequests, message, ErrRateLimited)
}

// StateMismatch is reported as 404 so callers cannot tell a missing row from a row in the wrong state.
func StateMismatch(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrInvalidState)
}

func BadGateway(message string, err error) *AppError {
	if err == nil {
		err = ErrPaymentGateway
	}
	return NewAppError(http.StatusBadGateway, CodeBadGateway, message, err)
}

func ServiceUnavailable(message string, err error) *AppError {
	if err == nil {
		err = ErrUpstreamUnavailable
	}
	return NewAppError(http.StatusServiceUnavailable, CodeServiceUnavailable, message, err)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "Internal server error", err)
}

func InternalServerError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, message, nil)
}

// NewError creates a new error with a custom message wrapping an existing error
func NewError(message string, err error) error {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeBadRequest,
		Message: message,
		Err:     err,
	}
}
