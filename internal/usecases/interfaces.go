package usecases

import (
	"context"
	"time"

	"legalease.backend/internal/domain/entities"
	"legalease.backend/internal/infrastructure/paystack"
	"legalease.backend/pkg/redis"
)

// DocumentStorage stores uploaded documents and returns their public URL
type DocumentStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

// PaymentGateway is the hosted checkout provider
type PaymentGateway interface {
	InitializeTransaction(ctx context.Context, req paystack.TransactionRequest) (*entities.PaymentInitialization, error)
	VerifyTransaction(ctx context.Context, reference string) (*entities.PaymentVerification, error)
}

// Mailer delivers a rendered email
type Mailer interface {
	Send(ctx context.Context, email *entities.EmailMessage) error
}

// Notifier sends best-effort emails. Implementations never block the caller.
type Notifier interface {
	Notify(ctx context.Context, template, to string, data map[string]interface{})
	NotifyAdmins(ctx context.Context, template string, data map[string]interface{})
}

// TokenStore issues and consumes single-use tokens
type TokenStore interface {
	Issue(ctx context.Context, purpose redis.TokenPurpose, data *redis.TokenData, ttl time.Duration) (string, error)
	Consume(ctx context.Context, purpose redis.TokenPurpose, token string) (*redis.TokenData, error)
}

// OAuthProvider is an authorization-code sign-in provider
type OAuthProvider interface {
	Name() string
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*entities.OAuthIdentity, error)
}
