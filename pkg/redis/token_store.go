package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"legalease.backend/pkg/crypto"
)

// ErrTokenNotFound is returned when a one-time token is unknown, expired or already used
var ErrTokenNotFound = errors.New("token not found or expired")

// TokenPurpose scopes a one-time token
type TokenPurpose string

const (
	PurposeMagicLink   TokenPurpose = "magic_link"
	PurposeVerifyEmail TokenPurpose = "verify_email"
	PurposeReset       TokenPurpose = "password_reset"
	PurposeOAuthState  TokenPurpose = "oauth_state"
)

// TokenData is stored behind a one-time token
type TokenData struct {
	UserID   string `json:"userId,omitempty"`
	Email    string `json:"email"`
	Provider string `json:"provider,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// TokenStore keeps single-use tokens in Redis under the sha256 of the token.
type TokenStore struct{}

var (
	setTokenValue    = Set
	getDelTokenValue = GetDel
	newToken         = crypto.GenerateOneTimeToken
)

// NewTokenStore creates a new token store
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Issue creates a token for data that expires after ttl
func (s *TokenStore) Issue(ctx context.Context, purpose TokenPurpose, data *TokenData, ttl time.Duration) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	if err := setTokenValue(ctx, tokenKey(purpose, token), payload, ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Consume returns the data behind token and invalidates it
func (s *TokenStore) Consume(ctx context.Context, purpose TokenPurpose, token string) (*TokenData, error) {
	if token == "" {
		return nil, ErrTokenNotFound
	}

	raw, err := getDelTokenValue(ctx, tokenKey(purpose, token))
	if err != nil {
		if IsNil(err) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	var data TokenData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func tokenKey(purpose TokenPurpose, token string) string {
	return "token:" + string(purpose) + ":" + crypto.HashToken(token)
}
