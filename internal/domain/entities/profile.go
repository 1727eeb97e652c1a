package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleUser   UserRole = "user"
	UserRoleLawyer UserRole = "lawyer"
	UserRoleAdmin  UserRole = "admin"
)

// Valid reports whether r is a known role
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleUser, UserRoleLawyer, UserRoleAdmin:
		return true
	}
	return false
}

// Profile is the identity record behind a session
type Profile struct {
	ID            uuid.UUID   `json:"id"`
	Email         string      `json:"email"`
	FullName      null.String `json:"full_name"`
	Role          UserRole    `json:"role"`
	KYCCompleted  bool        `json:"kyc_completed"`
	EmailVerified bool        `json:"email_verified"`
	PasswordHash  string      `json:"-"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// DisplayName is full_name, else the email local part, else fallback
func (p *Profile) DisplayName(fallback string) string {
	if p == nil {
		return fallback
	}
	if name := strings.TrimSpace(p.FullName.String); p.FullName.Valid && name != "" {
		return name
	}
	if local, _, ok := strings.Cut(p.Email, "@"); ok && local != "" {
		return local
	}
	return fallback
}

// IsAdmin reports whether the profile has the admin role
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == UserRoleAdmin
}

// RegisterInput represents input for password registration
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"max=120"`
}

// LoginInput represents input for password login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	Profile      *Profile  `json:"profile"`
	Redirect     string    `json:"redirect,omitempty"`
}

// OAuthIdentity is the account a sign-in provider vouched for
type OAuthIdentity struct {
	Provider      string
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

// OAuthCallbackInput is the provider redirect relayed by the frontend
type OAuthCallbackInput struct {
	Code  string `json:"code" binding:"required"`
	State string `json:"state" binding:"required"`
}

// UpdateRoleInput is the admin role-assignment payload
type UpdateRoleInput struct {
	Role UserRole `json:"role" binding:"required"`
}
