package usecases

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"legalease.backend/internal/domain/entities"
	domainerrors "legalease.backend/internal/domain/errors"
	"legalease.backend/internal/domain/repositories"
	"legalease.backend/pkg/crypto"
	"legalease.backend/pkg/jwt"
	"legalease.backend/pkg/logger"
	"legalease.backend/pkg/redis"
	"legalease.backend/pkg/utils"
)

const (
	MagicLinkTTL     = 15 * time.Minute
	PasswordResetTTL = time.Hour
	VerifyEmailTTL   = 24 * time.Hour
	OAuthStateTTL    = 10 * time.Minute
)

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	profileRepo repositories.ProfileRepository
	tokens      TokenStore
	jwtService  *jwt.JWTService
	notifier    Notifier
	appURL      string
	oauth       map[string]OAuthProvider
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	profileRepo repositories.ProfileRepository,
	tokens TokenStore,
	jwtService *jwt.JWTService,
	notifier Notifier,
	appURL string,
) *AuthUsecase {
	return &AuthUsecase{
		profileRepo: profileRepo,
		tokens:      tokens,
		jwtService:  jwtService,
		notifier:    notifier,
		appURL:      strings.TrimRight(appURL, "/"),
		oauth:       map[string]OAuthProvider{},
	}
}

// WithOAuthProviders registers sign-in providers by name
func (u *AuthUsecase) WithOAuthProviders(providers ...OAuthProvider) *AuthUsecase {
	for _, p := range providers {
		u.oauth[p.Name()] = p
	}
	return u
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a password profile and sends a verification email
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.Profile, error) {
	email := normalizeEmail(input.Email)
	if !govalidator.IsEmail(email) {
		return nil, domainerrors.BadRequest("Invalid email address")
	}
	if len(input.Password) < crypto.MinPasswordLength {
		return nil, domainerrors.BadRequest("Password must be at least 8 characters")
	}

	_, err := u.profileRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.Conflict("An account with this email already exists")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	profile := &entities.Profile{
		ID:           utils.GenerateUUIDv7(),
		Email:        email,
		Role:         entities.UserRoleUser,
		PasswordHash: passwordHash,
	}
	if name := strings.TrimSpace(input.FullName); name != "" {
		profile.FullName = null.StringFrom(name)
	}

	if err := u.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("An account with this email already exists")
		}
		return nil, err
	}

	logger.LogAuthEvent(ctx, "register", zap.String("user_id", profile.ID.String()))
	u.sendVerification(ctx, profile)
	return profile, nil
}

// Login authenticates with email and password
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	profile, err := u.profileRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, profile.PasswordHash) {
		logger.LogAuthEvent(ctx, "login_failed", zap.String("user_id", profile.ID.String()))
		return nil, invalidCredentials()
	}

	if !profile.EmailVerified {
		return nil, domainerrors.NewAppError(http.StatusForbidden, domainerrors.CodeForbidden,
			"Please verify your email before signing in", domainerrors.ErrEmailNotVerified)
	}

	logger.LogAuthEvent(ctx, "login", zap.String("user_id", profile.ID.String()))
	return u.session(profile)
}

func invalidCredentials() error {
	return domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeUnauthorized,
		"Invalid email or password", domainerrors.ErrInvalidCredentials)
}

// RefreshToken exchanges a refresh token for a new pair. The role is re-read from the profile.
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*entities.AuthResponse, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.Unauthorized("Invalid or expired refresh token")
	}

	profile, err := u.profileRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("Invalid or expired refresh token")
		}
		return nil, err
	}
	return u.session(profile)
}

// RequestMagicLink emails a single-use sign-in link. Unknown emails are accepted silently.
func (u *AuthUsecase) RequestMagicLink(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if !govalidator.IsEmail(email) {
		return domainerrors.BadRequest("Invalid email address")
	}

	data := &redis.TokenData{Email: email}
	if profile, err := u.profileRepo.GetByEmail(ctx, email); err == nil {
		data.UserID = profile.ID.String()
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}

	token, err := u.tokens.Issue(ctx, redis.PurposeMagicLink, data, MagicLinkTTL)
	if err != nil {
		return err
	}

	u.notifier.Notify(ctx, TemplateMagicLink, email, map[string]interface{}{
		"link": u.link("/auth/callback", token),
	})
	return nil
}

// VerifyMagicLink consumes a sign-in link, creating the profile on first use
func (u *AuthUsecase) VerifyMagicLink(ctx context.Context, token string) (*entities.AuthResponse, error) {
	data, err := u.consume(ctx, redis.PurposeMagicLink, token)
	if err != nil {
		return nil, err
	}

	profile, err := u.findOrCreateVerified(ctx, data.Email, "", "register_magic_link")
	if err != nil {
		return nil, err
	}

	logger.LogAuthEvent(ctx, "login_magic_link", zap.String("user_id", profile.ID.String()))
	return u.session(profile)
}

// findOrCreateVerified loads the profile for an email whose ownership was just
// proven, creating it on first sign-in and marking it verified otherwise.
func (u *AuthUsecase) findOrCreateVerified(ctx context.Context, email, fullName, registerEvent string) (*entities.Profile, error) {
	profile, err := u.profileRepo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		profile = &entities.Profile{
			ID:            utils.GenerateUUIDv7(),
			Email:         email,
			Role:          entities.UserRoleUser,
			EmailVerified: true,
		}
		if name := strings.TrimSpace(fullName); name != "" {
			profile.FullName = null.StringFrom(name)
		}
		if err := u.profileRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
		logger.LogAuthEvent(ctx, registerEvent, zap.String("user_id", profile.ID.String()))
	case err != nil:
		return nil, err
	case !profile.EmailVerified:
		if err := u.profileRepo.MarkEmailVerified(ctx, profile.ID); err != nil {
			return nil, err
		}
		profile.EmailVerified = true
	}
	return profile, nil
}

// VerifyEmail consumes a verification token
func (u *AuthUsecase) VerifyEmail(ctx context.Context, token string) error {
	data, err := u.consume(ctx, redis.PurposeVerifyEmail, token)
	if err != nil {
		return err
	}

	userID, ok := utils.ParseUUID(data.UserID)
	if !ok {
		return domainerrors.BadRequest("Invalid or expired token")
	}
	if err := u.profileRepo.MarkEmailVerified(ctx, userID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.BadRequest("Invalid or expired token")
		}
		return err
	}

	logger.LogAuthEvent(ctx, "email_verified", zap.String("user_id", userID.String()))
	return nil
}

// ResendVerification re-sends the verification email to unverified accounts
func (u *AuthUsecase) ResendVerification(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if !govalidator.IsEmail(email) {
		return domainerrors.BadRequest("Invalid email address")
	}

	profile, err := u.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if profile.EmailVerified {
		return nil
	}

	u.sendVerification(ctx, profile)
	return nil
}

// RequestPasswordReset emails a reset link to existing accounts
func (u *AuthUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if !govalidator.IsEmail(email) {
		return domainerrors.BadRequest("Invalid email address")
	}

	profile, err := u.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := u.tokens.Issue(ctx, redis.PurposeReset, &redis.TokenData{
		UserID: profile.ID.String(),
		Email:  profile.Email,
	}, PasswordResetTTL)
	if err != nil {
		return err
	}

	u.notifier.Notify(ctx, TemplatePasswordReset, profile.Email, map[string]interface{}{
		"link": u.link("/auth/reset-password-confirm", token),
	})
	return nil
}

// CompletePasswordReset sets a new password from a reset token
func (u *AuthUsecase) CompletePasswordReset(ctx context.Context, token, password string) error {
	if len(password) < crypto.MinPasswordLength {
		return domainerrors.BadRequest("Password must be at least 8 characters")
	}

	data, err := u.consume(ctx, redis.PurposeReset, token)
	if err != nil {
		return err
	}
	userID, ok := utils.ParseUUID(data.UserID)
	if !ok {
		return domainerrors.BadRequest("Invalid or expired token")
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}
	if err := u.profileRepo.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.BadRequest("Invalid or expired token")
		}
		return err
	}
	// the reset link proved ownership of the mailbox
	if err := u.profileRepo.MarkEmailVerified(ctx, userID); err != nil {
		logger.Warn(ctx, "Failed to mark email verified after reset", zap.Error(err))
	}

	logger.LogAuthEvent(ctx, "password_reset", zap.String("user_id", userID.String()))

	profile, err := u.profileRepo.GetByID(ctx, userID)
	if err == nil {
		u.notifier.Notify(ctx, TemplatePasswordChanged, profile.Email, map[string]interface{}{
			"user_name": profile.DisplayName("there"),
		})
	}
	return nil
}

// EnsureProfile returns the caller's profile, creating it if missing
func (u *AuthUsecase) EnsureProfile(ctx context.Context, actor Actor, fullName string) (*entities.Profile, bool, error) {
	profile, err := u.profileRepo.GetByID(ctx, actor.ID)
	if err == nil {
		return profile, false, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, false, err
	}

	email := normalizeEmail(actor.Email)
	name := strings.TrimSpace(fullName)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	profile = &entities.Profile{
		ID:            actor.ID,
		Email:         email,
		FullName:      null.NewString(name, name != ""),
		Role:          entities.UserRoleUser,
		EmailVerified: true,
	}
	if err := u.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			// created concurrently
			existing, getErr := u.profileRepo.GetByID(ctx, actor.ID)
			if getErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}
	return profile, true, nil
}

// Me returns the caller's profile
func (u *AuthUsecase) Me(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	profile, err := u.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Profile not found")
		}
		return nil, err
	}
	return profile, nil
}

func (u *AuthUsecase) sendVerification(ctx context.Context, profile *entities.Profile) {
	token, err := u.tokens.Issue(ctx, redis.PurposeVerifyEmail, &redis.TokenData{
		UserID: profile.ID.String(),
		Email:  profile.Email,
	}, VerifyEmailTTL)
	if err != nil {
		logger.Error(ctx, "Failed to issue verification token", zap.Error(err))
		return
	}

	u.notifier.Notify(ctx, TemplateVerifyEmail, profile.Email, map[string]interface{}{
		"user_name": profile.FullName.String,
		"link":      u.link("/auth/verify-email", token),
	})
}

func (u *AuthUsecase) consume(ctx context.Context, purpose redis.TokenPurpose, token string) (*redis.TokenData, error) {
	data, err := u.tokens.Consume(ctx, purpose, strings.TrimSpace(token))
	if err != nil {
		if errors.Is(err, redis.ErrTokenNotFound) {
			return nil, domainerrors.BadRequest("Invalid or expired token")
		}
		return nil, err
	}
	return data, nil
}

func (u *AuthUsecase) link(path, token string) string {
	return u.appURL + path + "?token=" + url.QueryEscape(token)
}

func (u *AuthUsecase) session(profile *entities.Profile) (*entities.AuthResponse, error) {
	pair, err := u.jwtService.GenerateTokenPair(profile.ID, profile.Email, string(profile.Role))
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
		Profile:      profile,
	}, nil
}
