package usecases

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"legalease.backend/internal/domain/entities"
	domainerrors "legalease.backend/internal/domain/errors"
	"legalease.backend/pkg/logger"
	"legalease.backend/pkg/redis"
)

const defaultOAuthRedirect = "/dashboard"

// safeRedirect keeps post-login redirects on our own origin
func safeRedirect(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.Contains(path, "\\") {
		return defaultOAuthRedirect
	}
	return path
}

func (u *AuthUsecase) oauthProvider(name string) (OAuthProvider, error) {
	p, ok := u.oauth[strings.ToLower(name)]
	if !ok {
		return nil, domainerrors.NotFound("Sign-in provider not available")
	}
	return p, nil
}

// StartOAuth returns the provider authorization URL bound to a fresh state token
func (u *AuthUsecase) StartOAuth(ctx context.Context, provider, redirect string) (string, error) {
	p, err := u.oauthProvider(provider)
	if err != nil {
		return "", err
	}

	state, err := u.tokens.Issue(ctx, redis.PurposeOAuthState, &redis.TokenData{
		Provider: p.Name(),
		Redirect: safeRedirect(redirect),
	}, OAuthStateTTL)
	if err != nil {
		return "", err
	}
	return p.AuthCodeURL(state), nil
}

// CompleteOAuth exchanges the authorization code and signs the account in,
// creating the profile on first use.
func (u *AuthUsecase) CompleteOAuth(ctx context.Context, provider string, input *entities.OAuthCallbackInput) (*entities.AuthResponse, error) {
	p, err := u.oauthProvider(provider)
	if err != nil {
		return nil, err
	}

	state, err := u.consume(ctx, redis.PurposeOAuthState, input.State)
	if err != nil {
		return nil, err
	}
	if state.Provider != p.Name() {
		return nil, domainerrors.BadRequest("Invalid or expired token")
	}

	identity, err := p.Exchange(ctx, strings.TrimSpace(input.Code))
	if err != nil {
		var appErr *domainerrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, domainerrors.BadGateway("Sign-in provider request failed", err)
	}

	email := normalizeEmail(identity.Email)
	if email == "" || !identity.EmailVerified {
		return nil, domainerrors.Forbidden("Your " + p.Name() + " account email is not verified")
	}

	profile, err := u.findOrCreateVerified(ctx, email, identity.Name, "register_oauth")
	if err != nil {
		return nil, err
	}

	logger.LogAuthEvent(ctx, "login_oauth",
		zap.String("user_id", profile.ID.String()),
		zap.String("provider", p.Name()),
	)

	resp, err := u.session(profile)
	if err != nil {
		return nil, err
	}
	resp.Redirect = state.Redirect
	return resp, nil
}
