package oauth

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
	"legalease.backend/internal/domain/entities"
)

const (
	ProviderGoogle        = "google"
	DefaultGoogleUserInfo = "https://openidconnect.googleapis.com/v1/userinfo"
)

// GoogleConfig configures Google sign-in. Zero endpoints use Google's.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
}

// Google signs users in with their Google account
type Google struct {
	conf        *oauth2.Config
	userInfoURL string
}

// NewGoogle creates the Google provider
func NewGoogle(cfg GoogleConfig) *Google {
	endpoint := endpoints.Google
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}
	userInfo := cfg.UserInfoURL
	if userInfo == "" {
		userInfo = DefaultGoogleUserInfo
	}

	return &Google{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		userInfoURL: userInfo,
	}
}

func (g *Google) Name() string { return ProviderGoogle }

// AuthCodeURL returns the consent screen URL carrying state
func (g *Google) AuthCodeURL(state string) string {
	return g.conf.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

// Exchange trades the authorization code for a token and reads the account's userinfo
func (g *Google) Exchange(ctx context.Context, code string) (*entities.OAuthIdentity, error) {
	token, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google token exchange: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.conf.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("google userinfo: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("google userinfo: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo: status %d", resp.StatusCode)
	}

	info := gjson.ParseBytes(body)
	if info.Get("sub").String() == "" {
		return nil, fmt.Errorf("google userinfo: missing subject")
	}
	return &entities.OAuthIdentity{
		Provider:      ProviderGoogle,
		Subject:       info.Get("sub").String(),
		Email:         info.Get("email").String(),
		EmailVerified: info.Get("email_verified").Bool(),
		Name:          info.Get("name").String(),
	}, nil
}
