// Package oidc implements the Google OpenID Connect code exchange used
// for federated login.
package oidc

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dukahub/backend/internal/infrastructure/config"
	"github.com/go-resty/resty/v2"
)

// Common errors
var (
	ErrExchangeFailed = errors.New("authorization code exchange failed")
	ErrUserInfoFailed = errors.New("fetching user info failed")
)

// TokenResponse is Google's token endpoint response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
}

// UserInfo is the subset of Google's userinfo claims this service uses
type UserInfo struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// Provider exchanges authorization codes for Google identities
type Provider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*UserInfo, error)
}

// GoogleProvider implements Provider against Google's OAuth2 endpoints
type GoogleProvider struct {
	client *resty.Client
	cfg    config.OIDCConfig
}

// NewGoogleProvider creates a new Google OIDC provider
func NewGoogleProvider(cfg config.OIDCConfig) *GoogleProvider {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")

	return &GoogleProvider{client: client, cfg: cfg}
}

// AuthCodeURL builds the Google consent page URL the client is redirected to.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	scopes := p.cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{"openid", "email", "profile"}
	}

	params := url.Values{}
	params.Set("client_id", p.cfg.ClientID)
	params.Set("redirect_uri", p.cfg.RedirectURI)
	params.Set("response_type", "code")
	params.Set("scope", strings.Join(scopes, " "))
	if state != "" {
		params.Set("state", state)
	}

	return p.cfg.AuthURL + "?" + params.Encode()
}

// Exchange trades an authorization code for tokens, then resolves the
// user's identity from the userinfo endpoint.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*UserInfo, error) {
	var token TokenResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"code":          code,
			"client_id":     p.cfg.ClientID,
			"client_secret": p.cfg.ClientSecret,
			"redirect_uri":  p.cfg.RedirectURI,
			"grant_type":    "authorization_code",
		}).
		SetResult(&token).
		Post(p.cfg.TokenURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrExchangeFailed, resp.StatusCode())
	}
	if token.AccessToken == "" {
		return nil, ErrExchangeFailed
	}

	var info UserInfo
	resp, err = p.client.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetResult(&info).
		Get(p.cfg.UserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserInfoFailed, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrUserInfoFailed, resp.StatusCode())
	}
	if info.Subject == "" || info.Email == "" {
		return nil, ErrUserInfoFailed
	}

	return &info, nil
}

// Ensure GoogleProvider implements Provider
var _ Provider = (*GoogleProvider)(nil)
