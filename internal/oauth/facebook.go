package oauth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/osse101/EasyPost_Go/internal/domain"
	"github.com/osse101/EasyPost_Go/internal/logger"
)

// FacebookProvider implements Provider for Facebook pages
type FacebookProvider struct {
	appID       string
	appSecret   string
	redirectURI string
	client      *http.Client

	// Overridable in tests
	dialogURL string
	graphURL  string
}

// NewFacebookProvider creates a Facebook OAuth provider
func NewFacebookProvider(appID, appSecret, redirectURI string, client *http.Client) *FacebookProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &FacebookProvider{
		appID:       appID,
		appSecret:   appSecret,
		redirectURI: redirectURI,
		client:      client,
		dialogURL:   DefaultFacebookDialogURL,
		graphURL:    DefaultFacebookGraphURL,
	}
}

// Platform returns the platform identifier
func (p *FacebookProvider) Platform() string {
	return domain.PlatformFacebook
}

// AuthorizationURL builds the Facebook consent dialog URL
func (p *FacebookProvider) AuthorizationURL(state string) string {
	params := url.Values{}
	params.Set("client_id", p.appID)
	params.Set("redirect_uri", p.redirectURI)
	params.Set("state", state)
	params.Set("scope", FacebookScopes)
	params.Set("response_type", "code")
	return p.dialogURL + "?" + params.Encode()
}

type fbTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type fbUserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type fbPagesResponse struct {
	Data []map[string]any `json:"data"`
}

// ExchangeCode trades an authorization code for a long-lived page token.
// The exchange makes up to four Graph API calls: code for short-lived token,
// identity lookup, long-lived exchange, and the managed pages list. A failed
// long-lived exchange falls back to the short-lived token; a failed pages
// lookup yields an empty pages list.
func (p *FacebookProvider) ExchangeCode(ctx context.Context, code string) (*domain.TokenResult, error) {
	log := logger.FromContext(ctx)

	// 1. Short-lived token
	params := url.Values{}
	params.Set("client_id", p.appID)
	params.Set("client_secret", p.appSecret)
	params.Set("redirect_uri", p.redirectURI)
	params.Set("code", code)

	var short fbTokenResponse
	if err := getJSON(ctx, p.client, p.graphURL+"/oauth/access_token", params, &short); err != nil {
		return nil, fmt.Errorf("%w: facebook token request: %v", domain.ErrExchangeFailed, err)
	}
	if short.AccessToken == "" {
		return nil, fmt.Errorf("%w: facebook returned no access token", domain.ErrExchangeFailed)
	}
	expiresIn := short.ExpiresIn
	if expiresIn == 0 {
		expiresIn = DefaultExpiresIn
	}

	// 2. Identity
	userParams := url.Values{}
	userParams.Set("access_token", short.AccessToken)
	userParams.Set("fields", "id,name,email")

	var user fbUserResponse
	if err := getJSON(ctx, p.client, p.graphURL+"/me", userParams, &user); err != nil {
		return nil, fmt.Errorf("%w: facebook identity lookup: %v", domain.ErrExchangeFailed, err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: facebook identity response missing id", domain.ErrExchangeFailed)
	}

	// 3. Long-lived token, falling back to the short-lived one
	accessToken := short.AccessToken
	longParams := url.Values{}
	longParams.Set("grant_type", GrantTypeFBExchangeToken)
	longParams.Set("client_id", p.appID)
	longParams.Set("client_secret", p.appSecret)
	longParams.Set("fb_exchange_token", short.AccessToken)

	var long fbTokenResponse
	if err := getJSON(ctx, p.client, p.graphURL+"/oauth/access_token", longParams, &long); err != nil {
		log.Warn("Long-lived token exchange failed, keeping short-lived token", "error", err)
	} else if long.AccessToken != "" {
		accessToken = long.AccessToken
		if long.ExpiresIn > 0 {
			expiresIn = long.ExpiresIn
		}
	}

	// 4. Managed pages
	pagesParams := url.Values{}
	pagesParams.Set("access_token", accessToken)

	var pages fbPagesResponse
	if err := getJSON(ctx, p.client, p.graphURL+"/me/accounts", pagesParams, &pages); err != nil {
		log.Warn("Failed to list managed pages", "error", err)
	}

	return &domain.TokenResult{
		AccessToken:    accessToken,
		ExpiresIn:      expiresIn,
		PlatformUserID: user.ID,
		DisplayName:    user.Name,
		ExtraFields: map[string]any{
			"name":  user.Name,
			"email": user.Email,
			"pages": pages.Data,
		},
	}, nil
}

// Refresh re-runs the fb_exchange_token grant against the stored token
func (p *FacebookProvider) Refresh(ctx context.Context, accessToken string) (*domain.TokenResult, error) {
	params := url.Values{}
	params.Set("grant_type", GrantTypeFBExchangeToken)
	params.Set("client_id", p.appID)
	params.Set("client_secret", p.appSecret)
	params.Set("fb_exchange_token", accessToken)

	var token fbTokenResponse
	if err := getJSON(ctx, p.client, p.graphURL+"/oauth/access_token", params, &token); err != nil {
		return nil, fmt.Errorf("%w: facebook refresh: %v", domain.ErrRefreshFailed, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: facebook refresh returned no access token", domain.ErrRefreshFailed)
	}

	expiresIn := token.ExpiresIn
	if expiresIn == 0 {
		expiresIn = DefaultExpiresIn
	}
	return &domain.TokenResult{
		AccessToken: token.AccessToken,
		ExpiresIn:   expiresIn,
	}, nil
}
