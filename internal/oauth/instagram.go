package oauth

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/osse101/EasyPost_Go/internal/domain"
	"github.com/osse101/EasyPost_Go/internal/logger"
)

// InstagramProvider implements Provider for Instagram. Consent still goes
// through the Facebook dialog because Instagram apps hang off a Facebook app.
type InstagramProvider struct {
	appID       string
	appSecret   string
	redirectURI string
	client      *http.Client

	// Overridable in tests
	dialogURL  string
	apiURL     string
	igGraphURL string
	fbGraphURL string
}

// NewInstagramProvider creates an Instagram OAuth provider. The app id and
// secret are the Facebook app credentials.
func NewInstagramProvider(appID, appSecret, redirectURI string, client *http.Client) *InstagramProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &InstagramProvider{
		appID:       appID,
		appSecret:   appSecret,
		redirectURI: redirectURI,
		client:      client,
		dialogURL:   DefaultFacebookDialogURL,
		apiURL:      DefaultInstagramAPIURL,
		igGraphURL:  DefaultInstagramGraphURL,
		fbGraphURL:  DefaultFacebookGraphURL,
	}
}

// Platform returns the platform identifier
func (p *InstagramProvider) Platform() string {
	return domain.PlatformInstagram
}

// AuthorizationURL builds the consent dialog URL with Instagram scopes
func (p *InstagramProvider) AuthorizationURL(state string) string {
	params := url.Values{}
	params.Set("client_id", p.appID)
	params.Set("redirect_uri", p.redirectURI)
	params.Set("state", state)
	params.Set("scope", InstagramScopes)
	params.Set("response_type", "code")
	return p.dialogURL + "?" + params.Encode()
}

type igTokenResponse struct {
	AccessToken string      `json:"access_token"`
	UserID      json.Number `json:"user_id"`
	Username    string      `json:"username"`
	ExpiresIn   int64       `json:"expires_in"`
}

type igUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ExchangeCode trades an authorization code for an Instagram token. The
// Basic Display endpoint is tried first; when it rejects the request the
// Facebook Graph token endpoint is tried with the same code. The platform
// user id comes from the token response when present, then from a /me
// lookup, and as a last resort is synthesized from the token itself.
func (p *InstagramProvider) ExchangeCode(ctx context.Context, code string) (*domain.TokenResult, error) {
	log := logger.FromContext(ctx)

	form := url.Values{}
	form.Set("client_id", p.appID)
	form.Set("client_secret", p.appSecret)
	form.Set("redirect_uri", p.redirectURI)
	form.Set("code", code)
	form.Set("grant_type", GrantTypeAuthorizationCode)

	var token igTokenResponse
	err := postForm(ctx, p.client, p.apiURL+"/oauth/access_token", form, &token)
	if err != nil {
		var apiErr *apiError
		if !errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: instagram token request: %v", domain.ErrExchangeFailed, err)
		}
		log.Warn("Instagram token endpoint rejected code, trying Graph API endpoint",
			"status", apiErr.StatusCode)

		if err := getJSON(ctx, p.client, p.fbGraphURL+"/oauth/access_token", form, &token); err != nil {
			return nil, fmt.Errorf("%w: instagram token request: %v", domain.ErrExchangeFailed, err)
		}
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: instagram returned no access token", domain.ErrExchangeFailed)
	}

	expiresIn := token.ExpiresIn
	if expiresIn == 0 {
		expiresIn = DefaultExpiresIn
	}

	result := &domain.TokenResult{
		AccessToken: token.AccessToken,
		ExpiresIn:   expiresIn,
	}

	// Identity priority: token response, then /me lookup, then synthesized
	if token.UserID.String() != "" {
		result.PlatformUserID = token.UserID.String()
		result.DisplayName = token.Username
		if result.DisplayName == "" {
			result.DisplayName = FallbackInstagramUsername
		}
		result.ExtraFields = map[string]any{"username": result.DisplayName}
		return result, nil
	}

	userParams := url.Values{}
	userParams.Set("access_token", token.AccessToken)
	userParams.Set("fields", "id,username")

	var user igUserResponse
	if err := getJSON(ctx, p.client, p.igGraphURL+"/me", userParams, &user); err != nil {
		log.Warn("Instagram identity lookup failed", "error", err)
	}
	if user.ID != "" {
		result.PlatformUserID = user.ID
		result.DisplayName = user.Username
		if result.DisplayName == "" {
			result.DisplayName = FallbackInstagramUsername
		}
		result.ExtraFields = map[string]any{"username": result.DisplayName}
		return result, nil
	}

	result.PlatformUserID = SynthesizeInstagramID(token.AccessToken)
	result.DisplayName = FallbackInstagramUsername
	result.ExtraFields = map[string]any{"username": FallbackInstagramUsername}
	return result, nil
}

// Refresh extends a long-lived Instagram token with the ig_refresh_token grant
func (p *InstagramProvider) Refresh(ctx context.Context, accessToken string) (*domain.TokenResult, error) {
	params := url.Values{}
	params.Set("grant_type", GrantTypeIGRefreshToken)
	params.Set("access_token", accessToken)

	var token igTokenResponse
	if err := getJSON(ctx, p.client, p.igGraphURL+"/refresh_access_token", params, &token); err != nil {
		return nil, fmt.Errorf("%w: instagram refresh: %v", domain.ErrRefreshFailed, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: instagram refresh returned no access token", domain.ErrRefreshFailed)
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

// SynthesizeInstagramID derives a stable platform user id from an access
// token for accounts whose id the platform never disclosed
func SynthesizeInstagramID(accessToken string) string {
	sum := md5.Sum([]byte(accessToken))
	return SynthesizedIDPrefix + hex.EncodeToString(sum[:])[:SynthesizedIDHashLength]
}
