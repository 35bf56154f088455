package oauth

import (
	"context"

	"github.com/osse101/EasyPost_Go/internal/domain"
)

// Provider adapts one social platform's OAuth flow. Implementations are
// stateless and safe for concurrent use.
type Provider interface {
	// Platform returns the platform identifier this provider serves
	Platform() string

	// AuthorizationURL builds the URL the user is sent to for consent
	AuthorizationURL(state string) string

	// ExchangeCode trades an authorization code for platform credentials.
	// The returned result always carries a non-empty PlatformUserID.
	ExchangeCode(ctx context.Context, code string) (*domain.TokenResult, error)

	// Refresh obtains fresh credentials from an existing access token
	Refresh(ctx context.Context, accessToken string) (*domain.TokenResult, error)
}
