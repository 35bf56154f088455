package domain

import "time"

// SocialAccount represents a linked third-party social account.
// At most one active row exists per (user_id, platform) pair: the repository
// upsert selects and overwrites the existing row rather than inserting.
type SocialAccount struct {
	ID             int64          `json:"id"`
	UserID         int64          `json:"user_id"`
	Platform       string         `json:"platform"`
	PlatformUserID string         `json:"platform_user_id"`
	AccessToken    string         `json:"-"`
	RefreshToken   *string        `json:"-"`
	TokenExpiresAt *time.Time     `json:"token_expires_at,omitempty"`
	ExtraFields    map[string]any `json:"extra_fields,omitempty"`
	IsActive       bool           `json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// TokenResult is the provider-agnostic shape every provider exchange and
// refresh produces. AccessToken and PlatformUserID are always present; when
// the platform omits an identity, the provider synthesizes PlatformUserID
// from the access token. A synthesized id changes when the token rotates,
// which is why the account upsert keys on (user, platform) and treats the
// platform user id as data to overwrite.
type TokenResult struct {
	AccessToken    string
	RefreshToken   string
	ExpiresIn      int64 // seconds; 0 means the token does not expire
	PlatformUserID string
	DisplayName    string
	ExtraFields    map[string]any
}

// StateEntry correlates an outbound authorization redirect with the
// initiating user and target platform. Exactly one consumption transition:
// valid -> consumed-or-expired, never revalidated.
type StateEntry struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	Platform  string    `json:"platform"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
