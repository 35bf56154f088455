package oauth

import "time"

// State token parameters
const (
	// StateTokenBytes is the number of random bytes in a state token
	StateTokenBytes = 32
	// StateTokenTTL is how long an issued state token stays valid
	StateTokenTTL = 10 * time.Minute
	// StateSweepInterval is how often the background sweeper runs
	StateSweepInterval = time.Minute
)

// Facebook endpoints
const (
	DefaultFacebookDialogURL = "https://www.facebook.com/v19.0/dialog/oauth"
	DefaultFacebookGraphURL  = "https://graph.facebook.com/v18.0"

	// FacebookScopes covers page posting plus the Instagram graph permissions
	// granted through the linked Facebook app
	FacebookScopes = "pages_manage_posts,pages_read_engagement,instagram_basic,instagram_content_publish"
)

// Instagram endpoints
const (
	DefaultInstagramAPIURL   = "https://api.instagram.com"
	DefaultInstagramGraphURL = "https://graph.instagram.com"

	InstagramScopes = "instagram_basic,instagram_content_publish"
)

// Token grant types
const (
	GrantTypeAuthorizationCode = "authorization_code"
	GrantTypeFBExchangeToken   = "fb_exchange_token"
	GrantTypeIGRefreshToken    = "ig_refresh_token"
)

// DefaultExpiresIn is assumed when a token response omits expires_in
const DefaultExpiresIn = 3600

// SynthesizedIDPrefix marks Instagram platform user ids derived from the
// access token when the platform never returned a real id
const SynthesizedIDPrefix = "insta_"

// SynthesizedIDHashLength is how many hex chars of the token hash are kept
const SynthesizedIDHashLength = 16

// FallbackInstagramUsername is stored when Instagram returns no username
const FallbackInstagramUsername = "instagram_user"
