package auth

import "time"

const (
	// DefaultTokenLifetime is how long issued access tokens stay valid.
	DefaultTokenLifetime = 24 * time.Hour

	// TokenIssuer identifies tokens minted by this service.
	TokenIssuer = "easypost"

	// AuthorizationHeader is the HTTP header carrying the bearer token.
	AuthorizationHeader = "Authorization"

	// BearerPrefix is the expected scheme prefix on the Authorization header.
	BearerPrefix = "Bearer "
)

// Log Messages
const (
	LogMsgTokenRejected = "Rejected bearer token"
)
