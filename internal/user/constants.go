package user

import "time"

// ============================================================================
// Cache Configuration
// ============================================================================

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// DefaultCacheSize is the default maximum number of cache entries
const DefaultCacheSize = 1000

// DefaultCacheTTL is the default time-to-live for cache entries
const DefaultCacheTTL = 5 * time.Minute

// ============================================================================
// Validation Limits
// ============================================================================

// MinUsernameLength is the minimum accepted username length after normalization
const MinUsernameLength = 3

// MaxUsernameLength is the maximum accepted username length after normalization
const MaxUsernameLength = 50

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 8

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgRegisterUserCalled = "RegisterUser called"
	LogMsgUserRegistered     = "User registered"
	LogErrFailedToCreateUser = "Failed to create user"
	LogErrFailedToGetUser    = "Failed to get user"
)
