package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound      = "user not found"
	ErrMsgUserAlreadyExists = "user already exists"

	// Platform errors
	ErrMsgInvalidPlatform = "invalid platform"

	// OAuth flow errors
	ErrMsgInvalidOrExpiredState = "invalid or expired state token"
	ErrMsgExchangeFailed        = "token exchange failed"
	ErrMsgRefreshFailed         = "token refresh failed"

	// Social account errors
	ErrMsgAccountNotFound   = "social account not found"
	ErrMsgAccountSaveFailed = "failed to save linked account"

	// Auth errors
	ErrMsgInvalidCredentials = "invalid credentials"
	ErrMsgInactiveUser       = "user is inactive"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound      = errors.New(ErrMsgUserNotFound)
	ErrUserAlreadyExists = errors.New(ErrMsgUserAlreadyExists)

	// Platform errors
	ErrInvalidPlatform = errors.New(ErrMsgInvalidPlatform)

	// OAuth flow errors.
	// ErrInvalidOrExpiredState deliberately covers missing, expired and
	// already-consumed state tokens: callers must not be able to tell which
	// case occurred.
	ErrInvalidOrExpiredState = errors.New(ErrMsgInvalidOrExpiredState)
	ErrExchangeFailed        = errors.New(ErrMsgExchangeFailed)
	ErrRefreshFailed         = errors.New(ErrMsgRefreshFailed)

	// Social account errors
	ErrAccountNotFound = errors.New(ErrMsgAccountNotFound)

	// Auth errors
	ErrInvalidCredentials = errors.New(ErrMsgInvalidCredentials)
	ErrInactiveUser       = errors.New(ErrMsgInactiveUser)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
