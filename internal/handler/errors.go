package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// User management error messages
	ErrMsgRegisterUserFailed = "Failed to register user"
	ErrMsgGetUserFailed      = "Failed to get user"
	ErrMsgUpdateUserFailed   = "Failed to update user"
	ErrMsgDeleteUserFailed   = "Failed to delete user"
	ErrMsgInvalidUserID      = "Invalid user id"

	// Auth error messages
	ErrMsgLoginFailed       = "Login failed"
	ErrMsgTokenIssueFailed  = "Failed to issue token"
	ErrMsgNotAuthenticated  = "Not authenticated"
	ErrMsgForbiddenResource = "You do not have access to this resource"

	// OAuth linking error messages
	ErrMsgInitiateLinkFailed = "Failed to initiate account linking"
	ErrMsgListAccountsFailed = "Failed to list linked accounts"
	ErrMsgUnlinkFailed       = "Failed to unlink account"

	// Webhook error messages
	ErrMsgWebhookVerifyFailed = "Verification failed"

	// Instagram content error messages
	ErrMsgGetProfileFailed = "Failed to fetch Instagram profile"
	ErrMsgListPostsFailed  = "Failed to fetch Instagram posts"
	ErrMsgCreatePostFailed = "Failed to publish Instagram post"

	// Parameter validation error messages
	ErrMsgInvalidLimit = "Invalid limit parameter"
)
