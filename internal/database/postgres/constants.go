package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - User Operations
const (
	ErrMsgFailedToInsertUser = "failed to insert user"
	ErrMsgFailedToUpdateUser = "failed to update user"
	ErrMsgFailedToGetUser    = "failed to get user"
	ErrMsgFailedToDeleteUser = "failed to delete user"
)

// Error Messages - Social Account Operations
const (
	ErrMsgFailedToInsertAccount = "failed to insert social account"
	ErrMsgFailedToUpdateAccount = "failed to update social account"
	ErrMsgFailedToGetAccount    = "failed to get social account"
	ErrMsgFailedToListAccounts  = "failed to list social accounts"
	ErrMsgFailedToDeleteAccount = "failed to delete social account"
	ErrMsgFailedToUpdateTokens  = "failed to update account tokens"
)
