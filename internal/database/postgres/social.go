package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/EasyPost_Go/internal/domain"
)

// SocialAccountRepository implements repository.SocialAccount for PostgreSQL
type SocialAccountRepository struct {
	db *pgxpool.Pool
}

// NewSocialAccountRepository creates a new SocialAccountRepository
func NewSocialAccountRepository(db *pgxpool.Pool) *SocialAccountRepository {
	return &SocialAccountRepository{db: db}
}

const socialAccountColumns = `
	social_account_id, user_id, platform, platform_user_id, access_token,
	refresh_token, token_expires_at, extra_fields, is_active, created_at, updated_at
`

// UpsertAccount inserts a linked account or replaces an existing active row
// for the same (user, platform), overwriting its credentials and platform user
// id. The lookup and write happen inside one transaction with the existing row
// locked, so two concurrent callbacks for the same account cannot produce
// duplicate rows.
func (r *SocialAccountRepository) UpsertAccount(ctx context.Context, account *domain.SocialAccount) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	extraJSON, err := marshalExtraFields(account.ExtraFields)
	if err != nil {
		return err
	}

	var existingID int64
	err = tx.QueryRow(ctx, `
		SELECT social_account_id
		FROM social_accounts
		WHERE user_id = $1 AND platform = $2 AND is_active = TRUE
		FOR UPDATE
	`, account.UserID, account.Platform).Scan(&existingID)

	switch {
	case err == nil:
		query := `
			UPDATE social_accounts
			SET platform_user_id = $2, access_token = $3, refresh_token = $4,
			    token_expires_at = $5, extra_fields = $6, updated_at = NOW()
			WHERE social_account_id = $1
			RETURNING created_at, updated_at
		`
		err = tx.QueryRow(ctx, query,
			existingID,
			account.PlatformUserID,
			account.AccessToken,
			account.RefreshToken,
			account.TokenExpiresAt,
			extraJSON,
		).Scan(&account.CreatedAt, &account.UpdatedAt)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateAccount, err)
		}
		account.ID = existingID
		account.IsActive = true

	case errors.Is(err, pgx.ErrNoRows):
		query := `
			INSERT INTO social_accounts
				(user_id, platform, platform_user_id, access_token, refresh_token,
				 token_expires_at, extra_fields, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, NOW(), NOW())
			RETURNING social_account_id, created_at, updated_at
		`
		err = tx.QueryRow(ctx, query,
			account.UserID,
			account.Platform,
			account.PlatformUserID,
			account.AccessToken,
			account.RefreshToken,
			account.TokenExpiresAt,
			extraJSON,
		).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToInsertAccount, err)
		}
		account.IsActive = true

	default:
		return fmt.Errorf("%s: %w", ErrMsgFailedToGetAccount, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// GetAccountByID retrieves a linked account by its row id
func (r *SocialAccountRepository) GetAccountByID(ctx context.Context, accountID int64) (*domain.SocialAccount, error) {
	query := fmt.Sprintf(`SELECT %s FROM social_accounts WHERE social_account_id = $1`, socialAccountColumns)
	return r.scanAccount(r.db.QueryRow(ctx, query, accountID))
}

// GetActiveAccount retrieves a user's active linked account for a platform
func (r *SocialAccountRepository) GetActiveAccount(ctx context.Context, userID int64, platform string) (*domain.SocialAccount, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM social_accounts
		WHERE user_id = $1 AND platform = $2 AND is_active = TRUE
		ORDER BY updated_at DESC
		LIMIT 1
	`, socialAccountColumns)
	return r.scanAccount(r.db.QueryRow(ctx, query, userID, platform))
}

// ListAccountsByUser lists a user's linked accounts in creation order
func (r *SocialAccountRepository) ListAccountsByUser(ctx context.Context, userID int64) ([]domain.SocialAccount, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM social_accounts
		WHERE user_id = $1
		ORDER BY created_at, social_account_id
	`, socialAccountColumns)

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListAccounts, err)
	}
	defer rows.Close()

	var accounts []domain.SocialAccount
	for rows.Next() {
		account, err := scanAccountRow(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListAccounts, err)
	}
	return accounts, nil
}

// UpdateTokens replaces the stored credentials for an account after a refresh
func (r *SocialAccountRepository) UpdateTokens(ctx context.Context, accountID int64, accessToken string, refreshToken *string, expiresAt *time.Time) error {
	query := `
		UPDATE social_accounts
		SET access_token = $2, refresh_token = $3, token_expires_at = $4, updated_at = NOW()
		WHERE social_account_id = $1
	`
	tag, err := r.db.Exec(ctx, query, accountID, accessToken, refreshToken, expiresAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateTokens, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// DeleteAccount unlinks a user's account for a platform by removing the row.
// Re-linking afterwards goes through the full authorization flow and creates
// a fresh row.
func (r *SocialAccountRepository) DeleteAccount(ctx context.Context, userID int64, platform string) error {
	query := `
		DELETE FROM social_accounts
		WHERE user_id = $1 AND platform = $2
	`
	tag, err := r.db.Exec(ctx, query, userID, platform)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteAccount, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *SocialAccountRepository) scanAccount(row pgx.Row) (*domain.SocialAccount, error) {
	account, err := scanAccountRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

func scanAccountRow(row pgx.Row) (*domain.SocialAccount, error) {
	var (
		account      domain.SocialAccount
		refreshToken pgtype.Text
		expiresAt    pgtype.Timestamptz
		extraJSON    []byte
	)
	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.Platform,
		&account.PlatformUserID,
		&account.AccessToken,
		&refreshToken,
		&expiresAt,
		&extraJSON,
		&account.IsActive,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAccount, err)
	}

	account.RefreshToken = textToPtr(refreshToken)
	account.TokenExpiresAt = ptrTime(expiresAt)

	if len(extraJSON) > 0 {
		if err := json.Unmarshal(extraJSON, &account.ExtraFields); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAccount, err)
		}
	}
	return &account, nil
}

func marshalExtraFields(fields map[string]any) ([]byte, error) {
	if fields == nil {
		return []byte(`{}`), nil
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal extra fields: %w", err)
	}
	return data, nil
}
