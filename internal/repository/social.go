package repository

import (
	"context"
	"time"

	"github.com/osse101/EasyPost_Go/internal/domain"
)

// SocialAccount defines the interface for linked social account persistence
type SocialAccount interface {
	// UpsertAccount inserts a new linked account or, when the user already has
	// an active account for the platform, replaces its credentials and platform
	// user id in place. The stored row id is written back to the account.
	UpsertAccount(ctx context.Context, account *domain.SocialAccount) error
	GetAccountByID(ctx context.Context, accountID int64) (*domain.SocialAccount, error)
	GetActiveAccount(ctx context.Context, userID int64, platform string) (*domain.SocialAccount, error)
	ListAccountsByUser(ctx context.Context, userID int64) ([]domain.SocialAccount, error)
	UpdateTokens(ctx context.Context, accountID int64, accessToken string, refreshToken *string, expiresAt *time.Time) error
	// DeleteAccount removes the user's linked account for a platform. Returns
	// domain.ErrAccountNotFound when no row matches.
	DeleteAccount(ctx context.Context, userID int64, platform string) error
}
