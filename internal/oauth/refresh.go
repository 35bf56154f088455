package oauth

import (
	"context"
	"strconv"
	"time"

	"github.com/osse101/EasyPost_Go/internal/concurrency"
	"github.com/osse101/EasyPost_Go/internal/domain"
	"github.com/osse101/EasyPost_Go/internal/logger"
	"github.com/osse101/EasyPost_Go/internal/metrics"
	"github.com/osse101/EasyPost_Go/internal/repository"
)

// RefreshService keeps stored platform tokens usable. Refresh is lazy:
// nothing runs in the background, callers go through EnsureFresh right
// before using a token.
type RefreshService struct {
	accounts  repository.SocialAccount
	providers map[string]Provider
	locks     *concurrency.LockManager
	now       func() time.Time
}

// NewRefreshService creates a token refresh service
func NewRefreshService(accounts repository.SocialAccount, providers map[string]Provider) *RefreshService {
	return &RefreshService{
		accounts:  accounts,
		providers: providers,
		locks:     concurrency.NewLockManager(),
		now:       time.Now,
	}
}

// IsExpired reports whether the stored token has passed its expiry.
// Accounts without an expiry hold long-lived tokens and never expire.
func (s *RefreshService) IsExpired(account *domain.SocialAccount) bool {
	if account.TokenExpiresAt == nil {
		return false
	}
	return !account.TokenExpiresAt.After(s.now())
}

// Refresh exchanges the account's token for a fresh one and persists it.
// The returned account carries the new credentials.
func (s *RefreshService) Refresh(ctx context.Context, account *domain.SocialAccount) (*domain.SocialAccount, error) {
	log := logger.FromContext(ctx)

	provider, ok := s.providers[account.Platform]
	if !ok {
		return nil, domain.ErrInvalidPlatform
	}

	result, err := provider.Refresh(ctx, account.AccessToken)
	if err != nil {
		metrics.TokenRefreshes.WithLabelValues(account.Platform, metrics.OutcomeFailure).Inc()
		log.Error("Token refresh failed", "platform", account.Platform, "account_id", account.ID, "error", err)
		return nil, err
	}

	refreshed := *account
	refreshed.AccessToken = result.AccessToken
	if result.RefreshToken != "" {
		refreshed.RefreshToken = &result.RefreshToken
	}
	if result.ExpiresIn > 0 {
		t := s.now().Add(time.Duration(result.ExpiresIn) * time.Second)
		refreshed.TokenExpiresAt = &t
	} else {
		refreshed.TokenExpiresAt = nil
	}

	if err := s.accounts.UpdateTokens(ctx, refreshed.ID, refreshed.AccessToken, refreshed.RefreshToken, refreshed.TokenExpiresAt); err != nil {
		metrics.TokenRefreshes.WithLabelValues(account.Platform, metrics.OutcomeFailure).Inc()
		return nil, err
	}

	metrics.TokenRefreshes.WithLabelValues(account.Platform, metrics.OutcomeSuccess).Inc()
	log.Info("Token refreshed", "platform", account.Platform, "account_id", account.ID)
	return &refreshed, nil
}

// EnsureFresh returns the user's active account for a platform with a usable
// token, refreshing it first when expired
func (s *RefreshService) EnsureFresh(ctx context.Context, userID int64, platform string) (*domain.SocialAccount, error) {
	account, err := s.accounts.GetActiveAccount(ctx, userID, platform)
	if err != nil {
		return nil, err
	}
	if !s.IsExpired(account) {
		return account, nil
	}

	// Serialize refreshes per account: concurrent callers exchanging the
	// same token would invalidate each other's result.
	mu := s.locks.GetLock("refresh:" + strconv.FormatInt(account.ID, 10))
	mu.Lock()
	defer mu.Unlock()

	// Re-read under the lock, another caller may have refreshed already.
	account, err = s.accounts.GetActiveAccount(ctx, userID, platform)
	if err != nil {
		return nil, err
	}
	if !s.IsExpired(account) {
		return account, nil
	}
	return s.Refresh(ctx, account)
}
