package oauth

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/osse101/EasyPost_Go/internal/domain"
	"github.com/osse101/EasyPost_Go/internal/logger"
	"github.com/osse101/EasyPost_Go/internal/metrics"
	"github.com/osse101/EasyPost_Go/internal/repository"
)

// Service defines the social account linking service interface
type Service interface {
	// InitiateLink issues a state token and returns the consent URL for the platform
	InitiateLink(ctx context.Context, userID int64, platform string) (string, error)

	// HandleCallback consumes the state, exchanges the code, and stores the
	// linked account. The returned URL is always a valid frontend redirect;
	// when err is non-nil the URL carries the failure message.
	HandleCallback(ctx context.Context, code, state string) (string, error)

	// ListAccounts returns the user's active linked accounts
	ListAccounts(ctx context.Context, userID int64) ([]domain.SocialAccount, error)

	// Unlink removes the user's linked account for a platform
	Unlink(ctx context.Context, userID int64, platform string) error

	// ActiveStateCount reports how many state tokens are outstanding
	ActiveStateCount() int

	// StartSweeper periodically drops expired state tokens until ctx is done
	StartSweeper(ctx context.Context)
}

type service struct {
	states      *StateStore
	providers   map[string]Provider
	accounts    repository.SocialAccount
	frontendURL string
	now         func() time.Time
}

// NewService creates a new linking service
func NewService(states *StateStore, providers map[string]Provider, accounts repository.SocialAccount, frontendURL string) Service {
	return &service{
		states:      states,
		providers:   providers,
		accounts:    accounts,
		frontendURL: frontendURL,
		now:         time.Now,
	}
}

// InitiateLink issues a state token and returns the consent URL
func (s *service) InitiateLink(ctx context.Context, userID int64, platform string) (string, error) {
	log := logger.FromContext(ctx)

	provider, ok := s.providers[platform]
	if !ok {
		return "", domain.ErrInvalidPlatform
	}

	// Drop stale states before adding a new one
	if removed := s.states.Sweep(); removed > 0 {
		log.Debug("Swept expired state tokens", "count", removed)
	}

	entry, err := s.states.Issue(userID, platform)
	if err != nil {
		return "", err
	}

	log.Info("OAuth link initiated", "user_id", userID, "platform", platform)
	return provider.AuthorizationURL(entry.Token), nil
}

// HandleCallback consumes the state, exchanges the code, and stores the account
func (s *service) HandleCallback(ctx context.Context, code, state string) (string, error) {
	log := logger.FromContext(ctx)

	entry, ok := s.states.ValidateAndConsume(state)
	if !ok {
		log.Warn("OAuth callback with invalid state")
		return s.errorRedirect("", domain.ErrMsgInvalidOrExpiredState), domain.ErrInvalidOrExpiredState
	}

	// The platform comes from the state entry, never from the request
	platform := entry.Platform
	provider, ok := s.providers[platform]
	if !ok {
		log.Error("State entry references unknown platform", "platform", platform)
		return s.errorRedirect(platform, domain.ErrMsgInvalidPlatform), domain.ErrInvalidPlatform
	}

	result, err := provider.ExchangeCode(ctx, code)
	if err != nil {
		metrics.OAuthExchanges.WithLabelValues(platform, metrics.OutcomeFailure).Inc()
		log.Error("Code exchange failed", "platform", platform, "user_id", entry.UserID, "error", err)
		return s.errorRedirect(platform, domain.ErrMsgExchangeFailed), err
	}
	metrics.OAuthExchanges.WithLabelValues(platform, metrics.OutcomeSuccess).Inc()

	account := s.buildAccount(entry.UserID, platform, result)
	if err := s.accounts.UpsertAccount(ctx, account); err != nil {
		log.Error("Failed to store linked account", "platform", platform, "user_id", entry.UserID, "error", err)
		return s.errorRedirect(platform, domain.ErrMsgAccountSaveFailed), err
	}

	log.Info("Social account linked",
		"platform", platform,
		"user_id", entry.UserID,
		"account_id", account.ID,
		"platform_user_id", account.PlatformUserID)

	return s.successRedirect(platform), nil
}

// buildAccount maps a token result onto a social account row
func (s *service) buildAccount(userID int64, platform string, result *domain.TokenResult) *domain.SocialAccount {
	platformUserID := result.PlatformUserID
	if platformUserID == "" {
		if platform == domain.PlatformInstagram {
			platformUserID = SynthesizeInstagramID(result.AccessToken)
		} else {
			platformUserID = "unknown_" + platform
		}
	}

	var refreshToken *string
	if result.RefreshToken != "" {
		refreshToken = &result.RefreshToken
	}

	var expiresAt *time.Time
	if result.ExpiresIn > 0 {
		t := s.now().Add(time.Duration(result.ExpiresIn) * time.Second)
		expiresAt = &t
	}

	return &domain.SocialAccount{
		UserID:         userID,
		Platform:       platform,
		PlatformUserID: platformUserID,
		AccessToken:    result.AccessToken,
		RefreshToken:   refreshToken,
		TokenExpiresAt: expiresAt,
		ExtraFields:    result.ExtraFields,
	}
}

// ListAccounts returns the user's active linked accounts
func (s *service) ListAccounts(ctx context.Context, userID int64) ([]domain.SocialAccount, error) {
	return s.accounts.ListAccountsByUser(ctx, userID)
}

// Unlink removes the user's linked account for a platform
func (s *service) Unlink(ctx context.Context, userID int64, platform string) error {
	if !domain.IsValidPlatform(platform) {
		return domain.ErrInvalidPlatform
	}
	if err := s.accounts.DeleteAccount(ctx, userID, platform); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("Social account unlinked", "user_id", userID, "platform", platform)
	return nil
}

// ActiveStateCount reports how many state tokens are outstanding
func (s *service) ActiveStateCount() int {
	return s.states.Len()
}

// StartSweeper periodically drops expired state tokens until ctx is done
func (s *service) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(StateSweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := s.states.Sweep(); removed > 0 {
					logger.FromContext(ctx).Debug("Swept expired state tokens", "count", removed)
				}
			}
		}
	}()
}

func (s *service) successRedirect(platform string) string {
	return fmt.Sprintf("%s/dashboard?social_linked=%s&success=true", s.frontendURL, url.QueryEscape(platform))
}

func (s *service) errorRedirect(platform, msg string) string {
	if platform == "" {
		return fmt.Sprintf("%s/dashboard?error=%s", s.frontendURL, url.QueryEscape(msg))
	}
	return fmt.Sprintf("%s/dashboard?social_linked=%s&error=%s", s.frontendURL, url.QueryEscape(platform), url.QueryEscape(msg))
}
