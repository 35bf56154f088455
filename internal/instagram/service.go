package instagram

import (
	"context"

	"github.com/osse101/EasyPost_Go/internal/domain"
	"github.com/osse101/EasyPost_Go/internal/logger"
)

// TokenSource yields a usable access token for a user's linked account,
// refreshing it first when it has expired.
type TokenSource interface {
	EnsureFresh(ctx context.Context, userID int64, platform string) (*domain.SocialAccount, error)
}

// ContentClient is the Graph API surface the service needs.
type ContentClient interface {
	GetProfile(ctx context.Context, accessToken, igUserID string) (*Profile, error)
	ListPosts(ctx context.Context, accessToken, igUserID string, limit int) ([]Media, error)
	CreatePost(ctx context.Context, accessToken, igUserID, imageURL, caption string) (string, error)
}

// Service performs content operations on behalf of a registered user's
// linked Instagram account. Every call resolves the account through the
// token source, so callers never touch raw credentials.
type Service struct {
	tokens TokenSource
	client ContentClient
}

func NewService(tokens TokenSource, client ContentClient) *Service {
	return &Service{tokens: tokens, client: client}
}

// GetProfile fetches the linked account's business profile.
func (s *Service) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	account, err := s.tokens.EnsureFresh(ctx, userID, domain.PlatformInstagram)
	if err != nil {
		return nil, err
	}

	profile, err := s.client.GetProfile(ctx, account.AccessToken, account.PlatformUserID)
	if err != nil {
		logger.FromContext(ctx).Error(LogErrContentRequestFailed, "error", err, "user_id", userID, "operation", "get_profile")
		return nil, err
	}
	return profile, nil
}

// ListPosts returns the linked account's most recent posts.
func (s *Service) ListPosts(ctx context.Context, userID int64, limit int) ([]Media, error) {
	account, err := s.tokens.EnsureFresh(ctx, userID, domain.PlatformInstagram)
	if err != nil {
		return nil, err
	}

	posts, err := s.client.ListPosts(ctx, account.AccessToken, account.PlatformUserID, limit)
	if err != nil {
		logger.FromContext(ctx).Error(LogErrContentRequestFailed, "error", err, "user_id", userID, "operation", "list_posts")
		return nil, err
	}
	return posts, nil
}

// CreatePost publishes an image post and returns the published media id.
func (s *Service) CreatePost(ctx context.Context, userID int64, imageURL, caption string) (string, error) {
	account, err := s.tokens.EnsureFresh(ctx, userID, domain.PlatformInstagram)
	if err != nil {
		return "", err
	}

	mediaID, err := s.client.CreatePost(ctx, account.AccessToken, account.PlatformUserID, imageURL, caption)
	if err != nil {
		logger.FromContext(ctx).Error(LogErrContentRequestFailed, "error", err, "user_id", userID, "operation", "create_post")
		return "", err
	}
	return mediaID, nil
}
