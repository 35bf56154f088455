package oauth

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/EasyPost_Go/internal/domain"
	"github.com/osse101/EasyPost_Go/internal/testing/leaktest"
)

// FakeSocialAccountRepository is an in-memory repository.SocialAccount
type FakeSocialAccountRepository struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]*domain.SocialAccount

	UpsertErr error
}

func NewFakeSocialAccountRepository() *FakeSocialAccountRepository {
	return &FakeSocialAccountRepository{
		nextID:   1,
		accounts: make(map[int64]*domain.SocialAccount),
	}
}

func (f *FakeSocialAccountRepository) UpsertAccount(ctx context.Context, account *domain.SocialAccount) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.UpsertErr != nil {
		return f.UpsertErr
	}

	for id, existing := range f.accounts {
		if existing.UserID == account.UserID && existing.Platform == account.Platform {
			account.ID = id
			account.IsActive = true
			account.CreatedAt = existing.CreatedAt
			account.UpdatedAt = time.Now()
			stored := *account
			f.accounts[id] = &stored
			return nil
		}
	}

	account.ID = f.nextID
	f.nextID++
	account.IsActive = true
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	stored := *account
	f.accounts[account.ID] = &stored
	return nil
}

func (f *FakeSocialAccountRepository) GetAccountByID(ctx context.Context, accountID int64) (*domain.SocialAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	account, ok := f.accounts[accountID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (f *FakeSocialAccountRepository) GetActiveAccount(ctx context.Context, userID int64, platform string) (*domain.SocialAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, account := range f.accounts {
		if account.UserID == userID && account.Platform == platform && account.IsActive {
			copied := *account
			return &copied, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (f *FakeSocialAccountRepository) ListAccountsByUser(ctx context.Context, userID int64) ([]domain.SocialAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var accounts []domain.SocialAccount
	for _, account := range f.accounts {
		if account.UserID == userID {
			accounts = append(accounts, *account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (f *FakeSocialAccountRepository) UpdateTokens(ctx context.Context, accountID int64, accessToken string, refreshToken *string, expiresAt *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	account, ok := f.accounts[accountID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.AccessToken = accessToken
	account.RefreshToken = refreshToken
	account.TokenExpiresAt = expiresAt
	account.UpdatedAt = time.Now()
	return nil
}

func (f *FakeSocialAccountRepository) DeleteAccount(ctx context.Context, userID int64, platform string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, account := range f.accounts {
		if account.UserID == userID && account.Platform == platform {
			delete(f.accounts, id)
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

// fakeProvider is a canned Provider implementation
type fakeProvider struct {
	platform       string
	exchangeResult *domain.TokenResult
	exchangeErr    error
	refreshResult  *domain.TokenResult
	refreshErr     error

	exchangedCodes []string
	refreshCalls   atomic.Int32
}

func (p *fakeProvider) Platform() string { return p.platform }

func (p *fakeProvider) AuthorizationURL(state string) string {
	return fmt.Sprintf("https://consent.test/%s?state=%s", p.platform, state)
}

func (p *fakeProvider) ExchangeCode(ctx context.Context, code string) (*domain.TokenResult, error) {
	p.exchangedCodes = append(p.exchangedCodes, code)
	if p.exchangeErr != nil {
		return nil, p.exchangeErr
	}
	return p.exchangeResult, nil
}

func (p *fakeProvider) Refresh(ctx context.Context, accessToken string) (*domain.TokenResult, error) {
	p.refreshCalls.Add(1)
	if p.refreshErr != nil {
		return nil, p.refreshErr
	}
	return p.refreshResult, nil
}

func newTestService(t *testing.T) (Service, *StateStore, *FakeSocialAccountRepository, *fakeProvider, *fakeProvider) {
	t.Helper()

	states := NewStateStore()
	repo := NewFakeSocialAccountRepository()
	fb := &fakeProvider{
		platform: domain.PlatformFacebook,
		exchangeResult: &domain.TokenResult{
			AccessToken:    "fb-long-token",
			ExpiresIn:      5184000,
			PlatformUserID: "fb-user-1",
			DisplayName:    "Test User",
		},
	}
	ig := &fakeProvider{
		platform: domain.PlatformInstagram,
		exchangeResult: &domain.TokenResult{
			AccessToken:    "ig-token",
			ExpiresIn:      3600,
			PlatformUserID: "ig-user-1",
			DisplayName:    "creator.account",
		},
	}
	providers := map[string]Provider{
		domain.PlatformFacebook:  fb,
		domain.PlatformInstagram: ig,
	}
	svc := NewService(states, providers, repo, "https://frontend.test")
	return svc, states, repo, fb, ig
}

func TestService_InitiateLink(t *testing.T) {
	t.Run("returns consent URL carrying the state token", func(t *testing.T) {
		svc, states, _, _, _ := newTestService(t)

		authURL, err := svc.InitiateLink(context.Background(), 42, domain.PlatformFacebook)
		require.NoError(t, err)

		parsed, err := url.Parse(authURL)
		require.NoError(t, err)
		state := parsed.Query().Get("state")
		assert.NotEmpty(t, state)
		assert.Equal(t, 1, states.Len())

		entry, ok := states.ValidateAndConsume(state)
		require.True(t, ok)
		assert.Equal(t, int64(42), entry.UserID)
		assert.Equal(t, domain.PlatformFacebook, entry.Platform)
	})

	t.Run("rejects unknown platform", func(t *testing.T) {
		svc, _, _, _, _ := newTestService(t)

		_, err := svc.InitiateLink(context.Background(), 42, "myspace")
		assert.ErrorIs(t, err, domain.ErrInvalidPlatform)
	})
}

func TestService_HandleCallback(t *testing.T) {
	t.Run("links account and redirects with success", func(t *testing.T) {
		svc, _, repo, fb, _ := newTestService(t)
		ctx := context.Background()

		authURL, err := svc.InitiateLink(ctx, 42, domain.PlatformFacebook)
		require.NoError(t, err)
		state := mustQueryParam(t, authURL, "state")

		redirect, err := svc.HandleCallback(ctx, "the-code", state)
		require.NoError(t, err)
		assert.Contains(t, redirect, "social_linked=facebook")
		assert.Contains(t, redirect, "success=true")
		assert.Equal(t, []string{"the-code"}, fb.exchangedCodes)

		account, err := repo.GetActiveAccount(ctx, 42, domain.PlatformFacebook)
		require.NoError(t, err)
		assert.Equal(t, "fb-long-token", account.AccessToken)
		assert.Equal(t, "fb-user-1", account.PlatformUserID)
		require.NotNil(t, account.TokenExpiresAt)
	})

	t.Run("uses the platform from the state entry", func(t *testing.T) {
		svc, _, repo, fb, ig := newTestService(t)
		ctx := context.Background()

		// Initiated for Instagram; nothing in the callback names a platform
		authURL, err := svc.InitiateLink(ctx, 7, domain.PlatformInstagram)
		require.NoError(t, err)
		state := mustQueryParam(t, authURL, "state")

		redirect, err := svc.HandleCallback(ctx, "ig-code", state)
		require.NoError(t, err)
		assert.Contains(t, redirect, "social_linked=instagram")
		assert.Empty(t, fb.exchangedCodes)
		assert.Equal(t, []string{"ig-code"}, ig.exchangedCodes)

		_, err = repo.GetActiveAccount(ctx, 7, domain.PlatformInstagram)
		assert.NoError(t, err)
	})

	t.Run("rejects unknown state with error redirect", func(t *testing.T) {
		svc, _, _, _, _ := newTestService(t)

		redirect, err := svc.HandleCallback(context.Background(), "the-code", "forged-state")
		assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredState)
		assert.Contains(t, redirect, "error=")
		assert.NotContains(t, redirect, "success=true")
	})

	t.Run("rejects replayed state", func(t *testing.T) {
		svc, _, _, _, _ := newTestService(t)
		ctx := context.Background()

		authURL, err := svc.InitiateLink(ctx, 42, domain.PlatformFacebook)
		require.NoError(t, err)
		state := mustQueryParam(t, authURL, "state")

		_, err = svc.HandleCallback(ctx, "the-code", state)
		require.NoError(t, err)

		_, err = svc.HandleCallback(ctx, "the-code", state)
		assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredState)
	})

	t.Run("state is consumed even when exchange fails", func(t *testing.T) {
		svc, states, _, fb, _ := newTestService(t)
		ctx := context.Background()
		fb.exchangeErr = fmt.Errorf("%w: platform down", domain.ErrExchangeFailed)

		authURL, err := svc.InitiateLink(ctx, 42, domain.PlatformFacebook)
		require.NoError(t, err)
		state := mustQueryParam(t, authURL, "state")

		redirect, err := svc.HandleCallback(ctx, "the-code", state)
		assert.ErrorIs(t, err, domain.ErrExchangeFailed)
		assert.Contains(t, redirect, "social_linked=facebook")
		assert.Contains(t, redirect, "error=")
		assert.Equal(t, 0, states.Len(), "state must not be reusable after a failed exchange")
	})

	t.Run("second link cycle updates the same stored row", func(t *testing.T) {
		svc, _, repo, fb, _ := newTestService(t)
		ctx := context.Background()

		authURL, err := svc.InitiateLink(ctx, 42, domain.PlatformFacebook)
		require.NoError(t, err)
		_, err = svc.HandleCallback(ctx, "code-1", mustQueryParam(t, authURL, "state"))
		require.NoError(t, err)

		first, err := repo.GetActiveAccount(ctx, 42, domain.PlatformFacebook)
		require.NoError(t, err)

		fb.exchangeResult = &domain.TokenResult{
			AccessToken:    "fb-newer-token",
			ExpiresIn:      5184000,
			PlatformUserID: "fb-user-1",
		}

		authURL, err = svc.InitiateLink(ctx, 42, domain.PlatformFacebook)
		require.NoError(t, err)
		_, err = svc.HandleCallback(ctx, "code-2", mustQueryParam(t, authURL, "state"))
		require.NoError(t, err)

		second, err := repo.GetActiveAccount(ctx, 42, domain.PlatformFacebook)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "fb-newer-token", second.AccessToken)
	})

	t.Run("re-link with a rotated synthesized id updates the same row", func(t *testing.T) {
		svc, _, repo, _, ig := newTestService(t)
		ctx := context.Background()

		// Instagram identities synthesized from the access token change when
		// the token rotates; the stored row must still be reused.
		ig.exchangeResult = &domain.TokenResult{
			AccessToken:    "ig-token-1",
			ExpiresIn:      5184000,
			PlatformUserID: SynthesizeInstagramID("ig-token-1"),
		}
		authURL, err := svc.InitiateLink(ctx, 42, domain.PlatformInstagram)
		require.NoError(t, err)
		_, err = svc.HandleCallback(ctx, "code-1", mustQueryParam(t, authURL, "state"))
		require.NoError(t, err)

		first, err := repo.GetActiveAccount(ctx, 42, domain.PlatformInstagram)
		require.NoError(t, err)

		ig.exchangeResult = &domain.TokenResult{
			AccessToken:    "ig-token-2",
			ExpiresIn:      5184000,
			PlatformUserID: SynthesizeInstagramID("ig-token-2"),
		}
		authURL, err = svc.InitiateLink(ctx, 42, domain.PlatformInstagram)
		require.NoError(t, err)
		_, err = svc.HandleCallback(ctx, "code-2", mustQueryParam(t, authURL, "state"))
		require.NoError(t, err)

		accounts, err := repo.ListAccountsByUser(ctx, 42)
		require.NoError(t, err)
		require.Len(t, accounts, 1)
		assert.Equal(t, first.ID, accounts[0].ID)
		assert.NotEqual(t, first.PlatformUserID, accounts[0].PlatformUserID)
		assert.Equal(t, "ig-token-2", accounts[0].AccessToken)
	})

	t.Run("non-expiring token stores nil expiry", func(t *testing.T) {
		svc, _, repo, fb, _ := newTestService(t)
		ctx := context.Background()
		fb.exchangeResult = &domain.TokenResult{
			AccessToken:    "permanent-token",
			ExpiresIn:      0,
			PlatformUserID: "fb-user-1",
		}

		authURL, err := svc.InitiateLink(ctx, 42, domain.PlatformFacebook)
		require.NoError(t, err)
		_, err = svc.HandleCallback(ctx, "the-code", mustQueryParam(t, authURL, "state"))
		require.NoError(t, err)

		account, err := repo.GetActiveAccount(ctx, 42, domain.PlatformFacebook)
		require.NoError(t, err)
		assert.Nil(t, account.TokenExpiresAt)
	})
}

func TestService_ListAndUnlink(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	ctx := context.Background()

	for _, platform := range []string{domain.PlatformFacebook, domain.PlatformInstagram} {
		authURL, err := svc.InitiateLink(ctx, 42, platform)
		require.NoError(t, err)
		_, err = svc.HandleCallback(ctx, "code", mustQueryParam(t, authURL, "state"))
		require.NoError(t, err)
	}

	accounts, err := svc.ListAccounts(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)

	require.NoError(t, svc.Unlink(ctx, 42, domain.PlatformFacebook))

	accounts, err = svc.ListAccounts(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
	assert.Equal(t, domain.PlatformInstagram, accounts[0].Platform)

	t.Run("unlink without linked account", func(t *testing.T) {
		err := svc.Unlink(ctx, 42, domain.PlatformFacebook)
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	t.Run("unlink invalid platform", func(t *testing.T) {
		err := svc.Unlink(ctx, 42, "myspace")
		assert.ErrorIs(t, err, domain.ErrInvalidPlatform)
	})
}

func mustQueryParam(t *testing.T, rawURL, key string) string {
	t.Helper()
	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	value := parsed.Query().Get(key)
	require.NotEmpty(t, value, "expected %s in %s", key, rawURL)
	return value
}

func TestService_StartSweeperStopsOnCancel(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)

	checker := leaktest.NewGoroutineChecker(t)

	ctx, cancel := context.WithCancel(context.Background())
	svc.StartSweeper(ctx)
	cancel()

	checker.Check(0)
}
