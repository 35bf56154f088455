package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/EasyPost_Go/internal/auth"
	"github.com/osse101/EasyPost_Go/internal/domain"
)

func registerTestUser(t *testing.T, svc Service) domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{
		Username:       "alice",
		Email:          "alice@example.com",
		Password:       "hunter2hunter2",
		WhatsAppNumber: "+1 (555) 010-0001",
		Niche:          "fitness",
	})
	require.NoError(t, err)
	return user
}

func TestService_Register(t *testing.T) {
	t.Run("creates user with hashed password and normalized fields", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := NewService(repo)

		user, err := svc.Register(context.Background(), RegisterInput{
			Username:       "  Alice  ",
			Email:          " alice@example.com ",
			Password:       "hunter2hunter2",
			WhatsAppNumber: "+1 (555) 010-0001",
			Niche:          "fitness",
		})
		require.NoError(t, err)

		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "+15550100001", user.WhatsAppNumber)
		assert.True(t, user.IsActive)
		assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)
		assert.NoError(t, auth.CheckPassword(user.PasswordHash, "hunter2hunter2"))
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := NewService(repo)
		registerTestUser(t, svc)

		_, err := svc.Register(context.Background(), RegisterInput{
			Username: "alice",
			Email:    "other@example.com",
			Password: "hunter2hunter2",
		})
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})

	t.Run("validation failures", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := NewService(repo)

		tests := []struct {
			name  string
			input RegisterInput
		}{
			{"short username", RegisterInput{Username: "ab", Email: "a@b.com", Password: "hunter2hunter2"}},
			{"bad email", RegisterInput{Username: "alice", Email: "not-an-email", Password: "hunter2hunter2"}},
			{"short password", RegisterInput{Username: "alice", Email: "a@b.com", Password: "short"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Register(context.Background(), tt.input)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			})
		}
	})
}

func TestService_Authenticate(t *testing.T) {
	repo := NewFakeRepository()
	svc := NewService(repo)
	registerTestUser(t, svc)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate(context.Background(), "alice", "hunter2hunter2")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("username is normalized before lookup", func(t *testing.T) {
		user, err := svc.Authenticate(context.Background(), "  ALICE  ", "hunter2hunter2")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "alice", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown user maps to invalid credentials", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "nobody", "hunter2hunter2")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("inactive user is rejected", func(t *testing.T) {
		inactive, err := svc.Register(context.Background(), RegisterInput{
			Username: "bob",
			Email:    "bob@example.com",
			Password: "hunter2hunter2",
		})
		require.NoError(t, err)

		inactive.IsActive = false
		require.NoError(t, repo.UpdateUser(context.Background(), inactive))

		_, err = svc.Authenticate(context.Background(), "bob", "hunter2hunter2")
		assert.ErrorIs(t, err, domain.ErrInactiveUser)
	})
}

func TestService_Lookups(t *testing.T) {
	repo := NewFakeRepository()
	svc := NewService(repo)
	created := registerTestUser(t, svc)

	t.Run("by id", func(t *testing.T) {
		user, err := svc.GetUserByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Username, user.Username)
	})

	t.Run("by username", func(t *testing.T) {
		user, err := svc.GetUserByUsername(context.Background(), "Alice")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("by whatsapp number with formatting", func(t *testing.T) {
		user, err := svc.GetUserByWhatsAppNumber(context.Background(), "+1 555-010-0001")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("whatsapp lookup is served from cache", func(t *testing.T) {
		// Prime the cache, then delete directly from the repository. The
		// cached entry still answers until it is invalidated or expires.
		_, err := svc.GetUserByWhatsAppNumber(context.Background(), "+15550100001")
		require.NoError(t, err)

		require.NoError(t, repo.DeleteUser(context.Background(), created.ID))

		user, err := svc.GetUserByWhatsAppNumber(context.Background(), "+15550100001")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("unknown lookups return not found", func(t *testing.T) {
		_, err := svc.GetUserByID(context.Background(), 9999)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		_, err = svc.GetUserByUsername(context.Background(), "nobody")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestService_UpdateUser(t *testing.T) {
	t.Run("applies only non-nil fields", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := NewService(repo)
		created := registerTestUser(t, svc)

		niche := "travel"
		updated, err := svc.UpdateUser(context.Background(), created.ID, UpdateInput{Niche: &niche})
		require.NoError(t, err)

		assert.Equal(t, "travel", updated.Niche)
		assert.Equal(t, created.Email, updated.Email)
		assert.Equal(t, created.WhatsAppNumber, updated.WhatsAppNumber)
	})

	t.Run("rehashes changed password", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := NewService(repo)
		created := registerTestUser(t, svc)

		password := "new-password-123"
		_, err := svc.UpdateUser(context.Background(), created.ID, UpdateInput{Password: &password})
		require.NoError(t, err)

		_, err = svc.Authenticate(context.Background(), "alice", "new-password-123")
		assert.NoError(t, err)
		_, err = svc.Authenticate(context.Background(), "alice", "hunter2hunter2")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("rejects short password", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := NewService(repo)
		created := registerTestUser(t, svc)

		password := "short"
		_, err := svc.UpdateUser(context.Background(), created.ID, UpdateInput{Password: &password})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("invalidates stale cache entries on phone number change", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := NewService(repo)
		created := registerTestUser(t, svc)

		// Prime the cache under the old number.
		_, err := svc.GetUserByWhatsAppNumber(context.Background(), created.WhatsAppNumber)
		require.NoError(t, err)

		number := "+15550109999"
		_, err = svc.UpdateUser(context.Background(), created.ID, UpdateInput{WhatsAppNumber: &number})
		require.NoError(t, err)

		_, err = svc.GetUserByWhatsAppNumber(context.Background(), created.WhatsAppNumber)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		user, err := svc.GetUserByWhatsAppNumber(context.Background(), number)
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := NewService(repo)

		_, err := svc.UpdateUser(context.Background(), 42, UpdateInput{})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestService_DeleteUser(t *testing.T) {
	repo := NewFakeRepository()
	svc := NewService(repo)
	created := registerTestUser(t, svc)

	// Prime the username cache so deletion must invalidate it.
	_, err := svc.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(context.Background(), created.ID))

	_, err = svc.GetUserByUsername(context.Background(), "alice")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	assert.ErrorIs(t, svc.DeleteUser(context.Background(), created.ID), domain.ErrUserNotFound)
}
