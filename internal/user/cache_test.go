package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/EasyPost_Go/internal/domain"
)

func TestUserCache_SetAndGet(t *testing.T) {
	cache := newUserCache(10, time.Minute)
	user := &domain.User{ID: 1, Username: "alice"}

	cache.Set(cacheKindUsername, "alice", user)

	got, found := cache.Get(cacheKindUsername, "alice")
	require.True(t, found)
	assert.Equal(t, int64(1), got.ID)
}

func TestUserCache_KindsDoNotCollide(t *testing.T) {
	cache := newUserCache(10, time.Minute)
	cache.Set(cacheKindUsername, "key", &domain.User{ID: 1})
	cache.Set(cacheKindWhatsApp, "key", &domain.User{ID: 2})

	byUsername, found := cache.Get(cacheKindUsername, "key")
	require.True(t, found)
	assert.Equal(t, int64(1), byUsername.ID)

	byNumber, found := cache.Get(cacheKindWhatsApp, "key")
	require.True(t, found)
	assert.Equal(t, int64(2), byNumber.ID)
}

func TestUserCache_Invalidate(t *testing.T) {
	cache := newUserCache(10, time.Minute)
	cache.Set(cacheKindUsername, "alice", &domain.User{ID: 1})

	cache.Invalidate(cacheKindUsername, "alice")

	_, found := cache.Get(cacheKindUsername, "alice")
	assert.False(t, found)
}

func TestUserCache_Expiry(t *testing.T) {
	cache := newUserCache(10, 10*time.Millisecond)
	cache.Set(cacheKindUsername, "alice", &domain.User{ID: 1})

	time.Sleep(30 * time.Millisecond)

	_, found := cache.Get(cacheKindUsername, "alice")
	assert.False(t, found)
}

func TestUserCache_Clear(t *testing.T) {
	cache := newUserCache(10, time.Minute)
	cache.Set(cacheKindUsername, "alice", &domain.User{ID: 1})
	cache.Set(cacheKindUsername, "bob", &domain.User{ID: 2})

	cache.Clear()

	_, found := cache.Get(cacheKindUsername, "alice")
	assert.False(t, found)
	_, found = cache.Get(cacheKindUsername, "bob")
	assert.False(t, found)
}
