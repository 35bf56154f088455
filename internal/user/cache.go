package user

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/EasyPost_Go/internal/domain"
)

// cachedUserEntry wraps a user with version metadata for cache invalidation
type cachedUserEntry struct {
	Version  string       `json:"version"`
	User     *domain.User `json:"user"`
	CachedAt time.Time    `json:"cached_at"`
}

// userCache provides an in-memory LRU cache for user lookups
// with time-based expiration and version-based invalidation to prevent stale data.
// Lookups are keyed by kind ("id", "username", "whatsapp") plus the lookup value.
type userCache struct {
	lru *expirable.LRU[string, *cachedUserEntry]
}

// newUserCache creates a new user cache with the specified size and TTL.
func newUserCache(size int, ttl time.Duration) *userCache {
	return &userCache{
		lru: expirable.NewLRU[string, *cachedUserEntry](size, nil, ttl),
	}
}

// Get retrieves a user from the cache.
// Returns (nil, false) if not in cache, expired, or version mismatch.
// Automatically invalidates entries with mismatched versions.
func (c *userCache) Get(kind, key string) (*domain.User, bool) {
	cacheKey := kind + ":" + key
	entry, found := c.lru.Get(cacheKey)
	if !found {
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(cacheKey)
		return nil, false
	}

	return entry.User, true
}

// Set stores a user in the cache with current schema version.
func (c *userCache) Set(kind, key string, user *domain.User) {
	entry := &cachedUserEntry{
		Version:  CacheSchemaVersion,
		User:     user,
		CachedAt: time.Now(),
	}
	c.lru.Add(kind+":"+key, entry)
}

// Invalidate removes a user from the cache.
func (c *userCache) Invalidate(kind, key string) {
	c.lru.Remove(kind + ":" + key)
}

// Clear removes all entries from the cache.
func (c *userCache) Clear() {
	c.lru.Purge()
}
