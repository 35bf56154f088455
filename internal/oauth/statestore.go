package oauth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/EasyPost_Go/internal/domain"
	"github.com/osse101/EasyPost_Go/internal/metrics"
)

// StateStore holds pending OAuth state tokens in memory. Tokens are
// single-use: ValidateAndConsume removes the entry atomically so a replayed
// callback with the same state is rejected.
type StateStore struct {
	mu      sync.Mutex
	entries map[string]domain.StateEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewStateStore creates a state store with the default TTL
func NewStateStore() *StateStore {
	return NewStateStoreWithClock(StateTokenTTL, time.Now)
}

// NewStateStoreWithClock creates a state store with an injectable clock
func NewStateStoreWithClock(ttl time.Duration, now func() time.Time) *StateStore {
	return &StateStore{
		entries: make(map[string]domain.StateEntry),
		ttl:     ttl,
		now:     now,
	}
}

// Issue creates and stores a new state token bound to a user and platform
func (s *StateStore) Issue(userID int64, platform string) (domain.StateEntry, error) {
	token, err := generateStateToken()
	if err != nil {
		return domain.StateEntry{}, fmt.Errorf("failed to generate state token: %w", err)
	}

	now := s.now()
	entry := domain.StateEntry{
		Token:     token,
		UserID:    userID,
		Platform:  platform,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.entries[token] = entry
	size := len(s.entries)
	s.mu.Unlock()

	metrics.StateTokensActive.Set(float64(size))
	return entry, nil
}

// ValidateAndConsume looks up a state token, removes it, and returns its
// entry. A missing, expired, or already-consumed token returns false; callers
// cannot distinguish which case occurred.
func (s *StateStore) ValidateAndConsume(token string) (domain.StateEntry, bool) {
	s.mu.Lock()
	entry, ok := s.entries[token]
	if ok {
		delete(s.entries, token)
	}
	size := len(s.entries)
	s.mu.Unlock()

	metrics.StateTokensActive.Set(float64(size))

	if !ok || s.now().After(entry.ExpiresAt) {
		metrics.StateTokensConsumed.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return domain.StateEntry{}, false
	}

	metrics.StateTokensConsumed.WithLabelValues(metrics.OutcomeValid).Inc()
	return entry, true
}

// Sweep removes expired entries and returns how many were dropped
func (s *StateStore) Sweep() int {
	now := s.now()

	s.mu.Lock()
	removed := 0
	for token, entry := range s.entries {
		if now.After(entry.ExpiresAt) {
			delete(s.entries, token)
			removed++
		}
	}
	size := len(s.entries)
	s.mu.Unlock()

	metrics.StateTokensActive.Set(float64(size))
	return removed
}

// Len returns the number of unconsumed tokens currently held
func (s *StateStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// generateStateToken returns a URL-safe random token. 32 random bytes encode
// to 43 base64 characters without padding.
func generateStateToken() (string, error) {
	buf := make([]byte, StateTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
