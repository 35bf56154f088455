package concurrency

import (
	"sync"
)

// LockManager hands out one mutex per key so callers working on
// unrelated keys never contend. Mutexes are created on first use and
// kept for the life of the manager, so key cardinality should stay
// bounded (one per account, not one per request).
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given key, creating it if needed
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
