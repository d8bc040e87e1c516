package interfaces

import (
	"context"
	"time"
)

// CacheStore is a key/value memoization store with optional TTL. Backends
// (BadgerHold, in-memory) are interchangeable. Callers treat any backend
// failure as a cache miss; the stores return errors so the caller can log
// them, but a failing store must never fail a request.
type CacheStore interface {
	// Get returns the value for key, and whether it was present and unexpired.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key with the given TTL. A zero TTL stores the
	// entry permanently.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// SetPermanent stores value under key with no expiry.
	SetPermanent(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
