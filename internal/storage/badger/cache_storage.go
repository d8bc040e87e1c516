package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/fxlens/fxlens/internal/interfaces"
)

// CacheEntry is a cached value with an optional expiry. A zero ExpiresAt
// means the entry is permanent.
type CacheEntry struct {
	Key       string `badgerhold:"key"`
	Value     string
	ExpiresAt time.Time
}

// CacheStorage implements interfaces.CacheStore on BadgerHold. Expiry is
// lazy: expired entries are deleted on read.
type CacheStorage struct {
	store *Store
}

// NewCacheStorage creates a CacheStore backed by the given store.
func NewCacheStorage(store *Store) *CacheStorage {
	return &CacheStorage{store: store}
}

func (s *CacheStorage) Get(_ context.Context, key string) (string, bool, error) {
	var entry CacheEntry
	err := s.store.db.Get(key, &entry)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get key '%s': %w", key, err)
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		if err := s.store.db.Delete(key, CacheEntry{}); err != nil && err != badgerhold.ErrNotFound {
			s.store.logger.Warn().Err(err).Str("key", key).Msg("Failed to delete expired cache entry")
		}
		return "", false, nil
	}

	return entry.Value, true, nil
}

func (s *CacheStorage) Set(_ context.Context, key, value string, ttl time.Duration) error {
	entry := CacheEntry{Key: key, Value: value}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}
	if err := s.store.db.Upsert(key, &entry); err != nil {
		return fmt.Errorf("failed to set key '%s': %w", key, err)
	}
	return nil
}

func (s *CacheStorage) SetPermanent(ctx context.Context, key, value string) error {
	return s.Set(ctx, key, value, 0)
}

func (s *CacheStorage) Delete(_ context.Context, key string) error {
	err := s.store.db.Delete(key, CacheEntry{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete key '%s': %w", key, err)
	}
	return nil
}

func (s *CacheStorage) Close() error {
	return s.store.Close()
}

var _ interfaces.CacheStore = (*CacheStorage)(nil)
