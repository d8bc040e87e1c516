// Package memory provides an in-memory cache store, used for tests and as a
// lightweight alternative to the persistent backend.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fxlens/fxlens/internal/interfaces"
)

type entry struct {
	value     string
	expiresAt time.Time // zero = permanent
}

// Store implements interfaces.CacheStore with a mutex-guarded map.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewStore creates an empty in-memory cache store.
func NewStore() *Store {
	return &Store{entries: make(map[string]entry)}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *Store) Set(_ context.Context, key, value string, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}

func (s *Store) SetPermanent(ctx context.Context, key, value string) error {
	return s.Set(ctx, key, value, 0)
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

func (s *Store) Close() error {
	return nil
}

var _ interfaces.CacheStore = (*Store)(nil)
