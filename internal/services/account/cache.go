package account

import (
	"context"
	"encoding/json"
)

// cacheGet reads a key, treating any store failure as a miss. A cache outage
// must degrade to recomputation, never fail the request.
func (s *Service) cacheGet(ctx context.Context, key string) (string, bool) {
	value, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Cache read failed, treating as miss")
		return "", false
	}
	return value, ok
}

// cacheSet writes through to the store, logging and swallowing failures.
func (s *Service) cacheSet(ctx context.Context, key, value string) {
	if err := s.store.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// fetchCached is the cache-aside template shared by every read operation: a
// hit short-circuits all downstream work; on a miss the fetched result is
// written through before being returned. Fetch errors are never cached.
func fetchCached[T any](ctx context.Context, s *Service, key string, fetch func() (T, error)) (T, error) {
	var zero T

	if raw, ok := s.cacheGet(ctx, key); ok {
		var value T
		if err := json.Unmarshal([]byte(raw), &value); err == nil {
			s.logger.Debug().Str("key", key).Msg("Cache hit")
			return value, nil
		}
		// Corrupt entry: drop it and recompute.
		s.logger.Warn().Str("key", key).Msg("Dropping undecodable cache entry")
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("Cache delete failed")
		}
	}

	value, err := fetch()
	if err != nil {
		return zero, err
	}

	if data, err := json.Marshal(value); err == nil {
		s.cacheSet(ctx, key, string(data))
	}
	return value, nil
}
