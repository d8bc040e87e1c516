// Package account provides the public aggregation facade over the upstream
// provider, with cache-aside memoization and default-account fan-out.
package account

import (
	"context"
	"strings"
	"sync"

	"github.com/fxlens/fxlens/internal/common"
	"github.com/fxlens/fxlens/internal/models"
)

// Resolver maps the logical "default" account selector onto the configured
// set of real account ids.
type Resolver struct {
	ids    []string
	logger *common.Logger
}

// NewResolver creates a resolver over the configured account id set.
func NewResolver(ids []string, logger *common.Logger) *Resolver {
	return &Resolver{ids: ids, logger: logger}
}

// IsDefault reports whether accountID selects the synthetic aggregate.
func (r *Resolver) IsDefault(accountID string) bool {
	return strings.EqualFold(accountID, models.DefaultAccountID)
}

// IDs returns the configured account id set.
func (r *Resolver) IDs() []string {
	return r.ids
}

// Contains reports whether id is part of the configured set.
func (r *Resolver) Contains(id string) bool {
	for _, candidate := range r.ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// fanOut runs fn concurrently for every configured account id and returns one
// result per id, in configured order. A failing per-account call is logged
// and leaves the zero value in its slot, so a partial failure never aborts
// the aggregate; if every call fails the aggregate is all zero values, not an
// error. Session expiry is the one exception: it is reported back so the
// session layer can refresh and retry the whole operation.
func fanOut[T any](ctx context.Context, r *Resolver, op string, fn func(ctx context.Context, id string) (T, error)) ([]T, error) {
	results := make([]T, len(r.ids))

	var mu sync.Mutex
	var expired error
	var wg sync.WaitGroup
	for i, id := range r.ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			result, err := fn(ctx, id)
			if err != nil {
				if common.IsSessionExpired(err) {
					mu.Lock()
					expired = err
					mu.Unlock()
					return
				}
				r.logger.Warn().Err(err).Str("account", id).Str("op", op).
					Msg("Fan-out call failed, substituting zero result")
				return
			}
			results[i] = result
		}(i, id)
	}
	wg.Wait()

	if expired != nil {
		return nil, expired
	}
	return results, nil
}
