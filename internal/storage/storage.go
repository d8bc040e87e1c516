package storage

import (
	"fmt"

	"github.com/fxlens/fxlens/internal/common"
	"github.com/fxlens/fxlens/internal/interfaces"
	"github.com/fxlens/fxlens/internal/storage/badger"
	"github.com/fxlens/fxlens/internal/storage/memory"
)

// NewCacheStore creates the configured cache store backend. "badger" is the
// persistent default; "memory" keeps everything in-process.
func NewCacheStore(logger *common.Logger, cfg common.StorageConfig) (interfaces.CacheStore, error) {
	switch cfg.Backend {
	case "", "badger":
		store, err := badger.NewStore(logger, cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize badger cache store: %w", err)
		}
		return badger.NewCacheStorage(store), nil
	case "memory":
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
