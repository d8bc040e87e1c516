// Package app wires configuration, storage, the upstream client and the
// services into one shared core used by cmd/fxlens-server.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fxlens/fxlens/internal/clients/myfxbook"
	"github.com/fxlens/fxlens/internal/common"
	"github.com/fxlens/fxlens/internal/interfaces"
	"github.com/fxlens/fxlens/internal/services/account"
	"github.com/fxlens/fxlens/internal/services/session"
	"github.com/fxlens/fxlens/internal/storage"
)

// App holds all initialized services and clients.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Store       interfaces.CacheStore
	Provider    interfaces.ProviderClient
	Sessions    interfaces.SessionService
	Accounts    interfaces.AccountService
	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, storage, the upstream client and
// the services. configPath may be empty, in which case FXLENS_CONFIG and the
// binary directory are consulted.
func NewApp(configPath string) (*App, error) {
	startupTime := time.Now()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("FXLENS_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "fxlens.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/fxlens.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLogger(config.Logging.Level)

	if missing := config.ValidateRequired(); len(missing) > 0 {
		for _, m := range missing {
			logger.Warn().Str("setting", m).Msg("Required configuration is missing")
		}
	}

	store, err := storage.NewCacheStore(logger, config.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache store: %w", err)
	}

	provider := myfxbook.NewClient(
		myfxbook.WithBaseURL(config.Myfxbook.BaseURL),
		myfxbook.WithRateLimit(config.Myfxbook.RateLimit),
		myfxbook.WithTimeout(config.Myfxbook.GetTimeout()),
		myfxbook.WithLogger(logger),
	)

	sessions := session.NewManager(store, provider, config.Myfxbook, logger)

	accounts := account.NewService(store, provider, sessions, config.Accounts,
		config.Cache.GetDefaultTTL(), logger)

	logger.Info().
		Str("environment", config.Environment).
		Str("backend", config.Storage.Backend).
		Int("accounts", len(config.Accounts.IDs)).
		Msg("Application initialized")

	return &App{
		Config:      config,
		Logger:      logger,
		Store:       store,
		Provider:    provider,
		Sessions:    sessions,
		Accounts:    accounts,
		StartupTime: startupTime,
	}, nil
}

// Close releases the cache store. Errors are logged, not returned, so
// shutdown always completes.
func (a *App) Close(ctx context.Context) {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close cache store")
		}
	}
	a.Logger.Info().Msg("Application closed")
}
