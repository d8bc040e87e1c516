package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for FXLens
type Config struct {
	Environment string         `toml:"environment"`
	Server      ServerConfig   `toml:"server"`
	Storage     StorageConfig  `toml:"storage"`
	Myfxbook    MyfxbookConfig `toml:"myfxbook"`
	Cache       CacheConfig    `toml:"cache"`
	Accounts    AccountsConfig `toml:"accounts"`
	Logging     LoggingConfig  `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig selects and locates the cache store backend.
type StorageConfig struct {
	Backend string `toml:"backend"` // "badger" (persistent) or "memory"
	Path    string `toml:"path"`
}

// MyfxbookConfig holds upstream API configuration
type MyfxbookConfig struct {
	BaseURL   string `toml:"base_url"`
	Email     string `toml:"email"`
	Password  string `toml:"password"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the per-call timeout duration
func (c *MyfxbookConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// CacheConfig holds cache-aside behaviour configuration
type CacheConfig struct {
	DefaultTTL string `toml:"default_ttl"`
}

// GetDefaultTTL parses and returns the default entry TTL
func (c *CacheConfig) GetDefaultTTL() time.Duration {
	d, err := time.ParseDuration(c.DefaultTTL)
	if err != nil {
		return 10 * time.Minute
	}
	return d
}

// AccountsConfig defines the account set behind the synthetic default
// aggregate, the low-risk subset whose display names are overridden, and the
// synthetic entry's own display name.
type AccountsConfig struct {
	IDs         []string `toml:"ids"`
	LowRiskIDs  []string `toml:"low_risk_ids"`
	DefaultName string   `toml:"default_name"`
	LowRiskName string   `toml:"low_risk_name"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Backend: "badger",
			Path:    "data/cache",
		},
		Myfxbook: MyfxbookConfig{
			BaseURL:   "https://www.myfxbook.com",
			RateLimit: 5,
			Timeout:   "30s",
		},
		Cache: CacheConfig{
			DefaultTTL: "10m",
		},
		Accounts: AccountsConfig{
			DefaultName: "All Accounts",
			LowRiskName: "Low Risk",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FXLENS_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FXLENS_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FXLENS_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("FXLENS_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if backend := os.Getenv("FXLENS_STORAGE_BACKEND"); backend != "" {
		config.Storage.Backend = backend
	}

	if path := os.Getenv("FXLENS_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if v := os.Getenv("FXLENS_MYFXBOOK_BASE_URL"); v != "" {
		config.Myfxbook.BaseURL = v
	}
	if v := os.Getenv("FXLENS_MYFXBOOK_EMAIL"); v != "" {
		config.Myfxbook.Email = v
	}
	if v := os.Getenv("FXLENS_MYFXBOOK_PASSWORD"); v != "" {
		config.Myfxbook.Password = v
	}

	if v := os.Getenv("FXLENS_CACHE_TTL"); v != "" {
		config.Cache.DefaultTTL = v
	}

	if v := os.Getenv("FXLENS_ACCOUNT_IDS"); v != "" {
		config.Accounts.IDs = splitList(v)
	}
	if v := os.Getenv("FXLENS_LOW_RISK_IDS"); v != "" {
		config.Accounts.LowRiskIDs = splitList(v)
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// ValidateRequired returns the names of required settings that are missing.
// Upstream credentials and the aggregate account set must be configured for
// the service to do anything useful.
func (c *Config) ValidateRequired() []string {
	var missing []string
	if c.Myfxbook.Email == "" {
		missing = append(missing, "myfxbook.email")
	}
	if c.Myfxbook.Password == "" {
		missing = append(missing, "myfxbook.password")
	}
	if len(c.Accounts.IDs) == 0 {
		missing = append(missing, "accounts.ids")
	}
	return missing
}
