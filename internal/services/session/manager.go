// Package session owns the single backend-managed upstream session.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fxlens/fxlens/internal/common"
	"github.com/fxlens/fxlens/internal/interfaces"
	"github.com/fxlens/fxlens/internal/models"
)

// sessionKey is the fixed cache store key holding the shared session. The
// entry has no TTL: it lives until an upstream call reports it invalid.
const sessionKey = "myfxbook:session"

// Manager implements SessionService. The stored session is deliberately not
// guarded by a process-level lock: two requests that both observe a missing
// session may both log in, which the upstream tolerates (multiple live
// sessions are valid), so the race is benign and cheaper than coordination.
type Manager struct {
	store    interfaces.CacheStore
	client   interfaces.ProviderClient
	email    string
	password string
	logger   *common.Logger
}

// NewManager creates a session manager using the configured credentials.
func NewManager(store interfaces.CacheStore, client interfaces.ProviderClient, cfg common.MyfxbookConfig, logger *common.Logger) *Manager {
	return &Manager{
		store:    store,
		client:   client,
		email:    cfg.Email,
		password: cfg.Password,
		logger:   logger,
	}
}

// Resolve returns a usable session token. Explicit tokens are returned
// unchanged and never persisted. Otherwise the stored session is reused
// without any upstream validation call; only when absent does Resolve log in
// and store the result permanently.
func (m *Manager) Resolve(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if raw, ok, err := m.store.Get(ctx, sessionKey); err != nil {
		m.logger.Warn().Err(err).Msg("Cache store read failed, treating session as missing")
	} else if ok {
		var sess models.Session
		if err := json.Unmarshal([]byte(raw), &sess); err == nil && sess.Token != "" {
			return sess.Token, nil
		}
		m.logger.Warn().Msg("Stored session is corrupt, logging in again")
	}

	token, err := m.client.Login(ctx, m.email, m.password)
	if err != nil {
		return "", fmt.Errorf("failed to establish upstream session: %w", err)
	}

	sess := models.Session{Token: token, CreatedAt: time.Now()}
	data, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}
	if err := m.store.SetPermanent(ctx, sessionKey, string(data)); err != nil {
		// A store outage degrades to logging in again next time.
		m.logger.Warn().Err(err).Msg("Failed to persist session")
	}

	m.logger.Info().Msg("Upstream session established")
	return token, nil
}

// Invalidate deletes the stored session so the next Resolve logs in again.
func (m *Manager) Invalidate(ctx context.Context) error {
	if err := m.store.Delete(ctx, sessionKey); err != nil {
		m.logger.Warn().Err(err).Msg("Failed to delete stored session")
	}
	return nil
}

// Logout invalidates the token upstream and locally.
func (m *Manager) Logout(ctx context.Context, token string) error {
	if err := m.client.Logout(ctx, token); err != nil {
		return fmt.Errorf("failed to log out upstream session: %w", err)
	}
	return m.Invalidate(ctx)
}

// WithSession runs fn with a resolved token. If fn reports session expiry the
// stored session is invalidated, re-resolved, and fn retried exactly once; a
// second expiry is surfaced as an upstream failure rather than retried again.
// Explicit tokens cannot be refreshed, so their expiry is surfaced directly.
func (m *Manager) WithSession(ctx context.Context, explicit string, fn func(token string) error) error {
	token, err := m.Resolve(ctx, explicit)
	if err != nil {
		return err
	}

	err = fn(token)
	if err == nil || !common.IsSessionExpired(err) {
		return err
	}

	if explicit != "" {
		return &common.UpstreamError{Endpoint: "session", Err: err}
	}

	m.logger.Info().Msg("Session expired, refreshing and retrying once")
	if err := m.Invalidate(ctx); err != nil {
		return err
	}
	token, err = m.Resolve(ctx, "")
	if err != nil {
		return err
	}

	if err := fn(token); err != nil {
		if common.IsSessionExpired(err) {
			return &common.UpstreamError{Endpoint: "session", Err: err}
		}
		return err
	}
	return nil
}

var _ interfaces.SessionService = (*Manager)(nil)
