// Package interfaces defines service contracts for FXLens
package interfaces

import (
	"context"

	"github.com/fxlens/fxlens/internal/models"
)

// ProviderClient issues authenticated read-only calls against the upstream
// trading-account API. It accepts a session token on every call and knows
// nothing about caching or session lifecycle.
type ProviderClient interface {
	// Login authenticates with credentials and returns a session token
	Login(ctx context.Context, email, password string) (string, error)

	// Logout invalidates a session token upstream
	Logout(ctx context.Context, session string) error

	// GetMyAccounts retrieves all accounts visible to the session
	GetMyAccounts(ctx context.Context, session string) ([]*models.Account, error)

	// GetAccountHistory retrieves the closed-trade history for an account
	GetAccountHistory(ctx context.Context, session, accountID string) ([]*models.Trade, error)

	// GetDataDaily retrieves per-day records for an account over a date range
	GetDataDaily(ctx context.Context, session, accountID, start, end string) ([]*models.DailyRecord, error)

	// GetGain retrieves the gain percentage for an account over a date range
	GetGain(ctx context.Context, session, accountID, start, end string) (float64, error)
}
