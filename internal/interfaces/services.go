package interfaces

import (
	"context"

	"github.com/fxlens/fxlens/internal/models"
)

// SessionService owns the single backend-managed upstream session.
type SessionService interface {
	// Resolve returns a usable session token. An explicit non-empty token is
	// returned unchanged and never persisted. Otherwise the stored session is
	// reused without validation, or a fresh login is performed and stored.
	Resolve(ctx context.Context, explicit string) (string, error)

	// Invalidate deletes the stored session so the next Resolve logs in again.
	Invalidate(ctx context.Context) error

	// WithSession runs fn with a resolved token, refreshing the session and
	// retrying exactly once if fn reports session expiry.
	WithSession(ctx context.Context, explicit string, fn func(token string) error) error

	// Logout ends a session upstream and removes the local copy.
	Logout(ctx context.Context, token string) error
}

// AccountService is the public aggregation facade. Every read operation is
// cache-aside memoized and recovers from one session expiry per logical
// request. The account id "default" selects the configured aggregate set.
type AccountService interface {
	// GetAccounts lists accounts, appends the synthetic default entry and
	// applies display-name overrides and priority ordering.
	GetAccounts(ctx context.Context) ([]*models.Account, error)

	// GetAggregatedTotals combines balance, profit, monthly and drawdown
	// figures for an account or the default aggregate.
	GetAggregatedTotals(ctx context.Context, accountID string) (*models.AggregatedTotals, error)

	// GetHistory retrieves closed trades for an account or, for the default
	// aggregate, the concatenation of all configured accounts' trades.
	GetHistory(ctx context.Context, accountID string) ([]*models.Trade, error)

	// GetAverageTradeDuration computes average trade duration statistics.
	GetAverageTradeDuration(ctx context.Context, accountID string) (*models.TradeDurationStats, error)

	// GetBalanceProfitability summarises balance development over a range.
	GetBalanceProfitability(ctx context.Context, accountID, start, end string) (*models.BalanceProfitability, error)

	// GetDailyData retrieves the daily series with cumulative profit applied.
	GetDailyData(ctx context.Context, accountID, start, end string) ([]models.DailyRecord, error)

	// GetGainComparisons compares gain across day/week/month/year periods.
	GetGainComparisons(ctx context.Context, accountID string) (*models.GainComparisons, error)

	// GetDailyDataComparisons compares daily profit/pips totals across periods.
	GetDailyDataComparisons(ctx context.Context, accountID string) (*models.DailyDataComparisons, error)

	// GetPerformanceSummary composes profitability and trade duration
	// concurrently.
	GetPerformanceSummary(ctx context.Context, accountID, start, end string) (*models.PerformanceSummary, error)

	// GetAllComparisons composes gain and daily comparisons concurrently.
	GetAllComparisons(ctx context.Context, accountID string) (*models.AllComparisons, error)

	// RenderEquityChart renders a PNG equity curve for an account's range.
	RenderEquityChart(ctx context.Context, accountID, start, end string) ([]byte, error)

	// Login authenticates explicitly supplied credentials, or resolves the
	// shared backend session when none are given.
	Login(ctx context.Context, email, password string) (string, error)

	// Logout invalidates a session upstream and locally.
	Logout(ctx context.Context, token string) error
}
