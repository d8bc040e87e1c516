package account

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fxlens/fxlens/internal/common"
	"github.com/fxlens/fxlens/internal/interfaces"
	"github.com/fxlens/fxlens/internal/models"
	"github.com/fxlens/fxlens/internal/services/analytics"
	"github.com/fxlens/fxlens/internal/storage"
)

const dateFormat = "2006-01-02"

// Service implements AccountService
type Service struct {
	store    interfaces.CacheStore
	provider interfaces.ProviderClient
	sessions interfaces.SessionService
	resolver *Resolver
	cfg      common.AccountsConfig
	ttl      time.Duration
	logger   *common.Logger
	now      func() time.Time
}

// NewService creates a new account aggregation service
func NewService(
	store interfaces.CacheStore,
	provider interfaces.ProviderClient,
	sessions interfaces.SessionService,
	cfg common.AccountsConfig,
	ttl time.Duration,
	logger *common.Logger,
) *Service {
	return &Service{
		store:    store,
		provider: provider,
		sessions: sessions,
		resolver: NewResolver(cfg.IDs, logger),
		cfg:      cfg,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// requireAccountID validates the account selector before any upstream call.
func requireAccountID(accountID string) error {
	if strings.TrimSpace(accountID) == "" {
		return &common.ValidationError{Field: "accountId", Reason: "must not be empty"}
	}
	return nil
}

// requireDateRange validates YYYY-MM-DD bounds before any upstream call.
func requireDateRange(start, end string) error {
	if start == "" || end == "" {
		return &common.ValidationError{Field: "date range", Reason: "start and end are required"}
	}
	from, err := time.Parse(dateFormat, start)
	if err != nil {
		return &common.ValidationError{Field: "start", Reason: "must be YYYY-MM-DD"}
	}
	to, err := time.Parse(dateFormat, end)
	if err != nil {
		return &common.ValidationError{Field: "end", Reason: "must be YYYY-MM-DD"}
	}
	if to.Before(from) {
		return &common.ValidationError{Field: "date range", Reason: "end is before start"}
	}
	return nil
}

// wrapUpstream classifies an operation-body failure per the error taxonomy:
// validation and authentication failures pass through, already-wrapped
// upstream errors pass through, anything else is wrapped with the endpoint.
func wrapUpstream(endpoint string, err error) error {
	if err == nil {
		return nil
	}
	var ue *common.UpstreamError
	if common.IsValidation(err) || common.IsAuthentication(err) || errors.As(err, &ue) {
		return err
	}
	return &common.UpstreamError{Endpoint: endpoint, Err: err}
}

// GetAccounts lists the configured accounts with the synthetic default entry
// appended, display-name overrides applied and priority ordering enforced.
func (s *Service) GetAccounts(ctx context.Context) ([]*models.Account, error) {
	key := storage.CacheKey("accounts")
	return fetchCached(ctx, s, key, func() ([]*models.Account, error) {
		var upstream []*models.Account
		err := s.sessions.WithSession(ctx, "", func(token string) error {
			var callErr error
			upstream, callErr = s.provider.GetMyAccounts(ctx, token)
			return callErr
		})
		if err != nil {
			return nil, wrapUpstream("get-my-accounts", err)
		}
		return s.buildAccountList(upstream), nil
	})
}

// buildAccountList filters the upstream listing to the configured id set,
// applies the low-risk display-name override, appends the synthetic default
// aggregate, and sorts by the fixed priority table.
func (s *Service) buildAccountList(upstream []*models.Account) []*models.Account {
	lowRisk := make(map[string]bool, len(s.cfg.LowRiskIDs))
	for _, id := range s.cfg.LowRiskIDs {
		lowRisk[id] = true
	}

	accounts := make([]*models.Account, 0, len(upstream)+1)
	aggregate := &models.Account{
		ID:   models.DefaultAccountID,
		Name: s.cfg.DefaultName,
	}
	for _, a := range upstream {
		if !s.resolver.Contains(a.ID) {
			continue
		}
		entry := *a
		if lowRisk[entry.ID] {
			entry.Name = s.cfg.LowRiskName
		}
		accounts = append(accounts, &entry)

		aggregate.Balance += entry.Balance
		aggregate.Profit += entry.Profit
		aggregate.Monthly += entry.Monthly
		if entry.Drawdown > aggregate.Drawdown {
			aggregate.Drawdown = entry.Drawdown
		}
	}
	accounts = append(accounts, aggregate)

	sort.SliceStable(accounts, func(i, j int) bool {
		return accountRank(accounts[i]) < accountRank(accounts[j])
	})
	return accounts
}

// accountRank orders the listing: low-risk, medium-risk, high-risk, the
// default aggregate, then everything else.
func accountRank(a *models.Account) int {
	if strings.EqualFold(a.ID, models.DefaultAccountID) {
		return 3
	}
	name := strings.ToLower(a.Name)
	switch {
	case strings.Contains(name, "low risk"):
		return 0
	case strings.Contains(name, "medium risk"):
		return 1
	case strings.Contains(name, "high risk"):
		return 2
	}
	return 4
}

// GetAggregatedTotals combines balance, profit, monthly and drawdown figures
// for one account or the default aggregate.
func (s *Service) GetAggregatedTotals(ctx context.Context, accountID string) (*models.AggregatedTotals, error) {
	if err := requireAccountID(accountID); err != nil {
		return nil, err
	}

	key := storage.CacheKey("totals", accountID)
	return fetchCached(ctx, s, key, func() (*models.AggregatedTotals, error) {
		var upstream []*models.Account
		err := s.sessions.WithSession(ctx, "", func(token string) error {
			var callErr error
			upstream, callErr = s.provider.GetMyAccounts(ctx, token)
			return callErr
		})
		if err != nil {
			return nil, wrapUpstream("get-my-accounts", err)
		}

		totals := &models.AggregatedTotals{AccountID: accountID}
		if s.resolver.IsDefault(accountID) {
			for _, a := range upstream {
				if !s.resolver.Contains(a.ID) {
					continue
				}
				totals.Accounts++
				totals.Balance += a.Balance
				totals.Profit += a.Profit
				totals.Monthly += a.Monthly
				if a.Drawdown > totals.Drawdown {
					totals.Drawdown = a.Drawdown
				}
			}
			return totals, nil
		}

		for _, a := range upstream {
			if a.ID == accountID {
				totals.Accounts = 1
				totals.Balance = a.Balance
				totals.Profit = a.Profit
				totals.Monthly = a.Monthly
				totals.Drawdown = a.Drawdown
				return totals, nil
			}
		}
		return nil, &common.UpstreamError{
			Endpoint: "get-my-accounts",
			Err:      fmt.Errorf("account %s not found", accountID),
		}
	})
}

// fetchHistory retrieves trades for one account or the concatenation of the
// configured set. Requires a resolved session token.
func (s *Service) fetchHistory(ctx context.Context, token, accountID string) ([]*models.Trade, error) {
	if !s.resolver.IsDefault(accountID) {
		return s.provider.GetAccountHistory(ctx, token, accountID)
	}

	perAccount, err := fanOut(ctx, s.resolver, "history", func(ctx context.Context, id string) ([]*models.Trade, error) {
		return s.provider.GetAccountHistory(ctx, token, id)
	})
	if err != nil {
		return nil, err
	}

	var merged []*models.Trade
	for _, trades := range perAccount {
		merged = append(merged, trades...)
	}
	return merged, nil
}

// GetHistory retrieves closed trades for an account or the default aggregate.
func (s *Service) GetHistory(ctx context.Context, accountID string) ([]*models.Trade, error) {
	if err := requireAccountID(accountID); err != nil {
		return nil, err
	}

	key := storage.CacheKey("history", accountID)
	return fetchCached(ctx, s, key, func() ([]*models.Trade, error) {
		var trades []*models.Trade
		err := s.sessions.WithSession(ctx, "", func(token string) error {
			var callErr error
			trades, callErr = s.fetchHistory(ctx, token, accountID)
			return callErr
		})
		if err != nil {
			return nil, wrapUpstream("get-history", err)
		}
		if trades == nil {
			trades = []*models.Trade{}
		}
		return trades, nil
	})
}

// GetAverageTradeDuration computes average trade duration statistics from the
// account history.
func (s *Service) GetAverageTradeDuration(ctx context.Context, accountID string) (*models.TradeDurationStats, error) {
	if err := requireAccountID(accountID); err != nil {
		return nil, err
	}

	key := storage.CacheKey("trade-duration", accountID)
	return fetchCached(ctx, s, key, func() (*models.TradeDurationStats, error) {
		var trades []*models.Trade
		err := s.sessions.WithSession(ctx, "", func(token string) error {
			var callErr error
			trades, callErr = s.fetchHistory(ctx, token, accountID)
			return callErr
		})
		if err != nil {
			return nil, wrapUpstream("get-history", err)
		}

		avg, valid, total := analytics.AverageTradeDuration(trades)
		return &models.TradeDurationStats{
			AccountID:      accountID,
			AverageSeconds: avg.Seconds(),
			Average:        avg.String(),
			ValidTrades:    valid,
			TotalTrades:    total,
		}, nil
	})
}

// fetchDailyRaw retrieves the raw per-day deltas for one account or the
// concatenation of the configured set. For the default aggregate the
// per-account series are concatenated as-is, not aligned by date; the
// cumulative transform is applied afterwards over the merged sequence.
func (s *Service) fetchDailyRaw(ctx context.Context, token, accountID, start, end string) ([]models.DailyRecord, error) {
	toValues := func(records []*models.DailyRecord) []models.DailyRecord {
		out := make([]models.DailyRecord, len(records))
		for i, r := range records {
			out[i] = *r
		}
		return out
	}

	if !s.resolver.IsDefault(accountID) {
		records, err := s.provider.GetDataDaily(ctx, token, accountID, start, end)
		if err != nil {
			return nil, err
		}
		return toValues(records), nil
	}

	perAccount, err := fanOut(ctx, s.resolver, "daily", func(ctx context.Context, id string) ([]models.DailyRecord, error) {
		records, err := s.provider.GetDataDaily(ctx, token, id, start, end)
		if err != nil {
			return nil, err
		}
		return toValues(records), nil
	})
	if err != nil {
		return nil, err
	}

	var merged []models.DailyRecord
	for _, records := range perAccount {
		merged = append(merged, records...)
	}
	return merged, nil
}

// GetDailyData retrieves the daily series over a date range with the
// cumulative-profit transform applied, turning per-day deltas into an equity
// curve.
func (s *Service) GetDailyData(ctx context.Context, accountID, start, end string) ([]models.DailyRecord, error) {
	if err := requireAccountID(accountID); err != nil {
		return nil, err
	}
	if err := requireDateRange(start, end); err != nil {
		return nil, err
	}

	key := storage.CacheKey("daily-data", accountID, start, end)
	return fetchCached(ctx, s, key, func() ([]models.DailyRecord, error) {
		var daily []models.DailyRecord
		err := s.sessions.WithSession(ctx, "", func(token string) error {
			var callErr error
			daily, callErr = s.fetchDailyRaw(ctx, token, accountID, start, end)
			return callErr
		})
		if err != nil {
			return nil, wrapUpstream("get-data-daily", err)
		}
		cumulative := analytics.CumulativeProfit(daily)
		if cumulative == nil {
			cumulative = []models.DailyRecord{}
		}
		return cumulative, nil
	})
}

// GetBalanceProfitability summarises balance development over a date range:
// start/end balances, net profit, profitability percentage and the first
// peak-to-trough drawdown, with the cumulative equity curve attached.
func (s *Service) GetBalanceProfitability(ctx context.Context, accountID, start, end string) (*models.BalanceProfitability, error) {
	if err := requireAccountID(accountID); err != nil {
		return nil, err
	}
	if err := requireDateRange(start, end); err != nil {
		return nil, err
	}

	key := storage.CacheKey("profitability", accountID, start, end)
	return fetchCached(ctx, s, key, func() (*models.BalanceProfitability, error) {
		var daily []models.DailyRecord
		err := s.sessions.WithSession(ctx, "", func(token string) error {
			var callErr error
			daily, callErr = s.fetchDailyRaw(ctx, token, accountID, start, end)
			return callErr
		})
		if err != nil {
			return nil, wrapUpstream("get-data-daily", err)
		}

		result := &models.BalanceProfitability{
			AccountID: accountID,
			StartDate: start,
			EndDate:   end,
			Daily:     analytics.CumulativeProfit(daily),
		}
		if result.Daily == nil {
			result.Daily = []models.DailyRecord{}
		}
		if len(daily) > 0 {
			result.StartBalance = daily[0].Balance
			result.EndBalance = daily[len(daily)-1].Balance
		}
		result.NetProfit = analytics.SumProfit(daily)
		if result.StartBalance != 0 {
			result.ProfitabilityPct = result.NetProfit / result.StartBalance * 100
		}
		result.MaxDrawdownPct = analytics.Drawdown(daily) * 100
		return result, nil
	})
}

// GetPerformanceSummary composes balance profitability and trade duration as
// two independent concurrent sub-calls.
func (s *Service) GetPerformanceSummary(ctx context.Context, accountID, start, end string) (*models.PerformanceSummary, error) {
	if err := requireAccountID(accountID); err != nil {
		return nil, err
	}
	if err := requireDateRange(start, end); err != nil {
		return nil, err
	}

	key := storage.CacheKey("performance", accountID, start, end)
	return fetchCached(ctx, s, key, func() (*models.PerformanceSummary, error) {
		summary := &models.PerformanceSummary{AccountID: accountID}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			profitability, err := s.GetBalanceProfitability(gctx, accountID, start, end)
			if err != nil {
				return err
			}
			summary.Profitability = profitability
			return nil
		})
		g.Go(func() error {
			duration, err := s.GetAverageTradeDuration(gctx, accountID)
			if err != nil {
				return err
			}
			summary.TradeDuration = duration
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return summary, nil
	})
}

// GetAllComparisons composes gain and daily-data comparisons as two
// independent concurrent sub-calls.
func (s *Service) GetAllComparisons(ctx context.Context, accountID string) (*models.AllComparisons, error) {
	if err := requireAccountID(accountID); err != nil {
		return nil, err
	}

	key := storage.CacheKey("all-comparisons", accountID)
	return fetchCached(ctx, s, key, func() (*models.AllComparisons, error) {
		all := &models.AllComparisons{AccountID: accountID}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			gain, err := s.GetGainComparisons(gctx, accountID)
			if err != nil {
				return err
			}
			all.Gain = gain
			return nil
		})
		g.Go(func() error {
			daily, err := s.GetDailyDataComparisons(gctx, accountID)
			if err != nil {
				return err
			}
			all.Daily = daily
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return all, nil
	})
}

// Login authenticates explicitly supplied credentials, or resolves the shared
// backend session when none are given. Explicit logins are never persisted.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if email != "" {
		token, err := s.provider.Login(ctx, email, password)
		if err != nil {
			return "", err
		}
		return token, nil
	}
	return s.sessions.Resolve(ctx, "")
}

// Logout invalidates a session upstream and locally.
func (s *Service) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return &common.ValidationError{Field: "session", Reason: "must not be empty"}
	}
	return s.sessions.Logout(ctx, token)
}

// Ensure Service implements AccountService
var _ interfaces.AccountService = (*Service)(nil)
