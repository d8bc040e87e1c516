package account

import (
	"context"
	"time"

	"github.com/fxlens/fxlens/internal/models"
	"github.com/fxlens/fxlens/internal/services/analytics"
	"github.com/fxlens/fxlens/internal/storage"
)

// gainForWindow fetches the gain percentage for one account or, for the
// default aggregate, the sum of gains across the configured set. Requires a
// resolved session token.
func (s *Service) gainForWindow(ctx context.Context, token, accountID string, start, end time.Time) (float64, error) {
	from := start.Format(dateFormat)
	to := end.Format(dateFormat)

	if !s.resolver.IsDefault(accountID) {
		return s.provider.GetGain(ctx, token, accountID, from, to)
	}

	perAccount, err := fanOut(ctx, s.resolver, "gain", func(ctx context.Context, id string) (float64, error) {
		return s.provider.GetGain(ctx, token, id, from, to)
	})
	if err != nil {
		return 0, err
	}

	var total float64
	for _, gain := range perAccount {
		total += gain
	}
	return total, nil
}

// dailySumsForWindow fetches the daily series for a window and reduces it to
// profit and pips totals.
func (s *Service) dailySumsForWindow(ctx context.Context, token, accountID string, start, end time.Time) (profit, pips float64, err error) {
	daily, err := s.fetchDailyRaw(ctx, token, accountID, start.Format(dateFormat), end.Format(dateFormat))
	if err != nil {
		return 0, 0, err
	}
	return analytics.SumProfit(daily), analytics.SumPips(daily), nil
}

// GetGainComparisons compares gain between the current and previous
// day/week/month/year windows. The current window runs from the calendar
// period start through today; the previous window is the full preceding
// calendar period.
func (s *Service) GetGainComparisons(ctx context.Context, accountID string) (*models.GainComparisons, error) {
	if err := requireAccountID(accountID); err != nil {
		return nil, err
	}

	key := storage.CacheKey("gain-comparisons", accountID)
	return fetchCached(ctx, s, key, func() (*models.GainComparisons, error) {
		result := &models.GainComparisons{
			AccountID: accountID,
			Periods:   make([]models.PeriodComparison, 0, len(analytics.Periods)),
		}

		today := s.now()
		err := s.sessions.WithSession(ctx, "", func(token string) error {
			result.Periods = result.Periods[:0]
			for _, period := range analytics.Periods {
				curStart, curEnd := analytics.PeriodWindow(period, today)
				prevStart, prevEnd := analytics.PreviousWindow(period, today)

				current, err := s.gainForWindow(ctx, token, accountID, curStart, curEnd)
				if err != nil {
					return err
				}
				previous, err := s.gainForWindow(ctx, token, accountID, prevStart, prevEnd)
				if err != nil {
					return err
				}

				result.Periods = append(result.Periods, models.PeriodComparison{
					Period:    string(period),
					Current:   current,
					Previous:  previous,
					ChangePct: analytics.PercentChange(current, previous),
				})
			}
			return nil
		})
		if err != nil {
			return nil, wrapUpstream("get-gain", err)
		}
		return result, nil
	})
}

// GetDailyDataComparisons compares profit and pips totals derived from the
// daily series between the current and previous day/week/month/year windows.
func (s *Service) GetDailyDataComparisons(ctx context.Context, accountID string) (*models.DailyDataComparisons, error) {
	if err := requireAccountID(accountID); err != nil {
		return nil, err
	}

	key := storage.CacheKey("daily-comparisons", accountID)
	return fetchCached(ctx, s, key, func() (*models.DailyDataComparisons, error) {
		result := &models.DailyDataComparisons{
			AccountID: accountID,
			Periods:   make([]models.DailyComparison, 0, len(analytics.Periods)),
		}

		today := s.now()
		err := s.sessions.WithSession(ctx, "", func(token string) error {
			result.Periods = result.Periods[:0]
			for _, period := range analytics.Periods {
				curStart, curEnd := analytics.PeriodWindow(period, today)
				prevStart, prevEnd := analytics.PreviousWindow(period, today)

				curProfit, curPips, err := s.dailySumsForWindow(ctx, token, accountID, curStart, curEnd)
				if err != nil {
					return err
				}
				prevProfit, prevPips, err := s.dailySumsForWindow(ctx, token, accountID, prevStart, prevEnd)
				if err != nil {
					return err
				}

				result.Periods = append(result.Periods, models.DailyComparison{
					Period:          string(period),
					CurrentProfit:   curProfit,
					PreviousProfit:  prevProfit,
					ProfitChangePct: analytics.PercentChange(curProfit, prevProfit),
					CurrentPips:     curPips,
					PreviousPips:    prevPips,
					PipsChangePct:   analytics.PercentChange(curPips, prevPips),
				})
			}
			return nil
		})
		if err != nil {
			return nil, wrapUpstream("get-data-daily", err)
		}
		return result, nil
	})
}
