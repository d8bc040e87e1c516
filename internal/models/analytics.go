package models

// PeriodComparison compares one metric between the current calendar period
// and the previous equivalent period.
type PeriodComparison struct {
	Period    string  `json:"period"` // day, week, month, year
	Current   float64 `json:"current"`
	Previous  float64 `json:"previous"`
	ChangePct float64 `json:"change_pct"`
}

// GainComparisons holds period-over-period gain figures for an account.
type GainComparisons struct {
	AccountID string             `json:"account_id"`
	Periods   []PeriodComparison `json:"periods"`
}

// DailyComparison compares profit and pips totals derived from the daily
// data series between two periods.
type DailyComparison struct {
	Period          string  `json:"period"`
	CurrentProfit   float64 `json:"current_profit"`
	PreviousProfit  float64 `json:"previous_profit"`
	ProfitChangePct float64 `json:"profit_change_pct"`
	CurrentPips     float64 `json:"current_pips"`
	PreviousPips    float64 `json:"previous_pips"`
	PipsChangePct   float64 `json:"pips_change_pct"`
}

// DailyDataComparisons holds period-over-period daily-data figures.
type DailyDataComparisons struct {
	AccountID string            `json:"account_id"`
	Periods   []DailyComparison `json:"periods"`
}

// AllComparisons combines gain and daily-data comparisons in one result.
type AllComparisons struct {
	AccountID string                `json:"account_id"`
	Gain      *GainComparisons      `json:"gain"`
	Daily     *DailyDataComparisons `json:"daily"`
}

// TradeDurationStats reports the average duration of valid trades. Total
// counts every history record; Valid counts only trades whose open and close
// times parsed and where close >= open. The average is over valid trades
// only.
type TradeDurationStats struct {
	AccountID      string  `json:"account_id"`
	AverageSeconds float64 `json:"average_seconds"`
	Average        string  `json:"average"`
	ValidTrades    int     `json:"valid_trades"`
	TotalTrades    int     `json:"total_trades"`
}

// BalanceProfitability summarises an account's balance development over a
// date range. Daily carries the cumulative equity curve (running profit
// sums), not the raw per-day deltas.
type BalanceProfitability struct {
	AccountID        string        `json:"account_id"`
	StartDate        string        `json:"start_date"`
	EndDate          string        `json:"end_date"`
	StartBalance     float64       `json:"start_balance"`
	EndBalance       float64       `json:"end_balance"`
	NetProfit        float64       `json:"net_profit"`
	ProfitabilityPct float64       `json:"profitability_pct"`
	MaxDrawdownPct   float64       `json:"max_drawdown_pct"`
	Daily            []DailyRecord `json:"daily"`
}

// PerformanceSummary combines balance profitability and trade duration,
// computed as two independent concurrent sub-calls.
type PerformanceSummary struct {
	AccountID     string                `json:"account_id"`
	Profitability *BalanceProfitability `json:"profitability"`
	TradeDuration *TradeDurationStats   `json:"trade_duration"`
}
