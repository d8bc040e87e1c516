// Package models defines the data types shared across FXLens services.
package models

import "time"

// DefaultAccountID is the reserved logical account selector that aggregates
// the configured account set.
const DefaultAccountID = "default"

// Account is a trading account as reported by the upstream provider.
// Only ID, Name, Balance, Profit and Monthly are relied upon; the remaining
// fields are passed through for display.
type Account struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Balance  float64 `json:"balance"`
	Profit   float64 `json:"profit"`
	Monthly  float64 `json:"monthly"`
	Drawdown float64 `json:"drawdown"`
	Gain     float64 `json:"gain,omitempty"`
	Equity   float64 `json:"equity,omitempty"`
	Currency string  `json:"currency,omitempty"`
	Demo     bool    `json:"demo,omitempty"`
}

// AggregatedTotals holds the combined figures for an account or for the
// synthetic default aggregate.
type AggregatedTotals struct {
	AccountID string  `json:"account_id"`
	Accounts  int     `json:"accounts"`
	Balance   float64 `json:"balance"`
	Profit    float64 `json:"profit"`
	Monthly   float64 `json:"monthly"`
	Drawdown  float64 `json:"drawdown"`
}

// Session is the single backend-managed upstream session. It is stored
// permanently in the cache store and replaced only when the upstream reports
// it invalid.
type Session struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}
