package myfxbook

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fxlens/fxlens/internal/models"
)

// The upstream's response shapes vary by endpoint: numeric fields arrive as
// numbers or quoted strings, field names drift (profit/profite, pips/pip,
// gain/value), list payloads hide behind different keys, and daily records
// are sometimes wrapped in singleton arrays. All of that is absorbed here so
// the rest of the system only ever sees the models types.

// sessionExpiredMarkers are the message substrings the upstream uses when a
// session token is no longer valid.
var sessionExpiredMarkers = []string{
	"invalid session",
	"session expired",
	"unauthorized",
	"authentication failed",
}

func isSessionExpiredMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, marker := range sessionExpiredMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func asAPIError(err error, target **APIError) bool {
	return errors.As(err, target)
}

// flexFloat decodes a float that may arrive as a number, a quoted string, or
// null/empty.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("cannot parse %q as number: %w", s, err)
	}
	*f = flexFloat(v)
	return nil
}

// flexString decodes a string that may arrive as a bare number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	*f = flexString(strings.Trim(string(b), `"`))
	return nil
}

type rawAccount struct {
	ID       flexString `json:"id"`
	Name     string     `json:"name"`
	Balance  flexFloat  `json:"balance"`
	Profit   flexFloat  `json:"profit"`
	Monthly  flexFloat  `json:"monthly"`
	Drawdown flexFloat  `json:"drawdown"`
	Gain     flexFloat  `json:"gain"`
	Equity   flexFloat  `json:"equity"`
	Currency string     `json:"currency"`
	Demo     bool       `json:"demo"`
}

func normalizeAccounts(body []byte) ([]*models.Account, error) {
	var resp struct {
		Accounts []rawAccount `json:"accounts"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode accounts response: %w", err)
	}

	accounts := make([]*models.Account, len(resp.Accounts))
	for i, a := range resp.Accounts {
		accounts[i] = &models.Account{
			ID:       string(a.ID),
			Name:     a.Name,
			Balance:  float64(a.Balance),
			Profit:   float64(a.Profit),
			Monthly:  float64(a.Monthly),
			Drawdown: float64(a.Drawdown),
			Gain:     float64(a.Gain),
			Equity:   float64(a.Equity),
			Currency: a.Currency,
			Demo:     a.Demo,
		}
	}
	return accounts, nil
}

type rawTrade struct {
	OpenTime  string    `json:"openTime"`
	CloseTime string    `json:"closeTime"`
	Symbol    string    `json:"symbol"`
	Action    string    `json:"action"`
	Lots      flexFloat `json:"lots"`
	Profit    flexFloat `json:"profit"`
	Pips      flexFloat `json:"pips"`
}

// historyKeys are probed in order; the history payload has been observed
// under all three.
var historyKeys = []string{"history", "data", "trades"}

func normalizeHistory(body []byte) ([]*models.Trade, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode history response: %w", err)
	}

	for _, key := range historyKeys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var items []rawTrade
		if err := json.Unmarshal(raw, &items); err != nil {
			continue
		}
		trades := make([]*models.Trade, len(items))
		for i, t := range items {
			trades[i] = &models.Trade{
				OpenTime:  t.OpenTime,
				CloseTime: t.CloseTime,
				Symbol:    t.Symbol,
				Action:    t.Action,
				Lots:      float64(t.Lots),
				Profit:    float64(t.Profit),
				Pips:      float64(t.Pips),
			}
		}
		return trades, nil
	}

	// No recognised key: treat as an empty history rather than failing.
	return []*models.Trade{}, nil
}

type rawDaily struct {
	Date    string     `json:"date"`
	Balance flexFloat  `json:"balance"`
	Profit  *flexFloat `json:"profit"`
	Profite *flexFloat `json:"profite"`
	Pips    *flexFloat `json:"pips"`
	Pip     *flexFloat `json:"pip"`
}

func (d rawDaily) toModel() *models.DailyRecord {
	rec := &models.DailyRecord{
		Date:    d.Date,
		Balance: float64(d.Balance),
	}
	if d.Profit != nil {
		rec.Profit = float64(*d.Profit)
	} else if d.Profite != nil {
		rec.Profit = float64(*d.Profite)
	}
	if d.Pips != nil {
		rec.Pips = float64(*d.Pips)
	} else if d.Pip != nil {
		rec.Pips = float64(*d.Pip)
	}
	return rec
}

func normalizeDaily(body []byte) ([]*models.DailyRecord, error) {
	var resp struct {
		DataDaily json.RawMessage `json:"dataDaily"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode daily response: %w", err)
	}
	if len(resp.DataDaily) == 0 {
		return []*models.DailyRecord{}, nil
	}

	// Flat list first, then the singleton-array-wrapped variant.
	var flat []rawDaily
	if err := json.Unmarshal(resp.DataDaily, &flat); err == nil {
		records := make([]*models.DailyRecord, len(flat))
		for i, d := range flat {
			records[i] = d.toModel()
		}
		return records, nil
	}

	var nested [][]rawDaily
	if err := json.Unmarshal(resp.DataDaily, &nested); err != nil {
		return nil, fmt.Errorf("unrecognised dataDaily shape: %w", err)
	}
	records := make([]*models.DailyRecord, 0, len(nested))
	for _, group := range nested {
		for _, d := range group {
			records = append(records, d.toModel())
		}
	}
	return records, nil
}

func normalizeGain(body []byte) (float64, error) {
	var resp struct {
		Gain  *flexFloat `json:"gain"`
		Value *flexFloat `json:"value"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("failed to decode gain response: %w", err)
	}
	if resp.Gain != nil {
		return float64(*resp.Gain), nil
	}
	if resp.Value != nil {
		return float64(*resp.Value), nil
	}
	return 0, nil
}
