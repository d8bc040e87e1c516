package models

// DailyRecord is one calendar day of account data. The upstream spells the
// profit and pips fields inconsistently across endpoints; normalization in the
// client collapses the variants before a DailyRecord is built, so the rest of
// the system sees a single shape.
type DailyRecord struct {
	Date    string  `json:"date"`
	Balance float64 `json:"balance"`
	Profit  float64 `json:"profit"`
	Pips    float64 `json:"pips"`
}

// Trade is one closed trade from the account history. Open and close times
// use the upstream's "MM/DD/YYYY HH:mm" format and may be missing or
// malformed; such trades are excluded from duration averaging but still
// counted in totals.
type Trade struct {
	OpenTime  string  `json:"open_time"`
	CloseTime string  `json:"close_time"`
	Symbol    string  `json:"symbol,omitempty"`
	Action    string  `json:"action,omitempty"`
	Lots      float64 `json:"lots,omitempty"`
	Profit    float64 `json:"profit,omitempty"`
	Pips      float64 `json:"pips,omitempty"`
}
