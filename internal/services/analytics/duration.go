package analytics

import (
	"time"

	"github.com/fxlens/fxlens/internal/models"
)

// TradeTimeFormat is the upstream's trade timestamp layout (MM/DD/YYYY HH:mm).
const TradeTimeFormat = "01/02/2006 15:04"

// AverageTradeDuration computes the mean duration of valid trades. A trade is
// valid only when both timestamps parse and close >= open. Invalid trades are
// excluded from the average but still counted in total, so valid and total
// are intentionally different quantities.
func AverageTradeDuration(trades []*models.Trade) (avg time.Duration, valid, total int) {
	total = len(trades)

	var sum time.Duration
	for _, t := range trades {
		open, err := time.Parse(TradeTimeFormat, t.OpenTime)
		if err != nil {
			continue
		}
		closed, err := time.Parse(TradeTimeFormat, t.CloseTime)
		if err != nil {
			continue
		}
		if closed.Before(open) {
			continue
		}
		sum += closed.Sub(open)
		valid++
	}

	if valid == 0 {
		return 0, 0, total
	}
	return sum / time.Duration(valid), valid, total
}
