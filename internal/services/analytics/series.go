package analytics

import (
	"math"

	"github.com/fxlens/fxlens/internal/models"
)

// CumulativeProfit returns a copy of the daily series where each record's
// profit is replaced by the running sum of all profits up to and including
// that day, turning per-day deltas into an equity curve. The input is not
// mutated.
func CumulativeProfit(daily []models.DailyRecord) []models.DailyRecord {
	if daily == nil {
		return nil
	}

	out := make([]models.DailyRecord, len(daily))
	copy(out, daily)

	running := 0.0
	for i := range out {
		running += daily[i].Profit
		out[i].Profit = running
	}
	return out
}

// SumProfit returns the total of per-day profit deltas in the series.
func SumProfit(daily []models.DailyRecord) float64 {
	total := 0.0
	for _, d := range daily {
		total += d.Profit
	}
	return total
}

// SumPips returns the total pips across the series.
func SumPips(daily []models.DailyRecord) float64 {
	total := 0.0
	for _, d := range daily {
		total += d.Pips
	}
	return total
}

// PercentChange returns the percentage difference of a metric between two
// periods. Defined as 0 when previous is 0 to avoid division by zero.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / math.Abs(previous) * 100
}
