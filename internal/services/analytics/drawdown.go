// Package analytics provides pure computations over account data series.
// Nothing in this package performs I/O.
package analytics

import "github.com/fxlens/fxlens/internal/models"

// Drawdown computes the peak-to-trough decline of the ordered daily balance
// sequence as a fraction of the peak. The trough is the running minimum after
// the global peak, frozen at the first point the balance rises again, so a
// series with multiple drawdown cycles reports only the first cycle after the
// peak. Returns 0 when the balance never drops below its peak.
func Drawdown(daily []models.DailyRecord) float64 {
	if len(daily) == 0 {
		return 0
	}

	peak := daily[0].Balance
	peakIdx := 0
	for i, d := range daily {
		if d.Balance > peak {
			peak = d.Balance
			peakIdx = i
		}
	}
	if peak <= 0 {
		return 0
	}

	trough := peak
	for i := peakIdx + 1; i < len(daily); i++ {
		bal := daily[i].Balance
		if bal < trough {
			trough = bal
			continue
		}
		// First rise after a drop: the trough is frozen here.
		if trough < peak && bal > trough {
			break
		}
	}

	if trough >= peak {
		return 0
	}
	return (peak - trough) / peak
}
