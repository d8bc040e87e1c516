package analytics

import (
	"testing"

	"github.com/fxlens/fxlens/internal/models"
)

func TestCumulativeProfit(t *testing.T) {
	in := []models.DailyRecord{
		{Date: "2024-01-01", Profit: 10},
		{Date: "2024-01-02", Profit: 5},
		{Date: "2024-01-03", Profit: -3},
		{Date: "2024-01-04", Profit: 8},
	}

	out := CumulativeProfit(in)

	want := []float64{10, 15, 12, 20}
	for i, w := range want {
		if out[i].Profit != w {
			t.Errorf("out[%d].Profit = %v, want %v", i, out[i].Profit, w)
		}
	}
}

func TestCumulativeProfitDoesNotMutateInput(t *testing.T) {
	in := []models.DailyRecord{{Profit: 10}, {Profit: 5}}

	_ = CumulativeProfit(in)

	if in[1].Profit != 5 {
		t.Errorf("input mutated: in[1].Profit = %v, want 5", in[1].Profit)
	}
}

func TestCumulativeProfitEmpty(t *testing.T) {
	if out := CumulativeProfit(nil); out != nil {
		t.Errorf("CumulativeProfit(nil) = %v, want nil", out)
	}

	out := CumulativeProfit([]models.DailyRecord{})
	if len(out) != 0 {
		t.Errorf("got %d records for empty input, want 0", len(out))
	}
}

func TestSumProfitAndPips(t *testing.T) {
	in := []models.DailyRecord{
		{Profit: 10, Pips: 3},
		{Profit: -4, Pips: -1},
	}
	if got := SumProfit(in); got != 6 {
		t.Errorf("SumProfit = %v, want 6", got)
	}
	if got := SumPips(in); got != 2 {
		t.Errorf("SumPips = %v, want 2", got)
	}
}

func TestPercentChange(t *testing.T) {
	cases := []struct {
		name               string
		current, previous  float64
		want               float64
	}{
		{"growth", 150, 100, 50},
		{"decline", 50, 100, -50},
		{"zero previous", 100, 0, 0},
		{"negative previous", 50, -100, 150},
	}

	for _, tc := range cases {
		if got := PercentChange(tc.current, tc.previous); got != tc.want {
			t.Errorf("%s: PercentChange(%v, %v) = %v, want %v",
				tc.name, tc.current, tc.previous, got, tc.want)
		}
	}
}
