package account

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/fxlens/fxlens/internal/models"
)

// chartDateFormats lists the date layouts the daily records may carry. The
// upstream reports US-style dates; ISO is what our own range parameters use.
var chartDateFormats = []string{dateFormat, "01/02/2006"}

func parseChartDate(value string) (time.Time, bool) {
	for _, layout := range chartDateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// RenderEquityChart renders a PNG equity curve for an account over a date
// range. Two series: account balance (blue solid) and cumulative profit
// (gray dashed). Returns raw PNG bytes.
func (s *Service) RenderEquityChart(ctx context.Context, accountID, start, end string) ([]byte, error) {
	daily, err := s.GetDailyData(ctx, accountID, start, end)
	if err != nil {
		return nil, err
	}
	return renderEquityChart(accountID, daily)
}

func renderEquityChart(accountID string, daily []models.DailyRecord) ([]byte, error) {
	xValues := make([]time.Time, 0, len(daily))
	balanceY := make([]float64, 0, len(daily))
	profitY := make([]float64, 0, len(daily))

	for _, record := range daily {
		date, ok := parseChartDate(record.Date)
		if !ok {
			continue
		}
		xValues = append(xValues, date)
		balanceY = append(balanceY, record.Balance)
		profitY = append(profitY, record.Profit)
	}

	if len(xValues) < 2 {
		return nil, fmt.Errorf("need at least 2 plottable data points, got %d", len(xValues))
	}

	balanceSeries := chart.TimeSeries{
		Name: "Balance",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: balanceY,
	}

	profitSeries := chart.TimeSeries{
		Name: "Cumulative Profit",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xValues,
		YValues: profitY,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Equity Curve: %s", accountID),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 02")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			balanceSeries,
			profitSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
