package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/yourorg/backtest-analytics/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func equityPoint(date string, equity float64) model.EquityPoint {
	ts, _ := time.Parse("2006-01-02", date)
	return model.EquityPoint{
		Date:   model.DateOf(ts),
		Equity: equity,
		Close:  equity,
	}
}

func TestMonthlyReturns(t *testing.T) {
	curve := []model.EquityPoint{
		equityPoint("2025-01-01", 100000),
		equityPoint("2025-01-02", 101000),
		equityPoint("2025-01-03", 99000),
		equityPoint("2025-02-03", 99000),
		equityPoint("2025-02-28", 103950),
	}

	monthly := MonthlyReturns(curve)
	require.Len(t, monthly, 2)

	assert.Equal(t, 2025, monthly[0].Year)
	assert.Equal(t, 1, monthly[0].Month)
	assert.InDelta(t, -1.0, monthly[0].ReturnPct, 1e-9)

	assert.Equal(t, 2, monthly[1].Month)
	assert.InDelta(t, 5.0, monthly[1].ReturnPct, 1e-9)
}

func TestMonthlyReturns_ZeroFirstEquity(t *testing.T) {
	curve := []model.EquityPoint{
		equityPoint("2025-01-01", 0),
		equityPoint("2025-01-31", 5000),
	}
	monthly := MonthlyReturns(curve)
	require.Len(t, monthly, 1)
	assert.Equal(t, 0.0, monthly[0].ReturnPct)
}

func TestMonthlyReturns_SortedAcrossYears(t *testing.T) {
	curve := []model.EquityPoint{
		equityPoint("2024-12-30", 100),
		equityPoint("2025-01-02", 110),
		equityPoint("2025-02-03", 120),
	}
	monthly := MonthlyReturns(curve)
	require.Len(t, monthly, 3)
	assert.Equal(t, 2024, monthly[0].Year)
	assert.Equal(t, 12, monthly[0].Month)
	assert.Equal(t, 2025, monthly[1].Year)
	assert.Equal(t, 1, monthly[1].Month)
}

func TestDrawdownSeries_Invariants(t *testing.T) {
	curve := []model.EquityPoint{
		equityPoint("2025-01-01", 100),
		equityPoint("2025-01-02", 120),
		equityPoint("2025-01-03", 90),
		equityPoint("2025-01-06", 110),
		equityPoint("2025-01-07", 130),
	}

	series := DrawdownSeries(curve)
	require.Len(t, series, len(curve))

	for i, dd := range series {
		assert.LessOrEqual(t, dd.DrawdownPct, 0.0)
		if i > 0 {
			assert.GreaterOrEqual(t, dd.Peak, series[i-1].Peak)
		}
	}

	assert.InDelta(t, 0.0, series[0].DrawdownPct, 1e-9)
	assert.InDelta(t, -25.0, series[2].DrawdownPct, 1e-9) // 90 from peak 120
	assert.Equal(t, 120.0, series[2].Peak)
	assert.InDelta(t, 0.0, series[4].DrawdownPct, 1e-9) // new peak at 130
}

func TestDrawdownSeries_ZeroEquityStart(t *testing.T) {
	series := DrawdownSeries([]model.EquityPoint{
		equityPoint("2025-01-01", 0),
		equityPoint("2025-01-02", 100),
	})
	require.Len(t, series, 2)
	assert.Equal(t, 0.0, series[0].DrawdownPct)
	assert.Equal(t, 0.0, series[1].DrawdownPct)
}

func TestDailyReturns_SkipsDegenerateTransitions(t *testing.T) {
	curve := []model.EquityPoint{
		equityPoint("2025-01-01", 100),
		equityPoint("2025-01-02", 110),
		equityPoint("2025-01-03", 0),
		equityPoint("2025-01-06", 50), // prior equity 0, skipped
		equityPoint("2025-01-07", 55),
	}

	returns := DailyReturns(curve)
	require.Len(t, returns, 3)
	assert.InDelta(t, 0.1, returns[0], 1e-9)
	assert.InDelta(t, -1.0, returns[1], 1e-9)
	assert.InDelta(t, 0.1, returns[2], 1e-9)
}

func TestRollingMetrics_BelowWindowEmitsNothing(t *testing.T) {
	curve := []model.EquityPoint{
		equityPoint("2025-01-01", 100),
		equityPoint("2025-01-02", 101),
	}
	assert.Empty(t, RollingMetrics(curve, 60))
	assert.Empty(t, RollingMetrics([]model.EquityPoint{equityPoint("2025-01-01", 100)}, 60))
	assert.Empty(t, RollingMetrics(nil, 60))
}

func TestRollingMetrics_WindowValues(t *testing.T) {
	// Alternating +/-10%: window mean ~0 so sharpe ~0, vol is exact.
	curve := []model.EquityPoint{
		equityPoint("2025-01-01", 100),
		equityPoint("2025-01-02", 110),
		equityPoint("2025-01-03", 99),
		equityPoint("2025-01-06", 108.9),
	}

	metrics := RollingMetrics(curve, 2)
	require.Len(t, metrics, 2)

	assert.Equal(t, "2025-01-03", metrics[0].Date.String())
	assert.InDelta(t, 0.0, metrics[0].RollingSharpe, 1e-6)
	assert.InDelta(t, 0.1*math.Sqrt(252)*100, metrics[0].RollingVolatility, 1e-6)
	assert.InDelta(t, -1.0, metrics[0].RollingReturn, 1e-9) // 99 vs 100

	assert.Equal(t, "2025-01-06", metrics[1].Date.String())
	assert.InDelta(t, -1.0, metrics[1].RollingReturn, 1e-9) // 108.9 vs 110
}

func TestRollingMetrics_ZeroVolReportsZeroSharpe(t *testing.T) {
	curve := []model.EquityPoint{
		equityPoint("2025-01-01", 100),
		equityPoint("2025-01-02", 100),
		equityPoint("2025-01-03", 100),
	}
	metrics := RollingMetrics(curve, 2)
	require.Len(t, metrics, 1)
	assert.Equal(t, 0.0, metrics[0].RollingSharpe)
	assert.Equal(t, 0.0, metrics[0].RollingVolatility)
}
