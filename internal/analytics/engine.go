package analytics

import (
	"github.com/yourorg/backtest-analytics/internal/model"
)

// Analyze derives the full statistics set from an equity curve and trade
// ledger. It is pure and deterministic: same inputs, same result. Invalid or
// sparse inputs degrade to empty series and zero-valued stats; nothing here
// returns an error.
func Analyze(curve []model.EquityPoint, trades []model.Trade, window, bins int) *model.AnalyticsResult {
	return &model.AnalyticsResult{
		MonthlyReturns:     MonthlyReturns(curve),
		DrawdownSeries:     DrawdownSeries(curve),
		RollingMetrics:     RollingMetrics(curve, window),
		ReturnDistribution: Distribution(curve, bins),
		TradeAnalytics:     TradeAnalyticsFor(trades),
	}
}

// StartEquity returns the projection seed: the last equity value of the
// curve, or 0 for an empty curve.
func StartEquity(curve []model.EquityPoint) float64 {
	if len(curve) == 0 {
		return 0
	}
	return curve[len(curve)-1].Equity
}

// ReturnsPct converts the curve's daily return series to percent, the form
// the Monte Carlo projector consumes.
func ReturnsPct(curve []model.EquityPoint) []float64 {
	returns := DailyReturns(curve)
	out := make([]float64, len(returns))
	for i, r := range returns {
		out[i] = r * 100
	}
	return out
}
