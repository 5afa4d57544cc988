package analytics

import (
	"math"
	"sort"

	"github.com/yourorg/backtest-analytics/internal/model"
)

// TradingDaysPerYear is the annualization factor for daily return series.
const TradingDaysPerYear = 252

// DefaultRollingWindow is the rolling risk-metric window in trading sessions.
const DefaultRollingWindow = 60

// MonthlyReturns groups the equity curve by calendar month and returns the
// percentage change from each month's first to last equity value, sorted
// chronologically. A month opening at zero equity reports a zero return.
func MonthlyReturns(curve []model.EquityPoint) []model.MonthlyReturn {
	type span struct {
		first float64
		last  float64
	}
	months := make(map[int]*span)
	for _, p := range curve {
		key := p.Date.Year()*100 + int(p.Date.Month())
		s, ok := months[key]
		if !ok {
			months[key] = &span{first: p.Equity, last: p.Equity}
			continue
		}
		s.last = p.Equity
	}

	out := make([]model.MonthlyReturn, 0, len(months))
	for key, s := range months {
		ret := 0.0
		if s.first != 0 {
			ret = (s.last - s.first) / s.first * 100
		}
		out = append(out, model.MonthlyReturn{
			Year:      key / 100,
			Month:     key % 100,
			ReturnPct: ret,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// DrawdownSeries computes, in one left-to-right pass, the percentage decline
// of each equity point from its running peak. DrawdownPct is always <= 0 and
// the peak never decreases.
func DrawdownSeries(curve []model.EquityPoint) []model.DrawdownPoint {
	out := make([]model.DrawdownPoint, 0, len(curve))
	peak := 0.0
	for _, p := range curve {
		if p.Equity > peak {
			peak = p.Equity
		}
		dd := 0.0
		if peak > 0 {
			dd = (p.Equity - peak) / peak * 100
		}
		out = append(out, model.DrawdownPoint{
			Date:        p.Date,
			Equity:      p.Equity,
			Peak:        peak,
			DrawdownPct: dd,
		})
	}
	return out
}

// DailyReturns derives the simple-return series of the equity curve.
// Transitions from zero equity or through non-finite values are skipped, so
// the result can be shorter than len(curve)-1.
func DailyReturns(curve []model.EquityPoint) []float64 {
	out := make([]float64, 0, len(curve))
	for i := 1; i < len(curve); i++ {
		prev, cur := curve[i-1].Equity, curve[i].Equity
		if prev == 0 || !isFinite(prev) || !isFinite(cur) {
			continue
		}
		out = append(out, (cur-prev)/prev)
	}
	return out
}

// RollingMetrics computes annualized Sharpe, volatility and window return
// over a fixed window of daily returns. No rows are emitted until the series
// has at least window returns.
func RollingMetrics(curve []model.EquityPoint, window int) []model.RollingMetric {
	if window <= 1 {
		window = DefaultRollingWindow
	}
	// Each return is tagged with the equity index it transitions into, so the
	// window return stays aligned even when degenerate returns were skipped.
	returns := make([]float64, 0, len(curve))
	endIdx := make([]int, 0, len(curve))
	for i := 1; i < len(curve); i++ {
		prev, cur := curve[i-1].Equity, curve[i].Equity
		if prev == 0 || !isFinite(prev) || !isFinite(cur) {
			continue
		}
		returns = append(returns, (cur-prev)/prev)
		endIdx = append(endIdx, i)
	}
	if len(returns) < window {
		return []model.RollingMetric{}
	}

	out := make([]model.RollingMetric, 0, len(returns)-window+1)
	for i := window - 1; i < len(returns); i++ {
		mean, std := meanStd(returns[i-window+1 : i+1])
		annMean := mean * TradingDaysPerYear
		annVol := std * math.Sqrt(TradingDaysPerYear)

		sharpe := 0.0
		if annVol != 0 {
			sharpe = annMean / annVol
		}

		end := endIdx[i]
		windowRet := 0.0
		if start := end - window; start >= 0 && curve[start].Equity != 0 {
			windowRet = (curve[end].Equity - curve[start].Equity) / curve[start].Equity * 100
		}

		out = append(out, model.RollingMetric{
			Date:              curve[end].Date,
			RollingSharpe:     sharpe,
			RollingVolatility: annVol * 100,
			RollingReturn:     windowRet,
		})
	}
	return out
}

// meanStd returns the mean and population standard deviation of xs.
func meanStd(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	variance := 0.0
	for _, x := range xs {
		d := x - mean
		variance += d * d
	}
	variance /= float64(len(xs))
	return mean, math.Sqrt(variance)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
