// Package analytics derives every reporting statistic from a raw backtest
// result: display-timeframe bar series, monthly returns, drawdowns, rolling
// risk metrics, return distribution, round-trip trade analytics and
// bootstrapped Monte Carlo projections. Everything here is a pure function of
// its inputs; malformed or sparse data degrades to empty or zero-valued
// output instead of returning errors.
package analytics

import (
	"sort"
	"time"

	"github.com/yourorg/backtest-analytics/internal/model"
)

// bucketStart maps a bar timestamp to the start of its display bucket:
// the UTC Monday of the calendar week for weekly, the first of the month for
// monthly, the calendar day otherwise.
func bucketStart(t time.Time, tf model.Timeframe) time.Time {
	t = t.UTC()
	switch tf {
	case model.TimeframeWeekly:
		daysPastMonday := (int(t.Weekday()) + 6) % 7
		y, m, d := t.AddDate(0, 0, -daysPastMonday).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case model.TimeframeMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
}

// Resample re-buckets a daily bar series into the given display timeframe.
// Daily is the identity transform. Within a bucket: open from the first bar,
// close from the last, high/low are the extremes, volume is summed, and the
// bucket keeps the first bar's time. The result is sorted ascending by time.
func Resample(bars []model.Bar, tf model.Timeframe) []model.Bar {
	out := make([]model.Bar, 0, len(bars))
	if tf == model.TimeframeDaily || tf == "" {
		return append(out, bars...)
	}

	buckets := make(map[int64]*model.Bar)
	for _, b := range bars {
		key := bucketStart(b.Timestamp(), tf).Unix()
		agg, ok := buckets[key]
		if !ok {
			bar := b
			buckets[key] = &bar
			continue
		}
		if b.High > agg.High {
			agg.High = b.High
		}
		if b.Low < agg.Low {
			agg.Low = b.Low
		}
		agg.Close = b.Close
		agg.Volume += b.Volume
	}

	for _, agg := range buckets {
		out = append(out, *agg)
	}
	// Map iteration order is not stable.
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}
