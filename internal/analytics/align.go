package analytics

import (
	"strings"
	"time"

	"github.com/yourorg/backtest-analytics/internal/model"
)

// NormalizeAction maps an action string to BUY or SELL, case-insensitively.
// Anything unrecognized falls back to SELL; rendering an odd ledger entry as
// an exit marker beats dropping it from the chart.
func NormalizeAction(action string) string {
	if strings.EqualFold(strings.TrimSpace(action), model.ActionBuy) {
		return model.ActionBuy
	}
	return model.ActionSell
}

// AlignMarkers rewrites trade marker dates onto the resampled bucket
// timeline. Bars must already be resampled to the given timeframe. A marker
// whose bucket has no bar (the trade falls outside the displayed range)
// keeps its original date.
func AlignMarkers(bars []model.Bar, tf model.Timeframe, markers []model.TradeMarker) []model.TradeMarker {
	bucketTimes := make(map[int64]time.Time, len(bars))
	for _, b := range bars {
		key := bucketStart(b.Timestamp(), tf).Unix()
		if _, ok := bucketTimes[key]; !ok {
			bucketTimes[key] = b.Timestamp()
		}
	}

	out := make([]model.TradeMarker, 0, len(markers))
	for _, m := range markers {
		aligned := m
		aligned.Action = NormalizeAction(m.Action)
		key := bucketStart(m.Date.Time, tf).Unix()
		if ts, ok := bucketTimes[key]; ok {
			aligned.Date = model.DateOf(ts)
		}
		out = append(out, aligned)
	}
	return out
}
