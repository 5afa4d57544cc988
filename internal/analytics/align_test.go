package analytics

import (
	"testing"
	"time"

	"github.com/yourorg/backtest-analytics/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAction(t *testing.T) {
	assert.Equal(t, model.ActionBuy, NormalizeAction("BUY"))
	assert.Equal(t, model.ActionBuy, NormalizeAction("buy"))
	assert.Equal(t, model.ActionBuy, NormalizeAction(" Buy "))
	assert.Equal(t, model.ActionSell, NormalizeAction("SELL"))
	assert.Equal(t, model.ActionSell, NormalizeAction("sell"))
	// Unknown actions fall back to SELL rather than being dropped.
	assert.Equal(t, model.ActionSell, NormalizeAction("hold"))
	assert.Equal(t, model.ActionSell, NormalizeAction(""))
}

func TestAlignMarkers_RewritesToBucketDate(t *testing.T) {
	daily := []model.Bar{
		dayBar(t, "2025-01-01", 100, 100, 100, 100, 1),
		dayBar(t, "2025-01-02", 101, 101, 101, 101, 1),
		dayBar(t, "2025-01-03", 99, 99, 99, 99, 1),
	}
	weekly := Resample(daily, model.TimeframeWeekly)
	require.Len(t, weekly, 1)

	markers := []model.TradeMarker{
		{Date: model.NewDate(2025, time.January, 2), Price: 101, Action: "buy"},
		{Date: model.NewDate(2025, time.January, 3), Price: 99, Action: "SELL"},
	}

	aligned := AlignMarkers(weekly, model.TimeframeWeekly, markers)
	require.Len(t, aligned, 2)

	// Both trades land on the weekly bucket's representative date.
	assert.Equal(t, "2025-01-01", aligned[0].Date.String())
	assert.Equal(t, "2025-01-01", aligned[1].Date.String())
	assert.Equal(t, model.ActionBuy, aligned[0].Action)
	assert.Equal(t, model.ActionSell, aligned[1].Action)
	assert.Equal(t, 101.0, aligned[0].Price)
}

func TestAlignMarkers_OutsideRangeKeepsDate(t *testing.T) {
	weekly := Resample([]model.Bar{
		dayBar(t, "2025-01-01", 100, 100, 100, 100, 1),
	}, model.TimeframeWeekly)

	markers := []model.TradeMarker{
		{Date: model.NewDate(2025, time.March, 14), Price: 50, Action: "buy"},
	}

	aligned := AlignMarkers(weekly, model.TimeframeWeekly, markers)
	require.Len(t, aligned, 1)
	assert.Equal(t, "2025-03-14", aligned[0].Date.String())
	assert.Equal(t, model.ActionBuy, aligned[0].Action)
}

func TestAlignMarkers_EmptyInputs(t *testing.T) {
	assert.Empty(t, AlignMarkers(nil, model.TimeframeWeekly, nil))
	out := AlignMarkers(nil, model.TimeframeMonthly, []model.TradeMarker{
		{Date: model.NewDate(2025, time.June, 2), Price: 1, Action: "sell"},
	})
	require.Len(t, out, 1)
	assert.Equal(t, "2025-06-02", out[0].Date.String())
}
