package analytics

import (
	"testing"
	"time"

	"github.com/yourorg/backtest-analytics/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trade(date string, action string, qty, price float64) model.Trade {
	ts, _ := time.Parse("2006-01-02", date)
	return model.Trade{Date: model.DateOf(ts), Action: action, Quantity: qty, Price: price}
}

func TestRoundTrips_SimplePair(t *testing.T) {
	trades := []model.Trade{
		trade("2025-01-02", "BUY", 10, 100),
		trade("2025-01-09", "SELL", 10, 110),
	}

	rts := RoundTrips(trades)
	require.Len(t, rts, 1)

	rt := rts[0]
	assert.Equal(t, "2025-01-02", rt.EntryDate.String())
	assert.Equal(t, "2025-01-09", rt.ExitDate.String())
	assert.InDelta(t, 100.0, rt.PnL, 1e-9)
	assert.InDelta(t, 10.0, rt.ReturnPct, 1e-9)
	assert.Equal(t, 7, rt.HoldingDays)
}

func TestRoundTrips_SellWhileFlatIgnored(t *testing.T) {
	trades := []model.Trade{
		trade("2025-01-02", "SELL", 5, 90),
		trade("2025-01-03", "BUY", 5, 100),
		trade("2025-01-06", "SELL", 5, 105),
	}
	rts := RoundTrips(trades)
	require.Len(t, rts, 1)
	assert.Equal(t, 100.0, rts[0].EntryPrice)
}

func TestRoundTrips_RepeatedBuyOverwritesOpen(t *testing.T) {
	trades := []model.Trade{
		trade("2025-01-02", "BUY", 1, 100),
		trade("2025-01-03", "BUY", 1, 120),
		trade("2025-01-06", "SELL", 1, 130),
	}
	rts := RoundTrips(trades)
	require.Len(t, rts, 1)
	// Only the most recent open is tracked.
	assert.Equal(t, 120.0, rts[0].EntryPrice)
	assert.InDelta(t, 10.0, rts[0].PnL, 1e-9)
}

func TestRoundTrips_TrailingOpenBuyDropped(t *testing.T) {
	trades := []model.Trade{
		trade("2025-01-02", "BUY", 1, 100),
		trade("2025-01-03", "SELL", 1, 105),
		trade("2025-01-06", "BUY", 1, 103),
	}
	rts := RoundTrips(trades)
	assert.Len(t, rts, 1)
}

func TestRoundTrips_QuantityAndHoldingFloors(t *testing.T) {
	sameDay := []model.Trade{
		trade("2025-01-02", "BUY", 0, 100),
		trade("2025-01-02", "SELL", 0, 110),
	}
	rts := RoundTrips(sameDay)
	require.Len(t, rts, 1)
	// Zero quantities default to 1; same-day exits still hold one day.
	assert.Equal(t, 1.0, rts[0].Quantity)
	assert.Equal(t, 1, rts[0].HoldingDays)
	assert.InDelta(t, 10.0, rts[0].PnL, 1e-9)
}

func TestRoundTrips_PartialQuantityUsesMin(t *testing.T) {
	trades := []model.Trade{
		trade("2025-01-02", "BUY", 10, 100),
		trade("2025-01-09", "SELL", -4, 110),
	}
	rts := RoundTrips(trades)
	require.Len(t, rts, 1)
	assert.Equal(t, 4.0, rts[0].Quantity)
	assert.InDelta(t, 40.0, rts[0].PnL, 1e-9)
}

func TestRoundTrips_ZeroBuyPrice(t *testing.T) {
	trades := []model.Trade{
		trade("2025-01-02", "BUY", 1, 0),
		trade("2025-01-09", "SELL", 1, 10),
	}
	rts := RoundTrips(trades)
	require.Len(t, rts, 1)
	assert.Equal(t, 0.0, rts[0].ReturnPct)
	assert.InDelta(t, 10.0, rts[0].PnL, 1e-9)
}

func TestRoundTrips_LowercaseActions(t *testing.T) {
	trades := []model.Trade{
		trade("2025-01-02", "buy", 1, 100),
		trade("2025-01-09", "sell", 1, 90),
	}
	rts := RoundTrips(trades)
	require.Len(t, rts, 1)
	assert.InDelta(t, -10.0, rts[0].PnL, 1e-9)
}

func TestStreaks(t *testing.T) {
	pnls := []float64{5, 3, -2, -1, -4, 6, -1, 2, 4}
	rts := make([]model.RoundTrip, len(pnls))
	for i, p := range pnls {
		rts[i] = model.RoundTrip{PnL: p}
	}

	streaks := Streaks(rts)
	assert.Equal(t, 2, streaks.MaxWinStreak)
	assert.Equal(t, 3, streaks.MaxLossStreak)
	assert.Equal(t, 2, streaks.CurrentStreak)
	assert.Equal(t, "win", streaks.CurrentStreakType)
}

func TestStreaks_Empty(t *testing.T) {
	streaks := Streaks(nil)
	assert.Equal(t, 0, streaks.MaxWinStreak)
	assert.Equal(t, 0, streaks.MaxLossStreak)
	assert.Equal(t, 0, streaks.CurrentStreak)
	assert.Equal(t, "none", streaks.CurrentStreakType)
}

func TestStreaks_BreakevenCountsAsLoss(t *testing.T) {
	rts := []model.RoundTrip{{PnL: 0}, {PnL: 0}}
	streaks := Streaks(rts)
	assert.Equal(t, 2, streaks.MaxLossStreak)
	assert.Equal(t, "loss", streaks.CurrentStreakType)
}

func TestSummarize(t *testing.T) {
	rts := []model.RoundTrip{
		{PnL: 100, HoldingDays: 5},
		{PnL: -50, HoldingDays: 3},
		{PnL: 200, HoldingDays: 10},
		{PnL: -25, HoldingDays: 2},
	}

	s := Summarize(rts)
	assert.Equal(t, 4, s.TotalTrades)
	assert.Equal(t, 2, s.WinningTrades)
	assert.Equal(t, 2, s.LosingTrades)
	assert.InDelta(t, 50.0, s.WinRate, 1e-9)
	assert.InDelta(t, 150.0, s.AvgWin, 1e-9)
	assert.InDelta(t, -37.5, s.AvgLoss, 1e-9)
	assert.InDelta(t, 4.0, s.ProfitFactor, 1e-9) // 300 / 75
	assert.InDelta(t, 56.25, s.Expectancy, 1e-9)
	assert.Equal(t, 200.0, s.LargestWin)
	assert.Equal(t, -50.0, s.LargestLoss)
	assert.InDelta(t, 5.0, s.AvgHoldingDays, 1e-9)
}

func TestSummarize_NoTrades(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, model.TradeSummary{}, s)
}

func TestSummarize_NoLossesZeroProfitFactor(t *testing.T) {
	s := Summarize([]model.RoundTrip{{PnL: 10, HoldingDays: 1}})
	assert.Equal(t, 0.0, s.ProfitFactor)
	assert.Equal(t, 100.0, s.WinRate)
}

func TestTradeAnalyticsFor_EndToEnd(t *testing.T) {
	trades := []model.Trade{
		trade("2025-01-02", "BUY", 10, 100),
		trade("2025-01-09", "SELL", 10, 110),
		trade("2025-01-10", "BUY", 10, 110),
		trade("2025-01-17", "SELL", 10, 99),
	}

	ta := TradeAnalyticsFor(trades)
	require.Len(t, ta.Scatter, 2)
	assert.Equal(t, 2, ta.Summary.TotalTrades)
	assert.Equal(t, 1, ta.Summary.WinningTrades)
	assert.Equal(t, "loss", ta.Streaks.CurrentStreakType)
}
