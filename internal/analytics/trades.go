package analytics

import (
	"math"

	"github.com/yourorg/backtest-analytics/internal/model"
)

// position is the accumulator of the single-position round-trip state
// machine: FLAT (open == nil) or LONG. A BUY always moves to LONG,
// overwriting any unmatched prior open; a SELL while LONG emits a round-trip
// and moves back to FLAT; a SELL while FLAT is a no-op.
type position struct {
	open *model.Trade
}

func (p position) apply(t model.Trade) (position, *model.RoundTrip) {
	switch NormalizeAction(t.Action) {
	case model.ActionBuy:
		open := t
		return position{open: &open}, nil
	default: // SELL
		if p.open == nil {
			return p, nil
		}
		rt := closeRoundTrip(*p.open, t)
		return position{}, &rt
	}
}

func closeRoundTrip(buy, sell model.Trade) model.RoundTrip {
	qty := math.Min(math.Abs(sell.Quantity), math.Abs(buy.Quantity))
	if qty == 0 {
		qty = 1
	}

	retPct := 0.0
	if buy.Price != 0 {
		retPct = (sell.Price - buy.Price) / buy.Price * 100
	}

	days := int(math.Round(sell.Date.Sub(buy.Date.Time).Hours() / 24))
	if days < 1 {
		days = 1
	}

	return model.RoundTrip{
		EntryDate:   buy.Date,
		ExitDate:    sell.Date,
		EntryPrice:  buy.Price,
		ExitPrice:   sell.Price,
		Quantity:    qty,
		PnL:         (sell.Price - buy.Price) * qty,
		ReturnPct:   retPct,
		HoldingDays: days,
	}
}

// RoundTrips folds the trade ledger through the single-position state
// machine and returns the completed round-trips in ledger order. A trailing
// unmatched BUY never produces a round-trip.
func RoundTrips(trades []model.Trade) []model.RoundTrip {
	out := make([]model.RoundTrip, 0, len(trades)/2)
	pos := position{}
	for _, t := range trades {
		var rt *model.RoundTrip
		pos, rt = pos.apply(t)
		if rt != nil {
			out = append(out, *rt)
		}
	}
	return out
}

// Streaks walks the round-trip list tracking runs of same-sign outcomes.
// A round-trip wins when its pnl is strictly positive.
func Streaks(roundTrips []model.RoundTrip) model.StreakStats {
	stats := model.StreakStats{CurrentStreakType: "none"}

	curWin := false
	curLen := 0
	for _, rt := range roundTrips {
		win := rt.PnL > 0
		if curLen > 0 && win == curWin {
			curLen++
		} else {
			curWin = win
			curLen = 1
		}
		if curWin {
			if curLen > stats.MaxWinStreak {
				stats.MaxWinStreak = curLen
			}
		} else if curLen > stats.MaxLossStreak {
			stats.MaxLossStreak = curLen
		}
	}

	if curLen > 0 {
		stats.CurrentStreak = curLen
		if curWin {
			stats.CurrentStreakType = "win"
		} else {
			stats.CurrentStreakType = "loss"
		}
	}
	return stats
}

// Summarize aggregates the round-trip list. Every ratio is zero-safe: no
// trades, no losses and no wins all report 0 rather than NaN or Inf.
func Summarize(roundTrips []model.RoundTrip) model.TradeSummary {
	s := model.TradeSummary{TotalTrades: len(roundTrips)}
	if s.TotalTrades == 0 {
		return s
	}

	var grossWin, grossLoss, totalPnL, totalDays float64
	for i, rt := range roundTrips {
		totalPnL += rt.PnL
		totalDays += float64(rt.HoldingDays)
		if rt.PnL > 0 {
			s.WinningTrades++
			grossWin += rt.PnL
		} else if rt.PnL < 0 {
			s.LosingTrades++
			grossLoss += rt.PnL
		}
		if i == 0 || rt.PnL > s.LargestWin {
			s.LargestWin = rt.PnL
		}
		if i == 0 || rt.PnL < s.LargestLoss {
			s.LargestLoss = rt.PnL
		}
	}

	total := float64(s.TotalTrades)
	s.WinRate = float64(s.WinningTrades) / total * 100
	if s.WinningTrades > 0 {
		s.AvgWin = grossWin / float64(s.WinningTrades)
	}
	if s.LosingTrades > 0 {
		s.AvgLoss = grossLoss / float64(s.LosingTrades)
	}
	if grossLoss != 0 {
		s.ProfitFactor = grossWin / math.Abs(grossLoss)
	}
	s.Expectancy = totalPnL / total
	s.AvgHoldingDays = totalDays / total
	return s
}

// TradeAnalyticsFor bundles round-trips, streaks and summary for the ledger.
func TradeAnalyticsFor(trades []model.Trade) model.TradeAnalytics {
	roundTrips := RoundTrips(trades)
	return model.TradeAnalytics{
		Scatter: roundTrips,
		Streaks: Streaks(roundTrips),
		Summary: Summarize(roundTrips),
	}
}
