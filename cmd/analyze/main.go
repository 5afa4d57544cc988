package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/yourorg/backtest-analytics/internal/analytics"
	"github.com/yourorg/backtest-analytics/internal/model"
)

func main() {
	dataPath := flag.String("data", "", "Path to a backtest result JSON file (equity_curve + trades)")
	window := flag.Int("window", analytics.DefaultRollingWindow, "Rolling metric window in sessions")
	bins := flag.Int("bins", analytics.DefaultHistogramBins, "Return histogram bins")
	paths := flag.Int("paths", analytics.DefaultMonteCarloPaths, "Monte Carlo bootstrap paths")
	seed := flag.Int64("seed", 1, "Monte Carlo seed")
	flag.Parse()

	if *dataPath == "" {
		fmt.Println("--data is required")
		os.Exit(2)
	}

	raw, err := os.ReadFile(*dataPath)
	if err != nil {
		fmt.Printf("failed to read %s: %v\n", *dataPath, err)
		os.Exit(1)
	}

	var result model.BacktestResult
	if err := json.Unmarshal(raw, &result); err != nil {
		fmt.Printf("failed to parse %s: %v\n", *dataPath, err)
		os.Exit(1)
	}

	res := analytics.Analyze(result.EquityCurve, result.Trades, *window, *bins)
	proj := analytics.Project(
		analytics.ReturnsPct(result.EquityCurve),
		analytics.StartEquity(result.EquityCurve),
		*paths,
		rand.New(rand.NewSource(*seed)),
	)

	printSummary(res, proj)
}

func printSummary(res *model.AnalyticsResult, proj *model.MonteCarloProjection) {
	s := res.TradeAnalytics.Summary
	fmt.Println("=== Trade Summary ===")
	fmt.Printf("Total Trades:     %d\n", s.TotalTrades)
	fmt.Printf("Win Rate:         %.2f%%\n", s.WinRate)
	fmt.Printf("Profit Factor:    %.2f\n", s.ProfitFactor)
	fmt.Printf("Expectancy:       %.2f\n", s.Expectancy)
	fmt.Printf("Avg Win / Loss:   %.2f / %.2f\n", s.AvgWin, s.AvgLoss)
	fmt.Printf("Largest Win/Loss: %.2f / %.2f\n", s.LargestWin, s.LargestLoss)
	fmt.Printf("Avg Holding Days: %.1f\n", s.AvgHoldingDays)

	st := res.TradeAnalytics.Streaks
	fmt.Printf("Streaks:          max win %d, max loss %d, current %d (%s)\n",
		st.MaxWinStreak, st.MaxLossStreak, st.CurrentStreak, st.CurrentStreakType)

	if n := len(res.DrawdownSeries); n > 0 {
		worst := 0.0
		for _, dd := range res.DrawdownSeries {
			if dd.DrawdownPct < worst {
				worst = dd.DrawdownPct
			}
		}
		fmt.Println("\n=== Equity ===")
		fmt.Printf("Sessions:         %d\n", n)
		fmt.Printf("Max Drawdown:     %.2f%%\n", worst)
	}

	d := res.ReturnDistribution.Stats
	fmt.Println("\n=== Daily Returns (%) ===")
	fmt.Printf("Mean / Median:    %.4f / %.4f\n", d.Mean, d.Median)
	fmt.Printf("Std:              %.4f\n", d.Std)
	fmt.Printf("Skew / Kurtosis:  %.4f / %.4f\n", d.Skewness, d.Kurtosis)
	fmt.Printf("VaR 95 / 99:      %.4f / %.4f\n", d.VaR95, d.VaR99)

	fmt.Println("\n=== Monte Carlo ===")
	fmt.Printf("Start Value:      %.2f\n", proj.StartValue)
	fmt.Printf("Median Endpoint:  %.2f\n", proj.EndMedian)
	if n := len(proj.P10Path); n > 0 {
		fmt.Printf("P10-P90 Endpoint: %.2f - %.2f\n", proj.P10Path[n-1], proj.P90Path[n-1])
	}

	fmt.Println("\n=== Monthly Returns ===")
	for _, m := range res.MonthlyReturns {
		fmt.Printf("%d-%02d: %+.2f%%\n", m.Year, m.Month, m.ReturnPct)
	}
}
