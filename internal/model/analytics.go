package model

// MonthlyReturn is the percentage return of one calendar month of the
// equity curve.
type MonthlyReturn struct {
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	ReturnPct float64 `json:"return_pct"`
}

// DrawdownPoint is one sample of the drawdown series. DrawdownPct is always
// <= 0 and Peak is non-decreasing across the series.
type DrawdownPoint struct {
	Date        Date    `json:"date"`
	Equity      float64 `json:"equity"`
	Peak        float64 `json:"peak"`
	DrawdownPct float64 `json:"drawdown_pct"`
}

// RollingMetric is one row of the fixed-window rolling risk metrics.
type RollingMetric struct {
	Date              Date    `json:"date"`
	RollingSharpe     float64 `json:"rolling_sharpe"`
	RollingVolatility float64 `json:"rolling_volatility"`
	RollingReturn     float64 `json:"rolling_return"`
}

// DistributionStats summarizes the daily-return distribution in percent.
type DistributionStats struct {
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Std      float64 `json:"std"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	VaR95    float64 `json:"var_95"`
	VaR99    float64 `json:"var_99"`
}

// ReturnDistribution is a histogram of daily returns plus moment statistics.
// Bins holds the bin centers; sum(Counts) equals the number of valid returns.
type ReturnDistribution struct {
	Bins   []float64         `json:"bins"`
	Counts []int             `json:"counts"`
	Stats  DistributionStats `json:"stats"`
}

// StreakStats tracks win/loss streaks over the round-trip sequence.
type StreakStats struct {
	MaxWinStreak      int    `json:"max_win_streak"`
	MaxLossStreak     int    `json:"max_loss_streak"`
	CurrentStreak     int    `json:"current_streak"`
	CurrentStreakType string `json:"current_streak_type"`
}

// TradeSummary aggregates the round-trip list. Every field is zero-safe when
// there are no completed trades.
type TradeSummary struct {
	TotalTrades    int     `json:"total_trades"`
	WinningTrades  int     `json:"winning_trades"`
	LosingTrades   int     `json:"losing_trades"`
	WinRate        float64 `json:"win_rate"`
	AvgWin         float64 `json:"avg_win"`
	AvgLoss        float64 `json:"avg_loss"`
	ProfitFactor   float64 `json:"profit_factor"`
	Expectancy     float64 `json:"expectancy"`
	LargestWin     float64 `json:"largest_win"`
	LargestLoss    float64 `json:"largest_loss"`
	AvgHoldingDays float64 `json:"avg_holding_days"`
}

// TradeAnalytics bundles the per-round-trip scatter with streaks and summary.
type TradeAnalytics struct {
	Scatter []RoundTrip  `json:"scatter"`
	Streaks StreakStats  `json:"streaks"`
	Summary TradeSummary `json:"summary"`
}

// AnalyticsResult is the full derived statistics set for one backtest run.
// It is immutable once computed; a new run produces a new result.
type AnalyticsResult struct {
	MonthlyReturns     []MonthlyReturn    `json:"monthly_returns"`
	DrawdownSeries     []DrawdownPoint    `json:"drawdown_series"`
	RollingMetrics     []RollingMetric    `json:"rolling_metrics"`
	ReturnDistribution ReturnDistribution `json:"return_distribution"`
	TradeAnalytics     TradeAnalytics     `json:"trade_analytics"`
}

// MonteCarloProjection is the percentile-banded forward equity envelope
// produced by bootstrap-resampling historical daily returns.
type MonteCarloProjection struct {
	MedianPath []float64 `json:"median_path"`
	P10Path    []float64 `json:"p10_path"`
	P90Path    []float64 `json:"p90_path"`
	StartValue float64   `json:"start_value"`
	EndMedian  float64   `json:"end_median"`
}

// BacktestAnalytics is the atomic bundle the orchestrator hands to report
// consumers: all derived fields come from the same computation pass, never a
// mix of stale and fresh data.
type BacktestAnalytics struct {
	Result     *AnalyticsResult      `json:"result"`
	Projection *MonteCarloProjection `json:"projection"`
}
