package model

// Backtest run statuses reported by the backtest execution service.
const (
	RunStatusQueued   = "queued"
	RunStatusRunning  = "running"
	RunStatusDone     = "done"
	RunStatusFailed   = "failed"
	RunStatusNotFound = "not_found"
)

// BacktestSubmitRequest represents the input parameters for a backtest run
// submitted to the execution service.
type BacktestSubmitRequest struct {
	Strategy       string             `json:"strategy" binding:"required"`
	Symbol         string             `json:"symbol" binding:"required"`
	StartDate      Date               `json:"start_date" binding:"required"`
	EndDate        Date               `json:"end_date" binding:"required"`
	InitialCapital float64            `json:"initial_capital" binding:"required,min=1"`
	Params         map[string]float64 `json:"params,omitempty"`
}

// BacktestRunStatus is the execution service's view of a queued run.
type BacktestRunStatus struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// BacktestResult is the raw output of a finished backtest run: the equity
// curve ordered by date and the trade ledger. Everything downstream is
// derived from these two series.
type BacktestResult struct {
	RunID       string        `json:"run_id,omitempty"`
	Strategy    string        `json:"strategy,omitempty"`
	Symbol      string        `json:"symbol,omitempty"`
	EquityCurve []EquityPoint `json:"equity_curve"`
	Trades      []Trade       `json:"trades"`
}

// AnalyticsRequest is the inline-payload form of an analytics computation:
// the raw result plus optional overrides for the derivation parameters.
// Zero-valued overrides mean "use the configured default".
type AnalyticsRequest struct {
	EquityCurve   []EquityPoint `json:"equity_curve" binding:"required"`
	Trades        []Trade       `json:"trades"`
	RollingWindow int           `json:"rolling_window,omitempty"`
	HistogramBins int           `json:"histogram_bins,omitempty"`
	MonteCarlo    int           `json:"monte_carlo_paths,omitempty"`
	Seed          int64         `json:"seed,omitempty"`
}
