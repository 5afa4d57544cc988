package model

// EquityPoint is one trading session of a backtest equity curve. The OHLC
// fields are a synthetic proxy derived from equity for candlestick charting;
// Close always equals Equity.
type EquityPoint struct {
	Date     Date    `json:"date"`
	Equity   float64 `json:"equity"`
	Cash     float64 `json:"cash"`
	Position float64 `json:"position"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
}

// Trade action values. Anything else is normalized to SELL by the aligner.
const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
)

// Trade is a single entry in the backtest trade ledger. Trades are not
// guaranteed to pair up; the ledger may end with an open, unmatched BUY.
type Trade struct {
	Date     Date    `json:"date"`
	Action   string  `json:"action"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// RoundTrip is a matched BUY/SELL pair representing one completed position.
type RoundTrip struct {
	EntryDate   Date    `json:"entry_date"`
	ExitDate    Date    `json:"exit_date"`
	EntryPrice  float64 `json:"entry_price"`
	ExitPrice   float64 `json:"exit_price"`
	Quantity    float64 `json:"quantity"`
	PnL         float64 `json:"pnl"`
	ReturnPct   float64 `json:"return_pct"`
	HoldingDays int     `json:"holding_days"`
}
