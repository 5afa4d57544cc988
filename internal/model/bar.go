package model

import (
	"strings"
	"time"
)

// Timeframe identifies the display bucketing applied to a bar series.
type Timeframe string

const (
	TimeframeDaily   Timeframe = "daily"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
)

// ParseTimeframe normalizes a timeframe string. Returns false for anything
// that is not one of the supported display timeframes.
func ParseTimeframe(s string) (Timeframe, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "1d", "d":
		return TimeframeDaily, true
	case "weekly", "1w", "w":
		return TimeframeWeekly, true
	case "monthly", "1m", "m":
		return TimeframeMonthly, true
	default:
		return "", false
	}
}

func (tf Timeframe) String() string { return string(tf) }

// Bar represents a single OHLCV bar. Time is unix seconds; within one series
// times are strictly increasing.
type Bar struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// Timestamp returns the bar's time as a UTC time.Time.
func (b Bar) Timestamp() time.Time { return time.Unix(b.Time, 0).UTC() }

// TradeMarker is a chart annotation for a trade, carried alongside a bar
// series and re-aligned when the series is resampled.
type TradeMarker struct {
	Date   Date    `json:"date"`
	Price  float64 `json:"price"`
	Action string  `json:"action"`
}

// ResampleRequest is the payload for the resample endpoint: a native daily
// series plus the markers to re-align onto the bucketed timeline.
type ResampleRequest struct {
	Timeframe string        `json:"timeframe" binding:"required"`
	Bars      []Bar         `json:"bars"`
	Markers   []TradeMarker `json:"markers"`
}

// ResampleResponse carries the display-timeframe series and markers.
type ResampleResponse struct {
	Timeframe Timeframe     `json:"timeframe"`
	Bars      []Bar         `json:"bars"`
	Markers   []TradeMarker `json:"markers"`
}
