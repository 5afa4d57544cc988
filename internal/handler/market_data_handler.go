package handler

import (
	"net/http"

	"github.com/yourorg/backtest-analytics/internal/model"
	"github.com/yourorg/backtest-analytics/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MarketDataHandler handles bar-series HTTP requests.
type MarketDataHandler struct {
	analyticsService *service.AnalyticsService
	logger           *zap.Logger
}

// NewMarketDataHandler creates a new market data handler.
func NewMarketDataHandler(analyticsService *service.AnalyticsService, logger *zap.Logger) *MarketDataHandler {
	return &MarketDataHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// ResampleBars handles re-bucketing a daily bar series into a display
// timeframe and re-aligning trade markers onto the bucketed timeline
func (h *MarketDataHandler) ResampleBars(c *gin.Context) {
	var request model.ResampleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tf, ok := model.ParseTimeframe(request.Timeframe)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "timeframe must be one of daily, weekly, monthly"})
		return
	}

	c.JSON(http.StatusOK, h.analyticsService.Resample(request.Bars, tf, request.Markers))
}

// GetTimeframes lists the supported display timeframes
func (h *MarketDataHandler) GetTimeframes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timeframes": []model.Timeframe{
			model.TimeframeDaily,
			model.TimeframeWeekly,
			model.TimeframeMonthly,
		},
	})
}
