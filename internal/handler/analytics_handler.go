package handler

import (
	"net/http"
	"strconv"

	"github.com/yourorg/backtest-analytics/internal/model"
	"github.com/yourorg/backtest-analytics/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Derivation parameter bounds enforced at the HTTP surface. The engine
// itself never validates; it degrades silently on any input.
const (
	minRollingWindow = 10
	maxRollingWindow = 252
	minHistogramBins = 10
	maxHistogramBins = 200
)

// AnalyticsHandler handles analytics HTTP requests.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	logger           *zap.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// ComputeAnalytics handles deriving analytics from an inline backtest result
func (h *AnalyticsHandler) ComputeAnalytics(c *gin.Context) {
	var request model.AnalyticsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := service.AnalyticsParams{
		RollingWindow: request.RollingWindow,
		HistogramBins: request.HistogramBins,
		MonteCarlo:    request.MonteCarlo,
		Seed:          request.Seed,
	}
	if msg, ok := validateParams(params); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	result := &model.BacktestResult{
		EquityCurve: request.EquityCurve,
		Trades:      request.Trades,
	}
	c.JSON(http.StatusOK, h.analyticsService.Compute(result, params))
}

// GetBacktestAnalytics handles fetching a finished run from the execution
// service and deriving its analytics
func (h *AnalyticsHandler) GetBacktestAnalytics(c *gin.Context) {
	runID := c.Param("run_id")
	if runID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "run_id is required"})
		return
	}

	params, msg, ok := paramsFromQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	bundle, err := h.analyticsService.ComputeForRun(c.Request.Context(), runID, params)
	if err != nil {
		h.logger.Error("Failed to compute backtest analytics",
			zap.Error(err),
			zap.String("runID", runID))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, bundle)
}

// SubmitBacktest handles queueing a new run on the execution service
func (h *AnalyticsHandler) SubmitBacktest(c *gin.Context) {
	var request model.BacktestSubmitRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if request.EndDate.Before(request.StartDate.Time) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end date must be after start date"})
		return
	}

	status, err := h.analyticsService.SubmitBacktest(c.Request.Context(), &request)
	if err != nil {
		h.logger.Error("Failed to submit backtest",
			zap.Error(err),
			zap.String("strategy", request.Strategy))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, status)
}

// GetRunStatus handles polling a run's status
func (h *AnalyticsHandler) GetRunStatus(c *gin.Context) {
	runID := c.Param("run_id")

	status, err := h.analyticsService.GetRunStatus(c.Request.Context(), runID)
	if err != nil {
		h.logger.Error("Failed to get run status",
			zap.Error(err),
			zap.String("runID", runID))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if status.Status == model.RunStatusNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Backtest run not found"})
		return
	}

	c.JSON(http.StatusOK, status)
}

func validateParams(p service.AnalyticsParams) (string, bool) {
	if p.RollingWindow != 0 && (p.RollingWindow < minRollingWindow || p.RollingWindow > maxRollingWindow) {
		return "rolling_window must be between 10 and 252", false
	}
	if p.HistogramBins != 0 && (p.HistogramBins < minHistogramBins || p.HistogramBins > maxHistogramBins) {
		return "histogram_bins must be between 10 and 200", false
	}
	return "", true
}

func paramsFromQuery(c *gin.Context) (service.AnalyticsParams, string, bool) {
	var params service.AnalyticsParams
	var err error

	if params.RollingWindow, err = intQuery(c, "rolling_window"); err != nil {
		return params, "invalid rolling_window", false
	}
	if params.HistogramBins, err = intQuery(c, "histogram_bins"); err != nil {
		return params, "invalid histogram_bins", false
	}
	if params.MonteCarlo, err = intQuery(c, "monte_carlo_paths"); err != nil {
		return params, "invalid monte_carlo_paths", false
	}
	if raw := c.Query("seed"); raw != "" {
		if params.Seed, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return params, "invalid seed", false
		}
	}

	if msg, ok := validateParams(params); !ok {
		return params, msg, false
	}
	return params, "", true
}

func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
