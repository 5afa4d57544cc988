package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourorg/backtest-analytics/internal/client"
	"github.com/yourorg/backtest-analytics/internal/config"
	"github.com/yourorg/backtest-analytics/internal/handler"
	"github.com/yourorg/backtest-analytics/internal/middleware"
	"github.com/yourorg/backtest-analytics/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger, err := createLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Initialize clients
	backtestClient := client.NewBacktestClient(cfg.BacktestService.URL, cfg.BacktestService.Timeout, logger)

	// Initialize services
	analyticsService := service.NewAnalyticsService(
		backtestClient,
		service.AnalyticsParams{
			RollingWindow: cfg.Analytics.RollingWindow,
			HistogramBins: cfg.Analytics.HistogramBins,
			MonteCarlo:    cfg.Analytics.MonteCarloPaths,
		},
		logger,
	)

	// Initialize handlers
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, logger)
	marketDataHandler := handler.NewMarketDataHandler(analyticsService, logger)

	// Set up HTTP server with Gin
	router := setupRouter(analyticsHandler, marketDataHandler, analyticsService, logger)

	// The consumer is a browser terminal; wrap the router for CORS.
	corsWrapper := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      corsWrapper.Handler(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create a deadline for server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

func createLogger(level string) (*zap.Logger, error) {
	// Parse log level
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	// Create logger config
	config := zap.Config{
		Level:            zapLevel,
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

func setupRouter(
	analyticsHandler *handler.AnalyticsHandler,
	marketDataHandler *handler.MarketDataHandler,
	analyticsService *service.AnalyticsService,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()

	// Use middlewares
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Upstream execution service health
	router.GET("/health/backtest-service", func(c *gin.Context) {
		healthy, err := analyticsService.CheckBacktestServiceHealth(c.Request.Context())
		if err != nil || !healthy {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Analytics derivation routes
		v1.POST("/analytics", analyticsHandler.ComputeAnalytics)

		// Backtest run routes (proxied to the execution service)
		backtests := v1.Group("/backtests")
		{
			backtests.POST("", analyticsHandler.SubmitBacktest)
			backtests.GET("/:run_id/status", analyticsHandler.GetRunStatus)
			backtests.GET("/:run_id/analytics", analyticsHandler.GetBacktestAnalytics)
		}

		// Market data routes
		marketData := v1.Group("/market-data")
		{
			marketData.POST("/resample", marketDataHandler.ResampleBars)
			marketData.GET("/timeframes", marketDataHandler.GetTimeframes)
		}
	}
	return router
}
