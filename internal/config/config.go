package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server          ServerConfig
	BacktestService ServiceConfig
	Analytics       AnalyticsConfig
	CORS            CORSConfig
	Logging         LoggingConfig
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// ServiceConfig holds configuration for the external backtest execution service
type ServiceConfig struct {
	URL     string
	Timeout time.Duration
}

// AnalyticsConfig holds the derivation defaults
type AnalyticsConfig struct {
	RollingWindow   int
	HistogramBins   int
	MonteCarloPaths int
}

// CORSConfig holds allowed origins for the browser terminal
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging specific configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads the configuration from file and environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Environment variables override
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8086")
	v.SetDefault("server.readTimeout", "10s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.idleTimeout", "120s")

	// Backtest execution service defaults
	v.SetDefault("backtestService.url", "http://backtest-service:5000")
	v.SetDefault("backtestService.timeout", "30s")

	// Analytics derivation defaults
	v.SetDefault("analytics.rollingWindow", 60)
	v.SetDefault("analytics.histogramBins", 40)
	v.SetDefault("analytics.monteCarloPaths", 160)

	// CORS defaults for the browser terminal
	v.SetDefault("cors.allowedOrigins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
