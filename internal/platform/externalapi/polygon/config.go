// Package polygon provides a client for the Polygon.io market data API.
package polygon

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "https://api.polygon.io"
	defaultTimeout = 5 * time.Second
)

// Config holds configuration for the Polygon API client.
type Config struct {
	APIKey  string        // API key sent as a bearer token
	BaseURL string        // Base URL for the API (e.g., "https://api.polygon.io")
	Timeout time.Duration // HTTP request timeout

	// RatePerMinute caps upstream calls per minute; 0 means unlimited.
	RatePerMinute int
}

// LoadConfig loads Polygon configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		APIKey:  os.Getenv("POLYGON_API_KEY"),
		BaseURL: os.Getenv("POLYGON_BASE_URL"),
		Timeout: defaultTimeout,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if v := os.Getenv("POLYGON_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			slog.Warn("invalid POLYGON_TIMEOUT, using default", "value", v, "default", defaultTimeout)
		} else {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("POLYGON_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			slog.Warn("invalid POLYGON_RATE_LIMIT, running unlimited", "value", v)
		} else {
			cfg.RatePerMinute = n
		}
	}
	if cfg.APIKey == "" {
		slog.Warn("POLYGON_API_KEY is not set; company detail requests will fail upstream")
	}
	return cfg
}
