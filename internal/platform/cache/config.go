// Package cache provides the Redis-backed page cache shared by the HTTP views.
package cache

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	defaultLocale   = "en-us"
	defaultTimeZone = "UTC"
	defaultTTL      = 300 * time.Second
)

// Config holds the cache settings that take part in key generation and expiry.
type Config struct {
	Locale   string        // LANGUAGE_CODE, appended to every key
	TimeZone string        // TIME_ZONE, appended to every key and used for "today"
	TTL      time.Duration // CACHE_TTL_SECONDS
}

// LoadConfig loads cache configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		Locale:   os.Getenv("LANGUAGE_CODE"),
		TimeZone: os.Getenv("TIME_ZONE"),
		TTL:      defaultTTL,
	}
	if cfg.Locale == "" {
		cfg.Locale = defaultLocale
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = defaultTimeZone
	}
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			slog.Warn("invalid CACHE_TTL_SECONDS, using default", "value", v, "default", defaultTTL)
		} else {
			cfg.TTL = time.Duration(secs) * time.Second
		}
	}
	return cfg
}

// Location resolves TimeZone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load TIME_ZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// Keys returns the key builder for this configuration.
func (c Config) Keys() KeyBuilder {
	return KeyBuilder{Locale: c.Locale, TimeZone: c.TimeZone}
}
