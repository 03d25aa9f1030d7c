// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// APIConfig provides remote API connection settings.
type APIConfig interface {
	GetAPIBaseURL() string
	GetHTTPTimeout() time.Duration
}

// RateConfig provides settings for the outbound request limiter.
type RateConfig interface {
	GetAPIRate() float64
	GetAPIBurst() int
}

// PhoneConfig provides settings for phone normalization.
type PhoneConfig interface {
	GetPhoneRegion() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env         string
	APIBaseURL  string
	HTTPTimeout time.Duration
	APIRate     float64
	APIBurst    int
	PhoneRegion string
}

// APIConfig implementation
func (c *Config) GetAPIBaseURL() string         { return c.APIBaseURL }
func (c *Config) GetHTTPTimeout() time.Duration { return c.HTTPTimeout }

// RateConfig implementation
func (c *Config) GetAPIRate() float64 { return c.APIRate }
func (c *Config) GetAPIBurst() int    { return c.APIBurst }

// PhoneConfig implementation
func (c *Config) GetPhoneRegion() string { return c.PhoneRegion }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:         getEnv("APP_ENV", "development"),
		APIBaseURL:  strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:5000"), "/"),
		HTTPTimeout: mustDuration(getEnv("HTTP_TIMEOUT", "10s")),
		APIRate:     mustFloat(getEnv("API_RATE", "10")),
		APIBurst:    mustInt(getEnv("API_BURST", "5")),
		PhoneRegion: getEnv("PHONE_REGION", "IN"),
	}

	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	if cfg.APIRate <= 0 {
		cfg.APIRate = 10
	}
	if cfg.APIBurst < 1 {
		cfg.APIBurst = 5
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}
