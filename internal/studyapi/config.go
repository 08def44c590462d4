package studyapi

import (
	"fmt"
	"os"
	"time"
)

// Config holds all generation-backend client configuration.
type Config struct {
	// Backend selects which client implementation to use.
	// Values: "http", "mock"
	Backend string

	// BaseURL is the root of the course platform API,
	// e.g. "https://csxl.unc.edu".
	BaseURL string

	// BearerToken is the ephemeral credential attached to every request.
	// Owned by the authentication collaborator; never persisted here.
	BearerToken string

	// Timeout is the maximum duration for a single backend request
	// (excluding retries). Default: 30s.
	Timeout time.Duration

	Retry RetryConfig
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend: "http",
		BaseURL: "http://localhost:8000",
		Timeout: 30 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if b := os.Getenv("STUDYBUDDY_BACKEND"); b != "" {
		cfg.Backend = b
	}
	if u := os.Getenv("STUDYBUDDY_BASE_URL"); u != "" {
		cfg.BaseURL = u
	}
	if t := os.Getenv("STUDYBUDDY_TOKEN"); t != "" {
		cfg.BearerToken = t
	}
	if d := os.Getenv("STUDYBUDDY_TIMEOUT"); d != "" {
		if parsed, err := time.ParseDuration(d); err == nil {
			cfg.Timeout = parsed
		}
	}

	return cfg
}

// Validate checks that the selected backend has its required settings.
func (c Config) Validate() error {
	switch c.Backend {
	case "http":
		if c.BaseURL == "" {
			return fmt.Errorf("STUDYBUDDY_BASE_URL is required for the http backend")
		}
	case "mock":
		// No settings needed.
	default:
		return fmt.Errorf("unknown backend: %q", c.Backend)
	}
	return nil
}
