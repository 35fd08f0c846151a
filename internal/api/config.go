package api

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// DefaultBaseURL is where a locally running question bank listens.
const DefaultBaseURL = "http://localhost:8000/api/v1"

// Config holds the question bank client configuration.
type Config struct {
	// BaseURL is the API root, including the version prefix.
	BaseURL string

	// Timeout bounds a single HTTP exchange. Default: 15s.
	Timeout time.Duration

	Retry RetryConfig
}

// RetryConfig configures retries of idempotent requests on transient failures.
// MaxAttempts of 1 disables retrying.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: 15 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if u := os.Getenv("IQB_API_URL"); u != "" {
		cfg.BaseURL = u
	}

	if t := os.Getenv("IQB_TIMEOUT"); t != "" {
		d, err := parseTimeout(t)
		if err != nil {
			return cfg, fmt.Errorf("IQB_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	if r := os.Getenv("IQB_RETRIES"); r != "" {
		n, err := strconv.Atoi(r)
		if err != nil {
			return cfg, fmt.Errorf("IQB_RETRIES=%q is not an integer", r)
		}
		cfg.Retry.MaxAttempts = n
	}

	return cfg, nil
}

// parseTimeout accepts a Go duration ("10s") or a bare number of seconds.
func parseTimeout(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid duration", s)
	}
	return d, nil
}

// Validate checks that the configuration can produce a working client.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL %q must use http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base URL %q has no host", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}
