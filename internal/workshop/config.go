package workshop

import (
	"os"
	"strconv"
)

// Config holds settings for the agenda collaborator.
type Config struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	APIKey     string
	Model      string
	TimeoutMs  int
	MaxRetries int
}

// DefaultConfig returns a Config with sensible defaults.
// Generation is disabled until an endpoint and credential are supplied.
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		LogCalls:   false,
		Endpoint:   "",
		APIKey:     "",
		Model:      "agenda-v1",
		TimeoutMs:  15000,
		MaxRetries: 1,
	}
}

// LoadConfig reads collaborator configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("STUDIOOPS_AGENDA_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("STUDIOOPS_AGENDA_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("STUDIOOPS_AGENDA_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("STUDIOOPS_AGENDA_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("STUDIOOPS_AGENDA_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("STUDIOOPS_AGENDA_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("STUDIOOPS_AGENDA_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	return cfg
}

// Configured reports whether the collaborator can actually be called.
func (c Config) Configured() bool {
	return c.Enabled && c.Endpoint != "" && c.APIKey != ""
}
