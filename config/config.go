// Package config holds the plugin configuration and its loader.
//
// The credential and every tunable are threaded explicitly through
// constructors; nothing is mirrored into the process environment.
// Precedence: defaults, then YAML file, then AGENTFLOW_MEDIA_* environment
// variables.
package config

import (
	"fmt"
	"time"
)

// Config is the complete configuration for the media plugin.
type Config struct {
	// APIKey is the credential for the remote generation service. Required.
	APIKey string `yaml:"api_key"`

	// BaseURL is the root of the remote generation API.
	BaseURL string `yaml:"base_url"`

	// VideoModel selects the remote video generation model.
	VideoModel string `yaml:"video_model"`

	// CacheDir is where downloaded videos are written. Created if absent.
	CacheDir string `yaml:"cache_dir"`

	// RequestTimeout bounds each individual outbound HTTP call.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// PollInterval is the fixed delay between video status polls.
	PollInterval time.Duration `yaml:"poll_interval"`

	// MaxPollAttempts bounds the video poll loop.
	MaxPollAttempts int `yaml:"max_poll_attempts"`

	// StatusAddr is the listen address of the status service.
	StatusAddr string `yaml:"status_addr"`

	// RatePerSecond limits outbound API calls.
	RatePerSecond float64 `yaml:"rate_per_second"`

	// Log configures the plugin logger.
	Log LogConfig `yaml:"log"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level: debug, info, warn, error.
	Level string `yaml:"level"`
	// Development enables human-friendly console output.
	Development bool `yaml:"development"`
}

// Default returns the built-in defaults. APIKey has no default.
func Default() Config {
	return Config{
		BaseURL:         "https://api.mediaforge.dev",
		VideoModel:      "mf-video-1",
		CacheDir:        "cache/videos",
		RequestTimeout:  60 * time.Second,
		PollInterval:    10 * time.Second,
		MaxPollAttempts: 30,
		StatusAddr:      ":8741",
		RatePerSecond:   2,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}
	if c.MaxPollAttempts <= 0 {
		return fmt.Errorf("max_poll_attempts must be positive, got %d", c.MaxPollAttempts)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// HasCredential reports whether the API credential is configured.
func (c *Config) HasCredential() bool {
	return c.APIKey != ""
}
