package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// --- defaults ---

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.APIKey, "no default credential")
	assert.Equal(t, "https://api.mediaforge.dev", cfg.BaseURL)
	assert.Equal(t, "mf-video-1", cfg.VideoModel)
	assert.Equal(t, 10*time.Second, cfg.PollInterval)
	assert.Equal(t, 30, cfg.MaxPollAttempts)
}

// --- Load precedence ---

func TestLoader_Load_DefaultsOnly(t *testing.T) {
	t.Setenv(EnvPrefix+"_API_KEY", "env-key")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, Default().BaseURL, cfg.BaseURL)
}

func TestLoader_Load_YAMLOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
api_key: file-key
base_url: https://staging.mediaforge.dev
poll_interval: 2s
max_poll_attempts: 5
log:
  level: debug
`)

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "https://staging.mediaforge.dev", cfg.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, 5, cfg.MaxPollAttempts)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Untouched fields keep their defaults.
	assert.Equal(t, Default().VideoModel, cfg.VideoModel)
}

func TestLoader_Load_EnvOverridesYAML(t *testing.T) {
	path := writeConfigFile(t, `
api_key: file-key
poll_interval: 2s
`)
	t.Setenv(EnvPrefix+"_API_KEY", "env-key")
	t.Setenv(EnvPrefix+"_POLL_INTERVAL", "500ms")
	t.Setenv(EnvPrefix+"_RATE_PER_SECOND", "7.5")

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, 500*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 7.5, cfg.RatePerSecond)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) *Loader
		wantErr string
	}{
		{
			name: "missing file",
			setup: func(t *testing.T) *Loader {
				return NewLoader().WithConfigPath(filepath.Join(t.TempDir(), "nope.yaml"))
			},
			wantErr: "read config file",
		},
		{
			name: "malformed yaml",
			setup: func(t *testing.T) *Loader {
				return NewLoader().WithConfigPath(writeConfigFile(t, "api_key: [broken"))
			},
			wantErr: "parse config file",
		},
		{
			name: "missing credential",
			setup: func(t *testing.T) *Loader {
				return NewLoader().WithConfigPath(writeConfigFile(t, "base_url: https://x.example"))
			},
			wantErr: "api_key is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.setup(t).Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// --- Validate ---

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty api key",
			mutate:  func(c *Config) { c.APIKey = "" },
			wantErr: "api_key is required",
		},
		{
			name:    "empty base url",
			mutate:  func(c *Config) { c.BaseURL = "" },
			wantErr: "base_url must not be empty",
		},
		{
			name:    "zero poll interval",
			mutate:  func(c *Config) { c.PollInterval = 0 },
			wantErr: "poll_interval must be positive",
		},
		{
			name:    "negative poll attempts",
			mutate:  func(c *Config) { c.MaxPollAttempts = -1 },
			wantErr: "max_poll_attempts must be positive",
		},
		{
			name:    "zero request timeout",
			mutate:  func(c *Config) { c.RequestTimeout = 0 },
			wantErr: "request_timeout must be positive",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.APIKey = "key"
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_HasCredential(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.HasCredential())
	cfg.APIKey = "key"
	assert.True(t, cfg.HasCredential())
}
