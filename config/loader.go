package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "AGENTFLOW_MEDIA"

// Loader loads configuration with defaults → YAML file → env precedence.
type Loader struct {
	configPath string
}

// NewLoader creates a configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// WithConfigPath sets the YAML file to load. Optional.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// Load produces the final configuration. The result is validated.
func (l *Loader) Load() (Config, error) {
	cfg := Default()

	if l.configPath != "" {
		data, err := os.ReadFile(l.configPath)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", l.configPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", l.configPath, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides fields from AGENTFLOW_MEDIA_* variables.
func applyEnv(cfg *Config) {
	setString(&cfg.APIKey, "API_KEY")
	setString(&cfg.BaseURL, "BASE_URL")
	setString(&cfg.VideoModel, "VIDEO_MODEL")
	setString(&cfg.CacheDir, "CACHE_DIR")
	setString(&cfg.StatusAddr, "STATUS_ADDR")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setBool(&cfg.Log.Development, "LOG_DEVELOPMENT")
	setDuration(&cfg.RequestTimeout, "REQUEST_TIMEOUT")
	setDuration(&cfg.PollInterval, "POLL_INTERVAL")
	setInt(&cfg.MaxPollAttempts, "MAX_POLL_ATTEMPTS")
	setFloat(&cfg.RatePerSecond, "RATE_PER_SECOND")
}

func envVal(key string) (string, bool) {
	return os.LookupEnv(EnvPrefix + "_" + key)
}

func setString(dst *string, key string) {
	if v, ok := envVal(key); ok {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v, ok := envVal(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setInt(dst *int, key string) {
	if v, ok := envVal(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v, ok := envVal(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, ok := envVal(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
