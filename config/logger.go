package config

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a zap logger from the log configuration.
func (lc LogConfig) NewLogger() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if lc.Level != "" {
		if parsed, err := zapcore.ParseLevel(lc.Level); err == nil {
			level = parsed
		}
	}

	var zcfg zap.Config
	if lc.Development {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	return zcfg.Build()
}
