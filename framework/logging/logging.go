// Package logging builds the application's zap logger from configuration.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/km-arc/go-ioc/framework/config"
)

// New creates a structured logger appropriate for the environment.
// Production uses JSON output, every other environment uses console output.
// The level comes from LOG_LEVEL.
func New(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	var zc zap.Config
	switch cfg.App.Env {
	case "production":
		zc = zap.NewProductionConfig()
	case "testing":
		zc = zap.NewDevelopmentConfig()
		zc.OutputPaths = []string{"stderr"}
		zc.DisableStacktrace = true
	default:
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build(zap.Fields(zap.String("app", cfg.App.Name)))
	if err != nil {
		return nil, fmt.Errorf("logging: failed to create logger: %w", err)
	}
	return logger, nil
}
