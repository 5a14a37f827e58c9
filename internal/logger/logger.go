package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/cinelingo/internal/config"
)

// New builds a logger for cfg. Output goes to cfg.Log.File because the
// terminal belongs to the UI; without a file the logger discards
// everything.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Log.File == "" {
		return zap.NewNop(), nil
	}

	zc := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{cfg.Log.File}
	zc.ErrorOutputPaths = []string{cfg.Log.File}

	return zc.Build()
}
