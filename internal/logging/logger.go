package logging

import (
	"fmt"

	"github.com/mikey/spam-detector/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogger initializes a logger based on configuration. Output goes to logging.file
// when set and to stderr otherwise.
func InitLogger(cfg *config.Config) (*zap.Logger, error) {
	logCfg := cfg.GetLogging()

	var logConfig zap.Config
	if logCfg.Format == "json" {
		logConfig = zap.NewProductionConfig()
	} else {
		logConfig = zap.NewDevelopmentConfig()
		if logCfg.File == "" {
			logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
	}
	logConfig.Level = zap.NewAtomicLevelAt(parseLevel(logCfg.Level))

	if logCfg.File != "" {
		logConfig.OutputPaths = []string{logCfg.File}
		logConfig.ErrorOutputPaths = []string{logCfg.File}
	} else {
		logConfig.OutputPaths = []string{"stderr"}
		logConfig.ErrorOutputPaths = []string{"stderr"}
	}

	logger, err := logConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger, nil
}

// InitTUILogger initializes a logger that never writes to the terminal the UI is drawn
// on. Without logging.file every entry is discarded.
func InitTUILogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.GetLogging().File == "" {
		return zap.NewNop(), nil
	}
	return InitLogger(cfg)
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
