package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a sugared zap logger for structured key/value logging.
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger builds a console logger. Verbose enables debug level output;
// otherwise only info and above is emitted.
func NewLogger(verbose bool) *Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		// Development config only fails on invalid options; fall back to
		// a no-op logger rather than aborting the command.
		return &Logger{zap.NewNop().Sugar()}
	}

	return &Logger{logger.Sugar()}
}
