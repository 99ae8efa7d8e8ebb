// Package logger holds the process-wide zap logger.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// LogLevel represents the logging level
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// Init initializes the logger with the specified configuration. Outputs
// replace the default stderr sink, e.g. a file while a TUI owns the terminal.
func Init(development bool, level LogLevel, outputs ...string) error {
	var config zap.Config
	if development {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))
	if len(outputs) > 0 {
		config.OutputPaths = outputs
		config.ErrorOutputPaths = outputs
	}

	l, err := config.Build()
	if err != nil {
		return err
	}
	log = l
	return nil
}

func parseLevel(level LogLevel) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Get returns the logger instance. It is a no-op logger until Init runs.
func Get() *zap.Logger {
	return log
}

// Sync flushes any buffered log entries
func Sync() error {
	return log.Sync()
}
