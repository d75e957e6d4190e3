// Package log provides structured logging for the Ames pipeline.
//
// It defines a minimal, slog-compatible Logger interface so that pipeline
// components receive their logger by injection instead of reaching for a
// process-wide default. Two implementations ship with the package: one on
// log/slog with a JSON handler that extracts cockroachdb/errors stack
// traces, and one on zerolog for callers that prefer its output format.
// A TestLogger captures output in memory for assertions.
//
// Example usage:
//
//	logger := log.NewZerologLogger(os.Stderr, log.LevelInfo).With(
//	    log.ComponentKey, "preprocessing",
//	)
//	logger.Info("outliers removed",
//	    log.OperationKey, "handle_outliers",
//	    log.SamplesKey, 1460,
//	)
package log

import (
	"context"
)

// Logger is a structured logging interface compatible with Go's log/slog.
//
// Fields are alternating key-value pairs, as in slog. With returns a child
// logger that includes the given fields on every record.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// When an error value appears among the fields under ErrAttrKey, the
	// slog implementation attaches its stack trace as a separate attribute.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, value-compatible with slog.Level.
type Level int

// Standard logging levels.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
