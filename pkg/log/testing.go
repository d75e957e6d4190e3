package log

import (
	"bytes"
	"context"
	"fmt"
	"strings"
)

// TestLogger is a Logger implementation for tests. It captures all records
// in an in-memory buffer for later inspection.
type TestLogger struct {
	buffer *bytes.Buffer
	level  Level
	fields []any
}

// NewTestLogger creates a TestLogger with the given minimum level and
// returns it together with the buffer holding its output.
//
//	logger, buffer := log.NewTestLogger(log.LevelDebug)
//	logger.Info("fill completed", "method", "mean")
//	// assert on buffer.String()
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	buffer := &bytes.Buffer{}
	return &TestLogger{buffer: buffer, level: level}, buffer
}

func (t *TestLogger) Debug(msg string, fields ...any) {
	if t.level <= LevelDebug {
		t.writeLog("DEBUG", msg, fields...)
	}
}

func (t *TestLogger) Info(msg string, fields ...any) {
	if t.level <= LevelInfo {
		t.writeLog("INFO", msg, fields...)
	}
}

func (t *TestLogger) Warn(msg string, fields ...any) {
	if t.level <= LevelWarn {
		t.writeLog("WARN", msg, fields...)
	}
}

func (t *TestLogger) Error(msg string, fields ...any) {
	if t.level <= LevelError {
		t.writeLog("ERROR", msg, fields...)
	}
}

func (t *TestLogger) With(fields ...any) Logger {
	child := &TestLogger{buffer: t.buffer, level: t.level}
	child.fields = append(append([]any{}, t.fields...), fields...)
	return child
}

func (t *TestLogger) Enabled(_ context.Context, level Level) bool {
	return level >= t.level
}

func (t *TestLogger) writeLog(level, msg string, fields ...any) {
	var sb strings.Builder
	sb.WriteString(level)
	sb.WriteString(" ")
	sb.WriteString(msg)

	all := append(append([]any{}, t.fields...), fields...)
	for i := 0; i+1 < len(all); i += 2 {
		sb.WriteString(fmt.Sprintf(" %v=%v", all[i], all[i+1]))
	}
	sb.WriteString("\n")
	t.buffer.WriteString(sb.String())
}
