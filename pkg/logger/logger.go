// Package logger provides the logging interface used across scctl.
// It supports console/file output through logrus and, on Windows,
// the Windows Event Log.
package logger

import (
	"fmt"
	"sort"
	"strings"
)

// Level is the severity of a log entry.
type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

// String returns the lower-case level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", uint8(l))
	}
}

// ParseLevel converts a level name to a Level.
// Unknown names map to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarning
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Fields carries structured context attached to a log entry.
type Fields map[string]interface{}

// String renders the fields as space separated key=value pairs in key order.
func (f Fields) String() string {
	if len(f) == 0 {
		return ""
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, f[k]))
	}
	return strings.Join(parts, " ")
}

// Logger defines the interface for logging across all scctl components.
// Implementations may log to console, files or the Windows Event Log.
type Logger interface {
	// Info logs an informational message (e.g., "Service 'x' created.").
	Info(format string, args ...interface{})

	// Warning logs a warning message.
	Warning(format string, args ...interface{})

	// Error logs an error message.
	Error(format string, args ...interface{})

	// ErrorFields logs an error-level entry carrying err and structured fields.
	// err may be nil.
	ErrorFields(err error, fields Fields, format string, args ...interface{})

	// Enabled reports whether entries at level would be emitted.
	Enabled(level Level) bool

	// Close releases resources held by the logger (e.g., Windows Event Log handle).
	// Safe to call multiple times. Returns nil for loggers without resources.
	Close() error
}

// OrNop returns l, or a NopLogger when l is nil.
// A nil *LogrusLogger, *MultiLogger, *MockLogger or *EventLogger stored in
// the interface counts as nil. Other implementations must be passed as an
// untyped nil.
func OrNop(l Logger) Logger {
	if isNil(l) {
		return NewNopLogger()
	}
	return l
}

func isNil(l Logger) bool {
	switch v := l.(type) {
	case nil:
		return true
	case *LogrusLogger:
		return v == nil
	case *MultiLogger:
		return v == nil
	case *MockLogger:
		return v == nil
	}
	return isNilPlatform(l)
}

// formatEntry renders an error entry for backends without native field support.
func formatEntry(err error, fields Fields, format string, args ...interface{}) string {
	msg := fmt.Sprintf(format, args...)
	if err != nil {
		msg += ": " + err.Error()
	}
	if s := fields.String(); s != "" {
		msg += " [" + s + "]"
	}
	return msg
}

// NopLogger is a logger that discards all messages.
// Useful for testing or when logging should be disabled.
type NopLogger struct{}

// NewNopLogger creates a logger that discards all messages.
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

// Info discards the message.
func (n *NopLogger) Info(format string, args ...interface{}) {}

// Warning discards the message.
func (n *NopLogger) Warning(format string, args ...interface{}) {}

// Error discards the message.
func (n *NopLogger) Error(format string, args ...interface{}) {}

// ErrorFields discards the entry.
func (n *NopLogger) ErrorFields(err error, fields Fields, format string, args ...interface{}) {}

// Enabled always reports false.
func (n *NopLogger) Enabled(level Level) bool { return false }

// Close is a no-op.
func (n *NopLogger) Close() error {
	return nil
}

// Ensure implementations satisfy the Logger interface.
var (
	_ Logger = (*NopLogger)(nil)
	_ Logger = (*MockLogger)(nil)
)

// MockEntry is one structured error entry recorded by MockLogger.
type MockEntry struct {
	Message string
	Err     error
	Fields  Fields
}

// MockLogger implements Logger for testing purposes.
// It records all log calls for verification in tests.
type MockLogger struct {
	InfoCalls    []string
	WarningCalls []string
	ErrorCalls   []string
	Entries      []MockEntry
	CloseCalled  bool
	MinLevel     Level
}

// NewMockLogger creates a new MockLogger for testing.
func NewMockLogger() *MockLogger {
	return &MockLogger{
		InfoCalls:    make([]string, 0),
		WarningCalls: make([]string, 0),
		ErrorCalls:   make([]string, 0),
		MinLevel:     LevelDebug,
	}
}

// Info records the formatted message.
func (m *MockLogger) Info(format string, args ...interface{}) {
	m.InfoCalls = append(m.InfoCalls, fmt.Sprintf(format, args...))
}

// Warning records the formatted message.
func (m *MockLogger) Warning(format string, args ...interface{}) {
	m.WarningCalls = append(m.WarningCalls, fmt.Sprintf(format, args...))
}

// Error records the formatted message.
func (m *MockLogger) Error(format string, args ...interface{}) {
	m.ErrorCalls = append(m.ErrorCalls, fmt.Sprintf(format, args...))
}

// ErrorFields records the formatted message in ErrorCalls and the full entry in Entries.
func (m *MockLogger) ErrorFields(err error, fields Fields, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	m.ErrorCalls = append(m.ErrorCalls, msg)
	m.Entries = append(m.Entries, MockEntry{Message: msg, Err: err, Fields: fields})
}

// Enabled reports whether level is at or above MinLevel.
func (m *MockLogger) Enabled(level Level) bool {
	return level >= m.MinLevel
}

// Close records that Close was called.
func (m *MockLogger) Close() error {
	m.CloseCalled = true
	return nil
}
