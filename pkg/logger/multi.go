package logger

// MultiLogger broadcasts log messages to multiple Logger backends.
// Useful for logging to both console and Windows Event Log simultaneously.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a logger that writes to all provided backends.
// Nil backends, including typed nil pointers accepted by OrNop, are skipped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if !isNil(l) {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

// Info logs an informational message to all backends.
func (m *MultiLogger) Info(format string, args ...interface{}) {
	for _, l := range m.loggers {
		l.Info(format, args...)
	}
}

// Warning logs a warning message to all backends.
func (m *MultiLogger) Warning(format string, args ...interface{}) {
	for _, l := range m.loggers {
		l.Warning(format, args...)
	}
}

// Error logs an error message to all backends.
func (m *MultiLogger) Error(format string, args ...interface{}) {
	for _, l := range m.loggers {
		l.Error(format, args...)
	}
}

// ErrorFields logs a structured error entry to all backends.
func (m *MultiLogger) ErrorFields(err error, fields Fields, format string, args ...interface{}) {
	for _, l := range m.loggers {
		l.ErrorFields(err, fields, format, args...)
	}
}

// Enabled reports whether any backend emits entries at level.
func (m *MultiLogger) Enabled(level Level) bool {
	for _, l := range m.loggers {
		if l.Enabled(level) {
			return true
		}
	}
	return false
}

// Close closes all logger backends.
// Returns the first error encountered, but attempts to close all loggers.
func (m *MultiLogger) Close() error {
	var firstErr error
	for _, l := range m.loggers {
		if err := l.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Ensure MultiLogger satisfies the Logger interface.
var _ Logger = (*MultiLogger)(nil)
