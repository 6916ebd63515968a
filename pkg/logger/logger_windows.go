//go:build windows

package logger

import (
	"fmt"

	"golang.org/x/sys/windows/svc/eventlog"
)

// Event IDs for Windows Event Log entries.
const (
	EventIDInfo    uint32 = 1
	EventIDWarning uint32 = 2
	EventIDError   uint32 = 3
)

// EventLogWriter is the subset of *eventlog.Log used by EventLogger.
type EventLogWriter interface {
	Info(eid uint32, msg string) error
	Warning(eid uint32, msg string) error
	Error(eid uint32, msg string) error
	Close() error
}

// eventLogOpener opens the named event source; replaced in tests.
var eventLogOpener = func(sourceName string) (EventLogWriter, error) {
	l, err := eventlog.Open(sourceName)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// EventLogger writes log messages to Windows Event Log.
// The event source must be registered via RegisterEventSource
// before creating an EventLogger.
type EventLogger struct {
	log   EventLogWriter
	level Level
}

// NewEventLogger creates a logger that writes to Windows Event Log.
// sourceName is the Event Log source (typically the service name).
func NewEventLogger(sourceName string) (*EventLogger, error) {
	elog, err := eventLogOpener(sourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}
	return NewEventLoggerWithWriter(elog), nil
}

// NewEventLoggerWithWriter creates an EventLogger over an existing writer.
func NewEventLoggerWithWriter(w EventLogWriter) *EventLogger {
	return &EventLogger{log: w, level: LevelInfo}
}

// Info logs an informational message to Windows Event Log.
func (e *EventLogger) Info(format string, args ...interface{}) {
	// Write errors are ignored; logging must never fail the caller.
	_ = e.log.Info(EventIDInfo, fmt.Sprintf(format, args...))
}

// Warning logs a warning message to Windows Event Log.
func (e *EventLogger) Warning(format string, args ...interface{}) {
	_ = e.log.Warning(EventIDWarning, fmt.Sprintf(format, args...))
}

// Error logs an error message to Windows Event Log.
func (e *EventLogger) Error(format string, args ...interface{}) {
	_ = e.log.Error(EventIDError, fmt.Sprintf(format, args...))
}

// ErrorFields logs an error entry; fields are appended as key=value pairs.
func (e *EventLogger) ErrorFields(err error, fields Fields, format string, args ...interface{}) {
	_ = e.log.Error(EventIDError, formatEntry(err, fields, format, args...))
}

// Enabled reports whether level is info or above.
func (e *EventLogger) Enabled(level Level) bool {
	return level >= e.level
}

// Close releases the Windows Event Log handle.
func (e *EventLogger) Close() error {
	if e.log != nil {
		return e.log.Close()
	}
	return nil
}

// RegisterEventSource registers name as an event source of the Application log.
func RegisterEventSource(name string) error {
	return eventlog.InstallAsEventCreate(name, eventlog.Error|eventlog.Warning|eventlog.Info)
}

// RemoveEventSource deletes the registration made by RegisterEventSource.
func RemoveEventSource(name string) error {
	return eventlog.Remove(name)
}

func isNilPlatform(l Logger) bool {
	e, ok := l.(*EventLogger)
	return ok && e == nil
}

// Ensure EventLogger satisfies the Logger interface.
var _ Logger = (*EventLogger)(nil)
