//go:build !windows

package logger

import "errors"

// ErrEventLogUnsupported is returned by event log operations outside Windows.
var ErrEventLogUnsupported = errors.New("windows event log is not available on this platform")

// NewEventLogger is unavailable outside Windows.
func NewEventLogger(sourceName string) (Logger, error) {
	return nil, ErrEventLogUnsupported
}

// RegisterEventSource is unavailable outside Windows.
func RegisterEventSource(name string) error {
	return ErrEventLogUnsupported
}

// RemoveEventSource is unavailable outside Windows.
func RemoveEventSource(name string) error {
	return ErrEventLogUnsupported
}

func isNilPlatform(l Logger) bool {
	return false
}
