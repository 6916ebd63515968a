package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// LogrusLogger writes to a logrus logger.
// Used when running as a console application.
type LogrusLogger struct {
	logger *logrus.Logger
	file   *os.File
}

// NewLogrusLogger creates a logger writing text entries with full timestamps to w.
func NewLogrusLogger(w io.Writer, level Level) *LogrusLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	l.SetLevel(logrusLevel(level))
	return &LogrusLogger{logger: l}
}

// NewFileLogger creates a LogrusLogger appending to the file at path.
func NewFileLogger(path string, level Level) (*LogrusLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	l := NewLogrusLogger(f, level)
	l.file = f
	return l, nil
}

func logrusLevel(level Level) logrus.Level {
	switch level {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarning:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Info logs an informational message.
func (l *LogrusLogger) Info(format string, args ...interface{}) {
	l.logger.Infof(format, args...)
}

// Warning logs a warning message.
func (l *LogrusLogger) Warning(format string, args ...interface{}) {
	l.logger.Warnf(format, args...)
}

// Error logs an error message.
func (l *LogrusLogger) Error(format string, args ...interface{}) {
	l.logger.Errorf(format, args...)
}

// ErrorFields logs an error entry with err and fields as logrus fields.
func (l *LogrusLogger) ErrorFields(err error, fields Fields, format string, args ...interface{}) {
	entry := l.logger.WithFields(logrus.Fields(fields))
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Errorf(format, args...)
}

// Enabled reports whether the logrus level admits level.
func (l *LogrusLogger) Enabled(level Level) bool {
	return l.logger.IsLevelEnabled(logrusLevel(level))
}

// Close closes the log file, if any.
func (l *LogrusLogger) Close() error {
	if l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil
	return f.Close()
}

var _ Logger = (*LogrusLogger)(nil)
