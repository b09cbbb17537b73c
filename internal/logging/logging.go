// Package logging decouples the application from the underlying logging
// framework. The pipeline packages log through the Logger interface; the
// logrus-backed implementation lives in this package as well.
package logging

// Field is a key-value pair attached to a structured log message.
type Field struct {
	Key   string
	Value interface{}
}

// Logger is the structured logging interface used throughout the application.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached.
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached.
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached.
	WithFields(fields ...Field) Logger
}
