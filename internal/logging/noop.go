package logging

// NoopLogger discards every message. Tests use it where log output is noise.
type NoopLogger struct{}

// NewNoopLogger returns a Logger that does nothing.
func NewNoopLogger() Logger {
	return &NoopLogger{}
}

func (n *NoopLogger) Debug(msg string, fields ...Field)                {}
func (n *NoopLogger) Info(msg string, fields ...Field)                 {}
func (n *NoopLogger) Warn(msg string, fields ...Field)                 {}
func (n *NoopLogger) Error(msg string, fields ...Field)                {}
func (n *NoopLogger) WithError(err error) Logger                       { return n }
func (n *NoopLogger) WithField(key string, value interface{}) Logger   { return n }
func (n *NoopLogger) WithFields(fields ...Field) Logger                { return n }
