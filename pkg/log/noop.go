package log

// NoopLogger drops every message. It is the handle's default logger, so
// callers that configure nothing get silence instead of nil checks.
type NoopLogger struct{}

// NewNoopLogger returns a logger that discards all output.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

// Debug is a no-op.
func (NoopLogger) Debug(msg string, fields ...Field) {}

// Info is a no-op.
func (NoopLogger) Info(msg string, fields ...Field) {}

// Warn is a no-op.
func (NoopLogger) Warn(msg string, fields ...Field) {}

// Error is a no-op.
func (NoopLogger) Error(msg string, fields ...Field) {}
