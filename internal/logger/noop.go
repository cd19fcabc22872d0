package logger

// NoOpLogger is a logger that does nothing. Used in tests and as the
// default when no logger is injected.
type NoOpLogger struct{}

// NewNoOp creates a new no-op logger instance.
func NewNoOp() Interface {
	return &NoOpLogger{}
}

// Debug does nothing.
func (l *NoOpLogger) Debug(msg string, fields ...any) {}

// Info does nothing.
func (l *NoOpLogger) Info(msg string, fields ...any) {}

// Warn does nothing.
func (l *NoOpLogger) Warn(msg string, fields ...any) {}

// Error does nothing.
func (l *NoOpLogger) Error(msg string, fields ...any) {}

// Notify does nothing.
func (l *NoOpLogger) Notify(msg string, fields ...any) {}

// Exc does nothing.
func (l *NoOpLogger) Exc(err error, msg string, fields ...any) {}

// With returns the same no-op logger.
func (l *NoOpLogger) With(fields ...any) Interface {
	return l
}

// WithComponent returns the same no-op logger.
func (l *NoOpLogger) WithComponent(component string) Interface {
	return l
}
