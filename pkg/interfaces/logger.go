package interfaces

import "context"

// Logger defines the leveled logging contract used across the converter.
// It mirrors github.com/goliatone/go-logger so that package can be plugged in
// through a thin adapter.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider exposes named loggers.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension for attaching persistent structured
// fields to a logger. Implementations return a new logger carrying the fields.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
