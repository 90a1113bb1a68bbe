package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-wp2md/internal/logging"
	"github.com/goliatone/go-wp2md/pkg/interfaces"
)

// TelemetryStatus captures the result category for command execution.
type TelemetryStatus string

const (
	// TelemetryStatusSuccess indicates the command completed without errors.
	TelemetryStatusSuccess TelemetryStatus = "success"
	// TelemetryStatusFailed indicates the command execution returned an error.
	TelemetryStatusFailed TelemetryStatus = "failed"
	// TelemetryStatusContextError indicates execution failed due to context cancellation or deadline.
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes a command execution outcome provided to telemetry callbacks.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry represents an optional callback invoked after command execution.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry returns a telemetry callback that logs command outcomes with
// the logger the handler prepared, or the supplied fallback.
func DefaultTelemetry[T command.Message](fallback interfaces.Logger) Telemetry[T] {
	fallback = EnsureLogger(fallback)
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := info.Logger
		if entry == nil {
			entry = fallback
			entry = logging.WithFields(entry, info.Fields)
		}
		args := []any{"duration_ms", info.Duration.Milliseconds()}
		switch info.Status {
		case TelemetryStatusSuccess:
			entry.Info("command.execute.success", args...)
		case TelemetryStatusContextError:
			entry.Error("command.execute.context_error", append(args, "error", info.Error)...)
		default:
			entry.Error("command.execute.failed", append(args, "error", info.Error)...)
		}
	}
}

// CommandObserver receives the outcome of every command execution.
type CommandObserver interface {
	ObserveCommand(command, status string, duration time.Duration)
}

// ObservedTelemetry reports each execution to observer and then delegates to
// next, which may be nil.
func ObservedTelemetry[T command.Message](observer CommandObserver, next Telemetry[T]) Telemetry[T] {
	return func(ctx context.Context, msg T, info TelemetryInfo) {
		if observer != nil {
			observer.ObserveCommand(info.Command, string(info.Status), info.Duration)
		}
		if next != nil {
			next(ctx, msg, info)
		}
	}
}
