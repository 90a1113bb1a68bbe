package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-wp2md/pkg/interfaces"
)

type testMessage struct{}

func (testMessage) Type() string { return "wp2md.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "wp2md.test.invalid" }

func (invalidMessage) Validate() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return errors.New("boom")
	})

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestHandlerPreservesCategorisedErrors(t *testing.T) {
	original := goerrors.New("bad export", goerrors.CategoryBadInput).WithTextCode("WXR_MALFORMED_INPUT")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return original
	})

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryBadInput) {
		t.Fatalf("expected bad input category to survive, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerReportsTelemetry(t *testing.T) {
	var got TelemetryInfo
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return nil
	},
		WithOperation[testMessage]("wp2md.test"),
		WithMessageFields[testMessage](func(testMessage) map[string]any { return map[string]any{"source": "site.xml"} }),
		WithTelemetry[testMessage](func(_ context.Context, _ testMessage, info TelemetryInfo) { got = info }),
	)

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.Status != TelemetryStatusSuccess || got.Command != "wp2md.test.message" || got.Operation != "wp2md.test" {
		t.Fatalf("unexpected telemetry %+v", got)
	}
	if got.Fields["source"] != "site.xml" {
		t.Fatalf("expected message fields in telemetry, got %v", got.Fields)
	}
}

func TestConfigError(t *testing.T) {
	err := ConfigError(errors.New("output directory is required"))
	if !IsConfigError(err) || !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected config validation error, got %v", err)
	}
	if ConfigError(nil) != nil {
		t.Fatal("expected nil passthrough")
	}
}

type recordingObserver struct {
	command string
	status  string
}

func (r *recordingObserver) ObserveCommand(command, status string, _ time.Duration) {
	r.command = command
	r.status = status
}

func TestObservedTelemetryForwardsOutcome(t *testing.T) {
	observer := &recordingObserver{}
	nextCalled := false
	h := NewHandler[testMessage](
		func(context.Context, testMessage) error { return errors.New("boom") },
		WithTelemetry[testMessage](ObservedTelemetry[testMessage](observer, func(context.Context, testMessage, TelemetryInfo) {
			nextCalled = true
		})),
	)

	if err := h.Execute(context.Background(), testMessage{}); err == nil {
		t.Fatal("expected error")
	}
	if observer.command != "wp2md.test.message" || observer.status != string(TelemetryStatusFailed) {
		t.Fatalf("unexpected observation %+v", observer)
	}
	if !nextCalled {
		t.Fatal("expected next telemetry to run")
	}
}

type fieldsRecorder struct {
	fields map[string]any
	levels []string
}

func (r *fieldsRecorder) Trace(string, ...any) {}
func (r *fieldsRecorder) Debug(string, ...any) {}
func (r *fieldsRecorder) Info(string, ...any)  { r.levels = append(r.levels, "info") }
func (r *fieldsRecorder) Warn(string, ...any)  {}
func (r *fieldsRecorder) Error(string, ...any) { r.levels = append(r.levels, "error") }
func (r *fieldsRecorder) Fatal(string, ...any) {}

func (r *fieldsRecorder) WithContext(context.Context) interfaces.Logger { return r }

func (r *fieldsRecorder) WithFields(fields map[string]any) interfaces.Logger {
	r.fields = fields
	return r
}

func TestDefaultTelemetryAttachesFieldsToFallback(t *testing.T) {
	fallback := &fieldsRecorder{}
	telemetry := DefaultTelemetry[testMessage](fallback)

	telemetry(context.Background(), testMessage{}, TelemetryInfo{
		Command: "wp2md.test.message",
		Fields:  map[string]any{"source": "site.xml"},
		Status:  TelemetryStatusFailed,
		Error:   errors.New("boom"),
	})

	if fallback.fields["source"] != "site.xml" {
		t.Fatalf("expected message fields on fallback logger, got %v", fallback.fields)
	}
	if len(fallback.levels) != 1 || fallback.levels[0] != "error" {
		t.Fatalf("expected one error entry, got %v", fallback.levels)
	}
}
