package wp2mdcmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-wp2md/internal/commands"
	"github.com/goliatone/go-wp2md/internal/export"
	"github.com/goliatone/go-wp2md/internal/logging"
	"github.com/goliatone/go-wp2md/internal/markdown"
	"github.com/goliatone/go-wp2md/internal/runtimeconfig"
	"github.com/goliatone/go-wp2md/internal/stats"
	"github.com/goliatone/go-wp2md/pkg/interfaces"
)

const (
	createOperation  = "wp2md.create"
	statsOperation   = "wp2md.stats"
	previewOperation = "wp2md.preview"

	// TextCodeItemsFailed marks a create run in which at least one item failed.
	TextCodeItemsFailed = "ITEMS_FAILED"
)

var (
	_ command.Commander[CreateCommand]  = (*CreateHandler)(nil)
	_ command.Commander[StatsCommand]   = (*StatsHandler)(nil)
	_ command.Commander[PreviewCommand] = (*PreviewHandler)(nil)
)

// IsItemsFailed reports whether err signals per-item failures in a create run
// that otherwise completed.
func IsItemsFailed(err error) bool {
	var target *goerrors.Error
	return goerrors.As(err, &target) && target.TextCode == TextCodeItemsFailed
}

func itemsFailed(summary export.Summary) error {
	return goerrors.New(fmt.Sprintf("%d of %d items failed", summary.Failed, summary.Exported), goerrors.CategoryOperation).
		WithTextCode(TextCodeItemsFailed).
		WithMetadata(map[string]any{
			"source":    summary.Source,
			"failed":    summary.Failed,
			"exported":  summary.Exported,
			"outputDir": summary.OutputDir,
		})
}

// SummaryObserver receives the summary of every completed create run.
type SummaryObserver interface {
	ObserveSummary(summary export.Summary)
}

// CreateHandler runs the create pipeline and prints the run summary.
type CreateHandler struct {
	inner      *commands.Handler[CreateCommand]
	summary    export.Summary
	observer   SummaryObserver
	exportOpts []export.Option
}

// NewCreateHandler binds a create handler to the base configuration. Message
// fields override the configuration for a single run.
func NewCreateHandler(cfg runtimeconfig.Config, out io.Writer, logger interfaces.Logger, opts ...commands.HandlerOption[CreateCommand]) *CreateHandler {
	baseLogger := commands.EnsureLogger(logger)
	out = ensureWriter(out)
	h := &CreateHandler{}

	exec := func(ctx context.Context, msg CreateCommand) error {
		runCfg := applyCreate(cfg, msg)
		if err := runCfg.Validate(); err != nil {
			return commands.ConfigError(err)
		}

		service := export.NewService(runCfg, serviceOptions(baseLogger, h.exportOpts)...)
		summary, err := service.Create(ctx, msg.Source)
		if err != nil {
			return err
		}
		h.summary = summary
		if h.observer != nil {
			h.observer.ObserveSummary(summary)
		}

		for _, itemErr := range summary.Errors {
			fmt.Fprintln(out, itemErr.Error())
		}
		fmt.Fprintln(out, summary.String())

		logging.WithFields(baseLogger, map[string]any{
			"exported":   summary.Exported,
			"skipped":    summary.Skipped,
			"failed":     summary.Failed,
			"collisions": summary.Collisions,
		}).Info("wp2md.command.create.completed")

		if summary.HasFailures() {
			return itemsFailed(summary)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CreateCommand]{
		commands.WithLogger[CreateCommand](baseLogger),
		commands.WithOperation[CreateCommand](createOperation),
		commands.WithMessageFields(func(msg CreateCommand) map[string]any {
			fields := map[string]any{
				"source":     msg.Source,
				"output_dir": msg.OutputDir,
			}
			if msg.LowercaseTags {
				fields["lowercase_tags"] = true
			}
			if msg.IncludeDrafts {
				fields["include_drafts"] = true
			}
			if msg.Shortcodes != "" {
				fields["shortcodes"] = msg.Shortcodes
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CreateCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)
	h.inner = commands.NewHandler(exec, handlerOpts...)
	return h
}

// Execute satisfies command.Commander[CreateCommand].
func (h *CreateHandler) Execute(ctx context.Context, msg CreateCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Summary returns the summary of the most recent completed run.
func (h *CreateHandler) Summary() export.Summary {
	return h.summary
}

// StatsHandler prints the statistics report for a WXR file.
type StatsHandler struct {
	inner        *commands.Handler[StatsCommand]
	readerLogger interfaces.Logger
}

// NewStatsHandler constructs a stats handler writing its report to out.
func NewStatsHandler(cfg runtimeconfig.Config, out io.Writer, logger interfaces.Logger, opts ...commands.HandlerOption[StatsCommand]) *StatsHandler {
	baseLogger := commands.EnsureLogger(logger)
	out = ensureWriter(out)
	h := &StatsHandler{}

	exec := func(ctx context.Context, msg StatsCommand) error {
		readerLogger := h.readerLogger
		if readerLogger == nil {
			readerLogger = baseLogger
		}
		report, err := stats.Run(ctx, msg.Source, stats.Options{
			LowercaseTags: cfg.LowercaseTags || msg.LowercaseTags,
			Logger:        readerLogger,
		})
		if err != nil {
			return err
		}
		return report.Render(out)
	}

	handlerOpts := []commands.HandlerOption[StatsCommand]{
		commands.WithLogger[StatsCommand](baseLogger),
		commands.WithOperation[StatsCommand](statsOperation),
		commands.WithMessageFields(func(msg StatsCommand) map[string]any {
			return map[string]any{"source": msg.Source}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[StatsCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)
	h.inner = commands.NewHandler(exec, handlerOpts...)
	return h
}

// Execute satisfies command.Commander[StatsCommand].
func (h *StatsHandler) Execute(ctx context.Context, msg StatsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// PreviewHandler prints a single converted item.
type PreviewHandler struct {
	inner      *commands.Handler[PreviewCommand]
	exportOpts []export.Option
}

// NewPreviewHandler constructs a preview handler. When renderer is nil the
// goldmark renderer with default options is used for HTML output.
func NewPreviewHandler(cfg runtimeconfig.Config, renderer interfaces.MarkdownRenderer, out io.Writer, logger interfaces.Logger, opts ...commands.HandlerOption[PreviewCommand]) *PreviewHandler {
	baseLogger := commands.EnsureLogger(logger)
	out = ensureWriter(out)
	if renderer == nil {
		renderer = markdown.NewGoldmarkRenderer(markdown.Options{})
	}
	h := &PreviewHandler{}

	exec := func(ctx context.Context, msg PreviewCommand) error {
		runCfg := cfg
		runCfg.LowercaseTags = cfg.LowercaseTags || msg.LowercaseTags
		if msg.Shortcodes != "" {
			runCfg.Shortcodes = msg.Shortcodes
		}

		service := export.NewService(runCfg, serviceOptions(baseLogger, h.exportOpts)...)
		doc, err := service.Preview(ctx, msg.Source, strings.TrimSpace(msg.Key))
		if err != nil {
			return err
		}
		rendered, err := doc.Render()
		if err != nil {
			return err
		}
		if msg.HTML {
			rendered, err = markdown.RenderDocument(renderer, rendered)
			if err != nil {
				return err
			}
		}
		_, err = out.Write(rendered)
		return err
	}

	handlerOpts := []commands.HandlerOption[PreviewCommand]{
		commands.WithLogger[PreviewCommand](baseLogger),
		commands.WithOperation[PreviewCommand](previewOperation),
		commands.WithMessageFields(func(msg PreviewCommand) map[string]any {
			fields := map[string]any{
				"source": msg.Source,
				"key":    msg.Key,
			}
			if msg.HTML {
				fields["html"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PreviewCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)
	h.inner = commands.NewHandler(exec, handlerOpts...)
	return h
}

// Execute satisfies command.Commander[PreviewCommand].
func (h *PreviewHandler) Execute(ctx context.Context, msg PreviewCommand) error {
	return h.inner.Execute(ctx, msg)
}

func applyCreate(cfg runtimeconfig.Config, msg CreateCommand) runtimeconfig.Config {
	if dir := strings.TrimSpace(msg.OutputDir); dir != "" {
		cfg.OutputDir = dir
	}
	cfg.LowercaseTags = cfg.LowercaseTags || msg.LowercaseTags
	cfg.IncludeDrafts = cfg.IncludeDrafts || msg.IncludeDrafts
	if msg.Shortcodes != "" {
		cfg.Shortcodes = msg.Shortcodes
	}
	return cfg
}

// serviceOptions defaults the service logger to the command logger; extra
// options apply afterwards and may replace it.
func serviceOptions(logger interfaces.Logger, extra []export.Option) []export.Option {
	opts := make([]export.Option, 0, len(extra)+1)
	opts = append(opts, export.WithLogger(logger))
	return append(opts, extra...)
}

func ensureWriter(out io.Writer) io.Writer {
	if out == nil {
		return io.Discard
	}
	return out
}
