package wp2mdcmd

import (
	"io"

	"github.com/goliatone/go-wp2md/internal/commands"
	"github.com/goliatone/go-wp2md/internal/export"
	"github.com/goliatone/go-wp2md/internal/runtimeconfig"
	"github.com/goliatone/go-wp2md/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterCommands.
type HandlerSet struct {
	Create  *CreateHandler
	Stats   *StatsHandler
	Preview *PreviewHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

// Observer collects command and create run metrics.
type Observer interface {
	commands.CommandObserver
	SummaryObserver
}

type options struct {
	observer    Observer
	renderer    interfaces.MarkdownRenderer
	exportOpts  []export.Option
	statsLogger interfaces.Logger
	createOpts  []commands.HandlerOption[CreateCommand]
	statsOpts   []commands.HandlerOption[StatsCommand]
	previewOpts []commands.HandlerOption[PreviewCommand]
}

// WithRenderer overrides the Markdown renderer used by preview --html.
func WithRenderer(renderer interfaces.MarkdownRenderer) Option {
	return func(cfg *options) {
		cfg.renderer = renderer
	}
}

// WithExportOptions forwards options to the export service built by the
// create and preview handlers, such as a body converter or module loggers.
func WithExportOptions(opts ...export.Option) Option {
	return func(cfg *options) {
		cfg.exportOpts = append(cfg.exportOpts, opts...)
	}
}

// WithStatsLogger sets the logger used while the stats handler reads input.
func WithStatsLogger(logger interfaces.Logger) Option {
	return func(cfg *options) {
		cfg.statsLogger = logger
	}
}

// WithObserver reports every command outcome and create summary to observer.
func WithObserver(observer Observer) Option {
	return func(cfg *options) {
		cfg.observer = observer
	}
}

// WithCreateHandlerOptions forwards options to the CreateHandler constructor.
func WithCreateHandlerOptions(opts ...commands.HandlerOption[CreateCommand]) Option {
	return func(cfg *options) {
		cfg.createOpts = append(cfg.createOpts, opts...)
	}
}

// WithStatsHandlerOptions forwards options to the StatsHandler constructor.
func WithStatsHandlerOptions(opts ...commands.HandlerOption[StatsCommand]) Option {
	return func(cfg *options) {
		cfg.statsOpts = append(cfg.statsOpts, opts...)
	}
}

// WithPreviewHandlerOptions forwards options to the PreviewHandler constructor.
func WithPreviewHandlerOptions(opts ...commands.HandlerOption[PreviewCommand]) Option {
	return func(cfg *options) {
		cfg.previewOpts = append(cfg.previewOpts, opts...)
	}
}

// RegisterCommands builds the converter command handlers and registers them
// with reg when one is supplied.
func RegisterCommands(reg CommandRegistry, cfg runtimeconfig.Config, provider interfaces.LoggerProvider, out io.Writer, opts ...Option) (*HandlerSet, error) {
	settings := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&settings)
		}
	}

	logger := commands.CommandLogger(provider, "wp2md")
	if obs := settings.observer; obs != nil {
		settings.createOpts = append([]commands.HandlerOption[CreateCommand]{
			commands.WithTelemetry(commands.ObservedTelemetry(obs, commands.DefaultTelemetry[CreateCommand](logger))),
		}, settings.createOpts...)
		settings.statsOpts = append([]commands.HandlerOption[StatsCommand]{
			commands.WithTelemetry(commands.ObservedTelemetry(obs, commands.DefaultTelemetry[StatsCommand](logger))),
		}, settings.statsOpts...)
		settings.previewOpts = append([]commands.HandlerOption[PreviewCommand]{
			commands.WithTelemetry(commands.ObservedTelemetry(obs, commands.DefaultTelemetry[PreviewCommand](logger))),
		}, settings.previewOpts...)
	}

	set := &HandlerSet{
		Create:  NewCreateHandler(cfg, out, logger, settings.createOpts...),
		Stats:   NewStatsHandler(cfg, out, logger, settings.statsOpts...),
		Preview: NewPreviewHandler(cfg, settings.renderer, out, logger, settings.previewOpts...),
	}
	if settings.observer != nil {
		set.Create.observer = settings.observer
	}
	set.Create.exportOpts = settings.exportOpts
	set.Preview.exportOpts = settings.exportOpts
	set.Stats.readerLogger = settings.statsLogger

	if reg != nil {
		for _, handler := range []any{set.Create, set.Stats, set.Preview} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
