// Package wp2md converts WordPress eXtended RSS exports into a tree of
// Markdown documents with YAML front matter, and reports statistics about an
// export without writing anything.
package wp2md

import (
	"context"
	"io"

	wp2mdcmd "github.com/goliatone/go-wp2md/internal/commands/wp2md"
	"github.com/goliatone/go-wp2md/internal/export"
	"github.com/goliatone/go-wp2md/internal/logging"
	"github.com/goliatone/go-wp2md/internal/metrics"
	"github.com/goliatone/go-wp2md/internal/stats"
	"github.com/goliatone/go-wp2md/pkg/interfaces"
)

type (
	// Summary reports the outcome of a create run.
	Summary = export.Summary
	// Document is a converted item with its front matter and target path.
	Document = export.Document
	// FrontMatter is the YAML header written at the top of each document.
	FrontMatter = export.FrontMatter
	// StatsReport aggregates counts over a whole export.
	StatsReport = stats.Report
	// HandlerSet groups the command handlers wired by Module.Commands.
	HandlerSet = wp2mdcmd.HandlerSet
	// MetricsRecorder collects command and create run metrics.
	MetricsRecorder = metrics.Recorder
)

// NewMetricsRecorder constructs a recorder with a private Prometheus registry.
func NewMetricsRecorder() *MetricsRecorder {
	return metrics.NewRecorder()
}

// Option customises a Module.
type Option func(*Module)

// WithLoggerProvider overrides the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		if provider != nil {
			m.provider = provider
		}
	}
}

// WithLogWriter sets the destination of console log lines. Defaults to stderr.
func WithLogWriter(w io.Writer) Option {
	return func(m *Module) {
		m.logWriter = w
	}
}

// WithBodyConverter replaces the HTML to Markdown conversion used by create and
// preview.
func WithBodyConverter(conv interfaces.BodyConverter) Option {
	return func(m *Module) {
		m.converter = conv
	}
}

// WithMetrics reports command outcomes and create summaries to recorder.
func WithMetrics(recorder *MetricsRecorder) Option {
	return func(m *Module) {
		m.recorder = recorder
	}
}

// Module is the top level converter facade.
type Module struct {
	cfg       Config
	provider  interfaces.LoggerProvider
	logWriter io.Writer
	converter interfaces.BodyConverter
	recorder  *MetricsRecorder
}

// New validates cfg and constructs a Module.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Module{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	if m.provider == nil {
		provider, err := NewLoggerProvider(cfg.Logging, m.logWriter)
		if err != nil {
			return nil, err
		}
		m.provider = provider
	}
	return m, nil
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.cfg
}

// LoggerProvider exposes the provider shared by every pipeline.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.provider
}

// Create converts every exportable item of the WXR file at path.
func (m *Module) Create(ctx context.Context, path string) (Summary, error) {
	summary, err := m.exporter().Create(ctx, path)
	if err == nil && m.recorder != nil {
		m.recorder.ObserveSummary(summary)
	}
	return summary, err
}

// Preview converts the post or page matching key without writing it.
func (m *Module) Preview(ctx context.Context, path, key string) (Document, error) {
	return m.exporter().Preview(ctx, path, key)
}

// Stats collects the statistics report for the WXR file at path.
func (m *Module) Stats(ctx context.Context, path string) (StatsReport, error) {
	return stats.Run(ctx, path, stats.Options{
		LowercaseTags: m.cfg.LowercaseTags,
		Logger:        logging.StatsLogger(m.provider),
	})
}

// Commands builds the command handlers, writing reports to out.
func (m *Module) Commands(out io.Writer) (*HandlerSet, error) {
	opts := []wp2mdcmd.Option{
		wp2mdcmd.WithExportOptions(m.exportOptions()...),
		wp2mdcmd.WithStatsLogger(logging.StatsLogger(m.provider)),
	}
	if m.recorder != nil {
		opts = append(opts, wp2mdcmd.WithObserver(m.recorder))
	}
	return wp2mdcmd.RegisterCommands(nil, m.cfg, m.provider, out, opts...)
}

func (m *Module) exporter() *export.Service {
	return export.NewService(m.cfg, m.exportOptions()...)
}

func (m *Module) exportOptions() []export.Option {
	opts := []export.Option{
		export.WithLogger(logging.ExportLogger(m.provider)),
		export.WithReaderLogger(logging.WXRLogger(m.provider)),
	}
	if m.converter != nil {
		opts = append(opts, export.WithConverter(m.converter))
	}
	return opts
}
