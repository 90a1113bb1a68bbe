package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-wp2md/pkg/interfaces"
)

const (
	rootModule   = "wp2md"
	wxrModule    = "wp2md.wxr"
	exportModule = "wp2md.export"
	statsModule  = "wp2md.stats"
	cliModule    = "wp2md.cli"
)

const (
	fieldItemID   = "item_id"
	fieldItemSlug = "slug"
	fieldItemType = "post_type"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// WXRLogger returns the logger namespace reserved for the export reader.
func WXRLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, wxrModule)
}

// ExportLogger returns the logger namespace reserved for the create pipeline.
func ExportLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, exportModule)
}

// StatsLogger returns the logger namespace reserved for the stats pipeline.
func StatsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, statsModule)
}

// CLILogger returns the logger namespace used by command handlers.
func CLILogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, cliModule)
}

// WithItemContext enriches the logger with the identity of a WordPress item.
// Empty values are ignored.
func WithItemContext(logger interfaces.Logger, id int64, slug, postType string) interfaces.Logger {
	fields := map[string]any{}
	if id > 0 {
		fields[fieldItemID] = id
	}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldItemSlug] = trimmed
	}
	if trimmed := strings.TrimSpace(postType); trimmed != "" {
		fields[fieldItemType] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
