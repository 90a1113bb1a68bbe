package wp2md

import (
	"io"
	"strings"

	"github.com/goliatone/go-wp2md/internal/logging/console"
	"github.com/goliatone/go-wp2md/internal/logging/gologger"
	"github.com/goliatone/go-wp2md/pkg/interfaces"
)

// NewLoggerProvider builds the provider named by cfg.Provider. Console output
// goes to w, or stderr when w is nil.
func NewLoggerProvider(cfg LoggingConfig, w io.Writer) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	case "", "console":
		level, ok := console.ParseLevel(cfg.Level)
		if !ok {
			return nil, ErrLoggingLevelInvalid
		}
		return console.NewProvider(console.Options{Writer: w, MinLevel: &level}), nil
	default:
		return nil, ErrLoggingProviderUnknown
	}
}
