package wp2md

import "github.com/goliatone/go-wp2md/internal/runtimeconfig"

var (
	ErrOutputDirRequired      = runtimeconfig.ErrOutputDirRequired
	ErrShortcodeModeInvalid   = runtimeconfig.ErrShortcodeModeInvalid
	ErrLayoutInvalid          = runtimeconfig.ErrLayoutInvalid
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	LayoutConfig  = runtimeconfig.LayoutConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the configuration used when no file or flag overrides
// a setting.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig.
func LoadConfig(file string) (Config, error) {
	return runtimeconfig.Load(file)
}
