package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrOutputDirRequired = errors.New("wp2md config: output directory is required")
var ErrShortcodeModeInvalid = errors.New("wp2md config: shortcode mode must be keep or hugo")
var ErrLayoutInvalid = errors.New("wp2md config: layout segments must be relative names without separators")
var ErrLoggingProviderUnknown = errors.New("wp2md config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("wp2md config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("wp2md config: logging format is invalid")

// Config carries every option consumed by the create, stats and preview
// pipelines. It is passed explicitly to each component.
type Config struct {
	OutputDir     string        `yaml:"output_dir"`
	LowercaseTags bool          `yaml:"lowercase_tags"`
	IncludeDrafts bool          `yaml:"include_drafts"`
	Shortcodes    string        `yaml:"shortcodes"`
	Layout        LayoutConfig  `yaml:"layout"`
	Logging       LoggingConfig `yaml:"logging"`
}

// LayoutConfig controls the output tree. Dated items land in
// <OutputDir>/<yyyy>/<mm>/<slug>/<FileName>; dateless items and drafts land in
// <OutputDir>/<DraftsDir>/<slug>/<FileName>.
type LayoutConfig struct {
	DraftsDir string `yaml:"drafts_dir"`
	FileName  string `yaml:"file_name"`
}

// LoggingConfig selects and tunes the logger provider.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig mirrors the command line defaults.
func DefaultConfig() Config {
	return Config{
		OutputDir:  "./out",
		Shortcodes: "keep",
		Layout: LayoutConfig{
			DraftsDir: "drafts",
			FileName:  "index.md",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Load reads a YAML configuration file on top of DefaultConfig. Keys absent
// from the file keep their default values.
func Load(file string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(file)
	if err != nil {
		return cfg, fmt.Errorf("wp2md config: read %s: %w", file, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("wp2md config: parse %s: %w", file, err)
	}
	return cfg, nil
}

// Validate performs consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return ErrOutputDirRequired
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Shortcodes)) {
	case "", "keep", "hugo":
	default:
		return fmt.Errorf("%w: %s", ErrShortcodeModeInvalid, cfg.Shortcodes)
	}
	for _, segment := range []string{cfg.Layout.DraftsDir, cfg.Layout.FileName} {
		if !isPlainSegment(segment) {
			return fmt.Errorf("%w: %q", ErrLayoutInvalid, segment)
		}
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Logging.Provider))
	switch provider {
	case "", "console", "gologger":
	default:
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func isPlainSegment(segment string) bool {
	segment = strings.TrimSpace(segment)
	if segment == "" || segment == "." || segment == ".." {
		return false
	}
	return path.Base(segment) == segment && !strings.ContainsAny(segment, `/\`)
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
