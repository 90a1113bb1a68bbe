package wp2mdcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	createMessageType  = "wp2md.create"
	statsMessageType   = "wp2md.stats"
	previewMessageType = "wp2md.preview"
)

// CreateCommand converts every exportable item of Source into Markdown files
// under OutputDir.
type CreateCommand struct {
	// Source is the WXR file to read.
	Source string `json:"source"`
	// OutputDir is the root of the generated tree.
	OutputDir string `json:"output_dir"`
	// LowercaseTags folds tags and categories to lower case.
	LowercaseTags bool `json:"lowercase_tags,omitempty"`
	// IncludeDrafts also writes draft, pending and scheduled items.
	IncludeDrafts bool `json:"include_drafts,omitempty"`
	// Shortcodes selects keep or hugo; empty keeps the configured mode.
	Shortcodes string `json:"shortcodes,omitempty"`
}

// Type implements command.Message.
func (CreateCommand) Type() string { return createMessageType }

// Validate ensures the source and output locations are present.
func (cmd CreateCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Source, validation.Required, validation.By(notBlank("wp2md.create.source_required", "source file is required"))),
		validation.Field(&cmd.OutputDir, validation.Required, validation.By(notBlank("wp2md.create.output_dir_required", "output directory is required"))),
		validation.Field(&cmd.Shortcodes, validation.In("keep", "hugo")),
	)
}

// StatsCommand prints aggregate counts for Source.
type StatsCommand struct {
	Source        string `json:"source"`
	LowercaseTags bool   `json:"lowercase_tags,omitempty"`
}

// Type implements command.Message.
func (StatsCommand) Type() string { return statsMessageType }

// Validate ensures a source file is named.
func (cmd StatsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Source, validation.Required, validation.By(notBlank("wp2md.stats.source_required", "source file is required"))),
	)
}

// PreviewCommand prints one converted item, selected by slug or post ID.
type PreviewCommand struct {
	Source        string `json:"source"`
	Key           string `json:"key"`
	LowercaseTags bool   `json:"lowercase_tags,omitempty"`
	Shortcodes    string `json:"shortcodes,omitempty"`
	// HTML renders the converted Markdown through goldmark.
	HTML bool `json:"html,omitempty"`
}

// Type implements command.Message.
func (PreviewCommand) Type() string { return previewMessageType }

// Validate ensures both the source and the item key are present.
func (cmd PreviewCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Source, validation.Required, validation.By(notBlank("wp2md.preview.source_required", "source file is required"))),
		validation.Field(&cmd.Key, validation.Required, validation.By(notBlank("wp2md.preview.key_required", "slug or id is required"))),
		validation.Field(&cmd.Shortcodes, validation.In("keep", "hugo")),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if text, ok := value.(string); ok && strings.TrimSpace(text) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
