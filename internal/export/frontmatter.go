package export

import (
	"bytes"
	"fmt"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-wp2md/internal/extract"
)

const frontMatterDelimiter = "---"

// FrontMatter is the YAML header of an exported file. Field order is the
// emitted key order; empty values are omitted.
type FrontMatter struct {
	Title             string            `yaml:"title"`
	Slug              string            `yaml:"slug"`
	Date              string            `yaml:"date,omitempty"`
	Lastmod           string            `yaml:"lastmod,omitempty"`
	Author            string            `yaml:"author,omitempty"`
	Type              string            `yaml:"type,omitempty"`
	Draft             bool              `yaml:"draft,omitempty"`
	WPID              int64             `yaml:"wp_id"`
	UID               string            `yaml:"uid,omitempty"`
	Summary           string            `yaml:"summary,omitempty"`
	Tags              []string          `yaml:"tags,omitempty"`
	Categories        []string          `yaml:"categories,omitempty"`
	Aliases           []string          `yaml:"aliases,omitempty"`
	Attachments       []string          `yaml:"attachments,omitempty"`
	CustomFields      map[string]string `yaml:"custom_fields,omitempty"`
	ConversionWarning string            `yaml:"conversion_warning,omitempty"`
}

// NewFrontMatter projects a record. Pages carry their type so site
// generators can route them; posts are the default.
func NewFrontMatter(record extract.Record, uid string) FrontMatter {
	fm := FrontMatter{
		Title:   record.Title,
		Slug:    record.Slug,
		Author:  record.Author,
		Draft:   record.Draft(),
		WPID:    record.ID,
		UID:     uid,
		Summary: record.Summary,
	}
	if !record.Dateless {
		fm.Date = formatTime(record.Date, record.DateFloating)
	}
	if !record.Modified.IsZero() && !record.Modified.Equal(record.Date) {
		fm.Lastmod = formatTime(record.Modified, record.ModifiedFloating)
	}
	if record.Type == extract.TypePage {
		fm.Type = extract.TypePage
	}
	if len(record.Tags) > 0 {
		fm.Tags = slices.Clone(record.Tags)
	}
	if len(record.Categories) > 0 {
		fm.Categories = slices.Clone(record.Categories)
	}
	if alias := record.LinkPath(); alias != "" {
		fm.Aliases = []string{alias}
	}
	if len(record.CustomFields) > 0 {
		fm.CustomFields = record.CustomFields
	}
	return fm
}

// Render writes the delimited front matter followed by body.
func (fm FrontMatter) Render(body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(frontMatterDelimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}

	buf.WriteString(frontMatterDelimiter + "\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
	}
	return buf.Bytes(), nil
}

// floatingLayout renders wall clock time without a zone designator.
const floatingLayout = "2006-01-02T15:04:05"

// formatTime keeps the wall clock and offset t carries. Floating times are
// written without a zone so readers apply their own.
func formatTime(t time.Time, floating bool) string {
	if t.IsZero() {
		return ""
	}
	if floating {
		return t.Format(floatingLayout)
	}
	return t.Format(time.RFC3339)
}
