// Package shortcode shields WordPress shortcodes from HTML to Markdown
// conversion and restores them afterwards, verbatim or as Hugo shortcodes.
package shortcode

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-wp2md/pkg/interfaces"
)

var wpTagPattern = regexp.MustCompile(`\[(\/?)([a-zA-Z][a-zA-Z0-9_\-]*)([^\[\]]*)\]`)

const (
	tokenPrefix = "WPMDSHORTCODE"
	tokenSuffix = "END"
)

// Tag is one shortcode occurrence found in a body.
type Tag struct {
	Raw         string
	Name        string
	Attributes  string
	Closing     bool
	SelfClosing bool
}

// Preprocessor swaps shortcodes for opaque tokens before conversion.
type Preprocessor struct {
	mode interfaces.ShortcodeMode
}

// NewPreprocessor constructs a preprocessor. Unknown modes behave like keep.
func NewPreprocessor(mode interfaces.ShortcodeMode) *Preprocessor {
	switch mode {
	case interfaces.ShortcodeHugo:
	default:
		mode = interfaces.ShortcodeKeep
	}
	return &Preprocessor{mode: mode}
}

// Mode reports the restoration style.
func (p *Preprocessor) Mode() interfaces.ShortcodeMode {
	return p.mode
}

// Protected is a body whose shortcodes were replaced by tokens.
type Protected struct {
	Text string
	Tags []Tag
	mode interfaces.ShortcodeMode
}

// Protect replaces every shortcode tag in content with a token made of ASCII
// letters and digits, which Markdown converters pass through unchanged.
func (p *Preprocessor) Protect(content string) Protected {
	protected := Protected{Text: content, mode: p.mode}
	if !strings.Contains(content, "[") {
		return protected
	}

	protected.Text = wpTagPattern.ReplaceAllStringFunc(content, func(raw string) string {
		matches := wpTagPattern.FindStringSubmatch(raw)
		if len(matches) < 4 {
			return raw
		}
		attrs := strings.TrimSpace(matches[3])
		tag := Tag{
			Raw:     raw,
			Name:    matches[2],
			Closing: matches[1] == "/",
		}
		if strings.HasSuffix(attrs, "/") {
			tag.SelfClosing = true
			attrs = strings.TrimSpace(strings.TrimSuffix(attrs, "/"))
		}
		tag.Attributes = attrs
		token := tokenFor(len(protected.Tags))
		protected.Tags = append(protected.Tags, tag)
		return token
	})
	return protected
}

// Restore puts the shortcodes back into converted text.
func (p Protected) Restore(converted string) string {
	if len(p.Tags) == 0 {
		return converted
	}
	pairs := make([]string, 0, len(p.Tags)*2)
	for i, tag := range p.Tags {
		pairs = append(pairs, tokenFor(i), render(tag, p.mode))
	}
	return strings.NewReplacer(pairs...).Replace(converted)
}

// Process converts bracket shortcodes in content directly, without the token
// round trip.
func (p *Preprocessor) Process(content string) string {
	protected := p.Protect(content)
	return protected.Restore(protected.Text)
}

func render(tag Tag, mode interfaces.ShortcodeMode) string {
	if mode != interfaces.ShortcodeHugo {
		return tag.Raw
	}
	if tag.Closing {
		return fmt.Sprintf("{{< /%s >}}", tag.Name)
	}
	return fmt.Sprintf("{{< %s%s >}}", tag.Name, formatAttributes(tag.Attributes))
}

func formatAttributes(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	return " " + normalizeQuotes(raw)
}

// WordPress stores typographic quotes in attributes once wptexturize ran.
func normalizeQuotes(raw string) string {
	return strings.NewReplacer(
		"“", `"`, "”", `"`, "″", `"`,
		"&quot;", `"`, "&#8221;", `"`, "&#8220;", `"`, "&#8243;", `"`,
	).Replace(raw)
}

func tokenFor(index int) string {
	return fmt.Sprintf("%s%04d%s", tokenPrefix, index, tokenSuffix)
}
