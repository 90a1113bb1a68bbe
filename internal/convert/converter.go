// Package convert turns WordPress body HTML into Markdown.
package convert

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/goliatone/go-wp2md/internal/shortcode"
	"github.com/goliatone/go-wp2md/pkg/interfaces"
)

// Options configures an HTMLConverter.
type Options struct {
	// Domain resolves relative links and image sources, usually the site URL.
	Domain     string
	Shortcodes interfaces.ShortcodeMode
	// Autop wraps bare text blocks in paragraphs the way WordPress does when
	// rendering. Enabled by New unless DisableAutop is set.
	DisableAutop bool
}

// HTMLConverter implements interfaces.BodyConverter on top of html-to-markdown.
type HTMLConverter struct {
	conv       *converter.Converter
	domain     string
	shortcodes *shortcode.Preprocessor
	autop      bool
}

var _ interfaces.BodyConverter = (*HTMLConverter)(nil)

// New constructs a converter with the commonmark, table and strikethrough
// plugins enabled.
func New(opts Options) *HTMLConverter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithBulletListMarker("-"),
				commonmark.WithHeadingStyle(commonmark.HeadingStyleATX),
				commonmark.WithListEndComment(false),
			),
			table.NewTablePlugin(table.WithHeaderPromotion(true)),
			strikethrough.NewStrikethroughPlugin(),
		),
	)
	return &HTMLConverter{
		conv:       conv,
		domain:     strings.TrimRight(strings.TrimSpace(opts.Domain), "/"),
		shortcodes: shortcode.NewPreprocessor(opts.Shortcodes),
		autop:      !opts.DisableAutop,
	}
}

// Convert renders html as Markdown. The result is tidied: blank line runs are
// collapsed and the text ends with exactly one newline.
func (c *HTMLConverter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	if c.autop {
		html = Autop(html)
	}

	protected := c.shortcodes.Protect(html)

	var opts []converter.ConvertOptionFunc
	if c.domain != "" {
		opts = append(opts, converter.WithDomain(c.domain))
	}
	markdown, err := c.conv.ConvertString(protected.Text, opts...)
	if err != nil {
		return "", err
	}
	return Tidy(protected.Restore(markdown)), nil
}

// Tidy normalises line endings, collapses runs of blank lines into a single
// blank line and terminates non-empty text with one newline.
func Tidy(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if blank {
				continue
			}
			blank = true
			out = append(out, "")
			continue
		}
		blank = false
		out = append(out, line)
	}
	text = strings.TrimSpace(strings.Join(out, "\n"))
	if text == "" {
		return ""
	}
	return text + "\n"
}
