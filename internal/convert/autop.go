package convert

import (
	"regexp"
	"strings"
)

var blockStart = regexp.MustCompile(`(?i)^<(?:p|div|h[1-6]|ul|ol|li|dl|blockquote|pre|table|thead|tbody|tr|figure|figcaption|hr|section|article|aside|header|footer|nav|form|address|details|!--)[\s>/]`)

// Autop approximates WordPress' wpautop: blocks separated by blank lines that
// do not already start with a block element become paragraphs, and single
// newlines inside them become line breaks. Preformatted blocks are left alone.
func Autop(html string) string {
	html = strings.ReplaceAll(html, "\r\n", "\n")
	if !strings.Contains(html, "\n") && blockStart.MatchString(strings.TrimSpace(html)) {
		return html
	}

	chunks := splitBlocks(html)
	var b strings.Builder
	for i, chunk := range chunks {
		if i > 0 {
			b.WriteString("\n")
		}
		trimmed := strings.TrimSpace(chunk)
		if trimmed == "" {
			continue
		}
		if blockStart.MatchString(trimmed) {
			b.WriteString(trimmed)
			continue
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(trimmed, "\n", "<br />\n"))
		b.WriteString("</p>")
	}
	return b.String()
}

// splitBlocks splits on blank lines outside <pre> elements.
func splitBlocks(html string) []string {
	var (
		chunks  []string
		current strings.Builder
		inPre   bool
		blanks  int
	)
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}
	for _, line := range strings.Split(html, "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "<pre") {
			inPre = true
		}
		if !inPre && strings.TrimSpace(line) == "" {
			blanks++
			continue
		}
		if blanks > 0 {
			flush()
			blanks = 0
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
		if strings.Contains(lower, "</pre>") {
			inPre = false
		}
	}
	flush()
	return chunks
}
