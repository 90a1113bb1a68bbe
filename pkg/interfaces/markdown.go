package interfaces

// BodyConverter turns a post body written in HTML into Markdown text.
// Implementations must be free of side effects; callers treat any returned
// error as a signal to fall back to the original HTML.
type BodyConverter interface {
	Convert(html string) (string, error)
}

// BodyConverterFunc adapts a plain function to BodyConverter.
type BodyConverterFunc func(html string) (string, error)

// Convert implements BodyConverter.
func (f BodyConverterFunc) Convert(html string) (string, error) {
	return f(html)
}

// MarkdownRenderer renders Markdown into HTML. It backs the preview workflow.
type MarkdownRenderer interface {
	Render(markdown []byte) ([]byte, error)
}

// ShortcodeMode selects how WordPress shortcodes embedded in post bodies are
// emitted in the Markdown output.
type ShortcodeMode string

const (
	// ShortcodeKeep leaves shortcodes untouched ([caption]...[/caption]).
	ShortcodeKeep ShortcodeMode = "keep"
	// ShortcodeHugo rewrites shortcodes into Hugo syntax ({{< caption >}}).
	ShortcodeHugo ShortcodeMode = "hugo"
)
