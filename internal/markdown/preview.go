package markdown

import (
	"bytes"
	"html"
	"strings"

	"github.com/goliatone/go-wp2md/pkg/interfaces"
)

// RenderDocument renders an exported document as a standalone HTML page: the
// header fields become a definition list above the rendered body.
func RenderDocument(renderer interfaces.MarkdownRenderer, document []byte) ([]byte, error) {
	header, body, err := ParseFrontMatter(document)
	if err != nil {
		return nil, err
	}
	rendered, err := renderer.Render(body)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	buf.WriteString("<title>" + html.EscapeString(header.Title) + "</title>\n</head>\n<body>\n")
	buf.WriteString("<h1>" + html.EscapeString(header.Title) + "</h1>\n<dl>\n")
	writeTerm(&buf, "slug", header.Slug)
	writeTerm(&buf, "date", header.Date)
	writeTerm(&buf, "author", header.Author)
	if header.Draft {
		writeTerm(&buf, "draft", "true")
	}
	writeTerm(&buf, "tags", strings.Join(header.Tags, ", "))
	writeTerm(&buf, "categories", strings.Join(header.Categories, ", "))
	writeTerm(&buf, "conversion warning", header.Warning)
	buf.WriteString("</dl>\n<hr>\n")
	buf.Write(rendered)
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

func writeTerm(buf *bytes.Buffer, term, value string) {
	if value == "" {
		return
	}
	buf.WriteString("<dt>" + html.EscapeString(term) + "</dt><dd>" + html.EscapeString(value) + "</dd>\n")
}
