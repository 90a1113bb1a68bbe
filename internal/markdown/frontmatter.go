package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// Header is the subset of exported front matter shown above a preview.
type Header struct {
	Title      string   `yaml:"title"`
	Slug       string   `yaml:"slug"`
	Date       string   `yaml:"date"`
	Author     string   `yaml:"author"`
	Draft      bool     `yaml:"draft"`
	Tags       []string `yaml:"tags"`
	Categories []string `yaml:"categories"`
	Warning    string   `yaml:"conversion_warning"`
}

// ParseFrontMatter splits an exported document into its header and the
// Markdown body without delimiters.
func ParseFrontMatter(source []byte) (Header, []byte, error) {
	var header Header
	body, err := frontmatter.Parse(bytes.NewReader(source), &header)
	if err != nil {
		return Header{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return header, body, nil
}
