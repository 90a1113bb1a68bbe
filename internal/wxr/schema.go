// Package wxr decodes WordPress eXtended RSS exports into typed values.
//
// Element names are matched by local name so exports produced by any WXR
// version (1.0, 1.1, 1.2) decode the same way. The only namespace that matters
// is the one separating content:encoded from excerpt:encoded.
package wxr

import (
	"encoding/xml"
	"strings"
)

// Channel holds the site-level header read before the first item.
type Channel struct {
	Title       string
	Link        string
	Description string
	Language    string
	BaseSiteURL string
	BaseBlogURL string
	Authors     []Author
}

// Author is one wp:author entry.
type Author struct {
	Login       string `xml:"author_login"`
	Email       string `xml:"author_email"`
	DisplayName string `xml:"author_display_name"`
	FirstName   string `xml:"author_first_name"`
	LastName    string `xml:"author_last_name"`
}

// SiteURL returns the most specific base URL advertised by the channel.
func (c Channel) SiteURL() string {
	for _, candidate := range []string{c.BaseBlogURL, c.BaseSiteURL, c.Link} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// AuthorIndex maps author logins to display names.
func (c Channel) AuthorIndex() map[string]string {
	index := make(map[string]string, len(c.Authors))
	for _, author := range c.Authors {
		login := strings.TrimSpace(author.Login)
		if login == "" {
			continue
		}
		index[login] = strings.TrimSpace(author.DisplayName)
	}
	return index
}

// Item is one post, page, attachment or other post type. Values are copied out
// of the XML verbatim; normalisation happens in the extract package.
type Item struct {
	ID            int64
	Title         string
	Link          string
	GUID          string
	Creator       string
	Content       string
	Excerpt       string
	PostDate      string
	PostDateGMT   string
	Modified      string
	ModifiedGMT   string
	Name          string
	Type          string
	Status        string
	ParentID      int64
	MenuOrder     int
	AttachmentURL string
	Terms         []Term
	Meta          []Meta
}

// Term is a category, tag or custom taxonomy assignment on an item.
type Term struct {
	Domain   string `xml:"domain,attr"`
	Nicename string `xml:"nicename,attr"`
	Value    string `xml:",chardata"`
}

// Meta is a single wp:postmeta pair.
type Meta struct {
	Key   string `xml:"meta_key"`
	Value string `xml:"meta_value"`
}

// Document is a fully drained export.
type Document struct {
	Path    string
	Channel Channel
	Items   []*Item
}

const excerptNamespaceMarker = "/excerpt/"

type rawItem struct {
	Title         string       `xml:"title"`
	Link          string       `xml:"link"`
	GUID          string       `xml:"guid"`
	Creator       string       `xml:"creator"`
	Encoded       []rawEncoded `xml:"encoded"`
	PostID        int64        `xml:"post_id"`
	PostDate      string       `xml:"post_date"`
	PostDateGMT   string       `xml:"post_date_gmt"`
	Modified      string       `xml:"post_modified"`
	ModifiedGMT   string       `xml:"post_modified_gmt"`
	PostName      string       `xml:"post_name"`
	PostType      string       `xml:"post_type"`
	Status        string       `xml:"status"`
	PostParent    int64        `xml:"post_parent"`
	MenuOrder     int          `xml:"menu_order"`
	AttachmentURL string       `xml:"attachment_url"`
	Terms         []Term       `xml:"category"`
	Meta          []Meta       `xml:"postmeta"`
}

type rawEncoded struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

func (raw rawItem) item() *Item {
	item := &Item{
		ID:            raw.PostID,
		Title:         strings.TrimSpace(raw.Title),
		Link:          strings.TrimSpace(raw.Link),
		GUID:          strings.TrimSpace(raw.GUID),
		Creator:       strings.TrimSpace(raw.Creator),
		PostDate:      strings.TrimSpace(raw.PostDate),
		PostDateGMT:   strings.TrimSpace(raw.PostDateGMT),
		Modified:      strings.TrimSpace(raw.Modified),
		ModifiedGMT:   strings.TrimSpace(raw.ModifiedGMT),
		Name:          strings.TrimSpace(raw.PostName),
		Type:          strings.TrimSpace(raw.PostType),
		Status:        strings.TrimSpace(raw.Status),
		ParentID:      raw.PostParent,
		MenuOrder:     raw.MenuOrder,
		AttachmentURL: strings.TrimSpace(raw.AttachmentURL),
		Terms:         make([]Term, 0, len(raw.Terms)),
		Meta:          make([]Meta, 0, len(raw.Meta)),
	}
	for _, encoded := range raw.Encoded {
		if strings.Contains(encoded.XMLName.Space, excerptNamespaceMarker) {
			item.Excerpt = encoded.Value
			continue
		}
		item.Content = encoded.Value
	}
	for _, term := range raw.Terms {
		item.Terms = append(item.Terms, Term{
			Domain:   strings.TrimSpace(term.Domain),
			Nicename: strings.TrimSpace(term.Nicename),
			Value:    strings.TrimSpace(term.Value),
		})
	}
	for _, meta := range raw.Meta {
		item.Meta = append(item.Meta, Meta{
			Key:   strings.TrimSpace(meta.Key),
			Value: meta.Value,
		})
	}
	return item
}
