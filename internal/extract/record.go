// Package extract projects decoded WXR items into typed records ready for
// conversion, export and aggregation.
package extract

import (
	"slices"
	"strings"
	"time"
)

// Item types and statuses the exporter cares about.
const (
	TypePost       = "post"
	TypePage       = "page"
	TypeAttachment = "attachment"

	StatusPublish = "publish"
	StatusDraft   = "draft"
	StatusPending = "pending"
	StatusFuture  = "future"
	StatusPrivate = "private"
	StatusTrash   = "trash"
)

// Record is the normalised projection of one item. Date and Modified carry
// the site's wall clock; a Floating flag means the UTC offset is unknown.
type Record struct {
	ID               int64
	Slug             string
	Title            string
	Type             string
	Status           string
	Date             time.Time
	DateFloating     bool
	Dateless         bool
	Modified         time.Time
	ModifiedFloating bool
	Author           string
	Tags             []string
	Categories       []string
	BodyHTML         string
	Summary          string
	CustomFields     map[string]string
	Link             string
	ParentID         int64
	AttachmentURL    string
	MenuOrder        int
	Warnings         []error
}

// Publishable reports whether the record has the publish status.
func (r Record) Publishable() bool {
	return r.Status == StatusPublish
}

// Draft reports whether the record is not published.
func (r Record) Draft() bool {
	return !r.Publishable()
}

// Exportable reports whether create should write the record. Only posts and
// pages are written; unpublished work is admitted when includeDrafts is set.
func (r Record) Exportable(includeDrafts bool) bool {
	if r.Type != TypePost && r.Type != TypePage {
		return false
	}
	if r.Publishable() {
		return true
	}
	if !includeDrafts {
		return false
	}
	return slices.Contains([]string{StatusDraft, StatusPending, StatusFuture}, r.Status)
}

// Attachment reports whether the record describes an uploaded file.
func (r Record) Attachment() bool {
	return r.Type == TypeAttachment
}

// LinkPath returns the path component of the permalink, used as an alias.
func (r Record) LinkPath() string {
	link := strings.TrimSpace(r.Link)
	if link == "" {
		return ""
	}
	if idx := strings.Index(link, "://"); idx >= 0 {
		link = link[idx+3:]
		slash := strings.Index(link, "/")
		if slash < 0 {
			return ""
		}
		link = link[slash:]
	}
	if idx := strings.IndexAny(link, "?#"); idx >= 0 {
		link = link[:idx]
	}
	if link == "" || link == "/" {
		return ""
	}
	return link
}
