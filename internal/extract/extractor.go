package extract

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-wp2md/internal/logging"
	"github.com/goliatone/go-wp2md/internal/wxr"
	"github.com/goliatone/go-wp2md/pkg/interfaces"
)

// Term domains used by WordPress for the built-in taxonomies.
const (
	DomainTag      = "post_tag"
	DomainCategory = "category"
)

// Options configures an Extractor.
type Options struct {
	LowercaseTags bool
	// Authors maps dc:creator logins to display names.
	Authors map[string]string
	Logger  interfaces.Logger
	Slugs   slug.Normalizer
}

// Extractor maps wxr items to records. It holds no per-item state and may be
// reused across a run.
type Extractor struct {
	lowercase bool
	authors   map[string]string
	logger    interfaces.Logger
	slugs     slug.Normalizer
}

// New constructs an Extractor.
func New(opts Options) *Extractor {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	normalizer := opts.Slugs
	if normalizer == nil {
		normalizer = slug.Default()
	}
	return &Extractor{
		lowercase: opts.LowercaseTags,
		authors:   opts.Authors,
		logger:    logger,
		slugs:     normalizer,
	}
}

// Extract projects item into a Record. Field problems never fail the call;
// they are recovered with a default and reported through Record.Warnings.
func (e *Extractor) Extract(item *wxr.Item) Record {
	if item == nil {
		return Record{}
	}

	record := Record{
		ID:            item.ID,
		Title:         item.Title,
		Type:          strings.ToLower(item.Type),
		Status:        strings.ToLower(item.Status),
		Author:        e.author(item.Creator),
		BodyHTML:      item.Content,
		Summary:       strings.TrimSpace(item.Excerpt),
		Link:          item.Link,
		ParentID:      item.ParentID,
		AttachmentURL: item.AttachmentURL,
		MenuOrder:     item.MenuOrder,
	}
	if record.Type == "" {
		record.Type = TypePost
	}

	record.Slug = e.slug(item)
	logger := logging.WithItemContext(e.logger, record.ID, record.Slug, record.Type)

	e.applyDates(&record, item, logger)
	record.Tags = e.terms(item.Terms, DomainTag)
	record.Categories = e.terms(item.Terms, DomainCategory)
	record.CustomFields = customFields(item.Meta)

	return record
}

func (e *Extractor) slug(item *wxr.Item) string {
	name := item.Name
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	if value := slugifyWith(e.slugs, name); value != "" {
		return value
	}
	if value := slugifyWith(e.slugs, item.Title); value != "" {
		return value
	}
	return fallbackSlug(item.ID)
}

func (e *Extractor) applyDates(record *Record, item *wxr.Item, logger interfaces.Logger) {
	date, floating, outcome := siteTime(item.PostDate, item.PostDateGMT)
	switch outcome {
	case dateParsed:
		record.Date = date
		record.DateFloating = floating
	case dateInvalid:
		record.Dateless = true
		warning := fieldWarning(record.ID, "post_date", item.PostDate, "is not a valid timestamp")
		record.Warnings = append(record.Warnings, warning)
		logger.Warn("extract.field.invalid", "field", "post_date", "value", item.PostDate)
	default:
		record.Dateless = true
		if record.Status == StatusPublish {
			logger.Warn("extract.field.missing", "field", "post_date", "status", record.Status)
		} else {
			logger.Debug("extract.item.dateless")
		}
	}

	if modified, floating, outcome := siteTime(item.Modified, item.ModifiedGMT); outcome == dateParsed {
		record.Modified = modified
		record.ModifiedFloating = floating
	}
}

func (e *Extractor) terms(terms []wxr.Term, domain string) []string {
	values := make([]string, 0)
	seen := make(map[string]struct{})
	for _, term := range terms {
		if term.Domain != domain {
			continue
		}
		value := term.Value
		if value == "" {
			value = term.Nicename
		}
		if value == "" {
			continue
		}
		if e.lowercase {
			value = strings.ToLower(value)
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}
	return values
}

func (e *Extractor) author(login string) string {
	if login == "" {
		return ""
	}
	if name, ok := e.authors[login]; ok && name != "" {
		return name
	}
	return login
}

// customFields keeps public post meta. Keys starting with an underscore are
// WordPress internals.
func customFields(meta []wxr.Meta) map[string]string {
	fields := make(map[string]string)
	for _, entry := range meta {
		if entry.Key == "" || strings.HasPrefix(entry.Key, "_") {
			continue
		}
		fields[entry.Key] = entry.Value
	}
	return fields
}
