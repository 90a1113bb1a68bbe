// Package stats aggregates counts over every item of an export.
package stats

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/goliatone/go-wp2md/internal/extract"
	"github.com/goliatone/go-wp2md/internal/wxr"
)

// Report is the aggregate view printed by the stats command.
type Report struct {
	Title       string
	Description string
	URL         string
	Total       int
	ByType      map[string]int
	ByStatus    map[string]int
	Tags        int
	Categories  int
	Dateless    int
	Exportable  int
}

// Collect aggregates records regardless of status. Tag and category values
// are counted as extracted, so case folding follows the extractor options.
func Collect(channel wxr.Channel, records []extract.Record) Report {
	report := Report{
		Title:       channel.Title,
		Description: channel.Description,
		URL:         channel.SiteURL(),
		Total:       len(records),
		ByType:      make(map[string]int),
		ByStatus:    make(map[string]int),
	}

	tags := make(map[string]struct{})
	categories := make(map[string]struct{})
	for _, record := range records {
		report.ByType[valueOr(record.Type, "unknown")]++
		report.ByStatus[valueOr(record.Status, "unknown")]++
		if record.Dateless {
			report.Dateless++
		}
		if record.Exportable(false) {
			report.Exportable++
		}
		for _, tag := range record.Tags {
			tags[tag] = struct{}{}
		}
		for _, category := range record.Categories {
			categories[category] = struct{}{}
		}
	}
	report.Tags = len(tags)
	report.Categories = len(categories)
	return report
}

// Count returns the number of items of the given type.
func (r Report) Count(itemType string) int {
	return r.ByType[itemType]
}

// Render writes the report as plain text with sorted keys.
func (r Report) Render(w io.Writer) error {
	buf := bufio.NewWriter(w)
	fmt.Fprintf(buf, "Title: %s\n", r.Title)
	fmt.Fprintf(buf, "Description: %s\n", r.Description)
	fmt.Fprintf(buf, "URL: %s\n", r.URL)
	fmt.Fprintf(buf, "Items: %d\n", r.Total)
	writeCounts(buf, "Items by type", r.ByType)
	writeCounts(buf, "Items by status", r.ByStatus)
	fmt.Fprintf(buf, "Distinct tags: %d\n", r.Tags)
	fmt.Fprintf(buf, "Distinct categories: %d\n", r.Categories)
	fmt.Fprintf(buf, "Dateless items: %d\n", r.Dateless)
	fmt.Fprintf(buf, "Publishable posts and pages: %d\n", r.Exportable)
	return buf.Flush()
}

func writeCounts(w io.Writer, heading string, counts map[string]int) {
	fmt.Fprintf(w, "%s:\n", heading)
	for _, key := range slices.Sorted(maps.Keys(counts)) {
		fmt.Fprintf(w, "  %s: %d\n", key, counts[key])
	}
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
