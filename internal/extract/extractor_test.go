package extract_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-wp2md/internal/extract"
	"github.com/goliatone/go-wp2md/internal/wxr"
	"github.com/goliatone/go-wp2md/pkg/interfaces"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":       "hello-world",
		"already-a-slug":    "already-a-slug",
		"Multiple   spaces": "multiple-spaces",
	}
	for input, want := range cases {
		if got := extract.Slugify(input); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestExtractDerivesSlugFromTitle(t *testing.T) {
	record := extract.New(extract.Options{}).Extract(&wxr.Item{ID: 1, Title: "Hello World", Type: "post", Status: "publish"})
	if record.Slug != "hello-world" {
		t.Fatalf("expected hello-world, got %q", record.Slug)
	}
}

func TestExtractPrefersPostName(t *testing.T) {
	record := extract.New(extract.Options{}).Extract(&wxr.Item{ID: 7, Title: "Hello World", Name: "Custom%20Name"})
	if record.Slug != "custom-name" {
		t.Fatalf("expected post_name to win, got %q", record.Slug)
	}
}

func TestExtractFallsBackToItemID(t *testing.T) {
	record := extract.New(extract.Options{}).Extract(&wxr.Item{ID: 42})
	if record.Slug != "item-42" {
		t.Fatalf("expected item-42, got %q", record.Slug)
	}
}

func TestExtractDates(t *testing.T) {
	ex := extract.New(extract.Options{})

	dated := ex.Extract(&wxr.Item{ID: 1, PostDate: "2024-03-14 15:09:26", Modified: "2024-03-15 08:00:00"})
	require.False(t, dated.Dateless)
	require.Equal(t, time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC), dated.Date)
	require.Equal(t, time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC), dated.Modified)
	require.True(t, dated.DateFloating)
	require.True(t, dated.ModifiedFloating)
	require.Empty(t, dated.Warnings)

	gmtOnly := ex.Extract(&wxr.Item{ID: 2, PostDate: "0000-00-00 00:00:00", PostDateGMT: "2020-02-02 02:02:02"})
	require.False(t, gmtOnly.Dateless)
	require.False(t, gmtOnly.DateFloating)
	require.Equal(t, 2020, gmtOnly.Date.Year())

	zoned := ex.Extract(&wxr.Item{ID: 6, PostDate: "2024-01-01 01:30:00", PostDateGMT: "2023-12-31 22:30:00"})
	require.False(t, zoned.DateFloating)
	require.Equal(t, "2024-01-01T01:30:00+03:00", zoned.Date.Format(time.RFC3339))
	require.True(t, zoned.Date.Equal(time.Date(2023, 12, 31, 22, 30, 0, 0, time.UTC)))
	require.Equal(t, 2024, zoned.Date.Year())

	utcSite := ex.Extract(&wxr.Item{ID: 7, PostDate: "2024-03-14 15:09:26", PostDateGMT: "2024-03-14 15:09:26"})
	require.Equal(t, "2024-03-14T15:09:26Z", utcSite.Date.Format(time.RFC3339))

	zero := ex.Extract(&wxr.Item{ID: 3, PostDate: "0000-00-00 00:00:00", PostDateGMT: "0000-00-00 00:00:00"})
	require.True(t, zero.Dateless)
	require.Empty(t, zero.Warnings)

	missing := ex.Extract(&wxr.Item{ID: 4})
	require.True(t, missing.Dateless)
	require.True(t, missing.Date.IsZero())

	broken := ex.Extract(&wxr.Item{ID: 5, PostDate: "yesterday-ish"})
	require.True(t, broken.Dateless)
	require.Len(t, broken.Warnings, 1)
	require.True(t, extract.IsFieldExtractionWarning(broken.Warnings[0]))
}

func TestExtractTermsAndLowercasing(t *testing.T) {
	item := &wxr.Item{
		ID: 1,
		Terms: []wxr.Term{
			{Domain: "post_tag", Value: "Go"},
			{Domain: "post_tag", Value: "go"},
			{Domain: "post_tag", Value: "", Nicename: "testing"},
			{Domain: "category", Value: "News"},
			{Domain: "category", Value: "News"},
			{Domain: "series", Value: "Ignored"},
		},
	}

	preserved := extract.New(extract.Options{}).Extract(item)
	require.Equal(t, []string{"Go", "go", "testing"}, preserved.Tags)
	require.Equal(t, []string{"News"}, preserved.Categories)

	folded := extract.New(extract.Options{LowercaseTags: true}).Extract(item)
	require.Equal(t, []string{"go", "testing"}, folded.Tags)
	require.Equal(t, []string{"news"}, folded.Categories)
}

func TestExtractCustomFieldsSkipsPrivateMeta(t *testing.T) {
	record := extract.New(extract.Options{}).Extract(&wxr.Item{
		ID: 1,
		Meta: []wxr.Meta{
			{Key: "_edit_last", Value: "1"},
			{Key: "mood", Value: "sad"},
			{Key: "mood", Value: "happy"},
			{Key: "", Value: "orphan"},
		},
	})
	require.Equal(t, map[string]string{"mood": "happy"}, record.CustomFields)
}

func TestExtractResolvesAuthorDisplayName(t *testing.T) {
	ex := extract.New(extract.Options{Authors: map[string]string{"admin": "Ada Admin"}})
	require.Equal(t, "Ada Admin", ex.Extract(&wxr.Item{Creator: "admin"}).Author)
	require.Equal(t, "guest", ex.Extract(&wxr.Item{Creator: "guest"}).Author)
}

func TestRecordExportable(t *testing.T) {
	cases := []struct {
		record        extract.Record
		includeDrafts bool
		want          bool
	}{
		{extract.Record{Type: "post", Status: "publish"}, false, true},
		{extract.Record{Type: "page", Status: "publish"}, false, true},
		{extract.Record{Type: "post", Status: "draft"}, false, false},
		{extract.Record{Type: "post", Status: "draft"}, true, true},
		{extract.Record{Type: "post", Status: "future"}, true, true},
		{extract.Record{Type: "post", Status: "trash"}, true, false},
		{extract.Record{Type: "post", Status: "private"}, true, false},
		{extract.Record{Type: "attachment", Status: "inherit"}, true, false},
		{extract.Record{Type: "nav_menu_item", Status: "publish"}, false, false},
	}
	for _, tc := range cases {
		if got := tc.record.Exportable(tc.includeDrafts); got != tc.want {
			t.Fatalf("Exportable(%+v, %v) = %v, want %v", tc.record, tc.includeDrafts, got, tc.want)
		}
	}
}

func TestRecordLinkPath(t *testing.T) {
	cases := map[string]string{
		"https://example.com/2024/03/hello-world/": "/2024/03/hello-world/",
		"https://example.com/?p=3":                 "",
		"https://example.com":                      "",
		"/about/":                                  "/about/",
		"":                                         "",
	}
	for link, want := range cases {
		if got := (extract.Record{Link: link}).LinkPath(); got != want {
			t.Fatalf("LinkPath(%q) = %q, want %q", link, got, want)
		}
	}
}

type levelLogger struct {
	warns  []string
	debugs []string
}

func (l *levelLogger) Trace(string, ...any)       {}
func (l *levelLogger) Debug(msg string, _ ...any) { l.debugs = append(l.debugs, msg) }
func (l *levelLogger) Info(string, ...any)        {}
func (l *levelLogger) Warn(msg string, _ ...any)  { l.warns = append(l.warns, msg) }
func (l *levelLogger) Error(string, ...any)       {}
func (l *levelLogger) Fatal(string, ...any)       {}

func (l *levelLogger) WithContext(context.Context) interfaces.Logger { return l }

func TestExtractWarnsForPublishedItemWithoutDate(t *testing.T) {
	logger := &levelLogger{}
	ex := extract.New(extract.Options{Logger: logger})

	published := ex.Extract(&wxr.Item{ID: 1, Status: "publish"})
	require.True(t, published.Dateless)
	require.Equal(t, []string{"extract.field.missing"}, logger.warns)

	draft := ex.Extract(&wxr.Item{ID: 2, Status: "draft"})
	require.True(t, draft.Dateless)
	require.Len(t, logger.warns, 1)
	require.Equal(t, []string{"extract.item.dateless"}, logger.debugs)
}
