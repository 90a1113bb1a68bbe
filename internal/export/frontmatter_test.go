package export

import (
	"testing"
	"time"

	"github.com/goliatone/go-wp2md/internal/extract"
)

func TestFrontMatterRenderIsStable(t *testing.T) {
	record := extract.Record{
		ID:     9,
		Title:  "Hello World",
		Slug:   "hello-world",
		Type:   extract.TypePost,
		Status: extract.StatusPublish,
		Date:   time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC),
		Tags:   []string{"go"},
	}

	got, err := NewFrontMatter(record, "abc").Render("Body text\n")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "---\n" +
		"title: Hello World\n" +
		"slug: hello-world\n" +
		"date: \"2024-03-14T15:09:26Z\"\n" +
		"wp_id: 9\n" +
		"uid: abc\n" +
		"tags:\n" +
		"  - go\n" +
		"---\n" +
		"\n" +
		"Body text\n"
	if string(got) != want {
		t.Fatalf("unexpected document\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestNewFrontMatterMarksPagesDraftsAndAliases(t *testing.T) {
	fm := NewFrontMatter(extract.Record{
		ID:       2,
		Title:    "About",
		Slug:     "about",
		Type:     extract.TypePage,
		Status:   extract.StatusDraft,
		Dateless: true,
		Link:     "https://example.com/about/",
		Modified: time.Date(2023, 1, 6, 0, 0, 0, 0, time.UTC),
	}, "")

	if fm.Type != "page" || !fm.Draft {
		t.Fatalf("expected draft page, got %+v", fm)
	}
	if fm.Date != "" {
		t.Fatalf("expected no date for dateless record, got %q", fm.Date)
	}
	if fm.Lastmod != "2023-01-06T00:00:00Z" {
		t.Fatalf("unexpected lastmod %q", fm.Lastmod)
	}
	if len(fm.Aliases) != 1 || fm.Aliases[0] != "/about/" {
		t.Fatalf("unexpected aliases %v", fm.Aliases)
	}
}

func TestNewFrontMatterWritesFloatingDatesWithoutZone(t *testing.T) {
	fm := NewFrontMatter(extract.Record{
		ID:           4,
		Slug:         "local",
		Status:       extract.StatusPublish,
		Date:         time.Date(2024, 2, 10, 18, 45, 0, 0, time.UTC),
		DateFloating: true,
	}, "")

	if fm.Date != "2024-02-10T18:45:00" {
		t.Fatalf("expected zoneless date, got %q", fm.Date)
	}
}

func TestLayoutPathUsesLocalDate(t *testing.T) {
	layout := Layout{Root: "out", DraftsDir: "drafts", FileName: "index.md"}
	record := extract.Record{
		Slug:   "new-year",
		Status: extract.StatusPublish,
		Date:   time.Date(2024, 1, 1, 1, 30, 0, 0, time.FixedZone("", 3*60*60)),
	}
	if got := layout.Path(record); got != "out/2024/01/new-year/index.md" {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestLayoutPath(t *testing.T) {
	layout := Layout{Root: "out", DraftsDir: "drafts", FileName: "index.md"}

	dated := extract.Record{Slug: "test", Status: "publish", Date: time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)}
	if got := layout.Path(dated); got != "out/2024/05/test/index.md" {
		t.Fatalf("unexpected dated path %q", got)
	}

	dateless := extract.Record{Slug: "undated-note", Status: "publish", Dateless: true}
	if got := layout.Path(dateless); got != "out/drafts/undated-note/index.md" {
		t.Fatalf("unexpected dateless path %q", got)
	}

	draft := extract.Record{Slug: "wip", Status: "draft", Date: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)}
	if got := layout.Path(draft); got != "out/drafts/wip/index.md" {
		t.Fatalf("unexpected draft path %q", got)
	}
}
