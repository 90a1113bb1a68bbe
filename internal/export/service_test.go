package export_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/adrg/frontmatter"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-wp2md/internal/export"
	"github.com/goliatone/go-wp2md/internal/runtimeconfig"
	"github.com/goliatone/go-wp2md/internal/wxr"
	"github.com/goliatone/go-wp2md/pkg/interfaces"
)

func newConfig(t *testing.T) runtimeconfig.Config {
	t.Helper()
	cfg := runtimeconfig.DefaultConfig()
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")
	return cfg
}

func readDocument(t *testing.T, path string) (export.FrontMatter, string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var fm export.FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	require.NoError(t, err)
	return fm, string(body)
}

func TestCreateWritesPublishableItems(t *testing.T) {
	cfg := newConfig(t)
	svc := export.NewService(cfg)

	summary, err := svc.Create(context.Background(), filepath.Join("testdata", "site.xml"))
	require.NoError(t, err)
	require.Equal(t, 6, summary.Total)
	require.Equal(t, 3, summary.Exported)
	require.Equal(t, 3, summary.Skipped)
	require.Equal(t, 1, summary.Attachments)
	require.Equal(t, 3, summary.Succeeded)
	require.Zero(t, summary.Warned)
	require.Zero(t, summary.Failed)
	require.False(t, summary.HasFailures())

	fm, body := readDocument(t, filepath.Join(cfg.OutputDir, "2024", "03", "hello-world", "index.md"))
	require.Equal(t, "Hello World", fm.Title)
	require.Equal(t, "hello-world", fm.Slug)
	require.Equal(t, "2024-03-14T15:09:26Z", fm.Date)
	require.Equal(t, "2024-03-15T08:00:00Z", fm.Lastmod)
	require.Equal(t, "Ada Admin", fm.Author)
	require.Equal(t, int64(1), fm.WPID)
	require.NotEmpty(t, fm.UID)
	require.Equal(t, "A first post.", fm.Summary)
	require.Equal(t, []string{"Go", "Testing"}, fm.Tags)
	require.Equal(t, []string{"News"}, fm.Categories)
	require.Equal(t, []string{"/2024/03/hello-world/"}, fm.Aliases)
	require.Equal(t, []string{"https://example.com/wp-content/uploads/2024/03/hello.png"}, fm.Attachments)
	require.Equal(t, map[string]string{"mood": "happy"}, fm.CustomFields)
	require.False(t, fm.Draft)
	require.Contains(t, body, "**WordPress**")
	require.Contains(t, body, `[gallery ids="5"]`)

	page, _ := readDocument(t, filepath.Join(cfg.OutputDir, "2023", "01", "about", "index.md"))
	require.Equal(t, "page", page.Type)

	undated, _ := readDocument(t, filepath.Join(cfg.OutputDir, "drafts", "undated-note", "index.md"))
	require.Empty(t, undated.Date)
	require.Equal(t, []string{"GO"}, undated.Tags)

	_, err = os.Stat(filepath.Join(cfg.OutputDir, "drafts", "work-in-progress"))
	require.True(t, errors.Is(err, os.ErrNotExist), "drafts are excluded by default")
}

func TestCreateIsIdempotent(t *testing.T) {
	cfg := newConfig(t)
	svc := export.NewService(cfg)
	source := filepath.Join("testdata", "site.xml")

	_, err := svc.Create(context.Background(), source)
	require.NoError(t, err)
	first := snapshot(t, cfg.OutputDir)

	summary, err := svc.Create(context.Background(), source)
	require.NoError(t, err)
	require.Zero(t, summary.Collisions)
	second := snapshot(t, cfg.OutputDir)

	require.Equal(t, first, second)
}

func TestCreateIncludesDraftsWhenRequested(t *testing.T) {
	cfg := newConfig(t)
	cfg.IncludeDrafts = true

	summary, err := export.NewService(cfg).Create(context.Background(), filepath.Join("testdata", "site.xml"))
	require.NoError(t, err)
	require.Equal(t, 4, summary.Exported)

	fm, _ := readDocument(t, filepath.Join(cfg.OutputDir, "drafts", "work-in-progress", "index.md"))
	require.True(t, fm.Draft)
}

func TestCreateMalformedInputLeavesNoOutput(t *testing.T) {
	cfg := newConfig(t)

	_, err := export.NewService(cfg).Create(context.Background(), filepath.Join("testdata", "malformed.xml"))
	require.Error(t, err)
	require.True(t, wxr.IsMalformedInput(err))

	_, statErr := os.Stat(cfg.OutputDir)
	require.True(t, errors.Is(statErr, os.ErrNotExist), "output directory must not be created")
}

func TestCreateCollisionWarnsAndLaterItemWins(t *testing.T) {
	cfg := newConfig(t)
	logger := &recordingLogger{}

	summary, err := export.NewService(cfg, export.WithLogger(logger)).Create(context.Background(), filepath.Join("testdata", "collision.xml"))
	require.NoError(t, err)
	require.Equal(t, 1, summary.Collisions)
	require.Equal(t, 1, summary.Warned)
	require.Equal(t, 1, summary.Succeeded)

	fm, body := readDocument(t, filepath.Join(cfg.OutputDir, "2024", "05", "test", "index.md"))
	require.Equal(t, int64(11), fm.WPID)
	require.Contains(t, body, "second version")

	require.Equal(t, 1, logger.count("warn", "export.path.collision"))

	collisions := 0
	for _, e := range summary.Errors {
		if export.IsPathCollision(e) {
			collisions++
		}
	}
	require.Equal(t, 1, collisions)
}

func TestCreateRerunWithCollisionReportsItOnce(t *testing.T) {
	cfg := newConfig(t)
	svc := export.NewService(cfg)
	source := filepath.Join("testdata", "collision.xml")

	first, err := svc.Create(context.Background(), source)
	require.NoError(t, err)
	require.Equal(t, 1, first.Collisions)

	second, err := svc.Create(context.Background(), source)
	require.NoError(t, err)
	require.Equal(t, 1, second.Collisions)
	require.Equal(t, 1, second.Warned)
	require.Equal(t, 1, second.Succeeded)

	fm, _ := readDocument(t, filepath.Join(cfg.OutputDir, "2024", "05", "test", "index.md"))
	require.Equal(t, int64(11), fm.WPID)
}

func TestCreateWritesSiteOffsetDates(t *testing.T) {
	cfg := newConfig(t)

	summary, err := export.NewService(cfg).Create(context.Background(), filepath.Join("testdata", "offset.xml"))
	require.NoError(t, err)
	require.Equal(t, 2, summary.Succeeded)

	zoned, _ := readDocument(t, filepath.Join(cfg.OutputDir, "2024", "01", "new-year", "index.md"))
	require.Equal(t, "2024-01-01T01:30:00+03:00", zoned.Date)
	require.Equal(t, "2024-01-02T09:00:00+03:00", zoned.Lastmod)

	floating, _ := readDocument(t, filepath.Join(cfg.OutputDir, "2024", "02", "local-only", "index.md"))
	require.Equal(t, "2024-02-10T18:45:00", floating.Date)
}

func TestCreateReportsFilesFromPreviousRunsOwnedByOtherItems(t *testing.T) {
	cfg := newConfig(t)
	stale := filepath.Join(cfg.OutputDir, "2023", "01", "about", "index.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("---\nwp_id: 99\n---\nold\n"), 0o644))

	summary, err := export.NewService(cfg).Create(context.Background(), filepath.Join("testdata", "site.xml"))
	require.NoError(t, err)
	require.Equal(t, 1, summary.Collisions)

	fm, _ := readDocument(t, stale)
	require.Equal(t, int64(2), fm.WPID)
}

func TestCreateContinuesAfterWriteFailure(t *testing.T) {
	cfg := newConfig(t)
	blocked := filepath.Join(cfg.OutputDir, "2023", "01", "about", "index.md")
	require.NoError(t, os.MkdirAll(blocked, 0o755))

	summary, err := export.NewService(cfg).Create(context.Background(), filepath.Join("testdata", "site.xml"))
	require.NoError(t, err)
	require.Equal(t, 1, summary.Failed)
	require.Equal(t, 2, summary.Succeeded)
	require.True(t, summary.HasFailures())

	var writeErrors int
	for _, e := range summary.Errors {
		if export.IsWriteError(e) {
			writeErrors++
			require.True(t, goerrors.IsCategory(e, goerrors.CategoryOperation))
		}
	}
	require.Equal(t, 1, writeErrors)

	_, err = os.Stat(filepath.Join(cfg.OutputDir, "2024", "03", "hello-world", "index.md"))
	require.NoError(t, err)
}

func TestCreateFallsBackToRawHTML(t *testing.T) {
	cfg := newConfig(t)
	failing := interfaces.BodyConverterFunc(func(string) (string, error) {
		return "", errors.New("converter offline")
	})

	summary, err := export.NewService(cfg, export.WithConverter(failing)).Create(context.Background(), filepath.Join("testdata", "site.xml"))
	require.NoError(t, err)
	require.Equal(t, 3, summary.Warned)
	require.Zero(t, summary.Failed)

	fm, body := readDocument(t, filepath.Join(cfg.OutputDir, "2024", "03", "hello-world", "index.md"))
	require.NotEmpty(t, fm.ConversionWarning)
	require.Contains(t, body, "<strong>WordPress</strong>")
}

func TestCreateHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := export.NewService(newConfig(t)).Create(ctx, filepath.Join("testdata", "site.xml"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestPreviewFindsItemsBySlugOrID(t *testing.T) {
	svc := export.NewService(newConfig(t))
	source := filepath.Join("testdata", "site.xml")

	doc, err := svc.Preview(context.Background(), source, "hello-world")
	require.NoError(t, err)
	require.Equal(t, int64(1), doc.Record.ID)
	require.Contains(t, doc.Body, "**WordPress**")

	draft, err := svc.Preview(context.Background(), source, "3")
	require.NoError(t, err)
	require.True(t, draft.FrontMatter.Draft)

	_, err = svc.Preview(context.Background(), source, "5")
	require.Error(t, err)
	require.True(t, goerrors.IsCategory(err, goerrors.CategoryNotFound))
	require.True(t, export.IsItemNotFound(err))
}

func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[strings.TrimPrefix(path, root)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return files
}

type logEntry struct {
	level string
	msg   string
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (r *recordingLogger) record(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, logEntry{level: level, msg: msg})
}

func (r *recordingLogger) count(level, msg string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, entry := range r.entries {
		if entry.level == level && entry.msg == msg {
			total++
		}
	}
	return total
}

func (r *recordingLogger) Trace(msg string, _ ...any) { r.record("trace", msg) }
func (r *recordingLogger) Debug(msg string, _ ...any) { r.record("debug", msg) }
func (r *recordingLogger) Info(msg string, _ ...any)  { r.record("info", msg) }
func (r *recordingLogger) Warn(msg string, _ ...any)  { r.record("warn", msg) }
func (r *recordingLogger) Error(msg string, _ ...any) { r.record("error", msg) }
func (r *recordingLogger) Fatal(msg string, _ ...any) { r.record("fatal", msg) }

func (r *recordingLogger) WithFields(map[string]any) interfaces.Logger { return r }

func (r *recordingLogger) WithContext(context.Context) interfaces.Logger { return r }
