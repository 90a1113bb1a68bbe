// Package export writes extracted WordPress items as Markdown files with YAML
// front matter.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-wp2md/internal/convert"
	"github.com/goliatone/go-wp2md/internal/extract"
	"github.com/goliatone/go-wp2md/internal/identity"
	"github.com/goliatone/go-wp2md/internal/logging"
	"github.com/goliatone/go-wp2md/internal/runtimeconfig"
	"github.com/goliatone/go-wp2md/pkg/interfaces"
)

// maxReportedErrors bounds Summary.Errors; older entries are dropped first.
const maxReportedErrors = 500

// ErrItemNotFound is returned by Preview when no post or page matches.
var ErrItemNotFound = goerrors.New("item not found", goerrors.CategoryNotFound).WithTextCode(TextCodeItemNotFound)

// Summary reports the outcome of a create run. Succeeded, Warned and Failed
// partition Exported.
type Summary struct {
	Source      string
	OutputDir   string
	Total       int
	Exported    int
	Skipped     int
	Attachments int
	Succeeded   int
	Warned      int
	Failed      int
	Collisions  int
	Errors      []*goerrors.Error
}

// HasFailures reports whether any item failed to write.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// String renders the one line summary printed at the end of a run.
func (s Summary) String() string {
	return fmt.Sprintf("%d succeeded, %d warned, %d failed (%d items, %d skipped, %d collisions)",
		s.Succeeded, s.Warned, s.Failed, s.Total, s.Skipped, s.Collisions)
}

// Document is a converted item ready to be written.
type Document struct {
	Record      extract.Record
	FrontMatter FrontMatter
	Body        string
	Path        string
	Warnings    []error
}

// Render returns the file contents.
func (d Document) Render() ([]byte, error) {
	return d.FrontMatter.Render(d.Body)
}

// Option configures a Service.
type Option func(*Service)

// WithLogger injects the logger used by the service.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger == nil {
			logger = logging.NoOp()
		}
		s.logger = logger
	}
}

// WithConverter replaces the html-to-markdown converter. The converter is
// always wrapped with convert.Safe.
func WithConverter(conv interfaces.BodyConverter) Option {
	return func(s *Service) {
		s.converter = conv
	}
}

// WithReaderLogger sets the logger used while parsing and extracting the
// export. Defaults to the service logger.
func WithReaderLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		s.readerLogger = logger
	}
}

// Service runs the create and preview pipelines.
type Service struct {
	cfg          runtimeconfig.Config
	logger       interfaces.Logger
	readerLogger interfaces.Logger
	converter    interfaces.BodyConverter
}

// NewService constructs a Service for cfg.
func NewService(cfg runtimeconfig.Config, opts ...Option) *Service {
	s := &Service{
		cfg:    cfg,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create parses path, converts every exportable item in memory and only then
// writes the output tree. A parse failure returns before anything is written.
// Per-item problems are counted in the Summary and never abort the run.
func (s *Service) Create(ctx context.Context, path string) (Summary, error) {
	ctx = logging.ContextWithFields(ensureContext(ctx), map[string]any{"source": path})
	logger := s.logger.WithContext(ctx)

	summary := Summary{Source: path, OutputDir: s.cfg.OutputDir}

	source, err := s.load(ctx, path)
	if err != nil {
		return summary, err
	}

	docs, skipped := s.prepare(source)
	summary.Total = len(source.Records)
	summary.Skipped = skipped
	summary.Exported = len(docs)
	for _, record := range source.Records {
		if record.Attachment() {
			summary.Attachments++
		}
	}

	if err := os.MkdirAll(s.cfg.OutputDir, dirPerm); err != nil {
		return summary, writeError(s.cfg.OutputDir, 0, err)
	}

	collector := goerrors.NewCollector(goerrors.WithMaxErrors(maxReportedErrors))
	writer := NewWriter(logger)
	for _, doc := range docs {
		writer.Plan(doc.Path, doc.Record.ID)
	}
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			summary.Errors = collector.Errors()
			return summary, err
		}

		itemLogger := logging.WithItemContext(logger, doc.Record.ID, doc.Record.Slug, doc.Record.Type)
		warned := len(doc.Warnings) > 0
		for _, warning := range doc.Warnings {
			collector.Add(warning)
			itemLogger.Warn("export.item.warning", "error", warning)
		}

		if collision := writer.Claim(doc.Path, doc.Record.ID); collision != nil {
			warned = true
			summary.Collisions++
			collector.Add(collision)
			itemLogger.Warn("export.path.collision", "path", doc.Path, "error", collision)
		}

		content, err := doc.Render()
		if err == nil {
			err = writer.Write(doc.Path, doc.Record.ID, content)
		} else {
			err = writeError(doc.Path, doc.Record.ID, err)
		}
		if err != nil {
			summary.Failed++
			collector.Add(err)
			itemLogger.Error("export.item.failed", "path", doc.Path, "error", err)
			continue
		}

		if warned {
			summary.Warned++
		} else {
			summary.Succeeded++
		}
		itemLogger.Debug("export.item.written", "path", doc.Path)
	}

	summary.Errors = collector.Errors()
	logger.Info("export.completed",
		"succeeded", summary.Succeeded,
		"warned", summary.Warned,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
	)
	return summary, nil
}

// Preview converts the post or page whose slug or ID equals key without
// writing anything. Unpublished items are included.
func (s *Service) Preview(ctx context.Context, path, key string) (Document, error) {
	source, err := s.load(ensureContext(ctx), path)
	if err != nil {
		return Document{}, err
	}
	record, ok := source.Find(key)
	if !ok || !record.Exportable(true) {
		return Document{}, goerrors.Wrap(ErrItemNotFound, goerrors.CategoryNotFound, "preview "+strconv.Quote(key))
	}

	docs := s.documents(source, []extract.Record{record})
	return docs[0], nil
}

func (s *Service) load(ctx context.Context, path string) (*extract.Source, error) {
	logger := s.readerLogger
	if logger == nil {
		logger = s.logger
	}
	return extract.Load(ctx, path, extract.Options{
		LowercaseTags: s.cfg.LowercaseTags,
		Logger:        logger,
	})
}

// prepare selects the exportable records and converts them.
func (s *Service) prepare(source *extract.Source) ([]Document, int) {
	selected := make([]extract.Record, 0, len(source.Records))
	skipped := 0
	for _, record := range source.Records {
		if !record.Exportable(s.cfg.IncludeDrafts) {
			skipped++
			continue
		}
		selected = append(selected, record)
	}
	return s.documents(source, selected), skipped
}

func (s *Service) documents(source *extract.Source, records []extract.Record) []Document {
	siteURL := source.Channel.SiteURL()
	conv := convert.Safe(s.bodyConverter(siteURL))
	attachments := attachmentIndex(source.Records)
	layout := Layout{
		Root:      s.cfg.OutputDir,
		DraftsDir: s.cfg.Layout.DraftsDir,
		FileName:  s.cfg.Layout.FileName,
	}

	docs := make([]Document, 0, len(records))
	for _, record := range records {
		doc := Document{
			Record:   record,
			Path:     layout.Path(record),
			Warnings: append([]error(nil), record.Warnings...),
		}
		doc.FrontMatter = NewFrontMatter(record, identity.ItemUUID(siteURL, record.ID).String())
		doc.FrontMatter.Attachments = attachments[record.ID]

		body, warning := conv.Convert(record.BodyHTML)
		if warning != nil {
			doc.Warnings = append(doc.Warnings, warning)
			doc.FrontMatter.ConversionWarning = fallbackNote(warning)
		}
		doc.Body = body
		docs = append(docs, doc)
	}
	return docs
}

func (s *Service) bodyConverter(siteURL string) interfaces.BodyConverter {
	if s.converter != nil {
		return s.converter
	}
	return convert.New(convert.Options{
		Domain:     siteURL,
		Shortcodes: interfaces.ShortcodeMode(s.cfg.Shortcodes),
	})
}

// attachmentIndex groups attachment URLs by parent item, in document order.
func attachmentIndex(records []extract.Record) map[int64][]string {
	index := make(map[int64][]string)
	for _, record := range records {
		if !record.Attachment() || record.ParentID == 0 || record.AttachmentURL == "" {
			continue
		}
		index[record.ParentID] = append(index[record.ParentID], record.AttachmentURL)
	}
	return index
}

func fallbackNote(warning error) string {
	var typed *goerrors.Error
	if errors.As(warning, &typed) {
		return typed.Message
	}
	return warning.Error()
}

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
