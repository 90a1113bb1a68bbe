package extract

import (
	"context"
	"maps"

	"github.com/goliatone/go-wp2md/internal/logging"
	"github.com/goliatone/go-wp2md/internal/wxr"
)

// Source is a fully parsed export. The input file is closed by the time a
// Source is returned.
type Source struct {
	Path    string
	Channel wxr.Channel
	Records []Record
}

// Load parses path and extracts every item. Nothing is returned unless the
// whole document parsed cleanly. Channel authors are merged into
// opts.Authors so creators resolve to display names.
func Load(ctx context.Context, path string, opts Options) (*Source, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := wxr.Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	channel := reader.Channel()
	authors := channel.AuthorIndex()
	maps.Copy(authors, opts.Authors)
	opts.Authors = authors

	extractor := New(opts)
	source := &Source{Path: path, Channel: channel}
	for item, err := range reader.Items() {
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		source.Records = append(source.Records, extractor.Extract(item))
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	logger.Debug("wxr.document.loaded", "path", path, "items", len(source.Records), "site", channel.Title)
	return source, nil
}

// Find returns the first record whose slug or decimal ID equals key.
func (s *Source) Find(key string) (Record, bool) {
	if s == nil {
		return Record{}, false
	}
	for _, record := range s.Records {
		if record.Slug == key || formatID(record.ID) == key {
			return record, true
		}
	}
	return Record{}, false
}
