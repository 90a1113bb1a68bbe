package stats

import (
	"context"

	"github.com/goliatone/go-wp2md/internal/extract"
	"github.com/goliatone/go-wp2md/internal/logging"
	"github.com/goliatone/go-wp2md/pkg/interfaces"
)

// Options configures Run.
type Options struct {
	LowercaseTags bool
	Logger        interfaces.Logger
}

// Run parses path and aggregates every item.
func Run(ctx context.Context, path string, opts Options) (Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	source, err := extract.Load(ctx, path, extract.Options{
		LowercaseTags: opts.LowercaseTags,
		Logger:        logger,
	})
	if err != nil {
		return Report{}, err
	}

	report := Collect(source.Channel, source.Records)
	logger.Info("stats.collected", "items", report.Total, "tags", report.Tags, "categories", report.Categories)
	return report, nil
}
