package export

import (
	"fmt"
	"path/filepath"

	"github.com/goliatone/go-wp2md/internal/extract"
)

// Layout maps records onto the output tree.
type Layout struct {
	Root      string
	DraftsDir string
	FileName  string
}

// Path returns <root>/<yyyy>/<mm>/<slug>/<file> for dated published records
// and <root>/<drafts>/<slug>/<file> for drafts and dateless records. The
// year and month come from the site's local date.
func (l Layout) Path(record extract.Record) string {
	if record.Dateless || record.Draft() {
		return filepath.Join(l.Root, l.DraftsDir, record.Slug, l.FileName)
	}
	date := record.Date
	return filepath.Join(
		l.Root,
		fmt.Sprintf("%04d", date.Year()),
		fmt.Sprintf("%02d", int(date.Month())),
		record.Slug,
		l.FileName,
	)
}
