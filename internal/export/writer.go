package export

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-wp2md/internal/logging"
	"github.com/goliatone/go-wp2md/pkg/interfaces"
)

const (
	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
)

// Writer persists rendered documents and tracks which item owns each path
// during a run.
type Writer struct {
	logger  interfaces.Logger
	claimed map[string]int64
	planned map[string]map[int64]struct{}
}

// NewWriter constructs a Writer with an empty claim table.
func NewWriter(logger interfaces.Logger) *Writer {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Writer{
		logger:  logger,
		claimed: make(map[string]int64),
		planned: make(map[string]map[int64]struct{}),
	}
}

// Plan registers that id will be written to path later in the run. A file
// from a previous run owned by a planned item is not reported by Claim; any
// conflict between planned items surfaces as a same run collision instead.
func (w *Writer) Plan(path string, id int64) {
	ids, ok := w.planned[path]
	if !ok {
		ids = make(map[int64]struct{})
		w.planned[path] = ids
	}
	ids[id] = struct{}{}
}

// Claim records that id is about to be written to path. It returns a
// collision warning when another item claimed the path earlier in the run, or
// when a file from a previous run belongs to an item outside this run's plan
// for path. The caller still writes; the later item wins.
func (w *Writer) Claim(path string, id int64) error {
	if previous, ok := w.claimed[path]; ok && previous != id {
		w.claimed[path] = id
		return collisionWarning(path, previous, id, "same run")
	}
	w.claimed[path] = id

	owner, err := existingOwner(path)
	if err != nil {
		w.logger.Debug("export.path.owner_unreadable", "path", path, "error", err)
		return nil
	}
	if _, planned := w.planned[path][owner]; planned {
		return nil
	}
	if owner != 0 && owner != id {
		return collisionWarning(path, owner, id, "file from a previous run")
	}
	return nil
}

// Write creates the parent directories of path and writes content through a
// buffered writer. The file is closed on every exit path and a close failure
// is reported like any other write failure.
func (w *Writer) Write(path string, id int64, content []byte) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return writeError(path, id, err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePerm)
	if err != nil {
		return writeError(path, id, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = writeError(path, id, closeErr)
		}
	}()

	buf := bufio.NewWriter(file)
	if _, err := buf.Write(content); err != nil {
		return writeError(path, id, err)
	}
	if err := buf.Flush(); err != nil {
		return writeError(path, id, err)
	}
	return nil
}

type ownerEnvelope struct {
	WPID int64 `yaml:"wp_id"`
}

// existingOwner reads the wp_id of a file left at path, zero when there is no
// file or no id.
func existingOwner(path string) (int64, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var envelope ownerEnvelope
	if _, err := frontmatter.Parse(file, &envelope); err != nil {
		return 0, fmt.Errorf("parse front matter: %w", err)
	}
	return envelope.WPID, nil
}
