package export

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	// TextCodeWriteFailed marks an item whose file could not be written.
	TextCodeWriteFailed = "WRITE_FAILED"
	// TextCodePathCollision marks two items resolving to the same file.
	TextCodePathCollision = "PATH_COLLISION"
	// TextCodeItemNotFound marks a preview key that matched no post or page.
	TextCodeItemNotFound = "ITEM_NOT_FOUND"
)

func writeError(path string, id int64, source error) error {
	return goerrors.Wrap(source, goerrors.CategoryOperation, fmt.Sprintf("write %s", path)).
		WithTextCode(TextCodeWriteFailed).
		WithMetadata(map[string]any{"path": path, "item_id": id})
}

func collisionWarning(path string, previous, current int64, reason string) error {
	return goerrors.NewWarning(
		fmt.Sprintf("%s: item %d replaces item %d (%s)", path, current, previous, reason),
		goerrors.CategoryConflict,
	).
		WithTextCode(TextCodePathCollision).
		WithMetadata(map[string]any{"path": path, "previous_id": previous, "item_id": current})
}

// IsWriteError reports whether err is a per-item write failure.
func IsWriteError(err error) bool {
	return hasTextCode(err, TextCodeWriteFailed)
}

// IsPathCollision reports whether err is a path collision warning.
func IsPathCollision(err error) bool {
	return hasTextCode(err, TextCodePathCollision)
}

// IsItemNotFound reports whether err came from a preview lookup miss.
func IsItemNotFound(err error) bool {
	return hasTextCode(err, TextCodeItemNotFound)
}

func hasTextCode(err error, code string) bool {
	var target *goerrors.Error
	if !goerrors.As(err, &target) {
		return false
	}
	return target.TextCode == code
}
