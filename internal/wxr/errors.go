package wxr

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// TextCodeMalformedInput tags parse failures that abort a run.
const TextCodeMalformedInput = "WXR_MALFORMED_INPUT"

func malformed(path string, source error, reason string) error {
	message := fmt.Sprintf("malformed WXR input %s: %s", displayPath(path), reason)
	if source == nil {
		return goerrors.New(message, goerrors.CategoryBadInput).
			WithTextCode(TextCodeMalformedInput).
			WithMetadata(map[string]any{"path": path})
	}
	return goerrors.Wrap(source, goerrors.CategoryBadInput, message).
		WithTextCode(TextCodeMalformedInput).
		WithMetadata(map[string]any{"path": path})
}

// IsMalformedInput reports whether err signals an unreadable or structurally
// invalid export.
func IsMalformedInput(err error) bool {
	var target *goerrors.Error
	if !goerrors.As(err, &target) {
		return false
	}
	return target.TextCode == TextCodeMalformedInput
}

func displayPath(path string) string {
	if path == "" {
		return "<stream>"
	}
	return path
}
