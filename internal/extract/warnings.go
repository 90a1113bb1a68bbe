package extract

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// TextCodeFieldExtraction tags recoverable field problems.
const TextCodeFieldExtraction = "FIELD_EXTRACTION"

func fieldWarning(id int64, field, value, reason string) error {
	return goerrors.NewWarning(fmt.Sprintf("item %d: %s %s", id, field, reason), goerrors.CategoryValidation).
		WithTextCode(TextCodeFieldExtraction).
		WithMetadata(map[string]any{
			"item_id": id,
			"field":   field,
			"value":   value,
		})
}

// IsFieldExtractionWarning reports whether err is a recovered field problem.
func IsFieldExtractionWarning(err error) bool {
	var target *goerrors.Error
	if !goerrors.As(err, &target) {
		return false
	}
	return target.TextCode == TextCodeFieldExtraction
}
