package convert

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-wp2md/pkg/interfaces"
)

// TextCodeConversionFallback tags bodies that were kept as raw HTML.
const TextCodeConversionFallback = "CONVERSION_FALLBACK"

// SafeConverter wraps a BodyConverter so conversion never fails. When the
// wrapped converter errors or panics, the input HTML is returned unchanged
// together with a warning-severity ConversionFallback error.
type SafeConverter struct {
	next interfaces.BodyConverter
}

var _ interfaces.BodyConverter = (*SafeConverter)(nil)

// Safe wraps next.
func Safe(next interfaces.BodyConverter) *SafeConverter {
	return &SafeConverter{next: next}
}

// Convert always returns a usable body. A non-nil error is a fallback
// warning, never a reason to drop the item.
func (s *SafeConverter) Convert(html string) (markdown string, warning error) {
	if s == nil || s.next == nil {
		return html, fallback(nil, "no converter configured")
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			markdown = html
			warning = fallback(nil, fmt.Sprintf("converter panicked: %v", recovered))
		}
	}()

	converted, err := s.next.Convert(html)
	if err != nil {
		return html, fallback(err, "converter failed")
	}
	return converted, nil
}

func fallback(source error, reason string) error {
	message := "body kept as HTML: " + reason
	if source == nil {
		return goerrors.NewWarning(message, goerrors.CategoryExternal).
			WithTextCode(TextCodeConversionFallback)
	}
	return goerrors.Wrap(source, goerrors.CategoryExternal, message).
		WithTextCode(TextCodeConversionFallback).
		WithSeverity(goerrors.SeverityWarning)
}

// IsConversionFallback reports whether err marks a raw HTML fallback.
func IsConversionFallback(err error) bool {
	var target *goerrors.Error
	if !goerrors.As(err, &target) {
		return false
	}
	return target.TextCode == TextCodeConversionFallback
}
