package wp2md

import (
	"github.com/goliatone/go-wp2md/internal/commands"
	wp2mdcmd "github.com/goliatone/go-wp2md/internal/commands/wp2md"
	"github.com/goliatone/go-wp2md/internal/convert"
	"github.com/goliatone/go-wp2md/internal/export"
	"github.com/goliatone/go-wp2md/internal/extract"
	"github.com/goliatone/go-wp2md/internal/wxr"
)

const (
	TextCodeMalformedInput     = wxr.TextCodeMalformedInput
	TextCodeFieldExtraction    = extract.TextCodeFieldExtraction
	TextCodeConversionFallback = convert.TextCodeConversionFallback
	TextCodeWriteFailed        = export.TextCodeWriteFailed
	TextCodePathCollision      = export.TextCodePathCollision
	TextCodeItemNotFound       = export.TextCodeItemNotFound
	TextCodeItemsFailed        = wp2mdcmd.TextCodeItemsFailed
	TextCodeConfigInvalid      = commands.TextCodeConfigInvalid
)

// IsMalformedInput reports whether err means the input is not a usable WXR
// document. Nothing is written when this error is returned.
func IsMalformedInput(err error) bool { return wxr.IsMalformedInput(err) }

// IsFieldExtractionWarning reports whether err is a per-field warning raised
// while extracting an item.
func IsFieldExtractionWarning(err error) bool { return extract.IsFieldExtractionWarning(err) }

// IsConversionFallback reports whether an item body was kept as raw HTML.
func IsConversionFallback(err error) bool { return convert.IsConversionFallback(err) }

// IsWriteError reports whether err is a per-item write failure.
func IsWriteError(err error) bool { return export.IsWriteError(err) }

// IsPathCollision reports whether err is a path collision warning.
func IsPathCollision(err error) bool { return export.IsPathCollision(err) }

// IsItemNotFound reports whether a preview key matched no post or page.
func IsItemNotFound(err error) bool { return export.IsItemNotFound(err) }

// IsItemsFailed reports whether a create command finished with failed items.
func IsItemsFailed(err error) bool { return wp2mdcmd.IsItemsFailed(err) }

// IsConfigError reports whether a command rejected its configuration.
func IsConfigError(err error) bool { return commands.IsConfigError(err) }
