package extract

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/goliatone/go-slug"
)

// Slugify lowercases value, turns runs of spaces and punctuation into single
// hyphens and drops anything outside [a-z0-9-].
func Slugify(value string) string {
	return slugifyWith(slug.Default(), value)
}

func slugifyWith(normalizer slug.Normalizer, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	candidate := value
	if normalizer != nil {
		if normalized, err := normalizer.Normalize(value); err == nil && normalized != "" {
			candidate = normalized
		}
	}
	return asciiSlug(candidate)
}

func asciiSlug(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	pendingHyphen := false
	for _, r := range strings.ToLower(value) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == '\'' || r == '\u2019':
			// apostrophes join words: "Don't" -> "dont"
		case r > 0x7f && !isSeparatorRune(r):
			// non-ASCII letters the normalizer could not transliterate
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}

func isSeparatorRune(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func fallbackSlug(id int64) string {
	return "item-" + formatID(id)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
