// Package markdown renders converted Markdown bodies back into HTML so a
// conversion can be checked by eye.
package markdown
