package quiz

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and removes combining marks, so "Ljubljána"
// and "Ljubljana" normalize to the same string.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize canonicalizes a free-text answer: trim, strip diacritics,
// lowercase. Answers compare equal only by exact equality after this
// transform; there is no fuzzy matching.
func Normalize(value string) string {
	trimmed := strings.TrimSpace(value)
	if stripped, _, err := transform.String(stripMarks, trimmed); err == nil {
		trimmed = stripped
	}
	return strings.ToLower(trimmed)
}
