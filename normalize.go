package docsearch

import (
	"strings"
	"unicode"
)

// Normalize lowercases raw, replaces every rune that is not a letter, digit
// or whitespace with a space, collapses runs of whitespace to a single space
// and trims the result. Normalize is idempotent.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Terms splits normalized text into its whitespace-separated terms.
// Empty terms are discarded.
func Terms(normalized string) []string {
	return strings.Fields(normalized)
}
