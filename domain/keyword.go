package domain

import (
	"strings"
	"unicode"
)

// NormalizePhrase lowercases and collapses whitespace runs to a single space,
// so "Kill   MYSELF" and "kill myself" are the same phrase.
func NormalizePhrase(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	space := false
	for _, r := range strings.TrimSpace(input) {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space {
			b.WriteRune(' ')
			space = false
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
