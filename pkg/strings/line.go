// Package strings holds small text helpers for terminal output.
package strings

import (
	"strings"
)

// MinTruncateLen is the smallest useful limit for Truncate: one character
// plus the "..." marker.
const MinTruncateLen = 4

// SingleLine collapses every run of whitespace, newlines included, into a
// single space and trims both ends.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate returns SingleLine(s), cut to at most maxLen runes with a
// trailing "..." when it was longer. A maxLen below MinTruncateLen is
// raised to it.
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}
	s = SingleLine(s)
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
