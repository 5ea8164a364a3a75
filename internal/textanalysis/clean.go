package textanalysis

import (
	"strings"
	"unicode"
)

// CleanText trims the text, collapses whitespace runs to a single space and
// drops every character that is not a letter, digit, whitespace or one of . , ! ? -
func CleanText(raw string) string {
	collapsed := strings.Join(strings.Fields(raw), " ")
	if collapsed == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(collapsed))
	for _, r := range collapsed {
		if keepRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CleanValue cleans v when it holds a string and returns "" otherwise
func CleanValue(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return CleanText(s)
}

func keepRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '.', ',', '!', '?', '-':
		return true
	}
	return false
}

// isAlphanumeric reports whether s is non-empty and made only of letters and digits
func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
