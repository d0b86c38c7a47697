package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake converts a Go identifier to lower snake_case, keeping
// initialisms together (IPAddress -> ip_address, UserID -> user_id).
func ToLowerSnake(s string) string {
	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && isWordStart(runes, i) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// isWordStart reports whether the upper-case rune at i opens a new word.
func isWordStart(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}

	// end of an initialism followed by a regular word: "HTTPServer" at 'S'
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
