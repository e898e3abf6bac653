package internal

import (
	"strings"
	"unicode"
)

// SanitizeFilename creates a safe filename from a string. Letters keep
// their accents; anything else but digits, '-' and '_' becomes '_'.
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "deck"
	}
	return b.String()
}
