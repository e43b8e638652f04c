package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier so that spelling variants of the same
// name compare equal: "lower-snake", "LowerSnake" and "lower_snake" all
// normalize to "lowersnake".
func NormalizeIdent(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}
