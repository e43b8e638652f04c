package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tokenize splits an identifier into words.
// Examples:
//   - "shopName" -> ["shop", "Name"]
//   - "OrderID" -> ["Order", "ID"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "retry_count" -> ["retry", "count"]
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && current.Len() > 0 && startsToken(runes, i) {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsToken reports whether an upper-case rune at i opens a new word:
// after a lower-case rune or digit, or as the last capital of an acronym.
func startsToken(runes []rune, i int) bool {
	r := runes[i]
	if !unicode.IsUpper(r) {
		return false
	}

	prev := runes[i-1]
	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

// title upper-cases the first letter and keeps the rest as written.
// A Caser is stateful, so one is built per call.
func title(s string) string {
	return cases.Title(language.Und, cases.NoLower).String(s)
}
