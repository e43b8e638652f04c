package naming

import (
	"fmt"
	"slices"
	"strings"

	"confgen/internal/match"
)

//go:generate go tool stringer -type=Pattern -linecomment

// Pattern is a naming transform applied to a Go field name.
type Pattern int

const (
	Identity   Pattern = iota // identity
	LowerCamel                // lower-camel
	UpperCamel                // upper-camel
	LowerSnake                // lower-snake
	UpperSnake                // upper-snake
	LowerKebab                // lower-kebab
	UpperKebab                // upper-kebab
)

// Patterns lists every pattern in declaration order.
var Patterns = []Pattern{Identity, LowerCamel, UpperCamel, LowerSnake, UpperSnake, LowerKebab, UpperKebab}

var patternAliases = map[string]Pattern{
	"default":    Identity,
	"camelCase":  LowerCamel,
	"PascalCase": UpperCamel,
	"snake_case": LowerSnake,
	"kebab-case": LowerKebab,
}

// ParsePattern parses a pattern name such as "lower-kebab" or "kebab-case".
func ParsePattern(s string) (Pattern, error) {
	for _, p := range Patterns {
		if strings.EqualFold(p.String(), s) {
			return p, nil
		}
	}

	if p, ok := patternAliases[s]; ok {
		return p, nil
	}

	names := make([]string, 0, len(Patterns)+len(patternAliases))
	for _, p := range Patterns {
		names = append(names, p.String())
	}
	for alias := range patternAliases {
		names = append(names, alias)
	}
	slices.Sort(names)

	return Identity, fmt.Errorf("unknown naming pattern %q%s", s, match.Hint(match.Suggest(s, names)))
}

// Format applies the pattern to name without caching.
func (p Pattern) Format(name string) string {
	if p == Identity {
		return name
	}

	tokens := Tokenize(name)
	if len(tokens) == 0 {
		return name
	}

	switch p {
	case LowerCamel:
		out := make([]string, len(tokens))
		out[0] = strings.ToLower(tokens[0])
		for j, t := range tokens[1:] {
			out[j+1] = title(t)
		}
		return strings.Join(out, "")
	case UpperCamel:
		return join(tokens, "", title)
	case LowerSnake:
		return join(tokens, "_", strings.ToLower)
	case UpperSnake:
		return join(tokens, "_", title)
	case LowerKebab:
		return join(tokens, "-", strings.ToLower)
	case UpperKebab:
		return join(tokens, "-", title)
	default:
		return name
	}
}

func join(tokens []string, sep string, f func(string) string) string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = f(t)
	}

	return strings.Join(out, sep)
}
