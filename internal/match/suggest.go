package match

import (
	"slices"
	"strings"
)

// DefaultThreshold is the minimum NormalizedSimilarity for a suggestion.
const DefaultThreshold = 0.6

// MaxSuggestions caps how many names Suggest returns.
const MaxSuggestions = 3

// Candidate is a known name scored against an unknown one.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every known name against name, best first. Ties keep the
// order of known.
func Rank(name string, known []string) []Candidate {
	out := make([]Candidate, 0, len(known))
	for _, k := range known {
		out = append(out, Candidate{Name: k, Score: NormalizedSimilarity(name, k)})
	}

	slices.SortStableFunc(out, func(a, b Candidate) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	return out
}

// Suggest returns up to MaxSuggestions known names that are at least
// DefaultThreshold similar to name. An exact match yields nothing, since
// there is nothing to correct.
func Suggest(name string, known []string) []string {
	return SuggestWithThreshold(name, known, DefaultThreshold)
}

// SuggestWithThreshold is Suggest with a caller-chosen threshold.
func SuggestWithThreshold(name string, known []string, threshold float64) []string {
	if name == "" || slices.Contains(known, name) {
		return nil
	}

	var out []string
	for _, c := range Rank(name, known) {
		if c.Score < threshold || len(out) == MaxSuggestions {
			break
		}
		out = append(out, c.Name)
	}

	return out
}

// Hint formats suggestions as a message suffix: "" when there are none,
// otherwise ` (did you mean "a" or "b"?)`.
func Hint(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}

	quoted := make([]string, len(suggestions))
	for i, s := range suggestions {
		quoted[i] = `"` + s + `"`
	}

	return " (did you mean " + strings.Join(quoted, " or ") + "?)"
}
