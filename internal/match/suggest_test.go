package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var directiveArgs = []string{"name", "naming", "record", "tostring", "source", "in"}

func TestRank(t *testing.T) {
	got := Rank("nam", []string{"source", "naming", "name"})
	require.Len(t, got, 3)

	assert.Equal(t, "name", got[0].Name)
	assert.InDelta(t, 0.75, got[0].Score, 1e-9)
	assert.Equal(t, "naming", got[1].Name)
	assert.Equal(t, "source", got[2].Name)
}

func TestRank_StableTies(t *testing.T) {
	got := Rank("zzz", []string{"b", "a", "c"})
	assert.Equal(t, []string{"b", "a", "c"}, []string{got[0].Name, got[1].Name, got[2].Name})
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		known []string
		want  []string
	}{
		{name: "directive typo", in: "shema", known: []string{"schema", "generated"}, want: []string{"schema"}},
		{name: "arg typo", in: "tostrng", known: directiveArgs, want: []string{"tostring"}},
		{name: "case only", in: "ToString", known: directiveArgs, want: []string{"tostring"}},
		{name: "exact", in: "source", known: directiveArgs},
		{name: "empty", in: "", known: directiveArgs},
		{name: "too far", in: "mapper", known: directiveArgs},
		{name: "no known", in: "schema"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.in, tt.known))
		})
	}
}

func TestSuggest_Cap(t *testing.T) {
	known := []string{"aa", "ab", "ac", "ad", "ae"}
	assert.Len(t, SuggestWithThreshold("a", known, 0), MaxSuggestions)
}

func TestHint(t *testing.T) {
	assert.Empty(t, Hint(nil))
	assert.Equal(t, ` (did you mean "schema"?)`, Hint([]string{"schema"}))
	assert.Equal(t, ` (did you mean "name" or "naming"?)`, Hint([]string{"name", "naming"}))
}
