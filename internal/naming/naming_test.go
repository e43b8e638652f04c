package naming

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPattern_Format(t *testing.T) {
	tests := []struct {
		pattern Pattern
		want    string
	}{
		{Identity, "helloWorld"},
		{LowerCamel, "helloWorld"},
		{UpperCamel, "HelloWorld"},
		{LowerSnake, "hello_world"},
		{UpperSnake, "Hello_World"},
		{LowerKebab, "hello-world"},
		{UpperKebab, "Hello-World"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pattern.Format("helloWorld"))
		})
	}
}

func TestPattern_FormatAcronyms(t *testing.T) {
	assert.Equal(t, "http_server", LowerSnake.Format("HTTPServer"))
	assert.Equal(t, "id", LowerCamel.Format("ID"))
	assert.Equal(t, "shopName", LowerCamel.Format("ShopName"))

	// A leading acronym is lowercased as a whole, not just its first rune.
	assert.Equal(t, "httpTimeout", LowerCamel.Format("HTTPTimeout"))
	assert.Equal(t, "urlPath", LowerCamel.Format("URLPath"))
	assert.Equal(t, "retry-count", LowerKebab.Format("retry_count"))
	assert.Equal(t, "item2-name", LowerKebab.Format("item2Name"))
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"shopName", []string{"shop", "Name"}},
		{"OrderID", []string{"Order", "ID"}},
		{"XMLParser", []string{"XML", "Parser"}},
		{"getHTTPResponse", []string{"get", "HTTP", "Response"}},
		{"retry_count", []string{"retry", "count"}},
		{"log-level", []string{"log", "level"}},
		{"__x", []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestParsePattern(t *testing.T) {
	for _, p := range Patterns {
		got, err := ParsePattern(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	got, err := ParsePattern("kebab-case")
	require.NoError(t, err)
	assert.Equal(t, LowerKebab, got)

	_, err = ParsePattern("shouting")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shouting")

	_, err = ParsePattern("lower-kebap")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown naming pattern "lower-kebap" (did you mean "lower-kebab"`)
}

func TestPattern_StringOutOfRange(t *testing.T) {
	assert.Equal(t, "Pattern(42)", Pattern(42).String())
}

func TestResolver_Precedence(t *testing.T) {
	r := NewResolver(0)

	// explicit override beats any pattern
	assert.Equal(t, "field-name",
		r.Resolve("fieldName", Override("field-name"), Apply(LowerSnake), Apply(UpperCamel)))

	// field pattern beats type pattern
	assert.Equal(t, "field_name", r.Resolve("fieldName", None(), Apply(LowerSnake), Apply(LowerKebab)))

	// type pattern alone
	assert.Equal(t, "field-name", r.Resolve("fieldName", None(), None(), Apply(LowerKebab)))

	// identity fallback
	assert.Equal(t, "fieldName", r.Resolve("fieldName", None(), None(), None()))
	assert.Equal(t, "fieldName", r.Resolve("fieldName"))
}

func TestResolver_Memoises(t *testing.T) {
	r := NewResolver(8)

	assert.Equal(t, "shop_name", r.Format(LowerSnake, "ShopName"))
	assert.Equal(t, "shop_name", r.Format(LowerSnake, "ShopName"))
	assert.Equal(t, 1, r.Len())

	// identity is never cached
	r.Format(Identity, "ShopName")
	assert.Equal(t, 1, r.Len())
}

func TestResolver_Concurrent(t *testing.T) {
	r := NewResolver(16)

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, p := range Patterns {
				r.Format(p, "concurrentFieldName")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, "concurrent-field-name", r.Format(LowerKebab, "concurrentFieldName"))
}
