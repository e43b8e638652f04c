package config

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Mapper converts an untyped value into the value pointed to by out. It is
// the fallback used when no generated shortcut applies.
type Mapper interface {
	Map(value any, out any) error
}

// MapperFunc adapts a function to the Mapper interface.
type MapperFunc func(value any, out any) error

// Map calls f.
func (f MapperFunc) Map(value any, out any) error {
	return f(value, out)
}

// JSONMapper maps values by encoding them to JSON and decoding the result
// into the target. It handles the numeric widening that YAML and JSON
// readers introduce (for example float64 into int).
type JSONMapper struct{}

// Map implements Mapper.
func (JSONMapper) Map(value any, out any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %T: %w", value, err)
	}

	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decoding into %T: %w", out, err)
	}

	return nil
}

// MapValue asks the context's mapper for a T. Failures are reported as a
// MappingError for field.
func MapValue[T any](ctx *Context, field string, raw any) Result[T] {
	var out T
	if err := ctx.Mapper().Map(raw, &out); err != nil {
		return Fail[T](&MappingError{Field: field, Cause: err})
	}

	return Ok(out)
}
