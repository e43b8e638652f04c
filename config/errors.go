package config

import (
	"fmt"
)

// NotFoundError reports a required field whose key was absent from the raw
// mapping (or present with a nil value) and which has no default.
type NotFoundError struct {
	// Field is the schema field name.
	Field string
	// Key is the lookup key that was tried.
	Key string
	// Enclosing is the schema type declaring the field.
	Enclosing string
	// Found is the raw value found instead, if any.
	Found any
}

// NotFound builds a NotFoundError. It exists so generated code stays short.
func NotFound(field, key, enclosing string, found any) *NotFoundError {
	return &NotFoundError{Field: field, Key: key, Enclosing: enclosing, Found: found}
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("property %q of %s not found (key %q)", e.Field, e.Enclosing, e.Key)
	if e.Found != nil {
		msg += fmt.Sprintf(", found %v (%T) instead", e.Found, e.Found)
	}

	return msg
}

// MappingError wraps a failure of the generic fallback Mapper.
type MappingError struct {
	Field string
	Cause error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("mapping property %q: %v", e.Field, e.Cause)
}

func (e *MappingError) Unwrap() error {
	return e.Cause
}

// ElementError identifies the element of a sequence (Index) or keyed map
// (Key) that failed to deserialize.
type ElementError struct {
	Field string
	// Index is the sequence position, or -1 for map entries.
	Index int
	// Key is the map key, empty for sequence elements.
	Key string
	Err error
}

func (e *ElementError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("property %q element %d: %v", e.Field, e.Index, e.Err)
	}

	return fmt.Sprintf("property %q entry %q: %v", e.Field, e.Key, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}
