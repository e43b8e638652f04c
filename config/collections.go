package config

import (
	"fmt"
	"slices"
)

// DeserializeFunc is the signature of every generated Deserialize function.
type DeserializeFunc[T any] func(ctx *Context) Result[T]

// Serializable is implemented by every generated type.
type Serializable interface {
	Serialize() map[string]any
}

// DeserializeSlice deserializes a sequence of nested mappings element-wise.
// Order is preserved and the first failing element aborts the whole
// sequence; no partial slice is returned.
func DeserializeSlice[T any](ctx *Context, field string, raw any, fn DeserializeFunc[T]) Result[[]T] {
	items, ok := raw.([]any)
	if !ok {
		if err := ctx.Mapper().Map(raw, &items); err != nil {
			return Fail[[]T](&MappingError{Field: field, Cause: err})
		}
	}

	out := make([]T, 0, len(items))

	for i, item := range items {
		data, ok := item.(map[string]any)
		if !ok {
			return Fail[[]T](&ElementError{
				Field: field,
				Index: i,
				Err:   fmt.Errorf("expected a mapping, got %T", item),
			})
		}

		v, err := fn(ctx.WithData(data)).Get()
		if err != nil {
			return Fail[[]T](&ElementError{Field: field, Index: i, Err: err})
		}

		out = append(out, v)
	}

	return Ok(out)
}

// DeserializeMap deserializes every value of a keyed map of nested mappings.
// All keys are kept. Entries are visited in sorted key order so that the
// reported failure is deterministic; the first failure aborts.
func DeserializeMap[K comparable, V any](ctx *Context, field string, raw any, fn DeserializeFunc[V]) Result[map[K]V] {
	entries, err := rawEntries[K](ctx, raw)
	if err != nil {
		return Fail[map[K]V](&MappingError{Field: field, Cause: err})
	}

	keys := make([]K, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}

	slices.SortFunc(keys, func(a, b K) int {
		return compareStrings(fmt.Sprint(a), fmt.Sprint(b))
	})

	out := make(map[K]V, len(entries))

	for _, k := range keys {
		data, ok := entries[k].(map[string]any)
		if !ok {
			return Fail[map[K]V](&ElementError{
				Field: field,
				Index: -1,
				Key:   fmt.Sprint(k),
				Err:   fmt.Errorf("expected a mapping, got %T", entries[k]),
			})
		}

		v, err := fn(ctx.WithData(data)).Get()
		if err != nil {
			return Fail[map[K]V](&ElementError{Field: field, Index: -1, Key: fmt.Sprint(k), Err: err})
		}

		out[k] = v
	}

	return Ok(out)
}

func rawEntries[K comparable](ctx *Context, raw any) (map[K]any, error) {
	if m, ok := raw.(map[K]any); ok {
		return m, nil
	}

	var out map[K]any
	if err := ctx.Mapper().Map(raw, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// SerializeSlice is the inverse of DeserializeSlice.
func SerializeSlice[T Serializable](items []T) []any {
	if items == nil {
		return nil
	}

	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item.Serialize())
	}

	return out
}

// SerializeMap is the inverse of DeserializeMap.
func SerializeMap[K comparable, V Serializable](entries map[K]V) map[K]any {
	if entries == nil {
		return nil
	}

	out := make(map[K]any, len(entries))
	for k, v := range entries {
		out[k] = v.Serialize()
	}

	return out
}
