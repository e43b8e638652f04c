package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	name string
}

func (i *item) Serialize() map[string]any {
	return map[string]any{"name": i.name}
}

func deserializeItem(ctx *Context) Result[*item] {
	raw, ok := ctx.Data()["name"]
	if !ok || raw == nil {
		return Fail[*item](NotFound("Name", "name", "ItemConfig", nil))
	}

	name, ok := raw.(string)
	if !ok {
		return Fail[*item](&MappingError{Field: "Name", Cause: errors.New("not a string")})
	}

	return Ok(&item{name: name})
}

func TestDeserializeSlice_PreservesOrder(t *testing.T) {
	ctx := NewContext(nil, nil)
	raw := []any{
		map[string]any{"name": "first"},
		map[string]any{"name": "second"},
	}

	items, err := DeserializeSlice(ctx, "Items", raw, deserializeItem).Get()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].name)
	assert.Equal(t, "second", items[1].name)
}

func TestDeserializeSlice_FailsOnFirstBadElement(t *testing.T) {
	ctx := NewContext(nil, nil)
	raw := []any{
		map[string]any{"name": "first"},
		map[string]any{},
		map[string]any{"name": 3},
	}

	res := DeserializeSlice(ctx, "Items", raw, deserializeItem)
	require.False(t, res.IsOk())
	assert.Nil(t, res.Value(), "no partial collection on failure")

	var elemErr *ElementError
	require.ErrorAs(t, res.Err(), &elemErr)
	assert.Equal(t, 1, elemErr.Index)
	assert.Equal(t, "Items", elemErr.Field)

	var notFound *NotFoundError
	require.ErrorAs(t, res.Err(), &notFound)
	assert.Equal(t, "Name", notFound.Field)
}

func TestDeserializeSlice_NonMappingElement(t *testing.T) {
	res := DeserializeSlice(NewContext(nil, nil), "Items", []any{"nope"}, deserializeItem)

	var elemErr *ElementError
	require.ErrorAs(t, res.Err(), &elemErr)
	assert.Equal(t, 0, elemErr.Index)
	assert.Contains(t, elemErr.Error(), "expected a mapping")
}

func TestDeserializeSlice_UsesMapperForTypedSlices(t *testing.T) {
	raw := []map[string]any{{"name": "typed"}}

	items, err := DeserializeSlice(NewContext(nil, nil), "Items", raw, deserializeItem).Get()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "typed", items[0].name)
}

func TestDeserializeSlice_NotASequence(t *testing.T) {
	res := DeserializeSlice(NewContext(nil, nil), "Items", "scalar", deserializeItem)

	var mappingErr *MappingError
	require.ErrorAs(t, res.Err(), &mappingErr)
	assert.Equal(t, "Items", mappingErr.Field)
}

func TestDeserializeMap_KeepsAllKeys(t *testing.T) {
	raw := map[string]any{
		"a": map[string]any{"name": "alpha"},
		"b": map[string]any{"name": "beta"},
	}

	out, err := DeserializeMap[string](NewContext(nil, nil), "Stock", raw, deserializeItem).Get()
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "alpha", out["a"].name)
	assert.Equal(t, "beta", out["b"].name)
}

func TestDeserializeMap_ConvertsKeys(t *testing.T) {
	raw := map[string]any{
		"1": map[string]any{"name": "one"},
	}

	out, err := DeserializeMap[int](NewContext(nil, nil), "ByID", raw, deserializeItem).Get()
	require.NoError(t, err)
	assert.Equal(t, "one", out[1].name)
}

func TestDeserializeMap_FirstFailureInKeyOrder(t *testing.T) {
	raw := map[string]any{
		"c": map[string]any{},
		"a": map[string]any{"name": "ok"},
		"b": map[string]any{},
	}

	res := DeserializeMap[string](NewContext(nil, nil), "Stock", raw, deserializeItem)

	var elemErr *ElementError
	require.ErrorAs(t, res.Err(), &elemErr)
	assert.Equal(t, "b", elemErr.Key)
	assert.Equal(t, -1, elemErr.Index)
}

func TestSerializeHelpers(t *testing.T) {
	items := []*item{{name: "x"}, {name: "y"}}
	assert.Equal(t, []any{
		map[string]any{"name": "x"},
		map[string]any{"name": "y"},
	}, SerializeSlice(items))
	assert.Nil(t, SerializeSlice[*item](nil))

	entries := map[string]*item{"k": {name: "v"}}
	assert.Equal(t, map[string]any{"k": map[string]any{"name": "v"}}, SerializeMap(entries))
}

func TestMapValue(t *testing.T) {
	ctx := NewContext(nil, nil)

	v, err := MapValue[int](ctx, "Port", float64(8080)).Get()
	require.NoError(t, err)
	assert.Equal(t, 8080, v)

	_, err = MapValue[int](ctx, "Port", "not a number").Get()

	var mappingErr *MappingError
	require.ErrorAs(t, err, &mappingErr)
	assert.Equal(t, "Port", mappingErr.Field)
}

func TestContext_WithDataSharesMapper(t *testing.T) {
	calls := 0
	mapper := MapperFunc(func(value any, out any) error {
		calls++
		return JSONMapper{}.Map(value, out)
	})

	root := NewContext(map[string]any{"a": 1}, mapper)
	child := root.WithData(map[string]any{"b": 2})

	assert.Equal(t, map[string]any{"b": 2}, child.Data())

	_, err := MapValue[int](child, "B", "2").Get()
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
