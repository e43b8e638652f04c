package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confgen/internal/analyze"
	"confgen/internal/diagnostic"
	"confgen/internal/schema"
)

func id(name string) analyze.TypeID {
	return analyze.TypeID{PkgPath: "confgen/examples/shop", Name: name}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := New()

	require.NoError(t, r.Register(&schema.Schema{Source: id("ItemConfig"), GeneratedName: "Item"}))
	require.NoError(t, r.Register(&schema.Schema{Source: id("ShopConfig"), GeneratedName: "Shop"}))
	require.NoError(t, r.Register(&schema.Schema{Source: id("OwnerDTO"), GeneratedName: "ShopOwner"}))

	// same pair again is a no-op
	require.NoError(t, r.Register(&schema.Schema{Source: id("ItemConfig"), GeneratedName: "Item"}))
	assert.Equal(t, 3, r.Len())

	assert.Equal(t, []analyze.TypeID{id("ItemConfig")}, r.Lookup("Item"))
	assert.Equal(t, []analyze.TypeID{id("ItemConfig")}, r.Lookup("confgen/examples/shop.Item"))
	assert.Equal(t, []analyze.TypeID{id("OwnerDTO"), id("ShopConfig")}, r.Lookup("Shop"))
	assert.Empty(t, r.Lookup("Warehouse"))
	assert.Empty(t, r.Lookup(""))

	src, ok := r.Source("confgen/examples/shop.Shop")
	require.True(t, ok)
	assert.Equal(t, id("ShopConfig"), src)
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := New()
	require.NoError(t, r.Bind("p.Item", id("ItemConfig")))

	err := r.Bind("p.Item", id("ItemDTO"))
	var dup *diagnostic.DuplicateRegistrationError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "p.Item", dup.Name)
	assert.Equal(t, id("ItemConfig").String(), dup.Existing)
	assert.Equal(t, id("ItemDTO").String(), dup.Conflicting)
}

func TestRegistry_DuplicateSource(t *testing.T) {
	r := New()
	require.NoError(t, r.Bind("p.Item", id("ItemConfig")))

	err := r.Bind("p.Other", id("ItemConfig"))
	var dup *diagnostic.DuplicateRegistrationError
	require.ErrorAs(t, err, &dup)

	// the rejected name stays unbound
	_, ok := r.Source("p.Other")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_ConcurrentRegister(t *testing.T) {
	r := New()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("T%d", i)
			assert.NoError(t, r.Bind("p."+name, id(name+"Config")))
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, r.Len())
}
