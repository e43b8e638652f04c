package gen

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confgen/internal/fixture"
	"confgen/internal/synth"
)

func names(specs []*synth.TypeSpec) []string {
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.Name
	}
	return out
}

func TestOrder_AncestorChainOutOfOrder(t *testing.T) {
	e := newEnv()
	base, middle, leaf := e.chain()
	item := e.graph.Schema("ItemConfig", "", fixture.Field("SKU", fixture.Basic(types.String), ""))

	specs := []*synth.TypeSpec{e.spec(t, leaf), e.spec(t, item), e.spec(t, base), e.spec(t, middle)}

	ordered, err := Order(specs)
	require.NoError(t, err)
	assert.Equal(t, []string{"Item", "Base", "Middle", "Leaf"}, names(ordered))

	// The input is left untouched.
	assert.Equal(t, []string{"Leaf", "Item", "Base", "Middle"}, names(specs))
}

func TestOrder_ParentNotInList(t *testing.T) {
	e := newEnv()
	_, middle, leaf := e.chain()

	ordered, err := Order([]*synth.TypeSpec{e.spec(t, leaf), e.spec(t, middle)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Middle", "Leaf"}, names(ordered))
}

func TestOrder_Empty(t *testing.T) {
	ordered, err := Order(nil)
	require.NoError(t, err)
	assert.Empty(t, ordered)
}

func TestTopoSort_Cycle(t *testing.T) {
	_, err := topoSort(2, func(i int) []int { return []int{1 - i} })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inheritance cycle")
}
