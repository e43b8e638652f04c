package schema

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confgen/internal/analyze"
	"confgen/internal/diagnostic"
	"confgen/internal/fixture"
	"confgen/internal/naming"
)

func newExtractor(g *fixture.Graph, opts ...Option) *Extractor {
	return NewExtractor(g.TypeGraph, naming.NewResolver(0), opts...)
}

func keys(fields []*FieldSchema) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.LookupKey
	}
	return out
}

func TestExtract_GeneratedNames(t *testing.T) {
	g := fixture.NewGraph()
	shop := g.Schema("ShopConfig", "")
	item := g.Schema("ItemDTO", "")
	custom := g.Schema("Settings", "name=AppSettings")
	bare := g.Schema("Settings2", "")
	same := g.Schema("Loop", "name=Loop")

	e := newExtractor(g)

	s, err := e.Extract(shop)
	require.NoError(t, err)
	assert.Equal(t, "Shop", s.GeneratedName)
	assert.Equal(t, analyze.TypeID{PkgPath: fixture.Pkg, Name: "Shop"}, s.GeneratedID())

	s, err = e.Extract(item)
	require.NoError(t, err)
	assert.Equal(t, "Item", s.GeneratedName)

	s, err = e.Extract(custom)
	require.NoError(t, err)
	assert.Equal(t, "AppSettings", s.GeneratedName)

	var nameErr *diagnostic.NameResolutionError
	_, err = e.Extract(bare)
	require.ErrorAs(t, err, &nameErr)
	assert.Contains(t, nameErr.Reason, "DTO or Config")

	_, err = e.Extract(same)
	require.ErrorAs(t, err, &nameErr)
}

func TestExtract_NestedNames(t *testing.T) {
	g := fixture.NewGraph()
	g.Schema("ShopConfig", "")
	owner := g.Schema("OwnerDTO", "in=ShopConfig")
	address := g.Schema("AddressConfig", "in=OwnerDTO")
	lost := g.Schema("LostConfig", "in=MissingConfig")
	g.Schema("PingConfig", "in=PongConfig")
	pong := g.Schema("PongConfig", "in=PingConfig")

	e := newExtractor(g)

	s, err := e.Extract(owner)
	require.NoError(t, err)
	assert.Equal(t, "ShopOwner", s.GeneratedName)
	assert.Equal(t, "ShopConfig", s.Enclosing)

	s, err = e.Extract(address)
	require.NoError(t, err)
	assert.Equal(t, "ShopOwnerAddress", s.GeneratedName)

	var nameErr *diagnostic.NameResolutionError
	_, err = e.Extract(lost)
	require.ErrorAs(t, err, &nameErr)
	assert.Contains(t, nameErr.Reason, "not found")

	_, err = e.Extract(pong)
	require.ErrorAs(t, err, &nameErr)
	assert.Contains(t, nameErr.Reason, "cyclic")
}

func TestExtract_Fields(t *testing.T) {
	g := fixture.NewGraph()
	str := fixture.Basic(types.String)
	shop := g.Schema("ShopConfig", "naming=lower-kebab tostring source=shop record",
		fixture.Field("ShopName", str, `config:"name"`),
		fixture.Field("Currency", fixture.Ptr(str), ""),
		fixture.Field("Email", str, `config:",optional"`),
		fixture.Field("RetryCount", fixture.Basic(types.Int), `default:"3" naming:"upper-snake"`),
		fixture.Field("Notes", str, `config:"-"`),
		fixture.Field("_", str, ""),
	)

	s, err := newExtractor(g).Extract(shop)
	require.NoError(t, err)

	assert.Equal(t, Record, s.Kind)
	assert.True(t, s.ToString)
	assert.Equal(t, "shop", s.SourceKey)
	require.Len(t, s.Fields, 4)

	assert.Equal(t, []string{"name", "currency", "email", "Retry_Count"}, keys(s.Fields))
	assert.Equal(t, KeyOverride, s.Fields[0].KeyOrigin)
	assert.Equal(t, KeyTypePattern, s.Fields[1].KeyOrigin)
	assert.Equal(t, KeyFieldPattern, s.Fields[3].KeyOrigin)

	assert.False(t, s.Fields[0].Nullable)
	assert.True(t, s.Fields[1].Nullable)
	assert.Equal(t, analyze.TypeKindBasic, s.Fields[1].Type.Kind, "pointer is stripped for nullable fields")
	assert.True(t, s.Fields[2].Nullable)

	assert.True(t, s.Fields[3].HasDefault)
	assert.Equal(t, "3", s.Fields[3].Default)
	assert.Same(t, s, s.Fields[3].Owner)
}

func TestExtract_DefaultPatternOption(t *testing.T) {
	g := fixture.NewGraph()
	str := fixture.Basic(types.String)
	plain := g.Schema("PlainConfig", "", fixture.Field("FieldName", str, ""))
	typed := g.Schema("TypedConfig", "naming=upper-camel", fixture.Field("fieldName", str, ""))

	e := newExtractor(g, WithDefaultPattern(naming.LowerKebab))

	s, err := e.Extract(plain)
	require.NoError(t, err)
	assert.Equal(t, "field-name", s.Fields[0].LookupKey)
	assert.Equal(t, KeyDefault, s.Fields[0].KeyOrigin)

	s, err = e.Extract(typed)
	require.NoError(t, err)
	assert.Equal(t, "FieldName", s.Fields[0].LookupKey)

	s2, err := newExtractor(g).Extract(plain)
	require.NoError(t, err)
	assert.Equal(t, "FieldName", s2.Fields[0].LookupKey)
	assert.Equal(t, KeyIdentity, s2.Fields[0].KeyOrigin)
}

func TestExtract_ParentChain(t *testing.T) {
	g := fixture.NewGraph()
	base := g.Schema("BaseConfig", "", fixture.Field("A", fixture.Basic(types.Int), ""))
	middle := g.Schema("MiddleConfig", "", fixture.Embed(base), fixture.Field("B", fixture.Basic(types.String), ""))
	leaf := g.Schema("LeafConfig", "", fixture.Embed(middle), fixture.Field("C", fixture.Basic(types.Bool), ""))

	s, err := newExtractor(g).Extract(leaf)
	require.NoError(t, err)

	require.NotNil(t, s.Parent)
	assert.Equal(t, "Middle", s.Parent.GeneratedName)
	assert.Equal(t, "Base", s.Parent.Parent.GeneratedName)
	assert.Equal(t, 2, s.Depth())
	assert.True(t, s.HasAncestor())
	assert.False(t, s.Parent.HasAncestor())

	var names []string
	for _, f := range s.AllFields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
	assert.Len(t, s.Fields, 1, "own fields exclude the embedded parent")
}

func TestExtract_InvalidParent(t *testing.T) {
	g := fixture.NewGraph()
	plain := g.Struct("Plain", nil)
	base := g.Schema("BaseConfig", "")
	other := g.Schema("OtherConfig", "")
	child := g.Schema("ChildConfig", "", fixture.Embed(plain))
	twice := g.Schema("TwiceConfig", "", fixture.Embed(base), fixture.Embed(other))

	e := newExtractor(g)

	var vErr *diagnostic.ValidationError
	_, err := e.Extract(child)
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "superclass of a schema type must be a schema type")

	_, err = e.Extract(twice)
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "at most one parent")
}

func TestExtract_Collisions(t *testing.T) {
	g := fixture.NewGraph()
	str := fixture.Basic(types.String)
	keyClash := g.Schema("KeyClashConfig", "",
		fixture.Field("First", str, `config:"same"`),
		fixture.Field("Second", str, `config:"same"`),
	)
	patternClash := g.Schema("PatternClashConfig", "naming=lower-snake",
		fixture.Field("fieldName", str, ""),
		fixture.Field("FieldName", str, ""),
	)
	base := g.Schema("BaseConfig", "", fixture.Field("A", str, ""))
	shadow := g.Schema("ShadowConfig", "", fixture.Embed(base), fixture.Field("A", str, `config:"other"`))
	reserved := g.Schema("ReservedConfig", "", fixture.Field("Serialize", str, ""))

	e := newExtractor(g)

	var vErr *diagnostic.ValidationError
	for _, decl := range []*analyze.TypeInfo{keyClash, patternClash, shadow, reserved} {
		_, err := e.Extract(decl)
		require.ErrorAs(t, err, &vErr, decl.ID.Name)
		_, cached := e.Cached(decl.ID)
		assert.False(t, cached, "failed extraction must not be cached")
	}

	_, err := e.Extract(patternClash)
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, `"field_name"`)
}

func TestExtract_ParentLinkClash(t *testing.T) {
	g := fixture.NewGraph()
	str := fixture.Basic(types.String)
	base := g.Schema("BaseConfig", "", fixture.Field("Name", str, ""))
	middle := g.Schema("MiddleConfig", "", fixture.Embed(base), fixture.Field("ParentMiddle", str, ""))
	plain := g.Schema("PlainMiddleConfig", "name=Plain", fixture.Embed(base))
	own := g.Schema("OwnConfig", "", fixture.Embed(plain), fixture.Field("ParentPlain", str, ""))
	inherited := g.Schema("InheritedConfig", "", fixture.Embed(middle))

	e := newExtractor(g)

	_, err := e.Extract(middle)
	require.NoError(t, err)

	tests := map[*analyze.TypeInfo]string{
		own:       "field name ParentPlain clashes with the link to parent Plain",
		inherited: "field name ParentMiddle clashes with the link to parent Middle",
	}
	for decl, want := range tests {
		_, err := e.Extract(decl)
		var vErr *diagnostic.ValidationError
		require.ErrorAs(t, err, &vErr, decl.ID.Name)
		assert.Equal(t, want, vErr.Message)
	}
}

func TestExtract_Defaults(t *testing.T) {
	g := fixture.NewGraph()
	badInt := g.Schema("BadIntConfig", "", fixture.Field("N", fixture.Basic(types.Int), `default:"many"`))
	badKind := g.Schema("BadKindConfig", "", fixture.Field("L", fixture.Slice(fixture.Basic(types.Int)), `default:"1"`))
	named := g.Schema("NamedConfig", "",
		fixture.Field("Level", fixture.Named(fixture.Pkg, "Level", types.String), `default:"info"`),
		fixture.Field("Ratio", fixture.Ptr(fixture.Basic(types.Float64)), `default:"0.5"`),
		fixture.Field("On", fixture.Basic(types.Bool), `default:"true"`),
	)

	e := newExtractor(g)

	var vErr *diagnostic.ValidationError
	_, err := e.Extract(badInt)
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, `"many" is not a valid int`)

	_, err = e.Extract(badKind)
	require.ErrorAs(t, err, &vErr)

	s, err := e.Extract(named)
	require.NoError(t, err)
	for _, f := range s.Fields {
		assert.True(t, f.HasDefault, f.Name)
	}
}

func TestExtract_Memoised(t *testing.T) {
	g := fixture.NewGraph()
	decl := g.Schema("ShopConfig", "")
	e := newExtractor(g)

	a, err := e.Extract(decl)
	require.NoError(t, err)
	b, err := e.Extract(decl)
	require.NoError(t, err)
	assert.Same(t, a, b)

	cached, ok := e.Cached(decl.ID)
	require.True(t, ok)
	assert.Same(t, a, cached)
}

func TestExtract_NotASchema(t *testing.T) {
	g := fixture.NewGraph()
	plain := g.Struct("Plain", nil)
	e := newExtractor(g)

	assert.False(t, e.IsSchema(plain))
	_, err := e.Extract(plain)
	var vErr *diagnostic.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "value-object", ValueObject.String())
	assert.Equal(t, "record", Record.String())
	assert.Equal(t, "unknown", Kind(9).String())
}
