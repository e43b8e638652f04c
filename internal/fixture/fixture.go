// Package fixture builds analyze type graphs by hand for tests that should
// not depend on loading packages.
package fixture

import (
	"go/types"
	"reflect"

	"confgen/internal/analyze"
	"confgen/internal/common"
)

// Pkg is the package path fixture declarations live in.
const Pkg = "confgen/examples/fixture"

var stringer = analyze.NewTypeStringer()

// Basic returns a predeclared type.
func Basic(k types.BasicKind) *analyze.TypeInfo {
	return &analyze.TypeInfo{Kind: analyze.TypeKindBasic, GoType: types.Typ[k]}
}

// Invalid returns a type that failed to type-check.
func Invalid() *analyze.TypeInfo {
	return &analyze.TypeInfo{Kind: analyze.TypeKindInvalid, GoType: types.Typ[types.Invalid]}
}

// Any returns the empty interface.
func Any() *analyze.TypeInfo {
	return &analyze.TypeInfo{Kind: analyze.TypeKindInterface, GoType: types.NewInterfaceType(nil, nil)}
}

// Ptr returns *t.
func Ptr(t *analyze.TypeInfo) *analyze.TypeInfo {
	ti := &analyze.TypeInfo{Kind: analyze.TypeKindPointer, ElemType: t}
	if t.GoType != nil {
		ti.GoType = types.NewPointer(t.GoType)
	}
	return ti
}

// Slice returns []t.
func Slice(t *analyze.TypeInfo) *analyze.TypeInfo {
	ti := &analyze.TypeInfo{Kind: analyze.TypeKindSlice, ElemType: t}
	if t.GoType != nil {
		ti.GoType = types.NewSlice(t.GoType)
	}
	return ti
}

// Array returns [n]t.
func Array(t *analyze.TypeInfo, n int64) *analyze.TypeInfo {
	ti := &analyze.TypeInfo{Kind: analyze.TypeKindArray, ElemType: t}
	if t.GoType != nil {
		ti.GoType = types.NewArray(t.GoType, n)
	}
	return ti
}

// Map returns map[k]v.
func Map(k, v *analyze.TypeInfo) *analyze.TypeInfo {
	ti := &analyze.TypeInfo{Kind: analyze.TypeKindMap, KeyType: k, ElemType: v}
	if k.GoType != nil && v.GoType != nil {
		ti.GoType = types.NewMap(k.GoType, v.GoType)
	}
	return ti
}

// Named returns a named non-struct type such as time.Duration.
func Named(pkgPath, name string, underlying types.BasicKind) *analyze.TypeInfo {
	pkg := types.NewPackage(pkgPath, common.PkgAlias(pkgPath))
	obj := types.NewTypeName(0, pkg, name, nil)
	named := types.NewNamed(obj, types.Typ[underlying], nil)

	return &analyze.TypeInfo{
		ID:         analyze.TypeID{PkgPath: pkgPath, Name: name},
		Kind:       analyze.TypeKindAlias,
		Underlying: Basic(underlying),
		GoType:     named,
	}
}

// Field declares a field; tag is the raw struct tag.
func Field(name string, t *analyze.TypeInfo, tag string) analyze.FieldInfo {
	return analyze.FieldInfo{
		Name:     name,
		Exported: true,
		Type:     t,
		Tag:      reflect.StructTag(tag),
		Expr:     stringer.TypeString(t),
	}
}

// Unresolved declares a field whose type expression did not type-check.
func Unresolved(name, expr string) analyze.FieldInfo {
	return analyze.FieldInfo{Name: name, Exported: true, Type: Invalid(), Expr: expr}
}

// Embed declares an embedded field of type t.
func Embed(t *analyze.TypeInfo) analyze.FieldInfo {
	return analyze.FieldInfo{
		Name:     t.ID.Name,
		Exported: true,
		Type:     t,
		Embedded: true,
		Expr:     t.ID.Name,
	}
}

// Graph is a hand-built type graph.
type Graph struct {
	*analyze.TypeGraph
}

// NewGraph creates a graph with the fixture package registered.
func NewGraph() *Graph {
	g := &Graph{TypeGraph: analyze.NewTypeGraph()}
	g.Packages[Pkg] = &analyze.PackageInfo{Path: Pkg, Name: common.PkgAlias(Pkg), Dir: "."}
	return g
}

// Struct adds a struct declaration with the given directive lines.
func (g *Graph) Struct(name string, directives []string, fields ...analyze.FieldInfo) *analyze.TypeInfo {
	t := &analyze.TypeInfo{
		ID:   analyze.TypeID{PkgPath: Pkg, Name: name},
		Kind: analyze.TypeKindStruct,
	}
	for _, line := range directives {
		if d, ok := analyze.ParseDirective(line); ok {
			t.Directives = append(t.Directives, d)
			if d.Name == analyze.GeneratedDirective {
				t.IsGenerated = true
			}
		}
	}
	for i := range fields {
		fields[i].Index = i
	}
	t.Fields = fields

	g.Types[t.ID] = t
	pkg := g.Packages[Pkg]
	pkg.Types = append(pkg.Types, t.ID)
	return t
}

// Schema adds a schema declaration; args follow "//confgen:schema".
func (g *Graph) Schema(name, args string, fields ...analyze.FieldInfo) *analyze.TypeInfo {
	return g.Struct(name, []string{"//confgen:schema " + args}, fields...)
}

// Generated adds a declaration carrying the generated marker.
func (g *Graph) Generated(name, source string, fields ...analyze.FieldInfo) *analyze.TypeInfo {
	return g.Struct(name, []string{"//confgen:generated source=" + source}, fields...)
}
