package analyze

import (
	"go/types"
	"reflect"
	"slices"
	"strings"

	"confgen/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "confgen/examples/shop"
	Name    string // e.g., "ShopConfig"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map with key and element types
	TypeKindAlias              // named type wrapping another
	TypeKindExternal           // external/opaque type (e.g., time.Time)
	TypeKindInterface          // interface type, including any
	TypeKindInvalid            // type that failed to type-check
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	case TypeKindInterface:
		return "interface"
	case TypeKindInvalid:
		return "invalid"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID          TypeID      // Unique identifier (empty for unnamed types like *T or []T)
	Kind        TypeKind    // Kind of type
	Underlying  *TypeInfo   // For named types, the underlying type
	ElemType    *TypeInfo   // For pointers, slices, arrays and maps, the element type
	KeyType     *TypeInfo   // For maps, the key type
	Fields      []FieldInfo // For structs, the list of fields
	GoType      types.Type  // The original go/types.Type
	Directives  []Directive // confgen directives from the declaration's doc comment
	IsGenerated bool        // True if the declaration carries the generated marker
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// Directive returns the first directive with the given name.
func (t *TypeInfo) Directive(name string) (Directive, bool) {
	for _, d := range t.Directives {
		if d.Name == name {
			return d, true
		}
	}

	return Directive{}, false
}

// BasicUnderlying returns the basic type at the bottom of a named chain, or nil.
func (t *TypeInfo) BasicUnderlying() *types.Basic {
	if t == nil || t.GoType == nil {
		return nil
	}

	b, _ := t.GoType.Underlying().(*types.Basic)
	return b
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
	Expr     string            // Type expression as written in source
}

// IsBlank reports whether the field is the blank identifier.
func (f *FieldInfo) IsBlank() bool {
	return f.Name == "_"
}

// TagName returns the name part of the given tag key, and whether the tag exists.
func (f *FieldInfo) TagName(key string) (string, bool) {
	tag, ok := f.Tag.Lookup(key)
	if !ok {
		return "", false
	}

	name, _, _ := strings.Cut(tag, ",")
	return name, true
}

// TagOption reports whether the given tag key lists opt after its name.
func (f *FieldInfo) TagOption(key, opt string) bool {
	tag, ok := f.Tag.Lookup(key)
	if !ok {
		return false
	}

	_, rest, _ := strings.Cut(tag, ",")
	for rest != "" {
		var o string
		o, rest, _ = strings.Cut(rest, ",")
		if o == opt {
			return true
		}
	}

	return false
}

// HasTag returns true if the field has the specified tag.
func (f *FieldInfo) HasTag(key string) bool {
	_, ok := f.Tag.Lookup(key)
	return ok
}

// GetTag returns the value of the specified tag.
func (f *FieldInfo) GetTag(key string) string {
	return f.Tag.Get(key)
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
	// LoadErrors holds type-check errors that did not stop loading.
	LoadErrors []error
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// Lookup finds a named type in a package by name.
func (g *TypeGraph) Lookup(pkgPath, name string) *TypeInfo {
	return g.Types[TypeID{PkgPath: pkgPath, Name: name}]
}

// WithDirective returns all named types carrying the directive, ordered by TypeID.
func (g *TypeGraph) WithDirective(name string) []*TypeInfo {
	var out []*TypeInfo
	for _, pkgPath := range g.PackagePaths() {
		for _, id := range g.Packages[pkgPath].Types {
			t := g.Types[id]
			if _, ok := t.Directive(name); ok {
				out = append(out, t)
			}
		}
	}

	return out
}

// PackagePaths returns the loaded package paths in sorted order.
func (g *TypeGraph) PackagePaths() []string {
	paths := make([]string, 0, len(g.Packages))
	for p := range g.Packages {
		paths = append(paths, p)
	}

	slices.Sort(paths)
	return paths
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory containing the package sources
	Types []TypeID // Named types defined in this package, sorted by name
}
