// Package resolve maps declared field types to the types generated code uses.
//
// Resolution is a pure recursive walk with four outcomes, tried in order:
// a schema type becomes a pointer to its generated type, a slice becomes a
// Sequence, a map becomes a Map, and anything else passes through as Direct.
package resolve

import (
	"go/types"

	"confgen/internal/analyze"
	"confgen/internal/common"
	"confgen/internal/schema"
)

// Kind tags a resolved Type.
type Kind int

const (
	KindDirect   Kind = iota // passed through unchanged
	KindSequence             // slice of Elem
	KindMap                  // map from Key to Elem
	KindSchema               // generated type of Schema
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindSequence:
		return "sequence"
	case KindMap:
		return "map"
	case KindSchema:
		return "schema"
	default:
		return common.UnknownStr
	}
}

// Type is a resolved field type.
type Type struct {
	Kind   Kind
	Elem   *Type
	Key    *Type
	Schema *schema.Schema
	Source *analyze.TypeInfo
}

// Qualifier returns the name used to refer to a package from generated code,
// or "" for the package being generated.
type Qualifier func(pkgPath string) string

// IsParameterized reports whether the Go type takes element types.
func (t *Type) IsParameterized() bool {
	switch t.Kind {
	case KindSequence, KindMap:
		return true
	case KindDirect:
		switch t.Source.Kind {
		case analyze.TypeKindSlice, analyze.TypeKindArray, analyze.TypeKindMap:
			return true
		}
	}

	return false
}

// FastPath reports whether generated code may type-assert a raw value
// directly to this type.
func (t *Type) FastPath() bool {
	if t.IsParameterized() {
		return false
	}

	return t.Kind == KindSchema || t.Source.Kind != analyze.TypeKindInterface
}

// ElemSchema returns the schema of a Sequence or Map element, if any.
func (t *Type) ElemSchema() *schema.Schema {
	if (t.Kind == KindSequence || t.Kind == KindMap) && t.Elem.Kind == KindSchema {
		return t.Elem.Schema
	}

	return nil
}

// ContainsSchema reports whether a schema appears anywhere in the type.
func (t *Type) ContainsSchema() bool {
	switch t.Kind {
	case KindSchema:
		return true
	case KindSequence:
		return t.Elem.ContainsSchema()
	case KindMap:
		return t.Key.ContainsSchema() || t.Elem.ContainsSchema()
	default:
		return false
	}
}

// GoString renders the type as a Go type expression.
func (t *Type) GoString(q Qualifier) string {
	switch t.Kind {
	case KindSchema:
		return "*" + qualify(q, t.Schema.Source.PkgPath, t.Schema.GeneratedName)
	case KindSequence:
		return "[]" + t.Elem.GoString(q)
	case KindMap:
		return "map[" + t.Key.GoString(q) + "]" + t.Elem.GoString(q)
	default:
		if t.Source.GoType == nil {
			return qualify(q, t.Source.ID.PkgPath, t.Source.ID.Name)
		}
		return types.TypeString(t.Source.GoType, func(p *types.Package) string {
			return qualifierOf(q)(p.Path())
		})
	}
}

// Imports lists the package paths referenced by the type, excluding local.
func (t *Type) Imports(local string) []string {
	seen := make(map[string]bool)
	t.collectImports(local, seen)

	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}

	return out
}

func (t *Type) collectImports(local string, seen map[string]bool) {
	switch t.Kind {
	case KindSchema:
		if p := t.Schema.Source.PkgPath; p != local {
			seen[p] = true
		}
	case KindSequence:
		t.Elem.collectImports(local, seen)
	case KindMap:
		t.Key.collectImports(local, seen)
		t.Elem.collectImports(local, seen)
	default:
		if t.Source.GoType == nil {
			if p := t.Source.ID.PkgPath; p != "" && p != local {
				seen[p] = true
			}
			return
		}
		// TypeString visits every package the type mentions.
		types.TypeString(t.Source.GoType, func(p *types.Package) string {
			if p.Path() != local {
				seen[p.Path()] = true
			}
			return p.Name()
		})
	}
}

func qualifierOf(q Qualifier) Qualifier {
	if q != nil {
		return q
	}

	return common.PkgAlias
}

func qualify(q Qualifier, pkgPath, name string) string {
	if pkgPath == "" {
		return name
	}
	if alias := qualifierOf(q)(pkgPath); alias != "" {
		return alias + "." + name
	}

	return name
}
