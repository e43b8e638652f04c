package schema

import (
	"confgen/internal/analyze"
	"confgen/internal/common"
)

// Directive is the doc-comment directive that marks a schema declaration.
const Directive = "schema"

// Directive arguments.
const (
	ArgName     = "name"
	ArgNaming   = "naming"
	ArgRecord   = "record"
	ArgToString = "tostring"
	ArgSource   = "source"
	ArgIn       = "in"
)

// Args lists every argument the schema directive accepts.
var Args = []string{ArgName, ArgNaming, ArgRecord, ArgToString, ArgSource, ArgIn}

// Struct tag keys.
const (
	TagConfig   = "config"
	TagNaming   = "naming"
	TagDefault  = "default"
	OptOptional = "optional"
	Transient   = "-"
)

// Kind is the representation of a generated type.
type Kind int

const (
	ValueObject Kind = iota // unexported fields, Name() accessors
	Record                  // exported fields, GetName() accessors
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case ValueObject:
		return "value-object"
	case Record:
		return "record"
	default:
		return common.UnknownStr
	}
}

// KeyOrigin records which naming attribute produced a lookup key.
type KeyOrigin string

const (
	KeyOverride     KeyOrigin = "override"
	KeyFieldPattern KeyOrigin = "field pattern"
	KeyTypePattern  KeyOrigin = "type pattern"
	KeyDefault      KeyOrigin = "default pattern"
	KeyIdentity     KeyOrigin = "identity"
)

// Schema describes one schema declaration.
type Schema struct {
	Source        analyze.TypeID
	Decl          *analyze.TypeInfo
	GeneratedName string
	Kind          Kind
	Fields        []*FieldSchema // own fields, declaration order
	Parent        *Schema
	ToString      bool
	SourceKey     string // top-level key for the static binding, empty when unbound
	Enclosing     string // enclosing declaration for nested schemas
}

// GeneratedID identifies the generated type.
func (s *Schema) GeneratedID() analyze.TypeID {
	return analyze.TypeID{PkgPath: s.Source.PkgPath, Name: s.GeneratedName}
}

// Ancestors returns the parent chain, nearest first.
func (s *Schema) Ancestors() []*Schema {
	var out []*Schema
	for p := s.Parent; p != nil; p = p.Parent {
		out = append(out, p)
	}

	return out
}

// Depth is the number of ancestors.
func (s *Schema) Depth() int {
	return len(s.Ancestors())
}

// AllFields returns inherited fields root first, followed by own fields.
func (s *Schema) AllFields() []*FieldSchema {
	if s.Parent == nil {
		return s.Fields
	}

	return append(append([]*FieldSchema{}, s.Parent.AllFields()...), s.Fields...)
}

// HasAncestor reports whether the parent itself has a parent.
func (s *Schema) HasAncestor() bool {
	return s.Parent != nil && s.Parent.Parent != nil
}

// FieldSchema describes one field of a schema.
type FieldSchema struct {
	Name       string // Go field name in the declaration
	Info       *analyze.FieldInfo
	Type       *analyze.TypeInfo // declared type with one pointer level removed when nullable
	Nullable   bool
	Default    string
	HasDefault bool
	LookupKey  string
	KeyOrigin  KeyOrigin
	Owner      *Schema
}
