package synth

import (
	"go/types"

	"confgen/internal/resolve"
	"confgen/internal/schema"
)

// TypeSpec describes one generated type.
type TypeSpec struct {
	Name     string
	Schema   *schema.Schema
	Kind     schema.Kind
	Marker   Marker
	Receiver string

	Parent *ParentLink

	Fields    []*Field // own, declaration order
	Inherited []*Field // ancestor fields, root first

	Constructor *Constructor
	Accessors   []*Accessor
	Setters     []*Setter
	Deserialize *Deserializer
	Serialize   *Serializer
	Binding     *Binding
	ToString    *ToString
}

// AllFields returns inherited fields followed by own fields.
func (s *TypeSpec) AllFields() []*Field {
	return append(append([]*Field{}, s.Inherited...), s.Fields...)
}

// Marker links a generated type back to its declaration.
type Marker struct {
	Source string // declaration name
}

// ParentLink is the private field holding the parent's generated instance.
type ParentLink struct {
	Field  string
	Type   string // generated name of the parent
	Schema *schema.Schema
}

// Field is a generated field or record component.
type Field struct {
	Source    *schema.FieldSchema
	Type      *resolve.Type
	Boxed     bool   // nullable scalar stored behind a pointer
	Storage   string // struct field name in the owning generated type
	Param     string // constructor parameter name
	Accessor  string // accessor method name on the type being generated
	Inherited bool
}

// Name is the declared field name.
func (f *Field) Name() string {
	return f.Source.Name
}

// Nillable reports whether the stored value can be nil.
func (f *Field) Nillable() bool {
	if f.Boxed || f.Type.Kind != resolve.KindDirect {
		return true
	}

	if f.Type.Source.GoType == nil {
		return f.Source.Nullable
	}

	switch f.Type.Source.GoType.Underlying().(type) {
	case *types.Pointer, *types.Slice, *types.Map, *types.Interface, *types.Signature, *types.Chan:
		return true
	}

	return false
}

// Param is one constructor parameter: a field value or the parent instance.
type Param struct {
	Name   string
	Field  *Field         // nil for the parent instance
	Parent *schema.Schema // set for the parent instance
}

// Constructor builds an instance from parameter values.
type Constructor struct {
	Func   string
	Params []Param
	// ParentFunc and ParentArgs build the stored parent instance.
	ParentFunc string
	ParentArgs []Expr
}

// Accessor returns a field value. Inherited accessors delegate through Via.
type Accessor struct {
	Method   string
	Field    *Field
	Nullable bool
	Via      *Expr
}

// Setter returns a copy with one field replaced. Inherited setters replace
// the parent link with the parent's own copy.
type Setter struct {
	Method       string
	Field        *Field
	ParentMethod string // set for inherited fields
}

// Strategy selects how a field helper turns a raw value into a typed one.
type Strategy int

const (
	StrategyMapper   Strategy = iota // generic fallback mapper
	StrategySequence                 // element-wise schema sequence
	StrategyMap                      // value-wise schema map
	StrategyNested                   // nested raw mapping
)

// String returns a human-readable representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case StrategySequence:
		return "sequence"
	case StrategyMap:
		return "map"
	case StrategyNested:
		return "nested"
	default:
		return "mapper"
	}
}

// Deserializer is the generated Deserialize function.
type Deserializer struct {
	Func       string
	ParentFunc string // empty without a parent
	ParentVar  string
	Steps      []Step
	Construct  string // constructor to call
	Args       []Expr
	Helpers    []*Helper
}

// Step binds the result of one field helper to a local variable.
type Step struct {
	Var    string
	Helper *Helper
}

// Helper deserializes a single field.
type Helper struct {
	Func      string
	Field     *Field
	Key       string
	Enclosing string // declaration name reported in NotFound errors
	Default   *Default
	Nullable  bool
	FastPath  bool
	Strategy  Strategy
	Elem      *schema.Schema // element or nested schema for non-mapper strategies
}

// ElemFunc is the Deserialize function of the element or nested schema.
func (h *Helper) ElemFunc() string {
	if h.Elem == nil {
		return ""
	}

	return deserializeName(h.Elem.GeneratedName)
}

// Default is the value used when a key is absent.
type Default struct {
	Literal string // Go literal, quoted for string types
}

// SerializeMode selects how a field is written back to a raw mapping.
type SerializeMode int

const (
	SerializePlain    SerializeMode = iota // assign as is
	SerializeNillable                      // assign unless nil
	SerializeBoxed                         // dereference unless nil
	SerializeSchema                        // call Serialize unless nil
	SerializeSlice                         // config.SerializeSlice
	SerializeMap                           // config.SerializeMap
)

// Serializer is the generated Serialize method.
type Serializer struct {
	ParentLink string
	Entries    []SerializeEntry
}

// SerializeEntry writes one own field.
type SerializeEntry struct {
	Key   string
	Field *Field
	Mode  SerializeMode
}

// Binding is the static source binding.
type Binding struct {
	Var  string
	Key  string
	Func string
}

// ToString is the generated String method.
type ToString struct {
	Parts []ToStringPart
}

// ToStringPart is one "Name: value" pair.
type ToStringPart struct {
	Label string
	Value Expr
	Deref bool
}
