package gen

import (
	"strconv"
	"strings"

	"confgen/internal/synth"
)

// fileData holds all data needed for the file template.
type fileData struct {
	Package     string
	ImportBlock string
	Runtime     string
	Comments    bool
	Type        *typeView
}

// typeView is a TypeSpec with every Go expression already rendered.
type typeView struct {
	Name            string
	Source          string
	KindLabel       string
	Receiver        string
	DeserializeFunc string
	Storage         []storageView
	Ctor            ctorView
	Accessors       []accessorView
	Setters         []setterView
	Deserialize     *deserializeView
	Helpers         []helperView
	Serialize       *serializeView
	Binding         *bindingView
	ToString        *toStringView
}

type storageView struct {
	Name string
	Type string
}

type ctorView struct {
	Func        string
	Params      []storageView
	Assign      []assignView
	ParentParam string
}

type assignView struct {
	Field string
	Value string
}

type accessorView struct {
	Method   string
	Label    string
	Type     string
	Value    string
	Nullable bool
}

type setterView struct {
	Method string
	Label  string
	Type   string
	Target string
	Value  string
}

type deserializeView struct {
	Func       string
	ParentFunc string
	ParentVar  string
	Steps      []stepView
	Construct  string
	Args       string
}

type stepView struct {
	Var  string
	Func string
}

type helperView struct {
	Func         string
	Type         string // result type
	ValueType    string // type of a raw value taken as is
	KeyLit       string
	FieldLit     string
	EnclosingLit string
	Default      string
	Nullable     bool
	NilZero      bool
	FastPath     bool
	Boxed        bool
	Strategy     string
	ElemFunc     string
	KeyType      string
}

type serializeView struct {
	Parent  string
	Entries []entryView
}

type entryView struct {
	KeyLit string
	Mode   string
	Value  string
	Write  string
}

type bindingView struct {
	Var    string
	KeyLit string
	Func   string
}

type toStringView struct {
	Format string
	Args   []string
}

// viewBuilder renders one spec; imports collects every package it touches.
type viewBuilder struct {
	spec    *synth.TypeSpec
	imports *importSet
	rt      string
}

// buildFileData constructs the template data for a spec.
func (g *Generator) buildFileData(spec *synth.TypeSpec, pkgName string) *fileData {
	imports := newImportSet(spec.Schema.Source.PkgPath, func(pkgPath string) string {
		name, _ := g.pkg(pkgPath)
		return name
	})

	b := &viewBuilder{spec: spec, imports: imports}
	b.rt = imports.add(g.config.RuntimePath)

	t := &typeView{
		Name:            spec.Name,
		Source:          spec.Marker.Source,
		KindLabel:       strings.ReplaceAll(spec.Kind.String(), "-", " "),
		Receiver:        spec.Receiver,
		DeserializeFunc: spec.Deserialize.Func,
	}

	b.storage(t)
	b.constructor(t)
	b.accessors(t)
	b.setters(t)
	b.deserialize(t)
	b.serialize(t)
	b.binding(t)
	b.toString(t)

	return &fileData{
		Package:     pkgName,
		ImportBlock: imports.Block(),
		Runtime:     b.rt,
		Comments:    g.config.GenerateComments,
		Type:        t,
	}
}

// fieldType is the stored type of a field.
func (b *viewBuilder) fieldType(f *synth.Field) string {
	t := f.Type.GoString(b.imports.Qualifier())
	if f.Boxed {
		return "*" + t
	}

	return t
}

func (b *viewBuilder) self(name string) string {
	return b.spec.Receiver + "." + name
}

func (b *viewBuilder) storage(t *typeView) {
	if p := b.spec.Parent; p != nil {
		t.Storage = append(t.Storage, storageView{Name: p.Field, Type: "*" + p.Type})
	}

	for _, f := range b.spec.Fields {
		t.Storage = append(t.Storage, storageView{Name: f.Storage, Type: b.fieldType(f)})
	}
}

func (b *viewBuilder) constructor(t *typeView) {
	c := b.spec.Constructor
	t.Ctor.Func = c.Func

	for _, p := range c.Params {
		var typ string
		if p.Field != nil {
			typ = b.fieldType(p.Field)
		} else {
			typ = "*" + p.Parent.GeneratedName
			t.Ctor.ParentParam = p.Name
		}
		t.Ctor.Params = append(t.Ctor.Params, storageView{Name: p.Name, Type: typ})
	}

	if c.ParentFunc != "" {
		t.Ctor.Assign = append(t.Ctor.Assign, assignView{
			Field: b.spec.Parent.Field,
			Value: c.ParentFunc + "(" + joinExprs(c.ParentArgs) + ")",
		})
	}

	for _, f := range b.spec.Fields {
		t.Ctor.Assign = append(t.Ctor.Assign, assignView{Field: f.Storage, Value: f.Param})
	}
}

func (b *viewBuilder) accessors(t *typeView) {
	for _, a := range b.spec.Accessors {
		value := b.self(a.Field.Storage)
		if a.Via != nil {
			value = a.Via.String()
		}

		t.Accessors = append(t.Accessors, accessorView{
			Method:   a.Method,
			Label:    a.Field.Name(),
			Type:     b.fieldType(a.Field),
			Value:    value,
			Nullable: a.Nullable,
		})
	}
}

func (b *viewBuilder) setters(t *typeView) {
	for _, s := range b.spec.Setters {
		v := setterView{
			Method: s.Method,
			Label:  s.Field.Name(),
			Type:   b.fieldType(s.Field),
			Target: s.Field.Storage,
			Value:  "value",
		}
		if s.ParentMethod != "" {
			v.Target = b.spec.Parent.Field
			v.Value = b.self(b.spec.Parent.Field) + "." + s.ParentMethod + "(value)"
		}

		t.Setters = append(t.Setters, v)
	}
}

func (b *viewBuilder) deserialize(t *typeView) {
	d := b.spec.Deserialize
	v := &deserializeView{
		Func:       d.Func,
		ParentFunc: d.ParentFunc,
		ParentVar:  d.ParentVar,
		Construct:  d.Construct,
		Args:       joinExprs(d.Args),
	}

	for _, s := range d.Steps {
		v.Steps = append(v.Steps, stepView{Var: s.Var, Func: s.Helper.Func})
	}

	for _, h := range d.Helpers {
		t.Helpers = append(t.Helpers, b.helper(h))
	}

	t.Deserialize = v
}

func (b *viewBuilder) helper(h *synth.Helper) helperView {
	f := h.Field
	v := helperView{
		Func:         h.Func,
		Type:         b.fieldType(f),
		ValueType:    f.Type.GoString(b.imports.Qualifier()),
		KeyLit:       strconv.Quote(h.Key),
		FieldLit:     strconv.Quote(f.Name()),
		EnclosingLit: strconv.Quote(h.Enclosing),
		Nullable:     h.Nullable,
		NilZero:      h.Nullable && !f.Nillable(),
		FastPath:     h.FastPath,
		Boxed:        f.Boxed,
		Strategy:     h.Strategy.String(),
	}

	if h.Default != nil {
		v.Default = defaultExpr(v.ValueType, h.Default.Literal)
	}

	if h.Elem != nil {
		v.ElemFunc = h.ElemFunc()
		if q := b.imports.add(h.Elem.Source.PkgPath); q != "" {
			v.ElemFunc = q + "." + v.ElemFunc
		}
	}

	if h.Strategy == synth.StrategyMap {
		v.KeyType = f.Type.Key.GoString(b.imports.Qualifier())
	}

	return v
}

// defaultExpr converts a default literal to the field type so that the fast
// path accepts it.
func defaultExpr(typ, literal string) string {
	switch typ {
	case "string", "bool":
		return literal
	default:
		return typ + "(" + literal + ")"
	}
}

func (b *viewBuilder) serialize(t *typeView) {
	s := b.spec.Serialize
	v := &serializeView{}
	if s.ParentLink != "" {
		v.Parent = b.self(s.ParentLink)
	}

	for _, e := range s.Entries {
		value := b.self(e.Field.Storage)
		entry := entryView{KeyLit: strconv.Quote(e.Key), Value: value, Write: value}

		switch e.Mode {
		case synth.SerializePlain:
			entry.Mode = "plain"
		case synth.SerializeNillable:
			entry.Mode = "nillable"
		case synth.SerializeBoxed:
			entry.Mode = "boxed"
			entry.Write = "*" + value
		case synth.SerializeSchema:
			entry.Mode = "schema"
			entry.Write = value + ".Serialize()"
		case synth.SerializeSlice:
			entry.Mode = "slice"
			entry.Write = b.rt + ".SerializeSlice(" + value + ")"
		case synth.SerializeMap:
			entry.Mode = "map"
			entry.Write = b.rt + ".SerializeMap(" + value + ")"
		}

		v.Entries = append(v.Entries, entry)
	}

	t.Serialize = v
}

func (b *viewBuilder) binding(t *typeView) {
	bind := b.spec.Binding
	if bind == nil {
		return
	}

	t.Binding = &bindingView{Var: bind.Var, KeyLit: strconv.Quote(bind.Key), Func: bind.Func}
}

func (b *viewBuilder) toString(t *typeView) {
	ts := b.spec.ToString
	if ts == nil {
		return
	}

	b.imports.add("fmt")

	labels := make([]string, 0, len(ts.Parts))
	v := &toStringView{}
	for _, p := range ts.Parts {
		labels = append(labels, p.Label+": %v")

		arg := p.Value.String()
		if p.Deref {
			arg = b.rt + ".Deref(" + arg + ")"
		}
		v.Args = append(v.Args, arg)
	}

	v.Format = strconv.Quote(b.spec.Name + "{" + strings.Join(labels, ", ") + "}")
	t.ToString = v
}

func joinExprs(exprs []synth.Expr) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, e.String())
	}

	return strings.Join(parts, ", ")
}
