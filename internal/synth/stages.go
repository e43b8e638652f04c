package synth

import (
	"confgen/internal/resolve"
	"confgen/internal/schema"
)

func initialize(b *builder) error {
	s := b.schema
	b.spec.Name = s.GeneratedName
	b.spec.Schema = s
	b.spec.Kind = s.Kind
	b.spec.Marker = Marker{Source: s.Source.Name}
	b.spec.Receiver = receiver(s.GeneratedName)

	if s.Parent != nil {
		b.spec.Parent = &ParentLink{
			Field:  parentLink(s.Parent.GeneratedName),
			Type:   s.Parent.GeneratedName,
			Schema: s.Parent,
		}
	}

	return nil
}

func addFields(b *builder) error {
	if b.schema.Parent != nil {
		for _, f := range b.schema.Parent.AllFields() {
			field, err := b.field(f, true)
			if err != nil {
				return err
			}
			b.spec.Inherited = append(b.spec.Inherited, field)
		}
	}

	for _, f := range b.schema.Fields {
		field, err := b.field(f, false)
		if err != nil {
			return err
		}
		b.spec.Fields = append(b.spec.Fields, field)
	}

	return nil
}

// ctorArgs lists the constructor arguments of s given an expression for its
// parent instance and the values of its own fields.
func ctorArgs(s *schema.Schema, parent Expr, own []Expr) []Expr {
	p := s.Parent
	if p == nil {
		return own
	}

	var args []Expr
	if p.Parent != nil {
		args = append(args, parent)
	}
	for _, f := range p.Fields {
		args = append(args, parent.Call(accessorName(p.Kind, f.Name)))
	}

	return append(args, own...)
}

// parentFields returns the generated view of the parent's own fields.
func (b *builder) parentFields() []*Field {
	p := b.schema.Parent
	var out []*Field
	for _, f := range b.spec.Inherited {
		if f.Source.Owner == p {
			out = append(out, f)
		}
	}

	return out
}

func addConstructor(b *builder) error {
	c := &Constructor{Func: constructorName(b.spec.Name)}

	p := b.schema.Parent
	if p != nil {
		c.ParentFunc = constructorName(p.GeneratedName)

		link := parentLink(p.GeneratedName)
		if p.Parent != nil {
			c.Params = append(c.Params, Param{Name: link, Parent: p})
		}

		var values []Expr
		for _, f := range b.parentFields() {
			c.Params = append(c.Params, Param{Name: f.Param, Field: f})
			values = append(values, Var(f.Param))
		}

		c.ParentArgs = values
		if p.Parent != nil {
			c.ParentArgs = ctorArgs(p, Var(link).Field(parentLink(p.Parent.GeneratedName)), values)
		}
	}

	for _, f := range b.spec.Fields {
		c.Params = append(c.Params, Param{Name: f.Param, Field: f})
	}

	b.spec.Constructor = c
	return nil
}

func addAccessors(b *builder) error {
	for _, f := range b.spec.AllFields() {
		a := &Accessor{Method: f.Accessor, Field: f, Nullable: f.Nillable()}
		if f.Inherited {
			via := Var(b.spec.Receiver).Field(b.spec.Parent.Field).Call(accessorName(b.schema.Parent.Kind, f.Name()))
			a.Via = &via
		}
		b.spec.Accessors = append(b.spec.Accessors, a)
	}

	return nil
}

func addSetters(b *builder) error {
	for _, f := range b.spec.AllFields() {
		s := &Setter{Method: setterName(f.Name()), Field: f}
		if f.Inherited {
			s.ParentMethod = setterName(f.Name())
		}
		b.spec.Setters = append(b.spec.Setters, s)
	}

	return nil
}

func addSerialize(b *builder) error {
	s := &Serializer{}
	if b.spec.Parent != nil {
		s.ParentLink = b.spec.Parent.Field
	}

	for _, f := range b.spec.Fields {
		s.Entries = append(s.Entries, SerializeEntry{
			Key:   f.Source.LookupKey,
			Field: f,
			Mode:  serializeMode(f),
		})
	}

	b.spec.Serialize = s
	return nil
}

func serializeMode(f *Field) SerializeMode {
	switch {
	case f.Type.Kind == resolve.KindSchema:
		return SerializeSchema
	case f.Type.Kind == resolve.KindSequence && f.Type.ElemSchema() != nil:
		return SerializeSlice
	case f.Type.Kind == resolve.KindMap && f.Type.ElemSchema() != nil:
		return SerializeMap
	case f.Boxed:
		return SerializeBoxed
	case f.Nillable():
		return SerializeNillable
	default:
		return SerializePlain
	}
}

func addBinding(b *builder) error {
	if b.schema.SourceKey == "" {
		return nil
	}

	b.spec.Binding = &Binding{
		Var:  bindingName(b.spec.Name),
		Key:  b.schema.SourceKey,
		Func: deserializeName(b.spec.Name),
	}

	return nil
}

func addToString(b *builder) error {
	if !b.schema.ToString {
		return nil
	}

	ts := &ToString{}
	for _, f := range b.spec.AllFields() {
		ts.Parts = append(ts.Parts, ToStringPart{
			Label: f.Name(),
			Value: Var(b.spec.Receiver).Call(f.Accessor),
			Deref: f.Boxed,
		})
	}

	b.spec.ToString = ts
	return nil
}
