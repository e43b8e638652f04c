package synth

import (
	"fmt"
	"go/types"
	"slices"
	"strconv"

	"confgen/internal/resolve"
	"confgen/internal/schema"
)

// parentVar holds the deserialized parent inside a Deserialize function.
const parentVar = "parent"

// addDeserialize plans Deserialize<Name>: the parent first, then every own
// field through its helper, in declaration order, stopping at the first
// failure; the instance is built from the resolved values.
func addDeserialize(b *builder) error {
	d := &Deserializer{
		Func:      deserializeName(b.spec.Name),
		Construct: b.spec.Constructor.Func,
	}

	if p := b.schema.Parent; p != nil {
		d.ParentFunc = deserializeName(p.GeneratedName)
		d.ParentVar = parentVar
	}

	own := make([]Expr, 0, len(b.spec.Fields))
	for i, f := range b.spec.Fields {
		h := b.helper(f)
		v := fmt.Sprintf("v%d", i)
		d.Helpers = append(d.Helpers, h)
		d.Steps = append(d.Steps, Step{Var: v, Helper: h})
		own = append(own, Var(v))
	}

	d.Args = ctorArgs(b.schema, Var(parentVar), own)

	// A root parent without fields contributes nothing to the arguments.
	if d.ParentVar != "" && !slices.ContainsFunc(d.Args, func(e Expr) bool { return e.Var == parentVar }) {
		d.ParentVar = "_"
	}

	b.spec.Deserialize = d
	return nil
}

// helper plans the per-field function:
//  1. look the key up, falling back to the default;
//  2. absent and nullable: nil;
//  3. absent and required: NotFound;
//  4. a raw value of the exact type is used as is;
//  5. a sequence of schemas is deserialized element-wise;
//  6. a map of schemas is deserialized value-wise;
//  7. a nested mapping goes to the schema's Deserialize;
//  8. anything else goes through the context's mapper.
func (b *builder) helper(f *Field) *Helper {
	t := f.Type
	h := &Helper{
		Func:      helperName(b.spec.Name, f.Name()),
		Field:     f,
		Key:       f.Source.LookupKey,
		Enclosing: b.schema.Source.Name,
		Nullable:  f.Source.Nullable,
		FastPath:  t.FastPath(),
		Strategy:  StrategyMapper,
	}

	if f.Source.HasDefault {
		h.Default = &Default{Literal: defaultLiteral(f.Source)}
	}

	switch {
	case t.Kind == resolve.KindSequence && t.ElemSchema() != nil:
		h.Strategy = StrategySequence
		h.Elem = t.ElemSchema()
	case t.Kind == resolve.KindMap && t.ElemSchema() != nil:
		h.Strategy = StrategyMap
		h.Elem = t.ElemSchema()
	case t.Kind == resolve.KindSchema:
		h.Strategy = StrategyNested
		h.Elem = t.Schema
	}

	return h
}

func defaultLiteral(f *schema.FieldSchema) string {
	if basic := f.Type.BasicUnderlying(); basic != nil && basic.Info()&types.IsString != 0 {
		return strconv.Quote(f.Default)
	}

	return f.Default
}
