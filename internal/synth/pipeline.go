package synth

import (
	"fmt"
	"log/slog"

	"confgen/internal/resolve"
	"confgen/internal/schema"
)

// Stage is one step of the synthesis pipeline. Stages only read what earlier
// stages produced.
type Stage struct {
	Name  string
	Apply func(b *builder) error
}

// Stages is the fixed stage order.
var Stages = []Stage{
	{"initialize", initialize},
	{"fields", addFields},
	{"constructor", addConstructor},
	{"accessors", addAccessors},
	{"setters", addSetters},
	{"deserialize", addDeserialize},
	{"serialize", addSerialize},
	{"binding", addBinding},
	{"tostring", addToString},
}

// Synthesizer runs the pipeline.
type Synthesizer struct {
	resolver *resolve.Resolver
	logger   *slog.Logger
}

// New creates a Synthesizer resolving field types through resolver.
func New(resolver *resolve.Resolver, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Synthesizer{resolver: resolver, logger: logger.With("system", "synth")}
}

type builder struct {
	schema   *schema.Schema
	resolver *resolve.Resolver
	spec     *TypeSpec
}

// Synthesize builds the TypeSpec of s.
func (y *Synthesizer) Synthesize(s *schema.Schema) (*TypeSpec, error) {
	b := &builder{schema: s, resolver: y.resolver, spec: &TypeSpec{}}

	for _, stage := range Stages {
		if err := stage.Apply(b); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", s.Source, stage.Name, err)
		}
	}

	y.logger.Debug("synthesized type", "schema", s.Source.String(), "type", b.spec.Name,
		"fields", len(b.spec.Fields), "inherited", len(b.spec.Inherited))

	return b.spec, nil
}

// field builds the generated view of a schema field as seen from spec.
func (b *builder) field(f *schema.FieldSchema, inherited bool) (*Field, error) {
	t, err := b.resolver.ResolveField(f)
	if err != nil {
		return nil, err
	}

	out := &Field{
		Source:    f,
		Type:      t,
		Boxed:     f.Nullable && t.FastPath() && t.Kind == resolve.KindDirect,
		Param:     local(f.Name),
		Inherited: inherited,
		Storage:   storageName(f.Owner.Kind, f.Name),
		Accessor:  accessorName(b.schema.Kind, f.Name),
	}

	return out, nil
}

func storageName(kind schema.Kind, name string) string {
	if kind == schema.Record {
		return exported(name)
	}

	return local(name)
}

func accessorName(kind schema.Kind, name string) string {
	if kind == schema.Record {
		return "Get" + exported(name)
	}

	return exported(name)
}
