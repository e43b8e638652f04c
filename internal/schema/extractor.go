package schema

import (
	"fmt"
	"go/token"
	"go/types"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"

	"confgen/internal/analyze"
	"confgen/internal/diagnostic"
	"confgen/internal/naming"
)

// Generated-name suffixes stripped from declaration names.
var nameSuffixes = []string{"DTO", "Config"}

// reservedFields clash with methods every generated type has.
var reservedFields = []string{"Serialize"}

// Extractor builds Schema values from declarations of one type graph.
// Results are memoised per declaration; it is safe for concurrent use.
type Extractor struct {
	graph    *analyze.TypeGraph
	names    *naming.Resolver
	fallback naming.Attribute
	cache    *xsync.MapOf[analyze.TypeID, *Schema]
	logger   *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithDefaultPattern sets the naming pattern used when neither the field nor
// the declaration names one.
func WithDefaultPattern(p naming.Pattern) Option {
	return func(e *Extractor) {
		if p != naming.Identity {
			e.fallback = naming.Apply(p)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = l.With("system", "schema")
	}
}

// NewExtractor creates an Extractor over graph.
func NewExtractor(graph *analyze.TypeGraph, names *naming.Resolver, opts ...Option) *Extractor {
	e := &Extractor{
		graph:  graph,
		names:  names,
		cache:  xsync.NewMapOf[analyze.TypeID, *Schema](),
		logger: slog.Default().With("system", "schema"),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Canonical returns the graph's entry for a named type. Types reached through
// another package's export data are distinct objects from the graph's own.
func (e *Extractor) Canonical(t *analyze.TypeInfo) *analyze.TypeInfo {
	if t == nil || !t.IsNamed() {
		return t
	}
	if c := e.graph.GetType(t.ID); c != nil {
		return c
	}

	return t
}

// IsSchema reports whether t is a struct declaration carrying the schema directive.
func (e *Extractor) IsSchema(t *analyze.TypeInfo) bool {
	t = e.Canonical(t)
	if t == nil || t.Kind != analyze.TypeKindStruct {
		return false
	}

	_, ok := t.Directive(Directive)
	return ok
}

// Cached returns a previously extracted schema.
func (e *Extractor) Cached(id analyze.TypeID) (*Schema, bool) {
	return e.cache.Load(id)
}

// Extract builds the Schema for t, extracting its parent chain first.
func (e *Extractor) Extract(t *analyze.TypeInfo) (*Schema, error) {
	return e.extract(e.Canonical(t), nil)
}

func (e *Extractor) extract(t *analyze.TypeInfo, chain []analyze.TypeID) (*Schema, error) {
	if t == nil {
		return nil, &diagnostic.ValidationError{Schema: "<nil>", Message: "no declaration"}
	}
	if s, ok := e.cache.Load(t.ID); ok {
		return s, nil
	}

	decl := t.ID.String()
	if slices.Contains(chain, t.ID) {
		return nil, &diagnostic.ValidationError{Schema: decl, Message: "cyclic schema inheritance"}
	}

	d, ok := t.Directive(Directive)
	if !ok || t.Kind != analyze.TypeKindStruct {
		return nil, &diagnostic.ValidationError{Schema: decl, Message: "not a struct declaration with a //confgen:schema directive"}
	}

	name, err := e.GeneratedName(t)
	if err != nil {
		return nil, err
	}

	s := &Schema{
		Source:        t.ID,
		Decl:          t,
		GeneratedName: name,
		Kind:          ValueObject,
		ToString:      d.Flag(ArgToString),
		Enclosing:     d.Args[ArgIn],
	}
	if d.Flag(ArgRecord) {
		s.Kind = Record
	}
	if key, ok := d.Arg(ArgSource); ok {
		if key == "" {
			return nil, &diagnostic.ValidationError{Schema: decl, Message: "source key must not be empty"}
		}
		s.SourceKey = key
	}

	typePattern := naming.None()
	if p, ok := d.Arg(ArgNaming); ok {
		pattern, err := naming.ParsePattern(p)
		if err != nil {
			return nil, &diagnostic.ValidationError{Schema: decl, Message: err.Error()}
		}
		typePattern = naming.Apply(pattern)
	}

	embedded, fields := splitFields(t)

	parent, err := e.parent(t, embedded, append(chain, t.ID))
	if err != nil {
		return nil, err
	}
	s.Parent = parent

	for _, fi := range fields {
		fs, err := e.field(s, fi, typePattern)
		if err != nil {
			return nil, err
		}
		s.Fields = append(s.Fields, fs)
	}

	if err := validate(s); err != nil {
		return nil, err
	}

	s, _ = e.cache.LoadOrStore(t.ID, s)
	e.logger.Debug("extracted schema",
		"schema", decl, "generated", s.GeneratedName, "fields", len(s.Fields), "depth", s.Depth())

	return s, nil
}

// splitFields separates embedded fields from regular ones, dropping blank and
// transient fields.
func splitFields(t *analyze.TypeInfo) (embedded, fields []*analyze.FieldInfo) {
	for i := range t.Fields {
		fi := &t.Fields[i]
		if fi.IsBlank() {
			continue
		}
		if name, _ := fi.TagName(TagConfig); name == Transient {
			continue
		}

		if fi.Embedded {
			embedded = append(embedded, fi)
		} else {
			fields = append(fields, fi)
		}
	}

	return embedded, fields
}

func (e *Extractor) parent(t *analyze.TypeInfo, embedded []*analyze.FieldInfo, chain []analyze.TypeID) (*Schema, error) {
	decl := t.ID.String()

	switch len(embedded) {
	case 0:
		return nil, nil
	case 1:
	default:
		names := make([]string, len(embedded))
		for i, f := range embedded {
			names[i] = f.Name
		}
		return nil, &diagnostic.ValidationError{
			Schema:  decl,
			Message: "a schema may embed at most one parent schema, found " + strings.Join(names, ", "),
		}
	}

	pt := embedded[0].Type
	if pt != nil && pt.Kind == analyze.TypeKindPointer {
		pt = pt.ElemType
	}
	pt = e.Canonical(pt)

	if !e.IsSchema(pt) {
		return nil, &diagnostic.ValidationError{
			Schema:  decl,
			Message: "superclass of a schema type must be a schema type (embedded " + embedded[0].Name + ")",
		}
	}
	if pt.ID.PkgPath != t.ID.PkgPath {
		return nil, &diagnostic.ValidationError{
			Schema:  decl,
			Message: fmt.Sprintf("parent schema %s must be declared in package %s", pt.ID, t.ID.PkgPath),
		}
	}

	parent, err := e.extract(pt, chain)
	if err != nil {
		return nil, fmt.Errorf("parent of %s: %w", decl, err)
	}

	return parent, nil
}

func (e *Extractor) field(s *Schema, fi *analyze.FieldInfo, typePattern naming.Attribute) (*FieldSchema, error) {
	decl := s.Source.String()
	fs := &FieldSchema{
		Name:  fi.Name,
		Info:  fi,
		Type:  fi.Type,
		Owner: s,
	}

	if fi.Type != nil && fi.Type.Kind == analyze.TypeKindPointer {
		fs.Nullable = true
		fs.Type = fi.Type.ElemType
	}
	if fi.TagOption(TagConfig, OptOptional) {
		fs.Nullable = true
	}

	if def, ok := fi.Tag.Lookup(TagDefault); ok {
		if err := checkDefault(fs.Type, def); err != nil {
			return nil, &diagnostic.ValidationError{
				Schema:  decl,
				Message: fmt.Sprintf("default value of field %s: %v", fi.Name, err),
			}
		}
		fs.Default = def
		fs.HasDefault = true
	}

	override := naming.None()
	if name, _ := fi.TagName(TagConfig); name != "" {
		override = naming.Override(name)
	}

	fieldPattern := naming.None()
	if p, ok := fi.Tag.Lookup(TagNaming); ok {
		pattern, err := naming.ParsePattern(p)
		if err != nil {
			return nil, &diagnostic.ValidationError{
				Schema:  decl,
				Message: fmt.Sprintf("field %s: %v", fi.Name, err),
			}
		}
		fieldPattern = naming.Apply(pattern)
	}

	attrs := []naming.Attribute{override, fieldPattern, typePattern, e.fallback}
	origins := []KeyOrigin{KeyOverride, KeyFieldPattern, KeyTypePattern, KeyDefault}

	fs.LookupKey = e.names.Resolve(fi.Name, attrs...)
	fs.KeyOrigin = KeyIdentity
	for i, a := range attrs {
		if a.Kind != naming.AttrNone {
			fs.KeyOrigin = origins[i]
			break
		}
	}

	return fs, nil
}

// checkDefault accepts defaults for basic underlying types whose literal parses.
func checkDefault(t *analyze.TypeInfo, def string) error {
	b := t.BasicUnderlying()
	if b == nil {
		return fmt.Errorf("defaults require a basic underlying type")
	}

	info := b.Info()
	var err error
	switch {
	case info&types.IsBoolean != 0:
		_, err = strconv.ParseBool(def)
	case info&types.IsUnsigned != 0:
		_, err = strconv.ParseUint(def, 0, 64)
	case info&types.IsInteger != 0:
		_, err = strconv.ParseInt(def, 0, 64)
	case info&types.IsFloat != 0:
		_, err = strconv.ParseFloat(def, 64)
	case info&types.IsString != 0:
	default:
		return fmt.Errorf("defaults are not supported for %s", b.Name())
	}

	if err != nil {
		return fmt.Errorf("%q is not a valid %s", def, b.Name())
	}

	return nil
}

// validate checks the whole ancestor chain for clashing names and keys.
func validate(s *Schema) error {
	decl := s.Source.String()
	byKey := make(map[string]*FieldSchema)
	byName := make(map[string]*FieldSchema)

	for _, f := range s.AllFields() {
		if other, ok := byName[f.Name]; ok {
			return &diagnostic.ValidationError{
				Schema:  decl,
				Message: fmt.Sprintf("field %s is declared by both %s and %s", f.Name, other.Owner.Source.Name, f.Owner.Source.Name),
			}
		}
		byName[f.Name] = f

		if other, ok := byKey[f.LookupKey]; ok {
			return &diagnostic.ValidationError{
				Schema:  decl,
				Message: fmt.Sprintf("fields %s and %s both use lookup key %q", other.Name, f.Name, f.LookupKey),
			}
		}
		byKey[f.LookupKey] = f

		if slices.Contains(reservedFields, f.Name) || (s.ToString && f.Name == "String") {
			return &diagnostic.ValidationError{
				Schema:  decl,
				Message: fmt.Sprintf("field name %s clashes with a generated method", f.Name),
			}
		}
	}

	if s.Parent == nil {
		return nil
	}

	// The parent link is both a storage field and a constructor parameter.
	link := "parent" + s.Parent.GeneratedName
	for _, f := range slices.Concat(s.Parent.Fields, s.Fields) {
		if strings.EqualFold(f.Name, link) {
			return &diagnostic.ValidationError{
				Schema:  decl,
				Message: fmt.Sprintf("field name %s clashes with the link to parent %s", f.Name, s.Parent.GeneratedName),
			}
		}
	}

	return nil
}

// GeneratedName derives the generated type name of a schema declaration.
func (e *Extractor) GeneratedName(t *analyze.TypeInfo) (string, error) {
	return e.generatedName(t, nil)
}

func (e *Extractor) generatedName(t *analyze.TypeInfo, seen []string) (string, error) {
	decl := t.ID.String()
	d, _ := t.Directive(Directive)

	own, err := ownName(t, d)
	if err != nil {
		return "", err
	}

	enclosing, ok := d.Arg(ArgIn)
	if !ok {
		return own, nil
	}

	seen = append(seen, t.ID.Name)
	if slices.Contains(seen, enclosing) {
		return "", &diagnostic.NameResolutionError{
			Declaration: decl,
			Reason:      "cyclic enclosing declarations " + strings.Join(append(seen, enclosing), " -> "),
		}
	}

	enc := e.graph.Lookup(t.ID.PkgPath, enclosing)
	if enc == nil {
		return "", &diagnostic.NameResolutionError{
			Declaration: decl,
			Reason:      "enclosing declaration " + enclosing + " not found",
		}
	}
	if !e.IsSchema(enc) {
		return "", &diagnostic.NameResolutionError{
			Declaration: decl,
			Reason:      "enclosing declaration " + enclosing + " is not a schema",
		}
	}

	prefix, err := e.generatedName(enc, seen)
	if err != nil {
		return "", err
	}

	return prefix + own, nil
}

func ownName(t *analyze.TypeInfo, d analyze.Directive) (string, error) {
	decl := t.ID.String()

	if name, ok := d.Arg(ArgName); ok {
		if !isIdent(name) {
			return "", &diagnostic.NameResolutionError{Declaration: decl, Reason: fmt.Sprintf("%q is not an exported identifier", name)}
		}
		if name == t.ID.Name {
			return "", &diagnostic.NameResolutionError{Declaration: decl, Reason: "generated name equals the declaration name"}
		}
		return name, nil
	}

	for _, suffix := range nameSuffixes {
		if base, ok := strings.CutSuffix(t.ID.Name, suffix); ok && base != "" {
			return base, nil
		}
	}

	return "", &diagnostic.NameResolutionError{
		Declaration: decl,
		Reason:      "name must end in DTO or Config, or the directive must set name=",
	}
}

func isIdent(s string) bool {
	return token.IsIdentifier(s) && token.IsExported(s)
}
