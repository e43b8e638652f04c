package resolve

import (
	"fmt"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"

	"confgen/internal/analyze"
	"confgen/internal/common"
	"confgen/internal/diagnostic"
	"confgen/internal/registry"
	"confgen/internal/schema"
)

// Site is where a type is used: a readable path and the type expression as
// written in source.
type Site struct {
	Path string // e.g. "ShopConfig.Items"
	Expr string // e.g. "[]ItemConfig"

	path *analyze.TypePath
}

// FieldSite returns the site of a schema field.
func FieldSite(f *schema.FieldSchema) Site {
	path := analyze.NewTypePath(f.Owner.Source.Name).Field(f.Name)
	site := Site{Path: path.String(), path: path}
	if f.Info != nil {
		site.Expr = f.Info.Expr
	}

	return site
}

func (s Site) typePath() *analyze.TypePath {
	if s.path != nil {
		return s.path
	}

	parts := strings.Split(s.Path, ".")
	path := analyze.NewTypePath(parts[0])
	for _, part := range parts[1:] {
		path = path.Field(part)
	}
	return path
}

func (s Site) with(path *analyze.TypePath) Site {
	return Site{Path: path.String(), Expr: s.Expr, path: path}
}

// elem is the site of a slice, array or map element: "ShopConfig.Items[]".
func (s Site) elem() Site {
	return s.with(s.typePath().Slice())
}

// deref is the site of a pointer target: "ShopConfig.*Owner".
func (s Site) deref() Site {
	return s.with(s.typePath().Pointer())
}

type cacheKey struct {
	t    *analyze.TypeInfo
	site string
}

// Resolver resolves field types. Successful results are memoised per
// (type, site); it is safe for concurrent use.
type Resolver struct {
	extractor *schema.Extractor
	registry  *registry.Registry
	cache     *xsync.MapOf[cacheKey, *Type]
}

// New creates a Resolver. Referenced schemas are extracted through extractor;
// reg supplies candidates for invalid type references.
func New(extractor *schema.Extractor, reg *registry.Registry) *Resolver {
	return &Resolver{
		extractor: extractor,
		registry:  reg,
		cache:     xsync.NewMapOf[cacheKey, *Type](),
	}
}

// ResolveField resolves the type of a schema field.
func (r *Resolver) ResolveField(f *schema.FieldSchema) (*Type, error) {
	return r.Resolve(f.Type, FieldSite(f))
}

// Resolve resolves t as used at site.
func (r *Resolver) Resolve(t *analyze.TypeInfo, site Site) (*Type, error) {
	key := cacheKey{t: t, site: site.Path}
	if cached, ok := r.cache.Load(key); ok {
		return cached, nil
	}

	resolved, err := r.resolve(t, site)
	if err != nil {
		return nil, err
	}

	resolved, _ = r.cache.LoadOrStore(key, resolved)
	return resolved, nil
}

func (r *Resolver) resolve(t *analyze.TypeInfo, site Site) (*Type, error) {
	if t == nil {
		return nil, fmt.Errorf("%s: missing type information", site.Path)
	}

	if t.Kind == analyze.TypeKindInvalid {
		return nil, r.invalidReference(usedTypeName(site.Expr), site)
	}

	target := t
	if t.Kind == analyze.TypeKindPointer && r.extractor.IsSchema(t.ElemType) {
		target = t.ElemType
	}

	if r.extractor.IsSchema(target) {
		s, err := r.extractor.Extract(target)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", site.Path, err)
		}
		return &Type{Kind: KindSchema, Schema: s, Source: r.extractor.Canonical(target)}, nil
	}

	if err := r.checkGenerated(t, site); err != nil {
		return nil, err
	}

	switch t.Kind {
	case analyze.TypeKindSlice:
		elem, err := r.element(t.ElemType, site.elem())
		if err != nil {
			return nil, err
		}
		return &Type{Kind: KindSequence, Elem: elem, Source: t}, nil

	case analyze.TypeKindMap:
		key, err := r.resolve(t.KeyType, site)
		if err != nil {
			return nil, err
		}
		if key.ContainsSchema() {
			return nil, &diagnostic.ValidationError{
				Schema:  site.Path,
				Message: "map keys must not be schema types",
			}
		}
		elem, err := r.element(t.ElemType, site.elem())
		if err != nil {
			return nil, err
		}
		return &Type{Kind: KindMap, Key: key, Elem: elem, Source: t}, nil

	case analyze.TypeKindArray:
		if _, err := r.opaque(t.ElemType, site.elem()); err != nil {
			return nil, err
		}
		return &Type{Kind: KindDirect, Source: t}, nil

	case analyze.TypeKindPointer:
		// pointer to a non-schema type nested inside a collection
		if _, err := r.opaque(t.ElemType, site.deref()); err != nil {
			return nil, err
		}
		return &Type{Kind: KindDirect, Source: t}, nil

	case analyze.TypeKindUnknown:
		return nil, &diagnostic.ValidationError{
			Schema:  site.Path,
			Message: fmt.Sprintf("unsupported field type %s", analyze.NewTypeStringer().TypeString(t)),
		}

	default:
		return &Type{Kind: KindDirect, Source: t}, nil
	}
}

// element resolves a slice or map element. Generated code converts schema
// elements one level deep only, so an element that is itself a collection
// must not contain schemas.
func (r *Resolver) element(t *analyze.TypeInfo, site Site) (*Type, error) {
	elem, err := r.resolve(t, site)
	if err != nil {
		return nil, err
	}
	if elem.Kind != KindSchema && elem.ContainsSchema() {
		return nil, nestedSchemaError(site)
	}

	return elem, nil
}

// opaque resolves the target of a type that generated code hands to the
// mapper as a whole; it must not contain schemas.
func (r *Resolver) opaque(t *analyze.TypeInfo, site Site) (*Type, error) {
	inner, err := r.resolve(t, site)
	if err != nil {
		return nil, err
	}
	if inner.ContainsSchema() {
		return nil, nestedSchemaError(site)
	}

	return inner, nil
}

func nestedSchemaError(site Site) error {
	return &diagnostic.ValidationError{
		Schema:  site.Path,
		Message: "schema types may be used directly or as slice and map elements only; declare a schema for the inner value",
	}
}

// checkGenerated rejects named types that are confgen output.
func (r *Resolver) checkGenerated(t *analyze.TypeInfo, site Site) error {
	if !t.IsNamed() {
		return nil
	}

	canonical := r.extractor.Canonical(t)
	_, registered := r.registry.Source(t.ID.String())
	if canonical.IsGenerated || registered {
		return r.invalidReference(t.ID.Name, site)
	}

	return nil
}

func (r *Resolver) invalidReference(used string, site Site) error {
	var candidates []string
	for _, id := range r.registry.Lookup(used) {
		candidates = append(candidates, common.PkgAlias(id.PkgPath)+"."+id.Name)
	}

	return &diagnostic.InvalidTypeReferenceError{
		UsedType:   used,
		Candidates: candidates,
		Site:       site.Path,
	}
}

// usedTypeName strips pointer, slice, array and map syntax from a type
// expression, leaving the element type name.
func usedTypeName(expr string) string {
	for {
		switch {
		case strings.HasPrefix(expr, "*"):
			expr = expr[1:]
		case strings.HasPrefix(expr, "["):
			end := strings.IndexByte(expr, ']')
			if end < 0 {
				return expr
			}
			expr = expr[end+1:]
		case strings.HasPrefix(expr, "map["):
			expr = expr[closingBracket(expr, len("map[")-1)+1:]
		default:
			return expr
		}
	}
}

// closingBracket returns the index of the bracket matching the one at open.
func closingBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return len(s) - 1
}
