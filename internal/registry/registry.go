// Package registry binds generated type names to the schema declarations
// they were produced from.
//
// The registry is only consulted to build diagnostics: when a field points at
// a generated type, Lookup finds the declaration that should be used instead.
package registry

import (
	"slices"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"

	"confgen/internal/analyze"
	"confgen/internal/diagnostic"
	"confgen/internal/schema"
)

// Registry is a one-to-one map between generated names and source
// declarations. It is safe for concurrent use and lives for one session.
type Registry struct {
	byName   *xsync.MapOf[string, analyze.TypeID]
	bySource *xsync.MapOf[analyze.TypeID, string]
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		byName:   xsync.NewMapOf[string, analyze.TypeID](),
		bySource: xsync.NewMapOf[analyze.TypeID, string](),
	}
}

// Register binds the schema's qualified generated name to its declaration.
// Registering the same pair twice is a no-op.
func (r *Registry) Register(s *schema.Schema) error {
	return r.Bind(s.GeneratedID().String(), s.Source)
}

// Bind records name -> source.
func (r *Registry) Bind(name string, source analyze.TypeID) error {
	existing, loaded := r.byName.LoadOrStore(name, source)
	if loaded {
		if existing != source {
			return &diagnostic.DuplicateRegistrationError{
				Name:        name,
				Existing:    existing.String(),
				Conflicting: source.String(),
			}
		}
		return nil
	}

	if prev, loaded := r.bySource.LoadOrStore(source, name); loaded && prev != name {
		r.byName.Delete(name)
		return &diagnostic.DuplicateRegistrationError{
			Name:        name,
			Existing:    source.String() + " (bound as " + prev + ")",
			Conflicting: source.String(),
		}
	}

	return nil
}

// Lookup returns every declaration whose generated name contains name or is
// contained in it, sorted. name may be qualified or bare.
func (r *Registry) Lookup(name string) []analyze.TypeID {
	if name == "" {
		return nil
	}

	var out []analyze.TypeID
	r.byName.Range(func(generated string, source analyze.TypeID) bool {
		if strings.Contains(generated, name) || strings.Contains(name, generated) {
			out = append(out, source)
		}
		return true
	})

	slices.SortFunc(out, func(a, b analyze.TypeID) int {
		return strings.Compare(a.String(), b.String())
	})

	return out
}

// Source returns the declaration bound to a qualified generated name.
func (r *Registry) Source(name string) (analyze.TypeID, bool) {
	return r.byName.Load(name)
}

// Len returns the number of bindings.
func (r *Registry) Len() int {
	return r.byName.Size()
}
