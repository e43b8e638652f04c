package naming

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// AttributeKind tags an Attribute.
type AttributeKind int

const (
	AttrNone    AttributeKind = iota // no naming information
	AttrName                         // explicit key override
	AttrPattern                      // naming pattern
)

// Attribute is one source of naming information for a field.
type Attribute struct {
	Kind    AttributeKind
	Name    string
	Pattern Pattern
}

// None is the absent attribute.
func None() Attribute { return Attribute{} }

// Override is an explicit lookup key.
func Override(name string) Attribute { return Attribute{Kind: AttrName, Name: name} }

// Apply is a naming pattern.
func Apply(p Pattern) Attribute { return Attribute{Kind: AttrPattern, Pattern: p} }

// DefaultCacheSize bounds the number of memoised pattern results.
const DefaultCacheSize = 4096

type cacheKey struct {
	pattern Pattern
	name    string
}

// Resolver turns field names into lookup keys. It is safe for concurrent use.
type Resolver struct {
	cache *lru.Cache[cacheKey, string]
}

// NewResolver creates a Resolver with a memo cache of the given size.
func NewResolver(size int) *Resolver {
	if size <= 0 {
		size = DefaultCacheSize
	}

	cache, err := lru.New[cacheKey, string](size)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}

	return &Resolver{cache: cache}
}

// Format applies p to name, memoising the result.
func (r *Resolver) Format(p Pattern, name string) string {
	if p == Identity {
		return name
	}

	key := cacheKey{pattern: p, name: name}
	if v, ok := r.cache.Get(key); ok {
		return v
	}

	v := p.Format(name)
	r.cache.Add(key, v)
	return v
}

// Resolve picks the lookup key for field. attrs are evaluated in order and the
// first one that is not None wins; callers pass the field override, the field
// pattern and the schema pattern, in that order. With no attribute the field
// name is returned unchanged.
func (r *Resolver) Resolve(field string, attrs ...Attribute) string {
	for _, a := range attrs {
		switch a.Kind {
		case AttrName:
			return a.Name
		case AttrPattern:
			return r.Format(a.Pattern, field)
		case AttrNone:
		}
	}

	return field
}

// Len reports how many pattern results are cached.
func (r *Resolver) Len() int {
	return r.cache.Len()
}
