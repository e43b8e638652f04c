// Package schema turns annotated struct declarations into Schema values.
//
// A Schema is the compiler's unit of work: the generated name, the
// representation kind, the ordered fields with their lookup keys, and the
// parent schema when the declaration embeds one.
package schema
