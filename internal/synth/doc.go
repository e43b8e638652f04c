// Package synth decides what a generated type looks like.
//
// Synthesis runs a fixed sequence of stages over an accumulating TypeSpec:
// initialize, fields, constructor, accessors, copy-setters, deserialize,
// serialize, binding and string representation. The result is data only;
// package gen turns it into source text.
//
// Ancestor chaining: a generated type stores a single link to its parent's
// generated instance. When the parent is a root, the constructor takes the
// parent's field values followed by its own; when the parent has a parent of
// its own, the constructor takes the parent instance, then the parent's own
// field values, then its own.
package synth
