// Package naming derives lookup keys for schema fields.
//
// A key is chosen from a fixed precedence of attributes: an explicit per-field
// override, a per-field pattern, the schema's pattern, and finally the Go field
// name unchanged. Patterns are pure functions over the tokens of an identifier.
package naming
