// Package diagnostic provides the compile-time error model of confgen.
//
// Schema-scoped failures are typed errors (ValidationError,
// NameResolutionError, InvalidTypeReferenceError, DuplicateRegistrationError)
// so callers can inspect them with errors.As. Diagnostics collects them per
// schema, together with warnings, for reporting at the end of a run.
package diagnostic
