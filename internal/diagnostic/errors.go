package diagnostic

import (
	"fmt"
	"strings"
)

// Diagnostic codes.
const (
	CodeValidation      = "validation"
	CodeNameResolution  = "name-resolution"
	CodeInvalidTypeRef  = "invalid-type-reference"
	CodeDuplicateName   = "duplicate-registration"
	CodeTypeCheck       = "type-check"
	CodeRender          = "render"
	CodeInternal        = "internal"
	CodeUnusedDirective = "unused-directive"
	CodeGenerated       = "generated"
)

// ValidationError reports a schema declaration that breaks a structural rule.
type ValidationError struct {
	Schema  string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid schema %s: %s", e.Schema, e.Message)
}

// NameResolutionError reports that no generated name can be derived.
type NameResolutionError struct {
	Declaration string
	Reason      string
}

func (e *NameResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve generated name for %s: %s", e.Declaration, e.Reason)
}

// InvalidTypeReferenceError reports a field whose declared type is a generated
// type (or a type that does not exist) instead of a schema type.
type InvalidTypeReferenceError struct {
	UsedType   string
	Candidates []string
	Site       string
}

func (e *InvalidTypeReferenceError) Error() string {
	var msg string
	switch len(e.Candidates) {
	case 0:
		msg = "unknown type " + e.UsedType
	case 1:
		msg = fmt.Sprintf("replace %s with %s", e.UsedType, e.Candidates[0])
	default:
		msg = fmt.Sprintf("replace %s with any of %s", e.UsedType, strings.Join(e.Candidates, ", "))
	}

	if e.Site == "" {
		return msg
	}

	return e.Site + ": " + msg
}

// DuplicateRegistrationError reports two schemas competing for one generated name.
type DuplicateRegistrationError struct {
	Name        string
	Existing    string
	Conflicting string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("generated name %s is already bound to %s, cannot bind %s", e.Name, e.Existing, e.Conflicting)
}
