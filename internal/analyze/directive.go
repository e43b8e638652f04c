package analyze

import (
	"go/ast"
	"strings"
)

// DirectivePrefix starts every confgen comment directive.
const DirectivePrefix = "//confgen:"

// Directive is a parsed "//confgen:<name> key=value flag ..." comment line.
type Directive struct {
	Name string
	Args map[string]string // flags map to ""
}

// Arg returns the value of a key=value argument.
func (d Directive) Arg(key string) (string, bool) {
	v, ok := d.Args[key]
	return v, ok
}

// Flag reports whether a bare flag (or key with any value) is present.
func (d Directive) Flag(name string) bool {
	_, ok := d.Args[name]
	return ok
}

// ParseDirective parses a single comment line. It returns false when the
// line is not a confgen directive.
func ParseDirective(line string) (Directive, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), DirectivePrefix)
	if !ok {
		return Directive{}, false
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return Directive{}, false
	}

	d := Directive{Name: fields[0], Args: make(map[string]string, len(fields)-1)}
	for _, f := range fields[1:] {
		k, v, _ := strings.Cut(f, "=")
		d.Args[k] = v
	}

	return d, true
}

// ParseDirectives collects all directives from a doc comment group.
func ParseDirectives(doc *ast.CommentGroup) []Directive {
	if doc == nil {
		return nil
	}

	var out []Directive
	for _, c := range doc.List {
		if d, ok := ParseDirective(c.Text); ok {
			out = append(out, d)
		}
	}

	return out
}
