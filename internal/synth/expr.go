package synth

import "strings"

// Expr is a variable followed by selectors, e.g. parent.parentBase.Name().
type Expr struct {
	Var  string
	Path []Selector
}

// Selector is one field access or zero-argument method call.
type Selector struct {
	Name string
	Call bool
}

// Var returns an expression naming a variable.
func Var(name string) Expr {
	return Expr{Var: name}
}

// Field appends a field selector.
func (e Expr) Field(name string) Expr {
	return e.with(Selector{Name: name})
}

// Call appends a method call.
func (e Expr) Call(name string) Expr {
	return e.with(Selector{Name: name, Call: true})
}

func (e Expr) with(s Selector) Expr {
	path := make([]Selector, len(e.Path), len(e.Path)+1)
	copy(path, e.Path)
	return Expr{Var: e.Var, Path: append(path, s)}
}

// String renders the expression as Go source.
func (e Expr) String() string {
	var b strings.Builder
	b.WriteString(e.Var)
	for _, s := range e.Path {
		b.WriteByte('.')
		b.WriteString(s.Name)
		if s.Call {
			b.WriteString("()")
		}
	}

	return b.String()
}
