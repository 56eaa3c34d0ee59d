package strips

import (
	"strings"
)

// EqualityPredicate is the reserved predicate name for equality atoms.
const EqualityPredicate = "="

// Atom is a ground predicate application.
type Atom struct {
	Predicate string
	Args      []string
}

// NewAtom builds an atom.
func NewAtom(predicate string, args ...string) Atom {
	return Atom{Predicate: predicate, Args: args}
}

// IsEquality reports whether the atom is an equality test.
func (a Atom) IsEquality() bool {
	return a.Predicate == EqualityPredicate
}

// String returns the display form, e.g. "(on a b)".
func (a Atom) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(a.Predicate)
	for _, arg := range a.Args {
		b.WriteByte(' ')
		b.WriteString(arg)
	}
	b.WriteByte(')')
	return b.String()
}

// Key is a stable map key for the atom.
func (a Atom) Key() string {
	return a.String()
}

// Formula is a ground precondition or goal.
// It is either a single Literal or an And of literals.
type Formula interface {
	// Literals flattens the formula into its atomic terms.
	Literals() []Literal
	String() string
}

// Literal is a possibly negated atom.
type Literal struct {
	Atom
	Negated bool
}

// Pos builds a positive literal.
func Pos(predicate string, args ...string) Literal {
	return Literal{Atom: NewAtom(predicate, args...)}
}

// Neg builds a negated literal.
func Neg(predicate string, args ...string) Literal {
	return Literal{Atom: NewAtom(predicate, args...), Negated: true}
}

func (l Literal) Literals() []Literal {
	return []Literal{l}
}

// String returns "(not (p a))" for negated literals and "(p a)" otherwise.
func (l Literal) String() string {
	if l.Negated {
		return "(not " + l.Atom.String() + ")"
	}
	return l.Atom.String()
}

// And is a conjunction of literals.
type And []Literal

func (c And) Literals() []Literal {
	out := make([]Literal, len(c))
	copy(out, c)
	return out
}

func (c And) String() string {
	parts := make([]string, len(c))
	for i, l := range c {
		parts[i] = l.String()
	}
	return "(and " + strings.Join(parts, " ") + ")"
}

// Conjoin returns the single literal itself or an And for several.
// An empty input yields an empty And (always true).
func Conjoin(lits ...Literal) Formula {
	if len(lits) == 1 {
		return lits[0]
	}
	return And(lits)
}
