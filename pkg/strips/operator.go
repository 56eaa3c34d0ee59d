package strips

import (
	"strings"
)

// EffectKind is the polarity tag of an effect.
type EffectKind string

const (
	EffectAdd EffectKind = "add"
	EffectDel EffectKind = "del"
)

// Effect makes an atom true (add) or false (del).
type Effect struct {
	Kind EffectKind
	Atom Atom
}

// Add builds an add effect.
func Add(predicate string, args ...string) Effect {
	return Effect{Kind: EffectAdd, Atom: NewAtom(predicate, args...)}
}

// Del builds a delete effect.
func Del(predicate string, args ...string) Effect {
	return Effect{Kind: EffectDel, Atom: NewAtom(predicate, args...)}
}

// String renders the effect as "ADD(p a)" / "DEL(p a)".
func (e Effect) String() string {
	return strings.ToUpper(string(e.Kind)) + e.Atom.String()
}

// Operator is a grounded action.
type Operator struct {
	Name         string
	Args         []string
	Precondition Formula
	Effects      []Effect
}

// String returns the display form, e.g. "move(a, b)".
func (o Operator) String() string {
	return o.Name + "(" + strings.Join(o.Args, ", ") + ")"
}

// Key is a stable identifier for the grounded operator.
func (o Operator) Key() string {
	return o.String()
}

// Applicable reports whether the precondition holds in s.
func (o Operator) Applicable(s State) bool {
	if o.Precondition == nil {
		return true
	}
	for _, lit := range o.Precondition.Literals() {
		if !s.Satisfies(lit) {
			return false
		}
	}
	return true
}
