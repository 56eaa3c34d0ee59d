package strips

import (
	"slices"
	"strings"
)

// State is an immutable set of true ground atoms.
// Atoms not in the set are false (closed world).
type State struct {
	atoms map[string]Atom
}

// NewState creates a state from its true atoms.
func NewState(atoms ...Atom) State {
	s := State{atoms: make(map[string]Atom, len(atoms))}
	for _, a := range atoms {
		s.atoms[a.Key()] = a
	}
	return s
}

// Holds reports whether the atom is true in the state.
func (s State) Holds(a Atom) bool {
	if a.IsEquality() {
		return len(a.Args) == 2 && a.Args[0] == a.Args[1]
	}
	_, ok := s.atoms[a.Key()]
	return ok
}

// Satisfies evaluates a literal against the state.
func (s State) Satisfies(l Literal) bool {
	return s.Holds(l.Atom) != l.Negated
}

// Atoms returns the true atoms sorted by display form.
func (s State) Atoms() []Atom {
	keys := make([]string, 0, len(s.atoms))
	for k := range s.atoms {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]Atom, len(keys))
	for i, k := range keys {
		out[i] = s.atoms[k]
	}
	return out
}

// Len is the number of true atoms.
func (s State) Len() int {
	return len(s.atoms)
}

// Key serializes the state deterministically.
func (s State) Key() string {
	atoms := s.Atoms()
	parts := make([]string, len(atoms))
	for i, a := range atoms {
		parts[i] = a.Key()
	}
	return strings.Join(parts, " ")
}

// Apply returns the successor state: deletes first, then adds.
func (s State) Apply(effects []Effect) State {
	next := State{atoms: make(map[string]Atom, len(s.atoms))}
	for k, a := range s.atoms {
		next.atoms[k] = a
	}
	for _, e := range effects {
		if e.Kind == EffectDel {
			delete(next.atoms, e.Atom.Key())
		}
	}
	for _, e := range effects {
		if e.Kind == EffectAdd {
			next.atoms[e.Atom.Key()] = e.Atom
		}
	}
	return next
}
