package domain

import (
	"fmt"
	"slices"
)

// StateView is the observation carried by a Step: a full State or a PartialState.
type StateView interface {
	// Len is the number of fluents present in the view.
	Len() int
	// Fluents returns the present fluents sorted by identity.
	// For partial views, Value is only meaningful when Truth is known.
	Fluents() []Fluent
	// Truth returns the value of f, or Unknown when absent or hidden.
	Truth(f Fluent) Truth
	// IsPartial distinguishes masked views.
	IsPartial() bool
}

// State maps every fluent of the state model to an explicit truth value.
type State struct {
	fluents map[FluentID]Fluent
}

// NewState builds a state. Duplicate identities are rejected.
func NewState(fluents ...Fluent) (State, error) {
	s := State{fluents: make(map[FluentID]Fluent, len(fluents))}
	for _, f := range fluents {
		id := f.ID()
		if _, dup := s.fluents[id]; dup {
			return State{}, fmt.Errorf("%w: %s", ErrDuplicateFluent, id)
		}
		s.fluents[id] = f.WithValue(f.Value)
	}
	return s, nil
}

func (s State) Len() int {
	return len(s.fluents)
}

func (s State) Fluents() []Fluent {
	return sortedFluents(s.fluents)
}

func (s State) Truth(f Fluent) Truth {
	v, ok := s.Value(f)
	if !ok {
		return Unknown
	}
	return TruthOf(v)
}

func (s State) IsPartial() bool {
	return false
}

// Value returns the truth value of f and whether the state defines it.
func (s State) Value(f Fluent) (bool, bool) {
	got, ok := s.fluents[f.ID()]
	if !ok {
		return false, false
	}
	return got.Value, true
}

// Holds reports whether f has the value f.Value in the state. Equality
// fluents are static and hold when both objects are the same. Fluents
// outside the state model are false.
func (s State) Holds(f Fluent) bool {
	if f.Name == EqualFluentName && len(f.Objects) == 2 {
		return (f.Objects[0].Name == f.Objects[1].Name) == f.Value
	}
	v, _ := s.Value(f)
	return v == f.Value
}

// Apply returns the successor produced by a's effects: deletes, then adds.
func (s State) Apply(a *Action) State {
	next := State{fluents: make(map[FluentID]Fluent, len(s.fluents))}
	for id, f := range s.fluents {
		next.fluents[id] = f
	}
	for _, f := range a.Delete {
		next.fluents[f.ID()] = f.WithValue(false)
	}
	for _, f := range a.Add {
		next.fluents[f.ID()] = f.WithValue(true)
	}
	return next
}

// Equal compares observed content with another view.
func (s State) Equal(other StateView) bool {
	return EqualViews(s, other)
}

// PartialEntry is one fluent of a partial state with its tri-state value.
type PartialEntry struct {
	Fluent Fluent
	Truth  Truth
}

// PartialState maps fluents to true, false or unknown. Fluents absent from
// the mapping are unknown as well.
type PartialState struct {
	fluents map[FluentID]Fluent
	truth   map[FluentID]Truth
}

// NewPartialState builds a partial state. Duplicate identities are rejected.
func NewPartialState(entries ...PartialEntry) (PartialState, error) {
	p := PartialState{
		fluents: make(map[FluentID]Fluent, len(entries)),
		truth:   make(map[FluentID]Truth, len(entries)),
	}
	for _, e := range entries {
		id := e.Fluent.ID()
		if _, dup := p.fluents[id]; dup {
			return PartialState{}, fmt.Errorf("%w: %s", ErrDuplicateFluent, id)
		}
		p.fluents[id] = e.Fluent.WithValue(e.Truth == True)
		p.truth[id] = e.Truth
	}
	return p, nil
}

func (p PartialState) Len() int {
	return len(p.fluents)
}

func (p PartialState) Fluents() []Fluent {
	return sortedFluents(p.fluents)
}

func (p PartialState) Truth(f Fluent) Truth {
	return p.truth[f.ID()]
}

func (p PartialState) IsPartial() bool {
	return true
}

// Equal compares observed content with another view.
func (p PartialState) Equal(other StateView) bool {
	return EqualViews(p, other)
}

// EqualViews reports whether two views have the same kind and the same
// known values. Absent and explicitly unknown fluents are indistinguishable.
func EqualViews(a, b StateView) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.IsPartial() != b.IsPartial() {
		return false
	}
	ka, kb := knownValues(a), knownValues(b)
	if len(ka) != len(kb) {
		return false
	}
	for id, v := range ka {
		if w, ok := kb[id]; !ok || w != v {
			return false
		}
	}
	return true
}

func knownValues(v StateView) map[FluentID]bool {
	out := make(map[FluentID]bool, v.Len())
	for _, f := range v.Fluents() {
		if val, ok := v.Truth(f).Bool(); ok {
			out[f.ID()] = val
		}
	}
	return out
}

func sortedFluents(m map[FluentID]Fluent) []Fluent {
	ids := make([]FluentID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]Fluent, len(ids))
	for i, id := range ids {
		out[i] = m[id]
	}
	return out
}
