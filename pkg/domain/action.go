package domain

import (
	"slices"
	"strings"
)

// Action is a grounded action. It is immutable once constructed and may be
// shared by every step that performs it.
type Action struct {
	Name    string         `json:"name"`
	Objects []CustomObject `json:"objects"`
	Precond []Fluent       `json:"precond"`
	Add     []Fluent       `json:"add"`
	Delete  []Fluent       `json:"delete"`
}

// NewAction creates an action. Precond, add and delete are sets: repeated
// entries are dropped, keeping the first occurrence.
func NewAction(name string, objects []CustomObject, precond, add, del []Fluent) *Action {
	return &Action{
		Name:    name,
		Objects: slices.Clone(objects),
		Precond: dedupe(precond, true),
		Add:     dedupe(add, false),
		Delete:  dedupe(del, false),
	}
}

// String returns the display form, e.g. "move(a, b)".
func (a *Action) String() string {
	names := make([]string, len(a.Objects))
	for i, o := range a.Objects {
		names[i] = o.Name
	}
	return a.Name + "(" + strings.Join(names, ", ") + ")"
}

// ApplicableIn reports whether every precondition holds in s.
func (a *Action) ApplicableIn(s State) bool {
	for _, f := range a.Precond {
		if !s.Holds(f) {
			return false
		}
	}
	return true
}

// Equal compares name, objects and effect sets.
func (a *Action) Equal(b *Action) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name == b.Name &&
		slices.Equal(a.Objects, b.Objects) &&
		sameSet(a.Precond, b.Precond, true) &&
		sameSet(a.Add, b.Add, false) &&
		sameSet(a.Delete, b.Delete, false)
}

func setKey(f Fluent, withValue bool) string {
	if withValue {
		return string(f.ID()) + "=" + TruthOf(f.Value).String()
	}
	return string(f.ID())
}

func dedupe(fluents []Fluent, withValue bool) []Fluent {
	seen := make(map[string]struct{}, len(fluents))
	out := make([]Fluent, 0, len(fluents))
	for _, f := range fluents {
		k := setKey(f, withValue)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, f)
	}
	return out
}

func sameSet(a, b []Fluent, withValue bool) bool {
	if len(a) != len(b) {
		return false
	}
	keys := make(map[string]struct{}, len(a))
	for _, f := range a {
		keys[setKey(f, withValue)] = struct{}{}
	}
	for _, f := range b {
		if _, ok := keys[setKey(f, withValue)]; !ok {
			return false
		}
	}
	return true
}
