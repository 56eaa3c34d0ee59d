package domain

import (
	"strings"
)

// EqualFluentName is the normalized name of equality fluents.
const EqualFluentName = "equal"

// FluentID is the identity of a proposition: name plus ordered objects.
// The truth value is not part of it.
type FluentID string

// Fluent is a ground predicate instance. Value is the truth value in the
// state (or precondition) it belongs to; it is ignored for identity.
type Fluent struct {
	Name    string         `json:"name"`
	Objects []CustomObject `json:"objects"`
	Value   bool           `json:"value"`
}

// NewFluent creates a fluent.
func NewFluent(name string, value bool, objects ...CustomObject) Fluent {
	return Fluent{Name: name, Objects: objects, Value: value}
}

// ID returns the identity key, e.g. "on(a:block b:block)".
func (f Fluent) ID() FluentID {
	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteByte('(')
	for i, o := range f.Objects {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(o.String())
	}
	b.WriteByte(')')
	return FluentID(b.String())
}

// String returns the display form, e.g. "on(a, b)".
func (f Fluent) String() string {
	names := make([]string, len(f.Objects))
	for i, o := range f.Objects {
		names[i] = o.Name
	}
	return f.Name + "(" + strings.Join(names, ", ") + ")"
}

// Same reports whether both fluents denote the same proposition.
func (f Fluent) Same(other Fluent) bool {
	return f.ID() == other.ID()
}

// WithValue returns a copy with the given truth value.
func (f Fluent) WithValue(v bool) Fluent {
	objs := make([]CustomObject, len(f.Objects))
	copy(objs, f.Objects)
	return Fluent{Name: f.Name, Objects: objs, Value: v}
}

// Truth is the tri-state value of a fluent in a (partial) view.
type Truth int8

const (
	Unknown Truth = iota
	True
	False
)

// TruthOf lifts a boolean.
func TruthOf(v bool) Truth {
	if v {
		return True
	}
	return False
}

// Known reports whether the value is observed.
func (t Truth) Known() bool {
	return t != Unknown
}

// Bool returns the boolean and whether it is known.
func (t Truth) Bool() (bool, bool) {
	return t == True, t != Unknown
}

func (t Truth) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}
