package strips

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DefaultObjectType is the root of every type hierarchy.
const DefaultObjectType = "object"

var (
	// ErrUnknownOperator is returned when a plan references an operator the problem does not ground.
	ErrUnknownOperator = errors.New("unknown operator")
	// ErrInvalidProblem is returned when a problem fails validation.
	ErrInvalidProblem = errors.New("invalid problem")
)

// Signatures is the typing introspection of a problem: ordered parameter
// types per action name and per predicate name.
type Signatures struct {
	Actions    map[string][]string
	Predicates map[string][]string
}

// Problem is a grounded planning task.
type Problem struct {
	Name   string
	Domain string

	// DomainFile and ProblemFile point at the PDDL sources, when known.
	// External planners read them; the in-process model never does.
	DomainFile  string
	ProblemFile string

	// Objects maps object name to type.
	Objects    map[string]string
	Init       State
	Goal       Formula
	Operators  []Operator
	Signatures Signatures
}

// Operator resolves a grounded operator by name and arguments.
// Names are matched case-insensitively since planners often lowercase them.
func (p *Problem) Operator(name string, args ...string) (Operator, error) {
	for _, op := range p.Operators {
		if sameCall(op, name, args) {
			return op, nil
		}
	}
	return Operator{}, fmt.Errorf("%w: %s(%s)", ErrUnknownOperator, name, strings.Join(args, ", "))
}

// Atoms returns the ground atom universe: every non-equality atom in the
// initial state or mentioned by an operator. Sorted by display form.
func (p *Problem) Atoms() []Atom {
	seen := make(map[string]Atom)
	add := func(a Atom) {
		if !a.IsEquality() {
			seen[a.Key()] = a
		}
	}
	for _, a := range p.Init.Atoms() {
		add(a)
	}
	for _, op := range p.Operators {
		if op.Precondition != nil {
			for _, l := range op.Precondition.Literals() {
				add(l.Atom)
			}
		}
		for _, e := range op.Effects {
			add(e.Atom)
		}
	}
	if p.Goal != nil {
		for _, l := range p.Goal.Literals() {
			add(l.Atom)
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]Atom, len(keys))
	for i, k := range keys {
		out[i] = seen[k]
	}
	return out
}

// Validate checks that every operator and atom is covered by the signatures
// and that arities agree.
func (p *Problem) Validate() error {
	var errs []error
	checkAtom := func(where string, a Atom) {
		if a.IsEquality() {
			if len(a.Args) != 2 {
				errs = append(errs, fmt.Errorf("%s: equality %s needs 2 arguments", where, a))
			}
			return
		}
		types, ok := p.Signatures.Predicates[a.Predicate]
		if !ok {
			errs = append(errs, fmt.Errorf("%s: predicate %q has no signature", where, a.Predicate))
			return
		}
		if len(types) != len(a.Args) {
			errs = append(errs, fmt.Errorf("%s: %s expects %d arguments", where, a, len(types)))
		}
	}

	for _, a := range p.Init.Atoms() {
		checkAtom("init", a)
	}
	for _, op := range p.Operators {
		types, ok := p.Signatures.Actions[op.Name]
		if !ok {
			errs = append(errs, fmt.Errorf("operator %s: action %q has no signature", op, op.Name))
		} else if len(types) != len(op.Args) {
			errs = append(errs, fmt.Errorf("operator %s: expects %d arguments", op, len(types)))
		}
		if op.Precondition != nil {
			for _, l := range op.Precondition.Literals() {
				checkAtom(op.String(), l.Atom)
			}
		}
		for _, e := range op.Effects {
			checkAtom(op.String(), e.Atom)
		}
	}
	if p.Goal != nil {
		for _, l := range p.Goal.Literals() {
			checkAtom("goal", l.Atom)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidProblem, errors.Join(errs...))
	}
	return nil
}
