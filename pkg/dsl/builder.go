package dsl

import (
	"fmt"

	"github.com/aretw0/plantrace/pkg/strips"
)

// Builder manages the problem construction.
type Builder struct {
	problem strips.Problem
	init    []strips.Atom
	goal    []strips.Literal
	ops     []*OperatorBuilder
}

// New creates a new problem builder.
func New(name string) *Builder {
	return &Builder{
		problem: strips.Problem{
			Name:    name,
			Objects: make(map[string]string),
			Signatures: strips.Signatures{
				Actions:    make(map[string][]string),
				Predicates: make(map[string][]string),
			},
		},
	}
}

// Domain sets the domain name.
func (b *Builder) Domain(name string) *Builder {
	b.problem.Domain = name
	return b
}

// Object declares a typed object.
func (b *Builder) Object(name, typ string) *Builder {
	b.problem.Objects[name] = typ
	return b
}

// Predicate declares a predicate signature.
func (b *Builder) Predicate(name string, types ...string) *Builder {
	b.problem.Signatures.Predicates[name] = types
	return b
}

// Action declares an action signature.
func (b *Builder) Action(name string, types ...string) *Builder {
	b.problem.Signatures.Actions[name] = types
	return b
}

// Init adds a true atom to the initial state.
func (b *Builder) Init(predicate string, args ...string) *Builder {
	b.init = append(b.init, strips.NewAtom(predicate, args...))
	return b
}

// Goal adds goal literals.
func (b *Builder) Goal(lits ...strips.Literal) *Builder {
	b.goal = append(b.goal, lits...)
	return b
}

// Op starts a new grounded operator.
// Several operators may share a name and arguments (e.g. toggles).
func (b *Builder) Op(name string, args ...string) *OperatorBuilder {
	ob := &OperatorBuilder{
		op: strips.Operator{Name: name, Args: args},
	}
	b.ops = append(b.ops, ob)
	return ob
}

// Build compiles and validates the problem.
func (b *Builder) Build() (*strips.Problem, error) {
	p := b.problem
	p.Init = strips.NewState(b.init...)
	if len(b.goal) > 0 {
		p.Goal = strips.Conjoin(b.goal...)
	}
	p.Operators = make([]strips.Operator, 0, len(b.ops))
	for _, ob := range b.ops {
		p.Operators = append(p.Operators, ob.Build())
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build problem %q: %w", p.Name, err)
	}
	return &p, nil
}
