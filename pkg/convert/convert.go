// Package convert translates planning engine objects into the trace data model.
//
// Typing comes from the problem's structured signatures, read once when the
// Converter is built; nothing is recovered by re-parsing display strings.
package convert

import (
	"fmt"
	"sync"

	"github.com/aretw0/plantrace/pkg/domain"
	"github.com/aretw0/plantrace/pkg/strips"
)

// Converter turns native operators, literals and states into domain entities.
// Converted actions are cached and shared, since domain actions are immutable.
type Converter struct {
	actionTypes    map[string][]string
	predicateTypes map[string][]string
	universe       []strips.Atom

	mu      sync.Mutex
	actions map[string]*domain.Action
}

// New derives the typing tables and the atom universe of problem.
func New(problem *strips.Problem) *Converter {
	return &Converter{
		actionTypes:    problem.Signatures.Actions,
		predicateTypes: problem.Signatures.Predicates,
		universe:       problem.Atoms(),
		actions:        make(map[string]*domain.Action),
	}
}

// Action converts a grounded operator. The precondition is split into its
// literals and effects into add and delete sets by polarity.
// Unknown action or predicate names are fatal input errors.
func (c *Converter) Action(op strips.Operator) (*domain.Action, error) {
	key := op.Key()
	if op.Precondition != nil {
		key += " " + op.Precondition.String()
	}

	c.mu.Lock()
	cached, ok := c.actions[key]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	types, ok := c.actionTypes[op.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAction, op.Name)
	}
	objects, err := typed(op.Name, op.Args, types)
	if err != nil {
		return nil, err
	}

	var precond []domain.Fluent
	if op.Precondition != nil {
		for _, lit := range op.Precondition.Literals() {
			f, err := c.Fluent(lit)
			if err != nil {
				return nil, fmt.Errorf("precondition of %s: %w", op, err)
			}
			precond = append(precond, f)
		}
	}

	var add, del []domain.Fluent
	for _, eff := range op.Effects {
		f, err := c.Fluent(strips.Literal{Atom: eff.Atom})
		if err != nil {
			return nil, fmt.Errorf("effect of %s: %w", op, err)
		}
		if eff.Kind == strips.EffectAdd {
			add = append(add, f)
		} else {
			del = append(del, f.WithValue(false))
		}
	}

	action := domain.NewAction(op.Name, objects, precond, add, del)

	c.mu.Lock()
	c.actions[key] = action
	c.mu.Unlock()
	return action, nil
}

// Fluent converts a literal. Negated literals yield Value=false.
// Equality atoms become "equal" fluents over generic objects.
func (c *Converter) Fluent(lit strips.Literal) (domain.Fluent, error) {
	value := !lit.Negated

	if lit.IsEquality() {
		types := make([]string, len(lit.Args))
		for i := range types {
			types[i] = strips.DefaultObjectType
		}
		objects, err := typed(domain.EqualFluentName, lit.Args, types)
		if err != nil {
			return domain.Fluent{}, err
		}
		return domain.NewFluent(domain.EqualFluentName, value, objects...), nil
	}

	types, ok := c.predicateTypes[lit.Predicate]
	if !ok {
		return domain.Fluent{}, fmt.Errorf("%w: %q", domain.ErrUnknownPredicate, lit.Predicate)
	}
	objects, err := typed(lit.Predicate, lit.Args, types)
	if err != nil {
		return domain.Fluent{}, err
	}
	return domain.NewFluent(lit.Predicate, value, objects...), nil
}

// State converts a native state into a fully defined State over the
// problem's atom universe: atoms true in s are true, every other atom false.
func (c *Converter) State(s strips.State) (domain.State, error) {
	fluents := make([]domain.Fluent, 0, len(c.universe))
	seen := make(map[string]struct{}, len(c.universe))
	for _, atom := range c.universe {
		f, err := c.Fluent(strips.Literal{Atom: atom, Negated: !s.Holds(atom)})
		if err != nil {
			return domain.State{}, err
		}
		fluents = append(fluents, f)
		seen[atom.Key()] = struct{}{}
	}
	for _, atom := range s.Atoms() {
		if _, ok := seen[atom.Key()]; ok {
			continue
		}
		f, err := c.Fluent(strips.Literal{Atom: atom})
		if err != nil {
			return domain.State{}, err
		}
		fluents = append(fluents, f)
	}
	return domain.NewState(fluents...)
}

func typed(name string, args, types []string) ([]domain.CustomObject, error) {
	if len(args) != len(types) {
		return nil, fmt.Errorf("%s: got %d arguments, signature has %d", name, len(args), len(types))
	}
	objects := make([]domain.CustomObject, len(args))
	for i, arg := range args {
		objects[i] = domain.NewObject(types[i], arg)
	}
	return objects, nil
}
