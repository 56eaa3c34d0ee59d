package ports

import (
	"context"

	"github.com/aretw0/plantrace/pkg/strips"
)

// SearchModel is the narrow view of the planning engine the generators need.
type SearchModel interface {
	// Init returns the initial native state.
	Init() strips.State

	// Applicable enumerates operators applicable in s.
	// An empty result signals a dead end.
	Applicable(s strips.State) []strips.Operator

	// Progress is the deterministic successor function.
	Progress(s strips.State, op strips.Operator) strips.State
}

// Planner invokes an external search procedure.
// Implementations may take unbounded time and should honor ctx cancellation
// on a best-effort basis.
type Planner interface {
	Plan(ctx context.Context, problem *strips.Problem) ([]strips.Operator, error)
}

// PlannerFunc adapts a function to the Planner interface.
type PlannerFunc func(ctx context.Context, problem *strips.Problem) ([]strips.Operator, error)

func (f PlannerFunc) Plan(ctx context.Context, problem *strips.Problem) ([]strips.Operator, error) {
	return f(ctx, problem)
}
