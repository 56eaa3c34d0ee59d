package testutils

import (
	"testing"

	"github.com/aretw0/plantrace/pkg/dsl"
	"github.com/aretw0/plantrace/pkg/strips"
	"github.com/stretchr/testify/require"
)

// FlipProblem builds two lights a (on) and b (off) and a single "flip"
// action toggling either one. It fails the test immediately on error.
func FlipProblem(t testing.TB) *strips.Problem {
	t.Helper()

	b := dsl.New("flip").Domain("lights")
	b.Object("a", "obj").Object("b", "obj")
	b.Predicate("on", "obj")
	b.Action("flip", "obj")
	b.Init("on", "a")
	b.Goal(strips.Pos("on", "b"))

	for _, o := range []string{"a", "b"} {
		b.Op("flip", o).Pre(strips.Pos("on", o)).Del("on", o)
		b.Op("flip", o).Pre(strips.Neg("on", o)).Add("on", o)
	}

	problem, err := b.Build()
	require.NoError(t, err, "Failed to build flip problem")
	return problem
}

// SwitchesProblem builds n lights, all off, with one-way "switch-on"
// actions. Every permutation of the lights is a distinct plan.
func SwitchesProblem(t testing.TB, names ...string) *strips.Problem {
	t.Helper()

	b := dsl.New("switches").Domain("lights")
	b.Predicate("on", "light")
	b.Action("switch-on", "light")
	for _, n := range names {
		b.Object(n, "light")
		b.Goal(strips.Pos("on", n))
		b.Op("switch-on", n).Pre(strips.Neg("on", n)).Add("on", n)
	}

	problem, err := b.Build()
	require.NoError(t, err, "Failed to build switches problem")
	return problem
}

// DeadEndProblem builds a problem whose single action can fire only once.
func DeadEndProblem(t testing.TB) *strips.Problem {
	t.Helper()

	b := dsl.New("dead-end").Domain("fuses")
	b.Object("f", "fuse")
	b.Predicate("intact", "fuse")
	b.Action("blow", "fuse")
	b.Init("intact", "f")
	b.Op("blow", "f").Pre(strips.Pos("intact", "f")).Del("intact", "f")

	problem, err := b.Build()
	require.NoError(t, err, "Failed to build dead-end problem")
	return problem
}

// Plan resolves operator calls like "flip(a)" against the problem.
func Plan(t testing.TB, problem *strips.Problem, calls ...string) []strips.Operator {
	t.Helper()

	plan, err := problem.ResolvePlan(calls)
	require.NoError(t, err, "Failed to resolve plan %v", calls)
	return plan
}
