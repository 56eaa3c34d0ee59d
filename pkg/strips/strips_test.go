package strips_test

import (
	"testing"

	"github.com/aretw0/plantrace/internal/testutils"
	"github.com/aretw0/plantrace/pkg/strips"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayForms(t *testing.T) {
	assert.Equal(t, "(on a b)", strips.NewAtom("on", "a", "b").String())
	assert.Equal(t, "(not (on a))", strips.Neg("on", "a").String())
	assert.Equal(t, "move(a, b)", strips.Operator{Name: "move", Args: []string{"a", "b"}}.String())
	assert.Equal(t, "ADD(on a)", strips.Add("on", "a").String())
	assert.Equal(t, "(and (on a) (not (on b)))", strips.And{strips.Pos("on", "a"), strips.Neg("on", "b")}.String())
}

func TestState_ApplyDeletesBeforeAdds(t *testing.T) {
	s := strips.NewState(strips.NewAtom("on", "a"))
	next := s.Apply([]strips.Effect{strips.Add("on", "a"), strips.Del("on", "a")})

	assert.True(t, next.Holds(strips.NewAtom("on", "a")))
	assert.Equal(t, 1, s.Len(), "original state is immutable")
}

func TestState_Equality(t *testing.T) {
	s := strips.NewState()
	assert.True(t, s.Holds(strips.NewAtom("=", "a", "a")))
	assert.False(t, s.Holds(strips.NewAtom("=", "a", "b")))
}

func TestSearchModel_FlipProblem(t *testing.T) {
	problem := testutils.FlipProblem(t)
	model := strips.NewSearchModel(problem)

	init := model.Init()
	applicable := model.Applicable(init)
	require.Len(t, applicable, 2, "one flip variant per light is applicable")

	for _, op := range applicable {
		next := model.Progress(init, op)
		assert.NotEqual(t, init.Key(), next.Key())
	}
	assert.False(t, model.IsGoal(init))

	flipB, err := problem.Operator("FLIP", "B")
	require.NoError(t, err)
	assert.Equal(t, "flip", flipB.Name)
}

func TestProblem_OperatorUnknown(t *testing.T) {
	problem := testutils.FlipProblem(t)
	_, err := problem.Operator("jump", "a")
	assert.ErrorIs(t, err, strips.ErrUnknownOperator)
}

func TestProblem_Atoms(t *testing.T) {
	problem := testutils.FlipProblem(t)
	atoms := problem.Atoms()
	require.Len(t, atoms, 2)
	assert.Equal(t, "(on a)", atoms[0].String())
	assert.Equal(t, "(on b)", atoms[1].String())
}

func TestProblem_Validate(t *testing.T) {
	problem := testutils.FlipProblem(t)
	problem.Signatures.Actions["flip"] = []string{"obj", "obj"}

	err := problem.Validate()
	assert.ErrorIs(t, err, strips.ErrInvalidProblem)
}

func TestParseCall(t *testing.T) {
	tests := []struct {
		raw  string
		name string
		args []string
	}{
		{"(move a b)", "move", []string{"a", "b"}},
		{"move(a, b)", "move", []string{"a", "b"}},
		{"(noop) ; cost 1", "noop", []string{}},
		{"noop()", "noop", nil},
		{"(pick-up c) (1)", "pick-up", []string{"c"}},
		{"drop x", "drop", []string{"x"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			name, args, err := strips.ParseCall(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, len(tt.args), len(args))
			for i := range tt.args {
				assert.Equal(t, tt.args[i], args[i])
			}
		})
	}

	_, _, err := strips.ParseCall("; only a comment")
	assert.ErrorIs(t, err, strips.ErrMalformedCall)
	_, _, err = strips.ParseCall("(broken")
	assert.ErrorIs(t, err, strips.ErrMalformedCall)
}

func TestResolvePlan_PicksApplicableVariant(t *testing.T) {
	problem := testutils.FlipProblem(t)

	plan, err := problem.ResolvePlan([]string{"(flip a)", "flip(a)", "(flip b)"})
	require.NoError(t, err)
	require.Len(t, plan, 3)

	model := strips.NewSearchModel(problem)
	state := model.Init()
	for _, op := range plan {
		require.True(t, op.Applicable(state))
		state = model.Progress(state, op)
	}
	assert.True(t, state.Holds(strips.NewAtom("on", "a")))
	assert.True(t, model.IsGoal(state))

	_, err = problem.ResolvePlan([]string{"(jump a)"})
	assert.ErrorIs(t, err, strips.ErrUnknownOperator)
}

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"(on a b)", "(on a b)"},
		{"  (not (on a))", "(not (on a))"},
		{"(NOT(on a))", "(not (on a))"},
		{"(= a b)", "(= a b)"},
	}
	for _, tt := range tests {
		lit, err := strips.ParseLiteral(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, lit.String())
	}

	for _, raw := range []string{"on a", "(not (on a)", ""} {
		_, err := strips.ParseLiteral(raw)
		assert.ErrorIs(t, err, strips.ErrMalformedCall, raw)
	}
}
