package validator

import (
	"testing"

	"github.com/aretw0/plantrace/internal/testutils"
	"github.com/aretw0/plantrace/pkg/dsl"
	"github.com/aretw0/plantrace/pkg/strips"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTask(t *testing.T) {
	t.Run("Reachable Goal", func(t *testing.T) {
		report, err := ValidateTask(testutils.SwitchesProblem(t, "a", "b"), 0)
		require.NoError(t, err)
		assert.Equal(t, 4, report.States)
		assert.True(t, report.Complete)
		assert.True(t, report.GoalReachable)
		assert.Equal(t, 1, report.DeadEnds)
		assert.Empty(t, report.Unused)
	})

	t.Run("No Goal", func(t *testing.T) {
		report, err := ValidateTask(testutils.DeadEndProblem(t), 0)
		require.NoError(t, err)
		assert.Equal(t, 2, report.States)
		assert.Equal(t, 1, report.DeadEnds)
	})

	t.Run("Unreachable Goal", func(t *testing.T) {
		b := dsl.New("stuck").Domain("lights")
		b.Predicate("on", "light")
		b.Action("switch-on", "light")
		b.Object("a", "light").Object("c", "light")
		b.Goal(strips.Pos("on", "c"))
		b.Op("switch-on", "a").Pre(strips.Neg("on", "a")).Add("on", "a")
		b.Op("switch-on", "c").Pre(strips.Pos("on", "c")).Add("on", "c")
		problem, err := b.Build()
		require.NoError(t, err)

		report, err := ValidateTask(problem, 0)
		assert.ErrorIs(t, err, ErrGoalUnreachable)
		require.NotNil(t, report)
		assert.False(t, report.GoalReachable)
		assert.Equal(t, []string{"switch-on(c)"}, report.Unused)
		assert.Contains(t, report.String(), "- switch-on(c)")
	})

	t.Run("State Limit", func(t *testing.T) {
		report, err := ValidateTask(testutils.SwitchesProblem(t, "a", "b", "c"), 3)
		require.NoError(t, err, "an incomplete crawl cannot prove the goal unreachable")
		assert.False(t, report.Complete)
		assert.Equal(t, 3, report.States)
		assert.Contains(t, report.String(), "(limit reached)")
	})
}
