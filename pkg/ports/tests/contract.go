package tests

import (
	"context"
	"testing"

	"github.com/aretw0/plantrace/pkg/ports"
	"github.com/aretw0/plantrace/pkg/strips"
)

// PlannerContractTest is a reusable test suite that verifies if an adapter complies with ports.Planner:
// every returned plan must be executable from the initial state and reach the goal.
func PlannerContractTest(t *testing.T, planner ports.Planner, problem *strips.Problem) {
	t.Helper()
	model := strips.NewSearchModel(problem)

	t.Run("Plan_Executable", func(t *testing.T) {
		plan, err := planner.Plan(context.Background(), problem)
		if err != nil {
			t.Fatalf("unexpected error planning: %v", err)
		}

		state := model.Init()
		for i, op := range plan {
			if !op.Applicable(state) {
				t.Fatalf("step %d: %s not applicable", i, op)
			}
			state = model.Progress(state, op)
		}
		if !model.IsGoal(state) {
			t.Errorf("plan %v does not reach the goal", plan)
		}
	})

	t.Run("Plan_Canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := planner.Plan(ctx, problem); err == nil {
			t.Error("expected error for canceled context, got nil")
		}
	})
}
