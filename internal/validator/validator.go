package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/plantrace/pkg/strips"
)

// DefaultStateLimit bounds the reachability crawl.
const DefaultStateLimit = 100_000

// ErrGoalUnreachable is returned when no reachable state satisfies the goal.
var ErrGoalUnreachable = errors.New("goal is unreachable from the initial state")

// Report summarizes a reachability crawl of a problem.
type Report struct {
	// States is the number of distinct states visited.
	States int
	// Complete is false when the crawl stopped at the state limit.
	Complete bool
	// GoalReachable reports whether some visited state satisfies the goal.
	GoalReachable bool
	// DeadEnds counts visited states with no applicable operator.
	DeadEnds int
	// Unused lists operators never applicable in a visited state.
	Unused []string
}

// ValidateTask checks the problem structure, then crawls the state space
// breadth-first from the initial state, up to limit states (limit <= 0 uses
// DefaultStateLimit). A complete crawl that never meets the goal returns
// ErrGoalUnreachable together with the report.
func ValidateTask(problem *strips.Problem, limit int) (*Report, error) {
	if err := problem.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultStateLimit
	}

	model := strips.NewSearchModel(problem)
	used := make(map[string]bool, len(problem.Operators))
	visited := make(map[string]bool)
	report := &Report{Complete: true}

	queue := []strips.State{model.Init()}
	visited[queue[0].Key()] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		report.States++

		if model.IsGoal(current) {
			report.GoalReachable = true
		}

		applicable := model.Applicable(current)
		if len(applicable) == 0 {
			report.DeadEnds++
		}
		for _, op := range applicable {
			used[op.Key()] = true
			next := model.Progress(current, op)
			key := next.Key()
			if visited[key] {
				continue
			}
			if len(visited) >= limit {
				report.Complete = false
				continue
			}
			visited[key] = true
			queue = append(queue, next)
		}
	}

	for _, op := range problem.Operators {
		if !used[op.Key()] {
			report.Unused = append(report.Unused, op.String())
		}
	}

	if report.Complete && !report.GoalReachable && problem.Goal != nil {
		return report, ErrGoalUnreachable
	}
	return report, nil
}

// String renders the report as a short summary.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "States visited: %d", r.States)
	if !r.Complete {
		b.WriteString(" (limit reached)")
	}
	fmt.Fprintf(&b, "\nGoal reachable: %t\nDead ends: %d\n", r.GoalReachable, r.DeadEnds)
	if len(r.Unused) > 0 {
		fmt.Fprintf(&b, "Never applicable (%d):\n- %s\n", len(r.Unused), strings.Join(r.Unused, "\n- "))
	}
	return b.String()
}
