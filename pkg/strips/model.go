package strips

// SearchModel answers applicability and progression queries over a problem.
type SearchModel struct {
	problem *Problem
}

// NewSearchModel wraps a grounded problem.
func NewSearchModel(problem *Problem) *SearchModel {
	return &SearchModel{problem: problem}
}

// Problem returns the underlying task.
func (m *SearchModel) Problem() *Problem {
	return m.problem
}

// Init returns the initial state.
func (m *SearchModel) Init() State {
	return m.problem.Init
}

// Applicable enumerates operators applicable in s, in declaration order.
// An empty result signals a dead end.
func (m *SearchModel) Applicable(s State) []Operator {
	var out []Operator
	for _, op := range m.problem.Operators {
		if op.Applicable(s) {
			out = append(out, op)
		}
	}
	return out
}

// Progress applies op to s.
func (m *SearchModel) Progress(s State, op Operator) State {
	return s.Apply(op.Effects)
}

// IsGoal reports whether s satisfies the goal. A problem without a goal is
// trivially satisfied.
func (m *SearchModel) IsGoal(s State) bool {
	if m.problem.Goal == nil {
		return true
	}
	for _, l := range m.problem.Goal.Literals() {
		if !s.Satisfies(l) {
			return false
		}
	}
	return true
}
