package domain

import (
	"fmt"
	"strings"
	"time"
)

// Step is a single point in a trace. Action is nil on a terminal step.
// Index is 1-based.
type Step struct {
	State  StateView
	Action *Action
	Index  int
}

// NewStep creates a step.
func NewStep(state StateView, action *Action, index int) Step {
	return Step{State: state, Action: action, Index: index}
}

// Equal compares state content, action and index.
func (s Step) Equal(other Step) bool {
	return s.Index == other.Index &&
		s.Action.Equal(other.Action) &&
		EqualViews(s.State, other.State)
}

// Trace is one continuous execution from an initial state.
type Trace struct {
	Steps []Step `json:"steps"`
}

// NewTrace creates a trace from steps.
func NewTrace(steps ...Step) *Trace {
	return &Trace{Steps: steps}
}

// Append adds a step at the end.
func (t *Trace) Append(step Step) {
	t.Steps = append(t.Steps, step)
}

// Clear drops every step.
func (t *Trace) Clear() {
	t.Steps = nil
}

// Len is the number of steps.
func (t *Trace) Len() int {
	return len(t.Steps)
}

// Actions returns the non-nil actions in execution order.
func (t *Trace) Actions() []*Action {
	out := make([]*Action, 0, len(t.Steps))
	for _, s := range t.Steps {
		if s.Action != nil {
			out = append(out, s.Action)
		}
	}
	return out
}

// PlanKey serializes the action sequence, e.g. "flip(a) flip(b)".
func (t *Trace) PlanKey() string {
	acts := t.Actions()
	parts := make([]string, len(acts))
	for i, a := range acts {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}

// Equal compares step by step.
func (t *Trace) Equal(other *Trace) bool {
	if t.Len() != other.Len() {
		return false
	}
	for i := range t.Steps {
		if !t.Steps[i].Equal(other.Steps[i]) {
			return false
		}
	}
	return true
}

// Validate checks the step invariants: 1-based consecutive indices, every
// non-terminal step carries an action whose preconditions hold in its state,
// and applying that action yields the next step's state. Checks that need a
// full state are skipped on partial views.
func (t *Trace) Validate() error {
	if t.Len() == 0 {
		return fmt.Errorf("%w: empty trace", ErrInvalidTrace)
	}
	for i, step := range t.Steps {
		if step.Index != i+1 {
			return fmt.Errorf("%w: step %d has index %d", ErrInvalidTrace, i+1, step.Index)
		}
		last := i == t.Len()-1
		if step.Action == nil {
			if !last {
				return fmt.Errorf("%w: non-terminal step %d has no action", ErrInvalidTrace, step.Index)
			}
			continue
		}
		full, ok := step.State.(State)
		if !ok {
			continue
		}
		if !step.Action.ApplicableIn(full) {
			return fmt.Errorf("%w: step %d: %s not applicable", ErrInvalidTrace, step.Index, step.Action)
		}
		if last {
			continue
		}
		next, ok := t.Steps[i+1].State.(State)
		if !ok {
			continue
		}
		if !full.Apply(step.Action).Equal(next) {
			return fmt.Errorf("%w: step %d: %s does not produce step %d", ErrInvalidTrace, step.Index, step.Action, step.Index+1)
		}
	}
	return nil
}

// TraceList is an ordered collection of independently generated traces.
type TraceList struct {
	ID        string    `json:"id"`
	Generator string    `json:"generator"`
	CreatedAt time.Time `json:"created_at"`
	Traces    []*Trace  `json:"traces"`
}

// NewTraceList creates an empty list.
func NewTraceList(id, generator string) *TraceList {
	return &TraceList{
		ID:        id,
		Generator: generator,
		CreatedAt: time.Now().UTC(),
	}
}

// Append adds a trace at the end.
func (l *TraceList) Append(t *Trace) {
	l.Traces = append(l.Traces, t)
}

// Len is the number of traces.
func (l *TraceList) Len() int {
	return len(l.Traces)
}
