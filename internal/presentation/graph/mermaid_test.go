package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/plantrace/internal/presentation/graph"
	"github.com/aretw0/plantrace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func switches(t *testing.T) (domain.Fluent, domain.Fluent, *domain.Action, *domain.Action) {
	t.Helper()
	a := domain.NewObject("light", "a")
	b := domain.NewObject("light", "b")
	onA := domain.NewFluent("on", true, a)
	onB := domain.NewFluent("on", true, b)
	switchA := &domain.Action{Name: "switch-on", Objects: []domain.CustomObject{a}, Precond: []domain.Fluent{onA.WithValue(false)}, Add: []domain.Fluent{onA}}
	switchB := &domain.Action{Name: "switch-on", Objects: []domain.CustomObject{b}, Precond: []domain.Fluent{onB.WithValue(false)}, Add: []domain.Fluent{onB}}
	return onA, onB, switchA, switchB
}

func state(t *testing.T, fluents ...domain.Fluent) domain.State {
	t.Helper()
	s, err := domain.NewState(fluents...)
	require.NoError(t, err)
	return s
}

func TestGenerateMermaid(t *testing.T) {
	onA, onB, switchA, switchB := switches(t)
	s0 := state(t, onA.WithValue(false), onB.WithValue(false))
	sA := state(t, onA, onB.WithValue(false))
	sB := state(t, onA.WithValue(false), onB)
	sAB := state(t, onA, onB)

	list := domain.NewTraceList("list-1", "goal")
	list.Append(domain.NewTrace(
		domain.NewStep(s0, switchA, 1),
		domain.NewStep(sA, switchB, 2),
		domain.NewStep(sAB, nil, 3),
	))
	list.Append(domain.NewTrace(
		domain.NewStep(s0, switchB, 1),
		domain.NewStep(sB, switchA, 2),
		domain.NewStep(sAB, nil, 3),
	))

	out := graph.GenerateMermaid(list, nil)

	tests := []struct {
		name     string
		contains string
	}{
		{"Header", "graph TD\n"},
		{"Initial State Shape", `s0(("∅"))`},
		{"State Label", `s1["on(a)"]`},
		{"Shared Goal State", `s2["on(a)<br/>on(b)"]`},
		{"Edge Label", `s0 -- "switch-on(a)" --> s1`},
		{"Second Trace Edge", `s3 -- "switch-on(a)" --> s2`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, out, tt.contains)
		})
	}
	assert.Equal(t, 1, strings.Count(out, `"on(a)<br/>on(b)"`), "equal states share a node")
	assert.NotContains(t, out, "Overlay")
}

func TestGenerateMermaid_RandomTraceSuccessor(t *testing.T) {
	onA, onB, switchA, _ := switches(t)
	s0 := state(t, onA.WithValue(false), onB.WithValue(false))

	list := domain.NewTraceList("list-2", "random")
	list.Append(domain.NewTrace(domain.NewStep(s0, switchA, 1)))

	out := graph.GenerateMermaid(list, &graph.GraphOverlay{Trace: 0})
	assert.Contains(t, out, `s1["on(a)"]`, "successor derived from the last action")
	assert.Contains(t, out, `s0 -- "switch-on(a)" --> s1`)
	assert.Contains(t, out, "class s0 visited;")
	assert.Contains(t, out, "class s1 visited;")
}

func TestGenerateMermaid_PartialStates(t *testing.T) {
	onA, onB, switchA, _ := switches(t)
	masked, err := domain.NewPartialState(
		domain.PartialEntry{Fluent: onA, Truth: domain.False},
		domain.PartialEntry{Fluent: onB, Truth: domain.Unknown},
	)
	require.NoError(t, err)

	list := domain.NewTraceList("list-3", "random")
	list.Append(domain.NewTrace(domain.NewStep(masked, switchA, 1)))

	out := graph.GenerateMermaid(list, nil)
	assert.Contains(t, out, `s0(("on(b)?"))`)
	assert.Contains(t, out, `s1[/"?"/]`, "partial views have no derivable successor")
}
