package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/plantrace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustState(t *testing.T, fluents ...domain.Fluent) domain.State {
	t.Helper()
	s, err := domain.NewState(fluents...)
	require.NoError(t, err)
	return s
}

// offTrace turns a off, leaving a terminal step.
func offTrace(t *testing.T) (*domain.Trace, *domain.Action) {
	t.Helper()
	onA := domain.NewFluent("on", true, objA)
	off := domain.NewAction("off", []domain.CustomObject{objA},
		[]domain.Fluent{onA}, nil, []domain.Fluent{onA})

	s0 := mustState(t, onA, domain.NewFluent("on", false, objB))
	s1 := s0.Apply(off)

	return domain.NewTrace(
		domain.NewStep(s0, off, 1),
		domain.NewStep(s1, nil, 2),
	), off
}

func TestTrace_Basics(t *testing.T) {
	trace, off := offTrace(t)
	assert.Equal(t, 2, trace.Len())
	assert.Equal(t, []*domain.Action{off}, trace.Actions())
	assert.Equal(t, "off(a)", trace.PlanKey())

	trace.Clear()
	assert.Equal(t, 0, trace.Len())
	trace.Append(domain.NewStep(mustState(t), nil, 1))
	assert.Equal(t, 1, trace.Len())
}

func TestTrace_Validate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		trace, _ := offTrace(t)
		assert.NoError(t, trace.Validate())
	})

	t.Run("Empty", func(t *testing.T) {
		assert.ErrorIs(t, domain.NewTrace().Validate(), domain.ErrInvalidTrace)
	})

	t.Run("Bad Index", func(t *testing.T) {
		trace, _ := offTrace(t)
		trace.Steps[1].Index = 5
		assert.ErrorIs(t, trace.Validate(), domain.ErrInvalidTrace)
	})

	t.Run("Precondition Violated", func(t *testing.T) {
		trace, off := offTrace(t)
		trace.Steps[0].State = trace.Steps[1].State
		trace.Steps[1].State = trace.Steps[1].State.(domain.State).Apply(off)
		assert.ErrorIs(t, trace.Validate(), domain.ErrInvalidTrace)
	})

	t.Run("Progression Mismatch", func(t *testing.T) {
		trace, _ := offTrace(t)
		trace.Steps[1].State = trace.Steps[0].State
		assert.ErrorIs(t, trace.Validate(), domain.ErrInvalidTrace)
	})

	t.Run("Missing Action Mid Trace", func(t *testing.T) {
		trace, _ := offTrace(t)
		trace.Steps[0].Action = nil
		assert.ErrorIs(t, trace.Validate(), domain.ErrInvalidTrace)
	})
}

func TestTraceList_JSONRoundTrip(t *testing.T) {
	trace, _ := offTrace(t)

	masked, err := domain.NewPartialState(
		domain.PartialEntry{Fluent: domain.NewFluent("on", true, objA), Truth: domain.True},
		domain.PartialEntry{Fluent: domain.NewFluent("on", false, objB), Truth: domain.Unknown},
	)
	require.NoError(t, err)
	trace.Append(domain.NewStep(masked, nil, 3))

	list := domain.NewTraceList("list-1", "random")
	list.Append(trace)

	data, err := json.Marshal(list)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"value":null`)

	var loaded domain.TraceList
	require.NoError(t, json.Unmarshal(data, &loaded))

	require.Equal(t, 1, loaded.Len())
	assert.Equal(t, "list-1", loaded.ID)
	assert.True(t, trace.Equal(loaded.Traces[0]))
	assert.True(t, loaded.Traces[0].Steps[2].State.IsPartial())
}

func TestStep_UnmarshalRejectsUnknownInFullState(t *testing.T) {
	var step domain.Step
	err := json.Unmarshal([]byte(`{"index":1,"state":[{"name":"on","objects":[],"value":null}]}`), &step)
	assert.Error(t, err)
}
