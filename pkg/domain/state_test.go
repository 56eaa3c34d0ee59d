package domain_test

import (
	"testing"

	"github.com/aretw0/plantrace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	objA = domain.NewObject("obj", "a")
	objB = domain.NewObject("obj", "b")
)

func TestFluent_Identity(t *testing.T) {
	f1 := domain.NewFluent("on", true, objA)
	f2 := domain.NewFluent("on", false, objA)
	f3 := domain.NewFluent("on", true, domain.NewObject("other", "a"))

	assert.Equal(t, f1.ID(), f2.ID(), "value is not part of identity")
	assert.True(t, f1.Same(f2))
	assert.NotEqual(t, f1.ID(), f3.ID(), "object type is part of identity")
	assert.Equal(t, "on(a)", f1.String())
}

func TestFluent_ArgumentOrderMatters(t *testing.T) {
	ab := domain.NewFluent("above", true, objA, objB)
	ba := domain.NewFluent("above", true, objB, objA)
	assert.NotEqual(t, ab.ID(), ba.ID())
}

func TestNewState_RejectsDuplicates(t *testing.T) {
	_, err := domain.NewState(
		domain.NewFluent("on", true, objA),
		domain.NewFluent("on", false, objA),
	)
	assert.ErrorIs(t, err, domain.ErrDuplicateFluent)
}

func TestState_ValueAndHolds(t *testing.T) {
	s, err := domain.NewState(
		domain.NewFluent("on", true, objA),
		domain.NewFluent("on", false, objB),
	)
	require.NoError(t, err)

	v, ok := s.Value(domain.NewFluent("on", false, objA))
	assert.True(t, ok)
	assert.True(t, v)

	assert.True(t, s.Holds(domain.NewFluent("on", true, objA)))
	assert.False(t, s.Holds(domain.NewFluent("on", true, objB)))
	assert.True(t, s.Holds(domain.NewFluent("on", false, objB)))

	eq := domain.NewObject("object", "a")
	assert.True(t, s.Holds(domain.NewFluent(domain.EqualFluentName, true, eq, eq)))
	assert.True(t, s.Holds(domain.NewFluent(domain.EqualFluentName, false, eq, domain.NewObject("object", "b"))))
}

func TestState_Apply(t *testing.T) {
	onA := domain.NewFluent("on", true, objA)
	s, err := domain.NewState(onA, domain.NewFluent("on", false, objB))
	require.NoError(t, err)

	act := domain.NewAction("flip", []domain.CustomObject{objA},
		[]domain.Fluent{onA},
		nil,
		[]domain.Fluent{onA},
	)
	require.True(t, act.ApplicableIn(s))

	next := s.Apply(act)
	assert.Equal(t, domain.False, next.Truth(onA))
	assert.Equal(t, domain.True, s.Truth(onA), "original state is not mutated")
	assert.False(t, act.ApplicableIn(next))
}

func TestPartialState_UnknownSemantics(t *testing.T) {
	onA := domain.NewFluent("on", true, objA)
	onB := domain.NewFluent("on", true, objB)

	explicit, err := domain.NewPartialState(
		domain.PartialEntry{Fluent: onA, Truth: domain.True},
		domain.PartialEntry{Fluent: onB, Truth: domain.Unknown},
	)
	require.NoError(t, err)
	absent, err := domain.NewPartialState(
		domain.PartialEntry{Fluent: onA, Truth: domain.True},
	)
	require.NoError(t, err)

	assert.Equal(t, domain.Unknown, explicit.Truth(onB))
	assert.Equal(t, domain.Unknown, absent.Truth(onB))
	assert.True(t, explicit.Equal(absent), "absence and explicit unknown are the same observation")
	assert.Equal(t, 2, explicit.Len())
}

func TestEqualViews_KindMatters(t *testing.T) {
	onA := domain.NewFluent("on", true, objA)
	full, err := domain.NewState(onA)
	require.NoError(t, err)
	partial, err := domain.NewPartialState(domain.PartialEntry{Fluent: onA, Truth: domain.True})
	require.NoError(t, err)

	assert.False(t, domain.EqualViews(full, partial))
	assert.True(t, domain.EqualViews(nil, nil))
}

func TestNewAction_Sets(t *testing.T) {
	onA := domain.NewFluent("on", true, objA)
	act := domain.NewAction("flip", []domain.CustomObject{objA},
		[]domain.Fluent{onA, onA, onA.WithValue(false)},
		[]domain.Fluent{onA, onA},
		nil,
	)
	assert.Len(t, act.Precond, 2, "precondition set keys on identity and value")
	assert.Len(t, act.Add, 1)
	assert.Equal(t, "flip(a)", act.String())

	other := domain.NewAction("flip", []domain.CustomObject{objA},
		[]domain.Fluent{onA.WithValue(false), onA},
		[]domain.Fluent{onA},
		nil,
	)
	assert.True(t, act.Equal(other))
}
