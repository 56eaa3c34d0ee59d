package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/plantrace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTraceStoreContract runs a suite of tests to verify that a TraceStore implementation
// adheres to the defined interface contract.
func RunTraceStoreContract(t *testing.T, store TraceStore) {
	ctx := context.Background()
	listID := "contract-test-list-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		list := contractList(t, listID)

		err := store.Save(ctx, list)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, listID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, list.ID, loaded.ID)
		assert.Equal(t, list.Generator, loaded.Generator)
		require.Equal(t, list.Len(), loaded.Len())
		assert.True(t, list.Traces[0].Equal(loaded.Traces[0]), "trace content should survive persistence")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+listID)
		assert.ErrorIs(t, err, domain.ErrTraceListNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, contractList(t, listID))
		require.NoError(t, err)

		err = store.Delete(ctx, listID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, listID)
		assert.ErrorIs(t, err, domain.ErrTraceListNotFound, "Load after Delete should return ErrTraceListNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := listID + "-1"
		id2 := listID + "-2"
		_ = store.Save(ctx, contractList(t, id1))
		_ = store.Save(ctx, contractList(t, id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}

func contractList(t *testing.T, id string) *domain.TraceList {
	t.Helper()
	a := domain.NewObject("obj", "a")
	onA := domain.NewFluent("on", true, a)
	off := domain.NewAction("off", []domain.CustomObject{a}, []domain.Fluent{onA}, nil, []domain.Fluent{onA})

	s0, err := domain.NewState(onA)
	require.NoError(t, err)

	list := domain.NewTraceList(id, "contract")
	list.Append(domain.NewTrace(
		domain.NewStep(s0, off, 1),
		domain.NewStep(s0.Apply(off), nil, 2),
	))
	return list
}
