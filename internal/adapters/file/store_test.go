package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/plantrace/internal/adapters/file"
	"github.com/aretw0/plantrace/pkg/domain"
	"github.com/aretw0/plantrace/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.TraceStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunTraceStoreContract(t, store)
}

func TestFileStore_Layout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "traces")
	store := file.New(dir)
	ctx := context.Background()

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids, "missing directory lists nothing")

	require.NoError(t, store.Save(ctx, domain.NewTraceList("b", "random")))
	require.NoError(t, store.Save(ctx, domain.NewTraceList("a", "goal")))
	require.NoError(t, store.Save(ctx, domain.NewTraceList("a", "goal")), "overwrite")

	// Leftover temp files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-c-123.json"), []byte("{}"), 0644))

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	assert.FileExists(t, filepath.Join(dir, "a.json"))
	require.NoError(t, store.Delete(ctx, "missing"), "deleting a missing list is a no-op")
}

func TestFileStore_InvalidID(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	assert.ErrorIs(t, store.Save(ctx, domain.NewTraceList("", "random")), file.ErrEmptyID)
	_, err := store.Load(ctx, "../escape")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrTraceListNotFound)
}

func TestFileStore_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0644))

	_, err := file.New(dir).Load(context.Background(), "bad")
	assert.Error(t, err)
}
