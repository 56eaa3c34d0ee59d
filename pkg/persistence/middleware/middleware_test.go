package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/plantrace/internal/adapters/redis"
	"github.com/aretw0/plantrace/pkg/domain"
	"github.com/aretw0/plantrace/pkg/persistence/middleware"
	"github.com/aretw0/plantrace/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheMiddleware_ServesLoads(t *testing.T) {
	underlying := NewMockStore()
	store := middleware.NewCacheMiddleware(2, 0)(underlying)
	ctx := context.Background()

	list := domain.NewTraceList("l1", "random")
	if err := store.Save(ctx, list); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load(ctx, "l1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != list {
		t.Errorf("Expected cached list")
	}
	if underlying.loads != 0 {
		t.Errorf("Expected no underlying loads, got %d", underlying.loads)
	}

	if err := store.Delete(ctx, "l1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Load(ctx, "l1"); !errors.Is(err, domain.ErrTraceListNotFound) {
		t.Errorf("Expected ErrTraceListNotFound after delete, got %v", err)
	}
}

func TestCacheMiddleware_Eviction(t *testing.T) {
	underlying := NewMockStore()
	store := middleware.NewCacheMiddleware(2, 0)(underlying)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := store.Save(ctx, domain.NewTraceList(id, "goal")); err != nil {
			t.Fatalf("Save %s failed: %v", id, err)
		}
	}

	// "a" was evicted and must come from the underlying store.
	if _, err := store.Load(ctx, "a"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if underlying.loads != 1 {
		t.Errorf("Expected 1 underlying load, got %d", underlying.loads)
	}
	if _, err := store.Load(ctx, "c"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if underlying.loads != 1 {
		t.Errorf("Expected cache hit for c, got %d underlying loads", underlying.loads)
	}
}

func TestCacheMiddleware_LoadRefreshesRecency(t *testing.T) {
	underlying := NewMockStore()
	store := middleware.NewCacheMiddleware(2, 0)(underlying)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewTraceList("a", "goal")))
	require.NoError(t, store.Save(ctx, domain.NewTraceList("b", "goal")))
	_, err := store.Load(ctx, "a")
	require.NoError(t, err)

	// "b" is now the least recently used entry.
	require.NoError(t, store.Save(ctx, domain.NewTraceList("c", "goal")))
	_, err = store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 0, underlying.loads, "a stays cached after being read")

	_, err = store.Load(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 1, underlying.loads, "b was evicted")
}

func TestCacheMiddleware_ExpiresWithBackend(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	const ttl = 50 * time.Millisecond
	store := middleware.Chain(
		redis.NewFromClient(client, redis.WithTTL(ttl)),
		middleware.NewCacheMiddleware(64, ttl),
	)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewTraceList("short", "random")))
	_, err = store.Load(ctx, "short")
	require.NoError(t, err, "fresh list is served")

	mr.FastForward(2 * ttl)
	time.Sleep(2 * ttl)

	_, err = store.Load(ctx, "short")
	assert.ErrorIs(t, err, domain.ErrTraceListNotFound, "expired list must not be served from cache")
}

func TestCacheMiddleware_FailedSaveNotCached(t *testing.T) {
	underlying := NewMockStore()
	underlying.fail = errBroken
	store := middleware.NewCacheMiddleware(4, 0)(underlying)
	ctx := context.Background()

	if err := store.Save(ctx, domain.NewTraceList("x", "random")); !errors.Is(err, errBroken) {
		t.Fatalf("Expected save error, got %v", err)
	}
	if _, err := store.Load(ctx, "x"); !errors.Is(err, domain.ErrTraceListNotFound) {
		t.Errorf("Expected miss, got %v", err)
	}
}

func TestCacheMiddleware_Disabled(t *testing.T) {
	underlying := NewMockStore()
	if store := middleware.NewCacheMiddleware(0, 0)(underlying); store != ports.TraceStore(underlying) {
		t.Errorf("Expected size 0 to return the underlying store")
	}
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	underlying := NewMockStore()
	store := middleware.Chain(underlying, middleware.NewLoggingMiddleware(logger), middleware.NewCacheMiddleware(1, 0))
	ctx := context.Background()

	if err := store.Save(ctx, domain.NewTraceList("l1", "random")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := store.Load(ctx, "missing"); !errors.Is(err, domain.ErrTraceListNotFound) {
		t.Fatalf("Expected not found, got %v", err)
	}
	underlying.fail = errBroken
	_ = store.Save(ctx, domain.NewTraceList("l2", "random"))

	out := buf.String()
	if !strings.Contains(out, "op=save") || !strings.Contains(out, "id=l1") {
		t.Errorf("Expected save log, got:\n%s", out)
	}
	if strings.Contains(out, "level=ERROR msg=\"Store Operation Failed\" op=load") {
		t.Errorf("Missing list must not be logged as a failure:\n%s", out)
	}
	if !strings.Contains(out, "disk on fire") {
		t.Errorf("Expected failure log, got:\n%s", out)
	}
}
