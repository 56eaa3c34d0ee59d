package generate_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/plantrace/internal/generate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errPhase = errors.New("phase timed out")

func TestRun_ReturnsResult(t *testing.T) {
	v, err := generate.Run(context.Background(), time.Second, errPhase, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestRun_PassesErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := generate.Run(context.Background(), time.Second, errPhase, func(ctx context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, errPhase)
}

func TestRun_TimesOutUncooperativeWork(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	start := time.Now()
	_, err := generate.Run(context.Background(), 20*time.Millisecond, errPhase, func(ctx context.Context) (int, error) {
		<-release // ignores ctx on purpose
		return 1, nil
	})
	assert.ErrorIs(t, err, errPhase)
	assert.Less(t, time.Since(start), time.Second, "caller must not wait for the worker")
}

func TestRun_CancelsCooperativeWork(t *testing.T) {
	var cancelled atomic.Bool
	stopped := make(chan struct{})

	_, err := generate.Run(context.Background(), 10*time.Millisecond, errPhase, func(ctx context.Context) (int, error) {
		defer close(stopped)
		<-ctx.Done()
		cancelled.Store(true)
		return 0, ctx.Err()
	})
	assert.ErrorIs(t, err, errPhase)

	<-stopped
	assert.True(t, cancelled.Load())
}

func TestRun_ZeroBudget(t *testing.T) {
	called := false
	_, err := generate.Run(context.Background(), 0, errPhase, func(ctx context.Context) (int, error) {
		called = true
		return 0, nil
	})
	assert.ErrorIs(t, err, errPhase)
	assert.False(t, called)
}

func TestRun_ParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := generate.Run(ctx, time.Minute, errPhase, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, errPhase)
}
