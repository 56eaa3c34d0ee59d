package generate

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Run executes fn on a cancellable worker and waits at most budget for it.
//
// On expiry the worker's context is cancelled and timeoutErr is returned
// wrapped. Cancellation is cooperative: work that ignores its context keeps
// running in the background until it returns, so the budget bounds how long
// the caller waits, not how long the work runs. A non-positive budget is
// already expired. Cancellation of the parent context is reported as is.
func Run[T any](ctx context.Context, budget time.Duration, timeoutErr error, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if budget <= 0 {
		return zero, fmt.Errorf("%w: no budget left", timeoutErr)
	}

	workCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1) // buffered so an abandoned worker never blocks

	go func() {
		v, err := fn(workCtx)
		done <- result{value: v, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil && ctx.Err() == nil && errors.Is(workCtx.Err(), context.DeadlineExceeded) {
			return zero, fmt.Errorf("%w after %s: %w", timeoutErr, budget, r.err)
		}
		return r.value, r.err
	case <-workCtx.Done():
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		return zero, fmt.Errorf("%w after %s", timeoutErr, budget)
	}
}
