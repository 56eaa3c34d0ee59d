package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/plantrace/pkg/domain"
	"golang.org/x/term"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// Unlike signal.NotifyContext it remembers which signal arrived.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			sc.Cancel()
		case <-sc.Context.Done():
		}
		sc.stop.Do(func() {
			signal.Stop(sc.sigCh)
		})
	}()

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// systemOut receives the ">>>" console messages. Stderr keeps Stdout clean
// for piping trace JSON.
var systemOut io.Writer = os.Stderr

// printSystemMessage prints a standardized system message.
func printSystemMessage(format string, args ...any) {
	fmt.Fprintf(systemOut, ">>> %s\n", fmt.Sprintf(format, args...))
}

// createConsoleHooks reports expired budgets and dead ends on the console.
func createConsoleHooks() domain.GenerationHooks {
	return domain.GenerationHooks{
		OnTimeout: func(ctx context.Context, e *domain.TimeoutEvent) {
			switch e.Phase {
			case domain.PhasePlanSearch:
				printSystemMessage("Plan search timed out after %v; reusing known plans.", e.Budget)
			default:
				printSystemMessage("Trace %d timed out after %v; skipped.", e.TraceIndex+1, e.Budget)
			}
		},
		OnDeadEnd: func(ctx context.Context, e *domain.TraceEvent) {
			printSystemMessage("Dead end after %d steps (attempt %d); restarting.", e.Steps, e.Attempt)
		},
	}
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

// HandleExecutionError turns user interruptions into a clean exit.
func HandleExecutionError(sc *SignalContext, err error) error {
	if err == nil || !isInterrupted(err) {
		return err
	}
	if sig := sc.Signal(); sig == os.Interrupt {
		printSystemMessage("Interrupted.")
	} else if sig != nil {
		printSystemMessage("Terminated.")
	}
	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
