package generate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/plantrace/pkg/convert"
	"github.com/aretw0/plantrace/pkg/domain"
	"github.com/aretw0/plantrace/pkg/ports"
)

// ErrInvalidLength is returned for non-positive trace lengths.
var ErrInvalidLength = errors.New("trace length must be positive")

// Random builds fixed-length traces by sampling applicable operators
// uniformly at random from the initial state.
type Random struct {
	model ports.SearchModel
	conv  *convert.Converter
	settings
}

// NewRandom creates a uniform random generator.
func NewRandom(model ports.SearchModel, conv *convert.Converter, opts ...Option) *Random {
	return &Random{
		model:    model,
		conv:     conv,
		settings: newSettings(opts),
	}
}

// Generate produces numTraces traces of exactly length steps each.
// Every step pairs the pre-action state with the sampled action.
// A rollout reaching a dead end is discarded and restarted; after
// maxAttempts consecutive failures for one trace, ErrDeadEnd is returned.
func (g *Random) Generate(ctx context.Context, numTraces, length int) (*domain.TraceList, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	list := domain.NewTraceList(g.newID(), GeneratorRandom)
	for list.Len() < numTraces {
		start := time.Now()
		trace, err := g.rollout(ctx, list.Len(), length)
		if err != nil {
			return nil, fmt.Errorf("trace %d: %w", list.Len()+1, err)
		}
		list.Append(trace)

		g.logger.Debug("Trace Accepted", "generator", GeneratorRandom, "trace", list.Len(), "steps", trace.Len())
		if g.hooks.OnTraceAccepted != nil {
			g.hooks.OnTraceAccepted(ctx, &domain.TraceEvent{
				EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventTraceAccepted, Generator: GeneratorRandom},
				TraceIndex: list.Len() - 1,
				Steps:      trace.Len(),
				Duration:   time.Since(start),
			})
		}
	}
	return list, nil
}

func (g *Random) rollout(ctx context.Context, index, length int) (*domain.Trace, error) {
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		trace, reached, err := g.attempt(ctx, length)
		if err != nil {
			return nil, err
		}
		if trace != nil {
			return trace, nil
		}

		g.logger.Debug("Dead End", "trace", index+1, "attempt", attempt, "depth", reached)
		if g.hooks.OnDeadEnd != nil {
			g.hooks.OnDeadEnd(ctx, &domain.TraceEvent{
				EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventDeadEnd, Generator: GeneratorRandom},
				TraceIndex: index,
				Steps:      reached,
				Attempt:    attempt,
			})
		}
	}
	return nil, fmt.Errorf("%w: %d attempts at length %d", domain.ErrDeadEnd, g.maxAttempts, length)
}

// attempt runs one rollout. A nil trace with a nil error means a dead end
// was hit after reached steps.
func (g *Random) attempt(ctx context.Context, length int) (*domain.Trace, int, error) {
	state := g.model.Init()
	trace := domain.NewTrace()

	for i := 0; i < length; i++ {
		if err := ctx.Err(); err != nil {
			return nil, i, err
		}

		applicable := g.model.Applicable(state)
		if len(applicable) == 0 {
			return nil, i, nil
		}
		op := applicable[g.rng.IntN(len(applicable))]

		action, err := g.conv.Action(op)
		if err != nil {
			return nil, i, err
		}
		observed, err := g.conv.State(state)
		if err != nil {
			return nil, i, err
		}
		trace.Append(domain.NewStep(observed, action, i+1))
		state = g.model.Progress(state, op)
	}
	return trace, length, nil
}
