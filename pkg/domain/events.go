package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTraceAccepted EventType = "trace_accepted"
	EventDeadEnd       EventType = "dead_end"
	EventDuplicatePlan EventType = "duplicate_plan"
	EventTimeout       EventType = "timeout"
)

// Phase names the generation phase a timeout happened in.
type Phase string

const (
	PhasePlanSearch  Phase = "plan_search"
	PhaseTraceSearch Phase = "trace_search"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Generator string    `json:"generator"`
}

// TraceEvent reports an accepted trace or an abandoned rollout.
type TraceEvent struct {
	EventBase
	TraceIndex int           `json:"trace_index"`
	Steps      int           `json:"steps"`
	Attempt    int           `json:"attempt,omitempty"`
	Duration   time.Duration `json:"duration,omitempty"`
}

// PlanEvent reports a plan rejected by the uniqueness check.
type PlanEvent struct {
	EventBase
	Plan    string `json:"plan"`
	Actions int    `json:"actions"`
}

// TimeoutEvent reports an expired budget.
type TimeoutEvent struct {
	EventBase
	Phase      Phase         `json:"phase"`
	Budget     time.Duration `json:"budget"`
	TraceIndex int           `json:"trace_index"`
}

// GenerationHooks defines callbacks for generator observability.
// Nil callbacks are skipped.
type GenerationHooks struct {
	OnTraceAccepted func(context.Context, *TraceEvent)
	OnDeadEnd       func(context.Context, *TraceEvent)
	OnDuplicatePlan func(context.Context, *PlanEvent)
	OnTimeout       func(context.Context, *TimeoutEvent)
}

// Merge chains two hook sets; h runs before other.
func (h GenerationHooks) Merge(other GenerationHooks) GenerationHooks {
	return GenerationHooks{
		OnTraceAccepted: chain(h.OnTraceAccepted, other.OnTraceAccepted),
		OnDeadEnd:       chain(h.OnDeadEnd, other.OnDeadEnd),
		OnDuplicatePlan: chain(h.OnDuplicatePlan, other.OnDuplicatePlan),
		OnTimeout:       chain(h.OnTimeout, other.OnTimeout),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
