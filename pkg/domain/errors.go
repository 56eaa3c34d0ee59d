package domain

import "errors"

// ErrPlanSearchTimeout is returned when unique plan acquisition exceeds its budget.
var ErrPlanSearchTimeout = errors.New("plan search timed out")

// ErrTraceSearchTimeout is returned when materializing a trace from a plan exceeds its budget.
var ErrTraceSearchTimeout = errors.New("trace search timed out")

// ErrDeadEnd is returned when random rollouts keep hitting states with no
// applicable action and the retry budget is exhausted.
var ErrDeadEnd = errors.New("no trace of the requested length could be generated")

// ErrUnknownAction is returned when an action name has no typing signature.
var ErrUnknownAction = errors.New("unknown action")

// ErrUnknownPredicate is returned when a predicate name has no typing signature.
var ErrUnknownPredicate = errors.New("unknown predicate")

// ErrDuplicateFluent is returned when a state lists the same fluent twice.
var ErrDuplicateFluent = errors.New("duplicate fluent")

// ErrInvalidTrace is returned when a trace violates its step invariants.
var ErrInvalidTrace = errors.New("invalid trace")

// ErrInvalidPercent is returned for hide percentages outside [0, 100].
var ErrInvalidPercent = errors.New("percentage must be between 0 and 100")

// ErrTraceListNotFound is returned when a trace list ID cannot be found in the store.
var ErrTraceListNotFound = errors.New("trace list not found")

// ErrNoPlanner is returned when plan-following generation is requested without a planner.
var ErrNoPlanner = errors.New("no planner configured")
