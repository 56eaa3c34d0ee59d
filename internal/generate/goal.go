package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/plantrace/pkg/convert"
	"github.com/aretw0/plantrace/pkg/domain"
	"github.com/aretw0/plantrace/pkg/ports"
	"github.com/aretw0/plantrace/pkg/strips"
)

// ErrInvalidPlan is returned when a planner produces an inexecutable plan.
var ErrInvalidPlan = errors.New("plan is not executable")

// GoalSampler builds traces that follow plans from a Planner.
//
// While the unique plan budget lasts, plans whose action sequence was already
// used are discarded and requested again. Once the budget is spent the
// sampler switches to reuse mode for the rest of the call and accepts any
// plan. The seen plan set belongs to the sampler and is reset per call.
type GoalSampler struct {
	problem *strips.Problem
	model   ports.SearchModel
	conv    *convert.Converter
	planner ports.Planner
	settings

	seen map[string]struct{}
}

// NewGoalSampler creates a plan-following sampler.
func NewGoalSampler(problem *strips.Problem, model ports.SearchModel, conv *convert.Converter, planner ports.Planner, opts ...Option) *GoalSampler {
	return &GoalSampler{
		problem:  problem,
		model:    model,
		conv:     conv,
		planner:  planner,
		settings: newSettings(opts),
		seen:     make(map[string]struct{}),
	}
}

// EffectiveLength is the number of steps of a trace built from a plan of
// planLen actions. Unset (<= 0) or longer-than-plan lengths use the whole
// plan plus the terminal state; shorter lengths truncate the plan.
func EffectiveLength(configured, planLen int) int {
	if configured <= 0 || configured > planLen {
		return planLen + 1
	}
	return configured
}

// PlanKey serializes a plan's action sequence.
func PlanKey(plan []strips.Operator) string {
	parts := make([]string, len(plan))
	for i, op := range plan {
		parts[i] = op.String()
	}
	return strings.Join(parts, " ")
}

// Generate produces up to numTraces traces. length <= 0 means "whole plan".
//
// A plan search timeout switches to reuse mode and the trace is built from a
// possibly duplicated plan. A trace build timeout is reported, that request is
// skipped and reuse mode is enabled; already accepted traces are kept, so the
// list may hold fewer than numTraces traces.
func (s *GoalSampler) Generate(ctx context.Context, numTraces, length int) (*domain.TraceList, error) {
	list := domain.NewTraceList(s.newID(), GeneratorGoal)
	s.seen = make(map[string]struct{})

	reuse := false
	deadline := time.Now().Add(s.planTimeout)

	for i := 0; i < numTraces; i++ {
		start := time.Now()

		var (
			plan []strips.Operator
			err  error
		)
		if !reuse {
			plan, err = s.uniquePlan(ctx, time.Until(deadline))
			if errors.Is(err, domain.ErrPlanSearchTimeout) {
				s.reportTimeout(ctx, domain.PhasePlanSearch, s.planTimeout, i, err)
				reuse = true
			}
		}
		if reuse {
			plan, err = s.planner.Plan(ctx, s.problem)
		}
		if err != nil {
			return nil, fmt.Errorf("plan for trace %d: %w", i+1, err)
		}

		trace, err := Run(ctx, s.traceTimeout, domain.ErrTraceSearchTimeout, func(ctx context.Context) (*domain.Trace, error) {
			return s.build(ctx, plan, length)
		})
		if errors.Is(err, domain.ErrTraceSearchTimeout) {
			s.reportTimeout(ctx, domain.PhaseTraceSearch, s.traceTimeout, i, err)
			reuse = true
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("trace %d: %w", i+1, err)
		}

		list.Append(trace)
		s.logger.Debug("Trace Accepted", "generator", GeneratorGoal, "trace", list.Len(), "steps", trace.Len(), "reuse", reuse)
		if s.hooks.OnTraceAccepted != nil {
			s.hooks.OnTraceAccepted(ctx, &domain.TraceEvent{
				EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventTraceAccepted, Generator: GeneratorGoal},
				TraceIndex: i,
				Steps:      trace.Len(),
				Duration:   time.Since(start),
			})
		}
	}
	return list, nil
}

// uniquePlan asks the planner until it returns a plan not seen in this call.
// The worker only reads a snapshot of the seen set; the new key is recorded
// here once the worker has returned.
func (s *GoalSampler) uniquePlan(ctx context.Context, budget time.Duration) ([]strips.Operator, error) {
	seen := make(map[string]struct{}, len(s.seen))
	for k := range s.seen {
		seen[k] = struct{}{}
	}

	plan, err := Run(ctx, budget, domain.ErrPlanSearchTimeout, func(ctx context.Context) ([]strips.Operator, error) {
		for {
			plan, err := s.planner.Plan(ctx, s.problem)
			if err != nil {
				return nil, err
			}
			key := PlanKey(plan)
			if _, dup := seen[key]; !dup {
				return plan, nil
			}
			if s.hooks.OnDuplicatePlan != nil {
				s.hooks.OnDuplicatePlan(ctx, &domain.PlanEvent{
					EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventDuplicatePlan, Generator: GeneratorGoal},
					Plan:      key,
					Actions:   len(plan),
				})
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	})
	if err != nil {
		return nil, err
	}
	s.seen[PlanKey(plan)] = struct{}{}
	return plan, nil
}

// build materializes a trace from plan. The last step carries no action and
// holds the state reached by the preceding actions.
func (s *GoalSampler) build(ctx context.Context, plan []strips.Operator, length int) (*domain.Trace, error) {
	n := EffectiveLength(length, len(plan))
	state := s.model.Init()
	trace := domain.NewTrace()

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		observed, err := s.conv.State(state)
		if err != nil {
			return nil, err
		}
		if i == n-1 {
			trace.Append(domain.NewStep(observed, nil, i+1))
			break
		}

		op := plan[i]
		if !op.Applicable(state) {
			return nil, fmt.Errorf("%w: step %d: %s", ErrInvalidPlan, i+1, op)
		}
		action, err := s.conv.Action(op)
		if err != nil {
			return nil, err
		}
		trace.Append(domain.NewStep(observed, action, i+1))
		state = s.model.Progress(state, op)
	}
	return trace, nil
}

func (s *GoalSampler) reportTimeout(ctx context.Context, phase domain.Phase, budget time.Duration, index int, err error) {
	s.logger.Warn("Generation Timeout", "phase", phase, "budget", budget, "trace", index+1, "err", err)
	if s.hooks.OnTimeout != nil {
		s.hooks.OnTimeout(ctx, &domain.TimeoutEvent{
			EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventTimeout, Generator: GeneratorGoal},
			Phase:      phase,
			Budget:     budget,
			TraceIndex: index,
		})
	}
}
