package plantrace

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/aretw0/plantrace/internal/generate"
	"github.com/aretw0/plantrace/pkg/adapters/memory"
	"github.com/aretw0/plantrace/pkg/adapters/taskfile"
	"github.com/aretw0/plantrace/pkg/convert"
	"github.com/aretw0/plantrace/pkg/domain"
	"github.com/aretw0/plantrace/pkg/observation"
	"github.com/aretw0/plantrace/pkg/ports"
	"github.com/aretw0/plantrace/pkg/strips"
)

// ErrNoPlanner is returned by Sample when the engine has no planner.
var ErrNoPlanner = domain.ErrNoPlanner

// Engine is the high-level entry point for the plantrace library.
// It owns one planning problem and generates, masks and stores its traces.
// Generation calls are serialized; the engine is safe for concurrent use.
type Engine struct {
	problem *strips.Problem
	conv    *convert.Converter
	planner ports.Planner
	store   ports.TraceStore
	hooks   domain.GenerationHooks
	logger  *slog.Logger

	seed         *uint64
	maxAttempts  int
	planTimeout  time.Duration
	traceTimeout time.Duration

	mu     sync.Mutex
	random *generate.Random
	goal   *generate.GoalSampler

	Name string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithPlanner sets the planner used by Sample.
func WithPlanner(p ports.Planner) Option {
	return func(e *Engine) {
		e.planner = p
	}
}

// WithStore sets where trace lists are persisted (default: in memory).
func WithStore(s ports.TraceStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers generation hooks.
func WithHooks(hooks domain.GenerationHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithSeed makes generation reproducible across engines built with the same seed.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seed = &seed
	}
}

// WithMaxAttempts bounds dead-end restarts per random trace.
// n <= 0 keeps the default.
func WithMaxAttempts(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxAttempts = n
		}
	}
}

// WithPlanTimeout sets the unique plan search budget.
func WithPlanTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.planTimeout = d
	}
}

// WithTraceTimeout sets the per-trace materialization budget.
func WithTraceTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.traceTimeout = d
	}
}

// New initializes an Engine for problem.
func New(problem *strips.Problem, opts ...Option) (*Engine, error) {
	if problem == nil {
		return nil, fmt.Errorf("problem is required")
	}

	eng := &Engine{
		problem:      problem,
		Name:         problem.Name,
		maxAttempts:  generate.DefaultMaxAttempts,
		planTimeout:  generate.DefaultPlanTimeout,
		traceTimeout: generate.DefaultTraceTimeout,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("problem", eng.Name)
	}

	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	if eng.seed != nil {
		rng = rand.New(rand.NewPCG(*eng.seed, *eng.seed))
	}

	genOpts := []generate.Option{
		generate.WithLogger(eng.logger),
		generate.WithHooks(eng.hooks),
		generate.WithRand(rng),
		generate.WithMaxAttempts(eng.maxAttempts),
		generate.WithPlanTimeout(eng.planTimeout),
		generate.WithTraceTimeout(eng.traceTimeout),
	}

	model := strips.NewSearchModel(problem)
	eng.conv = convert.New(problem)
	eng.random = generate.NewRandom(model, eng.conv, genOpts...)
	if eng.planner != nil {
		eng.goal = generate.NewGoalSampler(problem, model, eng.conv, eng.planner, genOpts...)
	}
	return eng, nil
}

// Load reads a task file and initializes an Engine for it.
func Load(taskPath string, opts ...Option) (*Engine, error) {
	problem, err := taskfile.Load(taskPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	return New(problem, opts...)
}

// Problem returns the engine's planning problem.
func (e *Engine) Problem() *strips.Problem {
	return e.problem
}

// Random generates numTraces uniformly random traces of exactly length steps.
func (e *Engine) Random(ctx context.Context, numTraces, length int) (*domain.TraceList, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.logger.Info("Generating Traces", "generator", generate.GeneratorRandom, "traces", numTraces, "length", length)
	return e.random.Generate(ctx, numTraces, length)
}

// Sample generates up to numTraces plan-following traces. length <= 0 uses
// each plan's full length plus the terminal state.
func (e *Engine) Sample(ctx context.Context, numTraces, length int) (*domain.TraceList, error) {
	if e.goal == nil {
		return nil, ErrNoPlanner
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.logger.Info("Generating Traces", "generator", generate.GeneratorGoal, "traces", numTraces, "length", length)
	list, err := e.goal.Generate(ctx, numTraces, length)
	if err != nil {
		return nil, err
	}
	if list.Len() < numTraces {
		e.logger.Warn("Incomplete Trace List", "requested", numTraces, "generated", list.Len())
	}
	return list, nil
}

// Fluents parses atoms such as "(on a b)" into typed fluents of the problem.
func (e *Engine) Fluents(raw ...string) ([]domain.Fluent, error) {
	out := make([]domain.Fluent, 0, len(raw))
	for _, r := range raw {
		lit, err := strips.ParseLiteral(r)
		if err != nil {
			return nil, err
		}
		f, err := e.conv.Fluent(lit)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Observe masks every step of list with m.
func (e *Engine) Observe(list *domain.TraceList, m observation.Method) ([][]observation.Token, error) {
	return observation.TokenizeList(list, m)
}

// Save persists a trace list.
func (e *Engine) Save(ctx context.Context, list *domain.TraceList) error {
	return e.store.Save(ctx, list)
}

// Load retrieves a stored trace list.
func (e *Engine) Load(ctx context.Context, id string) (*domain.TraceList, error) {
	return e.store.Load(ctx, id)
}

// Delete removes a stored trace list.
func (e *Engine) Delete(ctx context.Context, id string) error {
	return e.store.Delete(ctx, id)
}

// List returns the IDs of stored trace lists.
func (e *Engine) List(ctx context.Context) ([]string, error) {
	return e.store.List(ctx)
}
