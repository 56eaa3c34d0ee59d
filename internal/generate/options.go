package generate

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/aretw0/plantrace/pkg/domain"
	"github.com/google/uuid"
)

// Generator names recorded on produced trace lists.
const (
	GeneratorRandom = "random"
	GeneratorGoal   = "goal"
)

// Defaults.
const (
	DefaultMaxAttempts  = 100
	DefaultPlanTimeout  = 30 * time.Second
	DefaultTraceTimeout = 30 * time.Second
)

type settings struct {
	logger *slog.Logger
	hooks  domain.GenerationHooks
	rng    *rand.Rand
	newID  func() string

	maxAttempts  int
	planTimeout  time.Duration
	traceTimeout time.Duration
}

func newSettings(opts []Option) settings {
	s := settings{
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		rng:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		newID:        uuid.NewString,
		maxAttempts:  DefaultMaxAttempts,
		planTimeout:  DefaultPlanTimeout,
		traceTimeout: DefaultTraceTimeout,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option defines a functional option for configuring generators.
type Option func(*settings)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHooks registers observability hooks. Hooks may be invoked from the
// worker goroutine of a deadline-bounded phase.
func WithHooks(hooks domain.GenerationHooks) Option {
	return func(s *settings) {
		s.hooks = hooks
	}
}

// WithRand sets the random source used for action sampling.
func WithRand(rng *rand.Rand) Option {
	return func(s *settings) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithSeed makes sampling reproducible.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithIDGenerator overrides trace list ID generation (default: UUIDv4).
func WithIDGenerator(newID func() string) Option {
	return func(s *settings) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithMaxAttempts bounds how many times a random trace is restarted after
// dead ends before giving up (default: 100). n <= 0 keeps the default.
func WithMaxAttempts(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithPlanTimeout sets the budget for unique plan search (default: 30s).
func WithPlanTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.planTimeout = d
	}
}

// WithTraceTimeout sets the budget for materializing one trace (default: 30s).
func WithTraceTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.traceTimeout = d
	}
}
