package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/plantrace"
	"github.com/aretw0/plantrace/internal/adapters/file"
	"github.com/aretw0/plantrace/internal/adapters/redis"
	"github.com/aretw0/plantrace/internal/config"
	"github.com/aretw0/plantrace/internal/logging"
	"github.com/aretw0/plantrace/pkg/adapters/memory"
	"github.com/aretw0/plantrace/pkg/adapters/process"
	"github.com/aretw0/plantrace/pkg/observability"
	"github.com/aretw0/plantrace/pkg/persistence/middleware"
	"github.com/aretw0/plantrace/pkg/ports"
	"github.com/aretw0/plantrace/pkg/registry"
)

// ErrUnknownPlanner is returned when the selected planner is not configured.
var ErrUnknownPlanner = errors.New("unknown planner")

// Options carries the global flags shared by every command.
type Options struct {
	ConfigPath string
	TaskPath   string
	LogLevel   string
	LogFormat  string
	Planner    string
	Store      string
	Seed       uint64
	Quiet      bool
}

// App is a fully wired engine plus the resources the commands need.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Engine  *plantrace.Engine
	Metrics *observability.Metrics
	Quiet   bool

	closers []func() error
}

// Setup loads the configuration, applies flag overrides and builds the engine.
func Setup(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := createLogger(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(),
		Quiet:   opts.Quiet,
	}

	store, err := app.createStore()
	if err != nil {
		return nil, err
	}

	engineOpts := []plantrace.Option{
		plantrace.WithLogger(logger),
		plantrace.WithStore(store),
		plantrace.WithHooks(app.Metrics.Hooks()),
		plantrace.WithMaxAttempts(cfg.Generation.MaxAttempts),
		plantrace.WithPlanTimeout(cfg.Generation.PlanTimeout),
		plantrace.WithTraceTimeout(cfg.Generation.TraceTimeout),
	}
	if !opts.Quiet {
		engineOpts = append(engineOpts, plantrace.WithHooks(createConsoleHooks()))
	}
	if cfg.Generation.Seed != 0 {
		engineOpts = append(engineOpts, plantrace.WithSeed(cfg.Generation.Seed))
	}

	planner, err := createPlanner(cfg, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	if planner != nil {
		engineOpts = append(engineOpts, plantrace.WithPlanner(planner))
	}

	engine, err := plantrace.Load(opts.TaskPath, engineOpts...)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	app.Engine = engine
	return app, nil
}

// Close releases the store connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

func applyOverrides(cfg *config.Config, opts Options) {
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.LogFormat != "" {
		cfg.LogFormat = opts.LogFormat
	}
	if opts.Planner != "" {
		cfg.Generation.Planner = opts.Planner
	}
	if opts.Store != "" {
		cfg.Store.Backend = opts.Store
	}
	if opts.Seed != 0 {
		cfg.Generation.Seed = opts.Seed
	}
}

// createLogger configures the application logger.
// It always writes to Stderr so Stdout carries only trace output.
func createLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewWithFormat(os.Stderr, cfg.LogFormat, level), nil
}

// createStore builds the configured backend behind the logging and cache
// middleware. Cached entries expire with the backend's own TTL.
func (a *App) createStore() (ports.TraceStore, error) {
	store, err := a.createBackend()
	if err != nil {
		return nil, err
	}
	var ttl time.Duration
	if a.Config.Store.Backend == config.StoreRedis {
		ttl = a.Config.Store.Redis.TTL
	}
	return middleware.Chain(store,
		middleware.NewLoggingMiddleware(a.Logger),
		middleware.NewCacheMiddleware(a.Config.Store.CacheSize, ttl),
	), nil
}

func (a *App) createBackend() (ports.TraceStore, error) {
	switch a.Config.Store.Backend {
	case config.StoreMemory:
		return memory.NewStore(), nil
	case config.StoreRedis:
		rc := a.Config.Store.Redis
		var opts []redis.Option
		if rc.Prefix != "" {
			opts = append(opts, redis.WithPrefix(rc.Prefix))
		}
		if rc.TTL > 0 {
			opts = append(opts, redis.WithTTL(rc.TTL))
		}
		store := redis.New(rc.Addr, rc.Password, rc.DB, opts...)
		if err := store.Ping(context.Background()); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("redis unavailable at %s: %w", rc.Addr, err)
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	default:
		return file.New(a.Config.Store.Path), nil
	}
}

// LoadRegistry registers every planner of the configured planners file.
func LoadRegistry(cfg *config.Config, logger *slog.Logger) (*registry.Registry, error) {
	planners, err := process.LoadPlanners(cfg.PlannersFile)
	if err != nil {
		return nil, err
	}
	reg := registry.NewRegistry()
	for name, pc := range planners {
		reg.Register(name, process.NewPlanner(pc, process.WithLogger(logger)))
	}
	return reg, nil
}

// createPlanner resolves the configured planner name against the planners
// file. No name means no planner; Sample then fails with ErrNoPlanner.
func createPlanner(cfg *config.Config, logger *slog.Logger) (ports.Planner, error) {
	name := cfg.Generation.Planner
	if name == "" {
		return nil, nil
	}
	reg, err := LoadRegistry(cfg, logger)
	if err != nil {
		return nil, err
	}
	p, ok := reg.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (planners file %s)", ErrUnknownPlanner, name, cfg.PlannersFile)
	}
	return p, nil
}
