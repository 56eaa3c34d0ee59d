// Package config loads plantrace.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/plantrace/internal/generate"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is looked up in the working directory when no file is given.
const DefaultPath = "plantrace.yaml"

// Built-in generation and request limits.
const (
	DefaultLength    = 10
	DefaultMaxTraces = 1000
	DefaultMaxLength = 10_000
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the application configuration. Command line flags override it.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	Generation Generation `mapstructure:"generation"`
	Store      Store      `mapstructure:"store"`
	Server     Server     `mapstructure:"server"`

	// PlannersFile lists the external planners (see process.LoadPlanners).
	PlannersFile string `mapstructure:"planners_file"`
}

// Generation holds trace generation defaults.
type Generation struct {
	Traces int `mapstructure:"traces"`

	// Length is the step count of random traces.
	Length int `mapstructure:"length"`

	// GoalLength truncates sampled plans. Zero keeps whole plans.
	GoalLength int `mapstructure:"goal_length"`

	Seed         uint64        `mapstructure:"seed"`
	MaxAttempts  int           `mapstructure:"max_attempts"`
	PlanTimeout  time.Duration `mapstructure:"plan_timeout"`
	TraceTimeout time.Duration `mapstructure:"trace_timeout"`
	Planner      string        `mapstructure:"planner"`
}

// Store selects where trace lists are persisted.
type Store struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
	Redis   Redis  `mapstructure:"redis"`

	// CacheSize is the number of trace lists kept in memory in front of
	// the backend. Zero disables the cache.
	CacheSize int `mapstructure:"cache_size"`
}

// Redis configures the redis store backend.
type Redis struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `mapstructure:"addr"`

	// Request bounds for generation; larger requests are rejected.
	MaxTraces int `mapstructure:"max_traces"`
	MaxLength int `mapstructure:"max_length"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		Generation: Generation{
			Traces:       1,
			Length:       DefaultLength,
			MaxAttempts:  generate.DefaultMaxAttempts,
			PlanTimeout:  generate.DefaultPlanTimeout,
			TraceTimeout: generate.DefaultTraceTimeout,
		},
		Store: Store{
			Backend:   StoreFile,
			Redis:     Redis{Addr: "localhost:6379"},
			CacheSize: 64,
		},
		Server: Server{
			Addr:      ":8080",
			MaxTraces: DefaultMaxTraces,
			MaxLength: DefaultMaxLength,
		},
		PlannersFile: "planners.yaml",
	}
}

// Load reads path over the defaults. An empty path tries DefaultPath and
// silently falls back to defaults when it does not exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document over the defaults.
func Parse(data []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error
	switch c.Store.Backend {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q", c.Store.Backend))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	if c.Generation.Traces < 0 {
		errs = append(errs, fmt.Errorf("generation.traces must not be negative"))
	}
	if c.Generation.Length < 0 || c.Generation.GoalLength < 0 {
		errs = append(errs, fmt.Errorf("generation lengths must not be negative"))
	}
	if c.Server.MaxTraces < 1 || c.Server.MaxLength < 1 {
		errs = append(errs, fmt.Errorf("server.max_traces and server.max_length must be positive"))
	}
	if c.Store.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("store.cache_size must not be negative"))
	}
	if c.Generation.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("generation.max_attempts must be positive"))
	}
	if c.Generation.PlanTimeout < 0 || c.Generation.TraceTimeout < 0 {
		errs = append(errs, fmt.Errorf("generation timeouts must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
