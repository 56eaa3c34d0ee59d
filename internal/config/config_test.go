package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/plantrace/internal/config"
	"github.com/aretw0/plantrace/internal/generate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	doc := `
log_level: debug
generation:
  traces: 5
  length: 12
  goal_length: 4
  seed: 42
  plan_timeout: 1m30s
  trace_timeout: "500ms"
  planner: fd
store:
  backend: redis
  cache_size: 8
  redis:
    addr: redis:6379
    db: 2
    ttl: 24h
server:
  addr: 127.0.0.1:9000
`
	cfg, err := config.Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat, "defaults survive partial documents")
	assert.Equal(t, 5, cfg.Generation.Traces)
	assert.Equal(t, 12, cfg.Generation.Length)
	assert.Equal(t, 4, cfg.Generation.GoalLength)
	assert.Equal(t, uint64(42), cfg.Generation.Seed)
	assert.Equal(t, 90*time.Second, cfg.Generation.PlanTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Generation.TraceTimeout)
	assert.Equal(t, generate.DefaultMaxAttempts, cfg.Generation.MaxAttempts)
	assert.Equal(t, "fd", cfg.Generation.Planner)
	assert.Equal(t, config.StoreRedis, cfg.Store.Backend)
	assert.Equal(t, 8, cfg.Store.CacheSize)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, 24*time.Hour, cfg.Store.Redis.TTL)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, config.DefaultMaxTraces, cfg.Server.MaxTraces)
	assert.Equal(t, config.DefaultMaxLength, cfg.Server.MaxLength)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"Unknown Key":     "verbose: true\n",
		"Unknown Backend": "store: {backend: s3}\n",
		"Bad Duration":    "generation: {plan_timeout: soon}\n",
		"Zero Attempts":   "generation: {max_attempts: 0}\n",
		"Bad Format":      "log_format: xml\n",
		"Negative Cache":  "store: {cache_size: -1}\n",
		"Negative Length": "generation: {goal_length: -2}\n",
		"Zero Max Traces": "server: {max_traces: 0}\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(doc))
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}

	_, err := config.Parse([]byte("store: ["))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Run("Missing Default Falls Back", func(t *testing.T) {
		t.Chdir(t.TempDir())
		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("Missing Explicit Fails", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Explicit File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("store: {backend: memory}\n"), 0644))
		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, config.StoreMemory, cfg.Store.Backend)
	})
}
