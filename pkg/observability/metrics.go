package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/plantrace/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "plantrace"

// Metrics holds the generation collectors.
type Metrics struct {
	registry *prometheus.Registry

	TracesAccepted *prometheus.CounterVec
	TraceSteps     *prometheus.HistogramVec
	TraceDuration  *prometheus.HistogramVec
	DeadEnds       *prometheus.CounterVec
	DuplicatePlans *prometheus.CounterVec
	Timeouts       *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		TracesAccepted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "traces_accepted_total",
				Help:      "Total number of traces added to a trace list",
			},
			[]string{"generator"},
		),
		TraceSteps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "trace_steps",
				Help:      "Number of steps of accepted traces",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"generator"},
		),
		TraceDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "trace_duration_seconds",
				Help:      "Time spent producing an accepted trace",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"generator"},
		),
		DeadEnds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "dead_ends_total",
				Help:      "Total number of random rollouts abandoned at a dead end",
			},
			[]string{"generator"},
		),
		DuplicatePlans: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "duplicate_plans_total",
				Help:      "Total number of plans rejected as already seen",
			},
			[]string{"generator"},
		),
		Timeouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "timeouts_total",
				Help:      "Total number of expired generation budgets",
			},
			[]string{"generator", "phase"},
		),
	}
	m.registry.MustRegister(
		m.TracesAccepted,
		m.TraceSteps,
		m.TraceDuration,
		m.DeadEnds,
		m.DuplicatePlans,
		m.Timeouts,
	)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Hooks returns generation hooks recording into the collectors.
func (m *Metrics) Hooks() domain.GenerationHooks {
	return domain.GenerationHooks{
		OnTraceAccepted: func(_ context.Context, e *domain.TraceEvent) {
			m.TracesAccepted.WithLabelValues(e.Generator).Inc()
			m.TraceSteps.WithLabelValues(e.Generator).Observe(float64(e.Steps))
			m.TraceDuration.WithLabelValues(e.Generator).Observe(e.Duration.Seconds())
		},
		OnDeadEnd: func(_ context.Context, e *domain.TraceEvent) {
			m.DeadEnds.WithLabelValues(e.Generator).Inc()
		},
		OnDuplicatePlan: func(_ context.Context, e *domain.PlanEvent) {
			m.DuplicatePlans.WithLabelValues(e.Generator).Inc()
		},
		OnTimeout: func(_ context.Context, e *domain.TimeoutEvent) {
			m.Timeouts.WithLabelValues(e.Generator, string(e.Phase)).Inc()
		},
	}
}
