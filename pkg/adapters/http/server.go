package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/plantrace/internal/generate"
	"github.com/aretw0/plantrace/pkg/domain"
	"github.com/aretw0/plantrace/pkg/observation"
	"github.com/aretw0/plantrace/pkg/strips"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Engine defines the operations the API exposes.
type Engine interface {
	Problem() *strips.Problem
	Random(ctx context.Context, numTraces, length int) (*domain.TraceList, error)
	Sample(ctx context.Context, numTraces, length int) (*domain.TraceList, error)
	Fluents(raw ...string) ([]domain.Fluent, error)
	Observe(list *domain.TraceList, m observation.Method) ([][]observation.Token, error)
	Save(ctx context.Context, list *domain.TraceList) error
	Load(ctx context.Context, id string) (*domain.TraceList, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
}

// GenerateRequest is the body of POST /traces.
type GenerateRequest struct {
	Generator string `json:"generator"`
	Traces    int    `json:"traces"`
	Length    int    `json:"length"`
}

// ObserveRequest is the body of POST /traces/{id}/observe.
type ObserveRequest struct {
	Method  string   `json:"method"`
	Percent int      `json:"percent"`
	Hide    []string `json:"hide"`
}

// ObserveResponse carries masked traces in list order.
type ObserveResponse struct {
	ID     string                `json:"id"`
	Method string                `json:"method"`
	Tokens [][]observation.Token `json:"tokens"`
}

// ProblemSummary describes the loaded problem.
type ProblemSummary struct {
	Name      string            `json:"name"`
	Domain    string            `json:"domain"`
	Objects   map[string]string `json:"objects"`
	Atoms     int               `json:"atoms"`
	Operators int               `json:"operators"`
	Goal      string            `json:"goal,omitempty"`
}

// Default request bounds for POST /traces.
const (
	DefaultMaxTraces = 1000
	DefaultMaxLength = 10_000
)

// Server serves the trace API.
type Server struct {
	Engine  Engine
	Metrics http.Handler
	Logger  *slog.Logger

	MaxTraces int
	MaxLength int
}

// Option configures the handler.
type Option func(*Server)

// WithMetrics mounts a Prometheus handler on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// WithLimits bounds the traces and length a generate request may ask for.
// Non-positive values keep the defaults.
func WithLimits(maxTraces, maxLength int) Option {
	return func(s *Server) {
		if maxTraces > 0 {
			s.MaxTraces = maxTraces
		}
		if maxLength > 0 {
			s.MaxLength = maxLength
		}
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		Engine:    engine,
		Logger:    slog.Default(),
		MaxTraces: DefaultMaxTraces,
		MaxLength: DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if server.Metrics != nil {
		r.Handle("/metrics", server.Metrics)
	}
	r.Get("/problem", server.GetProblem)
	r.Route("/traces", func(r chi.Router) {
		r.Get("/", server.ListTraces)
		r.Post("/", server.GenerateTraces)
		r.Get("/{id}", server.GetTraces)
		r.Delete("/{id}", server.DeleteTraces)
		r.Post("/{id}/observe", server.ObserveTraces)
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetProblem handles GET /problem.
func (s *Server) GetProblem(w http.ResponseWriter, r *http.Request) {
	p := s.Engine.Problem()
	summary := ProblemSummary{
		Name:      p.Name,
		Domain:    p.Domain,
		Objects:   p.Objects,
		Atoms:     len(p.Atoms()),
		Operators: len(p.Operators),
	}
	if p.Goal != nil {
		summary.Goal = p.Goal.String()
	}
	writeJSON(w, http.StatusOK, summary)
}

// ListTraces handles GET /traces.
func (s *Server) ListTraces(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Engine.List(r.Context())
	if err != nil {
		s.fail(w, "List", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

// GenerateTraces handles POST /traces: generates, stores and returns a list.
func (s *Server) GenerateTraces(w http.ResponseWriter, r *http.Request) {
	var body GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Generate: Invalid request body", "err", err)
		return
	}
	if body.Traces <= 0 {
		body.Traces = 1
	}
	if body.Traces > s.MaxTraces || body.Length > s.MaxLength {
		writeError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("request exceeds limits (traces <= %d, length <= %d)", s.MaxTraces, s.MaxLength))
		return
	}

	var (
		list *domain.TraceList
		err  error
	)
	switch body.Generator {
	case generate.GeneratorRandom, "":
		list, err = s.Engine.Random(r.Context(), body.Traces, body.Length)
	case generate.GeneratorGoal:
		list, err = s.Engine.Sample(r.Context(), body.Traces, body.Length)
	default:
		writeError(w, http.StatusBadRequest, "unknown generator: "+body.Generator)
		return
	}
	if err != nil {
		s.fail(w, "Generate", err)
		return
	}
	if err := s.Engine.Save(r.Context(), list); err != nil {
		s.fail(w, "Save", err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

// GetTraces handles GET /traces/{id}.
func (s *Server) GetTraces(w http.ResponseWriter, r *http.Request) {
	list, err := s.Engine.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "Load", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// DeleteTraces handles DELETE /traces/{id}.
func (s *Server) DeleteTraces(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, "Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ObserveTraces handles POST /traces/{id}/observe.
func (s *Server) ObserveTraces(w http.ResponseWriter, r *http.Request) {
	var body ObserveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Observe: Invalid request body", "err", err)
		return
	}

	hide, err := s.Engine.Fluents(body.Hide...)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	method, err := observation.NewMethod(body.Method, body.Percent, hide, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := s.Engine.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "Load", err)
		return
	}
	tokens, err := s.Engine.Observe(list, method)
	if err != nil {
		s.fail(w, "Observe", err)
		return
	}
	writeJSON(w, http.StatusOK, ObserveResponse{ID: list.ID, Method: method.Name(), Tokens: tokens})
}

// fail maps domain errors to status codes.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrTraceListNotFound):
		status = http.StatusNotFound
	case errors.Is(err, generate.ErrInvalidLength),
		errors.Is(err, domain.ErrInvalidPercent),
		errors.Is(err, domain.ErrDeadEnd),
		errors.Is(err, domain.ErrNoPlanner):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	if status == http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "err", err)
	}
	writeError(w, status, err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
