package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/plantrace"
	"github.com/aretw0/plantrace/internal/testutils"
	api "github.com/aretw0/plantrace/pkg/adapters/http"
	"github.com/aretw0/plantrace/pkg/adapters/memory"
	"github.com/aretw0/plantrace/pkg/domain"
	"github.com/aretw0/plantrace/pkg/observability"
	"github.com/aretw0/plantrace/pkg/observation"
	"github.com/aretw0/plantrace/pkg/strips"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	metrics := observability.NewMetrics()
	eng, err := plantrace.New(testutils.SwitchesProblem(t, "a", "b"),
		plantrace.WithPlanner(memory.NewPlanner([]string{"(switch-on a)", "(switch-on b)"})),
		plantrace.WithHooks(metrics.Hooks()),
	)
	require.NoError(t, err)

	srv := httptest.NewServer(api.NewHandler(eng, api.WithMetrics(metrics.Handler())))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestServer_GenerateAndFetch(t *testing.T) {
	srv := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/traces", api.GenerateRequest{Generator: "goal", Traces: 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.TraceList
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.Equal(t, 1, created.Len())
	assert.Equal(t, 3, created.Traces[0].Len())
	assert.NoError(t, created.Traces[0].Validate())

	resp = do(t, http.MethodGet, srv.URL+"/traces", nil)
	var ids map[string][]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ids))
	assert.Equal(t, []string{created.ID}, ids["ids"])

	resp = do(t, http.MethodGet, srv.URL+"/traces/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched domain.TraceList
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fetched))
	assert.True(t, created.Traces[0].Equal(fetched.Traces[0]))

	resp = do(t, http.MethodGet, srv.URL+"/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodDelete, srv.URL+"/traces/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, http.MethodGet, srv.URL+"/traces/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_Observe(t *testing.T) {
	srv := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/traces", api.GenerateRequest{Generator: "random", Traces: 2, Length: 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created domain.TraceList
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	resp = do(t, http.MethodPost, srv.URL+"/traces/"+created.ID+"/observe", api.ObserveRequest{
		Method: observation.MethodSame,
		Hide:   []string{"(on a)"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var observed api.ObserveResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&observed))
	assert.Equal(t, "same-subset(1)", observed.Method)
	require.Len(t, observed.Tokens, 2)
	for _, toks := range observed.Tokens {
		for _, tok := range toks {
			assert.True(t, tok.Step.State.IsPartial())
			assert.Equal(t, 1, tok.Step.State.Len())
		}
	}

	resp = do(t, http.MethodPost, srv.URL+"/traces/"+created.ID+"/observe", api.ObserveRequest{Method: "random", Percent: 150})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/traces/"+created.ID+"/observe", api.ObserveRequest{Method: "same", Hide: []string{"(lit a)"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_BadRequests(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Unknown Generator", api.GenerateRequest{Generator: "bfs"}, http.StatusBadRequest},
		{"Invalid Length", api.GenerateRequest{Generator: "random", Length: 0}, http.StatusUnprocessableEntity},
		{"Malformed Body", "not an object", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, srv.URL+"/traces", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestServer_Problem(t *testing.T) {
	srv := newServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/problem", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary api.ProblemSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, "switches", summary.Name)
	assert.Equal(t, 2, summary.Operators)
	assert.Equal(t, 2, summary.Atoms)
	assert.Equal(t, "(and (on a) (on b))", summary.Goal)
}

// MockEngine lets tests inject store failures.
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *MockEngine) Problem() *strips.Problem { return &strips.Problem{} }

func (m *MockEngine) Random(ctx context.Context, traces, length int) (*domain.TraceList, error) {
	args := m.Called(ctx, traces, length)
	list, _ := args.Get(0).(*domain.TraceList)
	return list, args.Error(1)
}

func (m *MockEngine) Sample(context.Context, int, int) (*domain.TraceList, error) { return nil, nil }

func (m *MockEngine) Fluents(...string) ([]domain.Fluent, error) { return nil, nil }

func (m *MockEngine) Observe(*domain.TraceList, observation.Method) ([][]observation.Token, error) {
	return nil, nil
}

func (m *MockEngine) Save(context.Context, *domain.TraceList) error { return nil }

func (m *MockEngine) Load(context.Context, string) (*domain.TraceList, error) {
	return nil, domain.ErrTraceListNotFound
}

func (m *MockEngine) Delete(context.Context, string) error { return nil }

func TestServer_StoreFailure(t *testing.T) {
	eng := new(MockEngine)
	eng.On("List", mock.Anything).Return(nil, errors.New("redis down"))

	srv := httptest.NewServer(api.NewHandler(eng))
	defer srv.Close()

	resp := do(t, http.MethodGet, srv.URL+"/traces", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "redis down", body["error"])
	eng.AssertExpectations(t)
}

func TestServer_GenerateLimits(t *testing.T) {
	eng := new(MockEngine)
	eng.On("Random", mock.Anything, 2, 5).Return(domain.NewTraceList("ok", "random"), nil)

	srv := httptest.NewServer(api.NewHandler(eng, api.WithLimits(2, 5)))
	defer srv.Close()

	tests := []struct {
		name   string
		body   api.GenerateRequest
		status int
	}{
		{"Too Many Traces", api.GenerateRequest{Generator: "random", Traces: 3, Length: 5}, http.StatusUnprocessableEntity},
		{"Too Long", api.GenerateRequest{Generator: "random", Traces: 1, Length: 6}, http.StatusUnprocessableEntity},
		{"At Limits", api.GenerateRequest{Generator: "random", Traces: 2, Length: 5}, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, srv.URL+"/traces", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
	eng.AssertNumberOfCalls(t, "Random", 1)
}
