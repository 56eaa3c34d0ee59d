package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/plantrace"
	"github.com/aretw0/plantrace/internal/generate"
	"github.com/aretw0/plantrace/pkg/domain"
	"github.com/aretw0/plantrace/pkg/observation"
	"github.com/aretw0/plantrace/pkg/strips"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ProblemURI is the resource describing the loaded problem.
const ProblemURI = "plantrace://problem"

// Engine defines the operations the MCP server exposes.
type Engine interface {
	Problem() *strips.Problem
	Random(ctx context.Context, numTraces, length int) (*domain.TraceList, error)
	Sample(ctx context.Context, numTraces, length int) (*domain.TraceList, error)
	Fluents(raw ...string) ([]domain.Fluent, error)
	Observe(list *domain.TraceList, m observation.Method) ([][]observation.Token, error)
	Save(ctx context.Context, list *domain.TraceList) error
	Load(ctx context.Context, id string) (*domain.TraceList, error)
	List(ctx context.Context) ([]string, error)
}

// GenerateArgs are the arguments of the generate_traces tool.
type GenerateArgs struct {
	Generator string `json:"generator"`
	Traces    int    `json:"traces"`
	Length    int    `json:"length"`
}

// GenerateResponse summarizes a stored trace list.
type GenerateResponse struct {
	ID        string   `json:"id" jsonschema_description:"ID of the stored trace list"`
	Generator string   `json:"generator" jsonschema_description:"Generator that produced the list"`
	Steps     []int    `json:"steps" jsonschema_description:"Number of steps of each trace"`
	Plans     []string `json:"plans" jsonschema_description:"Action sequence of each trace"`
}

// ObserveArgs are the arguments of the observe_traces tool.
type ObserveArgs struct {
	ID      string   `json:"id"`
	Method  string   `json:"method"`
	Percent int      `json:"percent"`
	Hide    []string `json:"hide"`
}

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("plantrace-mcp", strings.TrimSpace(plantrace.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server over Server-Sent Events and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	generateTool := mcp.NewTool("generate_traces",
		mcp.WithDescription("Generate and store a list of execution traces for the loaded planning problem."),
		mcp.WithString("generator", mcp.Required(), mcp.Enum(generate.GeneratorRandom, generate.GeneratorGoal),
			mcp.Description("'random' for uniform random rollouts, 'goal' to follow planner plans")),
		mcp.WithNumber("traces", mcp.Description("Number of traces (default 1)")),
		mcp.WithNumber("length", mcp.Description("Steps per trace; required for random, optional truncation for goal")),
		mcp.WithOutputSchema[GenerateResponse](),
	)
	s.mcpServer.AddTool(generateTool, mcp.NewStructuredToolHandler(s.handleGenerate))

	s.mcpServer.AddTool(mcp.NewTool("list_traces",
		mcp.WithDescription("List the IDs of stored trace lists."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids, err := s.engine.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		return jsonResult(ids)
	})

	s.mcpServer.AddTool(mcp.NewTool("get_traces",
		mcp.WithDescription("Fetch a stored trace list with every state and action."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Trace list ID")),
	), s.handleGet)

	observeTool := mcp.NewTool("observe_traces",
		mcp.WithDescription("Mask the states of a stored trace list to emulate partial observability."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Trace list ID")),
		mcp.WithString("method", mcp.Enum(observation.MethodRandom, observation.MethodSame, observation.MethodIdentity),
			mcp.Description("Fluent selection method (default identity)")),
		mcp.WithNumber("percent", mcp.Description("Percentage of fluents kept by the random method")),
		mcp.WithArray("hide", mcp.WithStringItems(), mcp.Description("Atoms hidden by the same method, e.g. (on a b)")),
	)
	s.mcpServer.AddTool(observeTool, mcp.NewTypedToolHandler(s.handleObserve))
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest, args GenerateArgs) (GenerateResponse, error) {
	if args.Traces <= 0 {
		args.Traces = 1
	}

	var (
		list *domain.TraceList
		err  error
	)
	switch args.Generator {
	case generate.GeneratorRandom:
		list, err = s.engine.Random(ctx, args.Traces, args.Length)
	case generate.GeneratorGoal:
		list, err = s.engine.Sample(ctx, args.Traces, args.Length)
	default:
		return GenerateResponse{}, fmt.Errorf("unknown generator %q", args.Generator)
	}
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("generate failed: %w", err)
	}
	if err := s.engine.Save(ctx, list); err != nil {
		return GenerateResponse{}, fmt.Errorf("save failed: %w", err)
	}
	s.logger.Info("MCP Traces Generated", "id", list.ID, "generator", list.Generator, "traces", list.Len())

	resp := GenerateResponse{ID: list.ID, Generator: list.Generator}
	for _, t := range list.Traces {
		resp.Steps = append(resp.Steps, t.Len())
		resp.Plans = append(resp.Plans, t.PlanKey())
	}
	return resp, nil
}

func (s *Server) handleGet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	list, err := s.engine.Load(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}
	return jsonResult(list)
}

func (s *Server) handleObserve(ctx context.Context, request mcp.CallToolRequest, args ObserveArgs) (*mcp.CallToolResult, error) {
	hide, err := s.engine.Fluents(args.Hide...)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid hide set: %v", err)), nil
	}
	method, err := observation.NewMethod(args.Method, args.Percent, hide, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	list, err := s.engine.Load(ctx, args.ID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}
	tokens, err := s.engine.Observe(list, method)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("observe failed: %v", err)), nil
	}
	return jsonResult(tokens)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(ProblemURI, "Planning Problem",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := s.problemJSON()
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ProblemURI,
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	})
}

func (s *Server) problemJSON() (string, error) {
	p := s.engine.Problem()
	ops := make([]string, len(p.Operators))
	for i, op := range p.Operators {
		ops[i] = op.String()
	}
	doc := map[string]any{
		"name":      p.Name,
		"domain":    p.Domain,
		"objects":   p.Objects,
		"operators": ops,
	}
	if p.Goal != nil {
		doc["goal"] = p.Goal.String()
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode problem: %w", err)
	}
	return string(data), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
