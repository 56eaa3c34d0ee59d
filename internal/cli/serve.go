package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	api "github.com/aretw0/plantrace/pkg/adapters/http"
	"github.com/aretw0/plantrace/pkg/adapters/mcp"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, app *App, addr string) error {
	if addr == "" {
		addr = app.Config.Server.Addr
	}

	handler := api.NewHandler(app.Engine,
		api.WithMetrics(app.Metrics.Handler()),
		api.WithLogger(app.Logger),
		api.WithLimits(app.Config.Server.MaxTraces, app.Config.Server.MaxLength),
	)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.Logger.Info("HTTP Server listening", "address", addr, "problem", app.Engine.Name)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			printSystemMessage("Shutting down server...")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.Logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		app.Logger.Info("HTTP Server stopped gracefully")
		return nil
	})
	return g.Wait()
}

// Transports supported by ServeMCP.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// ServeMCP exposes the engine as an MCP server over stdio or SSE.
func ServeMCP(ctx context.Context, app *App, transport string, port int) error {
	srv := mcp.NewServer(app.Engine, app.Logger)
	switch transport {
	case "", TransportStdio:
		app.Logger.Info("Starting MCP Server (Stdio)")
		return srv.ServeStdio()
	case TransportSSE:
		app.Logger.Info("Starting MCP Server (SSE)", "port", port)
		if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown transport %q (supported: stdio, sse)", transport)
	}
}
