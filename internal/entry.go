// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/seoscout/internal/api"
	"github.com/starford/seoscout/internal/mcpserver"
	"github.com/starford/seoscout/internal/metrics"
	"github.com/starford/seoscout/internal/sse"
	"github.com/starford/seoscout/internal/watch"
)

// NewRootRouter builds the HTTP handler tree: health probes, metrics and the
// SSE stream at the root, the REST API under /api.
func NewRootRouter(app *App, broker *sse.Broker) chi.Router {
	cfg := app.Config
	apiRouter := api.NewRouter(app.Service, cfg.Auth.AuthEnabled(), cfg.Auth.Token, nil, cfg.Analysis.LongtailCount)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := app.db.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", metrics.Handler())

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	// SSE endpoint.
	if broker != nil {
		r.With(api.AuthMiddleware(cfg.Auth.AuthEnabled(), cfg.Auth.Token)).Get("/api/events", broker.ServeHTTP)
	}
	return r
}

// Run starts the HTTP server and the plans watcher with the given options.
func Run(ctx context.Context, opts ...Option) error {
	probe := &application{}
	for _, opt := range opts {
		opt(probe)
	}
	if probe.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := probe.config

	// Initialize structured JSON logger.
	logger := probe.logger
	if logger == nil {
		logger = NewLogger(cfg, os.Stdout)
	}
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("output_dir", cfg.Output.Dir),
		slog.String("plans_dir", cfg.Plans.Dir),
		slog.Bool("search_enabled", cfg.Search.Enabled()),
		slog.Bool("trends_enabled", cfg.Trends.Enabled()),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	app, err := NewApp(append(opts, WithLogger(logger), withPublisher(broker))...)
	if err != nil {
		return err
	}
	defer app.Close()

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: NewRootRouter(app, broker),
	}

	watcher := watch.New(app.Plans, app.Service, logger, func(kind, path string) {
		logger.Info("plan file handled", slog.String("kind", kind), slog.String("path", path))
	})

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Generate outlines for existing plans, then follow changes.
	g.Go(func() error {
		if err := watcher.Sync(gCtx); err != nil {
			logger.Warn("initial plans sync failed", slog.String("error", err.Error()))
		}
		if err := watcher.Run(gCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("plans watcher stopped", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		// Open event streams would otherwise hold Shutdown until its timeout.
		broker.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group so the watcher exits with the server.
var errShutdown = errors.New("shutdown")

// RunMCP serves the MCP tools on stdin/stdout.
func RunMCP(_ context.Context, opts ...Option) error {
	app, err := NewApp(opts...)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Logger.Info("MCP server starting on stdio")
	return mcpserver.New(app.Service, app.Plans, app.Config.Analysis.LongtailCount).ServeStdio()
}
