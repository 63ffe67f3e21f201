package internal

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/starford/seoscout/internal/discover"
	"github.com/starford/seoscout/internal/metrics"
	"github.com/starford/seoscout/internal/search"
	"github.com/starford/seoscout/internal/seo"
	"github.com/starford/seoscout/internal/storage"
	"github.com/starford/seoscout/internal/store"
	"github.com/starford/seoscout/internal/trend"
)

// App holds the collaborators shared by the server, the MCP server and the
// CLI commands.
type App struct {
	Config  *Config
	Logger  *slog.Logger
	Service *seo.Service
	Plans   *storage.FS
	Output  *storage.FS

	db *store.DB
}

// NewLogger returns a JSON logger writing to w at the configured level.
func NewLogger(cfg *Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
}

// NewApp opens the database and wires the analysis service with whichever
// search and trends backends are configured.
func NewApp(opts ...Option) (*App, error) {
	a := &application{}
	for _, opt := range opts {
		opt(a)
	}
	if a.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	cfg := a.config

	logger := a.logger
	if logger == nil {
		logger = NewLogger(cfg, os.Stderr)
	}

	outputDir := cfg.Output.Dir
	if a.outputDir != "" {
		outputDir = a.outputDir
	}
	output, err := storage.NewFS(outputDir)
	if err != nil {
		return nil, fmt.Errorf("init output dir: %w", err)
	}
	plans, err := storage.NewFS(cfg.Plans.Dir)
	if err != nil {
		output.Close()
		return nil, fmt.Errorf("init plans dir: %w", err)
	}

	db, err := store.Open(cfg.SQLite.Path)
	if err != nil {
		output.Close()
		plans.Close()
		return nil, fmt.Errorf("init store: %w", err)
	}

	metrics.Init()

	svcOpts := []seo.Option{
		seo.WithArtifacts(output),
		seo.WithLogger(logger),
		seo.WithWorkers(cfg.Analysis.BatchWorkers),
	}
	if a.publisher != nil {
		svcOpts = append(svcOpts, seo.WithPublisher(a.publisher))
	}

	// A nil *search.Client must not reach the collector as a non-nil interface.
	var engine discover.SearchEngine
	if cfg.Search.Enabled() {
		client := search.New(cfg.Search.BaseURL, cfg.Search.Timeout,
			search.WithHistory(db),
			search.WithLogger(logger),
			search.WithRateLimit(cfg.Search.RPS),
		)
		engine = client
		svcOpts = append(svcOpts, seo.WithSearch(client))
	} else {
		logger.Info("search backend not configured")
	}
	svcOpts = append(svcOpts, seo.WithCollector(
		discover.NewCollector(engine, discover.NewFeedReader(nil, cfg.Search.Timeout), logger),
	))

	if cfg.Trends.Enabled() {
		source := trend.NewHTTPSource(cfg.Trends.BaseURL, cfg.Trends.Timeout, cfg.Trends.MinDelay)
		svcOpts = append(svcOpts, seo.WithVerifier(trend.NewVerifier(source, cfg.Trends.BatchSize, logger)))
	} else {
		logger.Info("trends backend not configured")
	}

	return &App{
		Config:  cfg,
		Logger:  logger,
		Service: seo.NewService(db, svcOpts...),
		Plans:   plans,
		Output:  output,
		db:      db,
	}, nil
}

// Close releases the database and the artifact directories.
func (a *App) Close() error {
	return errors.Join(a.db.Close(), a.Plans.Close(), a.Output.Close())
}
