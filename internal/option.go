package internal

import (
	"log/slog"

	"github.com/starford/seoscout/internal/seo"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config    *Config
	logger    *slog.Logger
	outputDir string
	publisher seo.Publisher
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithLogger sets the application logger. Without it Run logs JSON to stdout
// and the CLI commands to stderr.
func WithLogger(l *slog.Logger) Option {
	return func(a *application) {
		a.logger = l
	}
}

// WithOutputDir overrides the configured artifact directory.
func WithOutputDir(dir string) Option {
	return func(a *application) {
		a.outputDir = dir
	}
}

func withPublisher(p seo.Publisher) Option {
	return func(a *application) {
		a.publisher = p
	}
}
