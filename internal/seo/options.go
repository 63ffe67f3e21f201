package seo

import (
	"log/slog"
	"time"

	"github.com/starford/seoscout/internal/discover"
	"github.com/starford/seoscout/internal/storage"
	"github.com/starford/seoscout/internal/trend"
)

// Option configures a Service.
type Option func(*Service)

// WithArtifacts sets where reports, plans and outlines are written.
func WithArtifacts(p storage.Provider) Option {
	return func(s *Service) { s.artifacts = p }
}

// WithVerifier enables trend verification for Discover.
func WithVerifier(v *trend.Verifier) Option {
	return func(s *Service) { s.verifier = v }
}

// WithCollector enables hot keyword discovery.
func WithCollector(c *discover.Collector) Option {
	return func(s *Service) { s.collector = c }
}

// WithSearch enables related keyword lookups.
func WithSearch(f RelatedFinder) Option {
	return func(s *Service) { s.search = f }
}

// WithPublisher streams analysis activity to p.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.events = p }
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithWorkers bounds AnalyzeBatch concurrency.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithClock overrides the time source used for timestamps and file names.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}
