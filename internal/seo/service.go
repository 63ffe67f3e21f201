// Package seo runs the keyword analysis pipeline and records its results.
package seo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/starford/seoscout/internal/apperr"
	"github.com/starford/seoscout/internal/discover"
	"github.com/starford/seoscout/internal/intent"
	"github.com/starford/seoscout/internal/metrics"
	"github.com/starford/seoscout/internal/models"
	"github.com/starford/seoscout/internal/outline"
	"github.com/starford/seoscout/internal/planfile"
	"github.com/starford/seoscout/internal/siteplan"
	"github.com/starford/seoscout/internal/sse"
	"github.com/starford/seoscout/internal/storage"
	"github.com/starford/seoscout/internal/store"
	"github.com/starford/seoscout/internal/trend"
)

// DefaultLongtailCount is the longtail count used by the CLI and API when the
// caller does not pass one.
const DefaultLongtailCount = 20

// Publisher receives analysis activity.
type Publisher interface {
	PublishActivity(eventType string, data map[string]string)
}

// RelatedFinder looks up keywords related to a query.
type RelatedFinder interface {
	Related(ctx context.Context, query string) ([]string, error)
}

// Report is the result of analysing one keyword.
type Report struct {
	ID            string          `json:"id"`
	Keyword       string          `json:"keyword"`
	Intent        intent.Category `json:"intent"`
	LongtailWords []string        `json:"longtail_words"`
	SitePlan      siteplan.Plan   `json:"site_plan"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Service coordinates the pipeline, persistence and artifact output.
type Service struct {
	repo      store.Repository
	artifacts storage.Provider
	verifier  *trend.Verifier
	collector *discover.Collector
	search    RelatedFinder
	events    Publisher
	logger    *slog.Logger
	workers   int
	now       func() time.Time
}

// NewService creates a new analysis service.
func NewService(repo store.Repository, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		logger:  slog.Default(),
		workers: 4,
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Analyze classifies word, expands longtailCount longtail queries, builds a
// site plan and records the keyword and plan.
func (s *Service) Analyze(ctx context.Context, word string, longtailCount int) (*Report, error) {
	kw := intent.Normalize(word)
	if kw == "" {
		return nil, apperr.ErrInvalidKeyword
	}

	c := intent.Classify(kw)
	longtails := intent.Expand(kw, c, longtailCount)
	plan := siteplan.Build(kw, c, longtails)

	r := &Report{
		ID:            uuid.NewString(),
		Keyword:       kw,
		Intent:        c,
		LongtailWords: longtails,
		SitePlan:      plan,
		CreatedAt:     s.now().UTC(),
	}

	if err := s.repo.SaveKeyword(ctx, models.Keyword{Word: kw, IntentType: c.String()}); err != nil {
		return nil, fmt.Errorf("seo: analyze %q: %w", kw, err)
	}
	if _, err := s.repo.AddPlan(ctx, models.SitePlan{
		AnalysisID:  r.ID,
		Keyword:     kw,
		SiteType:    plan.Type,
		OutlineKind: string(plan.OutlineKind),
		CoreFeature: plan.CoreFeature,
		TechStack:   plan.TechStack,
		Headline:    plan.Headline,
		Structure:   plan.H2Structure,
	}); err != nil {
		return nil, fmt.Errorf("seo: analyze %q: %w", kw, err)
	}

	metrics.RecordAnalysis(c.String())
	s.publish(sse.EventKeywordAnalyzed, map[string]string{
		"id":        r.ID,
		"keyword":   kw,
		"intent":    c.String(),
		"site_type": plan.Type,
	})
	s.logger.Info("seo: keyword analyzed",
		slog.String("keyword", kw),
		slog.String("intent", c.String()),
		slog.Int("longtails", len(longtails)))
	return r, nil
}

// Outline generates the content outline for a plan source.
func (s *Service) Outline(_ context.Context, src outline.Source) (*outline.Result, error) {
	res, err := outline.Generate(src)
	if err != nil {
		return nil, err
	}
	metrics.RecordOutline(string(res.Outline.Type))
	s.publish(sse.EventOutlineGenerated, map[string]string{
		"keyword": res.Keyword,
		"kind":    string(res.Outline.Type),
	})
	return res, nil
}

// OutlineFile reads a plan file and generates its outline.
func (s *Service) OutlineFile(ctx context.Context, path string) (*outline.Result, error) {
	src, err := planfile.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("seo: plan file %s: %w", path, apperr.ErrNotFound)
		}
		return nil, err
	}
	return s.Outline(ctx, src)
}

// Discover collects hot keywords, verifies their trends and stores the ones
// with measurable volume scoring at least minScore.
func (s *Service) Discover(ctx context.Context, limit int, minScore float64) ([]trend.Record, error) {
	if s.collector == nil || s.verifier == nil {
		return nil, fmt.Errorf("seo: discover: %w", apperr.ErrUnavailable)
	}

	words, err := s.collector.Collect(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("seo: discover: %w", err)
	}
	if len(words) == 0 {
		s.logger.Warn("seo: no hot words found")
		return []trend.Record{}, nil
	}

	records, err := s.verifier.Verify(ctx, words)
	if err != nil {
		return nil, fmt.Errorf("seo: discover: %w", err)
	}
	if minScore > 0 {
		kept := trend.Filter(records, minScore)
		s.logger.Info("seo: filtered discovered keywords",
			slog.Int("kept", len(kept)),
			slog.Int("verified", len(records)),
			slog.Float64("min_score", minScore))
		records = kept
	}
	for _, r := range records {
		vol, score := r.SearchVolume, r.TrendScore
		k := models.Keyword{
			Word:         r.Keyword,
			SearchVolume: &vol,
			TrendScore:   &score,
			IntentType:   intent.Classify(r.Keyword).String(),
		}
		if err := s.repo.SaveKeyword(ctx, k); err != nil {
			return nil, fmt.Errorf("seo: discover: %w", err)
		}
	}
	return records, nil
}

// Related returns keywords that appear alongside word in search results.
func (s *Service) Related(ctx context.Context, word string) ([]string, error) {
	kw := intent.Normalize(word)
	if kw == "" {
		return nil, apperr.ErrInvalidKeyword
	}
	if s.search == nil {
		return nil, fmt.Errorf("seo: related: %w", apperr.ErrUnavailable)
	}
	words, err := s.search.Related(ctx, kw)
	if err != nil {
		return nil, fmt.Errorf("seo: related %q: %w", kw, err)
	}
	return words, nil
}

// Keywords returns stored keywords, newest first.
func (s *Service) Keywords(ctx context.Context, limit int) ([]models.Keyword, error) {
	return s.repo.Keywords(ctx, limit)
}

// Plans returns stored site plans, newest first. A non-empty keyword narrows
// the result to that keyword's plans.
func (s *Service) Plans(ctx context.Context, keyword string, limit int) ([]models.SitePlan, error) {
	if keyword != "" {
		return s.repo.PlansFor(ctx, intent.Normalize(keyword), limit)
	}
	return s.repo.Plans(ctx, limit)
}

// History returns logged searches, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]models.Search, error) {
	return s.repo.History(ctx, limit)
}

func (s *Service) publish(eventType string, data map[string]string) {
	if s.events != nil {
		s.events.PublishActivity(eventType, data)
	}
}
