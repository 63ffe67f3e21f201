package seo

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/starford/seoscout/internal/render"
)

// BatchResult is the outcome for one keyword of a batch.
type BatchResult struct {
	Keyword string  `json:"keyword"`
	Report  *Report `json:"report,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// AnalyzeBatch analyses words concurrently. Results keep input order and a
// failing keyword does not stop the others; only ctx cancellation does.
func (s *Service) AnalyzeBatch(ctx context.Context, words []string, longtailCount int) ([]BatchResult, error) {
	results := make([]BatchResult, len(words))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, w := range words {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := s.Analyze(gctx, w, longtailCount)
			results[i] = BatchResult{Keyword: w, Report: r}
			if err != nil {
				results[i].Error = err.Error()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Succeeded counts results without an error.
func Succeeded(results []BatchResult) int {
	n := 0
	for _, r := range results {
		if r.Report != nil {
			n++
		}
	}
	return n
}

// BatchRows converts successful batch results into summary rows.
func BatchRows(results []BatchResult) []render.BatchRow {
	rows := make([]render.BatchRow, 0, len(results))
	for _, r := range results {
		if r.Report == nil {
			continue
		}
		rows = append(rows, render.BatchRow{
			Keyword:       r.Report.Keyword,
			Intent:        r.Report.Intent.String(),
			LongtailCount: len(r.Report.LongtailWords),
			SiteType:      r.Report.SitePlan.Type,
			Headline:      r.Report.SitePlan.Headline,
		})
	}
	return rows
}
