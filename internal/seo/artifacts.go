package seo

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/starford/seoscout/internal/apperr"
	"github.com/starford/seoscout/internal/outline"
	"github.com/starford/seoscout/internal/render"
	"github.com/starford/seoscout/internal/trend"
)

const stampLayout = "20060102_150405"

var unsafeName = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// slug turns a keyword into a file name fragment.
func slug(keyword string) string {
	s := unsafeName.ReplaceAllString(strings.ReplaceAll(keyword, " ", "_"), "")
	if s == "" {
		return "keyword"
	}
	return s
}

// SaveReport writes the JSON report and the Markdown site plan, returning
// their locations.
func (s *Service) SaveReport(r *Report) ([]string, error) {
	if s.artifacts == nil {
		return nil, fmt.Errorf("seo: save report: %w", apperr.ErrUnavailable)
	}
	stamp := s.now().Format(stampLayout)
	base := slug(r.Keyword)

	report, err := render.JSON(r)
	if err != nil {
		return nil, err
	}
	plan, err := render.PlanMarkdown(r.SitePlan)
	if err != nil {
		return nil, err
	}

	files := []struct {
		name string
		data []byte
	}{
		{fmt.Sprintf("%s_intent_%s.json", base, stamp), report},
		{fmt.Sprintf("%s_plan_%s.md", base, stamp), plan},
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		p, err := s.artifacts.Write(f.name, f.data)
		if err != nil {
			return nil, fmt.Errorf("seo: save report: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// SaveOutline writes an outline as Markdown. An empty name uses
// outline_<timestamp>.md.
func (s *Service) SaveOutline(res *outline.Result, name string) (string, error) {
	if s.artifacts == nil {
		return "", fmt.Errorf("seo: save outline: %w", apperr.ErrUnavailable)
	}
	if name == "" {
		name = fmt.Sprintf("outline_%s.md", s.now().Format(stampLayout))
	}
	p, err := s.artifacts.Write(name, render.OutlineMarkdown(res))
	if err != nil {
		return "", fmt.Errorf("seo: save outline: %w", err)
	}
	return p, nil
}

// SaveDiscovery writes verified keywords as potential_words_<timestamp>.csv.
func (s *Service) SaveDiscovery(records []trend.Record) (string, error) {
	if s.artifacts == nil {
		return "", fmt.Errorf("seo: save discovery: %w", apperr.ErrUnavailable)
	}
	data, err := render.TrendCSV(records)
	if err != nil {
		return "", err
	}
	p, err := s.artifacts.Write(fmt.Sprintf("potential_words_%s.csv", s.now().Format(stampLayout)), data)
	if err != nil {
		return "", fmt.Errorf("seo: save discovery: %w", err)
	}
	return p, nil
}

// SaveBatch writes the batch summary CSV under name.
func (s *Service) SaveBatch(results []BatchResult, name string) (string, error) {
	if s.artifacts == nil {
		return "", fmt.Errorf("seo: save batch: %w", apperr.ErrUnavailable)
	}
	data, err := render.BatchCSV(BatchRows(results))
	if err != nil {
		return "", err
	}
	p, err := s.artifacts.Write(name, data)
	if err != nil {
		return "", fmt.Errorf("seo: save batch: %w", err)
	}
	return p, nil
}
