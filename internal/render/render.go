// Package render turns analysis results into the files seoscout writes.
package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/seoscout/internal/outline"
	"github.com/starford/seoscout/internal/siteplan"
	"github.com/starford/seoscout/internal/trend"
)

// JSON encodes v with two-space indentation and a trailing newline.
func JSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("render: json: %w", err)
	}
	return buf.Bytes(), nil
}

// planHeader is the frontmatter of a plan Markdown file. It carries exactly
// the fields the outline generator needs, so the file is itself a plan source.
type planHeader struct {
	Keyword     string       `yaml:"keyword"`
	Intent      string       `yaml:"intent"`
	Type        string       `yaml:"type"`
	OutlineKind outline.Kind `yaml:"outline_kind"`
}

// PlanMarkdown renders a site plan as Markdown with YAML frontmatter.
func PlanMarkdown(p siteplan.Plan) ([]byte, error) {
	fm, err := yaml.Marshal(planHeader{
		Keyword:     p.Keyword,
		Intent:      string(p.Intent),
		Type:        p.Type,
		OutlineKind: p.OutlineKind,
	})
	if err != nil {
		return nil, fmt.Errorf("render: plan frontmatter: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# Site plan: %s\n\n", p.Keyword)
	fmt.Fprintf(&b, "- Type: %s\n", p.Type)
	fmt.Fprintf(&b, "- Core feature: %s\n", p.CoreFeature)
	fmt.Fprintf(&b, "- Tech stack: %s\n", p.TechStack)
	fmt.Fprintf(&b, "- Headline: %s\n", p.Headline)
	fmt.Fprintf(&b, "- Target audience: %s\n", p.TargetAudience)
	fmt.Fprintf(&b, "- Success metrics: %s\n", p.SuccessMetrics)
	b.WriteString("- H2 structure:\n")
	for _, h := range p.H2Structure {
		fmt.Fprintf(&b, "  - %s\n", h)
	}

	b.WriteString("\n## Strategy\n\n")
	fmt.Fprintf(&b, "- Content: %s\n", p.ContentStrategy)
	fmt.Fprintf(&b, "- SEO: %s\n", p.SEOStrategy)
	fmt.Fprintf(&b, "- Monetization: %s\n", p.Monetization)

	if len(p.LongtailKeywords) > 0 {
		fmt.Fprintf(&b, "\n## Longtail keywords (%d of %d)\n\n", len(p.LongtailKeywords), p.LongtailCoverage)
		for _, kw := range p.LongtailKeywords {
			fmt.Fprintf(&b, "- %s\n", kw)
		}
	}
	return b.Bytes(), nil
}

// OutlineMarkdown renders a generated outline. Every section lists its
// target keywords, and the document ends with their union.
func OutlineMarkdown(r *outline.Result) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\n", r.Outline.H1)
	fmt.Fprintf(&b, "_%s · %s · %d words · %d min read_\n\n", r.SiteType, r.Outline.Type, r.WordCount, r.EstimatedReadingTime)
	for _, s := range r.Outline.Sections {
		fmt.Fprintf(&b, "## %s\n\n", s.H2)
		fmt.Fprintf(&b, "_%s · %d words · %d min_\n\n", s.ContentType, s.WordCount, s.ReadingTime)
		if len(s.KeyPoints) > 0 {
			for _, p := range s.KeyPoints {
				fmt.Fprintf(&b, "- %s\n", p)
			}
			b.WriteString("\n")
		}
		if len(s.TargetKeywords) > 0 {
			fmt.Fprintf(&b, "Target keywords: %s\n\n", strings.Join(s.TargetKeywords, ", "))
		}
	}
	fmt.Fprintf(&b, "## Target keywords (%d)\n\n", len(r.TargetKeywords))
	for _, kw := range r.TargetKeywords {
		fmt.Fprintf(&b, "- %s\n", kw)
	}
	return b.Bytes()
}

// BatchRow is one line of the batch summary.
type BatchRow struct {
	Keyword       string
	Intent        string
	LongtailCount int
	SiteType      string
	Headline      string
}

// BatchHeader is the batch summary column order.
var BatchHeader = []string{"keyword", "intent", "longtail_count", "site_type", "headline"}

// BatchCSV renders the batch summary.
func BatchCSV(rows []BatchRow) ([]byte, error) {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, BatchHeader)
	for _, r := range rows {
		records = append(records, []string{r.Keyword, r.Intent, strconv.Itoa(r.LongtailCount), r.SiteType, r.Headline})
	}
	return writeCSV(records)
}

// TrendHeader is the verified keyword column order.
var TrendHeader = []string{"word", "search_volume", "max_volume", "trend_score", "is_rising", "category", "estimated_volume"}

// TrendCSV renders verified keywords. An empty list produces an empty file.
func TrendCSV(records []trend.Record) ([]byte, error) {
	if len(records) == 0 {
		return []byte{}, nil
	}
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, TrendHeader)
	for _, r := range records {
		rows = append(rows, []string{
			r.Keyword,
			strconv.Itoa(r.SearchVolume),
			strconv.Itoa(r.MaxVolume),
			strconv.FormatFloat(r.TrendScore, 'f', 2, 64),
			strconv.FormatBool(r.IsRising),
			string(r.Category()),
			strconv.Itoa(r.EstimatedVolume()),
		})
	}
	return writeCSV(rows)
}

func writeCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("render: csv: %w", err)
	}
	return buf.Bytes(), nil
}
