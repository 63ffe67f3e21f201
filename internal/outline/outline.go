// Package outline expands a site plan into a hierarchical content outline
// with word-count and reading-time estimates.
package outline

import (
	"fmt"
	"strings"

	"github.com/starford/seoscout/internal/apperr"
)

// Kind selects the outline template.
type Kind string

// Outline kinds.
const (
	KindTool      Kind = "tool"
	KindBlog      Kind = "blog"
	KindDirectory Kind = "directory"
	KindGeneric   Kind = "generic"
)

// Valid reports whether k is a known outline kind.
func (k Kind) Valid() bool {
	switch k {
	case KindTool, KindBlog, KindDirectory, KindGeneric:
		return true
	}
	return false
}

// Source is the persisted plan contract consumed by Generate.
type Source struct {
	Keyword     string `json:"keyword" yaml:"keyword"`
	Intent      string `json:"intent" yaml:"intent"`
	Type        string `json:"type" yaml:"type"`
	OutlineKind Kind   `json:"outline_kind,omitempty" yaml:"outline_kind,omitempty"`
}

// Validate rejects plans missing any required key.
func (s Source) Validate() error {
	var missing []string
	if strings.TrimSpace(s.Keyword) == "" {
		missing = append(missing, "keyword")
	}
	if strings.TrimSpace(s.Intent) == "" {
		missing = append(missing, "intent")
	}
	if strings.TrimSpace(s.Type) == "" {
		missing = append(missing, "type")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", apperr.ErrInvalidPlan, strings.Join(missing, ", "))
	}
	return nil
}

// Section is one H2 block of an outline.
type Section struct {
	H2             string   `json:"H2" yaml:"H2"`
	ContentType    string   `json:"content_type" yaml:"content_type"`
	WordCount      int      `json:"word_count" yaml:"word_count"`
	ReadingTime    int      `json:"reading_time" yaml:"reading_time"`
	KeyPoints      []string `json:"key_points" yaml:"key_points"`
	TargetKeywords []string `json:"target_keywords" yaml:"target_keywords"`
}

// Outline is the content skeleton for a single page.
type Outline struct {
	H1       string    `json:"H1" yaml:"H1"`
	Type     Kind      `json:"type" yaml:"type"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// Result is an outline together with its aggregated estimates.
type Result struct {
	Keyword              string   `json:"keyword"`
	Intent               string   `json:"intent"`
	SiteType             string   `json:"site_type"`
	Outline              Outline  `json:"outline"`
	WordCount            int      `json:"word_count"`
	TargetKeywords       []string `json:"target_keywords"`
	EstimatedReadingTime int      `json:"estimated_reading_time"`
}

type marker struct {
	kind   Kind
	tokens []string
}

// markers are checked in order against a plan's free-text type label. The
// CJK tokens match plan files written by older releases.
var markers = []marker{
	{KindTool, []string{"tool", "工具"}},
	{KindBlog, []string{"blog", "knowledge-base", "博客", "知识库"}},
	{KindDirectory, []string{"directory", "navigation", "导航"}},
}

// SelectKind picks the outline template for src. An explicit, valid
// OutlineKind wins; otherwise the type label is matched against markers,
// falling back to KindGeneric.
func SelectKind(src Source) Kind {
	if src.OutlineKind.Valid() {
		return src.OutlineKind
	}
	return KindForType(src.Type)
}

// KindForType dispatches on marker substrings of a site type label.
func KindForType(siteType string) Kind {
	lower := strings.ToLower(siteType)
	for _, m := range markers {
		for _, tok := range m.tokens {
			if strings.Contains(lower, tok) {
				return m.kind
			}
		}
	}
	return KindGeneric
}

// Generate builds the outline for src. A plan missing keyword, intent or
// type is a structural error; an unmatched type yields the generic outline.
func Generate(src Source) (*Result, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	o := Build(SelectKind(src), src.Keyword)
	return &Result{
		Keyword:              src.Keyword,
		Intent:               src.Intent,
		SiteType:             src.Type,
		Outline:              o,
		WordCount:            WordCount(o),
		TargetKeywords:       TargetKeywords(o, src.Keyword),
		EstimatedReadingTime: ReadingTime(o),
	}, nil
}

// Build expands the template for kind with keyword. Unknown kinds use the
// generic template.
func Build(kind Kind, keyword string) Outline {
	tpl, ok := templates[kind]
	if !ok {
		kind, tpl = KindGeneric, templates[KindGeneric]
	}
	sections := make([]Section, len(tpl.sections))
	for i, s := range tpl.sections {
		sections[i] = Section{
			H2:             fill(s.h2, keyword),
			ContentType:    s.contentType,
			WordCount:      s.wordCount,
			ReadingTime:    s.readingTime,
			KeyPoints:      fillAll(s.keyPoints, keyword),
			TargetKeywords: fillAll(s.targetKeywords, keyword),
		}
	}
	return Outline{
		H1:       fill(tpl.h1, keyword),
		Type:     kind,
		Sections: sections,
	}
}

func fill(tpl, keyword string) string {
	return strings.ReplaceAll(tpl, "{kw}", keyword)
}

func fillAll(tpls []string, keyword string) []string {
	out := make([]string, len(tpls))
	for i, t := range tpls {
		out[i] = fill(t, keyword)
	}
	return out
}
