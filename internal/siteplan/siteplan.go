// Package siteplan maps a classified keyword onto a static website plan
// template: site type, tech stack, page structure, monetization and so on.
package siteplan

import (
	"fmt"
	"strings"

	"github.com/starford/seoscout/internal/intent"
	"github.com/starford/seoscout/internal/outline"
)

// MaxLongtailKeywords bounds the longtail subset embedded in a plan.
const MaxLongtailKeywords = 10

// Site type labels. The outline generator falls back to substring matching
// on these when a plan lacks an explicit outline kind, so the marker words
// ("tool", "blog", "knowledge-base", "directory", "navigation") must stay in them.
const (
	TypeToolSite  = "Online tool site"
	TypeBlog      = "Blog / knowledge-base"
	TypeDirectory = "Directory / navigation portal"
)

// Plan is a structured recommendation for the website to build around a keyword.
type Plan struct {
	Keyword          string          `json:"keyword" yaml:"keyword"`
	Intent           intent.Category `json:"intent" yaml:"intent"`
	Type             string          `json:"type" yaml:"type"`
	OutlineKind      outline.Kind    `json:"outline_kind" yaml:"outline_kind"`
	CoreFeature      string          `json:"core_feature" yaml:"core_feature"`
	TechStack        string          `json:"tech_stack" yaml:"tech_stack"`
	Headline         string          `json:"headline" yaml:"headline"`
	H2Structure      []string        `json:"h2_structure" yaml:"h2_structure"`
	ContentStrategy  string          `json:"content_strategy" yaml:"content_strategy"`
	SEOStrategy      string          `json:"seo_strategy" yaml:"seo_strategy"`
	Monetization     string          `json:"monetization" yaml:"monetization"`
	TargetAudience   string          `json:"target_audience" yaml:"target_audience"`
	SuccessMetrics   string          `json:"success_metrics" yaml:"success_metrics"`
	LongtailCoverage int             `json:"longtail_coverage" yaml:"longtail_coverage"`
	LongtailKeywords []string        `json:"longtail_keywords" yaml:"longtail_keywords"`
}

// Source returns the subset of the plan the outline generator consumes.
func (p Plan) Source() outline.Source {
	return outline.Source{
		Keyword:     p.Keyword,
		Intent:      string(p.Intent),
		Type:        p.Type,
		OutlineKind: p.OutlineKind,
	}
}

type template struct {
	siteType        string
	outlineKind     outline.Kind
	coreFeature     string
	techStack       string
	headline        string
	h2Structure     []string
	contentStrategy string
	monetization    string
}

var templates = map[intent.Category]template{
	intent.Transactional: {
		siteType:        TypeToolSite,
		outlineKind:     outline.KindTool,
		coreFeature:     "Online {kw} service",
		techStack:       "Next.js + Vercel (free tier deployment)",
		headline:        "The most professional {kw} tool, results in 5 seconds",
		h2Structure:     []string{"1. Service overview", "2. Online tool", "3. Pricing plans", "4. User reviews", "5. FAQ"},
		contentStrategy: "Build pages around the tool's features, highlighting convenience and results",
		monetization:    "Free trial + paid subscription",
	},
	intent.Informational: {
		siteType:        TypeBlog,
		outlineKind:     outline.KindBlog,
		coreFeature:     "Expert {kw} tutorials and news",
		techStack:       "Hugo + GitHub Pages (free)",
		headline:        "The complete {kw} guide: from beginner to expert",
		h2Structure:     []string{"1. Fundamentals", "2. Advanced tutorials", "3. Case studies", "4. Common questions", "5. Recommended resources"},
		contentStrategy: "Build pages around tutorials and guides to establish authority",
		monetization:    "Ads + affiliate marketing + course sales",
	},
	intent.Navigational: {
		siteType:        TypeDirectory,
		outlineKind:     outline.KindDirectory,
		coreFeature:     "{kw} resource directory",
		techStack:       "Static HTML + GitHub Pages",
		headline:        "{kw}: your one-stop navigation hub",
		h2Structure:     []string{"1. Official resources", "2. Third-party tools", "3. Learning resources", "4. Community discussion", "5. Latest updates"},
		contentStrategy: "Build pages around resource navigation as a one-stop service",
		monetization:    "Ads + affiliate promotion",
	},
}

var audiences = map[intent.Category]string{
	intent.Transactional: "Users with a clear need to buy or use a product",
	intent.Informational: "Users who want to learn about or understand the topic",
	intent.Navigational:  "Users looking for a specific website or resource",
}

var metrics = map[intent.Category]string{
	intent.Transactional: "Conversion rate, paying users, average order value",
	intent.Informational: "Page views, time on page, subscribers",
	intent.Navigational:  "Visits, resource click-through rate, bounce rate",
}

const (
	defaultAudience = "General users"
	defaultMetrics  = "Page views"
)

// Build selects the template for c (informational when c is unknown) and
// parameterizes it with keyword and the longtail set.
func Build(keyword string, c intent.Category, longtails []string) Plan {
	tpl, ok := templates[c]
	if !ok {
		tpl = templates[intent.Default]
	}

	top := longtails[:min(MaxLongtailKeywords, len(longtails))]

	return Plan{
		Keyword:          keyword,
		Intent:           c,
		Type:             tpl.siteType,
		OutlineKind:      tpl.outlineKind,
		CoreFeature:      fill(tpl.coreFeature, keyword),
		TechStack:        tpl.techStack,
		Headline:         fill(tpl.headline, keyword),
		H2Structure:      append([]string(nil), tpl.h2Structure...),
		ContentStrategy:  tpl.contentStrategy,
		SEOStrategy:      fmt.Sprintf("Focus on the head term %q and cover %d longtail keywords", keyword, len(longtails)),
		Monetization:     tpl.monetization,
		TargetAudience:   TargetAudience(c),
		SuccessMetrics:   SuccessMetrics(c),
		LongtailCoverage: len(longtails),
		LongtailKeywords: append([]string{}, top...),
	}
}

// TargetAudience describes who a site for intent c serves.
func TargetAudience(c intent.Category) string {
	if a, ok := audiences[c]; ok {
		return a
	}
	return defaultAudience
}

// SuccessMetrics lists the KPIs that matter for intent c.
func SuccessMetrics(c intent.Category) string {
	if m, ok := metrics[c]; ok {
		return m
	}
	return defaultMetrics
}

func fill(tpl, keyword string) string {
	return strings.ReplaceAll(tpl, "{kw}", keyword)
}
