// Package intent classifies search keywords by searcher intent and derives
// longtail variants from them.
package intent

import (
	"regexp"
	"strings"
)

// Category is the inferred purpose behind a search keyword.
type Category string

// Intent categories.
const (
	Transactional Category = "transactional"
	Informational Category = "informational"
	Navigational  Category = "navigational"
)

// Default is returned when no rule matches and used as the fallback for
// unknown category values.
const Default = Informational

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case Transactional, Informational, Navigational:
		return true
	}
	return false
}

func (c Category) String() string { return string(c) }

// ParseCategory maps s onto a Category. Unknown values fall back to Default.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c
	}
	return Default
}

// Categories returns all categories in evaluation order.
func Categories() []Category {
	return []Category{Transactional, Informational, Navigational}
}

type rule struct {
	category Category
	patterns []*regexp.Regexp
}

// rules are evaluated in order; the first category with a matching pattern wins.
var rules = []rule{
	{Transactional, compile(
		`\b(buy|price|cost|cheap|discount|deal|sale|order|shop|store|purchase)\b`,
		`\b(best|top|review|compare|vs|alternative|service|provider|company)\b`,
		`\b(template|plugin|tool|software|app|generator|creator|maker)\b`,
		`\b(online|free|download|hire|freelancer)\b`,
	)},
	{Informational, compile(
		`\b(what|how|why|when|where|who|which)\b`,
		`\b(tutorial|guide|learn|understand|explain|tips|tricks|strategy)\b`,
		`\b(meaning|definition|vs|difference|similarity|examples|cases)\b`,
		`\b(about|info|information|overview|introduction|basics)\b`,
	)},
	{Navigational, compile(
		`\b(login|signin|portal|dashboard|account|profile)\b`,
		`\b(facebook|youtube|instagram|twitter|linkedin|github)\b`,
		`\b(company name|brand name|website|site|homepage)\b`,
		`\b(docs|documentation|wiki|help|support)\b`,
	)},
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// Classify returns the intent category of keyword. Matching is
// case-insensitive and never fails: unmatched input yields Default.
func Classify(keyword string) Category {
	kw := strings.ToLower(keyword)
	for _, r := range rules {
		for _, p := range r.patterns {
			if p.MatchString(kw) {
				return r.category
			}
		}
	}
	return Default
}

var spaceRe = regexp.MustCompile(`\s+`)

// Normalize lowercases keyword, trims it and collapses inner whitespace.
func Normalize(keyword string) string {
	return spaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(keyword)), " ")
}
