// Package discover collects candidate hot keywords from search and trend feeds.
package discover

import (
	"regexp"
	"sort"
	"strings"
)

var (
	wordRe   = regexp.MustCompile(`\b[a-z]{3,}\b`)
	letterRe = regexp.MustCompile(`[a-z]`)
)

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true, "not": true,
	"you": true, "all": true, "can": true, "had": true, "her": true, "was": true,
	"one": true, "our": true, "out": true, "day": true, "get": true, "has": true,
	"him": true, "his": true, "how": true, "man": true, "new": true, "now": true,
	"old": true, "see": true, "two": true, "way": true, "who": true, "boy": true,
	"did": true, "its": true, "let": true, "put": true, "say": true, "she": true,
	"too": true, "use": true,
}

// filterStopWords is the short list FilterKeywords drops.
var filterStopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true, "not": true,
}

// ExtractKeywords returns the lowercase words of three or more letters in
// text, without stop words.
func ExtractKeywords(text string) []string {
	words := wordRe.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !stopWords[w] {
			out = append(out, w)
		}
	}
	return out
}

// FilterKeywords trims and lowercases keywords, dropping those outside 3..50
// bytes, those without a letter, and a few filler words. Duplicates are kept
// so TopKeywords can count them.
func FilterKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if len(kw) < 3 || len(kw) > 50 {
			continue
		}
		if !letterRe.MatchString(kw) || filterStopWords[kw] {
			continue
		}
		out = append(out, kw)
	}
	return out
}

// TopKeywords returns up to limit distinct keywords, most frequent first.
// Equal counts keep first-appearance order.
func TopKeywords(keywords []string, limit int) []string {
	counts := map[string]int{}
	var order []string
	for _, kw := range keywords {
		if counts[kw] == 0 {
			order = append(order, kw)
		}
		counts[kw]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if limit >= 0 && len(order) > limit {
		order = order[:limit]
	}
	if order == nil {
		return []string{}
	}
	return order
}
