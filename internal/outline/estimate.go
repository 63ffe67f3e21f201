package outline

import "strings"

// Fallbacks for sections that carry no estimate.
const (
	defaultSectionWords   = 500
	defaultSectionMinutes = 3
)

// WordCount sums the section word counts of o.
func WordCount(o Outline) int {
	total := 0
	for _, s := range o.Sections {
		if s.WordCount <= 0 {
			total += defaultSectionWords
			continue
		}
		total += s.WordCount
	}
	return total
}

// ReadingTime sums the section reading times of o, in minutes.
func ReadingTime(o Outline) int {
	total := 0
	for _, s := range o.Sections {
		if s.ReadingTime <= 0 {
			total += defaultSectionMinutes
			continue
		}
		total += s.ReadingTime
	}
	return total
}

// TargetKeywords returns the case-insensitive union of the main keyword and
// every section's target keywords: main keyword first, the rest in order of
// first appearance.
func TargetKeywords(o Outline, main string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(kw string) {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k == "" {
			return
		}
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}

	add(main)
	for _, s := range o.Sections {
		for _, kw := range s.TargetKeywords {
			add(kw)
		}
	}
	return out
}
