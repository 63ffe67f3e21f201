package intent

import "strings"

// modifiers are prefixed to every base template, in this order.
var modifiers = []string{"2024", "online", "free", "new", "best", "top", "fast", "easy", "simple", "advanced"}

// longtailTemplates maps each category to phrase templates; "{kw}" marks the keyword.
var longtailTemplates = map[Category][]string{
	Transactional: {
		"{kw} best",
		"{kw} price",
		"{kw} buy online",
		"{kw} discount",
		"{kw} review",
		"{kw} vs",
		"{kw} comparison",
		"buy {kw}",
		"{kw} for sale",
		"{kw} deal",
		"{kw} cheap",
		"{kw} free",
		"{kw} template",
		"{kw} tool",
		"{kw} software",
		"{kw} app",
		"{kw} service",
		"{kw} provider",
		"{kw} company",
		"{kw} hire",
	},
	Informational: {
		"what is {kw}",
		"how to {kw}",
		"{kw} tutorial",
		"{kw} guide",
		"{kw} meaning",
		"{kw} examples",
		"why {kw}",
		"{kw} benefits",
		"{kw} tips",
		"{kw} tricks",
		"{kw} strategy",
		"{kw} definition",
		"{kw} vs",
		"{kw} introduction",
		"{kw} basics",
		"{kw} overview",
		"{kw} information",
		"{kw} learn",
		"{kw} understand",
		"{kw} explained",
	},
	Navigational: {
		"{kw} login",
		"{kw} official site",
		"{kw} contact",
		"{kw} support",
		"{kw} help",
		"{kw} documentation",
		"{kw} wiki",
		"{kw} dashboard",
		"{kw} account",
		"{kw} profile",
	},
}

// Expand derives up to count longtail queries from keyword. Candidates are
// built template-major, modifier-minor, deduplicated with the first
// occurrence winning, then truncated. A count below one yields an empty slice.
func Expand(keyword string, c Category, count int) []string {
	if count <= 0 {
		return []string{}
	}
	kw := Normalize(keyword)

	base, ok := longtailTemplates[c]
	if !ok {
		base = longtailTemplates[Default]
	}

	seen := make(map[string]struct{}, len(base)*(len(modifiers)+1))
	out := make([]string, 0, min(count, len(base)*(len(modifiers)+1)))
	add := func(s string) bool {
		if _, dup := seen[s]; dup {
			return false
		}
		seen[s] = struct{}{}
		out = append(out, s)
		return len(out) == count
	}

	for _, tpl := range base {
		phrase := strings.ReplaceAll(tpl, "{kw}", kw)
		if add(phrase) {
			return out
		}
		for _, m := range modifiers {
			if add(m + " " + phrase) {
				return out
			}
		}
	}
	return out
}
