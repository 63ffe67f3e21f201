package intent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Examples(t *testing.T) {
	cases := map[string]Category{
		"buy AI generator": Transactional,
		"what is AI":       Informational,
		"facebook login":   Navigational,
		"best AI tool":     Transactional,
		"BUY Shoes":        Transactional,
		"quantum":          Informational,
		"":                 Informational,
		"python tutorial":  Informational,
		"github":           Navigational,
	}
	for kw, want := range cases {
		assert.Equal(t, want, Classify(kw), "keyword %q", kw)
	}
}

func TestClassify_Precedence(t *testing.T) {
	// Trigger words from several categories at once: earlier category wins.
	assert.Equal(t, Transactional, Classify("how to buy github login"))
	assert.Equal(t, Transactional, Classify("react vs vue"))
	assert.Equal(t, Informational, Classify("what is the youtube dashboard"))
	assert.Equal(t, Navigational, Classify("notion wiki"))
}

func TestClassify_WordBoundary(t *testing.T) {
	// "shopping" must not match the "shop" pattern, "whatever" not "what".
	assert.Equal(t, Informational, Classify("shopping"))
	assert.Equal(t, Informational, Classify("whatever"))
	assert.Equal(t, Navigational, Classify("brand name lookup"))
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, Transactional, ParseCategory(" Transactional "))
	assert.Equal(t, Navigational, ParseCategory("navigational"))
	assert.Equal(t, Informational, ParseCategory("commercial"))
	assert.Equal(t, Informational, ParseCategory(""))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "buy ai generator", Normalize("  Buy   AI\tgenerator "))
}

func TestExpand_Scenario(t *testing.T) {
	got := Expand("buy AI generator", Transactional, 5)
	require.Len(t, got, 5)
	assert.Equal(t, []string{
		"buy ai generator best",
		"2024 buy ai generator best",
		"online buy ai generator best",
		"free buy ai generator best",
		"new buy ai generator best",
	}, got)
	for _, s := range got {
		assert.Contains(t, s, "buy ai generator")
	}
}

func TestExpand_ZeroAndNegative(t *testing.T) {
	assert.Empty(t, Expand("seo", Informational, 0))
	assert.NotNil(t, Expand("seo", Informational, 0))
	assert.Empty(t, Expand("seo", Informational, -3))
}

func TestExpand_Properties(t *testing.T) {
	for _, c := range append(Categories(), Category("bogus")) {
		for _, n := range []int{1, 7, 11, 50, 500} {
			got := Expand("AI Writer", c, n)
			assert.LessOrEqual(t, len(got), n)

			seen := map[string]bool{}
			for _, s := range got {
				assert.NotEmpty(t, s)
				assert.True(t, strings.Contains(s, "ai writer"), "%q lacks keyword", s)
				assert.False(t, seen[s], "duplicate %q", s)
				seen[s] = true
			}
		}
	}
}

func TestExpand_ExhaustsCandidates(t *testing.T) {
	// Navigational has 10 templates, 11 candidates each, all unique.
	got := Expand("notion", Navigational, 1000)
	assert.Len(t, got, 110)
	assert.Equal(t, "notion login", got[0])
	assert.Equal(t, "advanced notion login", got[10])
	assert.Equal(t, "notion official site", got[11])
}

func TestExpand_UnknownCategoryFallsBack(t *testing.T) {
	assert.Equal(t, Expand("seo", Informational, 30), Expand("seo", Category("other"), 30))
}
