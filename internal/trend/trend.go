// Package trend scores keyword popularity series and verifies keyword lists
// against a trends backend.
package trend

import (
	"math"
	"sort"
)

// Record is the verified trend data for one keyword. A zero SearchVolume with
// a zero TrendScore means the backend had no data.
type Record struct {
	Keyword      string  `json:"word"`
	SearchVolume int     `json:"search_volume"`
	MaxVolume    int     `json:"max_volume"`
	TrendScore   float64 `json:"trend_score"`
	IsRising     bool    `json:"is_rising"`
}

// HasData reports whether the backend returned anything for the keyword.
func (r Record) HasData() bool {
	return r.SearchVolume > 0 || r.TrendScore > 0
}

// Category buckets the record's trend score.
func (r Record) Category() Category {
	return Categorize(r.TrendScore)
}

// EstimatedVolume is EstimateSearchVolume for the record's score and peak.
func (r Record) EstimatedVolume() int {
	return EstimateSearchVolume(r.TrendScore, r.MaxVolume)
}

// Stats summarises one keyword's interest series.
type Stats struct {
	AvgVolume  int
	MaxVolume  int
	TrendScore float64
	IsRising   bool
}

// Category buckets a trend score.
type Category string

// Trend categories.
const (
	Hot       Category = "hot"
	Rising    Category = "rising"
	Stable    Category = "stable"
	Declining Category = "declining"
)

const (
	recentWindow = 30
	risingWindow = 7
	risingFactor = 1.2
)

// Summarize computes Stats for an interest-over-time series.
func Summarize(series []float64) Stats {
	if len(series) == 0 {
		return Stats{}
	}
	return Stats{
		AvgVolume:  int(mean(series)),
		MaxVolume:  int(peak(series)),
		TrendScore: Score(series),
		IsRising:   IsRising(series),
	}
}

// Score rates a series 0-100 as the mean of its last 30 points relative to
// its peak, rounded to two decimals.
func Score(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	p := peak(series)
	if p <= 0 {
		return 0
	}
	score := mean(tail(series, recentWindow)) / p * 100
	return math.Round(math.Min(score, 100)*100) / 100
}

// IsRising reports whether the last week averages 20% above the week before.
// Series shorter than two weeks never rise.
func IsRising(series []float64) bool {
	if len(series) < 2*risingWindow {
		return false
	}
	last := tail(series, 2*risingWindow)
	previous := mean(last[:risingWindow])
	recent := mean(last[risingWindow:])
	return recent > previous*risingFactor
}

// Categorize buckets score into hot, rising, stable or declining.
func Categorize(score float64) Category {
	switch {
	case score >= 70:
		return Hot
	case score >= 40:
		return Rising
	case score >= 20:
		return Stable
	default:
		return Declining
	}
}

// EstimateSearchVolume is a rough volume estimate from a score and the peak volume.
func EstimateSearchVolume(score float64, maxVolume int) int {
	var factor float64
	switch Categorize(score) {
	case Hot:
		factor = 0.8
	case Rising:
		factor = 0.5
	case Stable:
		factor = 0.3
	default:
		factor = 0.1
	}
	return int(float64(maxVolume) * factor)
}

// Filter keeps records scoring at least minScore.
func Filter(records []Record, minScore float64) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.TrendScore >= minScore {
			out = append(out, r)
		}
	}
	return out
}

// Top returns up to limit records ordered by score, highest first. Records
// with equal scores keep their input order.
func Top(records []Record, limit int) []Record {
	sorted := append([]Record(nil), records...)
	sortByScore(sorted)
	if limit >= 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted
}

func sortByScore(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TrendScore > records[j].TrendScore
	})
}

func tail(series []float64, n int) []float64 {
	if len(series) <= n {
		return series
	}
	return series[len(series)-n:]
}

func mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	var sum float64
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}

func peak(series []float64) float64 {
	m := math.Inf(-1)
	for _, v := range series {
		m = math.Max(m, v)
	}
	return m
}
