// Package metrics exposes Prometheus counters for keyword analysis activity.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Lookup outcomes for trend and search counters.
const (
	OutcomeFound = "found"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

var (
	analyses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "seoscout_keyword_analyses_total",
		Help: "Total keyword analyses by classified intent",
	}, []string{"intent"})

	outlines = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "seoscout_outlines_generated_total",
		Help: "Total outlines generated by outline kind",
	}, []string{"kind"})

	trendLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "seoscout_trend_lookups_total",
		Help: "Total keyword trend lookups by outcome",
	}, []string{"outcome"})

	searches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "seoscout_search_requests_total",
		Help: "Total search engine requests by outcome",
	}, []string{"outcome"})

	registerOnce sync.Once
)

// Init registers the collectors with the default registry.
// Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(analyses, outlines, trendLookups, searches)
	})
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAnalysis counts one keyword analysis.
func RecordAnalysis(intent string) {
	analyses.WithLabelValues(intent).Inc()
}

// RecordOutline counts one generated outline.
func RecordOutline(kind string) {
	outlines.WithLabelValues(kind).Inc()
}

// RecordTrendLookup counts one keyword trend lookup.
func RecordTrendLookup(outcome string) {
	trendLookups.WithLabelValues(outcome).Inc()
}

// RecordSearch counts one search engine request.
func RecordSearch(outcome string) {
	searches.WithLabelValues(outcome).Inc()
}
