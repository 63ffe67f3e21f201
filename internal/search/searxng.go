// Package search wraps a SearXNG instance for keyword discovery.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/starford/seoscout/internal/metrics"
)

// Engine is the engine name written to search history.
const Engine = "searxng"

// TrendingQueries seed TrendingTopics.
var TrendingQueries = []string{
	"trending today",
	"popular now",
	"viral topics",
	"hot news",
	"latest trends",
}

// HistoryRecorder stores one row per executed search.
type HistoryRecorder interface {
	RecordSearch(ctx context.Context, keyword, engine string, results int) error
}

// Client talks to SearXNG's JSON API.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	history HistoryRecorder
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHistory logs every search through h.
func WithHistory(h HistoryRecorder) Option {
	return func(c *Client) { c.history = h }
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRateLimit caps requests per second. Zero or less disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// New creates a SearXNG client.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(1), 1),
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Healthy reports whether GET /health answers 200.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("search: health check failed", slog.String("error", err.Error()))
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type searchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search runs query and returns up to 2*limit distinct words taken from the
// titles and snippets of the first limit results.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("pageno", "1")
	q.Set("time_range", "month")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("search: build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordSearch(metrics.OutcomeError)
		return nil, fmt.Errorf("search: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordSearch(metrics.OutcomeError)
		return nil, fmt.Errorf("search: engine returned status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.RecordSearch(metrics.OutcomeError)
		return nil, fmt.Errorf("search: decode: %w", err)
	}

	results := body.Results
	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}

	var words []string
	seen := map[string]bool{}
	for _, r := range results {
		for _, w := range strings.Fields(strings.ToLower(r.Title + " " + r.Content)) {
			w = strings.Trim(w, `.,!?()[]{}"'-`)
			if len(w) <= 3 || !isAlpha(w) || seen[w] {
				continue
			}
			seen[w] = true
			words = append(words, w)
		}
	}
	if limit >= 0 && len(words) > 2*limit {
		words = words[:2*limit]
	}

	if len(words) == 0 {
		metrics.RecordSearch(metrics.OutcomeEmpty)
	} else {
		metrics.RecordSearch(metrics.OutcomeFound)
	}
	if c.history != nil {
		if err := c.history.RecordSearch(ctx, query, Engine, len(words)); err != nil {
			c.logger.Warn("search: record history failed", slog.String("error", err.Error()))
		}
	}
	return words, nil
}

// TrendingTopics searches every TrendingQueries entry and merges the results.
// Failed queries are logged and skipped.
func (c *Client) TrendingTopics(ctx context.Context) ([]string, error) {
	return c.searchAll(ctx, TrendingQueries, 20)
}

// Related returns up to ten words found when searching query, excluding the
// query itself.
func (c *Client) Related(ctx context.Context, query string) ([]string, error) {
	words, err := c.Search(ctx, query, 15)
	if err != nil {
		return nil, err
	}
	related := make([]string, 0, 10)
	for _, w := range words {
		if strings.EqualFold(w, query) {
			continue
		}
		related = append(related, w)
		if len(related) == 10 {
			break
		}
	}
	return related, nil
}

// SearchAll runs each query with the given limit and merges distinct words in
// first-seen order.
func (c *Client) SearchAll(ctx context.Context, queries []string, limit int) ([]string, error) {
	return c.searchAll(ctx, queries, limit)
}

func (c *Client) searchAll(ctx context.Context, queries []string, limit int) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, q := range queries {
		words, err := c.Search(ctx, q, limit)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			c.logger.Warn("search: query failed", slog.String("query", q), slog.String("error", err.Error()))
			continue
		}
		for _, w := range words {
			if !seen[w] {
				seen[w] = true
				out = append(out, w)
			}
		}
	}
	return out, nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return s != ""
}
