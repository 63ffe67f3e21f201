package discover

import (
	"context"
	"log/slog"
)

// GenericQueries are searched as the third keyword source.
var GenericQueries = []string{
	"what's trending",
	"popular searches",
	"viral topics",
	"hot keywords",
	"trending now",
}

// SearchEngine is the subset of the search client the collector uses.
type SearchEngine interface {
	Healthy(ctx context.Context) bool
	TrendingTopics(ctx context.Context) ([]string, error)
	SearchAll(ctx context.Context, queries []string, limit int) ([]string, error)
}

// Collector merges keywords from the search engine and trend feeds.
type Collector struct {
	engine SearchEngine
	feeds  *FeedReader
	logger *slog.Logger
}

// NewCollector creates a Collector. Either source may be nil.
func NewCollector(engine SearchEngine, feeds *FeedReader, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{engine: engine, feeds: feeds, logger: logger}
}

// Collect gathers keywords from every source, filters them and returns up to
// limit by frequency. A failing source is logged and skipped.
func (c *Collector) Collect(ctx context.Context, limit int) ([]string, error) {
	c.logger.Info("discover: collecting hot words", slog.Int("limit", limit))

	var all []string
	healthy := c.engine != nil && c.engine.Healthy(ctx)
	if c.engine != nil && !healthy {
		c.logger.Warn("discover: search engine is not available")
	}

	if healthy {
		words, err := c.engine.TrendingTopics(ctx)
		c.add(&all, "search", words, err)
	}
	if c.feeds != nil {
		words := c.fromFeeds(ctx)
		c.add(&all, "feeds", words, nil)
	}
	if healthy {
		words, err := c.engine.SearchAll(ctx, GenericQueries, 10)
		c.add(&all, "generic", words, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	top := TopKeywords(FilterKeywords(all), limit)
	c.logger.Info("discover: collection complete", slog.Int("keywords", len(top)))
	return top, nil
}

func (c *Collector) add(all *[]string, source string, words []string, err error) {
	if err != nil {
		c.logger.Error("discover: source failed", slog.String("source", source), slog.String("error", err.Error()))
		return
	}
	c.logger.Info("discover: source collected", slog.String("source", source), slog.Int("keywords", len(words)))
	*all = append(*all, words...)
}

func (c *Collector) fromFeeds(ctx context.Context) []string {
	var words []string
	for _, url := range c.feeds.urls {
		titles, err := c.feeds.Titles(ctx, url)
		if err != nil {
			c.logger.Warn("discover: feed failed", slog.String("url", url), slog.String("error", err.Error()))
			continue
		}
		for _, t := range titles {
			words = append(words, ExtractKeywords(t)...)
		}
	}
	return words
}
