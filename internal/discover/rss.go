package discover

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"
)

// DefaultFeeds are the Google Trends daily search feeds.
var DefaultFeeds = []string{
	"https://trends.google.com/trending/searches/daily/rss?geo=US",
	"https://trends.google.com/trending/searches/daily/rss?geo=GB",
}

// FeedReader fetches item titles from RSS feeds.
type FeedReader struct {
	urls   []string
	client *http.Client
}

// NewFeedReader creates a reader over urls; nil uses DefaultFeeds.
func NewFeedReader(urls []string, timeout time.Duration) *FeedReader {
	if urls == nil {
		urls = DefaultFeeds
	}
	return &FeedReader{urls: urls, client: &http.Client{Timeout: timeout}}
}

type rssDoc struct {
	Channel struct {
		Title string `xml:"title"`
		Items []struct {
			Title string `xml:"title"`
		} `xml:"item"`
	} `xml:"channel"`
}

// Titles fetches one feed and returns its item titles. The channel title is
// not included.
func (r *FeedReader) Titles(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("discover: build request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discover: fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discover: feed returned status %d", resp.StatusCode)
	}

	var doc rssDoc
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("discover: parse feed: %w", err)
	}
	titles := make([]string, 0, len(doc.Channel.Items))
	for _, it := range doc.Channel.Items {
		titles = append(titles, it.Title)
	}
	return titles, nil
}
