package discover

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywords(t *testing.T) {
	got := ExtractKeywords("The NEW iPhone launch: how to get one, 2024 edition")
	assert.Equal(t, []string{"iphone", "launch", "edition"}, got)
}

func TestFilterKeywords(t *testing.T) {
	in := []string{"  SEO Tools ", "ab", "the", "12345", "ok go", string(make([]byte, 51)), "rust"}
	assert.Equal(t, []string{"seo tools", "ok go", "rust"}, FilterKeywords(in))
}

func TestTopKeywords_FrequencyThenFirstSeen(t *testing.T) {
	words := []string{"b", "a", "c", "a", "b", "d", "a"}
	assert.Equal(t, []string{"a", "b", "c", "d"}, TopKeywords(words, 10))
	assert.Equal(t, []string{"a", "b"}, TopKeywords(words, 2))
	assert.Equal(t, []string{}, TopKeywords(nil, 5))
}

type fakeEngine struct {
	healthy  bool
	trending []string
	generic  []string
	err      error
}

func (f *fakeEngine) Healthy(context.Context) bool { return f.healthy }

func (f *fakeEngine) TrendingTopics(context.Context) ([]string, error) {
	return f.trending, f.err
}

func (f *fakeEngine) SearchAll(_ context.Context, queries []string, _ int) ([]string, error) {
	if len(queries) != len(GenericQueries) {
		return nil, errors.New("unexpected queries")
	}
	return f.generic, nil
}

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<title>Daily Search Trends</title>
<item><title>Solar eclipse</title></item>
<item><title>Eclipse glasses</title></item>
</channel></rss>`

func feedServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(feedXML))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFeedReader_Titles(t *testing.T) {
	srv := feedServer(t)
	titles, err := NewFeedReader(nil, time.Second).Titles(context.Background(), srv.URL+"/feed")
	require.NoError(t, err)
	assert.Equal(t, []string{"Solar eclipse", "Eclipse glasses"}, titles)
}

func TestCollect_MergesSources(t *testing.T) {
	srv := feedServer(t)
	engine := &fakeEngine{
		healthy:  true,
		trending: []string{"eclipse", "rocket"},
		generic:  []string{"rocket", "eclipse", "launch"},
	}
	feeds := NewFeedReader([]string{srv.URL + "/feed", srv.URL + "/broken"}, time.Second)

	got, err := NewCollector(engine, feeds, nil).Collect(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"eclipse", "rocket", "solar"}, got)
}

func TestCollect_UnhealthyEngineUsesFeedsOnly(t *testing.T) {
	srv := feedServer(t)
	engine := &fakeEngine{trending: []string{"never"}}
	got, err := NewCollector(engine, NewFeedReader([]string{srv.URL}, time.Second), nil).Collect(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"eclipse", "solar", "glasses"}, got)
}

func TestCollect_SourceErrorIsSkipped(t *testing.T) {
	engine := &fakeEngine{healthy: true, err: errors.New("boom"), generic: []string{"launch"}}
	got, err := NewCollector(engine, nil, nil).Collect(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"launch"}, got)
}
