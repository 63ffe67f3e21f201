package trend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestScore(t *testing.T) {
	assert.Equal(t, 0.0, Score(nil))
	assert.Equal(t, 0.0, Score([]float64{0, 0, 0}))
	assert.Equal(t, 62.5, Score([]float64{10, 20, 30, 40}))

	// Only the last 30 points count toward the mean; the peak spans the series.
	series := append(repeat(100, 10), repeat(50, 30)...)
	assert.Equal(t, 50.0, Score(series))

	assert.Equal(t, 33.33, Score([]float64{0, 0, 100}))
}

func TestIsRising(t *testing.T) {
	assert.False(t, IsRising(repeat(10, 13)))
	assert.True(t, IsRising(append(repeat(10, 7), repeat(13, 7)...)))
	assert.False(t, IsRising(append(repeat(10, 7), repeat(11, 7)...)))
	// Older history is ignored.
	assert.True(t, IsRising(append(repeat(90, 20), append(repeat(10, 7), repeat(20, 7)...)...)))
}

func TestCategorize(t *testing.T) {
	cases := map[float64]Category{
		100: Hot, 70: Hot, 69.99: Rising, 40: Rising,
		39.9: Stable, 20: Stable, 19.99: Declining, 0: Declining,
	}
	for score, want := range cases {
		assert.Equal(t, want, Categorize(score), "score %v", score)
	}
}

func TestEstimateSearchVolume(t *testing.T) {
	assert.Equal(t, 800, EstimateSearchVolume(80, 1000))
	assert.Equal(t, 500, EstimateSearchVolume(50, 1000))
	assert.Equal(t, 300, EstimateSearchVolume(25, 1000))
	assert.Equal(t, 100, EstimateSearchVolume(5, 1000))
}

func TestFilterAndTop(t *testing.T) {
	records := []Record{
		{Keyword: "a", TrendScore: 10},
		{Keyword: "b", TrendScore: 80},
		{Keyword: "c", TrendScore: 50},
		{Keyword: "d", TrendScore: 80},
	}

	filtered := Filter(records, 50)
	require.Len(t, filtered, 3)
	assert.Equal(t, "b", filtered[0].Keyword)

	top := Top(records, 3)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"b", "d", "c"}, []string{top[0].Keyword, top[1].Keyword, top[2].Keyword})
	assert.Equal(t, "a", records[0].Keyword, "input must not be reordered")

	assert.Len(t, Top(records, 10), 4)
}

func TestSummarize(t *testing.T) {
	st := Summarize([]float64{10, 20, 30, 40})
	assert.Equal(t, Stats{AvgVolume: 25, MaxVolume: 40, TrendScore: 62.5}, st)
	assert.Equal(t, Stats{}, Summarize(nil))
}

type fakeSource struct {
	calls   [][]string
	data    map[string]Stats
	failOn  int
	failErr error
}

func (f *fakeSource) Interest(_ context.Context, keywords []string) (map[string]Stats, error) {
	f.calls = append(f.calls, append([]string(nil), keywords...))
	if f.failErr != nil && len(f.calls) == f.failOn {
		return nil, f.failErr
	}
	out := map[string]Stats{}
	for _, kw := range keywords {
		if st, ok := f.data[kw]; ok {
			out[kw] = st
		}
	}
	return out, nil
}

func TestVerifier_BatchesAndFilters(t *testing.T) {
	src := &fakeSource{data: map[string]Stats{
		"k1": {AvgVolume: 10, MaxVolume: 50, TrendScore: 20},
		"k3": {AvgVolume: 40, MaxVolume: 90, TrendScore: 70, IsRising: true},
		"k7": {AvgVolume: 5, MaxVolume: 10, TrendScore: 50},
	}}
	v := NewVerifier(src, 5, nil)

	keywords := []string{"k1", "k2", "k3", "k4", "k5", "k6", "k7"}
	got, err := v.Verify(context.Background(), keywords)
	require.NoError(t, err)

	require.Len(t, src.calls, 2)
	assert.Len(t, src.calls[0], 5)
	assert.Len(t, src.calls[1], 2)

	require.Len(t, got, 3)
	assert.Equal(t, "k3", got[0].Keyword)
	assert.True(t, got[0].IsRising)
	assert.Equal(t, "k7", got[1].Keyword)
	assert.Equal(t, "k1", got[2].Keyword)
}

func TestVerifier_LookupKeepsZeroRecords(t *testing.T) {
	src := &fakeSource{data: map[string]Stats{"a": {AvgVolume: 3, MaxVolume: 3, TrendScore: 100}}}
	got, err := NewVerifier(src, 0, nil).Lookup(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].HasData())
	assert.Equal(t, Record{Keyword: "b"}, got[1])
	assert.False(t, got[1].HasData())
}

func TestVerifier_FailedBatchIsSkipped(t *testing.T) {
	src := &fakeSource{
		data: map[string]Stats{
			"a": {AvgVolume: 1, MaxVolume: 1, TrendScore: 100},
			"c": {AvgVolume: 2, MaxVolume: 2, TrendScore: 100},
		},
		failOn:  1,
		failErr: errors.New("backend down"),
	}
	got, err := NewVerifier(src, 2, nil).Verify(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].Keyword)
}

func TestVerifier_EmptyInput(t *testing.T) {
	src := &fakeSource{}
	got, err := NewVerifier(src, 5, nil).Verify(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, src.calls)
}

func TestVerifier_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewVerifier(&fakeSource{}, 5, nil).Verify(ctx, []string{"a"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPSource_Interest(t *testing.T) {
	var gotQuery []string
	var gotTimeframe string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/interest", r.URL.Path)
		gotQuery = r.URL.Query()["q"]
		gotTimeframe = r.URL.Query().Get("timeframe")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"series": map[string][]float64{
				"seo tools": {10, 20, 30, 40},
				"empty":     {},
			},
		})
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/", time.Second, 0)
	got, err := src.Interest(context.Background(), []string{"seo tools", "empty", "missing"})
	require.NoError(t, err)

	assert.Equal(t, []string{"seo tools", "empty", "missing"}, gotQuery)
	assert.Equal(t, DefaultTimeframe, gotTimeframe)
	assert.Equal(t, Stats{AvgVolume: 25, MaxVolume: 40, TrendScore: 62.5}, got["seo tools"])
	assert.Equal(t, Stats{}, got["empty"])
	_, ok := got["missing"]
	assert.False(t, ok)
}

func TestHTTPSource_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, time.Second, 0).Interest(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestHTTPSource_FeedsVerifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		series := map[string][]float64{}
		for _, kw := range r.URL.Query()["q"] {
			if kw == "hot" {
				series[kw] = []float64{50, 100}
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"series": series})
	}))
	defer srv.Close()

	v := NewVerifier(NewHTTPSource(srv.URL, time.Second, time.Millisecond), 5, nil)
	got, err := v.Verify(context.Background(), []string{"cold", "hot"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Record{Keyword: "hot", SearchVolume: 75, MaxVolume: 100, TrendScore: 75}, got[0])
}

func TestRecord_CategoryAndEstimate(t *testing.T) {
	tests := []struct {
		score    float64
		category Category
		volume   int
	}{
		{75, Hot, 800},
		{45, Rising, 500},
		{20, Stable, 300},
		{5, Declining, 100},
	}
	for _, tt := range tests {
		r := Record{Keyword: "k", TrendScore: tt.score, MaxVolume: 1000}
		assert.Equal(t, tt.category, r.Category(), "score %v", tt.score)
		assert.Equal(t, tt.volume, r.EstimatedVolume(), "score %v", tt.score)
	}
}

func TestVerifier_EqualScoresKeepInputOrder(t *testing.T) {
	src := &fakeSource{data: map[string]Stats{
		"first":  {AvgVolume: 5, MaxVolume: 10, TrendScore: 50},
		"second": {AvgVolume: 6, MaxVolume: 10, TrendScore: 50},
		"third":  {AvgVolume: 9, MaxVolume: 10, TrendScore: 90},
	}}
	got, err := NewVerifier(src, 5, nil).Verify(context.Background(), []string{"first", "second", "third"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"third", "first", "second"}, []string{got[0].Keyword, got[1].Keyword, got[2].Keyword})
}
