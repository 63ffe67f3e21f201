package trend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTimeframe is the interest window requested from the backend.
const DefaultTimeframe = "today 12-m"

// HTTPSource fetches interest-over-time series from a trends proxy:
//
//	GET {base}/api/interest?q=kw1&q=kw2&timeframe=today+12-m
//	{"series": {"kw1": [12, 40, ...], "kw2": []}}
type HTTPSource struct {
	baseURL   string
	timeframe string
	client    *http.Client
	limiter   *rate.Limiter
}

// NewHTTPSource creates a trends client. Requests are spaced at least
// minDelay apart.
func NewHTTPSource(baseURL string, timeout, minDelay time.Duration) *HTTPSource {
	limit := rate.Inf
	if minDelay > 0 {
		limit = rate.Every(minDelay)
	}
	return &HTTPSource{
		baseURL:   strings.TrimRight(baseURL, "/"),
		timeframe: DefaultTimeframe,
		client:    &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(limit, 1),
	}
}

type interestResponse struct {
	Series map[string][]float64 `json:"series"`
}

// Interest implements Source.
func (s *HTTPSource) Interest(ctx context.Context, keywords []string) (map[string]Stats, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	for _, kw := range keywords {
		q.Add("q", kw)
	}
	q.Set("timeframe", s.timeframe)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/interest?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("trend: build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("trend: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trend: backend returned status %d", resp.StatusCode)
	}

	var body interestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("trend: decode: %w", err)
	}

	out := make(map[string]Stats, len(body.Series))
	for kw, series := range body.Series {
		out[kw] = Summarize(series)
	}
	return out, nil
}
