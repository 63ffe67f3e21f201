package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorders_Increment(t *testing.T) {
	before := testutil.ToFloat64(analyses.WithLabelValues("transactional"))
	RecordAnalysis("transactional")
	RecordAnalysis("transactional")
	assert.Equal(t, before+2, testutil.ToFloat64(analyses.WithLabelValues("transactional")))

	before = testutil.ToFloat64(outlines.WithLabelValues("tool"))
	RecordOutline("tool")
	assert.Equal(t, before+1, testutil.ToFloat64(outlines.WithLabelValues("tool")))

	before = testutil.ToFloat64(trendLookups.WithLabelValues(OutcomeEmpty))
	RecordTrendLookup(OutcomeEmpty)
	assert.Equal(t, before+1, testutil.ToFloat64(trendLookups.WithLabelValues(OutcomeEmpty)))
}

func TestHandler_ExposesCounters(t *testing.T) {
	Init()
	Init()
	RecordSearch(OutcomeFound)

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.True(t, strings.Contains(string(body), "seoscout_search_requests_total"))
}
