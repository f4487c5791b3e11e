package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.APIRequest("series", 200)
	m.APIRequest("series", 200)
	m.APIRequest("games", 0)
	m.HTTPRequest("/api/seasons", 200)
	m.ReportBuilt(150*time.Millisecond, 42)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.apiRequests.WithLabelValues("series", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.apiRequests.WithLabelValues("games", "0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/seasons", "200")))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.seasonsLoaded))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.APIRequest("series", 200)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `mfpstats_upstream_requests_total{endpoint="series",status="200"} 1`)
}
