package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/splitbalance/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveAllocation("EQUAL", nil)
		m.ObserveBalance(metrics.ModeDisplay, time.Millisecond)
		m.ObservePublish("expense.recorded", nil)
		m.ObserveRequest(http.MethodGet, "/health", "200", time.Millisecond)
	})
	assert.Nil(t, m.Registry())
}

func TestMetrics_ObserveAllocation(t *testing.T) {
	m := metrics.New()
	m.ObserveAllocation("PERCENTAGE", nil)
	m.ObserveAllocation("PERCENTAGE", assert.AnError)
	m.ObserveAllocation("PERCENTAGE", assert.AnError)

	expected := `
# HELP splitbalance_split_allocations_total Split allocations by split type and result.
# TYPE splitbalance_split_allocations_total counter
splitbalance_split_allocations_total{result="error",split_type="PERCENTAGE"} 2
splitbalance_split_allocations_total{result="ok",split_type="PERCENTAGE"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"splitbalance_split_allocations_total"))
}

func TestMetrics_HandlerExposesInstruments(t *testing.T) {
	m := metrics.New()
	m.ObserveBalance(metrics.ModeBreakdown, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/v1/groups/:group_id/balance-data", "200", 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `splitbalance_balance_computations_total{mode="breakdown"} 1`)
	assert.Contains(t, body, "splitbalance_balance_computation_seconds_count 1")
	assert.Contains(t, body, `splitbalance_http_requests_total{method="GET",route="/api/v1/groups/:group_id/balance-data",status="200"} 1`)
}
