package metrics

import (
	"errors"
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

	m.ObserveBookOperation("add_transaction", time.Now(), nil)
	m.ObserveBookOperation("add_transaction", time.Now(), errors.New("boom"))
	m.ObserveBookOperation("add_transaction", time.Now(), nil)
	m.IncrTransaction("kafka", nil)
	m.IncrOutboxMessage("processed")
	m.IncrHTTPRequest("/api/v1/books/:user_id", 404)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookOperations.WithLabelValues("add_transaction", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookOperations.WithLabelValues("add_transaction", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transactions.WithLabelValues("kafka", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outboxMessages.WithLabelValues("processed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/v1/books/:user_id", "4xx")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.bookOperationDuration))
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	first, second := New(), New()
	first.IncrTransaction("http", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(first.transactions.WithLabelValues("http", OutcomeSuccess)))
	assert.Equal(t, 0.0, testutil.ToFloat64(second.transactions.WithLabelValues("http", OutcomeSuccess)))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.IncrTransaction("http", nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `zeppelin_transactions_total{outcome="success",source="http"} 1`)
}

func TestStatusClass(t *testing.T) {
	testCases := map[int]string{200: "2xx", 202: "2xx", 301: "3xx", 409: "4xx", 503: "5xx"}
	for status, expected := range testCases {
		assert.Equal(t, expected, statusClass(status))
	}
}
