package monitoring

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRegeneration(t *testing.T) {
	before := testutil.ToFloat64(regenerationsTotal.WithLabelValues("SOL"))

	RecordRegeneration("SOL", 234.82, 0.0001)

	assert.Equal(t, before+1, testutil.ToFloat64(regenerationsTotal.WithLabelValues("SOL")))
	assert.Equal(t, 234.82, testutil.ToFloat64(selectedPrice.WithLabelValues("SOL")))
}

func TestRecordFlashAndOrders(t *testing.T) {
	up := testutil.ToFloat64(flashesTotal.WithLabelValues("up"))
	RecordFlash("up")
	assert.Equal(t, up+1, testutil.ToFloat64(flashesTotal.WithLabelValues("up")))

	submitted := testutil.ToFloat64(ordersTotal.WithLabelValues("BTC", "buy", "submitted"))
	RecordOrder("BTC", "buy", "submitted")
	assert.Equal(t, submitted+1, testutil.ToFloat64(ordersTotal.WithLabelValues("BTC", "buy", "submitted")))
}

func TestMetricsHandler(t *testing.T) {
	RecordError("VALIDATION")

	rec := httptest.NewRecorder()
	NewMetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "nextrade_dashboard_errors_total")
}

func TestHealthChecker(t *testing.T) {
	h := NewHealthChecker()
	assert.Equal(t, "starting", h.Status().Status)

	h.MarkRegenerated("ETH", 3842.67)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var status HealthStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "ETH", status.Symbol)

	h.RecordError(errors.New("boom"))
	assert.Equal(t, "degraded", h.Status().Status)
}
