package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_catalog/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample so counters are non-zero
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveRebuild("ok", 3)
	observability.ObserveSupplier("acme", 2)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	assert.Contains(t, out, "hotels_http_requests_total")
	assert.Contains(t, out, `hotels_catalog_rebuilds_total{outcome="ok"}`)
	assert.Contains(t, out, "hotels_catalog_size 3")
	assert.Contains(t, out, `hotels_supplier_records_total{supplier="acme"}`)
}

func TestLabelErr(t *testing.T) {
	assert.Equal(t, "none", observability.LabelErr(nil))
	assert.Equal(t, "*errors.errorString", observability.LabelErr(io.EOF))
}
