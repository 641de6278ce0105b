package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveImport("sheet", "done", 120*time.Millisecond)
	m.ObserveImport("sheet", "done", 80*time.Millisecond)
	m.ObserveImport("pdf", "error", time.Millisecond)
	m.SetRoutes(42)
	m.IncExport("csv", "time")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.importsTotal.WithLabelValues("sheet", "done")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.importsTotal.WithLabelValues("pdf", "error")))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.routesLoaded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exportsTotal.WithLabelValues("csv", "time")))
}

func TestMetrics_NilSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.ObserveImport("sheet", "done", time.Second)
	m.SetRoutes(1)
	m.IncExport("xlsx", "stops")
}

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()

	m := New()
	m.SetRoutes(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "romaneio_routes_loaded 3"), rec.Body.String())
}
