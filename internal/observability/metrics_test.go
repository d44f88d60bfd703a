package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/api/medicines", "GET", 200, 15*time.Millisecond)
	m.RecordRequest("/api/medicines", "GET", 200, 5*time.Millisecond)
	m.RecordError("/api/medicines", "POST", "UNAUTHORIZED")
	m.RecordAuthDenial("/api/medicines")
	m.RecordCacheLookup("admin_stats", true)
	m.RecordCacheLookup("admin_stats", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCount.WithLabelValues("/api/medicines", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorCount.WithLabelValues("/api/medicines", "POST", "UNAUTHORIZED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authDenials.WithLabelValues("/api/medicines")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("admin_stats", "hit")))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "X")
		m.RecordAuthDenial("/")
		m.RecordCacheLookup("c", true)
	})
	assert.Nil(t, m.Registry())
}
