package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := New(reg)
	require.NoError(t, err)

	rec.ObserveRequest("/api/s3/{bucket}/upload-object", http.MethodPost, 200, 10*time.Millisecond)
	rec.ObserveRequest("/api/s3/{bucket}/upload-object", http.MethodPost, 200, 20*time.Millisecond)
	rec.ObserveRequest("", http.MethodGet, 404, time.Millisecond)
	rec.RecordPart("stored", 10)
	rec.RecordPart("store-rejected", 3)
	rec.RecordTransfer("upload", 10)
	rec.RecordTransfer("download", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.requests.WithLabelValues("/api/s3/{bucket}/upload-object", "POST", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.requests.WithLabelValues("unmatched", "GET", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.parts.WithLabelValues("stored")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.parts.WithLabelValues("store-rejected")))
	assert.Equal(t, 10.0, testutil.ToFloat64(rec.bytes.WithLabelValues("upload")))
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.bytes.WithLabelValues("download")))
	assert.Equal(t, 2, testutil.CollectAndCount(rec.duration))
}

func TestNewReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := New(reg)
	require.NoError(t, err)
	second, err := New(reg)
	require.NoError(t, err)

	second.RecordPart("stored", 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(first.parts.WithLabelValues("stored")))
}

func TestNilRecorder(t *testing.T) {
	var rec *Recorder
	assert.NotPanics(t, func() {
		rec.ObserveRequest("/", "GET", 200, time.Second)
		rec.RecordPart("stored", 1)
		rec.RecordTransfer("upload", 1)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := New(reg)
	require.NoError(t, err)
	rec.RecordTransfer("download", 42)

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `gateway_transfer_bytes_total{direction="download"} 42`)
}
