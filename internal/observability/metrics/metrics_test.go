package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("outcome", "success"),
		attribute.String("client_id", "456"),
		attribute.String("role", "admin"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "outcome" && attrs[1].Key != "outcome" {
		t.Fatalf("expected outcome to be retained")
	}
	if attrs[0].Key != "role" && attrs[1].Key != "role" {
		t.Fatalf("expected role to be retained")
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordLogin(context.Background(), "success", "admin")
	m.RecordRegistration(context.Background(), "created")
	m.RecordFeedback(context.Background())
	m.RecordAlert(context.Background(), "raised")
	m.RecordPumpState(context.Background(), "ON")
}

func TestNewWithNoopProvider(t *testing.T) {
	m, err := New(Config{ServiceName: "waterline"}, noop.NewMeterProvider())
	require.NoError(t, err)
	m.RecordLogin(context.Background(), "failure", "")
	m.RecordDistribution(context.Background(), 12.5)
	m.RecordPumpState(context.Background(), "OFF")
}

func TestFilterAttributesDropsEmptyValues(t *testing.T) {
	attrs := FilterAttributes(attribute.String("outcome", "failure"), attribute.String("role", " "))
	require.Len(t, attrs, 1)
	assert.Equal(t, attribute.Key("outcome"), attrs[0].Key)
}

func TestHTTPMetricsGinMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	httpMetrics, err := NewHTTPMetricsWithRegistry(reg)
	require.NoError(t, err)

	router := gin.New()
	router.Use(GinMiddleware(httpMetrics))
	router.GET("/home-stats/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/home-stats/", nil))
	}

	count := testutil.ToFloat64(httpMetrics.requests.WithLabelValues(http.MethodGet, "/home-stats/", "200"))
	assert.Equal(t, 2.0, count)

	var latency dto.Metric
	observer := httpMetrics.duration.WithLabelValues(http.MethodGet, "/home-stats/")
	require.NoError(t, observer.(prometheus.Histogram).Write(&latency))
	assert.Equal(t, uint64(2), latency.GetHistogram().GetSampleCount())
}
