package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"flightsearch/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	router := gin.New()
	router.Use(Metrics(m))
	router.GET("/v1/flights/:searchId/facets", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/healthz", "/healthz", "/v1/flights/abc/facets", "/v1/flights/xyz/facets", "/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("/healthz", "GET", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("/v1/flights/:searchId/facets", "GET", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("unknown", "GET", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RequestsInFlight.WithLabelValues("/healthz")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.RequestDuration))
}

func TestTraceLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("logs requests carrying a span", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.NewWithWriter("production", &buf)

		router := gin.New()
		router.Use(TraceLogger(log))
		var gotTraceID any
		router.GET("/ping", func(c *gin.Context) {
			gotTraceID, _ = c.Get("trace_id")
			c.Status(http.StatusNoContent)
		})

		traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
		require.NoError(t, err)
		spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
		require.NoError(t, err)
		ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    traceID,
			SpanID:     spanID,
			TraceFlags: trace.FlagsSampled,
		}))

		req := httptest.NewRequest(http.MethodGet, "/ping", nil).WithContext(ctx)
		router.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", gotTraceID)
		assert.Contains(t, buf.String(), `"message":"incoming request"`)
		assert.Contains(t, buf.String(), `"message":"request completed"`)
		assert.Contains(t, buf.String(), `"status":204`)
	})

	t.Run("skips requests without a span", func(t *testing.T) {
		var buf bytes.Buffer
		router := gin.New()
		router.Use(TraceLogger(logger.NewWithWriter("production", &buf)))
		router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Empty(t, buf.String())
	})
}
