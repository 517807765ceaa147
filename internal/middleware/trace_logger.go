package middleware

import (
	"time"

	"flightsearch/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// TraceLogger logs each request with the trace and span ids of its server
// span. Requests without a valid span are not logged.
func TraceLogger(log logger.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := trace.SpanFromContext(c.Request.Context()).SpanContext()
		if !sc.IsValid() {
			c.Next()
			return
		}

		traceID := sc.TraceID().String()
		spanID := sc.SpanID().String()
		c.Set("trace_id", traceID)
		c.Set("span_id", spanID)

		log.Info("incoming request",
			logger.Field{Key: "trace_id", Value: traceID},
			logger.Field{Key: "span_id", Value: spanID},
			logger.Field{Key: "method", Value: c.Request.Method},
			logger.Field{Key: "path", Value: c.Request.URL.Path},
		)

		start := time.Now()
		c.Next()

		log.Info("request completed",
			logger.Field{Key: "trace_id", Value: traceID},
			logger.Field{Key: "span_id", Value: spanID},
			logger.Field{Key: "status", Value: c.Writer.Status()},
			logger.Field{Key: "method", Value: c.Request.Method},
			logger.Field{Key: "path", Value: c.Request.URL.Path},
			logger.Field{Key: "latency", Value: time.Since(start)},
		)
	}
}
