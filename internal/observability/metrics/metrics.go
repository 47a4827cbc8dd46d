package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics exposes Prometheus primitives for the HTTP surface and the
// chain gateway.
type HTTPMetrics struct {
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	chainCalls   *prometheus.CounterVec
	chainLatency *prometheus.HistogramVec
}

// NewHTTPMetrics registers and returns the HTTP metrics instruments.
func NewHTTPMetrics() *HTTPMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chaintrace_http_requests_total",
		Help: "Counts HTTP requests by method, route, and status.",
	}, []string{"method", "route", "status"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chaintrace_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	chainCalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chaintrace_chain_calls_total",
		Help: "Counts ledger gateway calls by operation and outcome.",
	}, []string{"operation", "outcome"})

	chainLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "chaintrace_chain_call_duration_seconds",
		Help: "Ledger gateway call latency by operation.",
		// Confirmation waits dominate; stretch the upper buckets.
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"operation"})

	prometheus.MustRegister(requests, duration, chainCalls, chainLatency)

	return &HTTPMetrics{
		requests:     requests,
		duration:     duration,
		chainCalls:   chainCalls,
		chainLatency: chainLatency,
	}
}

// RecordChainCall observes one gateway call.
func (m *HTTPMetrics) RecordChainCall(operation string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	operation = strings.TrimSpace(operation)
	m.chainCalls.WithLabelValues(operation, outcome).Inc()
	m.chainLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
