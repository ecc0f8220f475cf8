package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPRequestsTotal counts completed HTTP requests by route, method and status.
var HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "dompetku",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "Total HTTP requests handled.",
}, []string{"route", "method", "status"})

// HTTPRequestDuration tracks request latency per route.
var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "dompetku",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency in seconds.",
	Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
}, []string{"route"})

// ReceiptScansTotal counts receipt scan attempts by outcome.
var ReceiptScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "dompetku",
	Subsystem: "receipts",
	Name:      "scans_total",
	Help:      "Total receipt scan attempts by outcome.",
}, []string{"outcome"})

// MetricsMiddleware creates a Gin middleware handler that records request
// metrics. Unmatched routes (404s) are recorded under an empty route label.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "/metrics" {
			return
		}
		HTTPRequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
