package router

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/expense-tracer/backend/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// URLMiddleware stores the public base URL of the API in the context
// so that handlers can build links.
func URLMiddleware(url *url.URL) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(models.ContextURL), strings.TrimSuffix(url.String(), "/"))
		c.Next()
	}
}

// RequestIDMiddleware passes the request ID on to the store so that
// database logs can be correlated with requests.
//
// It must be used after requestid.New().
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithValue(c.Request.Context(), models.ContextRequestID, requestid.Get(c))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

var metrics = []prometheus.Collector{
	requestCount,
	requestDuration,
}

// registerPrometheusMetrics registers all Prometheus metrics
// with the default registry.
func registerPrometheusMetrics() error {
	for _, c := range metrics {
		if err := prometheus.Register(c); err != nil {
			return fmt.Errorf("could not register %s with Prometheus: %w", c, err)
		}
	}

	return nil
}

// unregisterPrometheusMetrics unregisters all Prometheus metrics.
//
// This is needed to cleanly exit.
func unregisterPrometheusMetrics() bool {
	ok := true
	for _, c := range metrics {
		if !prometheus.Unregister(c) {
			ok = false
		}
	}

	return ok
}

var requestCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "requests_total",
		Help: "How many HTTP requests processed, partitioned by status code and HTTP method.",
	},
	[]string{"code", "method", "url"},
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "request_duration_seconds",
		Help: "The HTTP request latencies in seconds.",
	},
	[]string{"code", "method", "url"},
)

// MetricsMiddleware updates Prometheus metrics.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		elapsed := float64(time.Since(start)) / float64(time.Second)

		// Replace all URL parameters with their name to reduce cardinality
		// https://prometheus.io/docs/practices/naming/#labels
		url := c.Request.URL.Path
		for _, p := range c.Params {
			url = strings.Replace(url, p.Value, fmt.Sprintf(":%s", p.Key), 1)
		}

		requestDuration.WithLabelValues(status, c.Request.Method, url).Observe(elapsed)
		requestCount.WithLabelValues(status, c.Request.Method, url).Inc()
	}
}
