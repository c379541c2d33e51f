// Package metrics exposes the prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grocerystore_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grocerystore_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "path", "status"},
	)

	orderOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grocerystore_order_operations_total",
			Help: "Total number of order operations by outcome",
		},
		[]string{"operation", "status"},
	)

	stockMovements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grocerystore_stock_units_total",
			Help: "Grocery units removed from or returned to stock",
		},
		[]string{"direction"},
	)
)

// Middleware records request count and latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// RecordOrderOperation counts one order operation. outcome is "success" or
// the error kind that ended it.
func RecordOrderOperation(operation, outcome string) {
	orderOperations.WithLabelValues(operation, outcome).Inc()
}

func RecordStockMovement(direction string, units int) {
	stockMovements.WithLabelValues(direction).Add(float64(units))
}
