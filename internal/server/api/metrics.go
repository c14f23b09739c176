package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "finkeeper",
			Subsystem: "http",
			Name:      "requests_total",
		},
		[]string{"method", "route", "status"},
	)

	histogramResponseTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "finkeeper",
			Subsystem: "http",
			Name:      "histogram_response_time_seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"route"},
	)

	syncedExpensesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "finkeeper",
			Subsystem: "sync",
			Name:      "expenses_received_total",
		},
	)
)

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		histogramResponseTime.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
