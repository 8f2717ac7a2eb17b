package telemetry

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP metrics
var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests received, partitioned by method, route and status class.",
		},
		[]string{"method", "route", "status_class"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds, partitioned by method, route and status class.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5},
		},
		[]string{"method", "route", "status_class"},
	)
)

// Domain metrics
var (
	rentalsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rentals_created_total",
			Help: "Total number of rentals successfully opened.",
		},
	)

	rentalsCreateFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentals_create_failed_total",
			Help: "Total number of rejected rental creations, partitioned by reason.",
		},
		[]string{"reason"}, // reasons: validation | not_found | out_of_stock | db
	)

	rentalsReturnedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rentals_returned_total",
			Help: "Total number of rentals closed via the return endpoint.",
		},
	)

	rentalsOpenCurrent = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rentals_open_current",
			Help: "Current number of open rentals known to the service (approximate).",
		},
	)

	delayFeesChargedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "delay_fees_charged_total",
			Help: "Sum of delay fees charged at return time.",
		},
	)
)

// Catalog metrics
var (
	categoriesCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "categories_created_total",
			Help: "Total number of categories successfully created.",
		},
	)

	gamesCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "games_created_total",
			Help: "Total number of games successfully created.",
		},
	)

	customersCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "customers_created_total",
			Help: "Total number of customers successfully created.",
		},
	)
)

// Event metrics
var (
	eventsPublishedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of domain events published to Kafka.",
		},
	)

	eventsFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_failed_total",
			Help: "Total number of domain events dropped, partitioned by reason.",
		},
		[]string{"reason"}, // reasons: schema | kafka | queue_full
	)

	eventQueueCurrent = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "event_queue_current",
			Help: "Current number of items in the in-process event queue (approximate).",
		},
	)
)

// InitMetrics called on startup
func InitMetrics() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDurationSeconds,
		rentalsCreatedTotal,
		rentalsCreateFailedTotal,
		rentalsReturnedTotal,
		rentalsOpenCurrent,
		delayFeesChargedTotal,
		categoriesCreatedTotal,
		gamesCreatedTotal,
		customersCreatedTotal,
		eventsPublishedTotal,
		eventsFailedTotal,
		eventQueueCurrent,
	)
}

// PrometheusMiddleware measures one HTTP request: increments counter and observes latency.
// It uses gin.Context.FullPath() to record the *route template* (e.g., /rentals/:id/return).
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next() // execute handler chain

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		method := c.Request.Method
		status := c.Writer.Status()
		statusClass := fmt.Sprintf("%dxx", status/100)

		httpRequestsTotal.WithLabelValues(method, route, statusClass).Inc()
		httpRequestDurationSeconds.WithLabelValues(method, route, statusClass).Observe(time.Since(start).Seconds())
	}
}

// MetricsHandler exposes /metrics in Prometheus text exposition format.
func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
