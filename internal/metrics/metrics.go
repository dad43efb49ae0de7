// Package metrics holds the Prometheus collectors of the notification service.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SignalsIngested counts inbound Kafka records by kind (signal, push).
	SignalsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ruvo_signals_ingested_total",
			Help: "Inbound signals and pushes processed",
		},
		[]string{"kind"},
	)

	NotificationsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ruvo_notifications_generated_total",
		Help: "Notifications generated from matched signals",
	})

	NotificationsRead = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ruvo_notifications_read_total",
		Help: "Notifications transitioned from unread to read",
	})

	// NotificationsDeleted counts delete requests by outcome (deleted, ignored).
	NotificationsDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ruvo_notifications_deleted_total",
			Help: "Delete requests by outcome",
		},
		[]string{"outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	requestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)

// Middleware records request count and latency per route.
// The SSE stream is excluded from latency since it is long-lived.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)

			requestTotal.WithLabelValues(method, path, status).Inc()
			if path != "/notifications/stream" {
				requestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
			}
			return nil
		}
	}
}
