package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"io.ruvo/notification/internal/metrics"
	"io.ruvo/notification/internal/transport/mw"
)

// NewRouter sets up all Echo routes and middleware.
func NewRouter(h *Handler, jwtSecret string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(metrics.Middleware())
	e.Use(mw.RequestLogger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
	}))

	// No auth required
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API — requires authentication
	v1 := e.Group("")
	v1.Use(mw.JWTAuth(jwtSecret))

	v1.GET("/notifications", h.ListNotifications)
	v1.GET("/notifications/counts", h.GetCounts)
	v1.POST("/notifications/sync", h.Sync)
	v1.PATCH("/notifications/:id/read", h.MarkRead)
	v1.POST("/notifications/read-all", h.MarkAllRead)
	v1.DELETE("/notifications/:id", h.Delete)

	v1.GET("/interests", h.ListInterests)
	v1.POST("/interests/:name/toggle", h.ToggleInterest)

	// SSE endpoint
	v1.GET("/notifications/stream", h.Stream)

	return e
}
