package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"io.ruvo/notification/internal/application"
	"io.ruvo/notification/internal/domain"
)

// Handler holds all HTTP handler methods.
type Handler struct {
	svc *application.Service
	hub *Hub
}

// NewHandler creates a new Handler.
func NewHandler(svc *application.Service, hub *Hub) *Handler {
	return &Handler{svc: svc, hub: hub}
}

// --- Notification Handlers ---

// ListNotifications GET /notifications?filter=all|unread|high
func (h *Handler) ListNotifications(c echo.Context) error {
	userID := mustUser(c)

	mode := domain.FilterAll
	if f := c.QueryParam("filter"); f != "" {
		parsed, ok := domain.ParseFilterMode(f)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "filter must be one of all, unread, high")
		}
		mode = parsed
	}

	return c.JSON(http.StatusOK, h.svc.View(userID, mode))
}

// GetCounts GET /notifications/counts
func (h *Handler) GetCounts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Counts(mustUser(c)))
}

// Sync POST /notifications/sync
func (h *Handler) Sync(c echo.Context) error {
	counts, err := h.svc.Sync(c.Request().Context(), mustUser(c))
	if err != nil {
		log.Error().Err(err).Msg("inbox sync failed")
		return echo.ErrBadGateway
	}
	return c.JSON(http.StatusOK, counts)
}

// MarkRead PATCH /notifications/:id/read
func (h *Handler) MarkRead(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.MarkRead(mustUser(c), c.Param("id")))
}

// MarkAllRead POST /notifications/read-all
func (h *Handler) MarkAllRead(c echo.Context) error {
	marked, counts := h.svc.MarkAllRead(mustUser(c))
	return c.JSON(http.StatusOK, map[string]any{"marked": marked, "counts": counts})
}

// Delete DELETE /notifications/:id
// Persisted notifications are silently kept; the response is the same.
func (h *Handler) Delete(c echo.Context) error {
	h.svc.Delete(mustUser(c), c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

// --- Interest Handlers ---

// ListInterests GET /interests
func (h *Handler) ListInterests(c echo.Context) error {
	interests, err := h.svc.Interests(c.Request().Context(), mustUser(c))
	if err != nil {
		log.Error().Err(err).Msg("list interests failed")
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, map[string]any{"interests": nonNil(interests)})
}

// ToggleInterest POST /interests/:name/toggle
func (h *Handler) ToggleInterest(c echo.Context) error {
	interests, err := h.svc.ToggleInterest(c.Request().Context(), mustUser(c), c.Param("name"))
	if err != nil {
		log.Error().Err(err).Msg("toggle interest failed")
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, map[string]any{"interests": nonNil(interests)})
}

// --- SSE Handler ---

// Stream GET /notifications/stream — SSE endpoint
func (h *Handler) Stream(c echo.Context) error {
	userID := mustUser(c)

	w := c.Response()
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	sendCh := make(chan []byte, 32)
	client := h.hub.Register(userID, sendCh)
	defer h.hub.Unregister(client)

	// Initial frame carries the current counts so the badge renders immediately.
	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"ok\"}\n\n")
	if err := writeSSE(w, application.EventCounts, h.svc.Counts(userID)); err != nil {
		log.Error().Err(err).Str("user", userID).Msg("SSE initial counts frame skipped")
	}
	w.Flush()

	log.Info().Str("user", userID).Msg("SSE stream opened")

	ctx := c.Request().Context()
	for {
		select {
		case msg, ok := <-sendCh:
			if !ok {
				return nil
			}
			if _, err := w.Write(msg); err != nil {
				return nil
			}
			w.Flush()

		case <-ctx.Done():
			log.Info().Str("user", userID).Msg("SSE stream closed by client")
			return nil
		}
	}
}

// --- Healthcheck ---

// Health GET /health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":      "ok",
		"sse_clients": h.hub.ConnectedCount(),
	})
}

// --- Helpers ---

func mustUser(c echo.Context) string {
	userID, _ := c.Get("userID").(string)
	return userID
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
