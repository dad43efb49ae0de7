package http

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
)

// Client represents a connected SSE client.
type Client struct {
	userID string
	send   chan []byte
}

// Hub manages all active SSE client connections.
// Single-instance model: all broadcast is in-process.
type Hub struct {
	mu      sync.RWMutex
	clients map[string][]*Client // userID -> clients
}

// NewHub creates a new SSE Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string][]*Client)}
}

// Register adds a new SSE client.
func (h *Hub) Register(userID string, send chan []byte) *Client {
	c := &Client{userID: userID, send: send}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[userID] = append(h.clients[userID], c)

	log.Debug().Str("user", userID).Msg("SSE client connected")
	return c
}

// Unregister removes an SSE client.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.clients[c.userID]
	updated := make([]*Client, 0, len(clients))
	for _, existing := range clients {
		if existing != c {
			updated = append(updated, existing)
		}
	}

	if len(updated) == 0 {
		delete(h.clients, c.userID)
	} else {
		h.clients[c.userID] = updated
	}

	log.Debug().Str("user", c.userID).Msg("SSE client disconnected")
}

// Publish sends an event to every connected SSE client of a user.
// This satisfies the application.SSEHub interface.
func (h *Hub) Publish(userID, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := h.clients[userID]
	if len(clients) == 0 {
		return
	}

	msg, err := buildSSEMessage(event, payload)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("SSE payload encoding failed")
		return
	}

	for _, c := range clients {
		select {
		case c.send <- msg:
		default:
			// Client is slow/disconnected, skip
			log.Warn().Str("user", userID).Msg("SSE client send buffer full, skipping")
		}
	}
}

// ConnectedCount returns the total number of connected SSE clients.
func (h *Hub) ConnectedCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

// buildSSEMessage formats a payload as an SSE frame.
func buildSSEMessage(event string, payload any) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []byte("event: " + event + "\ndata: " + string(b) + "\n\n"), nil
}

// writeSSE writes one frame to w. Nothing is written when the payload cannot
// be encoded.
func writeSSE(w io.Writer, event string, payload any) error {
	msg, err := buildSSEMessage(event, payload)
	if err != nil {
		return err
	}
	_, err = w.Write(msg)
	return err
}
