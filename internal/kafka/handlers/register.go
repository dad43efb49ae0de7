package handlers

import (
	"strings"
	"time"

	"io.ruvo/notification/internal/domain"
	"io.ruvo/notification/internal/kafka/registry"
)

// Topic names consumed by the service.
const (
	TopicFeed     = "feed-events"
	TopicAlerts   = "alert-events"
	TopicCommands = "notification-commands"
)

// Register is a convenience alias so each topic file calls Register(...)
// instead of registry.Register(...).
func Register(topic, eventType string, h registry.EventHandler) {
	registry.Register(topic, eventType, h)
}

// RegisterDirect registers a handler for topics that don't use eventType routing.
func RegisterDirect(topic string, h registry.EventHandler) {
	registry.Register(topic, "", h)
}

// normalizeUrgency lowercases known urgencies; anything else is carried
// verbatim and later classified to the default affordance.
func normalizeUrgency(s string, fallback domain.Urgency) domain.Urgency {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	switch u := domain.Urgency(strings.ToLower(s)); u {
	case domain.UrgencyHigh, domain.UrgencyMedium, domain.UrgencyLow:
		return u
	}
	return domain.Urgency(s)
}

// parseTimestamp reads an RFC3339 wire timestamp. Absent or malformed values
// yield the zero time, which renders as "Just now".
func parseTimestamp(raw string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}
	}
	return ts
}
