package inbox

import (
	"strings"
	"time"

	"io.ruvo/notification/internal/domain"
	"io.ruvo/notification/internal/messages"
)

// Matches reports whether sig is relevant to a user with the given interests.
// An interest matches when it occurs, case-insensitively, in the signal's
// category or title. Signals targeted at a user are not interest-gated; the
// caller is responsible for routing them to that user only.
func Matches(sig domain.Signal, interests []string) bool {
	if sig.UserID != "" {
		return true
	}
	category := strings.ToLower(sig.Category)
	title := strings.ToLower(sig.Title)
	for _, interest := range interests {
		kw := strings.ToLower(strings.TrimSpace(interest))
		if kw == "" {
			continue
		}
		if strings.Contains(category, kw) || strings.Contains(title, kw) {
			return true
		}
	}
	return false
}

// FromSignal builds the generated notification for a matched signal.
// The signal's publication time is used as the timestamp when present.
func FromSignal(sig domain.Signal, id string, now time.Time) domain.Notification {
	var title, body string
	if sig.Alert {
		title, body = messages.Alert(sig.Title, sig.Summary, sig.Urgency == domain.UrgencyHigh)
	} else {
		title, body = messages.FeedMatch(sig.Category, sig.Title, sig.Summary)
	}

	ts := sig.PublishedAt
	if ts.IsZero() {
		ts = now
	}

	return domain.Notification{
		ID:        id,
		UserID:    sig.UserID,
		Title:     title,
		Message:   body,
		Category:  sig.Category,
		Urgency:   sig.Urgency,
		Timestamp: ts,
		Source:    domain.SourceGenerated,
		SignalID:  sig.ID,
	}
}

// ContainsSignal reports whether a notification generated from signalID is present.
func ContainsSignal(ns []domain.Notification, signalID string) bool {
	if signalID == "" {
		return false
	}
	for _, n := range ns {
		if n.Generated() && n.SignalID == signalID {
			return true
		}
	}
	return false
}
