package domain

import (
	"strings"
	"time"
)

// Urgency is the closed three-value classification of a notification.
// Values outside the enumeration are carried verbatim and classified to defaults.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// Source tells where a notification came from.
type Source string

const (
	// SourceGenerated notifications were produced by signal/interest matching.
	// They are the only ones a user may delete.
	SourceGenerated Source = "generated"
	// SourcePersisted notifications come from the backend notification store.
	SourcePersisted Source = "persisted"
)

// Notification is the core domain entity.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Category  string    `json:"category"`
	Urgency   Urgency   `json:"urgency"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	Source    Source    `json:"source"`
	SignalID  string    `json:"signal_id,omitempty"`
}

// Generated reports whether n was produced from a matched signal.
func (n Notification) Generated() bool {
	return n.Source == SourceGenerated
}

// FilterMode selects which subset of an inbox is displayed.
type FilterMode string

const (
	FilterAll    FilterMode = "all"
	FilterUnread FilterMode = "unread"
	FilterHigh   FilterMode = "high"
)

// ParseFilterMode maps a query value to a FilterMode. Matching is case-insensitive.
func ParseFilterMode(s string) (FilterMode, bool) {
	switch FilterMode(strings.ToLower(strings.TrimSpace(s))) {
	case FilterAll:
		return FilterAll, true
	case FilterUnread:
		return FilterUnread, true
	case FilterHigh:
		return FilterHigh, true
	}
	return FilterAll, false
}

// Counts holds the badge count of every filter mode.
type Counts struct {
	All    int `json:"all"`
	Unread int `json:"unread"`
	High   int `json:"high"`
}

// Of returns the count for mode. Unknown modes fall back to All.
func (c Counts) Of(mode FilterMode) int {
	switch mode {
	case FilterUnread:
		return c.Unread
	case FilterHigh:
		return c.High
	default:
		return c.All
	}
}

// Signal is an inbound feed or alert item that may turn into generated
// notifications once matched against user interests.
type Signal struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Category    string    `json:"category"`
	Urgency     Urgency   `json:"urgency"`
	PublishedAt time.Time `json:"published_at"`
	// UserID targets a single user (a personal alert). Empty means broadcast
	// to every user whose interests match.
	UserID string `json:"user_id,omitempty"`
	// Alert marks signals raised by an alert rule rather than the news feed.
	Alert bool `json:"alert,omitempty"`
}

// CreateNotificationInput is a backend push to be persisted for one user.
type CreateNotificationInput struct {
	UserID        string
	Title         string
	Message       string
	Category      string
	Urgency       Urgency
	SourceEventID string
}

// IngestInput is produced by Kafka handlers. Exactly one field is set.
type IngestInput struct {
	Signal *Signal
	Push   *CreateNotificationInput
}
