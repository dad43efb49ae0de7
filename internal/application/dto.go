package application

import (
	"time"

	"io.ruvo/notification/internal/domain"
	"io.ruvo/notification/internal/inbox"
)

// Item is a notification with its display-ready affordances.
type Item struct {
	domain.Notification
	TimeAgo       string           `json:"time_ago"`
	UrgencyColor  inbox.ColorToken `json:"urgency_color"`
	UrgencyIcon   inbox.IconToken  `json:"urgency_icon"`
	CategoryEmoji string           `json:"category_emoji"`
	Deletable     bool             `json:"deletable"`
}

// Page is one filtered view of a user's inbox plus the badge counts of every mode.
type Page struct {
	Filter domain.FilterMode `json:"filter"`
	Items  []Item            `json:"data"`
	Counts domain.Counts     `json:"counts"`
}

// NewItem projects n for display at time now.
func NewItem(n domain.Notification, now time.Time) Item {
	return Item{
		Notification:  n,
		TimeAgo:       inbox.FormatTimeAgo(n.Timestamp, now),
		UrgencyColor:  inbox.UrgencyColor(n.Urgency),
		UrgencyIcon:   inbox.UrgencyIcon(n.Urgency),
		CategoryEmoji: inbox.CategoryEmoji(n.Category),
		Deletable:     n.Generated(),
	}
}
