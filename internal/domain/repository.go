package domain

import "context"

// Repository defines the port for persisted notifications.
// Implementations live in infrastructure/postgres.
type Repository interface {
	// Create stores a pushed notification and returns it with Source=persisted.
	// A duplicate SourceEventID returns (nil, nil).
	Create(ctx context.Context, input CreateNotificationInput) (*Notification, error)

	// ListForUser returns the user's persisted notifications, newest first.
	ListForUser(ctx context.Context, userID string, limit int) ([]Notification, error)

	// PurgeOlderThan deletes notifications older than the given number of days (TTL cleanup).
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
}

// InterestStore keeps each user's interest list (profile screen).
type InterestStore interface {
	List(ctx context.Context, userID string) ([]string, error)
	Save(ctx context.Context, userID string, interests []string) error
}
