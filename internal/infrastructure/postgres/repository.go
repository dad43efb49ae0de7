package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"io.ruvo/notification/internal/domain"
)

// Schema creates the notifications table if it does not exist.
const Schema = `
CREATE TABLE IF NOT EXISTS notifications (
	id              UUID PRIMARY KEY,
	user_id         TEXT        NOT NULL,
	title           TEXT        NOT NULL,
	message         TEXT        NOT NULL DEFAULT '',
	category        TEXT        NOT NULL DEFAULT '',
	urgency         TEXT        NOT NULL DEFAULT 'low',
	is_read         BOOLEAN     NOT NULL DEFAULT FALSE,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	source_event_id TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS notifications_source_event_id_key
	ON notifications (source_event_id) WHERE source_event_id IS NOT NULL;
CREATE INDEX IF NOT EXISTS notifications_user_created_idx
	ON notifications (user_id, created_at DESC);
`

const selectColumns = `id, user_id, title, message, category, urgency, is_read, created_at`

// Repository is the PostgreSQL implementation of domain.Repository.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new postgres Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Migrate applies Schema.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate notifications: %w", err)
	}
	return nil
}

// Create inserts a pushed notification.
func (r *Repository) Create(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error) {
	var sourceEventID *string
	if input.SourceEventID != "" {
		sourceEventID = &input.SourceEventID
	}

	urgency := input.Urgency
	if urgency == "" {
		urgency = domain.UrgencyLow
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO notifications (id, user_id, title, message, category, urgency, source_event_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (source_event_id) WHERE source_event_id IS NOT NULL DO NOTHING
		RETURNING `+selectColumns,
		uuid.New(), input.UserID, input.Title, input.Message, input.Category, string(urgency), sourceEventID)

	n, err := scanNotification(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Duplicate source_event_id, idempotent — not an error
			return nil, nil
		}
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	return n, nil
}

// ListForUser fetches the user's most recent notifications.
func (r *Repository) ListForUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+selectColumns+`
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var results []domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return results, nil
}

// PurgeOlderThan deletes notifications older than the given number of days.
func (r *Repository) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM notifications WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}

// scannable is satisfied by pgx.Row and pgx.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanNotification(row scannable) (*domain.Notification, error) {
	var (
		n       domain.Notification
		id      uuid.UUID
		urgency string
	)

	err := row.Scan(&id, &n.UserID, &n.Title, &n.Message, &n.Category, &urgency, &n.Read, &n.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("scan notification: %w", err)
	}
	n.ID = id.String()
	n.Urgency = domain.Urgency(urgency)
	n.Source = domain.SourcePersisted
	return &n, nil
}
