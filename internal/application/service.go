package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"io.ruvo/notification/internal/domain"
	"io.ruvo/notification/internal/inbox"
	"io.ruvo/notification/internal/metrics"
)

// Event names sent to SSE subscribers.
const (
	EventCounts       = "counts"
	EventNotification = "notification"
	EventRemoved      = "removed"
)

// defaultSyncLimit caps how many persisted notifications a sync pulls.
const defaultSyncLimit = 200

// SSEHub is the interface for pushing events to connected SSE clients.
// Implementation lives in transport/http/sse_hub.go.
type SSEHub interface {
	Publish(userID, event string, payload any)
}

// Service holds all notification use-cases.
type Service struct {
	repo      domain.Repository
	interests domain.InterestStore
	hub       SSEHub
	store     *Store

	// mu orders inbox writes with the events they publish, so subscribers
	// see counts in the order the writes happened.
	mu sync.Mutex

	now       func() time.Time
	newID     func() string
	syncLimit int
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces the uuid generator used for generated notifications.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithSyncLimit sets how many persisted notifications a sync pulls.
func WithSyncLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.syncLimit = limit
		}
	}
}

// NewService creates a new application Service.
func NewService(repo domain.Repository, interests domain.InterestStore, hub SSEHub, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		interests: interests,
		hub:       hub,
		store:     NewStore(),
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
		syncLimit: defaultSyncLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync pulls the user's persisted notifications and merges them into the inbox.
func (s *Service) Sync(ctx context.Context, userID string) (domain.Counts, error) {
	persisted, err := s.repo.ListForUser(ctx, userID, s.syncLimit)
	if err != nil {
		return domain.Counts{}, fmt.Errorf("list persisted notifications: %w", err)
	}

	s.mu.Lock()
	after := s.store.Activate(userID, func(current []domain.Notification) []domain.Notification {
		return inbox.Merge(current, persisted)
	})
	counts := inbox.CountAll(after)
	s.hub.Publish(userID, EventCounts, counts)
	s.mu.Unlock()

	log.Debug().
		Str("user", userID).
		Int("persisted", len(persisted)).
		Int("total", counts.All).
		Msg("inbox synced")

	return counts, nil
}

// View returns the user's inbox under mode, projected for display.
func (s *Service) View(userID string, mode domain.FilterMode) Page {
	ns := s.store.Snapshot(userID)
	now := s.now()

	visible := inbox.Filter(ns, mode)
	items := make([]Item, 0, len(visible))
	for _, n := range visible {
		items = append(items, NewItem(n, now))
	}
	return Page{Filter: mode, Items: items, Counts: inbox.CountAll(ns)}
}

// Counts returns the badge counts of the user's inbox.
func (s *Service) Counts(userID string) domain.Counts {
	return inbox.CountAll(s.store.Snapshot(userID))
}

// MarkRead marks a single notification as read. Unknown ids are ignored.
func (s *Service) MarkRead(userID, id string) domain.Counts {
	s.mu.Lock()
	defer s.mu.Unlock()

	before, after := s.store.Update(userID, func(current []domain.Notification) []domain.Notification {
		return inbox.MarkRead(current, id)
	})
	counts := inbox.CountAll(after)
	if changed := inbox.CountAll(before).Unread - counts.Unread; changed > 0 {
		metrics.NotificationsRead.Add(float64(changed))
		s.hub.Publish(userID, EventCounts, counts)
		log.Debug().Str("user", userID).Str("id", id).Msg("notification marked read")
	}
	return counts
}

// MarkAllRead marks every notification of the user as read.
func (s *Service) MarkAllRead(userID string) (int, domain.Counts) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed int
	_, after := s.store.Update(userID, func(current []domain.Notification) []domain.Notification {
		var out []domain.Notification
		out, changed = inbox.MarkAllRead(current)
		return out
	})
	counts := inbox.CountAll(after)
	if changed > 0 {
		metrics.NotificationsRead.Add(float64(changed))
		s.hub.Publish(userID, EventCounts, counts)
	}
	log.Debug().Str("user", userID).Int("marked", changed).Msg("inbox marked read")
	return changed, counts
}

// Delete removes a generated notification. Persisted and unknown ids are ignored.
// It reports whether anything was removed. A deleted notification stays gone
// even if its signal is delivered again.
func (s *Service) Delete(userID, id string) (bool, domain.Counts) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, after := s.store.Delete(userID, id, s.now())
	counts := inbox.CountAll(after)

	if !deleted {
		metrics.NotificationsDeleted.WithLabelValues("ignored").Inc()
		log.Debug().Str("user", userID).Str("id", id).Msg("delete ignored: not a generated notification")
		return false, counts
	}

	metrics.NotificationsDeleted.WithLabelValues("deleted").Inc()
	s.hub.Publish(userID, EventRemoved, map[string]string{"id": id})
	s.hub.Publish(userID, EventCounts, counts)
	return true, counts
}

// Interests returns the user's interest list.
func (s *Service) Interests(ctx context.Context, userID string) ([]string, error) {
	interests, err := s.interests.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list interests: %w", err)
	}
	return interests, nil
}

// ToggleInterest adds or removes one interest and returns the new list.
func (s *Service) ToggleInterest(ctx context.Context, userID, name string) ([]string, error) {
	current, err := s.Interests(ctx, userID)
	if err != nil {
		return nil, err
	}
	next := inbox.ToggleInterest(current, name)
	if err := s.interests.Save(ctx, userID, next); err != nil {
		return nil, fmt.Errorf("save interests: %w", err)
	}

	log.Info().
		Str("user", userID).
		Str("interest", name).
		Bool("enabled", inbox.HasInterest(next, name)).
		Msg("interest toggled")
	return next, nil
}

// Ingest processes one inbound Kafka event: a backend push is persisted and
// appended to its user's inbox, a signal is matched against every active
// user's interests and turned into generated notifications.
func (s *Service) Ingest(ctx context.Context, in domain.IngestInput) error {
	switch {
	case in.Push != nil:
		metrics.SignalsIngested.WithLabelValues("push").Inc()
		return s.ingestPush(ctx, *in.Push)
	case in.Signal != nil:
		metrics.SignalsIngested.WithLabelValues("signal").Inc()
		return s.ingestSignal(ctx, *in.Signal)
	default:
		return fmt.Errorf("empty ingest input")
	}
}

func (s *Service) ingestPush(ctx context.Context, input domain.CreateNotificationInput) error {
	n, err := s.repo.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	if n == nil {
		// Duplicate source_event_id — idempotent, not an error.
		return nil
	}

	s.appendTo(n.UserID, *n)

	log.Info().
		Str("id", n.ID).
		Str("user", n.UserID).
		Str("urgency", string(n.Urgency)).
		Msg("persisted notification created and broadcast")
	return nil
}

// ingestSignal fans a broadcast signal out to active users only, those with
// an inbox since they last synced. Users who have not synced since the
// process started pick up nothing from it. Targeted signals reach their user
// either way.
func (s *Service) ingestSignal(ctx context.Context, sig domain.Signal) error {
	targets := s.store.Users()
	if sig.UserID != "" {
		targets = []string{sig.UserID}
	}

	generated := 0
	for _, userID := range targets {
		if sig.UserID == "" {
			interests, err := s.interests.List(ctx, userID)
			if err != nil {
				log.Warn().Err(err).Str("user", userID).Msg("interest lookup failed, skipping user")
				continue
			}
			if !inbox.Matches(sig, interests) {
				continue
			}
		}

		n := inbox.FromSignal(sig, s.newID(), s.now())
		n.UserID = userID
		if s.appendTo(userID, n) {
			generated++
		}
	}

	metrics.NotificationsGenerated.Add(float64(generated))
	log.Info().
		Str("signal", sig.ID).
		Str("category", sig.Category).
		Int("candidates", len(targets)).
		Int("generated", generated).
		Msg("signal matched")
	return nil
}

// appendTo adds n to the user's inbox unless its id, or the signal it was
// generated from, is already there or was deleted. It reports whether n was added.
func (s *Service) appendTo(userID string, n domain.Notification) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	added, after := s.store.Append(userID, n)
	if !added {
		return false
	}

	s.hub.Publish(userID, EventNotification, NewItem(n, s.now()))
	s.hub.Publish(userID, EventCounts, inbox.CountAll(after))
	return true
}

// PurgeTTL deletes old persisted notifications and drops generated ones past
// the same retention. Called by a background scheduler.
func (s *Service) PurgeTTL(ctx context.Context, days int) {
	count, err := s.repo.PurgeOlderThan(ctx, days)
	if err != nil {
		log.Error().Err(err).Msg("notification TTL purge failed")
	} else {
		log.Info().Int64("deleted", count).Int("older_than_days", days).Msg("notification TTL purge completed")
	}

	cutoff := s.now().AddDate(0, 0, -days)
	pruned := 0
	for _, userID := range s.store.Users() {
		pruned += s.prune(userID, cutoff)
	}
	expired := s.store.ExpireDeleted(cutoff)
	log.Info().Int("pruned", pruned).Int("expired_deletions", expired).Msg("generated notifications pruned")
}

func (s *Service) prune(userID string, cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int
	_, after := s.store.Update(userID, func(current []domain.Notification) []domain.Notification {
		var out []domain.Notification
		out, removed = inbox.PruneGenerated(current, cutoff)
		return out
	})
	if removed > 0 {
		s.hub.Publish(userID, EventCounts, inbox.CountAll(after))
	}
	return removed
}
