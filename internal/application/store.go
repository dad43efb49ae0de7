package application

import (
	"sort"
	"sync"
	"time"

	"io.ruvo/notification/internal/domain"
	"io.ruvo/notification/internal/inbox"
)

// Store holds the notification collection of every active user. It is the
// single source of truth the inbox mutators write back into; updates are
// serialized so they apply in the order they were dispatched.
//
// A user becomes active on Sync or when a notification is appended for them.
// No-op mutations on users without a collection do not create one.
type Store struct {
	mu      sync.RWMutex
	inboxes map[string][]domain.Notification
	// deleted records, per user, the signal ids whose generated notification
	// was deleted, and when. A redelivered signal must not bring it back.
	deleted map[string]map[string]time.Time
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		inboxes: make(map[string][]domain.Notification),
		deleted: make(map[string]map[string]time.Time),
	}
}

// Snapshot returns a copy of the user's collection.
func (s *Store) Snapshot(userID string) []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ns := s.inboxes[userID]
	out := make([]domain.Notification, len(ns))
	copy(out, ns)
	return out
}

// Activate replaces the user's collection with fn(current) and marks the user
// active even when the result is empty.
func (s *Store) Activate(userID string, fn func([]domain.Notification) []domain.Notification) (after []domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	after = fn(s.inboxes[userID])
	if after == nil {
		after = []domain.Notification{}
	}
	s.inboxes[userID] = after
	return after
}

// Update replaces the user's collection with fn(current) and returns the
// before and after collections. fn must not retain its argument.
func (s *Store) Update(userID string, fn func([]domain.Notification) []domain.Notification) (before, after []domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before = s.inboxes[userID]
	after = fn(before)
	s.put(userID, after)
	return before, after
}

// Append adds n to the user's collection unless its id is already present,
// or n is generated from a signal that is already present or was deleted.
func (s *Store) Append(userID string, n domain.Notification) (added bool, after []domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.inboxes[userID]
	for _, existing := range current {
		if existing.ID == n.ID {
			return false, current
		}
	}
	if n.Generated() && n.SignalID != "" {
		if _, gone := s.deleted[userID][n.SignalID]; gone {
			return false, current
		}
		if inbox.ContainsSignal(current, n.SignalID) {
			return false, current
		}
	}

	after = make([]domain.Notification, len(current), len(current)+1)
	copy(after, current)
	after = append(after, n)
	s.inboxes[userID] = after
	return true, after
}

// Delete removes a generated notification and remembers its signal so it
// cannot be appended again. It reports whether anything was removed.
func (s *Store) Delete(userID, id string, at time.Time) (removed bool, after []domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.inboxes[userID]
	var signalID string
	for _, n := range current {
		if n.ID == id {
			signalID = n.SignalID
			break
		}
	}
	if !inbox.Deletable(current, id) {
		return false, current
	}

	after = inbox.Delete(current, id)
	s.inboxes[userID] = after
	if signalID != "" {
		if s.deleted[userID] == nil {
			s.deleted[userID] = make(map[string]time.Time)
		}
		s.deleted[userID][signalID] = at
	}
	return true, after
}

// ExpireDeleted forgets deleted signals recorded before cutoff and returns
// how many were dropped.
func (s *Store) ExpireDeleted(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for userID, signals := range s.deleted {
		for signalID, at := range signals {
			if at.Before(cutoff) {
				delete(signals, signalID)
				expired++
			}
		}
		if len(signals) == 0 {
			delete(s.deleted, userID)
		}
	}
	return expired
}

// Users returns the ids of every user with a collection, sorted.
func (s *Store) Users() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]string, 0, len(s.inboxes))
	for u := range s.inboxes {
		users = append(users, u)
	}
	sort.Strings(users)
	return users
}

// put stores ns for the user. Must be called with mu held.
func (s *Store) put(userID string, ns []domain.Notification) {
	if _, ok := s.inboxes[userID]; !ok && len(ns) == 0 {
		return
	}
	s.inboxes[userID] = ns
}
