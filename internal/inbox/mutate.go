package inbox

import (
	"time"

	"io.ruvo/notification/internal/domain"
)

// MarkRead returns a copy of ns with notification id marked read.
// Unknown ids and already-read notifications leave the copy unchanged.
func MarkRead(ns []domain.Notification, id string) []domain.Notification {
	out := clone(ns)
	if i := indexOf(out, id); i >= 0 {
		out[i].Read = true
	}
	return out
}

// MarkAllRead returns a copy of ns with every notification read, and how many changed.
func MarkAllRead(ns []domain.Notification) ([]domain.Notification, int) {
	out := clone(ns)
	changed := 0
	for i := range out {
		if !out[i].Read {
			out[i].Read = true
			changed++
		}
	}
	return out, changed
}

// Delete returns a copy of ns without notification id, provided it is a
// generated notification. Persisted notifications are never removed.
func Delete(ns []domain.Notification, id string) []domain.Notification {
	if !Deletable(ns, id) {
		return clone(ns)
	}
	out := make([]domain.Notification, 0, len(ns)-1)
	for _, n := range ns {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}

// Deletable reports whether Delete(ns, id) would remove a notification.
func Deletable(ns []domain.Notification, id string) bool {
	i := indexOf(ns, id)
	return i >= 0 && ns[i].Generated()
}

// PruneGenerated drops generated notifications created before cutoff.
// Notifications without a timestamp are kept.
func PruneGenerated(ns []domain.Notification, cutoff time.Time) ([]domain.Notification, int) {
	out := make([]domain.Notification, 0, len(ns))
	for _, n := range ns {
		if n.Generated() && !n.Timestamp.IsZero() && n.Timestamp.Before(cutoff) {
			continue
		}
		out = append(out, n)
	}
	return out, len(ns) - len(out)
}

func indexOf(ns []domain.Notification, id string) int {
	for i := range ns {
		if ns[i].ID == id {
			return i
		}
	}
	return -1
}

func clone(ns []domain.Notification) []domain.Notification {
	out := make([]domain.Notification, len(ns))
	copy(out, ns)
	return out
}
