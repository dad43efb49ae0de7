package inbox

import "io.ruvo/notification/internal/domain"

// Filter returns the notifications visible under mode, in their original order.
// An unknown mode behaves like FilterAll.
func Filter(ns []domain.Notification, mode domain.FilterMode) []domain.Notification {
	out := make([]domain.Notification, 0, len(ns))
	for _, n := range ns {
		if matchesMode(n, mode) {
			out = append(out, n)
		}
	}
	return out
}

// CountAll computes the badge count of every mode over the full collection.
func CountAll(ns []domain.Notification) domain.Counts {
	c := domain.Counts{All: len(ns)}
	for _, n := range ns {
		if matchesMode(n, domain.FilterUnread) {
			c.Unread++
		}
		if matchesMode(n, domain.FilterHigh) {
			c.High++
		}
	}
	return c
}

// matchesMode is the single predicate shared by Filter and CountAll so the
// two can never disagree.
func matchesMode(n domain.Notification, mode domain.FilterMode) bool {
	switch mode {
	case domain.FilterUnread:
		return !n.Read
	case domain.FilterHigh:
		return n.Urgency == domain.UrgencyHigh
	default:
		return true
	}
}
