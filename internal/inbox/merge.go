package inbox

import "io.ruvo/notification/internal/domain"

// Merge folds a fresh backend listing into the current collection.
//
// Persisted notifications already present keep their position, and stay read
// if either side has them read. Persisted notifications the backend no longer
// returns are dropped, new ones are appended in backend order. Generated
// notifications are left where they are.
func Merge(current, persisted []domain.Notification) []domain.Notification {
	fresh := make(map[string]domain.Notification, len(persisted))
	for _, n := range persisted {
		n.Source = domain.SourcePersisted
		fresh[n.ID] = n
	}

	out := make([]domain.Notification, 0, len(current)+len(persisted))
	seen := make(map[string]struct{}, len(current))
	for _, n := range current {
		if n.Generated() {
			out = append(out, n)
			seen[n.ID] = struct{}{}
			continue
		}
		f, ok := fresh[n.ID]
		if !ok {
			continue
		}
		f.Read = f.Read || n.Read
		out = append(out, f)
		seen[n.ID] = struct{}{}
	}

	for _, n := range persisted {
		if _, ok := seen[n.ID]; ok {
			continue
		}
		n.Source = domain.SourcePersisted
		out = append(out, n)
		seen[n.ID] = struct{}{}
	}
	return out
}
