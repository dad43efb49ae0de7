package inbox

import "strings"

// ToggleInterest adds name to interests, or removes it if already present.
// Comparison is case-insensitive on the trimmed name; order is preserved.
// A blank name returns an unchanged copy.
func ToggleInterest(interests []string, name string) []string {
	name = strings.TrimSpace(name)
	out := make([]string, 0, len(interests)+1)
	if name == "" {
		return append(out, interests...)
	}

	removed := false
	for _, existing := range interests {
		if strings.EqualFold(strings.TrimSpace(existing), name) {
			removed = true
			continue
		}
		out = append(out, existing)
	}
	if !removed {
		out = append(out, name)
	}
	return out
}

// HasInterest reports whether name is in interests, case-insensitively.
func HasInterest(interests []string, name string) bool {
	name = strings.TrimSpace(name)
	for _, existing := range interests {
		if strings.EqualFold(strings.TrimSpace(existing), name) {
			return true
		}
	}
	return false
}
