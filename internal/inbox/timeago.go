package inbox

import (
	"fmt"
	"strings"
	"time"
)

// JustNow is shown when a timestamp is absent or cannot be parsed.
const JustNow = "Just now"

// FormatTimeAgo renders the age of ts relative to now as a coarse bucket:
// seconds, minutes, hours, then days. A zero ts yields JustNow.
// Timestamps ahead of now are clamped to zero elapsed.
func FormatTimeAgo(ts, now time.Time) string {
	if ts.IsZero() {
		return JustNow
	}

	elapsed := int64(now.Sub(ts) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}

	switch {
	case elapsed < 60:
		return fmt.Sprintf("%ds ago", elapsed)
	case elapsed < 3600:
		return fmt.Sprintf("%dm ago", elapsed/60)
	case elapsed < 86400:
		return fmt.Sprintf("%dh ago", elapsed/3600)
	default:
		return fmt.Sprintf("%dd ago", elapsed/86400)
	}
}

// FormatTimeAgoString is FormatTimeAgo for raw wire timestamps.
// Empty or unparseable input yields JustNow.
func FormatTimeAgoString(raw string, now time.Time) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return JustNow
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return JustNow
	}
	return FormatTimeAgo(ts, now)
}
