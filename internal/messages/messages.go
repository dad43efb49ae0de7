package messages

import (
	"fmt"
	"strings"
)

// ─── Feed builders ───────────────────────────────────────────────────────────

// FeedMatch builds the title and body for a feed item that matched a user interest.
func FeedMatch(category, headline, summary string) (string, string) {
	title := FeedMatchTitleNoCategory
	if c := strings.TrimSpace(category); c != "" {
		title = fmt.Sprintf(FeedMatchTitle, c)
	}
	if s := strings.TrimSpace(summary); s != "" {
		return title, fmt.Sprintf(FeedMatchBodyWithSummary, headline, s)
	}
	return title, fmt.Sprintf(FeedMatchBody, headline)
}

// ─── Alert builders ──────────────────────────────────────────────────────────

func Alert(headline, summary string, urgent bool) (string, string) {
	format := AlertTitle
	if urgent {
		format = UrgentAlertTitle
	}
	body := summary
	if strings.TrimSpace(body) == "" {
		body = headline
	}
	return fmt.Sprintf(format, headline), fmt.Sprintf(AlertBody, body)
}
