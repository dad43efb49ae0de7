package messages

// ─── Feed ────────────────────────────────────────────────────────────────────

const (
	FeedMatchTitle = "New in %s"
	// FeedMatchTitleNoCategory is used when the signal carries no category.
	FeedMatchTitleNoCategory = "New for you"
	FeedMatchBody            = "%s"
	FeedMatchBodyWithSummary = "%s: %s"
)

// ─── Alerts ──────────────────────────────────────────────────────────────────

const (
	AlertTitle = "Alert: %s"
	AlertBody  = "%s"

	UrgentAlertTitle = "Urgent: %s"
)
