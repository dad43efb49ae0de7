package inbox_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"io.ruvo/notification/internal/domain"
	"io.ruvo/notification/internal/inbox"
)

func TestMatches(t *testing.T) {
	sig := domain.Signal{ID: "s", Title: "New GPU launch", Category: "Technology"}

	assert.True(t, inbox.Matches(sig, []string{"tech"}))
	assert.True(t, inbox.Matches(sig, []string{"sports", " gpu "}))
	assert.False(t, inbox.Matches(sig, []string{"sports", ""}))
	assert.False(t, inbox.Matches(sig, nil))

	sig.UserID = "u1"
	assert.True(t, inbox.Matches(sig, nil))
}

func TestFromSignal(t *testing.T) {
	now := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)
	sig := domain.Signal{ID: "sig-1", Title: "Rates cut", Summary: "Central bank moves", Category: "Finance", Urgency: domain.UrgencyMedium}

	n := inbox.FromSignal(sig, "n-1", now)

	assert.Equal(t, "n-1", n.ID)
	assert.Equal(t, "New in Finance", n.Title)
	assert.Equal(t, "Rates cut: Central bank moves", n.Message)
	assert.Equal(t, domain.SourceGenerated, n.Source)
	assert.Equal(t, "sig-1", n.SignalID)
	assert.Equal(t, now, n.Timestamp)
	assert.False(t, n.Read)
}

func TestFromSignal_Alert(t *testing.T) {
	published := time.Date(2026, 7, 1, 7, 0, 0, 0, time.UTC)
	sig := domain.Signal{ID: "sig-2", Title: "Storm warning", Urgency: domain.UrgencyHigh, Alert: true, PublishedAt: published}

	n := inbox.FromSignal(sig, "n-2", published.Add(time.Hour))

	assert.Equal(t, "Urgent: Storm warning", n.Title)
	assert.Equal(t, "Storm warning", n.Message)
	assert.Equal(t, published, n.Timestamp)
}

func TestContainsSignal(t *testing.T) {
	ns := sample()
	assert.True(t, inbox.ContainsSignal(ns, "s2"))
	assert.False(t, inbox.ContainsSignal(ns, "s9"))
	assert.False(t, inbox.ContainsSignal(ns, ""))
}

func TestToggleInterest(t *testing.T) {
	interests := []string{"Tech", "Food"}

	added := inbox.ToggleInterest(interests, " Travel ")
	assert.Equal(t, []string{"Tech", "Food", "Travel"}, added)

	removed := inbox.ToggleInterest(added, "tech")
	assert.Equal(t, []string{"Food", "Travel"}, removed)

	assert.Equal(t, interests, inbox.ToggleInterest(interests, "  "))
	assert.Equal(t, []string{"Tech", "Food"}, interests, "input must not be modified")

	assert.True(t, inbox.HasInterest(removed, "FOOD"))
	assert.False(t, inbox.HasInterest(removed, "tech"))
}
