package inbox_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"io.ruvo/notification/internal/domain"
	"io.ruvo/notification/internal/inbox"
)

var allModes = []domain.FilterMode{domain.FilterAll, domain.FilterUnread, domain.FilterHigh}

func sample() []domain.Notification {
	return []domain.Notification{
		{ID: "a", Urgency: domain.UrgencyHigh, Source: domain.SourcePersisted},
		{ID: "b", Urgency: domain.UrgencyLow, Read: true, Source: domain.SourcePersisted},
		{ID: "c", Urgency: domain.UrgencyHigh, Read: true, Source: domain.SourceGenerated, SignalID: "s1"},
		{ID: "d", Urgency: "critical", Source: domain.SourceGenerated, SignalID: "s2"},
		{ID: "e", Urgency: domain.UrgencyMedium, Source: domain.SourceGenerated, SignalID: "s3"},
	}
}

func ids(ns []domain.Notification) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	ns := sample()

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(inbox.Filter(ns, domain.FilterAll)))
	assert.Equal(t, []string{"a", "d", "e"}, ids(inbox.Filter(ns, domain.FilterUnread)))
	assert.Equal(t, []string{"a", "c"}, ids(inbox.Filter(ns, domain.FilterHigh)))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(inbox.Filter(ns, "bogus")))
}

func TestFilter_DoesNotAliasInput(t *testing.T) {
	ns := sample()
	out := inbox.Filter(ns, domain.FilterAll)
	out[0].Title = "changed"
	assert.Empty(t, ns[0].Title)
}

func TestFilterCountConsistency(t *testing.T) {
	collections := [][]domain.Notification{
		nil,
		{},
		sample(),
		{{ID: "x", Urgency: domain.UrgencyHigh}},
		{{ID: "x", Read: true}, {ID: "y", Read: true}},
	}
	for _, ns := range collections {
		counts := inbox.CountAll(ns)
		for _, m := range allModes {
			assert.Equal(t, counts.Of(m), len(inbox.Filter(ns, m)), "mode %s", m)
		}
	}
}

func TestFilterUnread_PartitionsCollection(t *testing.T) {
	ns := sample()
	unread := inbox.Filter(ns, domain.FilterUnread)

	var read []domain.Notification
	for _, n := range ns {
		if n.Read {
			read = append(read, n)
		}
	}
	require.Equal(t, len(ns), len(unread)+len(read))

	// Interleave back by original position and compare.
	pos := map[string]int{}
	for i, n := range ns {
		pos[n.ID] = i
	}
	merged := make([]domain.Notification, 0, len(ns))
	for len(unread) > 0 || len(read) > 0 {
		if len(read) == 0 || (len(unread) > 0 && pos[unread[0].ID] < pos[read[0].ID]) {
			merged, unread = append(merged, unread[0]), unread[1:]
		} else {
			merged, read = append(merged, read[0]), read[1:]
		}
	}
	assert.Equal(t, ids(ns), ids(merged))
}

func TestScenario_EndToEnd(t *testing.T) {
	t0 := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	ns := []domain.Notification{
		{ID: "1", Read: false, Urgency: domain.UrgencyHigh, Timestamp: t0},
		{ID: "2", Read: true, Urgency: domain.UrgencyLow, Timestamp: t0.Add(-3700 * time.Second)},
	}

	assert.Equal(t, domain.Counts{All: 2, Unread: 1, High: 1}, inbox.CountAll(ns))
	assert.Equal(t, []string{"1"}, ids(inbox.Filter(ns, domain.FilterUnread)))
	assert.Equal(t, []string{"1"}, ids(inbox.Filter(ns, domain.FilterHigh)))
	assert.Equal(t, "1h ago", inbox.FormatTimeAgo(ns[1].Timestamp, t0))
}

func TestScenario_UnknownUrgency(t *testing.T) {
	ns := []domain.Notification{{ID: "1", Urgency: "critical"}}

	assert.Empty(t, inbox.Filter(ns, domain.FilterHigh))
	assert.Equal(t, 0, inbox.CountAll(ns).High)
	assert.Equal(t, inbox.ColorNeutral, inbox.UrgencyColor(ns[0].Urgency))
	assert.Equal(t, inbox.IconDefault, inbox.UrgencyIcon(ns[0].Urgency))
}
