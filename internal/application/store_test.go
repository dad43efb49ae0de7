package application_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"io.ruvo/notification/internal/application"
	"io.ruvo/notification/internal/domain"
)

func TestStore_UpdateDoesNotCreateEmptyInbox(t *testing.T) {
	s := application.NewStore()

	s.Update("ghost", func(ns []domain.Notification) []domain.Notification { return ns })
	assert.Empty(t, s.Users())

	s.Activate("u1", func(ns []domain.Notification) []domain.Notification { return nil })
	assert.Equal(t, []string{"u1"}, s.Users())

	// Emptying an existing inbox keeps the user active.
	s.Update("u1", func([]domain.Notification) []domain.Notification { return nil })
	assert.Equal(t, []string{"u1"}, s.Users())
}

func TestStore_DeleteRemembersSignal(t *testing.T) {
	s := application.NewStore()
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	gen := domain.Notification{ID: "g1", Source: domain.SourceGenerated, SignalID: "s1"}

	added, _ := s.Append("u1", gen)
	require.True(t, added)
	added, _ = s.Append("u1", domain.Notification{ID: "g2", Source: domain.SourceGenerated, SignalID: "s1"})
	assert.False(t, added)

	removed, after := s.Delete("u1", "g1", at)
	require.True(t, removed)
	assert.Empty(t, after)

	added, _ = s.Append("u1", domain.Notification{ID: "g3", Source: domain.SourceGenerated, SignalID: "s1"})
	assert.False(t, added)

	// Other users are unaffected.
	added, _ = s.Append("u2", domain.Notification{ID: "g4", Source: domain.SourceGenerated, SignalID: "s1"})
	assert.True(t, added)

	assert.Zero(t, s.ExpireDeleted(at))
	assert.Equal(t, 1, s.ExpireDeleted(at.Add(time.Second)))
	added, _ = s.Append("u1", domain.Notification{ID: "g5", Source: domain.SourceGenerated, SignalID: "s1"})
	assert.True(t, added)
}

func TestStore_DeleteIgnoresPersisted(t *testing.T) {
	s := application.NewStore()
	_, _ = s.Append("u1", domain.Notification{ID: "p1", Source: domain.SourcePersisted})

	removed, after := s.Delete("u1", "p1", time.Now())
	assert.False(t, removed)
	assert.Len(t, after, 1)
}
