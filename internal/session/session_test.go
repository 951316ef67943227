package session

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBroadcasterCurrent(t *testing.T) {
	b := NewBroadcaster()

	_, ok := b.Current()
	assert.False(t, ok, "fresh broadcaster should have no session")

	s := &Session{UserID: uuid.New(), Email: "author@example.com", Role: "admin"}
	b.Set(s)

	got, ok := b.Current()
	assert.True(t, ok)
	assert.Equal(t, s.Email, got.Email)

	b.Set(nil)
	_, ok = b.Current()
	assert.False(t, ok, "sign-out should clear the session")
}

func TestBroadcasterSubscribe(t *testing.T) {
	b := NewBroadcaster()

	var seen []*Session
	cancel := b.Subscribe(func(s *Session) {
		seen = append(seen, s)
	})

	b.Set(&Session{Email: "a@example.com"})
	b.Set(nil)
	assert.Len(t, seen, 2)
	assert.Nil(t, seen[1], "sign-out notifies with nil")

	cancel()
	cancel() // safe to release twice
	b.Set(&Session{Email: "b@example.com"})
	assert.Len(t, seen, 2, "cancelled subscriber must not fire")
}

func TestSessionContext(t *testing.T) {
	ctx := context.Background()

	_, ok := FromContext(ctx)
	assert.False(t, ok)

	s := &Session{UserID: uuid.New()}
	ctx = WithSession(ctx, s)

	got, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, s.UserID, got.UserID)
}
