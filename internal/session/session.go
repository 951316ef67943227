// Package session models the current authenticated session as an explicit,
// injectable provider rather than global mutable state. Consumers read the
// current session and may subscribe to changes; subscriptions must be
// released on teardown via the returned cancel func.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Session identifies an authenticated author.
type Session struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// Provider exposes the current session and change notification.
type Provider interface {
	// Current returns the active session, or ok = false when signed out.
	Current() (s *Session, ok bool)

	// Subscribe registers fn to run on every session change (including
	// sign-out, where fn receives nil). The returned cancel func removes
	// the subscription and is safe to call more than once.
	Subscribe(fn func(*Session)) (cancel func())
}

// Broadcaster is the in-process Provider implementation. Set is called by
// whatever owns the auth lifecycle (login handler, CLI tooling, tests).
type Broadcaster struct {
	mu      sync.Mutex
	current *Session
	subs    map[int]func(*Session)
	nextID  int
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]func(*Session))}
}

func (b *Broadcaster) Current() (*Session, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current, b.current != nil
}

func (b *Broadcaster) Subscribe(fn func(*Session)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Set replaces the current session (nil = signed out) and notifies
// subscribers. Callbacks run outside the lock.
func (b *Broadcaster) Set(s *Session) {
	b.mu.Lock()
	b.current = s
	fns := make([]func(*Session), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

type contextKey struct{}

// WithSession attaches a request-scoped session to ctx. The auth middleware
// is the only production caller.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext reads the request-scoped session.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}
