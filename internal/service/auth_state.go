package service

import (
	"context"
	"sync"

	"github.com/dtroode/storefront-server/internal/model"
)

// AuthStateFunc observes identity transitions. A nil user means signed out.
type AuthStateFunc func(ctx context.Context, user *model.Identity)

// AuthState publishes the signed-in identity of one session.
type AuthState struct {
	// deliverMu orders deliveries so observers never see transitions out of order.
	deliverMu sync.Mutex

	mu        sync.Mutex
	current   *model.Identity
	next      int
	observers map[int]AuthStateFunc
}

func NewAuthState() *AuthState {
	return &AuthState{observers: make(map[int]AuthStateFunc)}
}

// Current returns a copy of the signed-in identity, or nil.
func (a *AuthState) Current() *model.Identity {
	a.mu.Lock()
	defer a.mu.Unlock()
	return copyIdentity(a.current)
}

// Set records user as the session identity and notifies observers when it
// differs from the previous one: absent to present, present to absent, or a
// different uid.
func (a *AuthState) Set(ctx context.Context, user *model.Identity) {
	a.deliverMu.Lock()
	defer a.deliverMu.Unlock()

	a.mu.Lock()
	changed := transitioned(a.current, user)
	a.current = copyIdentity(user)
	observers := make([]AuthStateFunc, 0, len(a.observers))
	for _, fn := range a.observers {
		observers = append(observers, fn)
	}
	a.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range observers {
		fn(ctx, copyIdentity(user))
	}
}

// OnAuthStateChanged delivers the current identity to fn and then every
// later transition. The returned function unsubscribes and is idempotent.
func (a *AuthState) OnAuthStateChanged(ctx context.Context, fn AuthStateFunc) (unsubscribe func()) {
	a.deliverMu.Lock()
	defer a.deliverMu.Unlock()

	a.mu.Lock()
	id := a.next
	a.next++
	a.observers[id] = fn
	current := copyIdentity(a.current)
	a.mu.Unlock()

	fn(ctx, current)

	var once sync.Once
	return func() {
		once.Do(func() {
			a.mu.Lock()
			delete(a.observers, id)
			a.mu.Unlock()
		})
	}
}

func transitioned(prev, next *model.Identity) bool {
	switch {
	case prev == nil && next == nil:
		return false
	case prev == nil || next == nil:
		return true
	default:
		return prev.UID != next.UID
	}
}

func copyIdentity(u *model.Identity) *model.Identity {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
