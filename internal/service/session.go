package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// Session is one connected client: its store, its auth state and the
// synchronizer subscription between them.
type Session struct {
	ID     string
	Store  *Store
	Auth   *AuthState
	Locale string

	// hydration is held exclusively while the session resumes from the
	// user document and shared by basket mutations.
	hydration sync.RWMutex

	mu          sync.Mutex
	lastSeen    time.Time
	unsubscribe func()
}

// LastSeen returns the time of the last lookup of the session.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) close() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Sessions is the registry of open sessions.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*Session

	basketSync  *BasketSync
	idleTimeout time.Duration
	logger      *logger.Logger
	now         func() time.Time
}

func NewSessions(basketSync *BasketSync, idleTimeout time.Duration, logger *logger.Logger) *Sessions {
	return &Sessions{
		sessions:    make(map[string]*Session),
		basketSync:  basketSync,
		idleTimeout: idleTimeout,
		logger:      logger,
		now:         time.Now,
	}
}

// Open creates a session and subscribes the basket synchronizer to its auth
// state. A non-nil user resumes the session before Open returns.
func (r *Sessions) Open(ctx context.Context, locale string, user *model.Identity) *Session {
	sess := &Session{
		ID:       uuid.NewString(),
		Auth:     NewAuthState(),
		Locale:   locale,
		lastSeen: r.now(),
	}
	sess.Store = NewStore(r.logger.With("session_id", sess.ID))
	sess.unsubscribe = sess.Auth.OnAuthStateChanged(ctx, r.basketSync.Observe(sess))

	if user != nil {
		sess.Auth.Set(ctx, user)
	}

	r.mu.Lock()
	r.sessions[sess.ID] = sess
	r.mu.Unlock()

	r.logger.Info("Sessions: session opened",
		"session_id", sess.ID,
		"signed_in", user != nil)

	return sess
}

// Get returns the session and resets its idle timer.
func (r *Sessions) Get(id string) (*Session, error) {
	r.mu.Lock()
	sess, ok := r.sessions[id]
	r.mu.Unlock()

	if !ok {
		return nil, model.ErrSessionNotFound
	}
	sess.touch(r.now())
	return sess, nil
}

// Close removes the session and releases its subscription.
func (r *Sessions) Close(id string) error {
	r.mu.Lock()
	sess, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return model.ErrSessionNotFound
	}
	sess.close()

	r.logger.Info("Sessions: session closed",
		"session_id", id)
	return nil
}

// Sweep closes sessions idle for longer than the idle timeout and returns
// how many were closed.
func (r *Sessions) Sweep() int {
	deadline := r.now().Add(-r.idleTimeout)

	r.mu.Lock()
	var idle []*Session
	for id, sess := range r.sessions {
		if sess.LastSeen().Before(deadline) {
			idle = append(idle, sess)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, sess := range idle {
		sess.close()
	}
	if len(idle) > 0 {
		r.logger.Info("Sessions: closed idle sessions",
			"count", len(idle))
	}
	return len(idle)
}

// Run sweeps every interval until ctx is done, then closes every session.
func (r *Sessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Len returns the number of open sessions.
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Sessions) closeAll() {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, sess := range all {
		sess.close()
	}
}
