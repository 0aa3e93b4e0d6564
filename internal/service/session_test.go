package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/repository/memory"
	"github.com/dtroode/storefront-server/internal/testutil"
)

func newTestSessions(idle time.Duration) *Sessions {
	bs := NewBasketSync(memory.NewDocumentRepository(testutil.MakeNoopLogger()), false, testutil.MakeNoopLogger())
	return NewSessions(bs, idle, testutil.MakeNoopLogger())
}

func TestSessions_OpenGetClose(t *testing.T) {
	ctx := context.Background()
	r := newTestSessions(time.Hour)

	sess := r.Open(ctx, "es", nil)
	_, err := uuid.Parse(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "es", sess.Locale)
	assert.Equal(t, 1, r.Len())

	got, err := r.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	require.NoError(t, r.Close(sess.ID))
	assert.Equal(t, 0, r.Len())

	_, err = r.Get(sess.ID)
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
	assert.ErrorIs(t, r.Close(sess.ID), model.ErrSessionNotFound)
}

func TestSessions_OpenWithUserResumes(t *testing.T) {
	ctx := context.Background()
	r := newTestSessions(time.Hour)

	user := &model.Identity{UID: uuid.New(), Email: "ada@example.com"}
	sess := r.Open(ctx, "en", user)

	state := sess.Store.State()
	require.True(t, state.SignedIn())
	assert.Equal(t, user.UID, state.User.UID)
	assert.Equal(t, user.UID, sess.Auth.Current().UID)
}

func TestSessions_CloseReleasesSubscription(t *testing.T) {
	ctx := context.Background()
	r := newTestSessions(time.Hour)

	sess := r.Open(ctx, "en", &model.Identity{UID: uuid.New()})
	require.NoError(t, r.Close(sess.ID))

	// Auth transitions after close no longer reach the store.
	sess.Auth.Set(ctx, nil)
	assert.True(t, sess.Store.State().SignedIn())
}

func TestSessions_Sweep(t *testing.T) {
	ctx := context.Background()
	r := newTestSessions(10 * time.Minute)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	idle := r.Open(ctx, "en", nil)
	active := r.Open(ctx, "en", nil)

	now = now.Add(8 * time.Minute)
	_, err := r.Get(active.ID)
	require.NoError(t, err)

	now = now.Add(5 * time.Minute)
	assert.Equal(t, 1, r.Sweep())

	_, err = r.Get(idle.ID)
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
	_, err = r.Get(active.ID)
	assert.NoError(t, err)
}

func TestSessions_RunClosesAllOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := newTestSessions(time.Hour)
	r.Open(ctx, "en", nil)
	r.Open(ctx, "en", nil)

	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, 0, r.Len())
}
