package context

import (
	stdctx "context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"

	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/service"
)

func TestManager_SetAndGetUser(t *testing.T) {
	m := NewManager()
	user := model.Identity{UID: uuid.New(), Email: "ana@example.com"}
	ctx := m.SetUserToContext(stdctx.Background(), user)

	got, ok := m.GetUserFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, user, got)
}

func TestManager_GetUser_NotFound(t *testing.T) {
	m := NewManager()
	_, ok := m.GetUserFromContext(stdctx.Background())
	assert.False(t, ok)
}

func TestManager_GetSessionIDFromContext(t *testing.T) {
	m := NewManager()

	_, ok := m.GetSessionIDFromContext(stdctx.Background())
	assert.False(t, ok)

	ctx := metadata.NewIncomingContext(stdctx.Background(), metadata.Pairs("x-session-id", "s-1"))
	id, ok := m.GetSessionIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "s-1", id)

	ctx = metadata.NewIncomingContext(stdctx.Background(), metadata.Pairs("x-session-id", ""))
	_, ok = m.GetSessionIDFromContext(ctx)
	assert.False(t, ok)
}

func TestManager_GetLocaleFromContext(t *testing.T) {
	m := NewManager()
	assert.Equal(t, "", m.GetLocaleFromContext(stdctx.Background()))

	ctx := metadata.NewIncomingContext(stdctx.Background(), metadata.Pairs("accept-language", "es-MX,es;q=0.9"))
	assert.Equal(t, "es-MX,es;q=0.9", m.GetLocaleFromContext(ctx))
}

func TestManager_SetAndGetSession(t *testing.T) {
	m := NewManager()

	_, ok := m.GetSessionFromContext(stdctx.Background())
	assert.False(t, ok)

	sess := &service.Session{ID: "s-1"}
	got, ok := m.GetSessionFromContext(m.SetSessionToContext(stdctx.Background(), sess))
	assert.True(t, ok)
	assert.Same(t, sess, got)

	_, ok = m.GetSessionFromContext(m.SetSessionToContext(stdctx.Background(), nil))
	assert.False(t, ok)
}
