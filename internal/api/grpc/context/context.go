package context

import (
	"context"

	"google.golang.org/grpc/metadata"

	"github.com/dtroode/storefront-server/internal/api/grpc/rpc"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/service"
)

type (
	userKey    struct{}
	sessionKey struct{}
)

// Manager carries the authenticated identity and the resolved session
// through request contexts, and reads session id and locale from incoming
// metadata.
type Manager struct{}

// NewManager creates a new gRPC context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserToContext stores the authenticated identity.
func (m *Manager) SetUserToContext(ctx context.Context, user model.Identity) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUserFromContext returns the identity stored by SetUserToContext.
func (m *Manager) GetUserFromContext(ctx context.Context) (model.Identity, bool) {
	user, ok := ctx.Value(userKey{}).(model.Identity)
	return user, ok
}

// GetSessionIDFromContext reads the session id from incoming metadata.
func (m *Manager) GetSessionIDFromContext(ctx context.Context) (string, bool) {
	id := firstValue(ctx, rpc.MetadataSessionID)
	return id, id != ""
}

// GetLocaleFromContext returns the raw Accept-Language value, or "".
func (m *Manager) GetLocaleFromContext(ctx context.Context) string {
	return firstValue(ctx, rpc.MetadataAcceptLanguage)
}

// SetSessionToContext stores the resolved session.
func (m *Manager) SetSessionToContext(ctx context.Context, sess *service.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// GetSessionFromContext returns the session stored by SetSessionToContext.
func (m *Manager) GetSessionFromContext(ctx context.Context) (*service.Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(*service.Session)
	return sess, ok && sess != nil
}

func firstValue(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
