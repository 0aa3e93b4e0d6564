package middleware

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/service"
)

// SessionResolver looks up open sessions by id.
type SessionResolver interface {
	Get(id string) (*service.Session, error)
}

// SessionContext reads the session id from a request and carries the
// resolved session.
type SessionContext interface {
	GetSessionIDFromContext(ctx context.Context) (string, bool)
	SetSessionToContext(ctx context.Context, sess *service.Session) context.Context
}

// Session resolves the x-session-id metadata of session-bound calls.
type Session struct {
	sessions       SessionResolver
	contextManager SessionContext
	logger         *logger.Logger
}

func NewSession(sessions SessionResolver, contextManager SessionContext, logger *logger.Logger) *Session {
	return &Session{sessions: sessions, contextManager: contextManager, logger: logger}
}

// SessionFunc has the shape of an auth.AuthFunc so it chains through the
// same selector.
func (m *Session) SessionFunc(ctx context.Context) (context.Context, error) {
	id, ok := m.contextManager.GetSessionIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "session id is required")
	}

	sess, err := m.sessions.Get(id)
	if errors.Is(err, model.ErrSessionNotFound) {
		m.logger.Debug("Session middleware: unknown session",
			"session_id", id)
		return nil, status.Error(codes.NotFound, err.Error())
	}
	if err != nil {
		return nil, status.Error(codes.Internal, "internal server error")
	}

	return m.contextManager.SetSessionToContext(ctx, sess), nil
}
