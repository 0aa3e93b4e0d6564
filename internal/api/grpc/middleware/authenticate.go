package middleware

import (
	"context"
	"strings"

	apiErrors "github.com/dtroode/gophkeeper-api/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/storefront-server/internal/api/grpc/rpc"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// Identifier resolves an access token to the identity it was issued for.
type Identifier interface {
	Identify(ctx context.Context, accessToken string) (model.Identity, error)
}

// Authenticate validates bearer tokens and injects the identity into context.
type Authenticate struct {
	identifier     Identifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(identifier Identifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{identifier: identifier, contextManager: contextManager, logger: logger}
}

// AuthFunc requires a valid bearer token.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	user, err := m.authenticateUser(ctx, bearerToken(ctx))
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	return m.contextManager.SetUserToContext(ctx, user), nil
}

// OptionalAuthFunc passes anonymous calls through unchanged. A token that is
// present must still be valid.
func (m *Authenticate) OptionalAuthFunc(ctx context.Context) (context.Context, error) {
	if bearerToken(ctx) == "" {
		return ctx, nil
	}
	return m.AuthFunc(ctx)
}

func (m *Authenticate) authenticateUser(ctx context.Context, token string) (model.Identity, error) {
	if token == "" {
		return model.Identity{}, apiErrors.NewErrMissingAuthorizationToken()
	}

	user, err := m.identifier.Identify(ctx, token)
	if err != nil {
		m.logger.Debug("Authenticate: token rejected",
			"error", err.Error())
		return model.Identity{}, apiErrors.NewErrInvalidAuthorizationToken()
	}

	return user, nil
}

func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	headers := md.Get(rpc.MetadataAuthorization)
	if len(headers) == 0 {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(headers[0], "Bearer "))
}
