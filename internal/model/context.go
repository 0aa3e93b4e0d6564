package model

import "context"

// ContextManager carries the caller's identity, session id and locale
// through request contexts.
type ContextManager interface {
	SetUserToContext(ctx context.Context, user Identity) context.Context
	GetUserFromContext(ctx context.Context) (Identity, bool)
	GetSessionIDFromContext(ctx context.Context) (string, bool)
	GetLocaleFromContext(ctx context.Context) string
}
