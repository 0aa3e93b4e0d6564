package handler

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/storefront-server/internal/api/grpc/rpc"
	"github.com/dtroode/storefront-server/internal/i18n"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/reducer"
	"github.com/dtroode/storefront-server/internal/service"
)

// ContextManager reads the caller identity, locale and resolved session
// from request contexts.
type ContextManager interface {
	model.ContextManager
	GetSessionFromContext(ctx context.Context) (*service.Session, bool)
}

// Storefront serves every method of storefront.v1.Storefront.
type Storefront struct {
	*Sessions
	*Auth
	*Basket
	*Checkout
	*Catalog
}

var _ rpc.StorefrontServer = (*Storefront)(nil)

func NewStorefront(
	authService AuthService,
	sessions SessionRegistry,
	basketSync *service.BasketSync,
	products ProductCatalog,
	checkout *service.Checkout,
	titles TitleCatalog,
	contextManager ContextManager,
	localizer *i18n.Localizer,
	logger *logger.Logger,
) *Storefront {
	p := &presenter{contextManager: contextManager, localizer: localizer}
	return &Storefront{
		Sessions: &Sessions{sessions: sessions, presenter: p, logger: logger},
		Auth:     &Auth{authService: authService, presenter: p, logger: logger},
		Basket:   &Basket{basketSync: basketSync, products: products, presenter: p, logger: logger},
		Checkout: &Checkout{checkout: checkout, presenter: p, logger: logger},
		Catalog:  &Catalog{titles: titles, logger: logger},
	}
}

type sessionView struct {
	SessionID string             `json:"session_id"`
	State     model.SessionState `json:"state"`
	Subtotal  float64            `json:"subtotal"`
	ItemCount int                `json:"item_count"`
	Strings   i18n.Strings       `json:"strings"`
}

type mutationView struct {
	sessionView
	Warnings    []string `json:"warnings,omitempty"`
	RemoteError string   `json:"remote_error,omitempty"`
	RolledBack  bool     `json:"rolled_back,omitempty"`
}

// presenter resolves the request session and renders its views.
type presenter struct {
	contextManager ContextManager
	localizer      *i18n.Localizer
}

func (p *presenter) session(ctx context.Context) (*service.Session, error) {
	sess, ok := p.contextManager.GetSessionFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "session id is required")
	}
	return sess, nil
}

// locale prefers the request's Accept-Language over the one the session
// was opened with.
func (p *presenter) locale(ctx context.Context, sess *service.Session) string {
	if raw := p.contextManager.GetLocaleFromContext(ctx); raw != "" {
		return p.localizer.Match(raw)
	}
	return sess.Locale
}

func (p *presenter) view(ctx context.Context, sess *service.Session, state model.SessionState) sessionView {
	return sessionView{
		SessionID: sess.ID,
		State:     state,
		Subtotal:  reducer.Subtotal(state.Basket),
		ItemCount: len(state.Basket),
		Strings:   p.localizer.Render(p.locale(ctx, sess), state),
	}
}

func (p *presenter) mutation(ctx context.Context, sess *service.Session, result service.MutationResult) mutationView {
	out := mutationView{
		sessionView: p.view(ctx, sess, result.State),
		RolledBack:  result.RolledBack,
	}
	for _, w := range result.Warnings {
		out.Warnings = append(out.Warnings, w.String())
	}
	if result.RemoteErr != nil {
		out.RemoteError = result.RemoteErr.Error()
	}
	return out
}

// decode reads a Struct request into out through its JSON form.
func decode(req *structpb.Struct, out any) error {
	b, err := protojson.Marshal(req)
	if err != nil {
		return status.Error(codes.InvalidArgument, "malformed request")
	}
	if err := json.Unmarshal(b, out); err != nil {
		return status.Errorf(codes.InvalidArgument, "malformed request: %v", err)
	}
	return nil
}

// encode renders v as a Struct response through its JSON form.
func encode(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal server error")
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, status.Error(codes.Internal, "internal server error")
	}
	return out, nil
}
