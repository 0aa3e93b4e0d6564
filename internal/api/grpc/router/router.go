package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"

	grpcctx "github.com/dtroode/storefront-server/internal/api/grpc/context"
	"github.com/dtroode/storefront-server/internal/api/grpc/handler"
	"github.com/dtroode/storefront-server/internal/api/grpc/middleware"
	"github.com/dtroode/storefront-server/internal/api/grpc/rpc"
	"github.com/dtroode/storefront-server/internal/i18n"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/service"
)

// Services are the application services exposed over gRPC.
type Services struct {
	Auth       *service.Auth
	Sessions   *service.Sessions
	BasketSync *service.BasketSync
	Products   *service.Products
	Checkout   *service.Checkout
	Catalog    *service.Catalog
}

// Router builds the gRPC server for the storefront service.
type Router struct {
	services       Services
	localizer      *i18n.Localizer
	contextManager *grpcctx.Manager
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	services Services,
	localizer *i18n.Localizer,
	contextManager *grpcctx.Manager,
	logger *logger.Logger,
) *Router {
	return &Router{
		services:       services,
		localizer:      localizer,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Methods that require a bearer token.
var authenticated = []string{
	rpc.MethodCreatePayment,
	rpc.MethodCompleteOrder,
	rpc.MethodListOrders,
	rpc.MethodListTitles,
	rpc.MethodGetTitle,
}

// Methods that accept a bearer token without requiring one.
var optionallyAuthenticated = []string{
	rpc.MethodOpenSession,
}

// Methods that act on the session named by x-session-id.
var sessionBound = []string{
	rpc.MethodCloseSession,
	rpc.MethodRegister,
	rpc.MethodSignIn,
	rpc.MethodSignOut,
	rpc.MethodGetSession,
	rpc.MethodSetInputValue,
	rpc.MethodSetUserAddress,
	rpc.MethodAddToBasket,
	rpc.MethodRemoveFromBasket,
	rpc.MethodUpdateBasketQuantity,
	rpc.MethodCreatePayment,
	rpc.MethodCompleteOrder,
	rpc.MethodListOrders,
}

func matchMethods(methods ...string) selector.Matcher {
	set := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		set[rpc.FullMethod(m)] = struct{}{}
	}
	return selector.MatchFunc(func(_ context.Context, c interceptors.CallMeta) bool {
		_, ok := set[c.FullMethod()]
		return ok
	})
}

// Register registers the storefront service and its interceptors: request
// logging, then authentication, then session resolution.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.services.Auth, r.contextManager, r.logger)
	session := middleware.NewSession(r.services.Sessions, r.contextManager, r.logger)

	opts = append(opts, grpc.ChainUnaryInterceptor(
		logging.HandleGRPC,
		selector.UnaryServerInterceptor(
			auth.UnaryServerInterceptor(authenticate.OptionalAuthFunc),
			matchMethods(optionallyAuthenticated...),
		),
		selector.UnaryServerInterceptor(
			auth.UnaryServerInterceptor(authenticate.AuthFunc),
			matchMethods(authenticated...),
		),
		selector.UnaryServerInterceptor(
			auth.UnaryServerInterceptor(session.SessionFunc),
			matchMethods(sessionBound...),
		),
	))

	s := grpc.NewServer(opts...)
	r.registerStorefront(s)

	return s
}

func (r *Router) registerStorefront(server *grpc.Server) {
	storefront := handler.NewStorefront(
		r.services.Auth,
		r.services.Sessions,
		r.services.BasketSync,
		r.services.Products,
		r.services.Checkout,
		r.services.Catalog,
		r.contextManager,
		r.localizer,
		r.logger,
	)
	rpc.RegisterStorefrontServer(server, storefront)
}
