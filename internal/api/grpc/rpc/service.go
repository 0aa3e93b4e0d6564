// Package rpc describes the storefront.v1.Storefront gRPC service. Requests
// and responses are google.protobuf.Struct messages keyed by JSON field names.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "storefront.v1.Storefront"

// Method names.
const (
	MethodOpenSession          = "OpenSession"
	MethodCloseSession         = "CloseSession"
	MethodRegister             = "Register"
	MethodSignIn               = "SignIn"
	MethodSignOut              = "SignOut"
	MethodRefreshToken         = "RefreshToken"
	MethodGetSession           = "GetSession"
	MethodSetInputValue        = "SetInputValue"
	MethodSetUserAddress       = "SetUserAddress"
	MethodAddToBasket          = "AddToBasket"
	MethodRemoveFromBasket     = "RemoveFromBasket"
	MethodUpdateBasketQuantity = "UpdateBasketQuantity"
	MethodListProducts         = "ListProducts"
	MethodCreatePayment        = "CreatePayment"
	MethodCompleteOrder        = "CompleteOrder"
	MethodListOrders           = "ListOrders"
	MethodListTitles           = "ListTitles"
	MethodGetTitle             = "GetTitle"
)

// Metadata keys.
const (
	MetadataSessionID      = "x-session-id"
	MetadataAuthorization  = "authorization"
	MetadataAcceptLanguage = "accept-language"
)

// FullMethod returns the "/service/method" name used by interceptors.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// StorefrontServer is the server API for the storefront service.
type StorefrontServer interface {
	OpenSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CloseSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Register(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SignIn(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SignOut(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RefreshToken(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetInputValue(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetUserAddress(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddToBasket(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveFromBasket(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateBasketQuantity(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListProducts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreatePayment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CompleteOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListOrders(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListTitles(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetTitle(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type call func(StorefrontServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, c call) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return c(srv.(StorefrontServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return c(srv.(StorefrontServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc is the grpc.ServiceDesc for the storefront service.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StorefrontServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodOpenSession, StorefrontServer.OpenSession),
		unary(MethodCloseSession, StorefrontServer.CloseSession),
		unary(MethodRegister, StorefrontServer.Register),
		unary(MethodSignIn, StorefrontServer.SignIn),
		unary(MethodSignOut, StorefrontServer.SignOut),
		unary(MethodRefreshToken, StorefrontServer.RefreshToken),
		unary(MethodGetSession, StorefrontServer.GetSession),
		unary(MethodSetInputValue, StorefrontServer.SetInputValue),
		unary(MethodSetUserAddress, StorefrontServer.SetUserAddress),
		unary(MethodAddToBasket, StorefrontServer.AddToBasket),
		unary(MethodRemoveFromBasket, StorefrontServer.RemoveFromBasket),
		unary(MethodUpdateBasketQuantity, StorefrontServer.UpdateBasketQuantity),
		unary(MethodListProducts, StorefrontServer.ListProducts),
		unary(MethodCreatePayment, StorefrontServer.CreatePayment),
		unary(MethodCompleteOrder, StorefrontServer.CompleteOrder),
		unary(MethodListOrders, StorefrontServer.ListOrders),
		unary(MethodListTitles, StorefrontServer.ListTitles),
		unary(MethodGetTitle, StorefrontServer.GetTitle),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/v1/storefront.proto",
}

// RegisterStorefrontServer registers srv with s.
func RegisterStorefrontServer(s grpc.ServiceRegistrar, srv StorefrontServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls the storefront service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes method with req. A nil req sends an empty struct.
func (c *Client) Call(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if req == nil {
		req = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
