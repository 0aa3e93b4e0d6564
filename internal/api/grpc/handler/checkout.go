package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/service"
)

// Checkout handles payment and order endpoints. Callers authenticate with a
// bearer token that must belong to the session user.
type Checkout struct {
	checkout  *service.Checkout
	presenter *presenter
	logger    *logger.Logger
}

type paymentResponse struct {
	PaymentIntentID string `json:"payment_intent_id"`
	ClientSecret    string `json:"client_secret"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

type completeOrderRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

type orderResponse struct {
	Order model.Order `json:"order"`
	sessionView
}

func (h *Checkout) CreatePayment(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	sess, err := h.owned(ctx)
	if err != nil {
		return nil, err
	}

	intent, err := h.checkout.CreatePayment(ctx, sess)
	if err != nil {
		return nil, handleError(err)
	}

	return encode(paymentResponse{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
	})
}

func (h *Checkout) CompleteOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := h.owned(ctx)
	if err != nil {
		return nil, err
	}
	var in completeOrderRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if in.PaymentIntentID == "" {
		return nil, status.Error(codes.InvalidArgument, "payment intent id is required")
	}

	order, err := h.checkout.CompleteOrder(ctx, sess, in.PaymentIntentID)
	if err != nil {
		return nil, handleError(err)
	}

	return encode(orderResponse{
		Order:       order,
		sessionView: h.presenter.view(ctx, sess, sess.Store.State()),
	})
}

func (h *Checkout) ListOrders(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	sess, err := h.owned(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := h.checkout.ListOrders(ctx, sess)
	if err != nil {
		return nil, handleError(err)
	}
	return encode(map[string]any{"orders": orders})
}

// owned returns the request session after checking that the bearer
// identity is the user signed in on it.
func (h *Checkout) owned(ctx context.Context) (*service.Session, error) {
	sess, err := h.presenter.session(ctx)
	if err != nil {
		return nil, err
	}
	caller, ok := h.presenter.contextManager.GetUserFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "authorization token is required")
	}
	current := sess.Auth.Current()
	if current == nil {
		return nil, handleError(model.ErrNotSignedIn)
	}
	if current.UID != caller.UID {
		h.logger.Info("Checkout handler: token does not match session user",
			"session_id", sess.ID,
			"user_id", caller.UID)
		return nil, status.Error(codes.PermissionDenied, "session belongs to another user")
	}
	return sess, nil
}
