package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/reducer"
	"github.com/dtroode/storefront-server/internal/service"
)

// SessionRegistry opens and closes sessions.
type SessionRegistry interface {
	Open(ctx context.Context, locale string, user *model.Identity) *service.Session
	Close(id string) error
}

// Sessions handles the session lifecycle and the form and profile inputs.
type Sessions struct {
	sessions  SessionRegistry
	presenter *presenter
	logger    *logger.Logger
}

// OpenSession creates a session. A caller presenting a valid bearer token
// starts signed in.
func (h *Sessions) OpenSession(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	var user *model.Identity
	if u, ok := h.presenter.contextManager.GetUserFromContext(ctx); ok {
		user = &u
	}
	locale := h.presenter.localizer.Match(h.presenter.contextManager.GetLocaleFromContext(ctx))

	sess := h.sessions.Open(ctx, locale, user)

	return encode(h.presenter.view(ctx, sess, sess.Store.State()))
}

func (h *Sessions) CloseSession(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	sess, err := h.presenter.session(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.sessions.Close(sess.ID); err != nil {
		return nil, handleError(err)
	}
	return &structpb.Struct{}, nil
}

func (h *Sessions) GetSession(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	sess, err := h.presenter.session(ctx)
	if err != nil {
		return nil, err
	}
	return encode(h.presenter.view(ctx, sess, sess.Store.State()))
}

type setInputValueRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

var formFields = map[reducer.FormField]bool{
	reducer.FieldContactInfo:     true,
	reducer.FieldPassword:        true,
	reducer.FieldName:            true,
	reducer.FieldReEnterPassword: true,
	reducer.FieldAddress:         true,
}

// SetInputValue stores one login or registration form input.
func (h *Sessions) SetInputValue(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := h.presenter.session(ctx)
	if err != nil {
		return nil, err
	}
	var in setInputValueRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	field := reducer.FormField(in.Field)
	if !formFields[field] {
		return nil, status.Errorf(codes.InvalidArgument, "unknown form field %q", in.Field)
	}

	state, warnings := sess.Store.Dispatch(reducer.SetInputValue{Field: field, Value: in.Value})

	return encode(h.presenter.mutation(ctx, sess, service.MutationResult{State: state, Warnings: warnings}))
}

type setUserAddressRequest struct {
	Address string `json:"address"`
}

func (h *Sessions) SetUserAddress(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := h.presenter.session(ctx)
	if err != nil {
		return nil, err
	}
	var in setUserAddressRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	state, warnings := sess.Store.Dispatch(reducer.SetUserAddress{Address: in.Address})

	return encode(h.presenter.mutation(ctx, sess, service.MutationResult{State: state, Warnings: warnings}))
}
