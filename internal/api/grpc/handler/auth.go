package handler

import (
	"context"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// AuthService defines account and token operations of the identity provider.
type AuthService interface {
	Register(ctx context.Context, reg model.Registration) (model.Identity, model.TokenPair, error)
	SignIn(ctx context.Context, creds model.Credentials) (model.Identity, model.TokenPair, error)
	SignOut(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
}

// Auth handles gRPC endpoints for authentication. Register and SignIn bind
// the identity to the calling session.
type Auth struct {
	authService AuthService
	presenter   *presenter
	logger      *logger.Logger
}

type registerRequest struct {
	Name            string `json:"name"`
	ContactInfo     string `json:"contact_info"`
	Address         string `json:"address"`
	Password        string `json:"password"`
	ReEnterPassword string `json:"re_enter_password"`
}

type signInRequest struct {
	ContactInfo string `json:"contact_info"`
	Password    string `json:"password"`
}

type tokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type authResponse struct {
	tokenResponse
	sessionView
}

// Register creates an account. Fields left out of the request are taken
// from the session form.
func (h *Auth) Register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := h.presenter.session(ctx)
	if err != nil {
		return nil, err
	}
	var in registerRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	state := sess.Store.State()
	reg := model.Registration{
		Name:            or(in.Name, state.Name),
		Email:           or(in.ContactInfo, state.Form.ContactInfo),
		Address:         or(in.Address, state.Form.Address),
		Password:        or(in.Password, state.Form.Password),
		ReEnterPassword: or(in.ReEnterPassword, state.Form.ReEnterPassword),
	}

	h.logger.Debug("Auth handler: processing registration request",
		"session_id", sess.ID,
		"email", reg.Email)

	user, tokens, err := h.authService.Register(ctx, reg)
	if err != nil {
		h.logger.Info("Auth handler: registration failed",
			"session_id", sess.ID,
			"error", err.Error())
		return nil, handleError(err)
	}

	sess.Auth.Set(ctx, &user)

	h.logger.Info("Auth handler: registration completed",
		"session_id", sess.ID,
		"user_id", user.UID)

	return encode(authResponse{
		tokenResponse: tokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken},
		sessionView:   h.presenter.view(ctx, sess, sess.Store.State()),
	})
}

// SignIn verifies credentials and resumes the session as the user.
func (h *Auth) SignIn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := h.presenter.session(ctx)
	if err != nil {
		return nil, err
	}
	var in signInRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	state := sess.Store.State()
	creds := model.Credentials{
		Email:    or(in.ContactInfo, state.Form.ContactInfo),
		Password: or(in.Password, state.Form.Password),
	}

	user, tokens, err := h.authService.SignIn(ctx, creds)
	if err != nil {
		h.logger.Info("Auth handler: sign in failed",
			"session_id", sess.ID,
			"error", err.Error())
		return nil, handleError(err)
	}

	sess.Auth.Set(ctx, &user)

	h.logger.Info("Auth handler: sign in completed",
		"session_id", sess.ID,
		"user_id", user.UID)

	return encode(authResponse{
		tokenResponse: tokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken},
		sessionView:   h.presenter.view(ctx, sess, sess.Store.State()),
	})
}

// SignOut revokes the refresh token and signs the session out. The session
// is signed out even when revocation fails.
func (h *Auth) SignOut(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := h.presenter.session(ctx)
	if err != nil {
		return nil, err
	}
	var in tokenRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	revokeErr := h.authService.SignOut(ctx, in.RefreshToken)
	sess.Auth.Set(ctx, nil)

	if revokeErr != nil {
		h.logger.Error("Auth handler: token revoke failed",
			"session_id", sess.ID,
			"error", revokeErr.Error())
		return nil, handleError(revokeErr)
	}

	h.logger.Info("Auth handler: signed out",
		"session_id", sess.ID)

	return encode(h.presenter.view(ctx, sess, sess.Store.State()))
}

// RefreshToken exchanges a refresh token for a new token pair.
func (h *Auth) RefreshToken(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in tokenRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if in.RefreshToken == "" {
		return nil, status.Error(codes.InvalidArgument, "refresh token is required")
	}

	tokens, err := h.authService.Refresh(ctx, in.RefreshToken)
	if err != nil {
		h.logger.Info("Auth handler: token refresh failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	return encode(tokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken})
}

func or(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
