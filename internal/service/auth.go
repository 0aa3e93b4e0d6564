package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apiErrors "github.com/dtroode/gophkeeper-api/errors"
	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// Auth is the identity provider: it owns credentials and tokens and writes
// the profile document of newly registered users.
type Auth struct {
	userStore    model.UserStore
	documents    model.DocumentStore
	tokenService *TokenService
	kdf          model.KDFParams
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	documents model.DocumentStore,
	refreshTokenStore model.RefreshTokenStore,
	tokenManager model.TokenManager,
	kdf model.KDFParams,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		documents:    documents,
		tokenService: NewTokenService(tokenManager, refreshTokenStore, logger),
		kdf:          kdf,
		logger:       logger,
	}
}

// Tokens exposes the token service for rotation and cleanup.
func (a *Auth) Tokens() *TokenService {
	return a.tokenService
}

// Register creates an account and its profile document and signs the user in.
func (a *Auth) Register(ctx context.Context, reg model.Registration) (model.Identity, model.TokenPair, error) {
	email := strings.TrimSpace(reg.Email)

	a.logger.Debug("Auth service: starting user registration",
		"email", email)

	if email == "" {
		return model.Identity{}, model.TokenPair{}, &model.AuthError{Op: "register", Err: model.ErrBadCredentials}
	}
	if reg.Password != reg.ReEnterPassword {
		return model.Identity{}, model.TokenPair{}, &model.AuthError{Op: "register", Err: model.ErrPasswordMismatch}
	}
	if len(reg.Password) < minPasswordLen {
		return model.Identity{}, model.TokenPair{}, &model.AuthError{Op: "register", Err: model.ErrPasswordTooShort}
	}

	existingUser, err := a.userStore.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.Identity{}, model.TokenPair{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if existingUser.ID != uuid.Nil {
		a.logger.Info("Auth service: user already exists",
			"email", email)
		return model.Identity{}, model.TokenPair{}, apiErrors.NewErrEmailIsTaken(email)
	}

	hash, salt, err := hashPassword(reg.Password, a.kdf)
	if err != nil {
		return model.Identity{}, model.TokenPair{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
		KDF:          a.kdf,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, model.ErrAlreadyExists) {
		return model.Identity{}, model.TokenPair{}, apiErrors.NewErrEmailIsTaken(email)
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.Identity{}, model.TokenPair{}, fmt.Errorf("failed to create user: %w", err)
	}

	// The account is usable without a profile; resume falls back to defaults.
	err = a.documents.SetDocument(ctx, model.CollectionUsers, user.ID.String(), map[string]any{
		model.FieldName:        reg.Name,
		model.FieldContactInfo: email,
		model.FieldAddress:     reg.Address,
		model.FieldBasket:      []model.BasketEntry{},
	})
	if err != nil {
		a.logger.Error("Auth service: failed to write profile document",
			"user_id", user.ID,
			"error", err.Error())
	}

	tokens, err := a.tokenService.Issue(ctx, user.ID)
	if err != nil {
		return model.Identity{}, model.TokenPair{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user registration completed successfully",
		"user_id", user.ID)

	return model.Identity{
		UID:         user.ID,
		Email:       user.Email,
		DisplayName: reg.Name,
		Address:     reg.Address,
	}, tokens, nil
}

// SignIn verifies credentials and issues a token pair.
func (a *Auth) SignIn(ctx context.Context, creds model.Credentials) (model.Identity, model.TokenPair, error) {
	email := strings.TrimSpace(creds.Email)

	a.logger.Debug("Auth service: starting user sign in",
		"email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.Identity{}, model.TokenPair{}, apiErrors.NewErrUserNotFound(email)
	}
	if err != nil {
		return model.Identity{}, model.TokenPair{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !verifyPassword(creds.Password, user.Salt, user.KDF, user.PasswordHash) {
		a.logger.Info("Auth service: wrong password",
			"user_id", user.ID)
		return model.Identity{}, model.TokenPair{}, &model.AuthError{Op: "sign in", Err: model.ErrBadCredentials}
	}

	tokens, err := a.tokenService.Issue(ctx, user.ID)
	if err != nil {
		return model.Identity{}, model.TokenPair{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user signed in",
		"user_id", user.ID)

	return model.Identity{UID: user.ID, Email: user.Email}, tokens, nil
}

// SignOut revokes the presented refresh token. An empty token is a no-op.
func (a *Auth) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := a.tokenService.RevokeByToken(ctx, refreshToken); err != nil {
		return &model.AuthError{Op: "sign out", Err: err}
	}
	return nil
}

// Refresh rotates the refresh token.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	tokens, err := a.tokenService.Refresh(ctx, refreshToken)
	if err != nil {
		return model.TokenPair{}, &model.AuthError{Op: "refresh", Err: err}
	}
	return tokens, nil
}

// Identify resolves an access token to the identity it was issued for.
func (a *Auth) Identify(ctx context.Context, accessToken string) (model.Identity, error) {
	userID, err := a.tokenService.GetUserID(ctx, accessToken)
	if err != nil {
		return model.Identity{}, apiErrors.NewErrInvalidAuthorizationToken()
	}

	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Identity{}, apiErrors.NewErrInvalidAuthorizationToken()
	}
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return model.Identity{UID: user.ID, Email: user.Email}, nil
}
