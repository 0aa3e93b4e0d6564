package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// TokenService provides high-level operations for issuing, refreshing,
// and revoking tokens. It composes the TokenManager and RefreshTokenStore.
type TokenService struct {
	manager model.TokenManager
	store   model.RefreshTokenStore
	logger  *logger.Logger
	now     func() time.Time
}

func NewTokenService(manager model.TokenManager, store model.RefreshTokenStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, store: store, logger: logger, now: time.Now}
}

// NOTE: Keep durations here in sync with the token manager. These are used
// only for persistence (cleanup/queries); cryptographic validity is checked
// against the JWT claims by the manager at parse time.
const (
	refreshTTL = 30 * 24 * time.Hour
)

func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID) (model.TokenPair, error) {
	pair, err := s.issue(ctx, userID, nil)
	if err != nil {
		return model.TokenPair{}, err
	}

	s.logger.Debug("Token service: issued token pair",
		"user_id", userID)

	return pair, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued that records the old jti.
func (s *TokenService) Refresh(ctx context.Context, presentedRefresh string) (model.TokenPair, error) {
	userID, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return model.TokenPair{}, err
	}

	rt, err := s.store.GetByJTI(ctx, jti)
	if err != nil {
		return model.TokenPair{}, err
	}

	// Validate stored state vs presented token.
	if err := validateRecord(rt, hashRefresh(presentedRefresh), s.now()); err != nil {
		s.logger.Warn("Token service: rejected refresh token",
			"user_id", userID,
			"jti", jti,
			"error", err.Error())
		if errors.Is(err, model.ErrTokenRevoked) {
			s.revokeOnReuse(ctx, userID)
		}
		return model.TokenPair{}, err
	}

	if err := s.store.RevokeByJTI(ctx, jti); err != nil {
		return model.TokenPair{}, fmt.Errorf("revoke old refresh: %w", err)
	}

	rotatedFrom := rt.JTI
	return s.issue(ctx, userID, &rotatedFrom)
}

func (s *TokenService) RevokeByToken(ctx context.Context, presentedRefresh string) error {
	_, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return err
	}
	return s.store.RevokeByJTI(ctx, jti)
}

func (s *TokenService) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return s.store.RevokeAllByUser(ctx, userID)
}

// revokeOnReuse revokes every refresh token of a user who presented a
// revoked one: either the token leaked or the client replayed it.
func (s *TokenService) revokeOnReuse(ctx context.Context, userID uuid.UUID) {
	if err := s.RevokeAllForUser(ctx, userID); err != nil {
		s.logger.Error("Token service: failed to revoke tokens after reuse",
			"user_id", userID,
			"error", err.Error())
	}
}

func (s *TokenService) GetUserID(_ context.Context, token string) (uuid.UUID, error) {
	return s.manager.ParseAccessToken(token)
}

// PurgeExpired deletes refresh tokens past their expiry.
func (s *TokenService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("purge expired refresh tokens: %w", err)
	}
	if n > 0 {
		s.logger.Info("Token service: purged expired refresh tokens",
			"count", n)
	}
	return n, nil
}

func (s *TokenService) issue(ctx context.Context, userID uuid.UUID, rotatedFrom *string) (model.TokenPair, error) {
	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue access: %w", err)
	}

	refresh, jti, err := s.manager.GenerateRefreshToken(userID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue refresh: %w", err)
	}

	now := s.now()
	rt := model.RefreshToken{
		ID:             uuid.New(),
		JTI:            jti,
		UserID:         userID,
		TokenHash:      hashRefresh(refresh),
		IssuedAt:       now,
		ExpiresAt:      now.Add(refreshTTL),
		RotatedFromJTI: rotatedFrom,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.Create(ctx, rt); err != nil {
		return model.TokenPair{}, fmt.Errorf("persist refresh: %w", err)
	}

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func validateRecord(rt model.RefreshToken, presentedHash []byte, now time.Time) error {
	if rt.RevokedAt != nil {
		return model.ErrTokenRevoked
	}
	if now.After(rt.ExpiresAt) {
		return model.ErrTokenExpired
	}
	if !equalBytes(rt.TokenHash, presentedHash) {
		return model.ErrTokenMismatch
	}
	return nil
}

func equalBytes(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
