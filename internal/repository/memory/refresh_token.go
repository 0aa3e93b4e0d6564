package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

type RefreshTokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]model.RefreshToken
}

func NewRefreshTokenRepository() *RefreshTokenRepository {
	return &RefreshTokenRepository{tokens: make(map[string]model.RefreshToken)}
}

func cloneToken(t model.RefreshToken) model.RefreshToken {
	t.TokenHash = append([]byte(nil), t.TokenHash...)
	if t.RevokedAt != nil {
		r := *t.RevokedAt
		t.RevokedAt = &r
	}
	if t.RotatedFromJTI != nil {
		j := *t.RotatedFromJTI
		t.RotatedFromJTI = &j
	}
	return t
}

func (r *RefreshTokenRepository) Create(_ context.Context, token model.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[token.JTI]; ok {
		return model.ErrAlreadyExists
	}
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	now := time.Now()
	token.CreatedAt, token.UpdatedAt = now, now
	r.tokens[token.JTI] = cloneToken(token)
	return nil
}

func (r *RefreshTokenRepository) GetByJTI(_ context.Context, jti string) (model.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tokens[jti]
	if !ok {
		return model.RefreshToken{}, model.ErrNotFound
	}
	return cloneToken(t), nil
}

func (r *RefreshTokenRepository) RevokeByJTI(_ context.Context, jti string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.tokens[jti]; ok && t.RevokedAt == nil {
		r.tokens[jti] = revoke(t)
	}
	return nil
}

func (r *RefreshTokenRepository) RevokeAllByUser(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for jti, t := range r.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			r.tokens[jti] = revoke(t)
		}
	}
	return nil
}

func revoke(t model.RefreshToken) model.RefreshToken {
	now := time.Now()
	t.RevokedAt = &now
	t.UpdatedAt = now
	return t
}

func (r *RefreshTokenRepository) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for jti, t := range r.tokens {
		if t.ExpiresAt.Before(before) {
			delete(r.tokens, jti)
			n++
		}
	}
	return n, nil
}
