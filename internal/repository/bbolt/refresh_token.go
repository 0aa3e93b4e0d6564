package bbolt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/dtroode/storefront-server/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

// RefreshTokenRepository stores refresh tokens keyed by jti.
type RefreshTokenRepository struct {
	db *bbolt.DB
}

func NewRefreshTokenRepository(db *bbolt.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(_ context.Context, token model.RefreshToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	now := time.Now().UTC()
	token.CreatedAt, token.UpdatedAt = now, now

	err := r.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(refreshTokensBucket))
		if err != nil {
			return err
		}
		if b.Get([]byte(token.JTI)) != nil {
			return model.ErrAlreadyExists
		}
		return putToken(b, token)
	})
	if err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) GetByJTI(_ context.Context, jti string) (model.RefreshToken, error) {
	var token model.RefreshToken
	err := r.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(refreshTokensBucket))
		if b == nil {
			return model.ErrNotFound
		}
		data := b.Get([]byte(jti))
		if data == nil {
			return model.ErrNotFound
		}
		return json.Unmarshal(data, &token)
	})
	if err != nil {
		return model.RefreshToken{}, err
	}
	return token, nil
}

func (r *RefreshTokenRepository) RevokeByJTI(_ context.Context, jti string) error {
	return r.revokeWhere(func(t model.RefreshToken) bool { return t.JTI == jti })
}

func (r *RefreshTokenRepository) RevokeAllByUser(_ context.Context, userID uuid.UUID) error {
	return r.revokeWhere(func(t model.RefreshToken) bool { return t.UserID == userID })
}

func (r *RefreshTokenRepository) revokeWhere(match func(model.RefreshToken) bool) error {
	err := r.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(refreshTokensBucket))
		if b == nil {
			return nil
		}
		var revoked []model.RefreshToken
		err := b.ForEach(func(_, v []byte) error {
			var t model.RefreshToken
			if err := json.Unmarshal(v, &t); err != nil {
				return err
			}
			if t.RevokedAt == nil && match(t) {
				revoked = append(revoked, t)
			}
			return nil
		})
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, t := range revoked {
			t.RevokedAt = &now
			t.UpdatedAt = now
			if err := putToken(b, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}

func putToken(b *bbolt.Bucket, token model.RefreshToken) error {
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return b.Put([]byte(token.JTI), data)
}

func (r *RefreshTokenRepository) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	var n int64
	err := r.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(refreshTokensBucket))
		if b == nil {
			return nil
		}
		var expired [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var t model.RefreshToken
			if err := json.Unmarshal(v, &t); err != nil {
				return err
			}
			if t.ExpiresAt.Before(before) {
				expired = append(expired, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range expired {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		n = int64(len(expired))
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}
	return n, nil
}
