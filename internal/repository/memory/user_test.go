package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront-server/internal/model"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	user := model.User{ID: uuid.New(), Email: "ann@example.com", PasswordHash: []byte("hash"), Salt: []byte("salt")}
	created, err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, user, created)

	byEmail, err := repo.GetByEmail(ctx, "ANN@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)

	_, err = repo.Create(ctx, model.User{ID: uuid.New(), Email: "ann@example.com"})
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	_, err = repo.GetByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRefreshTokenRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRefreshTokenRepository()
	userID := uuid.New()

	for _, jti := range []string{"j1", "j2"} {
		require.NoError(t, repo.Create(ctx, model.RefreshToken{
			JTI:       jti,
			UserID:    userID,
			TokenHash: []byte(jti),
			IssuedAt:  time.Now(),
			ExpiresAt: time.Now().Add(time.Hour),
		}))
	}
	assert.ErrorIs(t, repo.Create(ctx, model.RefreshToken{JTI: "j1"}), model.ErrAlreadyExists)

	got, err := repo.GetByJTI(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Nil(t, got.RevokedAt)

	require.NoError(t, repo.RevokeByJTI(ctx, "j1"))
	got, err = repo.GetByJTI(ctx, "j1")
	require.NoError(t, err)
	assert.NotNil(t, got.RevokedAt)

	require.NoError(t, repo.RevokeAllByUser(ctx, userID))
	got, err = repo.GetByJTI(ctx, "j2")
	require.NoError(t, err)
	assert.NotNil(t, got.RevokedAt)

	_, err = repo.GetByJTI(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	n, err := repo.DeleteExpired(ctx, time.Now().Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	_, err = repo.GetByJTI(ctx, "j1")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
