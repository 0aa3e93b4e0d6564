package service

import (
	"context"
	"errors"
	"testing"

	apiErrors "github.com/dtroode/gophkeeper-api/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	servermocks "github.com/dtroode/storefront-server/internal/mocks"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/repository/memory"
	"github.com/dtroode/storefront-server/internal/testutil"
	"github.com/dtroode/storefront-server/internal/token"
)

var testKDF = model.KDFParams{Time: 1, MemKiB: 1024, Par: 1}

type authFixture struct {
	auth      *Auth
	users     *memory.UserRepository
	documents *memory.DocumentRepository
	tokens    *memory.RefreshTokenRepository
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()

	jwt, err := token.NewJWT("test-secret")
	require.NoError(t, err)

	f := authFixture{
		users:     memory.NewUserRepository(),
		documents: memory.NewDocumentRepository(testutil.MakeNoopLogger()),
		tokens:    memory.NewRefreshTokenRepository(),
	}
	f.auth = NewAuth(f.users, f.documents, f.tokens, jwt, testKDF, testutil.MakeNoopLogger())
	return f
}

func validRegistration() model.Registration {
	return model.Registration{
		Name:            "Ada",
		Email:           "ada@example.com",
		Address:         "221B Baker Street",
		Password:        "secret1",
		ReEnterPassword: "secret1",
	}
}

func requireAPIError(t *testing.T, err error) *apiErrors.APIError {
	t.Helper()
	var apiErr *apiErrors.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	return apiErr
}

func TestAuth_Register(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	id, pair, err := f.auth.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id.UID)
	assert.Equal(t, "ada@example.com", id.Email)
	assert.Equal(t, "Ada", id.DisplayName)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	user, err := f.users.GetByID(ctx, id.UID)
	require.NoError(t, err)
	assert.NotEqual(t, []byte("secret1"), user.PasswordHash)
	assert.Len(t, user.Salt, passwordSaltLen)
	assert.Equal(t, testKDF, user.KDF)

	doc, err := f.documents.GetDocument(ctx, model.CollectionUsers, id.UID.String())
	require.NoError(t, err)
	assert.Equal(t, "Ada", doc.String(model.FieldName))
	assert.Equal(t, "ada@example.com", doc.String(model.FieldContactInfo))
	assert.Equal(t, "221B Baker Street", doc.String(model.FieldAddress))
	assert.Equal(t, []any{}, doc.Fields[model.FieldBasket])
}

func TestAuth_Register_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *model.Registration)
		wantErr error
	}{
		{name: "empty email", mutate: func(r *model.Registration) { r.Email = "  " }, wantErr: model.ErrBadCredentials},
		{name: "passwords differ", mutate: func(r *model.Registration) { r.ReEnterPassword = "secret2" }, wantErr: model.ErrPasswordMismatch},
		{name: "short password", mutate: func(r *model.Registration) { r.Password, r.ReEnterPassword = "abc", "abc" }, wantErr: model.ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			reg := validRegistration()
			tt.mutate(&reg)

			_, _, err := f.auth.Register(context.Background(), reg)
			require.ErrorIs(t, err, tt.wantErr)

			var authErr *model.AuthError
			assert.True(t, errors.As(err, &authErr))
		})
	}
}

func TestAuth_Register_EmailTaken(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	_, _, err := f.auth.Register(ctx, validRegistration())
	require.NoError(t, err)

	reg := validRegistration()
	reg.Email = "ADA@example.com"
	_, _, err = f.auth.Register(ctx, reg)
	require.Error(t, err)
	requireAPIError(t, err)
}

func TestAuth_Register_UserStoreError(t *testing.T) {
	ctx := context.Background()

	users := servermocks.NewUserStore(t)
	users.On("GetByEmail", mock.Anything, "ada@example.com").Return(model.User{}, assert.AnError).Once()

	a := NewAuth(users, memory.NewDocumentRepository(testutil.MakeNoopLogger()), memory.NewRefreshTokenRepository(),
		servermocks.NewTokenManager(t), testKDF, testutil.MakeNoopLogger())

	_, _, err := a.Register(ctx, validRegistration())
	require.ErrorIs(t, err, assert.AnError)
}

func TestAuth_Register_ProfileWriteFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()

	jwt, err := token.NewJWT("test-secret")
	require.NoError(t, err)

	docs := servermocks.NewDocumentStore(t)
	docs.On("SetDocument", mock.Anything, model.CollectionUsers, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	a := NewAuth(memory.NewUserRepository(), docs, memory.NewRefreshTokenRepository(), jwt, testKDF, testutil.MakeNoopLogger())

	id, pair, err := a.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id.UID)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestAuth_SignIn(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	registered, _, err := f.auth.Register(ctx, validRegistration())
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		id, pair, err := f.auth.SignIn(ctx, model.Credentials{Email: " ada@example.com ", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, registered.UID, id.UID)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := f.auth.SignIn(ctx, model.Credentials{Email: "ada@example.com", Password: "nope123"})
		require.ErrorIs(t, err, model.ErrBadCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, err := f.auth.SignIn(ctx, model.Credentials{Email: "bob@example.com", Password: "secret1"})
		require.Error(t, err)
		requireAPIError(t, err)
	})
}

func TestAuth_Identify(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	registered, pair, err := f.auth.Register(ctx, validRegistration())
	require.NoError(t, err)

	id, err := f.auth.Identify(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.UID, id.UID)
	assert.Equal(t, "ada@example.com", id.Email)

	_, err = f.auth.Identify(ctx, "garbage")
	require.Error(t, err)
	requireAPIError(t, err)

	// A refresh token is not an access token.
	_, err = f.auth.Identify(ctx, pair.RefreshToken)
	require.Error(t, err)
}

func TestAuth_RefreshAndSignOut(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	_, pair, err := f.auth.Register(ctx, validRegistration())
	require.NoError(t, err)

	rotated, err := f.auth.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	_, err = f.auth.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, model.ErrTokenRevoked)

	// Replaying the rotated-out token revoked its successor as well.
	_, err = f.auth.Refresh(ctx, rotated.RefreshToken)
	require.ErrorIs(t, err, model.ErrTokenRevoked)

	_, fresh, err := f.auth.SignIn(ctx, model.Credentials{Email: "ada@example.com", Password: validRegistration().Password})
	require.NoError(t, err)
	require.NoError(t, f.auth.SignOut(ctx, fresh.RefreshToken))
	_, err = f.auth.Refresh(ctx, fresh.RefreshToken)
	require.ErrorIs(t, err, model.ErrTokenRevoked)

	assert.NoError(t, f.auth.SignOut(ctx, ""))

	err = f.auth.SignOut(ctx, "garbage")
	var authErr *model.AuthError
	assert.True(t, errors.As(err, &authErr))
}
