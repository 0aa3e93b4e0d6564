package middleware

import (
	"context"
	"testing"

	apiErrors "github.com/dtroode/gophkeeper-api/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/storefront-server/internal/mocks"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/testutil"
)

type ctxKey struct{}

func TestAuthenticate_AuthFunc(t *testing.T) {
	t.Parallel()

	user := model.Identity{UID: uuid.New(), Email: "ana@example.com"}

	tests := []struct {
		name         string
		mdAuthHeader string
		identifyErr  error
		wantGRPCCode codes.Code
		wantErr      bool
	}{
		{
			name:         "missing authorization header",
			wantGRPCCode: codes.Unauthenticated,
			wantErr:      true,
		},
		{
			name:         "invalid token",
			mdAuthHeader: "Bearer invalid",
			identifyErr:  apiErrors.NewErrInvalidAuthorizationToken(),
			wantGRPCCode: codes.Unauthenticated,
			wantErr:      true,
		},
		{
			name:         "valid token",
			mdAuthHeader: "Bearer token",
			wantGRPCCode: codes.OK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cm := mocks.NewContextManager(t)
			idf := mocks.NewIdentifier(t)

			if tt.mdAuthHeader != "" {
				idf.On("Identify", mock.Anything, tokenOf(tt.mdAuthHeader)).Return(user, tt.identifyErr)
			}
			if !tt.wantErr {
				cm.On("SetUserToContext", mock.Anything, user).
					Return(context.WithValue(context.Background(), ctxKey{}, user))
			}
			m := NewAuthenticate(idf, cm, testutil.MakeNoopLogger())

			ctx := context.Background()
			if tt.mdAuthHeader != "" {
				ctx = metadata.NewIncomingContext(ctx, metadata.Pairs("authorization", tt.mdAuthHeader))
			}

			newCtx, err := m.AuthFunc(ctx)

			if tt.wantErr {
				assert.Error(t, err)
				st, ok := status.FromError(err)
				assert.True(t, ok)
				assert.Equal(t, tt.wantGRPCCode, st.Code())
				assert.Nil(t, newCtx)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, user, newCtx.Value(ctxKey{}))
		})
	}
}

func TestAuthenticate_OptionalAuthFunc(t *testing.T) {
	t.Parallel()

	t.Run("anonymous passes through", func(t *testing.T) {
		m := NewAuthenticate(mocks.NewIdentifier(t), mocks.NewContextManager(t), testutil.MakeNoopLogger())

		ctx := context.WithValue(context.Background(), ctxKey{}, "original")
		got, err := m.OptionalAuthFunc(ctx)
		assert.NoError(t, err)
		assert.Equal(t, ctx, got)
	})

	t.Run("present token must be valid", func(t *testing.T) {
		idf := mocks.NewIdentifier(t)
		idf.On("Identify", mock.Anything, "stale").Return(model.Identity{}, assert.AnError)
		m := NewAuthenticate(idf, mocks.NewContextManager(t), testutil.MakeNoopLogger())

		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer stale"))
		_, err := m.OptionalAuthFunc(ctx)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})
}

func tokenOf(header string) string {
	return header[len("Bearer "):]
}
