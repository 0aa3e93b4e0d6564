package handler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	grpcctx "github.com/dtroode/storefront-server/internal/api/grpc/context"
	"github.com/dtroode/storefront-server/internal/i18n"
	"github.com/dtroode/storefront-server/internal/mocks"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/repository/memory"
	"github.com/dtroode/storefront-server/internal/service"
	"github.com/dtroode/storefront-server/internal/testutil"
)

type fixture struct {
	cm       *grpcctx.Manager
	authSvc  *mocks.AuthService
	titles   *mocks.TitleCatalog
	docs     *memory.DocumentRepository
	sessions *service.Sessions
	h        *Storefront
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	lg := testutil.MakeNoopLogger()

	localizer, err := i18n.NewLocalizer("en")
	require.NoError(t, err)

	f := fixture{
		cm:      grpcctx.NewManager(),
		authSvc: mocks.NewAuthService(t),
		titles:  mocks.NewTitleCatalog(t),
		docs:    memory.NewDocumentRepository(testutil.MakeNoopLogger()),
	}
	basketSync := service.NewBasketSync(f.docs, false, lg)
	f.sessions = service.NewSessions(basketSync, time.Hour, lg)
	checkout := service.NewCheckout(f.docs, nil, nil, basketSync, lg)
	f.h = NewStorefront(f.authSvc, f.sessions, basketSync, service.NewProducts(f.docs), checkout, f.titles, f.cm, localizer, lg)
	return f
}

func (f fixture) open(t *testing.T) (context.Context, *service.Session) {
	t.Helper()
	sess := f.sessions.Open(context.Background(), "en", nil)
	return f.cm.SetSessionToContext(context.Background(), sess), sess
}

func request(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

func TestAuth_RegisterFallsBackToForm(t *testing.T) {
	f := newFixture(t)
	ctx, sess := f.open(t)

	_, err := f.h.SetInputValue(ctx, request(t, map[string]any{"field": "contactInfo", "value": "ada@example.com"}))
	require.NoError(t, err)
	_, err = f.h.SetInputValue(ctx, request(t, map[string]any{"field": "password", "value": "from-form"}))
	require.NoError(t, err)

	user := model.Identity{UID: uuid.New(), Email: "ada@example.com"}
	f.authSvc.On("Register", mock.Anything, mock.MatchedBy(func(reg model.Registration) bool {
		return reg.Email == "ada@example.com" &&
			reg.Password == "from-form" &&
			reg.ReEnterPassword == "typed" &&
			reg.Name == "Ada"
	})).Return(user, model.TokenPair{AccessToken: "a", RefreshToken: "r"}, nil).Once()

	out, err := f.h.Register(ctx, request(t, map[string]any{"name": "Ada", "re_enter_password": "typed"}))
	require.NoError(t, err)
	assert.Equal(t, "a", out.GetFields()["access_token"].GetStringValue())
	require.NotNil(t, sess.Auth.Current())
	assert.Equal(t, user.UID, sess.Auth.Current().UID)
}

func TestAuth_RegisterRejected(t *testing.T) {
	f := newFixture(t)
	ctx, sess := f.open(t)

	f.authSvc.On("Register", mock.Anything, mock.Anything).
		Return(model.Identity{}, model.TokenPair{}, &model.AuthError{Op: "register", Err: model.ErrPasswordMismatch}).Once()

	_, err := f.h.Register(ctx, request(t, map[string]any{"contact_info": "a@b.c", "password": "x", "re_enter_password": "y"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Nil(t, sess.Auth.Current())
}

func TestAuth_SignOutSignsOutWhenRevokeFails(t *testing.T) {
	f := newFixture(t)
	ctx, sess := f.open(t)
	sess.Auth.Set(ctx, &model.Identity{UID: uuid.New(), Email: "ada@example.com"})
	require.True(t, sess.Store.State().SignedIn())

	f.authSvc.On("SignOut", mock.Anything, "r").
		Return(&model.AuthError{Op: "sign out", Err: model.ErrTokenRevoked}).Once()

	_, err := f.h.SignOut(ctx, request(t, map[string]any{"refresh_token": "r"}))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Nil(t, sess.Auth.Current())
	assert.False(t, sess.Store.State().SignedIn())
	assert.Equal(t, model.DefaultUserAddress, sess.Store.State().UserAddress)
}

func TestAuth_RefreshToken(t *testing.T) {
	f := newFixture(t)

	_, err := f.h.RefreshToken(context.Background(), request(t, nil))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	f.authSvc.On("Refresh", mock.Anything, "r1").Return(model.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil).Once()
	out, err := f.h.RefreshToken(context.Background(), request(t, map[string]any{"refresh_token": "r1"}))
	require.NoError(t, err)
	assert.Equal(t, "r2", out.GetFields()["refresh_token"].GetStringValue())
}

func TestSessions_RequireSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.h.GetSession(context.Background(), request(t, nil))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestBasket_Validation(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.open(t)

	tests := []struct {
		name string
		call func() error
	}{
		{
			name: "add without product",
			call: func() error {
				_, err := f.h.AddToBasket(ctx, request(t, map[string]any{"quantity": 1}))
				return err
			},
		},
		{
			name: "add with non-numeric quantity",
			call: func() error {
				_, err := f.h.AddToBasket(ctx, request(t, map[string]any{"product_id": "p", "quantity": "two"}))
				return err
			},
		},
		{
			name: "remove without unique id",
			call: func() error {
				_, err := f.h.RemoveFromBasket(ctx, request(t, nil))
				return err
			},
		},
		{
			name: "quantity out of range",
			call: func() error {
				_, err := f.h.UpdateBasketQuantity(ctx, request(t, map[string]any{"product_id": "p", "quantity": 0}))
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, codes.InvalidArgument, status.Code(tt.call()))
		})
	}
}

func TestBasket_RemoveMissingEntryIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx, sess := f.open(t)
	require.NoError(t, f.docs.SetDocument(ctx, model.CollectionProducts, "p1", map[string]any{"title": "Echo", "price": 10.0}))

	_, err := f.h.AddToBasket(ctx, request(t, map[string]any{"product_id": "p1"}))
	require.NoError(t, err)
	before := sess.Store.State().Basket

	out, err := f.h.RemoveFromBasket(ctx, request(t, map[string]any{"unique_id": "missing"}))
	require.NoError(t, err)
	assert.Equal(t, float64(1), out.GetFields()["item_count"].GetNumberValue())
	assert.Equal(t, before, sess.Store.State().Basket)
}

func TestCheckout_RejectsForeignToken(t *testing.T) {
	f := newFixture(t)
	ctx, sess := f.open(t)

	_, err := f.h.CreatePayment(ctx, request(t, nil))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	caller := model.Identity{UID: uuid.New(), Email: "eve@example.com"}
	authed := f.cm.SetUserToContext(ctx, caller)

	_, err = f.h.CreatePayment(authed, request(t, nil))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	sess.Auth.Set(ctx, &model.Identity{UID: uuid.New(), Email: "ada@example.com"})
	_, err = f.h.CreatePayment(authed, request(t, nil))
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestCheckout_PaymentsDisabled(t *testing.T) {
	f := newFixture(t)
	ctx, sess := f.open(t)
	require.NoError(t, f.docs.SetDocument(ctx, model.CollectionProducts, "p1", map[string]any{"title": "Echo", "price": 10.0}))

	user := model.Identity{UID: uuid.New(), Email: "ada@example.com"}
	sess.Auth.Set(ctx, &user)
	_, err := f.h.AddToBasket(ctx, request(t, map[string]any{"product_id": "p1"}))
	require.NoError(t, err)

	_, err = f.h.CreatePayment(f.cm.SetUserToContext(ctx, user), request(t, nil))
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestCatalog(t *testing.T) {
	f := newFixture(t)

	f.titles.On("Shelves").Return(model.TitleShelves{
		Recommend: []model.Title{{ID: "m1", Type: model.TitleRecommend, Title: "Bao"}},
		New:       []model.Title{},
		Original:  []model.Title{},
		Trending:  []model.Title{},
	}).Once()
	out, err := f.h.ListTitles(context.Background(), request(t, nil))
	require.NoError(t, err)
	assert.Len(t, out.GetFields()["recommend"].GetListValue().GetValues(), 1)

	_, err = f.h.GetTitle(context.Background(), request(t, nil))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	f.titles.On("Title", mock.Anything, "m404").Return(model.Title{}, model.ErrNotFound).Once()
	_, err = f.h.GetTitle(context.Background(), request(t, map[string]any{"id": "m404"}))
	assert.Equal(t, codes.NotFound, status.Code(err))
}
