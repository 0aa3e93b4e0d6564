package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"

	"github.com/dtroode/storefront-server/internal/model"
)

type fakeIntents struct {
	created *stripe.PaymentIntentParams
	intent  *stripe.PaymentIntent
	err     error
	gotID   string
}

func (f *fakeIntents) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	f.created = params
	return f.intent, f.err
}

func (f *fakeIntents) Get(id string, _ *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	f.gotID = id
	return f.intent, f.err
}

func TestNewStripe_EmptyKey(t *testing.T) {
	s, err := NewStripe("", "usd")
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestStripe_CreatePaymentIntent(t *testing.T) {
	fake := &fakeIntents{intent: &stripe.PaymentIntent{
		ID:           "pi_1",
		ClientSecret: "pi_1_secret",
		Amount:       1550,
		Currency:     stripe.CurrencyUSD,
		Status:       stripe.PaymentIntentStatusRequiresPaymentMethod,
		Created:      1700000000,
		Metadata:     map[string]string{model.MetadataUserID: "u1", model.MetadataBasket: "fp"},
	}}
	s := newStripe(fake, "USD")

	ctx := context.Background()
	pi, err := s.CreatePaymentIntent(ctx, 1550, map[string]string{model.MetadataUserID: "u1", model.MetadataBasket: "fp"})
	require.NoError(t, err)

	require.NotNil(t, fake.created)
	assert.Equal(t, int64(1550), *fake.created.Amount)
	assert.Equal(t, "usd", *fake.created.Currency)
	assert.True(t, *fake.created.AutomaticPaymentMethods.Enabled)
	assert.Equal(t, ctx, fake.created.Context)
	assert.Equal(t, map[string]string{"user_id": "u1", "basket": "fp"}, fake.created.Metadata)

	assert.Equal(t, model.PaymentIntent{
		ID:           "pi_1",
		ClientSecret: "pi_1_secret",
		Amount:       1550,
		Currency:     "usd",
		Status:       model.PaymentStatusRequiresPaymentMethod,
		Created:      time.Unix(1700000000, 0).UTC(),
		Metadata:     map[string]string{"user_id": "u1", "basket": "fp"},
	}, pi)
}

func TestStripe_CreatePaymentIntent_Errors(t *testing.T) {
	t.Run("non-positive amount", func(t *testing.T) {
		fake := &fakeIntents{}
		_, err := newStripe(fake, "usd").CreatePaymentIntent(context.Background(), 0, nil)
		require.Error(t, err)
		assert.Nil(t, fake.created)
	})

	t.Run("api error", func(t *testing.T) {
		fake := &fakeIntents{err: errors.New("card_declined")}
		_, err := newStripe(fake, "usd").CreatePaymentIntent(context.Background(), 100, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create payment intent")
	})
}

func TestStripe_GetPaymentIntent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeIntents{intent: &stripe.PaymentIntent{
			ID:       "pi_2",
			Status:   stripe.PaymentIntentStatusSucceeded,
			Amount:   300,
			Metadata: map[string]string{model.MetadataUserID: "u1"},
		}}
		pi, err := newStripe(fake, "usd").GetPaymentIntent(context.Background(), "pi_2")
		require.NoError(t, err)
		assert.Equal(t, "u1", pi.Metadata[model.MetadataUserID])
		assert.Equal(t, "pi_2", fake.gotID)
		assert.Equal(t, model.PaymentStatusSucceeded, pi.Status)
		assert.Equal(t, int64(300), pi.Amount)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := newStripe(&fakeIntents{}, "usd").GetPaymentIntent(context.Background(), "")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("not found", func(t *testing.T) {
		fake := &fakeIntents{err: &stripe.Error{HTTPStatusCode: 404, Code: stripe.ErrorCodeResourceMissing}}
		_, err := newStripe(fake, "usd").GetPaymentIntent(context.Background(), "pi_missing")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
