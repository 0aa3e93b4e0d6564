// Package payment adapts the Stripe PaymentIntents API to model.PaymentProcessor.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/dtroode/storefront-server/internal/model"
)

var ErrEmptyKey = errors.New("stripe secret key is empty")

// intentsAPI is the subset of the Stripe payment intents client in use.
type intentsAPI interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

var _ model.PaymentProcessor = (*Stripe)(nil)

// Stripe creates card payment intents that the client confirms against the
// hosted payment element.
type Stripe struct {
	intents  intentsAPI
	currency string
}

func NewStripe(secretKey, currency string) (*Stripe, error) {
	if secretKey == "" {
		return nil, ErrEmptyKey
	}
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return newStripe(sc.PaymentIntents, currency), nil
}

func newStripe(intents intentsAPI, currency string) *Stripe {
	return &Stripe{intents: intents, currency: strings.ToLower(currency)}
}

func (s *Stripe) CreatePaymentIntent(ctx context.Context, amountMinorUnits int64, metadata map[string]string) (model.PaymentIntent, error) {
	if amountMinorUnits <= 0 {
		return model.PaymentIntent{}, fmt.Errorf("invalid amount %d", amountMinorUnits)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinorUnits),
		Currency: stripe.String(s.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := s.intents.New(params)
	if err != nil {
		return model.PaymentIntent{}, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return toIntent(pi), nil
}

func (s *Stripe) GetPaymentIntent(ctx context.Context, id string) (model.PaymentIntent, error) {
	if id == "" {
		return model.PaymentIntent{}, model.ErrNotFound
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := s.intents.Get(id, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == 404 {
			return model.PaymentIntent{}, fmt.Errorf("payment intent %s: %w", id, model.ErrNotFound)
		}
		return model.PaymentIntent{}, fmt.Errorf("failed to get payment intent: %w", err)
	}
	return toIntent(pi), nil
}

func toIntent(pi *stripe.PaymentIntent) model.PaymentIntent {
	return model.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       model.PaymentStatus(pi.Status),
		Created:      time.Unix(pi.Created, 0).UTC(),
		Metadata:     pi.Metadata,
	}
}
