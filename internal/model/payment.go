package model

import (
	"context"
	"time"
)

// PaymentStatus mirrors the processor's intent lifecycle.
type PaymentStatus string

const (
	PaymentStatusRequiresPaymentMethod PaymentStatus = "requires_payment_method"
	PaymentStatusRequiresConfirmation  PaymentStatus = "requires_confirmation"
	PaymentStatusProcessing            PaymentStatus = "processing"
	PaymentStatusSucceeded             PaymentStatus = "succeeded"
	PaymentStatusCanceled              PaymentStatus = "canceled"
)

// Metadata keys binding a payment intent to the basket it was created for.
const (
	MetadataUserID = "user_id"
	MetadataBasket = "basket"
)

// PaymentIntent is a hosted-checkout payment created for a basket total.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
	Status       PaymentStatus
	Created      time.Time
	Metadata     map[string]string
}

// PaymentProcessor creates and inspects payment intents.
// The card is confirmed by the client against the hosted widget.
type PaymentProcessor interface {
	CreatePaymentIntent(ctx context.Context, amountMinorUnits int64, metadata map[string]string) (PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, id string) (PaymentIntent, error)
}

// Order is the record written after a successful checkout.
type Order struct {
	ID      string        `json:"id"`
	Basket  []BasketEntry `json:"basket"`
	Amount  int64         `json:"amount"`
	Created int64         `json:"created"`
}
