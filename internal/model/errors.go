package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrInvalidQuantity = errors.New("quantity out of range")
	ErrInvalidPrice    = errors.New("price must not be negative")

	ErrSessionNotFound   = errors.New("session not found")
	ErrNotSignedIn       = errors.New("user is not signed in")
	ErrEmptyBasket       = errors.New("basket is empty")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters")
	ErrBadCredentials    = errors.New("invalid email or password")
	ErrPaymentIncomplete = errors.New("payment has not succeeded")
	ErrPaymentsDisabled  = errors.New("payments are not configured")
	ErrPaymentMismatch   = errors.New("payment does not cover the basket")
	ErrPaymentForeign    = errors.New("payment belongs to another user")
)

// AuthError reports a credential or transport failure of the identity provider.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth %s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// StoreError reports a failed read or write against the document store.
type StoreError struct {
	Op         string
	Collection string
	ID         string
	Err        error
}

func (e *StoreError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("store %s %s: %v", e.Op, e.Collection, e.Err)
	}
	return fmt.Sprintf("store %s %s/%s: %v", e.Op, e.Collection, e.ID, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// PaymentError reports a checkout failure. The payment is not complete.
type PaymentError struct {
	Op  string
	Err error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment %s: %v", e.Op, e.Err)
}

func (e *PaymentError) Unwrap() error { return e.Err }
