package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/reducer"
)

// Checkout turns a signed-in session's basket into a paid order.
type Checkout struct {
	documents  model.DocumentStore
	payments   model.PaymentProcessor
	receipts   model.ReceiptArchive
	basketSync *BasketSync
	logger     *logger.Logger
}

// NewCheckout wires the checkout flow. payments and receipts may be nil:
// without payments every checkout fails, without receipts nothing is archived.
func NewCheckout(
	documents model.DocumentStore,
	payments model.PaymentProcessor,
	receipts model.ReceiptArchive,
	basketSync *BasketSync,
	logger *logger.Logger,
) *Checkout {
	return &Checkout{
		documents:  documents,
		payments:   payments,
		receipts:   receipts,
		basketSync: basketSync,
		logger:     logger,
	}
}

// CreatePayment opens a payment intent for the session subtotal.
func (c *Checkout) CreatePayment(ctx context.Context, sess *Session) (model.PaymentIntent, error) {
	state := sess.Store.State()
	if !state.SignedIn() {
		return model.PaymentIntent{}, model.ErrNotSignedIn
	}
	if len(state.Basket) == 0 {
		return model.PaymentIntent{}, &model.PaymentError{Op: "create", Err: model.ErrEmptyBasket}
	}
	if c.payments == nil {
		return model.PaymentIntent{}, &model.PaymentError{Op: "create", Err: model.ErrPaymentsDisabled}
	}

	amount := reducer.MinorUnits(reducer.Subtotal(state.Basket))
	intent, err := c.payments.CreatePaymentIntent(ctx, amount, map[string]string{
		model.MetadataUserID: state.User.UID.String(),
		model.MetadataBasket: model.BasketFingerprint(state.Basket),
	})
	if err != nil {
		c.logger.Error("Checkout: failed to create payment intent",
			"session_id", sess.ID,
			"amount", amount,
			"error", err.Error())
		return model.PaymentIntent{}, &model.PaymentError{Op: "create", Err: err}
	}

	c.logger.Info("Checkout: payment intent created",
		"session_id", sess.ID,
		"user_id", state.User.UID,
		"payment_intent_id", intent.ID,
		"amount", amount)

	return intent, nil
}

// CompleteOrder records the order for a succeeded payment intent, archives
// its receipt and clears the basket. Completing the same intent twice
// returns the recorded order without touching the basket.
func (c *Checkout) CompleteOrder(ctx context.Context, sess *Session, intentID string) (model.Order, error) {
	state := sess.Store.State()
	if !state.SignedIn() {
		return model.Order{}, model.ErrNotSignedIn
	}
	if c.payments == nil {
		return model.Order{}, &model.PaymentError{Op: "complete", Err: model.ErrPaymentsDisabled}
	}
	uid := state.User.UID.String()
	orders := model.OrdersCollection(uid)

	intent, err := c.payments.GetPaymentIntent(ctx, intentID)
	if err != nil {
		return model.Order{}, &model.PaymentError{Op: "complete", Err: err}
	}
	if intent.Status != model.PaymentStatusSucceeded {
		c.logger.Info("Checkout: payment not succeeded",
			"session_id", sess.ID,
			"payment_intent_id", intentID,
			"status", intent.Status)
		return model.Order{}, &model.PaymentError{Op: "complete", Err: fmt.Errorf("%w: %s", model.ErrPaymentIncomplete, intent.Status)}
	}
	if intent.Metadata[model.MetadataUserID] != uid {
		c.logger.Error("Checkout: payment intent of another user",
			"session_id", sess.ID,
			"user_id", uid,
			"payment_intent_id", intentID)
		return model.Order{}, &model.PaymentError{Op: "complete", Err: model.ErrPaymentForeign}
	}

	existing, err := c.documents.GetDocument(ctx, orders, intent.ID)
	if err == nil {
		order, err := toOrder(existing)
		if err != nil {
			return model.Order{}, err
		}
		c.ensureReceipt(ctx, uid, order)
		return order, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.Order{}, &model.StoreError{Op: "get", Collection: orders, ID: intent.ID, Err: err}
	}

	if len(state.Basket) == 0 {
		return model.Order{}, &model.PaymentError{Op: "complete", Err: model.ErrEmptyBasket}
	}
	amount := reducer.MinorUnits(reducer.Subtotal(state.Basket))
	if intent.Amount != amount || intent.Metadata[model.MetadataBasket] != model.BasketFingerprint(state.Basket) {
		c.logger.Error("Checkout: payment does not match basket",
			"session_id", sess.ID,
			"payment_intent_id", intent.ID,
			"paid", intent.Amount,
			"subtotal", amount)
		return model.Order{}, &model.PaymentError{Op: "complete", Err: model.ErrPaymentMismatch}
	}

	order := model.Order{
		ID:      intent.ID,
		Basket:  state.Basket,
		Amount:  intent.Amount,
		Created: intent.Created.Unix(),
	}
	err = c.documents.SetDocument(ctx, orders, order.ID, map[string]any{
		"basket":  order.Basket,
		"amount":  order.Amount,
		"created": order.Created,
	})
	if err != nil {
		c.logger.Error("Checkout: failed to record order",
			"session_id", sess.ID,
			"payment_intent_id", intent.ID,
			"error", err.Error())
		return model.Order{}, &model.StoreError{Op: "set", Collection: orders, ID: order.ID, Err: err}
	}

	c.saveReceipt(ctx, uid, order)

	c.basketSync.Clear(ctx, sess)

	c.logger.Info("Checkout: order completed",
		"session_id", sess.ID,
		"user_id", uid,
		"order_id", order.ID,
		"amount", order.Amount)

	return order, nil
}

// ListOrders returns the user's orders, newest first.
func (c *Checkout) ListOrders(ctx context.Context, sess *Session) ([]model.Order, error) {
	user := sess.Auth.Current()
	if user == nil {
		return nil, model.ErrNotSignedIn
	}
	orders := model.OrdersCollection(user.UID.String())

	docs, err := c.documents.ListDocuments(ctx, orders)
	if err != nil {
		return nil, &model.StoreError{Op: "list", Collection: orders, Err: err}
	}

	out := make([]model.Order, 0, len(docs))
	for _, doc := range docs {
		order, err := toOrder(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, order)
	}
	slices.SortStableFunc(out, func(a, b model.Order) int {
		return cmp.Compare(b.Created, a.Created)
	})
	return out, nil
}

func (c *Checkout) saveReceipt(ctx context.Context, uid string, order model.Order) {
	if c.receipts == nil {
		return
	}
	if err := c.receipts.SaveReceipt(ctx, uid, order); err != nil {
		c.logger.Error("Checkout: failed to archive receipt",
			"payment_intent_id", order.ID,
			"error", err.Error())
	}
}

// ensureReceipt archives a recorded order whose receipt upload failed.
func (c *Checkout) ensureReceipt(ctx context.Context, uid string, order model.Order) {
	if c.receipts == nil {
		return
	}
	ok, err := c.receipts.HasReceipt(ctx, uid, order.ID)
	if err != nil {
		c.logger.Error("Checkout: failed to check receipt",
			"payment_intent_id", order.ID,
			"error", err.Error())
		return
	}
	if !ok {
		c.saveReceipt(ctx, uid, order)
	}
}

func toOrder(doc model.Document) (model.Order, error) {
	var order model.Order
	if err := doc.DecodeFields(&order); err != nil {
		return model.Order{}, fmt.Errorf("order %s: %w", doc.ID, err)
	}
	order.ID = doc.ID
	return order, nil
}
