package service

import (
	"context"
	"errors"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/reducer"
)

// MutationResult reports the local state after a basket mutation together
// with the outcome of its remote write.
type MutationResult struct {
	State    model.SessionState
	Warnings []reducer.Warning
	// RemoteErr is the failed remote write, if any. The local mutation
	// has already been applied (and possibly compensated).
	RemoteErr  error
	RolledBack bool
}

// BasketSync mirrors basket mutations to the signed-in user's document.
//
// Local state is updated first. The remote write follows, and on failure a
// compensating action is dispatched as a delta against the current state, so
// a late failure never overwrites newer mutations.
type BasketSync struct {
	documents          model.DocumentStore
	rollbackFailedAdds bool
	logger             *logger.Logger
}

func NewBasketSync(documents model.DocumentStore, rollbackFailedAdds bool, logger *logger.Logger) *BasketSync {
	return &BasketSync{
		documents:          documents,
		rollbackFailedAdds: rollbackFailedAdds,
		logger:             logger,
	}
}

// Observe returns the auth state observer that hydrates sess on sign in and
// resets it on sign out.
func (b *BasketSync) Observe(sess *Session) AuthStateFunc {
	return func(ctx context.Context, user *model.Identity) {
		if user != nil {
			b.Resume(ctx, sess, user)
			return
		}
		if sess.Store.State().SignedIn() {
			b.SignedOut(sess)
		}
	}
}

// Resume sets the user and hydrates basket and profile from the user
// document. Mutations on the session wait until hydration finishes.
func (b *BasketSync) Resume(ctx context.Context, sess *Session, user *model.Identity) {
	sess.hydration.Lock()
	defer sess.hydration.Unlock()

	if current := sess.Store.State().User; current != nil && current.UID != user.UID {
		b.logger.Info("Basket sync: user switched, resetting session",
			"session_id", sess.ID,
			"user_id", user.UID.String())
		sess.Store.Dispatch(reducer.SignOut{})
	}
	sess.Store.Dispatch(reducer.SetUser{User: user})

	uid := user.UID.String()
	doc, err := b.documents.GetDocument(ctx, model.CollectionUsers, uid)
	if errors.Is(err, model.ErrNotFound) {
		b.logger.Info("Basket sync: no user document, keeping local basket",
			"session_id", sess.ID,
			"user_id", uid)
		return
	}
	if err != nil {
		b.logger.Error("Basket sync: failed to fetch user document",
			"session_id", sess.ID,
			"error", storeErr("get", model.CollectionUsers, uid, err).Error())
		return
	}

	var basket []model.BasketEntry
	if err := doc.Decode(model.FieldBasket, &basket); err != nil {
		b.logger.Error("Basket sync: malformed basket in user document",
			"session_id", sess.ID,
			"user_id", uid,
			"error", err.Error())
	} else {
		sess.Store.Dispatch(reducer.SetBasket{Basket: basket})
	}

	address := doc.String(model.FieldAddress)
	if address == "" {
		address = model.DefaultUserAddress
	}
	sess.Store.Dispatch(reducer.SetUserAddress{Address: address})

	name := doc.String(model.FieldName)
	if name == "" {
		name = user.Email
	}
	sess.Store.Dispatch(reducer.SetUserName{Name: name})

	b.logger.Debug("Basket sync: session hydrated",
		"session_id", sess.ID,
		"user_id", uid,
		"entries", len(basket))
}

// SignedOut resets the session in one transition. Nothing is written remotely.
func (b *BasketSync) SignedOut(sess *Session) {
	sess.hydration.Lock()
	defer sess.hydration.Unlock()

	sess.Store.Dispatch(reducer.SignOut{})
}

// Add appends quantity units of product and mirrors them with one array union.
func (b *BasketSync) Add(ctx context.Context, sess *Session, product model.Product, quantity int) (MutationResult, error) {
	entries, err := model.NewBasketEntries(product, quantity)
	if err != nil {
		return MutationResult{}, err
	}

	sess.hydration.RLock()
	defer sess.hydration.RUnlock()

	var (
		state    model.SessionState
		user     *model.Identity
		warnings []reducer.Warning
	)
	for _, e := range entries {
		var w []reducer.Warning
		state, w = sess.Store.DispatchFunc(func(current model.SessionState) reducer.Action {
			user = current.User
			return reducer.AddToBasket{Entry: e}
		})
		warnings = append(warnings, w...)
	}

	result := MutationResult{State: state, Warnings: warnings}
	if user == nil {
		return result, nil
	}

	uid := user.UID.String()
	values := make([]any, 0, len(entries))
	for _, e := range entries {
		values = append(values, e.Stored())
	}
	err = b.documents.UpdateDocument(ctx, model.CollectionUsers, uid, model.ArrayUnion(model.FieldBasket, values...))
	if err == nil {
		return result, nil
	}

	result.RemoteErr = storeErr("arrayUnion", model.CollectionUsers, uid, err)
	b.logger.Error("Basket sync: failed to add entries to user document",
		"session_id", sess.ID,
		"product_id", product.ID,
		"quantity", quantity,
		"error", result.RemoteErr.Error())

	if b.rollbackFailedAdds {
		for _, e := range entries {
			result.State, _ = sess.Store.Dispatch(reducer.RemoveFromBasket{UniqueID: e.UniqueID})
		}
		result.RolledBack = true
	}
	return result, nil
}

// Remove drops the entry locally and mirrors it with an array remove. When
// the remote write fails the entry is put back in front of its former
// successor.
func (b *BasketSync) Remove(ctx context.Context, sess *Session, uniqueID string) MutationResult {
	sess.hydration.RLock()
	defer sess.hydration.RUnlock()

	var (
		entry     model.BasketEntry
		successor string
		found     bool
		user      *model.Identity
	)
	state, warnings := sess.Store.DispatchFunc(func(current model.SessionState) reducer.Action {
		user = current.User
		if i := model.IndexOfEntry(current.Basket, uniqueID); i >= 0 {
			entry, found = current.Basket[i], true
			if i+1 < len(current.Basket) {
				successor = current.Basket[i+1].UniqueID
			}
		}
		return reducer.RemoveFromBasket{UniqueID: uniqueID}
	})

	result := MutationResult{State: state, Warnings: warnings}
	if !found || user == nil {
		return result
	}

	uid := user.UID.String()
	err := b.documents.UpdateDocument(ctx, model.CollectionUsers, uid, model.ArrayRemove(model.FieldBasket, entry.Stored()))
	if err == nil {
		return result
	}

	result.RemoteErr = storeErr("arrayRemove", model.CollectionUsers, uid, err)
	b.logger.Error("Basket sync: failed to remove entry from user document, restoring it",
		"session_id", sess.ID,
		"unique_id", uniqueID,
		"error", result.RemoteErr.Error())

	result.State, _ = sess.Store.Dispatch(reducer.AddToBasket{Entry: entry, Before: successor})
	result.RolledBack = true
	return result
}

// UpdateQuantity tags entries of productID with quantity. Local only.
func (b *BasketSync) UpdateQuantity(sess *Session, productID string, quantity int) MutationResult {
	sess.hydration.RLock()
	defer sess.hydration.RUnlock()

	state, warnings := sess.Store.Dispatch(reducer.UpdateBasketQuantity{ProductID: productID, Quantity: quantity})
	return MutationResult{State: state, Warnings: warnings}
}

// Clear empties the basket and overwrites the remote basket field.
func (b *BasketSync) Clear(ctx context.Context, sess *Session) MutationResult {
	sess.hydration.RLock()
	defer sess.hydration.RUnlock()

	var user *model.Identity
	state, warnings := sess.Store.DispatchFunc(func(current model.SessionState) reducer.Action {
		user = current.User
		return reducer.ClearBasket{}
	})

	result := MutationResult{State: state, Warnings: warnings}
	if user == nil {
		return result
	}

	uid := user.UID.String()
	err := b.documents.UpdateDocument(ctx, model.CollectionUsers, uid, model.Set(model.FieldBasket, []model.BasketEntry{}))
	if err != nil {
		result.RemoteErr = storeErr("set", model.CollectionUsers, uid, err)
		b.logger.Error("Basket sync: failed to clear user document basket",
			"session_id", sess.ID,
			"error", result.RemoteErr.Error())
	}
	return result
}

func storeErr(op, collection, id string, err error) error {
	var se *model.StoreError
	if errors.As(err, &se) {
		return err
	}
	return &model.StoreError{Op: op, Collection: collection, ID: id, Err: err}
}
