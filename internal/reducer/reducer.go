package reducer

import (
	"fmt"
	"math"

	"github.com/dtroode/storefront-server/internal/model"
)

// Warning is a non-fatal note produced by a transition, such as removing
// an entry that is not in the basket.
type Warning struct {
	Action  string
	Message string
}

func (w Warning) String() string {
	return w.Action + ": " + w.Message
}

// Transition returns the state that results from applying action to state.
// It never mutates state and performs no I/O.
func Transition(state model.SessionState, action Action) (model.SessionState, []Warning) {
	next := state.Clone()

	switch a := action.(type) {
	case SetUser:
		next.User = cloneIdentity(a.User)
		if a.User != nil {
			if a.User.Address != "" {
				next.UserAddress = a.User.Address
			}
			if a.User.DisplayName != "" {
				next.Name = a.User.DisplayName
			}
		}
		return next, nil

	case ClearUser:
		next.User = nil
		next.UserAddress = model.DefaultUserAddress
		next.Name = ""
		return next, nil

	case SetUserName:
		next.Name = a.Name
		return next, nil

	case SetUserAddress:
		next.UserAddress = a.Address
		return next, nil

	case SetInputValue:
		switch a.Field {
		case FieldContactInfo:
			next.Form.ContactInfo = a.Value
		case FieldPassword:
			next.Form.Password = a.Value
		case FieldName:
			next.Name = a.Value
		case FieldReEnterPassword:
			next.Form.ReEnterPassword = a.Value
		case FieldAddress:
			next.Form.Address = a.Value
		default:
			return state, []Warning{warn(a, "unknown form field %q", a.Field)}
		}
		return next, nil

	case SetBasket:
		next.Basket = dedupe(a.Basket)
		return next, nil

	case AddToBasket:
		if model.IndexOfEntry(next.Basket, a.Entry.UniqueID) >= 0 {
			return state, []Warning{warn(a, "entry %s is already in basket", a.Entry.UniqueID)}
		}
		entry := a.Entry.Clone()
		at := -1
		if a.Before != "" {
			at = model.IndexOfEntry(next.Basket, a.Before)
		}
		if at < 0 {
			next.Basket = append(next.Basket, entry)
		} else {
			next.Basket = append(next.Basket[:at], append([]model.BasketEntry{entry}, next.Basket[at:]...)...)
		}
		return next, nil

	case RemoveFromBasket:
		i := model.IndexOfEntry(next.Basket, a.UniqueID)
		if i < 0 {
			return state, []Warning{warn(a, "can't remove product (uniqueId: %s) as it's not in basket", a.UniqueID)}
		}
		next.Basket = append(next.Basket[:i], next.Basket[i+1:]...)
		return next, nil

	case UpdateBasketQuantity:
		for i, e := range next.Basket {
			if e.ProductID == a.ProductID {
				next.Basket[i] = e.WithQuantity(a.Quantity)
			}
		}
		return next, nil

	case ClearBasket:
		next.Basket = []model.BasketEntry{}
		return next, nil

	case SignOut:
		next.User = nil
		next.UserAddress = model.DefaultUserAddress
		next.Name = ""
		next.Form = model.FormFields{}
		next.Basket = []model.BasketEntry{}
		return next, nil

	default:
		// nil action
		return state, nil
	}
}

// Subtotal sums the prices of every entry. An empty or nil basket totals 0.
func Subtotal(basket []model.BasketEntry) float64 {
	var total float64
	for _, e := range basket {
		total += e.Price
	}
	return total
}

// MinorUnits converts an amount to integer cents.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func warn(a Action, format string, args ...any) Warning {
	return Warning{Action: a.Kind(), Message: fmt.Sprintf(format, args...)}
}

func cloneIdentity(u *model.Identity) *model.Identity {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func dedupe(basket []model.BasketEntry) []model.BasketEntry {
	out := make([]model.BasketEntry, 0, len(basket))
	seen := make(map[string]struct{}, len(basket))
	for _, e := range basket {
		if _, ok := seen[e.UniqueID]; ok {
			continue
		}
		seen[e.UniqueID] = struct{}{}
		out = append(out, e.Clone())
	}
	return out
}
