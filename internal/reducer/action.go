// Package reducer holds the pure session state transition function.
//
// Actions form a closed set: every variant implements the unexported
// isAction marker, so no type outside this package can be dispatched and
// Transition's type switch covers every case.
package reducer

import "github.com/dtroode/storefront-server/internal/model"

// Action is a session state transition request.
type Action interface {
	isAction()
	// Kind names the action for logs and the wire.
	Kind() string
}

// FormField names a transient login/registration input.
type FormField string

const (
	FieldContactInfo     FormField = "contactInfo"
	FieldPassword        FormField = "password"
	FieldName            FormField = "name"
	FieldReEnterPassword FormField = "reEnterPassword"
	FieldAddress         FormField = "address"
)

// SetUser sets the signed-in user. A nil User only clears the handle.
type SetUser struct {
	User *model.Identity
}

// ClearUser drops the user and resets the profile fields.
type ClearUser struct{}

// SetUserName sets the greeting name.
type SetUserName struct {
	Name string
}

// SetUserAddress sets the delivery address.
type SetUserAddress struct {
	Address string
}

// SetInputValue sets one form field.
type SetInputValue struct {
	Field FormField
	Value string
}

// SetBasket replaces the basket. Used when hydrating from the user document.
type SetBasket struct {
	Basket []model.BasketEntry
}

// AddToBasket appends Entry, or inserts it in front of the entry whose
// unique id is Before when that entry is present.
type AddToBasket struct {
	Entry  model.BasketEntry
	Before string
}

// RemoveFromBasket removes the entry with UniqueID.
type RemoveFromBasket struct {
	UniqueID string
}

// UpdateBasketQuantity tags every entry of ProductID with Quantity.
type UpdateBasketQuantity struct {
	ProductID string
	Quantity  int
}

// ClearBasket empties the basket.
type ClearBasket struct{}

// SignOut clears the user, profile, form and basket in one transition.
type SignOut struct{}

func (SetUser) isAction()              {}
func (ClearUser) isAction()            {}
func (SetUserName) isAction()          {}
func (SetUserAddress) isAction()       {}
func (SetInputValue) isAction()        {}
func (SetBasket) isAction()            {}
func (AddToBasket) isAction()          {}
func (RemoveFromBasket) isAction()     {}
func (UpdateBasketQuantity) isAction() {}
func (ClearBasket) isAction()          {}
func (SignOut) isAction()              {}

func (SetUser) Kind() string              { return "SET_USER" }
func (ClearUser) Kind() string            { return "CLEAR_USER" }
func (SetUserName) Kind() string          { return "SET_USER_NAME" }
func (SetUserAddress) Kind() string       { return "SET_USER_ADDRESS" }
func (SetInputValue) Kind() string        { return "SET_INPUT_VALUE" }
func (SetBasket) Kind() string            { return "SET_BASKET" }
func (AddToBasket) Kind() string          { return "ADD_TO_BASKET" }
func (RemoveFromBasket) Kind() string     { return "REMOVE_FROM_BASKET" }
func (UpdateBasketQuantity) Kind() string { return "UPDATE_BASKET_QUANTITY" }
func (ClearBasket) Kind() string          { return "CLEAR_BASKET" }
func (SignOut) Kind() string              { return "SIGN_OUT" }
