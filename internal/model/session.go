package model

import (
	"slices"

	"github.com/google/uuid"
)

// DefaultUserAddress is shown until a signed-in user's address is known.
const DefaultUserAddress = "Your City 00000"

// Identity is the handle of an authenticated user.
type Identity struct {
	UID         uuid.UUID `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName,omitempty"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
	Address     string    `json:"address,omitempty"`
}

// FormFields holds transient login and registration input.
// The form "name" input shares SessionState.Name.
type FormFields struct {
	ContactInfo     string `json:"contactInfo"`
	Password        string `json:"-"`
	ReEnterPassword string `json:"-"`
	Address         string `json:"address"`
}

// SessionState is the client session view mirrored from the remote user document.
type SessionState struct {
	Basket      []BasketEntry `json:"basket"`
	User        *Identity     `json:"user,omitempty"`
	UserAddress string        `json:"userAddress"`
	Name        string        `json:"name"`
	Form        FormFields    `json:"form"`
}

// NewSessionState returns the state of a freshly opened session.
func NewSessionState() SessionState {
	return SessionState{
		Basket:      []BasketEntry{},
		UserAddress: DefaultUserAddress,
	}
}

// SignedIn reports whether the session has an authenticated user.
func (s SessionState) SignedIn() bool {
	return s.User != nil
}

// Clone returns a deep copy of s.
func (s SessionState) Clone() SessionState {
	out := s
	out.Basket = CloneBasket(s.Basket)
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}

// CloneBasket deep-copies a basket. A nil basket becomes an empty one.
func CloneBasket(basket []BasketEntry) []BasketEntry {
	out := make([]BasketEntry, 0, len(basket))
	for _, e := range basket {
		out = append(out, e.Clone())
	}
	return out
}

// IndexOfEntry returns the position of the entry with uniqueID, or -1.
func IndexOfEntry(basket []BasketEntry, uniqueID string) int {
	return slices.IndexFunc(basket, func(e BasketEntry) bool {
		return e.UniqueID == uniqueID
	})
}
