package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// MaxLineQuantity is the largest number of units added by a single add-to-basket action.
const MaxLineQuantity = 10

// MaxRating is the highest product rating.
const MaxRating = 5

// Product describes a catalog item that can be added to a basket.
type Product struct {
	ID     string  `json:"id" yaml:"id"`
	Title  string  `json:"title" yaml:"title"`
	Image  string  `json:"image" yaml:"image"`
	Price  float64 `json:"price" yaml:"price"`
	Rating int     `json:"rating" yaml:"rating"`
}

// BasketEntry is one physical unit in a basket.
// Entries are immutable once created and are removed by UniqueID only.
type BasketEntry struct {
	UniqueID  string  `json:"uniqueId"`
	ProductID string  `json:"id"`
	Title     string  `json:"title"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Rating    int     `json:"rating"`
	Quantity  *int    `json:"quantity,omitempty"`
}

// WithQuantity returns a copy of the entry carrying the given quantity.
func (e BasketEntry) WithQuantity(quantity int) BasketEntry {
	q := quantity
	e.Quantity = &q
	return e
}

// Stored returns the entry as it is kept in the user document. Quantity is
// session-local and never written remotely.
func (e BasketEntry) Stored() BasketEntry {
	e.Quantity = nil
	return e
}

// BasketFingerprint identifies the set of entries in basket regardless of
// their order.
func BasketFingerprint(basket []BasketEntry) string {
	ids := make([]string, 0, len(basket))
	for _, e := range basket {
		ids = append(ids, e.UniqueID)
	}
	slices.Sort(ids)
	sum := sha256.Sum256([]byte(strings.Join(ids, ",")))
	return hex.EncodeToString(sum[:])
}

// Clone returns a copy that shares no pointers with e.
func (e BasketEntry) Clone() BasketEntry {
	if e.Quantity != nil {
		q := *e.Quantity
		e.Quantity = &q
	}
	return e
}

// NewBasketEntries builds quantity entries for p, each with a fresh unique id.
func NewBasketEntries(p Product, quantity int) ([]BasketEntry, error) {
	if quantity < 1 || quantity > MaxLineQuantity {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	if p.Price < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrice, p.Price)
	}

	rating := min(max(p.Rating, 0), MaxRating)

	entries := make([]BasketEntry, 0, quantity)
	for range quantity {
		entries = append(entries, BasketEntry{
			UniqueID:  uuid.NewString(),
			ProductID: p.ID,
			Title:     p.Title,
			Image:     p.Image,
			Price:     p.Price,
			Rating:    rating,
		})
	}

	return entries, nil
}
