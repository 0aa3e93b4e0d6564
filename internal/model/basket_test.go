package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBasketEntries(t *testing.T) {
	p := Product{ID: "B07XJ8C8F5", Title: "Echo Dot", Image: "https://img/echo.jpg", Price: 49.99, Rating: 4}

	entries, err := NewBasketEntries(p, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	ids := map[string]bool{}
	for _, e := range entries {
		_, err := uuid.Parse(e.UniqueID)
		assert.NoError(t, err)
		assert.False(t, ids[e.UniqueID])
		ids[e.UniqueID] = true

		assert.Equal(t, p.ID, e.ProductID)
		assert.Equal(t, p.Title, e.Title)
		assert.Equal(t, p.Image, e.Image)
		assert.Equal(t, p.Price, e.Price)
		assert.Equal(t, p.Rating, e.Rating)
		assert.Nil(t, e.Quantity)
	}
}

func TestNewBasketEntries_Validation(t *testing.T) {
	tests := []struct {
		name     string
		product  Product
		quantity int
		wantErr  error
	}{
		{name: "zero quantity", product: Product{Price: 1}, quantity: 0, wantErr: ErrInvalidQuantity},
		{name: "above selector range", product: Product{Price: 1}, quantity: MaxLineQuantity + 1, wantErr: ErrInvalidQuantity},
		{name: "negative price", product: Product{Price: -1}, quantity: 1, wantErr: ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := NewBasketEntries(tt.product, tt.quantity)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, entries)
		})
	}
}

func TestNewBasketEntries_ClampsRating(t *testing.T) {
	high, err := NewBasketEntries(Product{Rating: 9}, 1)
	require.NoError(t, err)
	assert.Equal(t, MaxRating, high[0].Rating)

	low, err := NewBasketEntries(Product{Rating: -2}, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, low[0].Rating)
}

func TestSessionState_CloneIsIndependent(t *testing.T) {
	q := 1
	s := NewSessionState()
	s.User = &Identity{UID: uuid.New(), Email: "a@b.c"}
	s.Basket = []BasketEntry{{UniqueID: "u1", Quantity: &q}}

	c := s.Clone()
	c.User.Email = "changed"
	*c.Basket[0].Quantity = 5
	c.Basket[0].Title = "changed"

	assert.Equal(t, "a@b.c", s.User.Email)
	assert.Equal(t, 1, *s.Basket[0].Quantity)
	assert.Equal(t, "", s.Basket[0].Title)
}

func TestNewSessionState(t *testing.T) {
	s := NewSessionState()
	assert.NotNil(t, s.Basket)
	assert.Empty(t, s.Basket)
	assert.False(t, s.SignedIn())
	assert.Equal(t, DefaultUserAddress, s.UserAddress)
}

func TestStoreError_Unwrap(t *testing.T) {
	err := &StoreError{Op: "update", Collection: CollectionUsers, ID: "42", Err: ErrNotFound}
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "store update users/42: not found", err.Error())
}

func TestBasketEntry_Stored(t *testing.T) {
	n := 3
	e := BasketEntry{UniqueID: "u1", ProductID: "kindle", Title: "Kindle", Price: 5.5, Rating: 5, Quantity: &n}

	stored := e.Stored()
	assert.Nil(t, stored.Quantity)
	assert.Equal(t, "u1", stored.UniqueID)
	assert.Equal(t, "kindle", stored.ProductID)
	require.NotNil(t, e.Quantity)
	assert.Equal(t, 3, *e.Quantity)
}

func TestBasketFingerprint(t *testing.T) {
	a := BasketEntry{UniqueID: "a"}
	b := BasketEntry{UniqueID: "b"}

	assert.Equal(t, BasketFingerprint([]BasketEntry{a, b}), BasketFingerprint([]BasketEntry{b, a}))
	assert.NotEqual(t, BasketFingerprint([]BasketEntry{a}), BasketFingerprint([]BasketEntry{a, b}))
	assert.Len(t, BasketFingerprint(nil), 64)
}
