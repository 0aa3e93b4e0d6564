package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/reducer"
	"github.com/dtroode/storefront-server/internal/testutil"
)

func TestStore_DispatchReturnsCopy(t *testing.T) {
	s := NewStore(testutil.MakeNoopLogger())

	state, warnings := s.Dispatch(reducer.AddToBasket{Entry: model.BasketEntry{UniqueID: "a", Price: 10}})
	require.Empty(t, warnings)
	require.Len(t, state.Basket, 1)

	state.Basket[0].Title = "mutated"
	assert.Equal(t, "", s.State().Basket[0].Title)
}

func TestStore_Subtotal(t *testing.T) {
	s := NewStore(testutil.MakeNoopLogger())
	assert.Equal(t, 0.0, s.Subtotal())

	s.Dispatch(reducer.AddToBasket{Entry: model.BasketEntry{UniqueID: "a", Price: 10}})
	s.Dispatch(reducer.AddToBasket{Entry: model.BasketEntry{UniqueID: "b", Price: 5.5}})
	assert.Equal(t, 15.5, s.Subtotal())

	s.Dispatch(reducer.ClearBasket{})
	assert.Equal(t, 0.0, s.Subtotal())
}

func TestStore_LogsWarnings(t *testing.T) {
	log, buf := testutil.MakeBufferLogger()
	s := NewStore(log)

	_, warnings := s.Dispatch(reducer.RemoveFromBasket{UniqueID: "missing"})
	require.Len(t, warnings, 1)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "missing")
	assert.Contains(t, out, "action=REMOVE_FROM_BASKET")
}

func TestStore_DispatchFuncSeesCurrentState(t *testing.T) {
	s := NewStore(testutil.MakeNoopLogger())
	s.Dispatch(reducer.AddToBasket{Entry: model.BasketEntry{UniqueID: "a"}})

	var seen int
	s.DispatchFunc(func(current model.SessionState) reducer.Action {
		seen = len(current.Basket)
		return reducer.ClearBasket{}
	})

	assert.Equal(t, 1, seen)
	assert.Empty(t, s.State().Basket)
}

func TestStore_ConcurrentAdds(t *testing.T) {
	s := NewStore(testutil.MakeNoopLogger())
	entries, err := model.NewBasketEntries(model.Product{ID: "p", Price: 1}, model.MaxLineQuantity)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		for _, e := range entries {
			wg.Add(1)
			go func(e model.BasketEntry) {
				defer wg.Done()
				s.Dispatch(reducer.AddToBasket{Entry: e})
			}(e)
		}
	}
	wg.Wait()

	assert.Len(t, s.State().Basket, model.MaxLineQuantity)
	assert.Equal(t, float64(model.MaxLineQuantity), s.Subtotal())
}
