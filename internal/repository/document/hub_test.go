package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront-server/internal/model"
)

func snapshotOf(collection string, ids ...string) Loader {
	return func() (model.Snapshot, error) {
		s := model.Snapshot{Collection: collection}
		for _, id := range ids {
			s.Documents = append(s.Documents, model.Document{Collection: collection, ID: id})
		}
		return s, nil
	}
}

func TestHub_SubscribeDeliversCurrentSnapshot(t *testing.T) {
	h := NewHub()

	var got []model.Snapshot
	unsubscribe, err := h.Subscribe("movies", func(s model.Snapshot) { got = append(got, s) }, snapshotOf("movies", "m1"))
	require.NoError(t, err)
	defer unsubscribe()

	require.Len(t, got, 1)
	assert.Equal(t, "m1", got[0].Documents[0].ID)
}

func TestHub_NotifyReachesOnlyCollectionSubscribers(t *testing.T) {
	h := NewHub()

	var movies, products int
	unsubMovies, err := h.Subscribe("movies", func(model.Snapshot) { movies++ }, snapshotOf("movies"))
	require.NoError(t, err)
	defer unsubMovies()
	unsubProducts, err := h.Subscribe("products", func(model.Snapshot) { products++ }, snapshotOf("products"))
	require.NoError(t, err)
	defer unsubProducts()

	require.NoError(t, h.Notify("movies", snapshotOf("movies", "m1")))

	assert.Equal(t, 2, movies)
	assert.Equal(t, 1, products)
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	h := NewHub()

	calls := 0
	unsubscribe, err := h.Subscribe("movies", func(model.Snapshot) { calls++ }, snapshotOf("movies"))
	require.NoError(t, err)

	unsubscribe()
	unsubscribe()

	require.NoError(t, h.Notify("movies", snapshotOf("movies", "m1")))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, h.Subscribers("movies"))
}

func TestHub_NotifySkipsLoadWithoutSubscribers(t *testing.T) {
	h := NewHub()

	err := h.Notify("movies", func() (model.Snapshot, error) {
		return model.Snapshot{}, errors.New("should not load")
	})
	assert.NoError(t, err)
}

func TestHub_SubscribeLoadError(t *testing.T) {
	h := NewHub()
	loadErr := errors.New("boom")

	_, err := h.Subscribe("movies", func(model.Snapshot) {}, func() (model.Snapshot, error) {
		return model.Snapshot{}, loadErr
	})
	assert.ErrorIs(t, err, loadErr)
	assert.Equal(t, 0, h.Subscribers("movies"))
}
