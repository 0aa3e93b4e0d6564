package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront-server/internal/model"
)

func TestApply(t *testing.T) {
	a := model.BasketEntry{UniqueID: "a", ProductID: "p1", Title: "Echo", Price: 10, Rating: 4}
	b := model.BasketEntry{UniqueID: "b", ProductID: "p2", Title: "Kindle", Price: 5.5, Rating: 3}

	normA, err := Normalize(a)
	require.NoError(t, err)
	normB, err := Normalize(b)
	require.NoError(t, err)

	tests := []struct {
		name    string
		fields  map[string]any
		updates []model.FieldUpdate
		want    map[string]any
		wantErr error
	}{
		{
			name:    "set creates field",
			fields:  nil,
			updates: []model.FieldUpdate{model.Set(model.FieldAddress, "Main St 1")},
			want:    map[string]any{model.FieldAddress: "Main St 1"},
		},
		{
			name:    "union on missing field",
			fields:  map[string]any{},
			updates: []model.FieldUpdate{model.ArrayUnion(model.FieldBasket, a, b)},
			want:    map[string]any{model.FieldBasket: []any{normA, normB}},
		},
		{
			name:    "union skips equal values",
			fields:  map[string]any{model.FieldBasket: []any{normA}},
			updates: []model.FieldUpdate{model.ArrayUnion(model.FieldBasket, a, b, b)},
			want:    map[string]any{model.FieldBasket: []any{normA, normB}},
		},
		{
			name:    "remove drops matching values",
			fields:  map[string]any{model.FieldBasket: []any{normA, normB}},
			updates: []model.FieldUpdate{model.ArrayRemove(model.FieldBasket, a)},
			want:    map[string]any{model.FieldBasket: []any{normB}},
		},
		{
			name:    "remove of absent value is noop",
			fields:  map[string]any{model.FieldBasket: []any{normB}},
			updates: []model.FieldUpdate{model.ArrayRemove(model.FieldBasket, a)},
			want:    map[string]any{model.FieldBasket: []any{normB}},
		},
		{
			name:    "remove compares whole value",
			fields:  map[string]any{model.FieldBasket: []any{normA}},
			updates: []model.FieldUpdate{model.ArrayRemove(model.FieldBasket, a.WithQuantity(2))},
			want:    map[string]any{model.FieldBasket: []any{normA}},
		},
		{
			name:    "union on scalar field fails",
			fields:  map[string]any{model.FieldBasket: "oops"},
			updates: []model.FieldUpdate{model.ArrayUnion(model.FieldBasket, a)},
			wantErr: ErrNotArray,
		},
		{
			name:    "set without value fails",
			updates: []model.FieldUpdate{{Field: model.FieldName, Op: model.OpSet}},
			wantErr: ErrBadUpdate,
		},
		{
			name:    "empty field name fails",
			updates: []model.FieldUpdate{model.Set("", 1)},
			wantErr: ErrBadUpdate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.fields, tt.updates)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	fields := map[string]any{model.FieldBasket: []any{"x"}}

	_, err := Apply(fields, []model.FieldUpdate{
		model.ArrayUnion(model.FieldBasket, "y"),
		model.Set(model.FieldName, "Ann"),
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{model.FieldBasket: []any{"x"}}, fields)
}

func TestEqual_IgnoresKeyOrder(t *testing.T) {
	assert.True(t, Equal(map[string]any{"a": 1, "b": 2}, map[string]any{"b": 2, "a": 1}))
	assert.False(t, Equal(map[string]any{"a": 1}, map[string]any{"a": 2}))
}

func TestValidatePath(t *testing.T) {
	assert.NoError(t, ValidatePath("users", "u1"))
	assert.ErrorIs(t, ValidatePath("", "u1"), ErrInvalidPath)
	assert.ErrorIs(t, ValidatePath("users", ""), ErrInvalidPath)
}
