package model

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Well-known collections and fields.
const (
	CollectionUsers    = "users"
	CollectionProducts = "products"
	CollectionTitles   = "movies"

	FieldBasket      = "basket"
	FieldName        = "name"
	FieldContactInfo = "contactInfo"
	FieldAddress     = "address"
)

// OrdersCollection returns the collection holding a user's orders.
func OrdersCollection(uid string) string {
	return CollectionUsers + "/" + uid + "/orders"
}

// Document is a schemaless JSON document addressed by collection and id.
type Document struct {
	Collection string
	ID         string
	Fields     map[string]any
	UpdatedAt  time.Time
}

// Decode unmarshals one field into out. A missing or null field leaves out untouched.
func (d Document) Decode(field string, out any) error {
	v, ok := d.Fields[field]
	if !ok || v == nil {
		return nil
	}
	return decodeJSON(v, out)
}

// DecodeFields unmarshals the whole field set into out.
func (d Document) DecodeFields(out any) error {
	return decodeJSON(d.Fields, out)
}

// String returns a string field, or "" when it is absent or not a string.
func (d Document) String(field string) string {
	s, _ := d.Fields[field].(string)
	return s
}

func decodeJSON(v, out any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode document field: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("failed to decode document field: %w", err)
	}
	return nil
}

// Snapshot is the full contents of a collection at one point in time.
type Snapshot struct {
	Collection string
	Documents  []Document
}

// UpdateOp enumerates partial document updates.
type UpdateOp int

const (
	// OpSet replaces the field value.
	OpSet UpdateOp = iota
	// OpArrayUnion appends values not already present in the array field.
	OpArrayUnion
	// OpArrayRemove removes every array element equal to one of the values.
	OpArrayRemove
)

func (o UpdateOp) String() string {
	switch o {
	case OpSet:
		return "set"
	case OpArrayUnion:
		return "arrayUnion"
	case OpArrayRemove:
		return "arrayRemove"
	default:
		return "unknown"
	}
}

// FieldUpdate is one partial update applied by UpdateDocument.
type FieldUpdate struct {
	Field  string
	Op     UpdateOp
	Values []any
}

// Set builds an OpSet update.
func Set(field string, value any) FieldUpdate {
	return FieldUpdate{Field: field, Op: OpSet, Values: []any{value}}
}

// ArrayUnion builds an OpArrayUnion update.
func ArrayUnion(field string, values ...any) FieldUpdate {
	return FieldUpdate{Field: field, Op: OpArrayUnion, Values: values}
}

// ArrayRemove builds an OpArrayRemove update.
func ArrayRemove(field string, values ...any) FieldUpdate {
	return FieldUpdate{Field: field, Op: OpArrayRemove, Values: values}
}

// DocumentStore persists documents and feeds collection snapshots.
type DocumentStore interface {
	GetDocument(ctx context.Context, collection, id string) (Document, error)
	SetDocument(ctx context.Context, collection, id string, fields map[string]any) error
	UpdateDocument(ctx context.Context, collection, id string, updates ...FieldUpdate) error
	ListDocuments(ctx context.Context, collection string) ([]Document, error)
	SubscribeToCollection(ctx context.Context, collection string, onSnapshot func(Snapshot)) (unsubscribe func(), err error)
}
