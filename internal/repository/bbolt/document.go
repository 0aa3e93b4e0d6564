package bbolt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/repository/document"
)

var _ model.DocumentStore = (*DocumentRepository)(nil)

type storedDocument struct {
	Fields    map[string]any `json:"fields"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// DocumentRepository keeps one bucket per collection, documents keyed by id.
// Snapshots are fanned out in-process, so subscribers only observe writes
// made through this repository.
type DocumentRepository struct {
	db     *bbolt.DB
	hub    *document.Hub
	logger *logger.Logger
	now    func() time.Time
}

func NewDocumentRepository(db *bbolt.DB, logger *logger.Logger) *DocumentRepository {
	return &DocumentRepository{db: db, hub: document.NewHub(), logger: logger, now: time.Now}
}

func (r *DocumentRepository) GetDocument(_ context.Context, collection, id string) (model.Document, error) {
	if err := document.ValidatePath(collection, id); err != nil {
		return model.Document{}, err
	}

	var doc model.Document
	err := r.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(documentBucket(collection))
		if b == nil {
			return model.ErrNotFound
		}
		data := b.Get([]byte(id))
		if data == nil {
			return model.ErrNotFound
		}
		var err error
		doc, err = decodeDocument(collection, id, data)
		return err
	})
	if err != nil {
		return model.Document{}, err
	}
	return doc, nil
}

func (r *DocumentRepository) SetDocument(_ context.Context, collection, id string, fields map[string]any) error {
	if err := document.ValidatePath(collection, id); err != nil {
		return err
	}
	normalized, err := document.NormalizeFields(fields)
	if err != nil {
		return fmt.Errorf("failed to normalize document: %w", err)
	}

	err = r.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(documentBucket(collection))
		if err != nil {
			return err
		}
		return r.put(b, id, normalized)
	})
	if err != nil {
		return fmt.Errorf("failed to set document: %w", err)
	}
	r.notify(collection)
	return nil
}

func (r *DocumentRepository) UpdateDocument(_ context.Context, collection, id string, updates ...model.FieldUpdate) error {
	if err := document.ValidatePath(collection, id); err != nil {
		return err
	}

	err := r.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(documentBucket(collection))
		if b == nil {
			return model.ErrNotFound
		}
		data := b.Get([]byte(id))
		if data == nil {
			return model.ErrNotFound
		}
		var stored storedDocument
		if err := json.Unmarshal(data, &stored); err != nil {
			return err
		}
		fields, err := document.Apply(stored.Fields, updates)
		if err != nil {
			return err
		}
		return r.put(b, id, fields)
	})
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	r.notify(collection)
	return nil
}

func (r *DocumentRepository) ListDocuments(_ context.Context, collection string) ([]model.Document, error) {
	var docs []model.Document
	err := r.db.View(func(tx *bbolt.Tx) error {
		var err error
		docs, err = listBucket(tx, collection)
		return err
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *DocumentRepository) SubscribeToCollection(ctx context.Context, collection string, onSnapshot func(model.Snapshot)) (func(), error) {
	if collection == "" {
		return nil, document.ErrInvalidPath
	}
	return r.hub.Subscribe(collection, onSnapshot, r.loader(ctx, collection))
}

func (r *DocumentRepository) put(b *bbolt.Bucket, id string, fields map[string]any) error {
	data, err := json.Marshal(storedDocument{Fields: fields, UpdatedAt: r.now().UTC()})
	if err != nil {
		return err
	}
	return b.Put([]byte(id), data)
}

// notify refreshes subscribers after a committed write. A failed refresh
// does not fail the write.
func (r *DocumentRepository) notify(collection string) {
	if err := r.hub.Notify(collection, r.loader(context.Background(), collection)); err != nil {
		r.logger.Error("Document repository: failed to refresh subscribers",
			"collection", collection,
			"error", err)
	}
}

func (r *DocumentRepository) loader(ctx context.Context, collection string) document.Loader {
	return func() (model.Snapshot, error) {
		docs, err := r.ListDocuments(ctx, collection)
		if err != nil {
			return model.Snapshot{}, err
		}
		return model.Snapshot{Collection: collection, Documents: docs}, nil
	}
}

// listBucket returns the documents of collection in key order.
func listBucket(tx *bbolt.Tx, collection string) ([]model.Document, error) {
	docs := []model.Document{}
	b := tx.Bucket(documentBucket(collection))
	if b == nil {
		return docs, nil
	}
	err := b.ForEach(func(k, v []byte) error {
		doc, err := decodeDocument(collection, string(k), v)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	return docs, err
}

func decodeDocument(collection, id string, data []byte) (model.Document, error) {
	var stored storedDocument
	if err := json.Unmarshal(data, &stored); err != nil {
		return model.Document{}, fmt.Errorf("decoding document %s/%s: %w", collection, id, err)
	}
	if stored.Fields == nil {
		stored.Fields = map[string]any{}
	}
	return model.Document{
		Collection: collection,
		ID:         id,
		Fields:     stored.Fields,
		UpdatedAt:  stored.UpdatedAt,
	}, nil
}
