// Package memory provides thread-safe in-memory stores.
// Suitable for tests, demos and single-process use.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/repository/document"
)

var _ model.DocumentStore = (*DocumentRepository)(nil)

type storedDocument struct {
	fields    map[string]any
	updatedAt time.Time
}

// DocumentRepository keeps documents per collection. Field values are stored
// in normalized JSON form and deep-copied on every read.
type DocumentRepository struct {
	mu   sync.RWMutex
	data map[string]map[string]storedDocument
	hub    *document.Hub
	logger *logger.Logger
	now    func() time.Time
}

func NewDocumentRepository(logger *logger.Logger) *DocumentRepository {
	return &DocumentRepository{
		data:   make(map[string]map[string]storedDocument),
		hub:    document.NewHub(),
		logger: logger,
		now:    time.Now,
	}
}

func (r *DocumentRepository) GetDocument(_ context.Context, collection, id string) (model.Document, error) {
	if err := document.ValidatePath(collection, id); err != nil {
		return model.Document{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.data[collection][id]
	if !ok {
		return model.Document{}, model.ErrNotFound
	}
	return toDocument(collection, id, stored)
}

func (r *DocumentRepository) SetDocument(_ context.Context, collection, id string, fields map[string]any) error {
	if err := document.ValidatePath(collection, id); err != nil {
		return err
	}
	normalized, err := document.NormalizeFields(fields)
	if err != nil {
		return fmt.Errorf("failed to normalize document: %w", err)
	}

	r.mu.Lock()
	if r.data[collection] == nil {
		r.data[collection] = make(map[string]storedDocument)
	}
	r.data[collection][id] = storedDocument{fields: normalized, updatedAt: r.now()}
	r.mu.Unlock()

	r.notify(collection)
	return nil
}

func (r *DocumentRepository) UpdateDocument(_ context.Context, collection, id string, updates ...model.FieldUpdate) error {
	if err := document.ValidatePath(collection, id); err != nil {
		return err
	}

	r.mu.Lock()
	stored, ok := r.data[collection][id]
	if !ok {
		r.mu.Unlock()
		return model.ErrNotFound
	}
	fields, err := document.Apply(stored.fields, updates)
	if err != nil {
		r.mu.Unlock()
		return fmt.Errorf("failed to apply updates: %w", err)
	}
	r.data[collection][id] = storedDocument{fields: fields, updatedAt: r.now()}
	r.mu.Unlock()

	r.notify(collection)
	return nil
}

// ListDocuments returns the documents of collection ordered by id.
func (r *DocumentRepository) ListDocuments(_ context.Context, collection string) ([]model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked(collection)
}

func (r *DocumentRepository) SubscribeToCollection(_ context.Context, collection string, onSnapshot func(model.Snapshot)) (func(), error) {
	if strings.TrimSpace(collection) == "" {
		return nil, document.ErrInvalidPath
	}
	return r.hub.Subscribe(collection, onSnapshot, r.loader(collection))
}

// DeleteDocument removes a document. Missing documents are not an error.
func (r *DocumentRepository) DeleteDocument(_ context.Context, collection, id string) error {
	r.mu.Lock()
	delete(r.data[collection], id)
	r.mu.Unlock()
	r.notify(collection)
	return nil
}

// notify refreshes subscribers after a committed write. A failed refresh
// does not fail the write.
func (r *DocumentRepository) notify(collection string) {
	if err := r.hub.Notify(collection, r.loader(collection)); err != nil {
		r.logger.Error("Document repository: failed to refresh subscribers",
			"collection", collection,
			"error", err)
	}
}

func (r *DocumentRepository) loader(collection string) document.Loader {
	return func() (model.Snapshot, error) {
		r.mu.RLock()
		defer r.mu.RUnlock()
		docs, err := r.listLocked(collection)
		if err != nil {
			return model.Snapshot{}, err
		}
		return model.Snapshot{Collection: collection, Documents: docs}, nil
	}
}

func (r *DocumentRepository) listLocked(collection string) ([]model.Document, error) {
	ids := slices.Sorted(maps.Keys(r.data[collection]))
	docs := make([]model.Document, 0, len(ids))
	for _, id := range ids {
		doc, err := toDocument(collection, id, r.data[collection][id])
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func toDocument(collection, id string, stored storedDocument) (model.Document, error) {
	fields, err := document.NormalizeFields(stored.fields)
	if err != nil {
		return model.Document{}, err
	}
	return model.Document{
		Collection: collection,
		ID:         id,
		Fields:     fields,
		UpdatedAt:  stored.updatedAt,
	}, nil
}
