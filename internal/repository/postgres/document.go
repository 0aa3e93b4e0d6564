package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/repository/document"
)

// notifyChannel carries the name of every collection that changed.
const notifyChannel = "documents"

const listenRetryDelay = time.Second

var _ model.DocumentStore = (*DocumentRepository)(nil)

// DocumentRepository stores documents as JSONB rows keyed by (collection, id).
// Writes publish the collection name with pg_notify, and a single LISTEN
// connection refreshes subscribers, so writes from other processes are
// observed too.
type DocumentRepository struct {
	db     *Connection
	hub    *document.Hub
	logger *logger.Logger

	listenOnce sync.Once
	cancel     context.CancelFunc
	done       chan struct{}
}

func NewDocumentRepository(db *Connection, logger *logger.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:     db,
		hub:    document.NewHub(),
		logger: logger,
	}
}

func (r *DocumentRepository) GetDocument(ctx context.Context, collection, id string) (model.Document, error) {
	if err := document.ValidatePath(collection, id); err != nil {
		return model.Document{}, err
	}

	const query = `SELECT fields, updated_at FROM documents WHERE collection = $1 AND id = $2`

	doc := model.Document{Collection: collection, ID: id}
	err := r.db.QueryRow(ctx, query, collection, id).Scan(&doc.Fields, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Document{}, model.ErrNotFound
		}
		return model.Document{}, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

func (r *DocumentRepository) SetDocument(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := document.ValidatePath(collection, id); err != nil {
		return err
	}
	normalized, err := document.NormalizeFields(fields)
	if err != nil {
		return fmt.Errorf("failed to normalize document: %w", err)
	}

	const query = `
        INSERT INTO documents (collection, id, fields, updated_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (collection, id) DO UPDATE SET fields = EXCLUDED.fields, updated_at = NOW()
    `

	return r.inTx(ctx, collection, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query, collection, id, normalized); err != nil {
			return fmt.Errorf("failed to set document: %w", err)
		}
		return nil
	})
}

func (r *DocumentRepository) UpdateDocument(ctx context.Context, collection, id string, updates ...model.FieldUpdate) error {
	if err := document.ValidatePath(collection, id); err != nil {
		return err
	}

	return r.inTx(ctx, collection, func(tx pgx.Tx) error {
		var current map[string]any
		err := tx.QueryRow(ctx,
			`SELECT fields FROM documents WHERE collection = $1 AND id = $2 FOR UPDATE`,
			collection, id,
		).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrNotFound
			}
			return fmt.Errorf("failed to lock document: %w", err)
		}

		fields, err := document.Apply(current, updates)
		if err != nil {
			return fmt.Errorf("failed to apply updates: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE documents SET fields = $3, updated_at = NOW() WHERE collection = $1 AND id = $2`,
			collection, id, fields,
		)
		if err != nil {
			return fmt.Errorf("failed to update document: %w", err)
		}
		return nil
	})
}

// ListDocuments returns the documents of collection ordered by id.
func (r *DocumentRepository) ListDocuments(ctx context.Context, collection string) ([]model.Document, error) {
	const query = `SELECT id, fields, updated_at FROM documents WHERE collection = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := []model.Document{}
	for rows.Next() {
		doc := model.Document{Collection: collection}
		if err := rows.Scan(&doc.ID, &doc.Fields, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return docs, nil
}

// SubscribeToCollection delivers the current snapshot and then a fresh one
// after every committed write to collection. The first call starts the
// LISTEN loop, which runs until Close.
func (r *DocumentRepository) SubscribeToCollection(ctx context.Context, collection string, onSnapshot func(model.Snapshot)) (func(), error) {
	if collection == "" {
		return nil, document.ErrInvalidPath
	}
	r.listenOnce.Do(r.startListener)
	return r.hub.Subscribe(collection, onSnapshot, r.loader(ctx, collection))
}

// Close stops the LISTEN loop. The connection pool is owned by the caller.
func (r *DocumentRepository) Close() {
	r.listenOnce.Do(func() {})
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}

func (r *DocumentRepository) inTx(ctx context.Context, collection string, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		if err := fn(tx); err != nil {
			return err
		}
		// Delivered on commit.
		if _, err := tx.Exec(ctx, `SELECT pg_notify($1, $2)`, notifyChannel, collection); err != nil {
			return fmt.Errorf("failed to notify: %w", err)
		}
		return nil
	})
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

func (r *DocumentRepository) startListener() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		for {
			err := r.listen(ctx)
			if ctx.Err() != nil {
				return
			}
			r.logger.Error("Document repository: listener stopped, retrying",
				"channel", notifyChannel,
				"error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(listenRetryDelay):
			}
		}
	}()
}

func (r *DocumentRepository) listen(ctx context.Context) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire listen connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		collection := n.Payload
		if err := r.hub.Notify(collection, r.loader(ctx, collection)); err != nil {
			r.logger.Error("Document repository: failed to refresh subscribers",
				"collection", collection,
				"error", err)
		}
	}
}
