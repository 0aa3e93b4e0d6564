package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// Products reads the storefront catalog.
type Products struct {
	documents model.DocumentStore
}

func NewProducts(documents model.DocumentStore) *Products {
	return &Products{documents: documents}
}

// List returns every product ordered by id.
func (p *Products) List(ctx context.Context) ([]model.Product, error) {
	docs, err := p.documents.ListDocuments(ctx, model.CollectionProducts)
	if err != nil {
		return nil, &model.StoreError{Op: "list", Collection: model.CollectionProducts, Err: err}
	}

	products := make([]model.Product, 0, len(docs))
	for _, doc := range docs {
		product, err := toProduct(doc)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

// Get returns one product. Unknown ids yield model.ErrNotFound.
func (p *Products) Get(ctx context.Context, id string) (model.Product, error) {
	doc, err := p.documents.GetDocument(ctx, model.CollectionProducts, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Product{}, fmt.Errorf("product %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return model.Product{}, &model.StoreError{Op: "get", Collection: model.CollectionProducts, ID: id, Err: err}
	}
	return toProduct(doc)
}

func toProduct(doc model.Document) (model.Product, error) {
	var product model.Product
	if err := doc.DecodeFields(&product); err != nil {
		return model.Product{}, fmt.Errorf("product %s: %w", doc.ID, err)
	}
	product.ID = doc.ID
	return product, nil
}

// Catalog keeps the streaming title catalog live through a collection
// subscription.
type Catalog struct {
	documents model.DocumentStore
	logger    *logger.Logger

	mu          sync.RWMutex
	shelves     model.TitleShelves
	byID        map[string]model.Title
	unsubscribe func()
}

func NewCatalog(documents model.DocumentStore, logger *logger.Logger) *Catalog {
	return &Catalog{
		documents: documents,
		logger:    logger,
		shelves:   Shelve(nil),
		byID:      make(map[string]model.Title),
	}
}

// Start subscribes to the titles collection. The current snapshot is
// applied before Start returns.
func (c *Catalog) Start(ctx context.Context) error {
	unsubscribe, err := c.documents.SubscribeToCollection(ctx, model.CollectionTitles, c.apply)
	if err != nil {
		return &model.StoreError{Op: "subscribe", Collection: model.CollectionTitles, Err: err}
	}

	c.mu.Lock()
	c.unsubscribe = unsubscribe
	c.mu.Unlock()
	return nil
}

// Close releases the subscription. Safe to call more than once.
func (c *Catalog) Close() {
	c.mu.Lock()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Shelves returns the latest partitioned catalog.
func (c *Catalog) Shelves() model.TitleShelves {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return model.TitleShelves{
		Recommend: append([]model.Title{}, c.shelves.Recommend...),
		New:       append([]model.Title{}, c.shelves.New...),
		Original:  append([]model.Title{}, c.shelves.Original...),
		Trending:  append([]model.Title{}, c.shelves.Trending...),
	}
}

// Title returns a title by id. Titles missing from the snapshot are read
// from the store directly.
func (c *Catalog) Title(ctx context.Context, id string) (model.Title, error) {
	c.mu.RLock()
	title, ok := c.byID[id]
	c.mu.RUnlock()
	if ok {
		return title, nil
	}

	doc, err := c.documents.GetDocument(ctx, model.CollectionTitles, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Title{}, fmt.Errorf("title %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return model.Title{}, &model.StoreError{Op: "get", Collection: model.CollectionTitles, ID: id, Err: err}
	}
	return toTitle(doc)
}

func (c *Catalog) apply(snapshot model.Snapshot) {
	titles := make([]model.Title, 0, len(snapshot.Documents))
	for _, doc := range snapshot.Documents {
		title, err := toTitle(doc)
		if err != nil {
			c.logger.Warn("Catalog: skipping malformed title",
				"id", doc.ID,
				"error", err.Error())
			continue
		}
		titles = append(titles, title)
	}

	byID := make(map[string]model.Title, len(titles))
	for _, t := range titles {
		byID[t.ID] = t
	}

	c.mu.Lock()
	c.shelves = Shelve(titles)
	c.byID = byID
	c.mu.Unlock()

	c.logger.Debug("Catalog: snapshot applied",
		"titles", len(titles))
}

// Shelve partitions titles by type, keeping snapshot order. Unknown types
// are dropped.
func Shelve(titles []model.Title) model.TitleShelves {
	shelves := model.TitleShelves{
		Recommend: []model.Title{},
		New:       []model.Title{},
		Original:  []model.Title{},
		Trending:  []model.Title{},
	}
	for _, t := range titles {
		switch t.Type {
		case model.TitleRecommend:
			shelves.Recommend = append(shelves.Recommend, t)
		case model.TitleNew:
			shelves.New = append(shelves.New, t)
		case model.TitleOriginal:
			shelves.Original = append(shelves.Original, t)
		case model.TitleTrending:
			shelves.Trending = append(shelves.Trending, t)
		}
	}
	return shelves
}

func toTitle(doc model.Document) (model.Title, error) {
	var title model.Title
	if err := doc.DecodeFields(&title); err != nil {
		return model.Title{}, fmt.Errorf("title %s: %w", doc.ID, err)
	}
	title.ID = doc.ID
	return title, nil
}
