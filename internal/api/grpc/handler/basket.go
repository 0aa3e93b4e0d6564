package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/service"
)

// ProductCatalog reads the storefront products.
type ProductCatalog interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id string) (model.Product, error)
}

// Basket handles basket mutations and the product listing.
type Basket struct {
	basketSync *service.BasketSync
	products   ProductCatalog
	presenter  *presenter
	logger     *logger.Logger
}

type addToBasketRequest struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

type removeFromBasketRequest struct {
	UniqueID string `json:"unique_id"`
}

type updateQuantityRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// AddToBasket adds quantity units of a product, one entry per unit.
// Quantity defaults to one.
func (h *Basket) AddToBasket(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := h.presenter.session(ctx)
	if err != nil {
		return nil, err
	}
	var in addToBasketRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if in.ProductID == "" {
		return nil, status.Error(codes.InvalidArgument, "product id is required")
	}
	quantity := 1
	if in.Quantity != nil {
		quantity = *in.Quantity
	}

	product, err := h.products.Get(ctx, in.ProductID)
	if err != nil {
		return nil, handleError(err)
	}

	result, err := h.basketSync.Add(ctx, sess, product, quantity)
	if err != nil {
		return nil, handleError(err)
	}

	return encode(h.presenter.mutation(ctx, sess, result))
}

func (h *Basket) RemoveFromBasket(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := h.presenter.session(ctx)
	if err != nil {
		return nil, err
	}
	var in removeFromBasketRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if in.UniqueID == "" {
		return nil, status.Error(codes.InvalidArgument, "unique id is required")
	}

	return encode(h.presenter.mutation(ctx, sess, h.basketSync.Remove(ctx, sess, in.UniqueID)))
}

func (h *Basket) UpdateBasketQuantity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := h.presenter.session(ctx)
	if err != nil {
		return nil, err
	}
	var in updateQuantityRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if in.ProductID == "" {
		return nil, status.Error(codes.InvalidArgument, "product id is required")
	}
	if in.Quantity < 1 || in.Quantity > model.MaxLineQuantity {
		return nil, handleError(model.ErrInvalidQuantity)
	}

	return encode(h.presenter.mutation(ctx, sess, h.basketSync.UpdateQuantity(sess, in.ProductID, in.Quantity)))
}

func (h *Basket) ListProducts(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	products, err := h.products.List(ctx)
	if err != nil {
		h.logger.Error("Basket handler: failed to list products",
			"error", err.Error())
		return nil, handleError(err)
	}
	return encode(map[string]any{"products": products})
}
