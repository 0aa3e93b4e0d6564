package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// TitleCatalog serves the live streaming catalog.
type TitleCatalog interface {
	Shelves() model.TitleShelves
	Title(ctx context.Context, id string) (model.Title, error)
}

// Catalog handles the streaming catalog endpoints.
type Catalog struct {
	titles TitleCatalog
	logger *logger.Logger
}

type getTitleRequest struct {
	ID string `json:"id"`
}

func (h *Catalog) ListTitles(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return encode(h.titles.Shelves())
}

func (h *Catalog) GetTitle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in getTitleRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if in.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "title id is required")
	}

	title, err := h.titles.Title(ctx, in.ID)
	if err != nil {
		h.logger.Debug("Catalog handler: title lookup failed",
			"id", in.ID,
			"error", err.Error())
		return nil, handleError(err)
	}
	return encode(map[string]any{"title": title})
}
