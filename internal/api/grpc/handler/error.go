package handler

import (
	"errors"

	apiErrors "github.com/dtroode/gophkeeper-api/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/storefront-server/internal/model"
)

func handleError(err error) error {
	var apiErr *apiErrors.APIError
	if errors.As(err, &apiErr) {
		return status.Error(apiErr.GRPCCode, apiErr.Message)
	}
	if st, ok := status.FromError(err); ok {
		return st.Err()
	}

	var (
		authErr    *model.AuthError
		paymentErr *model.PaymentError
		storeErr   *model.StoreError
	)
	switch {
	case errors.Is(err, model.ErrSessionNotFound):
		return status.Error(codes.NotFound, "session not found")
	case errors.Is(err, model.ErrNotSignedIn):
		return status.Error(codes.Unauthenticated, "user is not signed in")
	case errors.As(err, &authErr):
		if authErr.Op == "register" {
			return status.Error(codes.InvalidArgument, authErr.Err.Error())
		}
		return status.Error(codes.Unauthenticated, authErr.Err.Error())
	case errors.As(err, &paymentErr):
		return status.Error(codes.FailedPrecondition, paymentErr.Err.Error())
	case errors.Is(err, model.ErrInvalidQuantity), errors.Is(err, model.ErrInvalidPrice):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.As(err, &storeErr):
		return status.Error(codes.Unavailable, "document store unavailable")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
