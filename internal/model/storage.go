package model

import "context"

// ReceiptArchive keeps an immutable copy of every completed order.
type ReceiptArchive interface {
	SaveReceipt(ctx context.Context, userID string, order Order) error
	HasReceipt(ctx context.Context, userID, orderID string) (bool, error)
}
