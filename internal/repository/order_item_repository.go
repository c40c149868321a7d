package repository

import (
	"context"

	"app/internal/domain/model"
)

// OrderItemRepository stores the per-line snapshots taken at checkout.
// Items are written once, in bulk, inside the order transaction and
// are never updated afterwards.
type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
