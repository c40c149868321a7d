package repository

import (
	"app/internal/domain/model"
	"context"
)

// Stock mutations. DecreaseStockIfEnough is the stock guard: a single
// conditional UPDATE that only fires when enough stock remains, so two
// concurrent checkouts can never drive stock_quantity below zero.
type InventoryRepository interface {
	SetStock(ctx context.Context, productID int64, newStock int64) error

	// Returns false (and changes nothing) when stock is insufficient.
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// Stock restore on cancellation.
	IncreaseStock(ctx context.Context, productID int64, qty int64) error

	CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error
}
