package repository

import (
	"app/internal/domain/model"
	"context"
)

// CartLineView is a cart line joined with live product and bakery data.
// Prices are read from the catalog at query time, never cached.
type CartLineView struct {
	model.CartLine
	ProductName     string `json:"product_name"`
	Emoji           string `json:"emoji"`
	BakeryName      string `json:"bakery_name"`
	DiscountedPrice int64  `json:"discounted_price"`
	StockQuantity   int64  `json:"stock_quantity"`
	IsAvailable     bool   `json:"is_available"`
}

type CartRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.CartLine, error)
	ListViewByUser(ctx context.Context, userID int64) ([]CartLineView, error)
	FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.CartLine, error)

	// Upsert adds addQty to the existing line for (user, product), or
	// inserts a new one.
	Upsert(ctx context.Context, userID int64, productID int64, addQty int64) error
	UpdateQuantity(ctx context.Context, userID int64, productID int64, qty int64) error
	Delete(ctx context.Context, userID int64, productID int64) error
	Clear(ctx context.Context, userID int64) error

	// DeleteLines removes exactly the given line ids (used after checkout).
	DeleteLines(ctx context.Context, userID int64, lineIDs []int64) error
}
