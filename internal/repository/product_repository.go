package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Public catalog listing filters.
type ProductListQuery struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	BakeryID   *int64
	Sort       string // "", "new", "price_asc", "price_desc"
}

type ProductRepository interface {
	// ListPublic returns available, non-deleted products only.
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
	ListByBakery(ctx context.Context, bakeryID int64) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, bakeryID int64, id int64) error
}
