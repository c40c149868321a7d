package repository

import (
	"app/internal/domain/model"
	"context"
)

// FavoriteView joins a favorite with current product and bakery data.
type FavoriteView struct {
	model.Favorite
	ProductName        string `json:"product_name"`
	Description        string `json:"description"`
	Emoji              string `json:"emoji"`
	OriginalPrice      int64  `json:"original_price"`
	DiscountedPrice    int64  `json:"discounted_price"`
	DiscountPercentage int64  `json:"discount_percentage"`
	StockQuantity      int64  `json:"stock_quantity"`
	IsAvailable        bool   `json:"is_available"`
	BakeryName         string `json:"bakery_name"`
	CategoryName       string `json:"category_name"`
}

type FavoriteRepository interface {
	ListViewByUser(ctx context.Context, userID int64) ([]FavoriteView, error)
	Exists(ctx context.Context, userID int64, productID int64) (bool, error)
	Create(ctx context.Context, fav model.Favorite) error
	Delete(ctx context.Context, userID int64, productID int64) error
}
