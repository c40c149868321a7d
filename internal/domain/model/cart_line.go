package model

import "time"

// CartLine is one pending selection. One row per (user, product);
// re-adding the same product adds to Quantity instead of duplicating.
// No price is stored here: the cart always reads live product prices.
type CartLine struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	AddedAt   time.Time `gorm:"not null;autoCreateTime" json:"added_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
