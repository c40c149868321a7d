package model

import "time"

// Favorite marks a product saved by a user. One row per (user, product).
type Favorite struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_fav_user_product" json:"user_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_fav_user_product" json:"product_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
