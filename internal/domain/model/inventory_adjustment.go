package model

import "time"

// Manual stock change made through the bakery portal. Order-driven
// decrements are not recorded here; they live in order items.
type InventoryAdjustment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	BakeryID  int64     `gorm:"not null;index" json:"bakery_id"`
	Delta     int64     `gorm:"not null" json:"delta"`
	Reason    string    `gorm:"type:varchar(255);not null" json:"reason"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
