package model

import "time"

// OrderItem snapshots one cart line at order time. UnitPrice is the
// discounted price at that instant and never changes afterwards, even
// when the product is repriced or deleted.
type OrderItem struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64     `gorm:"not null;index" json:"order_id"`
	ProductID   int64     `gorm:"not null;index" json:"product_id"`
	ProductName string    `gorm:"type:varchar(255);not null" json:"product_name"`
	BakeryName  string    `gorm:"type:varchar(255);not null" json:"bakery_name"`
	UnitPrice   int64     `gorm:"not null" json:"unit_price"`
	Quantity    int64     `gorm:"not null" json:"quantity"`
	Subtotal    int64     `gorm:"not null" json:"subtotal"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
