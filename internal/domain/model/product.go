package model

import (
	"time"

	"gorm.io/gorm"
)

// Product is a surplus-bread listing owned by a bakery.
// Prices are centavos. DiscountedPrice is what the buyer pays and must
// never exceed OriginalPrice; DiscountPercentage is derived on write.
type Product struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	BakeryID   int64 `gorm:"not null;index" json:"bakery_id"`
	CategoryID int64 `gorm:"not null;index" json:"category_id"`

	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Emoji       string `gorm:"type:varchar(16)" json:"emoji"`
	ImageURL    string `gorm:"type:varchar(500)" json:"image_url"`

	OriginalPrice      int64 `gorm:"not null" json:"original_price"`
	DiscountedPrice    int64 `gorm:"not null" json:"discounted_price"`
	DiscountPercentage int64 `gorm:"not null;default:0" json:"discount_percentage"`

	StockQuantity int64 `gorm:"not null;default:0" json:"stock_quantity"`
	IsAvailable   bool  `gorm:"not null;default:true" json:"is_available"`

	IsOnSale      bool       `gorm:"not null;default:false" json:"is_on_sale"`
	SaleStartDate *time.Time `json:"sale_start_date"`
	SaleEndDate   *time.Time `json:"sale_end_date"`
	ExpiryDate    *time.Time `json:"expiry_date"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
