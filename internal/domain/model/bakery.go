package model

import "time"

// Bakery account for the seller-side portal.
type Bakery struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	Address      string `gorm:"type:varchar(500)" json:"address"`
	Phone        string `gorm:"type:varchar(30)" json:"phone"`
	Description  string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
