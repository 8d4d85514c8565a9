package model

import (
	"time"

	"gorm.io/gorm"
)

// CartItem is a mutable cart line owned by one user. It is destroyed on
// order placement or explicit removal.
type CartItem struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	UserID           uint           `gorm:"not null;index" json:"user_id"`
	ProductID        uint           `gorm:"not null;index" json:"product_id"`
	ProductVariantID *uint          `gorm:"index" json:"product_variant_id,omitempty"`
	Quantity         int            `gorm:"not null;default:1" json:"quantity"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	User    User            `gorm:"foreignKey:UserID" json:"-"`
	Product Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Variant *ProductVariant `gorm:"foreignKey:ProductVariantID" json:"variant,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
