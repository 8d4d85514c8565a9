package model

import (
	"time"
)

type PromotionType string

const (
	PromotionFlashSale       PromotionType = "flash_sale"
	PromotionDiscountProgram PromotionType = "discount_program"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Promotion describes a discount campaign over a set of products. Targeting
// is a weak reference: applying the promotion writes its id onto each
// targeted product and overwrites product/variant sale prices in bulk.
type Promotion struct {
	ID            uint          `gorm:"primarykey" json:"id"`
	Name          string        `gorm:"type:varchar(255);not null" json:"name"`
	Type          PromotionType `gorm:"type:varchar(30);not null" json:"type"`
	StartDate     time.Time     `gorm:"not null" json:"start_date"`
	EndDate       time.Time     `gorm:"not null" json:"end_date"`
	IsActive      bool          `json:"is_active"`
	DiscountType  DiscountType  `gorm:"type:varchar(20);not null;default:'percentage'" json:"discount_type"`
	DiscountValue float64       `gorm:"not null;default:0" json:"discount_value"`
	Description   string        `gorm:"type:text" json:"description"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	Products []Product `gorm:"foreignKey:PromotionID" json:"products,omitempty"`
}

func (Promotion) TableName() string {
	return "promotions"
}
