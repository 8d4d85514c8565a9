package model

import (
	"time"
)

type CouponType string

const (
	CouponFixedCart CouponType = "fixed_cart"
	CouponPercent   CouponType = "percent"
	CouponFreeShip  CouponType = "free_ship"
)

// Coupon is a redeemable discount code. UsageCount must never exceed a
// positive UsageLimit; it is incremented with a guarded atomic column update,
// exactly once per successful order that references the coupon.
type Coupon struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Code         string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	DiscountType CouponType `gorm:"type:varchar(20);default:'fixed_cart'" json:"discount_type"`
	Amount       float64    `gorm:"not null" json:"amount"`
	MaxDiscount  float64    `gorm:"default:0" json:"max_discount"`
	MinSpend     float64    `gorm:"default:0" json:"min_spend"`
	UsageLimit   int        `gorm:"default:0" json:"usage_limit"`
	UsageCount   int        `gorm:"default:0" json:"usage_count"`
	IsActive     bool       `json:"is_active"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Coupon) TableName() string {
	return "coupons"
}
