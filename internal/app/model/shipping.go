package model

import (
	"time"
)

type PartnerStatus string

const (
	PartnerActive   PartnerStatus = "active"
	PartnerInactive PartnerStatus = "inactive"
)

// ShippingPartner is a delivery carrier selectable at checkout.
type ShippingPartner struct {
	ID          uint          `gorm:"primarykey" json:"id"`
	Name        string        `gorm:"type:varchar(100);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description,omitempty"`
	Status      PartnerStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Orders []Order `gorm:"foreignKey:ShippingPartnerID" json:"-"`
}

func (ShippingPartner) TableName() string {
	return "shipping_partners"
}

// ShippingConfig holds the flat-fee shipping rule: orders at or above the
// free threshold ship for free, everything else pays the base fee.
type ShippingConfig struct {
	ID                    uint      `gorm:"primarykey" json:"id"`
	BaseFee               float64   `gorm:"not null;default:30000" json:"base_fee"`
	FreeShippingThreshold float64   `gorm:"not null;default:500000" json:"free_shipping_threshold"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (ShippingConfig) TableName() string {
	return "shipping_configs"
}

// FeeFor returns the shipping fee for a cart subtotal under this config.
func (c *ShippingConfig) FeeFor(subtotal float64) float64 {
	if c.FreeShippingThreshold > 0 && subtotal >= c.FreeShippingThreshold {
		return 0
	}
	return c.BaseFee
}
