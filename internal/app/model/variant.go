package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// ProductVariant is a purchasable variation of a product (e.g. color=red,
// year=2018). Variant prices are authoritative; the owning product's
// price/sale_price mirror the cheapest variant.
type ProductVariant struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	ProductID     uint           `gorm:"not null;index" json:"product_id"`
	SKU           string         `gorm:"type:varchar(100);uniqueIndex:idx_product_variants_sku,where:sku <> ''" json:"sku"`
	Price         float64        `gorm:"not null" json:"price"`
	SalePrice     float64        `gorm:"not null;default:0" json:"sale_price"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	ImageURL      string         `gorm:"type:varchar(255)" json:"image_url"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product         `gorm:"foreignKey:ProductID" json:"-"`
	Options []VariantOption `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

// EffectivePrice is the price a buyer pays for this variant right now.
func (v *ProductVariant) EffectivePrice() float64 {
	if v.SalePrice > 0 {
		return v.SalePrice
	}
	return v.Price
}

// DisplayName concatenates the price-affecting option values, e.g.
// "Color: Red, Year: 2018". This is the string snapshotted into order items.
func (v *ProductVariant) DisplayName() string {
	var parts []string
	for _, opt := range v.Options {
		if opt.AffectsPrice {
			parts = append(parts, opt.AttributeName+": "+opt.AttributeValue)
		}
	}
	return strings.Join(parts, ", ")
}

// VariantOption is an attribute name/value pair attached to a variant.
type VariantOption struct {
	ID             uint   `gorm:"primarykey" json:"id"`
	VariantID      uint   `gorm:"not null;index" json:"variant_id"`
	AttributeName  string `gorm:"type:varchar(50);not null" json:"attribute_name"`
	AttributeValue string `gorm:"type:varchar(50);not null" json:"attribute_value"`
	AffectsPrice   bool   `gorm:"default:false" json:"affects_price"`

	Variant ProductVariant `gorm:"foreignKey:VariantID" json:"-"`
}

func (VariantOption) TableName() string {
	return "variant_options"
}
