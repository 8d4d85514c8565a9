package model

import (
	"time"

	"gorm.io/gorm"
)

type StockStatus string

const (
	StockInStock    StockStatus = "in_stock"
	StockOutOfStock StockStatus = "out_of_stock"
	StockBackorder  StockStatus = "backorder"
)

// Product holds catalog data. Price and SalePrice are caches when the
// product has variants: the variant price synchronizer keeps them equal to
// the minimum-priced variant. SalePrice always carries the effective price
// (equal to Price when no promotion applies).
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	Slug          string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description   string         `gorm:"type:text" json:"description"`
	SKU           string         `gorm:"type:varchar(100);uniqueIndex:idx_products_sku,where:sku <> ''" json:"sku"`
	Price         float64        `gorm:"not null;default:0" json:"price"`
	SalePrice     float64        `gorm:"not null;default:0" json:"sale_price"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	StockStatus   StockStatus    `gorm:"type:varchar(20);default:'in_stock'" json:"stock_status"`
	ImageURL      string         `gorm:"type:varchar(255)" json:"image_url"`
	PromotionID   *uint          `gorm:"index" json:"promotion_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Promotion  *Promotion       `gorm:"foreignKey:PromotionID" json:"promotion,omitempty"`
	Variants   []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	OrderItems []OrderItem      `gorm:"foreignKey:ProductID" json:"-"`
	CartItems  []CartItem       `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// EffectivePrice is the price a buyer pays right now: the sale price when
// set, the base price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice > 0 {
		return p.SalePrice
	}
	return p.Price
}
