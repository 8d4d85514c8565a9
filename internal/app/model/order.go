package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusReturned   OrderStatus = "returned"
)

// Order is created once from a coherent snapshot of cart lines and is
// immutable afterwards, except for status transitions and, while still
// pending, the shipping contact fields. CouponCode is denormalized on
// purpose: the code survives even if the coupon row is later deleted.
//
// TotalAmount = SubTotal - DiscountAmount + ShippingFee + TaxAmount.
type Order struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	UserID            uint           `gorm:"not null;index" json:"user_id"`
	OrderNumber       string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_number"`
	Status            OrderStatus    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	SubTotal          float64        `gorm:"not null;default:0" json:"sub_total"`
	ShippingFee       float64        `gorm:"not null;default:0" json:"shipping_fee"`
	TaxAmount         float64        `gorm:"not null;default:0" json:"tax_amount"`
	CouponCode        string         `gorm:"type:varchar(50)" json:"coupon_code,omitempty"`
	DiscountAmount    float64        `gorm:"not null;default:0" json:"discount_amount"`
	TotalAmount       float64        `gorm:"not null" json:"total_amount"`
	ShippingName      string         `gorm:"type:varchar(255);not null" json:"shipping_name"`
	ShippingAddress   string         `gorm:"type:text;not null" json:"shipping_address"`
	ShippingPhone     string         `gorm:"type:varchar(20);not null" json:"shipping_phone"`
	ShippingEmail     string         `gorm:"type:varchar(100)" json:"shipping_email,omitempty"`
	Note              string         `gorm:"type:text" json:"note,omitempty"`
	PaymentMethodID   string         `gorm:"type:varchar(50);not null" json:"payment_method_id"`
	ShippingPartnerID *uint          `gorm:"index" json:"shipping_partner_id,omitempty"`
	TrackingNumber    string         `gorm:"type:varchar(100)" json:"tracking_number,omitempty"`
	CancelledAt       *time.Time     `json:"cancelled_at,omitempty"`
	CompletedAt       *time.Time     `json:"completed_at,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	User            User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ShippingPartner *ShippingPartner `gorm:"foreignKey:ShippingPartnerID" json:"shipping_partner,omitempty"`
	OrderItems      []OrderItem      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is a frozen snapshot of one ordered line: name, variant label,
// SKU, thumbnail and unit price are copied at order-creation time and never
// revised, even if the source product or variant later changes or is deleted.
type OrderItem struct {
	ID        uint `gorm:"primarykey" json:"id"`
	OrderID   uint `gorm:"not null;index" json:"order_id"`
	ProductID *uint `gorm:"index" json:"product_id,omitempty"`
	VariantID *uint `gorm:"index" json:"variant_id,omitempty"`

	// Snapshot data
	ProductName  string `gorm:"type:varchar(255);not null" json:"product_name"`
	VariantName  string `gorm:"type:varchar(255)" json:"variant_name,omitempty"`
	SKU          string `gorm:"type:varchar(100)" json:"sku,omitempty"`
	ThumbnailURL string `gorm:"type:text" json:"thumbnail_url,omitempty"`

	// Financial data
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
	Subtotal  float64 `gorm:"not null" json:"subtotal"` // quantity × unit_price

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
