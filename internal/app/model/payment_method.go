package model

import (
	"time"
)

const PaymentTypeCOD = "cod"

// PaymentMethod is a configurable checkout option ("cod", "bank_transfer",
// ...). The id is a short string chosen by the admin, not an auto-increment.
type PaymentMethod struct {
	ID          string    `gorm:"type:varchar(50);primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Type        string    `gorm:"type:varchar(50);default:'manual'" json:"type"`
	IsActive    bool      `json:"is_active"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}
