package model

import (
	"time"
)

type AddressType string

const (
	AddressTypeHome   AddressType = "home"
	AddressTypeOffice AddressType = "office"
)

// UserAddress is an entry in a user's shipping address book
type UserAddress struct {
	ID            uint        `gorm:"primarykey" json:"id"`
	UserID        uint        `gorm:"not null;index" json:"user_id"`
	ReceiverName  string      `gorm:"type:varchar(255);not null" json:"receiver_name"`
	ReceiverPhone string      `gorm:"type:varchar(20);not null" json:"receiver_phone"`
	Address       string      `gorm:"type:text;not null" json:"address"`
	AddressType   AddressType `gorm:"type:varchar(20);default:'home'" json:"address_type"`
	IsDefault     bool        `gorm:"default:false" json:"is_default"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (UserAddress) TableName() string {
	return "user_addresses"
}
