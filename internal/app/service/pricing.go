package service

import (
	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
)

// ComputeSalePrice applies a promotion discount to a base price. Percentage
// discounts scale the price down, fixed discounts subtract an absolute
// amount. The result never goes below zero.
func ComputeSalePrice(price float64, discountType model.DiscountType, discountValue float64) float64 {
	var sale float64
	switch discountType {
	case model.DiscountPercentage:
		sale = price * (1 - discountValue/100)
	case model.DiscountFixed:
		sale = price - discountValue
	default:
		sale = price
	}
	if sale < 0 {
		return 0
	}
	return sale
}
