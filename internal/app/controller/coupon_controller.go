package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/app/service"
	apperr "github.com/haungo2109/be-thamhienmauto/internal/errors"
	"github.com/haungo2109/be-thamhienmauto/internal/middleware"
)

type CouponController struct {
	couponService service.CouponService
}

func NewCouponController(couponService service.CouponService) *CouponController {
	return &CouponController{
		couponService: couponService,
	}
}

type CouponRequest struct {
	Code         string           `json:"code" binding:"required"`
	DiscountType model.CouponType `json:"discount_type" binding:"required"`
	Amount       float64          `json:"amount" binding:"min=0"`
	MaxDiscount  float64          `json:"max_discount" binding:"min=0"`
	MinSpend     float64          `json:"min_spend" binding:"min=0"`
	UsageLimit   int              `json:"usage_limit" binding:"min=0"`
	IsActive     *bool            `json:"is_active"`
	ExpiryDate   *time.Time       `json:"expiry_date"`
}

type ApplyCouponRequest struct {
	Code      string  `json:"code" binding:"required"`
	CartTotal float64 `json:"cart_total" binding:"required,min=0"`
}

// ApplyCoupon quotes a coupon against a cart total without consuming a use
// POST /api/v1/coupons/apply
func (ctrl *CouponController) ApplyCoupon(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}

	quote, err := ctrl.couponService.Preview(req.Code, req.CartTotal)
	if err != nil {
		respondCouponError(c, err)
		return
	}

	log.Info("Coupon quoted", map[string]interface{}{
		"code":     quote.Coupon.Code,
		"discount": quote.DiscountAmount,
	})

	c.JSON(http.StatusOK, gin.H{
		"coupon":          quote.Coupon,
		"subtotal":        quote.Subtotal,
		"shipping_fee":    quote.ShippingFee,
		"discount_amount": quote.DiscountAmount,
		"total":           quote.Total,
	})
}

// GetCoupons lists all coupons (admin)
// GET /api/v1/admin/coupons
func (ctrl *CouponController) GetCoupons(c *gin.Context) {
	coupons, err := ctrl.couponService.GetAll()
	if err != nil {
		apperr.InternalError(c, "Failed to fetch coupons")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"coupons": coupons,
		"count":   len(coupons),
	})
}

// CreateCoupon creates a coupon (admin)
// POST /api/v1/admin/coupons
func (ctrl *CouponController) CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}

	coupon := &model.Coupon{
		Code:         req.Code,
		DiscountType: req.DiscountType,
		Amount:       req.Amount,
		MaxDiscount:  req.MaxDiscount,
		MinSpend:     req.MinSpend,
		UsageLimit:   req.UsageLimit,
		IsActive:     true,
		ExpiryDate:   req.ExpiryDate,
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if err := ctrl.couponService.Create(coupon); err != nil {
		apperr.ParseAndRespond(c, err, "coupon create")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"coupon": coupon})
}

// UpdateCoupon edits a coupon (admin)
// PUT /api/v1/admin/coupons/:id
func (ctrl *CouponController) UpdateCoupon(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	coupon, err := ctrl.couponService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			apperr.NotFound(c, apperr.CouponNotFound, "Coupon not found")
			return
		}
		apperr.InternalError(c, "Failed to fetch coupon")
		return
	}

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}

	coupon.Code = req.Code
	coupon.DiscountType = req.DiscountType
	coupon.Amount = req.Amount
	coupon.MaxDiscount = req.MaxDiscount
	coupon.MinSpend = req.MinSpend
	coupon.UsageLimit = req.UsageLimit
	coupon.ExpiryDate = req.ExpiryDate
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if err := ctrl.couponService.Update(coupon); err != nil {
		apperr.ParseAndRespond(c, err, "coupon update")
		return
	}

	c.JSON(http.StatusOK, gin.H{"coupon": coupon})
}

// DeleteCoupon removes a coupon (admin)
// DELETE /api/v1/admin/coupons/:id
func (ctrl *CouponController) DeleteCoupon(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := ctrl.couponService.GetByID(id); err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			apperr.NotFound(c, apperr.CouponNotFound, "Coupon not found")
			return
		}
		apperr.InternalError(c, "Failed to fetch coupon")
		return
	}

	if err := ctrl.couponService.Delete(id); err != nil {
		apperr.InternalError(c, "Failed to delete coupon")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted"})
}

// respondCouponError maps coupon validation failures to their codes. Order
// placement reuses this mapping so both surfaces report identically.
func respondCouponError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrCouponNotFound):
		apperr.NotFound(c, apperr.CouponNotFound, "Coupon not found")
	case errors.Is(err, service.ErrCouponExpired):
		apperr.BadRequest(c, apperr.CouponExpired, "Coupon has expired")
	case errors.Is(err, service.ErrCouponExhausted):
		apperr.BadRequest(c, apperr.CouponExhausted, "Coupon usage limit reached")
	case errors.Is(err, service.ErrCouponBelowMinSpend):
		apperr.BadRequest(c, apperr.CouponMinSpend, "Cart total is below the coupon minimum spend")
	default:
		return false
	}
	return true
}
