package service

import (
	"errors"
	"strings"
	"time"

	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/app/repository"
	"github.com/haungo2109/be-thamhienmauto/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrCouponExpired       = errors.New("coupon has expired")
	ErrCouponExhausted     = errors.New("coupon usage limit reached")
	ErrCouponBelowMinSpend = errors.New("cart total is below the coupon minimum spend")
)

// CouponQuote is the outcome of applying a coupon to a cart total. The same
// quote logic backs both the preview endpoint and order placement so the two
// never disagree.
type CouponQuote struct {
	Coupon         *model.Coupon `json:"coupon"`
	Subtotal       float64       `json:"subtotal"`
	ShippingFee    float64       `json:"shipping_fee"`
	DiscountAmount float64       `json:"discount_amount"`
	Total          float64       `json:"total"`
}

type CouponService interface {
	Create(coupon *model.Coupon) error
	GetAll() ([]model.Coupon, error)
	GetByID(id uint) (*model.Coupon, error)
	Update(coupon *model.Coupon) error
	Delete(id uint) error
	Validate(code string, subtotal float64) (*model.Coupon, error)
	Quote(code string, subtotal, shippingFee float64) (*CouponQuote, error)
	Preview(code string, cartTotal float64) (*CouponQuote, error)
}

type couponService struct {
	couponRepo   repository.CouponRepository
	shippingRepo repository.ShippingRepository
}

func NewCouponService(couponRepo repository.CouponRepository, shippingRepo repository.ShippingRepository) CouponService {
	return &couponService{couponRepo: couponRepo, shippingRepo: shippingRepo}
}

func (s *couponService) Create(coupon *model.Coupon) error {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	return s.couponRepo.Create(coupon)
}

func (s *couponService) GetAll() ([]model.Coupon, error) {
	return s.couponRepo.FindAll()
}

func (s *couponService) GetByID(id uint) (*model.Coupon, error) {
	coupon, err := s.couponRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return coupon, nil
}

func (s *couponService) Update(coupon *model.Coupon) error {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	return s.couponRepo.Update(coupon)
}

func (s *couponService) Delete(id uint) error {
	return s.couponRepo.Delete(id)
}

// Validate fetches a coupon by code and checks it against a cart subtotal.
// Checks run in a fixed order so callers surface a stable failure reason:
// an active coupon exists, then expiry, then remaining uses, then minimum
// spend. A deactivated code is indistinguishable from a missing one.
func (s *couponService) Validate(code string, subtotal float64) (*model.Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	coupon, err := s.couponRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	if !coupon.IsActive {
		return nil, ErrCouponNotFound
	}
	if coupon.ExpiryDate != nil && coupon.ExpiryDate.Before(time.Now()) {
		return nil, ErrCouponExpired
	}
	if coupon.UsageLimit > 0 && coupon.UsageCount >= coupon.UsageLimit {
		return nil, ErrCouponExhausted
	}
	if subtotal < coupon.MinSpend {
		return nil, ErrCouponBelowMinSpend
	}

	return coupon, nil
}

// Quote validates a coupon and computes its discount against a subtotal and
// shipping fee.
func (s *couponService) Quote(code string, subtotal, shippingFee float64) (*CouponQuote, error) {
	coupon, err := s.Validate(code, subtotal)
	if err != nil {
		return nil, err
	}

	discount := couponDiscount(coupon, subtotal, shippingFee)
	return &CouponQuote{
		Coupon:         coupon,
		Subtotal:       subtotal,
		ShippingFee:    shippingFee,
		DiscountAmount: discount,
		Total:          subtotal + shippingFee - discount,
	}, nil
}

// Preview quotes a coupon for the apply endpoint, deriving the shipping fee
// from the current shipping config the same way order placement does.
func (s *couponService) Preview(code string, cartTotal float64) (*CouponQuote, error) {
	config, err := s.shippingRepo.GetConfig()
	if err != nil {
		logger.Error("Failed to load shipping config for coupon preview", err)
		return nil, err
	}
	return s.Quote(code, cartTotal, config.FeeFor(cartTotal))
}

// couponDiscount computes the discount amount for a validated coupon. The
// result is capped so an order total can never go negative.
func couponDiscount(coupon *model.Coupon, subtotal, shippingFee float64) float64 {
	var discount float64
	switch coupon.DiscountType {
	case model.CouponFixedCart:
		discount = coupon.Amount
	case model.CouponPercent:
		discount = subtotal * coupon.Amount / 100
		if coupon.MaxDiscount > 0 && discount > coupon.MaxDiscount {
			discount = coupon.MaxDiscount
		}
	case model.CouponFreeShip:
		discount = shippingFee
	}

	if max := subtotal + shippingFee; discount > max {
		discount = max
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}
