package service

import (
	"errors"
	"time"

	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/app/repository"
	"github.com/haungo2109/be-thamhienmauto/pkg/logger"
	"github.com/haungo2109/be-thamhienmauto/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrStaleCartSelection      = errors.New("one or more selected cart items no longer exist")
	ErrEmptyCartSelection      = errors.New("no cart items selected")
	ErrOrderNotFound           = errors.New("order not found")
	ErrOrderAccessDenied       = errors.New("order belongs to another user")
	ErrOrderNotCancellable     = errors.New("order can no longer be cancelled")
	ErrOrderNotEditable        = errors.New("shipping info can only be edited while pending")
	ErrPaymentMethodNotFound   = errors.New("payment method not found or inactive")
	ErrShippingPartnerNotFound = errors.New("shipping partner not found or inactive")
	ErrInvalidStatusTransition = errors.New("invalid order status")
)

type CreateOrderRequest struct {
	CartItemIDs       []uint   `json:"cart_item_ids" binding:"required,min=1"`
	ShippingName      string   `json:"shipping_name" binding:"required"`
	ShippingAddress   string   `json:"shipping_address" binding:"required"`
	ShippingPhone     string   `json:"shipping_phone" binding:"required"`
	ShippingEmail     string   `json:"shipping_email"`
	Note              string   `json:"note"`
	PaymentMethodID   string   `json:"payment_method_id" binding:"required"`
	ShippingPartnerID *uint    `json:"shipping_partner_id"`
	CouponCode        string   `json:"coupon_code"`
	ShippingFee       *float64 `json:"shipping_fee" binding:"omitempty,min=0"`
	TaxAmount         float64  `json:"tax_amount" binding:"omitempty,min=0"`
}

type UpdateShippingRequest struct {
	ShippingName    string `json:"shipping_name" binding:"required"`
	ShippingAddress string `json:"shipping_address" binding:"required"`
	ShippingPhone   string `json:"shipping_phone" binding:"required"`
	ShippingEmail   string `json:"shipping_email"`
	Note            string `json:"note"`
}

type OrderService interface {
	CreateOrder(userID uint, req CreateOrderRequest) (*model.Order, error)
	GetUserOrders(userID uint, status model.OrderStatus, limit, offset int) ([]model.Order, int64, error)
	GetAllOrders(status model.OrderStatus, limit, offset int) ([]model.Order, int64, error)
	GetOrderByID(id uint, userID uint, isAdmin bool) (*model.Order, error)
	CancelOrder(id uint, userID uint) (*model.Order, error)
	UpdateStatus(id uint, status model.OrderStatus, trackingNumber string) (*model.Order, error)
	UpdateShippingInfo(id uint, userID uint, req UpdateShippingRequest) (*model.Order, error)
}

type orderService struct {
	db                *gorm.DB
	orderRepo         repository.OrderRepository
	couponRepo        repository.CouponRepository
	paymentMethodRepo repository.PaymentMethodRepository
	shippingRepo      repository.ShippingRepository
	couponService     CouponService
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	couponRepo repository.CouponRepository,
	paymentMethodRepo repository.PaymentMethodRepository,
	shippingRepo repository.ShippingRepository,
	couponService CouponService,
) OrderService {
	return &orderService{
		db:                db,
		orderRepo:         orderRepo,
		couponRepo:        couponRepo,
		paymentMethodRepo: paymentMethodRepo,
		shippingRepo:      shippingRepo,
		couponService:     couponService,
	}
}

// CreateOrder turns a set of cart lines into an immutable order inside a
// single transaction. Cart lines are re-read, priced and snapshotted; the
// coupon, if any, is validated against the fresh subtotal with the same
// quote logic as the preview endpoint, and its usage counter is bumped with
// a guarded update. The cart lines are deleted last. Any failure rolls the
// whole thing back.
func (s *orderService) CreateOrder(userID uint, req CreateOrderRequest) (*model.Order, error) {
	if len(req.CartItemIDs) == 0 {
		return nil, ErrEmptyCartSelection
	}

	logger.Info("Creating order", map[string]interface{}{
		"user_id":    userID,
		"cart_items": len(req.CartItemIDs),
		"coupon":     req.CouponCode,
	})

	paymentMethod, err := s.paymentMethodRepo.FindByID(req.PaymentMethodID)
	if err != nil || !paymentMethod.IsActive {
		return nil, ErrPaymentMethodNotFound
	}

	if req.ShippingPartnerID != nil {
		partner, err := s.shippingRepo.FindPartnerByID(*req.ShippingPartnerID)
		if err != nil || partner.Status != model.PartnerActive {
			return nil, ErrShippingPartnerNotFound
		}
	}

	shippingConfig, err := s.shippingRepo.GetConfig()
	if err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if tx.Error != nil {
		return nil, tx.Error
	}

	// Re-read the selected lines inside the transaction so pricing reflects
	// the current catalog, not what the client saw.
	var cartItems []model.CartItem
	if err := tx.Where("id IN ? AND user_id = ?", req.CartItemIDs, userID).
		Preload("Product").
		Preload("Variant").
		Preload("Variant.Options").
		Find(&cartItems).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if len(cartItems) != len(req.CartItemIDs) {
		tx.Rollback()
		return nil, ErrStaleCartSelection
	}

	var subtotal float64
	orderItems := make([]model.OrderItem, 0, len(cartItems))
	for i := range cartItems {
		item := &cartItems[i]

		unitPrice := item.Product.EffectivePrice()
		variantName := ""
		sku := item.Product.SKU
		thumbnail := item.Product.ImageURL
		var variantID *uint
		if item.Variant != nil {
			unitPrice = item.Variant.EffectivePrice()
			variantName = item.Variant.DisplayName()
			if item.Variant.SKU != "" {
				sku = item.Variant.SKU
			}
			if item.Variant.ImageURL != "" {
				thumbnail = item.Variant.ImageURL
			}
			variantID = &item.Variant.ID
		}

		lineSubtotal := unitPrice * float64(item.Quantity)
		subtotal += lineSubtotal

		productID := item.ProductID
		orderItems = append(orderItems, model.OrderItem{
			ProductID:    &productID,
			VariantID:    variantID,
			ProductName:  item.Product.Name,
			VariantName:  variantName,
			SKU:          sku,
			ThumbnailURL: thumbnail,
			Quantity:     item.Quantity,
			UnitPrice:    unitPrice,
			Subtotal:     lineSubtotal,
		})
	}

	// The client may quote its own fee (e.g. a negotiated carrier rate);
	// otherwise the configured flat-fee rule applies.
	shippingFee := shippingConfig.FeeFor(subtotal)
	if req.ShippingFee != nil {
		shippingFee = *req.ShippingFee
	}

	var discount float64
	var coupon *model.Coupon
	if req.CouponCode != "" {
		quote, err := s.couponService.Quote(req.CouponCode, subtotal, shippingFee)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		coupon = quote.Coupon
		discount = quote.DiscountAmount
	}

	status := model.OrderStatusPending
	if paymentMethod.Type == model.PaymentTypeCOD {
		status = model.OrderStatusProcessing
	}

	order := &model.Order{
		UserID:            userID,
		OrderNumber:       util.GenerateOrderNumber(),
		Status:            status,
		SubTotal:          subtotal,
		ShippingFee:       shippingFee,
		TaxAmount:         req.TaxAmount,
		DiscountAmount:    discount,
		TotalAmount:       subtotal - discount + shippingFee + req.TaxAmount,
		ShippingName:      req.ShippingName,
		ShippingAddress:   req.ShippingAddress,
		ShippingPhone:     req.ShippingPhone,
		ShippingEmail:     req.ShippingEmail,
		Note:              req.Note,
		PaymentMethodID:   paymentMethod.ID,
		ShippingPartnerID: req.ShippingPartnerID,
		OrderItems:        orderItems,
	}
	if coupon != nil {
		order.CouponCode = coupon.Code
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if coupon != nil {
		ok, err := s.couponRepo.IncrementUsage(tx, coupon.ID)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if !ok {
			tx.Rollback()
			return nil, ErrCouponExhausted
		}
	}

	if err := tx.Where("id IN ? AND user_id = ?", req.CartItemIDs, userID).
		Delete(&model.CartItem{}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to remove ordered cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      userID,
		"total_amount": order.TotalAmount,
	})
	return order, nil
}

func (s *orderService) GetUserOrders(userID uint, status model.OrderStatus, limit, offset int) ([]model.Order, int64, error) {
	return s.orderRepo.FindWithFilter(repository.OrderFilter{
		UserID: &userID,
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
}

func (s *orderService) GetAllOrders(status model.OrderStatus, limit, offset int) ([]model.Order, int64, error) {
	return s.orderRepo.FindWithFilter(repository.OrderFilter{
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
}

func (s *orderService) GetOrderByID(id uint, userID uint, isAdmin bool) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, ErrOrderAccessDenied
	}
	return order, nil
}

// CancelOrder lets the owner cancel while the order has not shipped.
func (s *orderService) CancelOrder(id uint, userID uint) (*model.Order, error) {
	order, err := s.GetOrderByID(id, userID, false)
	if err != nil {
		return nil, err
	}

	if order.Status != model.OrderStatusPending && order.Status != model.OrderStatusProcessing {
		return nil, ErrOrderNotCancellable
	}

	now := time.Now()
	order.Status = model.OrderStatusCancelled
	order.CancelledAt = &now
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	logger.Info("Order cancelled", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  userID,
	})
	return order, nil
}

// UpdateStatus is the admin transition. Completion and cancellation stamp
// their timestamps; moving to shipped can attach a tracking number.
func (s *orderService) UpdateStatus(id uint, status model.OrderStatus, trackingNumber string) (*model.Order, error) {
	switch status {
	case model.OrderStatusPending, model.OrderStatusProcessing, model.OrderStatusShipped,
		model.OrderStatusCompleted, model.OrderStatusCancelled, model.OrderStatusReturned:
	default:
		return nil, ErrInvalidStatusTransition
	}

	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	now := time.Now()
	order.Status = status
	switch status {
	case model.OrderStatusCancelled:
		order.CancelledAt = &now
	case model.OrderStatusCompleted:
		order.CompletedAt = &now
	}
	if trackingNumber != "" {
		order.TrackingNumber = trackingNumber
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": order.ID,
		"status":   status,
	})
	return order, nil
}

// UpdateShippingInfo lets the owner fix the shipping contact while the order
// is still pending.
func (s *orderService) UpdateShippingInfo(id uint, userID uint, req UpdateShippingRequest) (*model.Order, error) {
	order, err := s.GetOrderByID(id, userID, false)
	if err != nil {
		return nil, err
	}

	if order.Status != model.OrderStatusPending {
		return nil, ErrOrderNotEditable
	}

	order.ShippingName = req.ShippingName
	order.ShippingAddress = req.ShippingAddress
	order.ShippingPhone = req.ShippingPhone
	order.ShippingEmail = req.ShippingEmail
	order.Note = req.Note

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}
