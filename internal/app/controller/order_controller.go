package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/app/service"
	apperr "github.com/haungo2109/be-thamhienmauto/internal/errors"
	"github.com/haungo2109/be-thamhienmauto/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type UpdateOrderStatusRequest struct {
	Status         model.OrderStatus `json:"status" binding:"required"`
	TrackingNumber string            `json:"tracking_number"`
}

// CreateOrder places an order from selected cart lines
// POST /api/v1/orders
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperr.Unauthorized(c, "User not authenticated")
		return
	}

	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}

	order, err := ctrl.orderService.CreateOrder(userID, req)
	if err != nil {
		if respondCouponError(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrEmptyCartSelection):
			apperr.BadRequest(c, apperr.ValidationRequired, "No cart items selected")
		case errors.Is(err, service.ErrStaleCartSelection):
			apperr.BadRequest(c, apperr.CartSelectionStale, "One or more selected cart items no longer exist")
		case errors.Is(err, service.ErrPaymentMethodNotFound):
			apperr.BadRequest(c, apperr.OrderPaymentNotFound, "Payment method not found or inactive")
		case errors.Is(err, service.ErrShippingPartnerNotFound):
			apperr.BadRequest(c, apperr.OrderShippingNotFound, "Shipping partner not found or inactive")
		default:
			log.Error("Failed to create order", err, map[string]interface{}{
				"user_id": userID,
			})
			apperr.InternalError(c, "Failed to create order")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// GetOrders returns the user's orders
// GET /api/v1/orders
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperr.Unauthorized(c, "User not authenticated")
		return
	}

	status, limit, offset := orderListParams(c)
	orders, total, err := ctrl.orderService.GetUserOrders(userID, status, limit, offset)
	if err != nil {
		apperr.InternalError(c, "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
	})
}

// GetOrderByID returns one order; owners see their own, admins see all
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperr.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	role, _ := middleware.GetUserRole(c)
	order, err := ctrl.orderService.GetOrderByID(id, userID, role == model.RoleAdmin)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelOrder cancels the user's own pending or processing order
// POST /api/v1/orders/:id/cancel
func (ctrl *OrderController) CancelOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperr.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.CancelOrder(id, userID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotCancellable) {
			apperr.BadRequest(c, apperr.OrderInvalidStatus, "Order can no longer be cancelled")
			return
		}
		respondOrderError(c, err)
		return
	}

	log.Info("Order cancelled by user", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  userID,
	})
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateShippingInfo edits shipping contact on a pending order
// PUT /api/v1/orders/:id/shipping
func (ctrl *OrderController) UpdateShippingInfo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperr.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}

	order, err := ctrl.orderService.UpdateShippingInfo(id, userID, req)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotEditable) {
			apperr.BadRequest(c, apperr.OrderNotEditable, "Shipping info can only be edited while the order is pending")
			return
		}
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// GetAllOrders lists orders across all users (admin)
// GET /api/v1/admin/orders
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	status, limit, offset := orderListParams(c)
	orders, total, err := ctrl.orderService.GetAllOrders(status, limit, offset)
	if err != nil {
		apperr.InternalError(c, "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
	})
}

// UpdateStatus transitions an order's status (admin)
// PUT /api/v1/admin/orders/:id/status
func (ctrl *OrderController) UpdateStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}

	order, err := ctrl.orderService.UpdateStatus(id, req.Status, req.TrackingNumber)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatusTransition) {
			apperr.BadRequest(c, apperr.OrderInvalidStatus, "Invalid order status")
			return
		}
		respondOrderError(c, err)
		return
	}

	log.Info("Order status updated by admin", map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
	})
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		apperr.NotFound(c, apperr.OrderNotFound, "Order not found")
	case errors.Is(err, service.ErrOrderAccessDenied):
		apperr.Forbidden(c, "Order belongs to another user")
	default:
		apperr.InternalError(c, "Failed to process order")
	}
}

func orderListParams(c *gin.Context) (model.OrderStatus, int, int) {
	status := model.OrderStatus(c.Query("status"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return status, limit, offset
}
