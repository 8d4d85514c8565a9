package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/app/service"
	apperr "github.com/haungo2109/be-thamhienmauto/internal/errors"
)

type PaymentMethodController struct {
	paymentMethodService service.PaymentMethodService
}

func NewPaymentMethodController(paymentMethodService service.PaymentMethodService) *PaymentMethodController {
	return &PaymentMethodController{
		paymentMethodService: paymentMethodService,
	}
}

type PaymentMethodRequest struct {
	ID          string `json:"id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type"`
	IsActive    *bool  `json:"is_active"`
	Description string `json:"description"`
}

// GetPaymentMethods lists active payment methods for checkout
// GET /api/v1/payment-methods
func (ctrl *PaymentMethodController) GetPaymentMethods(c *gin.Context) {
	all := c.Query("all") == "true"
	methods, err := ctrl.paymentMethodService.GetAll(!all)
	if err != nil {
		apperr.InternalError(c, "Failed to fetch payment methods")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment_methods": methods})
}

// CreatePaymentMethod adds a payment method (admin)
// POST /api/v1/admin/payment-methods
func (ctrl *PaymentMethodController) CreatePaymentMethod(c *gin.Context) {
	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}

	method := &model.PaymentMethod{
		ID:          req.ID,
		Name:        req.Name,
		Type:        req.Type,
		IsActive:    true,
		Description: req.Description,
	}
	if req.IsActive != nil {
		method.IsActive = *req.IsActive
	}

	if err := ctrl.paymentMethodService.Create(method); err != nil {
		apperr.ParseAndRespond(c, err, "payment method create")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment_method": method})
}

// UpdatePaymentMethod edits a payment method (admin)
// PUT /api/v1/admin/payment-methods/:id
func (ctrl *PaymentMethodController) UpdatePaymentMethod(c *gin.Context) {
	id := c.Param("id")

	method, err := ctrl.paymentMethodService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrPaymentMethodNotFound) {
			apperr.NotFound(c, apperr.OrderPaymentNotFound, "Payment method not found")
			return
		}
		apperr.InternalError(c, "Failed to fetch payment method")
		return
	}

	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}

	method.Name = req.Name
	method.Type = req.Type
	method.Description = req.Description
	if req.IsActive != nil {
		method.IsActive = *req.IsActive
	}

	if err := ctrl.paymentMethodService.Update(method); err != nil {
		apperr.ParseAndRespond(c, err, "payment method update")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment_method": method})
}

// DeletePaymentMethod removes a payment method (admin)
// DELETE /api/v1/admin/payment-methods/:id
func (ctrl *PaymentMethodController) DeletePaymentMethod(c *gin.Context) {
	id := c.Param("id")

	if err := ctrl.paymentMethodService.Delete(id); err != nil {
		if errors.Is(err, service.ErrPaymentMethodNotFound) {
			apperr.NotFound(c, apperr.OrderPaymentNotFound, "Payment method not found")
			return
		}
		apperr.InternalError(c, "Failed to delete payment method")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment method deleted"})
}
