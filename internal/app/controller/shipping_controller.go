package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/app/service"
	apperr "github.com/haungo2109/be-thamhienmauto/internal/errors"
)

type ShippingController struct {
	shippingService service.ShippingService
}

func NewShippingController(shippingService service.ShippingService) *ShippingController {
	return &ShippingController{
		shippingService: shippingService,
	}
}

type ShippingPartnerRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Status      model.PartnerStatus `json:"status"`
}

type ShippingConfigRequest struct {
	BaseFee               float64 `json:"base_fee" binding:"min=0"`
	FreeShippingThreshold float64 `json:"free_shipping_threshold" binding:"min=0"`
}

// GetPartners lists shipping partners; buyers see only active ones
// GET /api/v1/shipping/partners
func (ctrl *ShippingController) GetPartners(c *gin.Context) {
	all := c.Query("all") == "true"
	partners, err := ctrl.shippingService.GetPartners(!all)
	if err != nil {
		apperr.InternalError(c, "Failed to fetch shipping partners")
		return
	}

	c.JSON(http.StatusOK, gin.H{"partners": partners})
}

// CreatePartner adds a shipping partner (admin)
// POST /api/v1/admin/shipping/partners
func (ctrl *ShippingController) CreatePartner(c *gin.Context) {
	var req ShippingPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}

	partner := &model.ShippingPartner{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	}
	if err := ctrl.shippingService.CreatePartner(partner); err != nil {
		apperr.ParseAndRespond(c, err, "shipping partner create")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"partner": partner})
}

// UpdatePartner edits a shipping partner (admin)
// PUT /api/v1/admin/shipping/partners/:id
func (ctrl *ShippingController) UpdatePartner(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	partner, err := ctrl.shippingService.GetPartnerByID(id)
	if err != nil {
		if errors.Is(err, service.ErrPartnerNotFound) {
			apperr.NotFound(c, apperr.OrderShippingNotFound, "Shipping partner not found")
			return
		}
		apperr.InternalError(c, "Failed to fetch shipping partner")
		return
	}

	var req ShippingPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}

	partner.Name = req.Name
	partner.Description = req.Description
	if req.Status != "" {
		partner.Status = req.Status
	}

	if err := ctrl.shippingService.UpdatePartner(partner); err != nil {
		apperr.ParseAndRespond(c, err, "shipping partner update")
		return
	}

	c.JSON(http.StatusOK, gin.H{"partner": partner})
}

// DeletePartner removes a shipping partner (admin)
// DELETE /api/v1/admin/shipping/partners/:id
func (ctrl *ShippingController) DeletePartner(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.shippingService.DeletePartner(id); err != nil {
		if errors.Is(err, service.ErrPartnerNotFound) {
			apperr.NotFound(c, apperr.OrderShippingNotFound, "Shipping partner not found")
			return
		}
		apperr.ParseAndRespond(c, err, "shipping partner delete")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Shipping partner deleted"})
}

// GetConfig returns the current shipping fee rule
// GET /api/v1/shipping/config
func (ctrl *ShippingController) GetConfig(c *gin.Context) {
	config, err := ctrl.shippingService.GetConfig()
	if err != nil {
		apperr.InternalError(c, "Failed to fetch shipping config")
		return
	}

	c.JSON(http.StatusOK, gin.H{"config": config})
}

// UpdateConfig changes the shipping fee rule (admin)
// PUT /api/v1/admin/shipping/config
func (ctrl *ShippingController) UpdateConfig(c *gin.Context) {
	var req ShippingConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}

	config, err := ctrl.shippingService.UpdateConfig(req.BaseFee, req.FreeShippingThreshold)
	if err != nil {
		apperr.InternalError(c, "Failed to update shipping config")
		return
	}

	c.JSON(http.StatusOK, gin.H{"config": config})
}
