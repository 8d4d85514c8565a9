package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/app/service"
	apperr "github.com/haungo2109/be-thamhienmauto/internal/errors"
	"github.com/haungo2109/be-thamhienmauto/internal/middleware"
)

type AddressController struct {
	addressService service.AddressService
}

func NewAddressController(addressService service.AddressService) *AddressController {
	return &AddressController{
		addressService: addressService,
	}
}

type AddressRequest struct {
	ReceiverName  string            `json:"receiver_name" binding:"required"`
	ReceiverPhone string            `json:"receiver_phone" binding:"required"`
	Address       string            `json:"address" binding:"required"`
	AddressType   model.AddressType `json:"address_type"`
	IsDefault     bool              `json:"is_default"`
}

// GetAddresses lists the user's address book
// GET /api/v1/addresses
func (ctrl *AddressController) GetAddresses(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperr.Unauthorized(c, "User not authenticated")
		return
	}

	addresses, err := ctrl.addressService.GetByUserID(userID)
	if err != nil {
		apperr.InternalError(c, "Failed to fetch addresses")
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

// CreateAddress adds an address to the user's book
// POST /api/v1/addresses
func (ctrl *AddressController) CreateAddress(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperr.Unauthorized(c, "User not authenticated")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}

	address := &model.UserAddress{
		UserID:        userID,
		ReceiverName:  req.ReceiverName,
		ReceiverPhone: req.ReceiverPhone,
		Address:       req.Address,
		AddressType:   req.AddressType,
		IsDefault:     req.IsDefault,
	}
	if address.AddressType == "" {
		address.AddressType = model.AddressTypeHome
	}

	if err := ctrl.addressService.Create(address); err != nil {
		apperr.InternalError(c, "Failed to create address")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"address": address})
}

// UpdateAddress edits an address
// PUT /api/v1/addresses/:id
func (ctrl *AddressController) UpdateAddress(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperr.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}

	address := &model.UserAddress{
		ID:            id,
		ReceiverName:  req.ReceiverName,
		ReceiverPhone: req.ReceiverPhone,
		Address:       req.Address,
		AddressType:   req.AddressType,
		IsDefault:     req.IsDefault,
	}
	if address.AddressType == "" {
		address.AddressType = model.AddressTypeHome
	}

	if err := ctrl.addressService.Update(userID, address); err != nil {
		respondAddressError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address})
}

// DeleteAddress removes an address
// DELETE /api/v1/addresses/:id
func (ctrl *AddressController) DeleteAddress(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperr.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.addressService.Delete(userID, id); err != nil {
		respondAddressError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}

// SetDefaultAddress promotes an address to default
// POST /api/v1/addresses/:id/default
func (ctrl *AddressController) SetDefaultAddress(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperr.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	address, err := ctrl.addressService.SetDefault(userID, id)
	if err != nil {
		respondAddressError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address})
}

func respondAddressError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAddressNotFound):
		apperr.NotFound(c, apperr.AddressNotFound, "Address not found")
	case errors.Is(err, service.ErrAddressAccessDenied):
		apperr.Forbidden(c, "Address belongs to another user")
	default:
		apperr.InternalError(c, "Failed to process address")
	}
}
