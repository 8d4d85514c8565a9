package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/haungo2109/be-thamhienmauto/internal/app/service"
	apperr "github.com/haungo2109/be-thamhienmauto/internal/errors"
	"github.com/haungo2109/be-thamhienmauto/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddCartItemRequest struct {
	ProductID        uint  `json:"product_id" binding:"required"`
	ProductVariantID *uint `json:"product_variant_id"`
	Quantity         int   `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// GetCart returns the user's cart with current prices
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperr.Unauthorized(c, "User not authenticated")
		return
	}

	summary, err := ctrl.cartService.GetCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperr.InternalError(c, "Failed to fetch cart")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// AddItem adds a product or variant to the cart
// POST /api/v1/cart/items
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperr.Unauthorized(c, "User not authenticated")
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}

	item, err := ctrl.cartService.AddItem(userID, req.ProductID, req.ProductVariantID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperr.NotFound(c, apperr.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrVariantNotFound):
			apperr.NotFound(c, apperr.VariantNotFound, "Product variant not found")
		case errors.Is(err, service.ErrVariantMismatch):
			apperr.BadRequest(c, apperr.VariantWrongProduct, "Variant does not belong to the product")
		default:
			log.Error("Failed to add cart item", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperr.InternalError(c, "Failed to add item to cart")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// UpdateItem changes a cart line's quantity
// PUT /api/v1/cart/items/:id
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperr.Unauthorized(c, "User not authenticated")
		return
	}

	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}

	item, err := ctrl.cartService.UpdateQuantity(userID, itemID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// RemoveItem deletes one cart line
// DELETE /api/v1/cart/items/:id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperr.Unauthorized(c, "User not authenticated")
		return
	}

	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.cartService.RemoveItem(userID, itemID); err != nil {
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}

// ClearCart empties the user's cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperr.Unauthorized(c, "User not authenticated")
		return
	}

	if err := ctrl.cartService.Clear(userID); err != nil {
		apperr.InternalError(c, "Failed to clear cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCartItemNotFound):
		apperr.NotFound(c, apperr.CartItemNotFound, "Cart item not found")
	case errors.Is(err, service.ErrCartAccessDenied):
		apperr.Forbidden(c, "Cart item belongs to another user")
	case errors.Is(err, service.ErrInvalidQuantity):
		apperr.BadRequest(c, apperr.ValidationInvalidRange, "Quantity must be at least 1")
	default:
		apperr.InternalError(c, "Failed to update cart")
	}
}
