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

type VariantController struct {
	variantService service.VariantService
}

func NewVariantController(variantService service.VariantService) *VariantController {
	return &VariantController{
		variantService: variantService,
	}
}

type VariantOptionInput struct {
	AttributeName  string `json:"attribute_name" binding:"required"`
	AttributeValue string `json:"attribute_value" binding:"required"`
	AffectsPrice   bool   `json:"affects_price"`
}

type VariantRequest struct {
	SKU           string               `json:"sku"`
	Price         float64              `json:"price" binding:"required,min=0"`
	SalePrice     float64              `json:"sale_price" binding:"min=0"`
	StockQuantity int                  `json:"stock_quantity"`
	ImageURL      string               `json:"image_url"`
	Options       []VariantOptionInput `json:"options"`
}

// GetVariants lists all variants of a product
// GET /api/v1/products/:id/variants
func (ctrl *VariantController) GetVariants(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	variants, err := ctrl.variantService.GetByProductID(productID)
	if err != nil {
		apperr.InternalError(c, "Failed to fetch variants")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"variants": variants,
		"count":    len(variants),
	})
}

// CreateVariant adds a variant to a product (admin)
// POST /api/v1/admin/products/:id/variants
func (ctrl *VariantController) CreateVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}

	variant := &model.ProductVariant{
		ProductID:     productID,
		SKU:           req.SKU,
		Price:         req.Price,
		SalePrice:     req.SalePrice,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
		Options:       variantOptions(req.Options),
	}
	if variant.SalePrice == 0 {
		variant.SalePrice = variant.Price
	}

	if err := ctrl.variantService.Create(variant); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperr.NotFound(c, apperr.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to create variant", err, map[string]interface{}{
			"product_id": productID,
		})
		apperr.ParseAndRespond(c, err, "variant create")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"variant": variant})
}

// UpdateVariant updates a variant (admin)
// PUT /api/v1/admin/variants/:id
func (ctrl *VariantController) UpdateVariant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	variant, err := ctrl.variantService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrVariantNotFound) {
			apperr.NotFound(c, apperr.VariantNotFound, "Product variant not found")
			return
		}
		apperr.InternalError(c, "Failed to fetch variant")
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}

	variant.SKU = req.SKU
	variant.Price = req.Price
	variant.SalePrice = req.SalePrice
	variant.StockQuantity = req.StockQuantity
	variant.ImageURL = req.ImageURL
	if variant.SalePrice == 0 {
		variant.SalePrice = variant.Price
	}
	variant.Options = nil

	if err := ctrl.variantService.Update(variant); err != nil {
		apperr.ParseAndRespond(c, err, "variant update")
		return
	}

	if req.Options != nil {
		if err := ctrl.variantService.UpdateOptions(variant.ID, variantOptions(req.Options)); err != nil {
			apperr.ParseAndRespond(c, err, "variant update")
			return
		}
	}

	updated, err := ctrl.variantService.GetByID(variant.ID)
	if err != nil {
		apperr.InternalError(c, "Failed to fetch variant")
		return
	}

	c.JSON(http.StatusOK, gin.H{"variant": updated})
}

// DeleteVariant removes a variant (admin)
// DELETE /api/v1/admin/variants/:id
func (ctrl *VariantController) DeleteVariant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.variantService.Delete(id); err != nil {
		if errors.Is(err, service.ErrVariantNotFound) {
			apperr.NotFound(c, apperr.VariantNotFound, "Product variant not found")
			return
		}
		apperr.InternalError(c, "Failed to delete variant")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Variant deleted"})
}

type SyncVariantsRequest struct {
	ProductID uint             `json:"product_id" binding:"required"`
	Variants  []VariantRequest `json:"variants" binding:"required"`
}

// SyncVariants replaces a product's whole variant set (admin)
// POST /api/v1/admin/product-variants/sync
func (ctrl *VariantController) SyncVariants(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SyncVariantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}

	variants := make([]model.ProductVariant, 0, len(req.Variants))
	for _, v := range req.Variants {
		salePrice := v.SalePrice
		if salePrice == 0 {
			salePrice = v.Price
		}
		variants = append(variants, model.ProductVariant{
			SKU:           v.SKU,
			Price:         v.Price,
			SalePrice:     salePrice,
			StockQuantity: v.StockQuantity,
			ImageURL:      v.ImageURL,
			Options:       variantOptions(v.Options),
		})
	}

	synced, err := ctrl.variantService.SyncVariants(req.ProductID, variants)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperr.NotFound(c, apperr.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to sync variants", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		apperr.ParseAndRespond(c, err, "variant sync")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"variants": synced,
		"count":    len(synced),
	})
}

func variantOptions(inputs []VariantOptionInput) []model.VariantOption {
	options := make([]model.VariantOption, 0, len(inputs))
	for _, in := range inputs {
		options = append(options, model.VariantOption{
			AttributeName:  in.AttributeName,
			AttributeValue: in.AttributeValue,
			AffectsPrice:   in.AffectsPrice,
		})
	}
	return options
}
