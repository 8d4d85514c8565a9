package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/app/repository"
	"github.com/haungo2109/be-thamhienmauto/internal/app/service"
	apperr "github.com/haungo2109/be-thamhienmauto/internal/errors"
	"github.com/haungo2109/be-thamhienmauto/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type ProductRequest struct {
	Name          string            `json:"name" binding:"required"`
	Slug          string            `json:"slug"`
	Description   string            `json:"description"`
	SKU           string            `json:"sku"`
	Price         float64           `json:"price" binding:"min=0"`
	SalePrice     float64           `json:"sale_price" binding:"min=0"`
	StockQuantity int               `json:"stock_quantity"`
	StockStatus   model.StockStatus `json:"stock_status"`
	ImageURL      string            `json:"image_url"`
}

// GetProducts returns the product listing with optional filters
// GET /api/v1/products
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ProductFilter{
		Search:      c.Query("search"),
		InStockOnly: c.Query("in_stock") == "true",
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		filter.Offset = offset
	}
	if promoStr := c.Query("promotion_id"); promoStr != "" {
		if promoID, err := strconv.ParseUint(promoStr, 10, 32); err == nil {
			id := uint(promoID)
			filter.PromotionID = &id
		}
	}

	products, err := ctrl.productService.GetWithFilter(filter)
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		apperr.InternalError(c, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProductByID returns one product with variants and promotion
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperr.NotFound(c, apperr.ProductNotFound, "Product not found")
			return
		}
		apperr.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// GetProductBySlug returns one product by its slug
// GET /api/v1/products/slug/:slug
func (ctrl *ProductController) GetProductBySlug(c *gin.Context) {
	product, err := ctrl.productService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperr.NotFound(c, apperr.ProductNotFound, "Product not found")
			return
		}
		apperr.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// CreateProduct creates a product (admin)
// POST /api/v1/admin/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}

	product := &model.Product{
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		SKU:           req.SKU,
		Price:         req.Price,
		SalePrice:     req.SalePrice,
		StockQuantity: req.StockQuantity,
		StockStatus:   req.StockStatus,
		ImageURL:      req.ImageURL,
	}
	if err := ctrl.productService.Create(product); err != nil {
		log.Error("Failed to create product", err, map[string]interface{}{
			"name": req.Name,
		})
		apperr.ParseAndRespond(c, err, "product create")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct updates a product (admin)
// PUT /api/v1/admin/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperr.NotFound(c, apperr.ProductNotFound, "Product not found")
			return
		}
		apperr.InternalError(c, "Failed to fetch product")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}

	product.Name = req.Name
	product.Slug = req.Slug
	product.Description = req.Description
	product.SKU = req.SKU
	product.Price = req.Price
	product.SalePrice = req.SalePrice
	product.StockQuantity = req.StockQuantity
	if req.StockStatus != "" {
		product.StockStatus = req.StockStatus
	}
	product.ImageURL = req.ImageURL

	if err := ctrl.productService.Update(product); err != nil {
		apperr.ParseAndRespond(c, err, "product update")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct deletes a product (admin)
// DELETE /api/v1/admin/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.Delete(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperr.NotFound(c, apperr.ProductNotFound, "Product not found")
			return
		}
		apperr.InternalError(c, "Failed to delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// parseIDParam reads a numeric path parameter, responding 400 on garbage.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidID, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}
