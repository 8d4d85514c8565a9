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

type PromotionController struct {
	promotionService service.PromotionService
}

func NewPromotionController(promotionService service.PromotionService) *PromotionController {
	return &PromotionController{
		promotionService: promotionService,
	}
}

type PromotionRequest struct {
	Name          string              `json:"name" binding:"required"`
	Type          model.PromotionType `json:"type" binding:"required"`
	StartDate     time.Time           `json:"start_date" binding:"required"`
	EndDate       time.Time           `json:"end_date" binding:"required"`
	IsActive      *bool               `json:"is_active"`
	DiscountType  model.DiscountType  `json:"discount_type" binding:"required"`
	DiscountValue float64             `json:"discount_value" binding:"required,min=0"`
	Description   string              `json:"description"`
	ProductIDs    []uint              `json:"product_ids"`
}

// GetPromotions lists all promotions with their products
// GET /api/v1/promotions
func (ctrl *PromotionController) GetPromotions(c *gin.Context) {
	promotions, err := ctrl.promotionService.GetAll()
	if err != nil {
		apperr.InternalError(c, "Failed to fetch promotions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"promotions": promotions,
		"count":      len(promotions),
	})
}

// GetPromotionByID returns one promotion
// GET /api/v1/promotions/:id
func (ctrl *PromotionController) GetPromotionByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	promotion, err := ctrl.promotionService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrPromotionNotFound) {
			apperr.NotFound(c, apperr.PromotionNotFound, "Promotion not found")
			return
		}
		apperr.InternalError(c, "Failed to fetch promotion")
		return
	}

	c.JSON(http.StatusOK, gin.H{"promotion": promotion})
}

// CreatePromotion creates a promotion and stamps its products (admin)
// POST /api/v1/admin/promotions
func (ctrl *PromotionController) CreatePromotion(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}
	if !req.EndDate.After(req.StartDate) {
		apperr.BadRequest(c, apperr.PromotionInvalidWindow, "End date must be after start date")
		return
	}

	promotion := &model.Promotion{
		Name:          req.Name,
		Type:          req.Type,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		IsActive:      true,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		Description:   req.Description,
	}
	if req.IsActive != nil {
		promotion.IsActive = *req.IsActive
	}

	if err := ctrl.promotionService.Create(promotion, req.ProductIDs); err != nil {
		log.Error("Failed to create promotion", err, map[string]interface{}{
			"name": req.Name,
		})
		apperr.ParseAndRespond(c, err, "promotion create")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"promotion": promotion})
}

// UpdatePromotion edits a promotion and reconciles product pricing (admin)
// PUT /api/v1/admin/promotions/:id
func (ctrl *PromotionController) UpdatePromotion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, err.Error())
		return
	}
	if !req.EndDate.After(req.StartDate) {
		apperr.BadRequest(c, apperr.PromotionInvalidWindow, "End date must be after start date")
		return
	}

	promotion := &model.Promotion{
		ID:            id,
		Name:          req.Name,
		Type:          req.Type,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		IsActive:      true,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		Description:   req.Description,
	}
	if req.IsActive != nil {
		promotion.IsActive = *req.IsActive
	}

	if err := ctrl.promotionService.Update(promotion, req.ProductIDs); err != nil {
		if errors.Is(err, service.ErrPromotionNotFound) {
			apperr.NotFound(c, apperr.PromotionNotFound, "Promotion not found")
			return
		}
		apperr.ParseAndRespond(c, err, "promotion update")
		return
	}

	c.JSON(http.StatusOK, gin.H{"promotion": promotion})
}

// DeletePromotion removes a promotion and resets its products (admin)
// DELETE /api/v1/admin/promotions/:id
func (ctrl *PromotionController) DeletePromotion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.promotionService.Delete(id); err != nil {
		if errors.Is(err, service.ErrPromotionNotFound) {
			apperr.NotFound(c, apperr.PromotionNotFound, "Promotion not found")
			return
		}
		apperr.InternalError(c, "Failed to delete promotion")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Promotion deleted and prices reset"})
}
