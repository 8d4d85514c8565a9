package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/app/repository"
	"github.com/haungo2109/be-thamhienmauto/pkg/logger"
	"gorm.io/gorm"
)

var ErrPromotionNotFound = errors.New("promotion not found")

type PromotionService interface {
	Create(promotion *model.Promotion, productIDs []uint) error
	GetAll() ([]model.Promotion, error)
	GetByID(id uint) (*model.Promotion, error)
	Update(promotion *model.Promotion, productIDs []uint) error
	Delete(id uint) error
	DeactivateExpired() (int, error)
}

type promotionService struct {
	db            *gorm.DB
	promotionRepo repository.PromotionRepository
}

func NewPromotionService(db *gorm.DB, promotionRepo repository.PromotionRepository) PromotionService {
	return &promotionService{db: db, promotionRepo: promotionRepo}
}

// Create stores the promotion and stamps its pricing onto the targeted
// products in one transaction.
func (s *promotionService) Create(promotion *model.Promotion, productIDs []uint) error {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Create(promotion).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create promotion", err, map[string]interface{}{
			"name": promotion.Name,
		})
		return err
	}

	if err := applyPromotionPricing(tx, promotion, productIDs); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	logger.Info("Promotion created", map[string]interface{}{
		"promotion_id": promotion.ID,
		"products":     len(productIDs),
	})
	return nil
}

func (s *promotionService) GetAll() ([]model.Promotion, error) {
	return s.promotionRepo.FindAll()
}

func (s *promotionService) GetByID(id uint) (*model.Promotion, error) {
	promotion, err := s.promotionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	return promotion, nil
}

// Update reconciles product pricing with the edited promotion: every product
// currently carrying the promotion is reset first, then the new target set is
// stamped. Products dropped from the target list therefore return to their
// base price, all within one transaction.
func (s *promotionService) Update(promotion *model.Promotion, productIDs []uint) error {
	if _, err := s.GetByID(promotion.ID); err != nil {
		return err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if tx.Error != nil {
		return tx.Error
	}

	if err := resetPromotionPricing(tx, promotion.ID); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Save(promotion).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to update promotion", err, map[string]interface{}{
			"promotion_id": promotion.ID,
		})
		return err
	}

	if err := applyPromotionPricing(tx, promotion, productIDs); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	logger.Info("Promotion updated", map[string]interface{}{
		"promotion_id": promotion.ID,
		"products":     len(productIDs),
	})
	return nil
}

// Delete resets pricing on every product carrying the promotion, then removes
// the promotion row. No discount survives its promotion.
func (s *promotionService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if tx.Error != nil {
		return tx.Error
	}

	if err := resetPromotionPricing(tx, id); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&model.Promotion{}, id).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to delete promotion", err, map[string]interface{}{
			"promotion_id": id,
		})
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	logger.Info("Promotion deleted and product prices reset", map[string]interface{}{
		"promotion_id": id,
	})
	return nil
}

// DeactivateExpired finds active promotions past their end date, resets their
// product pricing and flips them inactive. The scheduler calls this hourly.
func (s *promotionService) DeactivateExpired() (int, error) {
	expired, err := s.promotionRepo.FindExpiredActive(time.Now())
	if err != nil {
		logger.Error("Failed to load expired promotions", err)
		return 0, err
	}

	for _, promotion := range expired {
		tx := s.db.Begin()
		if tx.Error != nil {
			return 0, tx.Error
		}

		if err := resetPromotionPricing(tx, promotion.ID); err != nil {
			tx.Rollback()
			return 0, err
		}
		if err := tx.Model(&model.Promotion{}).Where("id = ?", promotion.ID).
			Update("is_active", false).Error; err != nil {
			tx.Rollback()
			return 0, err
		}
		if err := tx.Commit().Error; err != nil {
			return 0, err
		}

		logger.Info("Expired promotion deactivated", map[string]interface{}{
			"promotion_id": promotion.ID,
			"end_date":     promotion.EndDate,
		})
	}

	return len(expired), nil
}

// resetPromotionPricing returns every product carrying the promotion, and
// its variants, to base pricing. Variants reset first because the product
// reset clears the promotion_id used to find them.
func resetPromotionPricing(tx *gorm.DB, promotionID uint) error {
	targets := tx.Model(&model.Product{}).Select("id").Where("promotion_id = ?", promotionID)

	if err := tx.Model(&model.ProductVariant{}).
		Where("product_id IN (?)", targets).
		Update("sale_price", gorm.Expr("price")).Error; err != nil {
		logger.Error("Failed to reset variant prices for promotion", err, map[string]interface{}{
			"promotion_id": promotionID,
		})
		return err
	}

	if err := tx.Model(&model.Product{}).
		Where("promotion_id = ?", promotionID).
		Updates(map[string]interface{}{
			"sale_price":   gorm.Expr("price"),
			"promotion_id": nil,
		}).Error; err != nil {
		logger.Error("Failed to reset product prices for promotion", err, map[string]interface{}{
			"promotion_id": promotionID,
		})
		return err
	}

	return nil
}

// applyPromotionPricing stamps the promotion onto the targeted products and
// recomputes their sale prices, and their variants', with one bulk update per
// table. Inactive promotions only tag the products; pricing is left alone
// until activation.
func applyPromotionPricing(tx *gorm.DB, promotion *model.Promotion, productIDs []uint) error {
	if len(productIDs) == 0 {
		return nil
	}

	if !promotion.IsActive {
		return tx.Model(&model.Product{}).
			Where("id IN ?", productIDs).
			Update("promotion_id", promotion.ID).Error
	}

	expr, err := salePriceExpr(promotion.DiscountType, promotion.DiscountValue)
	if err != nil {
		return err
	}

	if err := tx.Model(&model.Product{}).
		Where("id IN ?", productIDs).
		Updates(map[string]interface{}{
			"sale_price":   expr,
			"promotion_id": promotion.ID,
		}).Error; err != nil {
		logger.Error("Failed to apply promotion pricing to products", err, map[string]interface{}{
			"promotion_id": promotion.ID,
		})
		return err
	}

	if err := tx.Model(&model.ProductVariant{}).
		Where("product_id IN ?", productIDs).
		Update("sale_price", expr).Error; err != nil {
		logger.Error("Failed to apply promotion pricing to variants", err, map[string]interface{}{
			"promotion_id": promotion.ID,
		})
		return err
	}

	return nil
}

// salePriceExpr builds the discounted-price SQL expression, clamped at zero.
// Discount values are bound as parameters, never concatenated.
func salePriceExpr(discountType model.DiscountType, value float64) (interface{}, error) {
	switch discountType {
	case model.DiscountPercentage:
		return gorm.Expr(
			"CASE WHEN price * (1 - ? / 100.0) < 0 THEN 0 ELSE price * (1 - ? / 100.0) END",
			value, value,
		), nil
	case model.DiscountFixed:
		return gorm.Expr(
			"CASE WHEN price - ? < 0 THEN 0 ELSE price - ? END",
			value, value,
		), nil
	default:
		return nil, fmt.Errorf("unsupported discount type: %s", discountType)
	}
}
