package repository

import (
	"time"

	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/pkg/logger"
	"gorm.io/gorm"
)

type PromotionRepository interface {
	Create(promotion *model.Promotion) error
	FindAll() ([]model.Promotion, error)
	FindByID(id uint) (*model.Promotion, error)
	Update(promotion *model.Promotion) error
	Delete(id uint) error
	FindExpiredActive(now time.Time) ([]model.Promotion, error)
}

type promotionRepository struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) PromotionRepository {
	return &promotionRepository{db: db}
}

func (r *promotionRepository) Create(promotion *model.Promotion) error {
	logger.Debug("Creating promotion in database", map[string]interface{}{
		"name": promotion.Name,
		"type": promotion.Type,
	})

	if err := r.db.Create(promotion).Error; err != nil {
		logger.Error("Failed to create promotion in database", err, map[string]interface{}{
			"name": promotion.Name,
		})
		return err
	}
	return nil
}

func (r *promotionRepository) FindAll() ([]model.Promotion, error) {
	var promotions []model.Promotion
	if err := r.db.Preload("Products").Order("created_at DESC").Find(&promotions).Error; err != nil {
		logger.Error("Failed to find promotions in database", err)
		return nil, err
	}
	return promotions, nil
}

func (r *promotionRepository) FindByID(id uint) (*model.Promotion, error) {
	var promotion model.Promotion
	if err := r.db.Preload("Products").First(&promotion, id).Error; err != nil {
		return nil, err
	}
	return &promotion, nil
}

func (r *promotionRepository) Update(promotion *model.Promotion) error {
	if err := r.db.Save(promotion).Error; err != nil {
		logger.Error("Failed to update promotion in database", err, map[string]interface{}{
			"promotion_id": promotion.ID,
		})
		return err
	}
	return nil
}

func (r *promotionRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Promotion{}, id).Error; err != nil {
		logger.Error("Failed to delete promotion from database", err, map[string]interface{}{
			"promotion_id": id,
		})
		return err
	}
	return nil
}

// FindExpiredActive returns active promotions whose end date has passed.
// The scheduler deactivates these and resets their product prices.
func (r *promotionRepository) FindExpiredActive(now time.Time) ([]model.Promotion, error) {
	var promotions []model.Promotion
	if err := r.db.Where("is_active = ? AND end_date < ?", true, now).Find(&promotions).Error; err != nil {
		return nil, err
	}
	return promotions, nil
}
