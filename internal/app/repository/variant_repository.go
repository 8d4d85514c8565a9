package repository

import (
	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/pkg/logger"
	"gorm.io/gorm"
)

type VariantRepository interface {
	Create(variant *model.ProductVariant) error
	FindByID(id uint) (*model.ProductVariant, error)
	FindByProductID(productID uint) ([]model.ProductVariant, error)
	FindCheapestByProductID(productID uint) (*model.ProductVariant, error)
	Update(variant *model.ProductVariant) error
	Delete(id uint) error
	ReplaceOptions(variantID uint, options []model.VariantOption) error
	ReplaceForProduct(productID uint, variants []model.ProductVariant) error
}

type variantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) VariantRepository {
	return &variantRepository{db: db}
}

func (r *variantRepository) Create(variant *model.ProductVariant) error {
	logger.Debug("Creating product variant in database", map[string]interface{}{
		"product_id": variant.ProductID,
		"sku":        variant.SKU,
	})

	if err := r.db.Create(variant).Error; err != nil {
		logger.Error("Failed to create product variant in database", err, map[string]interface{}{
			"product_id": variant.ProductID,
			"sku":        variant.SKU,
		})
		return err
	}
	return nil
}

func (r *variantRepository) FindByID(id uint) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	if err := r.db.Preload("Options").First(&variant, id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *variantRepository) FindByProductID(productID uint) ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	if err := r.db.Where("product_id = ?", productID).
		Preload("Options").
		Order("price ASC").
		Find(&variants).Error; err != nil {
		logger.Error("Failed to find variants by product ID in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return variants, nil
}

// FindCheapestByProductID returns the minimum-priced variant of a product,
// or gorm.ErrRecordNotFound when the product has no variants.
func (r *variantRepository) FindCheapestByProductID(productID uint) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	if err := r.db.Where("product_id = ?", productID).
		Order("price ASC").
		First(&variant).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *variantRepository) Update(variant *model.ProductVariant) error {
	if err := r.db.Save(variant).Error; err != nil {
		logger.Error("Failed to update product variant in database", err, map[string]interface{}{
			"variant_id": variant.ID,
		})
		return err
	}
	return nil
}

func (r *variantRepository) Delete(id uint) error {
	if err := r.db.Select("Options").Delete(&model.ProductVariant{ID: id}).Error; err != nil {
		logger.Error("Failed to delete product variant from database", err, map[string]interface{}{
			"variant_id": id,
		})
		return err
	}
	return nil
}

// ReplaceForProduct swaps a product's whole variant set for a new one.
// Old rows are removed for real, not soft-deleted, so re-imported SKUs do
// not trip the unique index.
func (r *variantRepository) ReplaceForProduct(productID uint, variants []model.ProductVariant) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		existing := tx.Model(&model.ProductVariant{}).Select("id").Where("product_id = ?", productID)
		if err := tx.Where("variant_id IN (?)", existing).Delete(&model.VariantOption{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("product_id = ?", productID).Delete(&model.ProductVariant{}).Error; err != nil {
			return err
		}

		for i := range variants {
			variants[i].ID = 0
			variants[i].ProductID = productID
		}
		if len(variants) == 0 {
			return nil
		}
		if err := tx.Create(&variants).Error; err != nil {
			logger.Error("Failed to replace product variants in database", err, map[string]interface{}{
				"product_id": productID,
			})
			return err
		}
		return nil
	})
}

// ReplaceOptions swaps a variant's option set for a new one.
func (r *variantRepository) ReplaceOptions(variantID uint, options []model.VariantOption) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("variant_id = ?", variantID).Delete(&model.VariantOption{}).Error; err != nil {
			return err
		}
		for i := range options {
			options[i].ID = 0
			options[i].VariantID = variantID
		}
		if len(options) == 0 {
			return nil
		}
		return tx.Create(&options).Error
	})
}
