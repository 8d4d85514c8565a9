package service

import (
	"errors"

	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/app/repository"
	"github.com/haungo2109/be-thamhienmauto/pkg/logger"
	"gorm.io/gorm"
)

var ErrVariantNotFound = errors.New("product variant not found")

type VariantService interface {
	Create(variant *model.ProductVariant) error
	GetByID(id uint) (*model.ProductVariant, error)
	GetByProductID(productID uint) ([]model.ProductVariant, error)
	Update(variant *model.ProductVariant) error
	UpdateOptions(variantID uint, options []model.VariantOption) error
	Delete(id uint) error
	SyncVariants(productID uint, variants []model.ProductVariant) ([]model.ProductVariant, error)
	SyncProductPrice(productID uint)
}

type variantService struct {
	variantRepo repository.VariantRepository
	productRepo repository.ProductRepository
}

func NewVariantService(variantRepo repository.VariantRepository, productRepo repository.ProductRepository) VariantService {
	return &variantService{variantRepo: variantRepo, productRepo: productRepo}
}

func (s *variantService) Create(variant *model.ProductVariant) error {
	if _, err := s.productRepo.FindByID(variant.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := s.variantRepo.Create(variant); err != nil {
		return err
	}

	s.SyncProductPrice(variant.ProductID)
	return nil
}

func (s *variantService) GetByID(id uint) (*model.ProductVariant, error) {
	variant, err := s.variantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	return variant, nil
}

func (s *variantService) GetByProductID(productID uint) ([]model.ProductVariant, error) {
	return s.variantRepo.FindByProductID(productID)
}

func (s *variantService) Update(variant *model.ProductVariant) error {
	if err := s.variantRepo.Update(variant); err != nil {
		return err
	}

	s.SyncProductPrice(variant.ProductID)
	return nil
}

func (s *variantService) UpdateOptions(variantID uint, options []model.VariantOption) error {
	variant, err := s.GetByID(variantID)
	if err != nil {
		return err
	}
	return s.variantRepo.ReplaceOptions(variant.ID, options)
}

func (s *variantService) Delete(id uint) error {
	variant, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.variantRepo.Delete(id); err != nil {
		return err
	}

	s.SyncProductPrice(variant.ProductID)
	return nil
}

// SyncVariants replaces a product's entire variant set in one shot, then
// re-mirrors the cheapest price onto the product. Used by catalog imports
// that manage variants as a whole rather than row by row.
func (s *variantService) SyncVariants(productID uint, variants []model.ProductVariant) ([]model.ProductVariant, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if err := s.variantRepo.ReplaceForProduct(productID, variants); err != nil {
		return nil, err
	}

	s.SyncProductPrice(productID)

	logger.Info("Replaced product variant set", map[string]interface{}{
		"product_id": productID,
		"variants":   len(variants),
	})
	return s.variantRepo.FindByProductID(productID)
}

// SyncProductPrice mirrors the cheapest variant's prices onto the parent
// product so listings can sort and display without joining variants. It runs
// after the variant write has committed; a sync failure leaves a stale cached
// price, which the next variant write repairs, so errors are logged and
// swallowed rather than failing the request.
func (s *variantService) SyncProductPrice(productID uint) {
	cheapest, err := s.variantRepo.FindCheapestByProductID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return
		}
		logger.Error("Failed to load cheapest variant for price sync", err, map[string]interface{}{
			"product_id": productID,
		})
		return
	}

	if err := s.productRepo.UpdatePricing(productID, cheapest.Price, cheapest.SalePrice); err != nil {
		logger.Error("Failed to sync product price from variant", err, map[string]interface{}{
			"product_id": productID,
			"variant_id": cheapest.ID,
		})
		return
	}

	logger.Debug("Synced product price from cheapest variant", map[string]interface{}{
		"product_id": productID,
		"variant_id": cheapest.ID,
		"price":      cheapest.Price,
		"sale_price": cheapest.SalePrice,
	})
}
