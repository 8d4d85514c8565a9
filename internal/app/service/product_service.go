package service

import (
	"errors"

	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/app/repository"
	"github.com/haungo2109/be-thamhienmauto/pkg/util"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(product *model.Product) error
	GetWithFilter(filter repository.ProductFilter) ([]model.Product, error)
	GetByID(id uint) (*model.Product, error)
	GetBySlug(slug string) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
}

type productService struct {
	productRepo   repository.ProductRepository
	promotionRepo repository.PromotionRepository
}

func NewProductService(productRepo repository.ProductRepository, promotionRepo repository.PromotionRepository) ProductService {
	return &productService{productRepo: productRepo, promotionRepo: promotionRepo}
}

func (s *productService) Create(product *model.Product) error {
	if product.Slug == "" {
		product.Slug = util.Slugify(product.Name)
	}
	if err := s.derivePromotionPrice(product); err != nil {
		return err
	}
	return s.productRepo.Create(product)
}

func (s *productService) GetWithFilter(filter repository.ProductFilter) ([]model.Product, error) {
	return s.productRepo.FindWithFilter(filter)
}

func (s *productService) GetByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) GetBySlug(slug string) (*model.Product, error) {
	product, err := s.productRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) Update(product *model.Product) error {
	if product.Slug == "" {
		product.Slug = util.Slugify(product.Name)
	}
	if err := s.derivePromotionPrice(product); err != nil {
		return err
	}
	return s.productRepo.Update(product)
}

// derivePromotionPrice recomputes SalePrice from an assigned active
// promotion. Without one, an explicit markdown stands and an unset sale
// price falls back to the base price.
func (s *productService) derivePromotionPrice(product *model.Product) error {
	if product.PromotionID != nil {
		promotion, err := s.promotionRepo.FindByID(*product.PromotionID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil && promotion.IsActive {
			product.SalePrice = ComputeSalePrice(product.Price, promotion.DiscountType, promotion.DiscountValue)
			return nil
		}
	}
	if product.SalePrice == 0 {
		product.SalePrice = product.Price
	}
	return nil
}

func (s *productService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.productRepo.Delete(id)
}
