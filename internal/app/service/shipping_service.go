package service

import (
	"errors"

	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/app/repository"
	"gorm.io/gorm"
)

var ErrPartnerNotFound = errors.New("shipping partner not found")

type ShippingService interface {
	CreatePartner(partner *model.ShippingPartner) error
	GetPartners(activeOnly bool) ([]model.ShippingPartner, error)
	GetPartnerByID(id uint) (*model.ShippingPartner, error)
	UpdatePartner(partner *model.ShippingPartner) error
	DeletePartner(id uint) error
	GetConfig() (*model.ShippingConfig, error)
	UpdateConfig(baseFee, freeThreshold float64) (*model.ShippingConfig, error)
	QuoteFee(subtotal float64) (float64, error)
}

type shippingService struct {
	shippingRepo repository.ShippingRepository
}

func NewShippingService(shippingRepo repository.ShippingRepository) ShippingService {
	return &shippingService{shippingRepo: shippingRepo}
}

func (s *shippingService) CreatePartner(partner *model.ShippingPartner) error {
	if partner.Status == "" {
		partner.Status = model.PartnerActive
	}
	return s.shippingRepo.CreatePartner(partner)
}

func (s *shippingService) GetPartners(activeOnly bool) ([]model.ShippingPartner, error) {
	return s.shippingRepo.FindPartners(activeOnly)
}

func (s *shippingService) GetPartnerByID(id uint) (*model.ShippingPartner, error) {
	partner, err := s.shippingRepo.FindPartnerByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}
	return partner, nil
}

func (s *shippingService) UpdatePartner(partner *model.ShippingPartner) error {
	if _, err := s.GetPartnerByID(partner.ID); err != nil {
		return err
	}
	return s.shippingRepo.UpdatePartner(partner)
}

func (s *shippingService) DeletePartner(id uint) error {
	if _, err := s.GetPartnerByID(id); err != nil {
		return err
	}
	return s.shippingRepo.DeletePartner(id)
}

func (s *shippingService) GetConfig() (*model.ShippingConfig, error) {
	return s.shippingRepo.GetConfig()
}

func (s *shippingService) UpdateConfig(baseFee, freeThreshold float64) (*model.ShippingConfig, error) {
	config, err := s.shippingRepo.GetConfig()
	if err != nil {
		return nil, err
	}

	config.BaseFee = baseFee
	config.FreeShippingThreshold = freeThreshold
	if err := s.shippingRepo.UpdateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func (s *shippingService) QuoteFee(subtotal float64) (float64, error) {
	config, err := s.shippingRepo.GetConfig()
	if err != nil {
		return 0, err
	}
	return config.FeeFor(subtotal), nil
}
