package repository

import (
	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/pkg/logger"
	"gorm.io/gorm"
)

type ShippingRepository interface {
	CreatePartner(partner *model.ShippingPartner) error
	FindPartners(activeOnly bool) ([]model.ShippingPartner, error)
	FindPartnerByID(id uint) (*model.ShippingPartner, error)
	UpdatePartner(partner *model.ShippingPartner) error
	DeletePartner(id uint) error
	GetConfig() (*model.ShippingConfig, error)
	UpdateConfig(config *model.ShippingConfig) error
}

type shippingRepository struct {
	db *gorm.DB
}

func NewShippingRepository(db *gorm.DB) ShippingRepository {
	return &shippingRepository{db: db}
}

func (r *shippingRepository) CreatePartner(partner *model.ShippingPartner) error {
	if err := r.db.Create(partner).Error; err != nil {
		logger.Error("Failed to create shipping partner in database", err, map[string]interface{}{
			"name": partner.Name,
		})
		return err
	}
	return nil
}

func (r *shippingRepository) FindPartners(activeOnly bool) ([]model.ShippingPartner, error) {
	query := r.db.Order("name ASC")
	if activeOnly {
		query = query.Where("status = ?", model.PartnerActive)
	}

	var partners []model.ShippingPartner
	if err := query.Find(&partners).Error; err != nil {
		return nil, err
	}
	return partners, nil
}

func (r *shippingRepository) FindPartnerByID(id uint) (*model.ShippingPartner, error) {
	var partner model.ShippingPartner
	if err := r.db.First(&partner, id).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *shippingRepository) UpdatePartner(partner *model.ShippingPartner) error {
	if err := r.db.Save(partner).Error; err != nil {
		logger.Error("Failed to update shipping partner in database", err, map[string]interface{}{
			"partner_id": partner.ID,
		})
		return err
	}
	return nil
}

func (r *shippingRepository) DeletePartner(id uint) error {
	if err := r.db.Delete(&model.ShippingPartner{}, id).Error; err != nil {
		logger.Error("Failed to delete shipping partner from database", err, map[string]interface{}{
			"partner_id": id,
		})
		return err
	}
	return nil
}

// GetConfig returns the single shipping config row, creating the default
// one if migrations have not seeded it yet.
func (r *shippingRepository) GetConfig() (*model.ShippingConfig, error) {
	var config model.ShippingConfig
	err := r.db.First(&config).Error
	if err == gorm.ErrRecordNotFound {
		config = model.ShippingConfig{BaseFee: 30000, FreeShippingThreshold: 500000}
		if err := r.db.Create(&config).Error; err != nil {
			return nil, err
		}
		return &config, nil
	}
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *shippingRepository) UpdateConfig(config *model.ShippingConfig) error {
	if err := r.db.Save(config).Error; err != nil {
		logger.Error("Failed to update shipping config in database", err)
		return err
	}
	return nil
}
