package repository

import (
	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/pkg/logger"
	"gorm.io/gorm"
)

type PaymentMethodRepository interface {
	Create(method *model.PaymentMethod) error
	FindAll() ([]model.PaymentMethod, error)
	FindActive() ([]model.PaymentMethod, error)
	FindByID(id string) (*model.PaymentMethod, error)
	Update(method *model.PaymentMethod) error
	Delete(id string) error
}

type paymentMethodRepository struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

func (r *paymentMethodRepository) Create(method *model.PaymentMethod) error {
	if err := r.db.Create(method).Error; err != nil {
		logger.Error("Failed to create payment method in database", err, map[string]interface{}{
			"payment_method_id": method.ID,
		})
		return err
	}
	return nil
}

func (r *paymentMethodRepository) FindAll() ([]model.PaymentMethod, error) {
	var methods []model.PaymentMethod
	if err := r.db.Order("id ASC").Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *paymentMethodRepository) FindActive() ([]model.PaymentMethod, error) {
	var methods []model.PaymentMethod
	if err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *paymentMethodRepository) FindByID(id string) (*model.PaymentMethod, error) {
	var method model.PaymentMethod
	if err := r.db.Where("id = ?", id).First(&method).Error; err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *paymentMethodRepository) Update(method *model.PaymentMethod) error {
	if err := r.db.Save(method).Error; err != nil {
		logger.Error("Failed to update payment method in database", err, map[string]interface{}{
			"payment_method_id": method.ID,
		})
		return err
	}
	return nil
}

func (r *paymentMethodRepository) Delete(id string) error {
	if err := r.db.Where("id = ?", id).Delete(&model.PaymentMethod{}).Error; err != nil {
		logger.Error("Failed to delete payment method from database", err, map[string]interface{}{
			"payment_method_id": id,
		})
		return err
	}
	return nil
}
