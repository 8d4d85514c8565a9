package service

import (
	"errors"

	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/app/repository"
	"gorm.io/gorm"
)

type PaymentMethodService interface {
	Create(method *model.PaymentMethod) error
	GetAll(activeOnly bool) ([]model.PaymentMethod, error)
	GetByID(id string) (*model.PaymentMethod, error)
	Update(method *model.PaymentMethod) error
	Delete(id string) error
}

type paymentMethodService struct {
	paymentMethodRepo repository.PaymentMethodRepository
}

func NewPaymentMethodService(paymentMethodRepo repository.PaymentMethodRepository) PaymentMethodService {
	return &paymentMethodService{paymentMethodRepo: paymentMethodRepo}
}

func (s *paymentMethodService) Create(method *model.PaymentMethod) error {
	return s.paymentMethodRepo.Create(method)
}

func (s *paymentMethodService) GetAll(activeOnly bool) ([]model.PaymentMethod, error) {
	if activeOnly {
		return s.paymentMethodRepo.FindActive()
	}
	return s.paymentMethodRepo.FindAll()
}

func (s *paymentMethodService) GetByID(id string) (*model.PaymentMethod, error) {
	method, err := s.paymentMethodRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, err
	}
	return method, nil
}

func (s *paymentMethodService) Update(method *model.PaymentMethod) error {
	if _, err := s.GetByID(method.ID); err != nil {
		return err
	}
	return s.paymentMethodRepo.Update(method)
}

func (s *paymentMethodService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.paymentMethodRepo.Delete(id)
}
