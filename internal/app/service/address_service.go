package service

import (
	"errors"

	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/app/repository"
	"gorm.io/gorm"
)

var (
	ErrAddressNotFound     = errors.New("address not found")
	ErrAddressAccessDenied = errors.New("address belongs to another user")
)

type AddressService interface {
	Create(address *model.UserAddress) error
	GetByUserID(userID uint) ([]model.UserAddress, error)
	Update(userID uint, address *model.UserAddress) error
	Delete(userID, addressID uint) error
	SetDefault(userID, addressID uint) (*model.UserAddress, error)
}

type addressService struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressService{addressRepo: addressRepo}
}

func (s *addressService) Create(address *model.UserAddress) error {
	if address.IsDefault {
		if err := s.addressRepo.ClearDefault(address.UserID); err != nil {
			return err
		}
	}
	return s.addressRepo.Create(address)
}

func (s *addressService) GetByUserID(userID uint) ([]model.UserAddress, error) {
	return s.addressRepo.FindByUserID(userID)
}

func (s *addressService) Update(userID uint, address *model.UserAddress) error {
	existing, err := s.ownedAddress(userID, address.ID)
	if err != nil {
		return err
	}
	address.UserID = existing.UserID

	if address.IsDefault && !existing.IsDefault {
		if err := s.addressRepo.ClearDefault(userID); err != nil {
			return err
		}
	}
	return s.addressRepo.Update(address)
}

func (s *addressService) Delete(userID, addressID uint) error {
	if _, err := s.ownedAddress(userID, addressID); err != nil {
		return err
	}
	return s.addressRepo.Delete(addressID)
}

func (s *addressService) SetDefault(userID, addressID uint) (*model.UserAddress, error) {
	address, err := s.ownedAddress(userID, addressID)
	if err != nil {
		return nil, err
	}

	if err := s.addressRepo.ClearDefault(userID); err != nil {
		return nil, err
	}

	address.IsDefault = true
	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *addressService) ownedAddress(userID, addressID uint) (*model.UserAddress, error) {
	address, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if address.UserID != userID {
		return nil, ErrAddressAccessDenied
	}
	return address, nil
}
