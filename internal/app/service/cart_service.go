package service

import (
	"errors"

	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/app/repository"
	"github.com/haungo2109/be-thamhienmauto/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrVariantMismatch  = errors.New("variant does not belong to the product")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrProductNotFound  = errors.New("product not found")
	ErrCartAccessDenied = errors.New("cart item belongs to another user")
)

// CartSummary is a priced view of the cart: every line carries the current
// effective unit price, so the client sees what checkout would charge now.
type CartSummary struct {
	Items       []CartLine `json:"items"`
	Subtotal    float64    `json:"subtotal"`
	ShippingFee float64    `json:"shipping_fee"`
	Total       float64    `json:"total"`
}

type CartLine struct {
	Item      model.CartItem `json:"item"`
	UnitPrice float64        `json:"unit_price"`
	Subtotal  float64        `json:"subtotal"`
}

type CartService interface {
	AddItem(userID, productID uint, variantID *uint, quantity int) (*model.CartItem, error)
	GetCart(userID uint) (*CartSummary, error)
	UpdateQuantity(userID, itemID uint, quantity int) (*model.CartItem, error)
	RemoveItem(userID, itemID uint) error
	Clear(userID uint) error
}

type cartService struct {
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	variantRepo  repository.VariantRepository
	shippingRepo repository.ShippingRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	shippingRepo repository.ShippingRepository,
) CartService {
	return &cartService{
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		shippingRepo: shippingRepo,
	}
}

// AddItem merges into the existing line for the same product/variant pair
// instead of creating a duplicate.
func (s *cartService) AddItem(userID, productID uint, variantID *uint, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if variantID != nil {
		variant, err := s.variantRepo.FindByID(*variantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrVariantNotFound
			}
			return nil, err
		}
		if variant.ProductID != productID {
			return nil, ErrVariantMismatch
		}
	}

	existing, err := s.cartRepo.FindLine(userID, productID, variantID)
	if err == nil {
		existing.Quantity += quantity
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		logger.Debug("Merged quantity into existing cart line", map[string]interface{}{
			"cart_item_id": existing.ID,
			"quantity":     existing.Quantity,
		})
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := &model.CartItem{
		UserID:           userID,
		ProductID:        productID,
		ProductVariantID: variantID,
		Quantity:         quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartService) GetCart(userID uint) (*CartSummary, error) {
	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	config, err := s.shippingRepo.GetConfig()
	if err != nil {
		return nil, err
	}

	summary := &CartSummary{Items: make([]CartLine, 0, len(items))}
	for i := range items {
		item := &items[i]

		unitPrice := item.Product.EffectivePrice()
		if item.Variant != nil {
			unitPrice = item.Variant.EffectivePrice()
		}

		lineSubtotal := unitPrice * float64(item.Quantity)
		summary.Subtotal += lineSubtotal
		summary.Items = append(summary.Items, CartLine{
			Item:      *item,
			UnitPrice: unitPrice,
			Subtotal:  lineSubtotal,
		})
	}

	if len(summary.Items) > 0 {
		summary.ShippingFee = config.FeeFor(summary.Subtotal)
	}
	summary.Total = summary.Subtotal + summary.ShippingFee
	return summary, nil
}

func (s *cartService) UpdateQuantity(userID, itemID uint, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartService) RemoveItem(userID, itemID uint) error {
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return err
	}
	return s.cartRepo.Delete(item.ID)
}

func (s *cartService) Clear(userID uint) error {
	return s.cartRepo.DeleteByUserID(userID)
}

func (s *cartService) ownedItem(userID, itemID uint) (*model.CartItem, error) {
	item, err := s.cartRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	if item.UserID != userID {
		return nil, ErrCartAccessDenied
	}
	return item, nil
}
