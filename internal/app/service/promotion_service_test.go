package service

import (
	"testing"
	"time"

	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/app/repository"
	"github.com/haungo2109/be-thamhienmauto/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPromotionServiceTest(t *testing.T) (PromotionService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	promotionRepo := repository.NewPromotionRepository(testDB)
	return NewPromotionService(testDB, promotionRepo), testDB
}

func createPromoProduct(t *testing.T, testDB *gorm.DB, slug string, price float64) *model.Product {
	t.Helper()
	product := &model.Product{Name: slug, Slug: slug, Price: price, SalePrice: price}
	require.NoError(t, testDB.Create(product).Error)
	return product
}

func flashSale(discountType model.DiscountType, value float64) *model.Promotion {
	return &model.Promotion{
		Name:          "Summer Sale",
		Type:          model.PromotionFlashSale,
		StartDate:     time.Now().Add(-time.Hour),
		EndDate:       time.Now().Add(24 * time.Hour),
		IsActive:      true,
		DiscountType:  discountType,
		DiscountValue: value,
	}
}

func TestPromotionService_Create_AppliesPercentageDiscount(t *testing.T) {
	promotionService, testDB := setupPromotionServiceTest(t)

	product := createPromoProduct(t, testDB, "led-bar", 100000)
	variant := &model.ProductVariant{ProductID: product.ID, Price: 80000, SalePrice: 80000}
	require.NoError(t, testDB.Create(variant).Error)

	promotion := flashSale(model.DiscountPercentage, 20)
	require.NoError(t, promotionService.Create(promotion, []uint{product.ID}))

	var savedProduct model.Product
	require.NoError(t, testDB.First(&savedProduct, product.ID).Error)
	assert.Equal(t, float64(80000), savedProduct.SalePrice)
	assert.Equal(t, float64(100000), savedProduct.Price)
	require.NotNil(t, savedProduct.PromotionID)
	assert.Equal(t, promotion.ID, *savedProduct.PromotionID)

	// Variants are discounted off their own base price
	var savedVariant model.ProductVariant
	require.NoError(t, testDB.First(&savedVariant, variant.ID).Error)
	assert.Equal(t, float64(64000), savedVariant.SalePrice)
	assert.Equal(t, float64(80000), savedVariant.Price)
}

func TestPromotionService_Create_FixedDiscountClampsAtZero(t *testing.T) {
	promotionService, testDB := setupPromotionServiceTest(t)

	cheap := createPromoProduct(t, testDB, "sticker", 20000)
	normal := createPromoProduct(t, testDB, "mud-flap", 100000)

	promotion := flashSale(model.DiscountFixed, 50000)
	require.NoError(t, promotionService.Create(promotion, []uint{cheap.ID, normal.ID}))

	var savedCheap, savedNormal model.Product
	require.NoError(t, testDB.First(&savedCheap, cheap.ID).Error)
	require.NoError(t, testDB.First(&savedNormal, normal.ID).Error)
	assert.Equal(t, float64(0), savedCheap.SalePrice)
	assert.Equal(t, float64(50000), savedNormal.SalePrice)
}

func TestPromotionService_Create_InactiveOnlyTagsProducts(t *testing.T) {
	promotionService, testDB := setupPromotionServiceTest(t)

	product := createPromoProduct(t, testDB, "horn", 100000)

	promotion := flashSale(model.DiscountPercentage, 50)
	promotion.IsActive = false
	require.NoError(t, promotionService.Create(promotion, []uint{product.ID}))

	var saved model.Product
	require.NoError(t, testDB.First(&saved, product.ID).Error)
	require.NotNil(t, saved.PromotionID)
	assert.Equal(t, float64(100000), saved.SalePrice)
}

func TestPromotionService_Update_ReconcilesDroppedProducts(t *testing.T) {
	promotionService, testDB := setupPromotionServiceTest(t)

	kept := createPromoProduct(t, testDB, "kept", 100000)
	dropped := createPromoProduct(t, testDB, "dropped", 200000)

	promotion := flashSale(model.DiscountPercentage, 10)
	require.NoError(t, promotionService.Create(promotion, []uint{kept.ID, dropped.ID}))

	promotion.DiscountValue = 30
	require.NoError(t, promotionService.Update(promotion, []uint{kept.ID}))

	var savedKept, savedDropped model.Product
	require.NoError(t, testDB.First(&savedKept, kept.ID).Error)
	require.NoError(t, testDB.First(&savedDropped, dropped.ID).Error)

	assert.Equal(t, float64(70000), savedKept.SalePrice)
	require.NotNil(t, savedKept.PromotionID)

	// The dropped product is back at base pricing with no promotion link
	assert.Equal(t, float64(200000), savedDropped.SalePrice)
	assert.Nil(t, savedDropped.PromotionID)
}

func TestPromotionService_Delete_ResetsPricing(t *testing.T) {
	promotionService, testDB := setupPromotionServiceTest(t)

	product := createPromoProduct(t, testDB, "bumper", 100000)
	variant := &model.ProductVariant{ProductID: product.ID, Price: 90000, SalePrice: 90000}
	require.NoError(t, testDB.Create(variant).Error)

	promotion := flashSale(model.DiscountPercentage, 25)
	require.NoError(t, promotionService.Create(promotion, []uint{product.ID}))
	require.NoError(t, promotionService.Delete(promotion.ID))

	var savedProduct model.Product
	var savedVariant model.ProductVariant
	require.NoError(t, testDB.First(&savedProduct, product.ID).Error)
	require.NoError(t, testDB.First(&savedVariant, variant.ID).Error)

	assert.Equal(t, float64(100000), savedProduct.SalePrice)
	assert.Nil(t, savedProduct.PromotionID)
	assert.Equal(t, float64(90000), savedVariant.SalePrice)

	_, err := promotionService.GetByID(promotion.ID)
	assert.ErrorIs(t, err, ErrPromotionNotFound)
}

func TestPromotionService_DeactivateExpired(t *testing.T) {
	promotionService, testDB := setupPromotionServiceTest(t)

	product := createPromoProduct(t, testDB, "spoiler", 100000)

	promotion := flashSale(model.DiscountPercentage, 40)
	require.NoError(t, promotionService.Create(promotion, []uint{product.ID}))

	// Force the window shut, then sweep
	require.NoError(t, testDB.Model(&model.Promotion{}).
		Where("id = ?", promotion.ID).
		Update("end_date", time.Now().Add(-time.Minute)).Error)

	count, err := promotionService.DeactivateExpired()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var savedPromotion model.Promotion
	require.NoError(t, testDB.First(&savedPromotion, promotion.ID).Error)
	assert.False(t, savedPromotion.IsActive)

	var savedProduct model.Product
	require.NoError(t, testDB.First(&savedProduct, product.ID).Error)
	assert.Equal(t, float64(100000), savedProduct.SalePrice)
	assert.Nil(t, savedProduct.PromotionID)

	// Idempotent: a second sweep finds nothing
	count, err = promotionService.DeactivateExpired()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
