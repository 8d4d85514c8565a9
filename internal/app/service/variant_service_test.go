package service

import (
	"testing"

	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/app/repository"
	"github.com/haungo2109/be-thamhienmauto/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupVariantServiceTest(t *testing.T) (VariantService, *gorm.DB, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	variantRepo := repository.NewVariantRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	variantService := NewVariantService(variantRepo, productRepo)

	product := &model.Product{Name: "Floor Mat", Slug: "floor-mat", Price: 999999, SalePrice: 999999}
	require.NoError(t, testDB.Create(product).Error)

	return variantService, testDB, product
}

func reloadProduct(t *testing.T, testDB *gorm.DB, id uint) *model.Product {
	var product model.Product
	require.NoError(t, testDB.First(&product, id).Error)
	return &product
}

func TestVariantService_Create_SyncsCheapestPrice(t *testing.T) {
	variantService, testDB, product := setupVariantServiceTest(t)

	for _, price := range []float64{150000, 200000, 120000} {
		variant := &model.ProductVariant{ProductID: product.ID, Price: price, SalePrice: price}
		require.NoError(t, variantService.Create(variant))
	}

	// The product mirrors the minimum-priced variant
	saved := reloadProduct(t, testDB, product.ID)
	assert.Equal(t, float64(120000), saved.Price)
	assert.Equal(t, float64(120000), saved.SalePrice)
}

func TestVariantService_Create_UnknownProduct(t *testing.T) {
	variantService, _, _ := setupVariantServiceTest(t)

	err := variantService.Create(&model.ProductVariant{ProductID: 99999, Price: 100000})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestVariantService_Update_ResyncsPrice(t *testing.T) {
	variantService, testDB, product := setupVariantServiceTest(t)

	variant := &model.ProductVariant{ProductID: product.ID, Price: 150000, SalePrice: 150000}
	require.NoError(t, variantService.Create(variant))

	variant.Price = 130000
	variant.SalePrice = 110000
	require.NoError(t, variantService.Update(variant))

	saved := reloadProduct(t, testDB, product.ID)
	assert.Equal(t, float64(130000), saved.Price)
	assert.Equal(t, float64(110000), saved.SalePrice)
}

func TestVariantService_Delete_ResyncsToSurvivor(t *testing.T) {
	variantService, testDB, product := setupVariantServiceTest(t)

	cheap := &model.ProductVariant{ProductID: product.ID, Price: 100000, SalePrice: 100000}
	expensive := &model.ProductVariant{ProductID: product.ID, Price: 180000, SalePrice: 180000}
	require.NoError(t, variantService.Create(cheap))
	require.NoError(t, variantService.Create(expensive))

	require.NoError(t, variantService.Delete(cheap.ID))

	saved := reloadProduct(t, testDB, product.ID)
	assert.Equal(t, float64(180000), saved.Price)
}

func TestVariantService_Delete_LastVariantKeepsProductPrice(t *testing.T) {
	variantService, testDB, product := setupVariantServiceTest(t)

	variant := &model.ProductVariant{ProductID: product.ID, Price: 100000, SalePrice: 100000}
	require.NoError(t, variantService.Create(variant))
	require.NoError(t, variantService.Delete(variant.ID))

	// No variants left: the sync is a no-op, the last mirrored price stays
	saved := reloadProduct(t, testDB, product.ID)
	assert.Equal(t, float64(100000), saved.Price)
}

func TestVariantService_SyncVariants_ReplacesSet(t *testing.T) {
	variantService, testDB, product := setupVariantServiceTest(t)

	old := &model.ProductVariant{ProductID: product.ID, SKU: "OLD-1", Price: 300000, SalePrice: 300000}
	require.NoError(t, variantService.Create(old))

	synced, err := variantService.SyncVariants(product.ID, []model.ProductVariant{
		{SKU: "NEW-1", Price: 150000, SalePrice: 150000},
		{SKU: "NEW-2", Price: 120000, SalePrice: 120000},
	})
	require.NoError(t, err)
	require.Len(t, synced, 2)

	// The old variant is gone and the product mirrors the new cheapest price
	var count int64
	testDB.Model(&model.ProductVariant{}).Where("product_id = ?", product.ID).Count(&count)
	assert.Equal(t, int64(2), count)

	saved := reloadProduct(t, testDB, product.ID)
	assert.Equal(t, float64(120000), saved.Price)
}

func TestVariantService_SyncVariants_ReusesOldSKUs(t *testing.T) {
	variantService, _, product := setupVariantServiceTest(t)

	_, err := variantService.SyncVariants(product.ID, []model.ProductVariant{
		{SKU: "SKU-1", Price: 100000, SalePrice: 100000},
	})
	require.NoError(t, err)

	// A second sync with the same SKU must not hit the unique index
	synced, err := variantService.SyncVariants(product.ID, []model.ProductVariant{
		{SKU: "SKU-1", Price: 110000, SalePrice: 110000},
	})
	require.NoError(t, err)
	require.Len(t, synced, 1)
	assert.Equal(t, float64(110000), synced[0].Price)
}

func TestVariantService_SyncVariants_UnknownProduct(t *testing.T) {
	variantService, _, _ := setupVariantServiceTest(t)

	_, err := variantService.SyncVariants(99999, nil)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestVariantService_UpdateOptions_Replaces(t *testing.T) {
	variantService, testDB, product := setupVariantServiceTest(t)

	variant := &model.ProductVariant{
		ProductID: product.ID,
		Price:     100000,
		Options: []model.VariantOption{
			{AttributeName: "Color", AttributeValue: "Red", AffectsPrice: true},
			{AttributeName: "Year", AttributeValue: "2018"},
		},
	}
	require.NoError(t, variantService.Create(variant))

	require.NoError(t, variantService.UpdateOptions(variant.ID, []model.VariantOption{
		{AttributeName: "Color", AttributeValue: "Black", AffectsPrice: true},
	}))

	var options []model.VariantOption
	require.NoError(t, testDB.Where("variant_id = ?", variant.ID).Find(&options).Error)
	require.Len(t, options, 1)
	assert.Equal(t, "Black", options[0].AttributeValue)
}
