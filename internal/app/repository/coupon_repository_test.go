package repository

import (
	"testing"

	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCouponRepoTest(t *testing.T) (CouponRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return NewCouponRepository(testDB), testDB
}

func TestCouponRepository_IncrementUsage_GuardedAtLimit(t *testing.T) {
	couponRepo, testDB := setupCouponRepoTest(t)

	coupon := &model.Coupon{Code: "LIMITED", DiscountType: model.CouponFixedCart, Amount: 1000, IsActive: true, UsageLimit: 2}
	require.NoError(t, testDB.Create(coupon).Error)

	for i := 0; i < 2; i++ {
		ok, err := couponRepo.IncrementUsage(testDB, coupon.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	// At the limit the guarded update matches no rows
	ok, err := couponRepo.IncrementUsage(testDB, coupon.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	var saved model.Coupon
	require.NoError(t, testDB.First(&saved, coupon.ID).Error)
	assert.Equal(t, 2, saved.UsageCount)
}

func TestCouponRepository_IncrementUsage_UnlimitedWhenZero(t *testing.T) {
	couponRepo, testDB := setupCouponRepoTest(t)

	coupon := &model.Coupon{Code: "FOREVER", DiscountType: model.CouponFixedCart, Amount: 1000, IsActive: true, UsageLimit: 0}
	require.NoError(t, testDB.Create(coupon).Error)

	for i := 0; i < 5; i++ {
		ok, err := couponRepo.IncrementUsage(testDB, coupon.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	var saved model.Coupon
	require.NoError(t, testDB.First(&saved, coupon.ID).Error)
	assert.Equal(t, 5, saved.UsageCount)
}

func TestCouponRepository_FindByCode(t *testing.T) {
	couponRepo, testDB := setupCouponRepoTest(t)

	require.NoError(t, testDB.Create(&model.Coupon{Code: "WELCOME", DiscountType: model.CouponPercent, Amount: 5, IsActive: true}).Error)

	coupon, err := couponRepo.FindByCode("WELCOME")
	require.NoError(t, err)
	assert.Equal(t, float64(5), coupon.Amount)

	_, err = couponRepo.FindByCode("MISSING")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
