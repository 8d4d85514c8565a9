package db

import (
	"testing"

	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestDB_SharedAcrossConnections(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		CleanupTestDB(testDB)
	})

	require.NoError(t, testDB.Create(&model.Coupon{Code: "SHARED", DiscountType: model.CouponFixedCart, Amount: 1000, IsActive: true}).Error)

	// A read on a second pooled connection, while a transaction holds the
	// first, must still see the migrated tables and their rows.
	tx := testDB.Begin()
	require.NoError(t, tx.Error)
	defer tx.Rollback()

	require.NoError(t, tx.Create(&model.User{Email: "tx@example.com", PasswordHash: "x", Name: "Tx"}).Error)

	var coupon model.Coupon
	require.NoError(t, testDB.Where("code = ?", "SHARED").First(&coupon).Error)
	assert.Equal(t, float64(1000), coupon.Amount)
}

func TestSetupTestDB_IsolatedPerCall(t *testing.T) {
	first, err := SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		CleanupTestDB(first)
	})

	second, err := SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		CleanupTestDB(second)
	})

	require.NoError(t, first.Create(&model.Coupon{Code: "ONLY-FIRST", DiscountType: model.CouponFixedCart, Amount: 1000, IsActive: true}).Error)

	var count int64
	require.NoError(t, second.Model(&model.Coupon{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
