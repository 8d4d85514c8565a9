package db

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing. The database
// gets a unique name and a shared cache so every pooled connection sees the
// same store; a plain :memory: DSN hands each connection its own empty
// database, which breaks reads running next to an open transaction.
func SetupTestDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.UserAddress{},
		&model.Promotion{},
		&model.Product{},
		&model.ProductVariant{},
		&model.VariantOption{},
		&model.Coupon{},
		&model.CartItem{},
		&model.PaymentMethod{},
		&model.ShippingPartner{},
		&model.ShippingConfig{},
		&model.Order{},
		&model.OrderItem{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return db, nil
}

// CleanupTestDB cleans up the test database
func CleanupTestDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Failed to get DB instance: %v", err)
		return
	}
	sqlDB.Close()
}
