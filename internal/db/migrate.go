package db

import (
	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
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
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

func seedInitialData() error {
	if err := seedPaymentMethods(); err != nil {
		return err
	}
	return seedShippingConfig()
}

// seedPaymentMethods makes sure checkout has at least the manual methods.
func seedPaymentMethods() error {
	var count int64
	if err := DB.Model(&model.PaymentMethod{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	logger.Info("Seeding payment methods...")

	methods := []model.PaymentMethod{
		{ID: "cod", Name: "Cash on delivery", Type: model.PaymentTypeCOD, IsActive: true},
		{ID: "bank_transfer", Name: "Bank transfer", Type: "manual", IsActive: true},
	}
	for _, m := range methods {
		if err := DB.Create(&m).Error; err != nil {
			logger.Error("Failed to create payment method", err, map[string]interface{}{
				"payment_method_id": m.ID,
			})
			return err
		}
	}

	logger.Info("Payment methods seeded successfully", map[string]interface{}{
		"count": len(methods),
	})
	return nil
}

// seedShippingConfig creates the default flat-fee shipping rule.
func seedShippingConfig() error {
	var count int64
	if err := DB.Model(&model.ShippingConfig{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	logger.Info("Seeding shipping config...")
	cfg := model.ShippingConfig{BaseFee: 30000, FreeShippingThreshold: 500000}
	if err := DB.Create(&cfg).Error; err != nil {
		logger.Error("Failed to create shipping config", err)
		return err
	}
	return nil
}
