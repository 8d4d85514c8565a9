package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/haungo2109/be-thamhienmauto/config"
	"github.com/haungo2109/be-thamhienmauto/internal/app/controller"
	"github.com/haungo2109/be-thamhienmauto/internal/app/repository"
	"github.com/haungo2109/be-thamhienmauto/internal/app/service"
	"github.com/haungo2109/be-thamhienmauto/internal/db"
	"github.com/haungo2109/be-thamhienmauto/internal/middleware"
	"github.com/haungo2109/be-thamhienmauto/internal/router"
	"github.com/haungo2109/be-thamhienmauto/internal/scheduler"
	"github.com/haungo2109/be-thamhienmauto/internal/storage"
	"github.com/haungo2109/be-thamhienmauto/pkg/logger"
	"github.com/haungo2109/be-thamhienmauto/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting THAMHIENMAUTO Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional: dashboard caching and token revocation degrade
	// gracefully without it.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, continuing without cache", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer redis.Close()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	variantRepo := repository.NewVariantRepository(db.GetDB())
	promotionRepo := repository.NewPromotionRepository(db.GetDB())
	couponRepo := repository.NewCouponRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	paymentMethodRepo := repository.NewPaymentMethodRepository(db.GetDB())
	shippingRepo := repository.NewShippingRepository(db.GetDB())
	addressRepo := repository.NewAddressRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT)
	productService := service.NewProductService(productRepo, promotionRepo)
	variantService := service.NewVariantService(variantRepo, productRepo)
	promotionService := service.NewPromotionService(db.GetDB(), promotionRepo)
	couponService := service.NewCouponService(couponRepo, shippingRepo)
	cartService := service.NewCartService(cartRepo, productRepo, variantRepo, shippingRepo)
	orderService := service.NewOrderService(db.GetDB(), orderRepo, couponRepo, paymentMethodRepo, shippingRepo, couponService)
	paymentMethodService := service.NewPaymentMethodService(paymentMethodRepo)
	shippingService := service.NewShippingService(shippingRepo)
	addressService := service.NewAddressService(addressRepo)
	dashboardService := service.NewDashboardService(db.GetDB(), orderRepo)

	// Initialize S3 storage for image uploads
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService)
	variantController := controller.NewVariantController(variantService)
	promotionController := controller.NewPromotionController(promotionService)
	couponController := controller.NewCouponController(couponService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	paymentMethodController := controller.NewPaymentMethodController(paymentMethodService)
	shippingController := controller.NewShippingController(shippingService)
	addressController := controller.NewAddressController(addressService)
	dashboardController := controller.NewDashboardController(dashboardService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start promotion sweep scheduler
	promotionScheduler := scheduler.NewPromotionScheduler(promotionService)
	if err := promotionScheduler.Start(); err != nil {
		logger.Fatal("Failed to start promotion scheduler", err)
	}
	defer promotionScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		variantController,
		promotionController,
		couponController,
		cartController,
		orderController,
		paymentMethodController,
		shippingController,
		addressController,
		dashboardController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
