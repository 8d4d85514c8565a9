package router

import (
	"github.com/gin-gonic/gin"
	"github.com/haungo2109/be-thamhienmauto/config"
	"github.com/haungo2109/be-thamhienmauto/internal/app/controller"
	"github.com/haungo2109/be-thamhienmauto/internal/middleware"
)

type Router struct {
	authController          *controller.AuthController
	productController       *controller.ProductController
	variantController       *controller.VariantController
	promotionController     *controller.PromotionController
	couponController        *controller.CouponController
	cartController          *controller.CartController
	orderController         *controller.OrderController
	paymentMethodController *controller.PaymentMethodController
	shippingController      *controller.ShippingController
	addressController       *controller.AddressController
	dashboardController     *controller.DashboardController
	uploadController        *controller.UploadController
	authMiddleware          *middleware.AuthMiddleware
	config                  *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	variantController *controller.VariantController,
	promotionController *controller.PromotionController,
	couponController *controller.CouponController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	paymentMethodController *controller.PaymentMethodController,
	shippingController *controller.ShippingController,
	addressController *controller.AddressController,
	dashboardController *controller.DashboardController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:          authController,
		productController:       productController,
		variantController:       variantController,
		promotionController:     promotionController,
		couponController:        couponController,
		cartController:          cartController,
		orderController:         orderController,
		paymentMethodController: paymentMethodController,
		shippingController:      shippingController,
		addressController:       addressController,
		dashboardController:     dashboardController,
		uploadController:        uploadController,
		authMiddleware:          authMiddleware,
		config:                  cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "THAMHIENMAUTO API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/profile", r.authMiddleware.Authenticate(), r.authController.GetProfile)
			auth.PUT("/profile", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.GetProducts)
			products.GET("/:id", r.productController.GetProductByID)
			products.GET("/slug/:slug", r.productController.GetProductBySlug)
			products.GET("/:id/variants", r.variantController.GetVariants)
		}

		promotions := v1.Group("/promotions")
		{
			promotions.GET("", r.promotionController.GetPromotions)
			promotions.GET("/:id", r.promotionController.GetPromotionByID)
		}

		coupons := v1.Group("/coupons")
		coupons.Use(r.authMiddleware.Authenticate())
		{
			coupons.POST("/apply", r.couponController.ApplyCoupon)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("/items", r.cartController.AddItem)
			cart.PUT("/items/:id", r.cartController.UpdateItem)
			cart.DELETE("/items/:id", r.cartController.RemoveItem)
			cart.DELETE("", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.POST("", r.orderController.CreateOrder)
			orders.GET("", r.orderController.GetOrders)
			orders.GET("/:id", r.orderController.GetOrderByID)
			orders.POST("/:id/cancel", r.orderController.CancelOrder)
			orders.PUT("/:id/shipping", r.orderController.UpdateShippingInfo)
		}

		v1.GET("/payment-methods", r.paymentMethodController.GetPaymentMethods)

		shipping := v1.Group("/shipping")
		{
			shipping.GET("/partners", r.shippingController.GetPartners)
			shipping.GET("/config", r.shippingController.GetConfig)
		}

		addresses := v1.Group("/addresses")
		addresses.Use(r.authMiddleware.Authenticate())
		{
			addresses.GET("", r.addressController.GetAddresses)
			addresses.POST("", r.addressController.CreateAddress)
			addresses.PUT("/:id", r.addressController.UpdateAddress)
			addresses.DELETE("/:id", r.addressController.DeleteAddress)
			addresses.POST("/:id/default", r.addressController.SetDefaultAddress)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			admin.POST("/products", r.productController.CreateProduct)
			admin.PUT("/products/:id", r.productController.UpdateProduct)
			admin.DELETE("/products/:id", r.productController.DeleteProduct)
			admin.POST("/products/:id/variants", r.variantController.CreateVariant)
			admin.PUT("/variants/:id", r.variantController.UpdateVariant)
			admin.DELETE("/variants/:id", r.variantController.DeleteVariant)
			admin.POST("/product-variants/sync", r.variantController.SyncVariants)

			admin.POST("/promotions", r.promotionController.CreatePromotion)
			admin.PUT("/promotions/:id", r.promotionController.UpdatePromotion)
			admin.DELETE("/promotions/:id", r.promotionController.DeletePromotion)

			admin.GET("/coupons", r.couponController.GetCoupons)
			admin.POST("/coupons", r.couponController.CreateCoupon)
			admin.PUT("/coupons/:id", r.couponController.UpdateCoupon)
			admin.DELETE("/coupons/:id", r.couponController.DeleteCoupon)

			admin.GET("/orders", r.orderController.GetAllOrders)
			admin.PUT("/orders/:id/status", r.orderController.UpdateStatus)

			admin.POST("/payment-methods", r.paymentMethodController.CreatePaymentMethod)
			admin.PUT("/payment-methods/:id", r.paymentMethodController.UpdatePaymentMethod)
			admin.DELETE("/payment-methods/:id", r.paymentMethodController.DeletePaymentMethod)

			admin.POST("/shipping/partners", r.shippingController.CreatePartner)
			admin.PUT("/shipping/partners/:id", r.shippingController.UpdatePartner)
			admin.DELETE("/shipping/partners/:id", r.shippingController.DeletePartner)
			admin.PUT("/shipping/config", r.shippingController.UpdateConfig)

			admin.GET("/dashboard", r.dashboardController.GetStats)
			admin.GET("/dashboard/revenue", r.dashboardController.GetRevenueReport)
			admin.GET("/dashboard/orders/export", r.dashboardController.ExportOrders)

			admin.POST("/upload/presigned-url", r.uploadController.GeneratePresignedURL)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
