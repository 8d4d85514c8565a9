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

func setupOrderServiceTest(t *testing.T) (OrderService, *gorm.DB, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	couponRepo := repository.NewCouponRepository(testDB)
	paymentMethodRepo := repository.NewPaymentMethodRepository(testDB)
	shippingRepo := repository.NewShippingRepository(testDB)
	couponService := NewCouponService(couponRepo, shippingRepo)
	orderService := NewOrderService(testDB, orderRepo, couponRepo, paymentMethodRepo, shippingRepo, couponService)

	user := &model.User{Email: "buyer@example.com", PasswordHash: "x", Name: "Buyer"}
	require.NoError(t, testDB.Create(user).Error)

	testDB.Create(&model.PaymentMethod{ID: "cod", Name: "Cash on delivery", Type: model.PaymentTypeCOD, IsActive: true})
	testDB.Create(&model.PaymentMethod{ID: "bank_transfer", Name: "Bank transfer", Type: "manual", IsActive: true})
	testDB.Create(&model.ShippingConfig{BaseFee: 30000, FreeShippingThreshold: 500000})

	return orderService, testDB, user
}

func createOrderRequest(cartItemIDs ...uint) CreateOrderRequest {
	return CreateOrderRequest{
		CartItemIDs:     cartItemIDs,
		ShippingName:    "Buyer",
		ShippingAddress: "123 Test Street",
		ShippingPhone:   "0901234567",
		PaymentMethodID: "bank_transfer",
	}
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	orderService, testDB, user := setupOrderServiceTest(t)

	product := &model.Product{Name: "Fog Light", Slug: "fog-light", SKU: "FL-01", Price: 100000, ImageURL: "https://img/fl.jpg"}
	require.NoError(t, testDB.Create(product).Error)

	cartItem := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, testDB.Create(cartItem).Error)

	order, err := orderService.CreateOrder(user.ID, createOrderRequest(cartItem.ID))
	require.NoError(t, err)

	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, float64(200000), order.SubTotal)
	assert.Equal(t, float64(30000), order.ShippingFee)
	assert.Equal(t, float64(0), order.DiscountAmount)
	assert.Equal(t, float64(230000), order.TotalAmount)

	require.Len(t, order.OrderItems, 1)
	item := order.OrderItems[0]
	assert.Equal(t, "Fog Light", item.ProductName)
	assert.Equal(t, "FL-01", item.SKU)
	assert.Equal(t, "https://img/fl.jpg", item.ThumbnailURL)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, float64(100000), item.UnitPrice)
	assert.Equal(t, float64(200000), item.Subtotal)

	// Ordered cart lines are consumed
	var remaining int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&remaining)
	assert.Equal(t, int64(0), remaining)
}

func TestOrderService_CreateOrder_SnapshotsVariantPricing(t *testing.T) {
	orderService, testDB, user := setupOrderServiceTest(t)

	product := &model.Product{Name: "Floor Mat", Slug: "floor-mat", SKU: "FM-00", Price: 100000, ImageURL: "https://img/fm.jpg"}
	require.NoError(t, testDB.Create(product).Error)

	variant := &model.ProductVariant{
		ProductID: product.ID,
		SKU:       "FM-RED",
		Price:     120000,
		SalePrice: 90000,
		Options: []model.VariantOption{
			{AttributeName: "Color", AttributeValue: "Red", AffectsPrice: true},
		},
	}
	require.NoError(t, testDB.Create(variant).Error)

	cartItem := &model.CartItem{UserID: user.ID, ProductID: product.ID, ProductVariantID: &variant.ID, Quantity: 1}
	require.NoError(t, testDB.Create(cartItem).Error)

	order, err := orderService.CreateOrder(user.ID, createOrderRequest(cartItem.ID))
	require.NoError(t, err)

	require.Len(t, order.OrderItems, 1)
	item := order.OrderItems[0]
	assert.Equal(t, "Floor Mat", item.ProductName)
	assert.Equal(t, "Color: Red", item.VariantName)
	assert.Equal(t, "FM-RED", item.SKU)
	assert.Equal(t, float64(90000), item.UnitPrice)
	assert.Equal(t, float64(90000), order.SubTotal)

	// Later catalog changes must not touch the snapshot
	require.NoError(t, testDB.Model(variant).Update("sale_price", 50000).Error)

	var saved model.OrderItem
	require.NoError(t, testDB.First(&saved, item.ID).Error)
	assert.Equal(t, float64(90000), saved.UnitPrice)
}

func TestOrderService_CreateOrder_WithCoupon(t *testing.T) {
	orderService, testDB, user := setupOrderServiceTest(t)

	coupon := &model.Coupon{Code: "SALE10", DiscountType: model.CouponPercent, Amount: 10, MaxDiscount: 15000, IsActive: true, UsageLimit: 5}
	require.NoError(t, testDB.Create(coupon).Error)

	product := &model.Product{Name: "Dash Cam", Slug: "dash-cam", Price: 100000}
	require.NoError(t, testDB.Create(product).Error)

	cartItem := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, testDB.Create(cartItem).Error)

	req := createOrderRequest(cartItem.ID)
	req.CouponCode = "sale10"

	order, err := orderService.CreateOrder(user.ID, req)
	require.NoError(t, err)

	// 10% of 200000 is 20000, capped at 15000
	assert.Equal(t, "SALE10", order.CouponCode)
	assert.Equal(t, float64(15000), order.DiscountAmount)
	assert.Equal(t, float64(200000-15000+30000), order.TotalAmount)

	var saved model.Coupon
	require.NoError(t, testDB.First(&saved, coupon.ID).Error)
	assert.Equal(t, 1, saved.UsageCount)
}

func TestOrderService_CreateOrder_CouponMatchesPreview(t *testing.T) {
	orderService, testDB, user := setupOrderServiceTest(t)

	couponRepo := repository.NewCouponRepository(testDB)
	shippingRepo := repository.NewShippingRepository(testDB)
	couponService := NewCouponService(couponRepo, shippingRepo)

	testDB.Create(&model.Coupon{Code: "FREESHIP", DiscountType: model.CouponFreeShip, IsActive: true})

	product := &model.Product{Name: "Seat Cover", Slug: "seat-cover", Price: 150000}
	require.NoError(t, testDB.Create(product).Error)

	cartItem := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, testDB.Create(cartItem).Error)

	preview, err := couponService.Preview("FREESHIP", 150000)
	require.NoError(t, err)

	req := createOrderRequest(cartItem.ID)
	req.CouponCode = "FREESHIP"

	order, err := orderService.CreateOrder(user.ID, req)
	require.NoError(t, err)

	// The preview quote and the placed order agree on every amount
	assert.Equal(t, preview.DiscountAmount, order.DiscountAmount)
	assert.Equal(t, preview.ShippingFee, order.ShippingFee)
	assert.Equal(t, preview.Total, order.TotalAmount)
}

func TestOrderService_CreateOrder_CouponLastUse(t *testing.T) {
	orderService, testDB, user := setupOrderServiceTest(t)

	coupon := &model.Coupon{Code: "SALE10", DiscountType: model.CouponPercent, Amount: 10, IsActive: true, UsageLimit: 5, UsageCount: 4}
	require.NoError(t, testDB.Create(coupon).Error)

	product := &model.Product{Name: "Roof Rack", Slug: "roof-rack", Price: 100000}
	require.NoError(t, testDB.Create(product).Error)

	first := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, testDB.Create(first).Error)

	req := createOrderRequest(first.ID)
	req.CouponCode = "SALE10"
	_, err := orderService.CreateOrder(user.ID, req)
	require.NoError(t, err)

	var saved model.Coupon
	require.NoError(t, testDB.First(&saved, coupon.ID).Error)
	assert.Equal(t, 5, saved.UsageCount)

	// The limit is spent; the next redemption is rejected
	second := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, testDB.Create(second).Error)

	req = createOrderRequest(second.ID)
	req.CouponCode = "SALE10"
	_, err = orderService.CreateOrder(user.ID, req)
	assert.ErrorIs(t, err, ErrCouponExhausted)

	var orders int64
	testDB.Model(&model.Order{}).Count(&orders)
	assert.Equal(t, int64(1), orders)
}

func TestOrderService_CreateOrder_CouponExhaustedByConcurrentOrder(t *testing.T) {
	orderService, testDB, user := setupOrderServiceTest(t)

	coupon := &model.Coupon{Code: "LAST1", DiscountType: model.CouponFixedCart, Amount: 10000, IsActive: true, UsageLimit: 1}
	require.NoError(t, testDB.Create(coupon).Error)

	product := &model.Product{Name: "Tow Hook", Slug: "tow-hook", Price: 100000}
	require.NoError(t, testDB.Create(product).Error)

	cartItem := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, testDB.Create(cartItem).Error)

	// A competing checkout takes the last use after validation has passed
	// but before the guarded increment runs
	err := testDB.Callback().Create().After("gorm:create").Register("competing_redemption", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*model.Order); ok {
			tx.Session(&gorm.Session{NewDB: true}).Model(&model.Coupon{}).
				Where("id = ?", coupon.ID).
				Update("usage_count", gorm.Expr("usage_count + 1"))
		}
	})
	require.NoError(t, err)

	req := createOrderRequest(cartItem.ID)
	req.CouponCode = "LAST1"
	_, err = orderService.CreateOrder(user.ID, req)
	assert.ErrorIs(t, err, ErrCouponExhausted)

	var orders int64
	testDB.Model(&model.Order{}).Count(&orders)
	assert.Equal(t, int64(0), orders)

	// The competing increment rolled back with the rest of the transaction
	var saved model.Coupon
	require.NoError(t, testDB.First(&saved, coupon.ID).Error)
	assert.Equal(t, 0, saved.UsageCount)

	var remaining int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&remaining)
	assert.Equal(t, int64(1), remaining)
}

func TestOrderService_CreateOrder_CODStartsProcessing(t *testing.T) {
	orderService, testDB, user := setupOrderServiceTest(t)

	product := &model.Product{Name: "Air Freshener", Slug: "air-freshener", Price: 50000}
	require.NoError(t, testDB.Create(product).Error)

	cartItem := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, testDB.Create(cartItem).Error)

	req := createOrderRequest(cartItem.ID)
	req.PaymentMethodID = "cod"

	order, err := orderService.CreateOrder(user.ID, req)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusProcessing, order.Status)
}

func TestOrderService_CreateOrder_ExplicitFeeAndTax(t *testing.T) {
	orderService, testDB, user := setupOrderServiceTest(t)

	product := &model.Product{Name: "Tow Hook", Slug: "tow-hook", Price: 100000}
	require.NoError(t, testDB.Create(product).Error)

	cartItem := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, testDB.Create(cartItem).Error)

	fee := float64(45000)
	req := createOrderRequest(cartItem.ID)
	req.ShippingFee = &fee
	req.TaxAmount = 10000

	// A client-quoted fee replaces the configured flat-fee rule
	order, err := orderService.CreateOrder(user.ID, req)
	require.NoError(t, err)
	assert.Equal(t, float64(45000), order.ShippingFee)
	assert.Equal(t, float64(10000), order.TaxAmount)
	assert.Equal(t, float64(100000+45000+10000), order.TotalAmount)
}

func TestOrderService_CreateOrder_FreeShippingThreshold(t *testing.T) {
	orderService, testDB, user := setupOrderServiceTest(t)

	product := &model.Product{Name: "Roof Rack", Slug: "roof-rack", Price: 600000}
	require.NoError(t, testDB.Create(product).Error)

	cartItem := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, testDB.Create(cartItem).Error)

	order, err := orderService.CreateOrder(user.ID, createOrderRequest(cartItem.ID))
	require.NoError(t, err)
	assert.Equal(t, float64(0), order.ShippingFee)
	assert.Equal(t, float64(600000), order.TotalAmount)
}

func TestOrderService_CreateOrder_StaleSelectionRollsBack(t *testing.T) {
	orderService, testDB, user := setupOrderServiceTest(t)

	product := &model.Product{Name: "Wiper Blade", Slug: "wiper-blade", Price: 80000}
	require.NoError(t, testDB.Create(product).Error)

	cartItem := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, testDB.Create(cartItem).Error)

	_, err := orderService.CreateOrder(user.ID, createOrderRequest(cartItem.ID, 99999))
	assert.ErrorIs(t, err, ErrStaleCartSelection)

	// Nothing is persisted: no order, surviving line untouched
	var orderCount int64
	testDB.Model(&model.Order{}).Count(&orderCount)
	assert.Equal(t, int64(0), orderCount)

	var remaining int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&remaining)
	assert.Equal(t, int64(1), remaining)
}

func TestOrderService_CreateOrder_ForeignCartLineIsStale(t *testing.T) {
	orderService, testDB, user := setupOrderServiceTest(t)

	other := &model.User{Email: "other@example.com", PasswordHash: "x", Name: "Other"}
	require.NoError(t, testDB.Create(other).Error)

	product := &model.Product{Name: "Phone Mount", Slug: "phone-mount", Price: 90000}
	require.NoError(t, testDB.Create(product).Error)

	foreignItem := &model.CartItem{UserID: other.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, testDB.Create(foreignItem).Error)

	_, err := orderService.CreateOrder(user.ID, createOrderRequest(foreignItem.ID))
	assert.ErrorIs(t, err, ErrStaleCartSelection)
}

func TestOrderService_CreateOrder_CouponFailureRollsBack(t *testing.T) {
	orderService, testDB, user := setupOrderServiceTest(t)

	testDB.Create(&model.Coupon{Code: "BIG", DiscountType: model.CouponFixedCart, Amount: 50000, MinSpend: 1000000, IsActive: true})

	product := &model.Product{Name: "Tire Gauge", Slug: "tire-gauge", Price: 60000}
	require.NoError(t, testDB.Create(product).Error)

	cartItem := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, testDB.Create(cartItem).Error)

	req := createOrderRequest(cartItem.ID)
	req.CouponCode = "BIG"

	_, err := orderService.CreateOrder(user.ID, req)
	assert.ErrorIs(t, err, ErrCouponBelowMinSpend)

	var orderCount int64
	testDB.Model(&model.Order{}).Count(&orderCount)
	assert.Equal(t, int64(0), orderCount)

	var remaining int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&remaining)
	assert.Equal(t, int64(1), remaining)
}

func TestOrderService_CreateOrder_InactivePaymentMethod(t *testing.T) {
	orderService, testDB, user := setupOrderServiceTest(t)

	testDB.Create(&model.PaymentMethod{ID: "paused", Name: "Paused", IsActive: false})

	product := &model.Product{Name: "Jump Starter", Slug: "jump-starter", Price: 300000}
	require.NoError(t, testDB.Create(product).Error)

	cartItem := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, testDB.Create(cartItem).Error)

	req := createOrderRequest(cartItem.ID)
	req.PaymentMethodID = "paused"

	_, err := orderService.CreateOrder(user.ID, req)
	assert.ErrorIs(t, err, ErrPaymentMethodNotFound)
}

func TestOrderService_CreateOrder_InactiveShippingPartner(t *testing.T) {
	orderService, testDB, user := setupOrderServiceTest(t)

	partner := &model.ShippingPartner{Name: "Slowpost", Status: model.PartnerInactive}
	require.NoError(t, testDB.Create(partner).Error)

	product := &model.Product{Name: "Car Shampoo", Slug: "car-shampoo", Price: 70000}
	require.NoError(t, testDB.Create(product).Error)

	cartItem := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, testDB.Create(cartItem).Error)

	req := createOrderRequest(cartItem.ID)
	req.ShippingPartnerID = &partner.ID

	_, err := orderService.CreateOrder(user.ID, req)
	assert.ErrorIs(t, err, ErrShippingPartnerNotFound)
}

func TestOrderService_GetOrderByID_OwnershipEnforced(t *testing.T) {
	orderService, testDB, user := setupOrderServiceTest(t)

	product := &model.Product{Name: "Oil Filter", Slug: "oil-filter", Price: 50000}
	require.NoError(t, testDB.Create(product).Error)
	cartItem := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, testDB.Create(cartItem).Error)

	order, err := orderService.CreateOrder(user.ID, createOrderRequest(cartItem.ID))
	require.NoError(t, err)

	_, err = orderService.GetOrderByID(order.ID, user.ID, false)
	assert.NoError(t, err)

	_, err = orderService.GetOrderByID(order.ID, user.ID+1, false)
	assert.ErrorIs(t, err, ErrOrderAccessDenied)

	// Admins bypass the ownership check
	_, err = orderService.GetOrderByID(order.ID, user.ID+1, true)
	assert.NoError(t, err)
}

func TestOrderService_CancelOrder(t *testing.T) {
	orderService, testDB, user := setupOrderServiceTest(t)

	product := &model.Product{Name: "Brake Pad", Slug: "brake-pad", Price: 150000}
	require.NoError(t, testDB.Create(product).Error)
	cartItem := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, testDB.Create(cartItem).Error)

	order, err := orderService.CreateOrder(user.ID, createOrderRequest(cartItem.ID))
	require.NoError(t, err)

	cancelled, err := orderService.CancelOrder(order.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	// A cancelled order cannot be cancelled again
	_, err = orderService.CancelOrder(order.ID, user.ID)
	assert.ErrorIs(t, err, ErrOrderNotCancellable)
}

func TestOrderService_CancelOrder_ShippedIsFinal(t *testing.T) {
	orderService, testDB, user := setupOrderServiceTest(t)

	product := &model.Product{Name: "Spark Plug", Slug: "spark-plug", Price: 40000}
	require.NoError(t, testDB.Create(product).Error)
	cartItem := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, testDB.Create(cartItem).Error)

	order, err := orderService.CreateOrder(user.ID, createOrderRequest(cartItem.ID))
	require.NoError(t, err)

	_, err = orderService.UpdateStatus(order.ID, model.OrderStatusShipped, "TRACK-1")
	require.NoError(t, err)

	_, err = orderService.CancelOrder(order.ID, user.ID)
	assert.ErrorIs(t, err, ErrOrderNotCancellable)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	orderService, testDB, user := setupOrderServiceTest(t)

	product := &model.Product{Name: "Battery", Slug: "battery", Price: 1200000}
	require.NoError(t, testDB.Create(product).Error)
	cartItem := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, testDB.Create(cartItem).Error)

	order, err := orderService.CreateOrder(user.ID, createOrderRequest(cartItem.ID))
	require.NoError(t, err)

	shipped, err := orderService.UpdateStatus(order.ID, model.OrderStatusShipped, "TRACK-42")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, shipped.Status)
	assert.Equal(t, "TRACK-42", shipped.TrackingNumber)

	completed, err := orderService.UpdateStatus(order.ID, model.OrderStatusCompleted, "")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)

	_, err = orderService.UpdateStatus(order.ID, model.OrderStatus("teleported"), "")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestOrderService_UpdateShippingInfo_PendingOnly(t *testing.T) {
	orderService, testDB, user := setupOrderServiceTest(t)

	product := &model.Product{Name: "Headlight", Slug: "headlight", Price: 450000}
	require.NoError(t, testDB.Create(product).Error)
	cartItem := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, testDB.Create(cartItem).Error)

	order, err := orderService.CreateOrder(user.ID, createOrderRequest(cartItem.ID))
	require.NoError(t, err)

	updated, err := orderService.UpdateShippingInfo(order.ID, user.ID, UpdateShippingRequest{
		ShippingName:    "Buyer Two",
		ShippingAddress: "456 Other Street",
		ShippingPhone:   "0907654321",
	})
	require.NoError(t, err)
	assert.Equal(t, "Buyer Two", updated.ShippingName)
	assert.Equal(t, "456 Other Street", updated.ShippingAddress)

	_, err = orderService.UpdateStatus(order.ID, model.OrderStatusShipped, "")
	require.NoError(t, err)

	_, err = orderService.UpdateShippingInfo(order.ID, user.ID, UpdateShippingRequest{
		ShippingName:    "Too Late",
		ShippingAddress: "789 Last Street",
		ShippingPhone:   "0900000000",
	})
	assert.ErrorIs(t, err, ErrOrderNotEditable)
}

func TestOrderService_GetUserOrders_FiltersByStatus(t *testing.T) {
	orderService, testDB, user := setupOrderServiceTest(t)

	product := &model.Product{Name: "Cabin Filter", Slug: "cabin-filter", Price: 90000}
	require.NoError(t, testDB.Create(product).Error)

	for i := 0; i < 3; i++ {
		cartItem := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
		require.NoError(t, testDB.Create(cartItem).Error)
		_, err := orderService.CreateOrder(user.ID, createOrderRequest(cartItem.ID))
		require.NoError(t, err)
	}

	orders, total, err := orderService.GetUserOrders(user.ID, "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, orders, 3)

	cancelled, total, err := orderService.GetUserOrders(user.ID, model.OrderStatusCancelled, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, cancelled)
}
