package service

import (
	"context"
	"testing"
	"time"

	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/app/repository"
	"github.com/haungo2109/be-thamhienmauto/internal/db"
	"github.com/haungo2109/be-thamhienmauto/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDashboardServiceTest(t *testing.T) (DashboardService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	return NewDashboardService(testDB, orderRepo), testDB
}

func seedDashboardOrder(t *testing.T, testDB *gorm.DB, userID uint, status model.OrderStatus, total float64, paymentMethodID string, createdAt time.Time) {
	t.Helper()
	order := &model.Order{
		UserID:          userID,
		OrderNumber:     util.GenerateOrderNumber(),
		Status:          status,
		SubTotal:        total,
		TotalAmount:     total,
		ShippingName:    "Test",
		ShippingAddress: "Addr",
		ShippingPhone:   "0900000000",
		PaymentMethodID: paymentMethodID,
	}
	require.NoError(t, testDB.Create(order).Error)
	require.NoError(t, testDB.Model(order).Update("created_at", createdAt).Error)
}

func TestDashboardService_GetStats(t *testing.T) {
	dashboardService, testDB := setupDashboardServiceTest(t)

	user := &model.User{Email: "stats@example.com", PasswordHash: "x", Name: "Stats"}
	require.NoError(t, testDB.Create(user).Error)
	require.NoError(t, testDB.Create(&model.Product{Name: "P", Slug: "p", Price: 1}).Error)

	now := time.Now()
	seedDashboardOrder(t, testDB, user.ID, model.OrderStatusPending, 100000, "cod", now)
	seedDashboardOrder(t, testDB, user.ID, model.OrderStatusCompleted, 200000, "cod", now)
	seedDashboardOrder(t, testDB, user.ID, model.OrderStatusCancelled, 300000, "bank_transfer", now)

	stats, err := dashboardService.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.PendingOrders)
	assert.Equal(t, int64(1), stats.CompletedOrders)
	assert.Equal(t, int64(1), stats.CancelledOrders)
	assert.Equal(t, float64(200000), stats.TotalRevenue)
	assert.Equal(t, int64(1), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Len(t, stats.RecentOrders, 3)
}

func TestDashboardService_GetRevenueReport_GroupsByMonth(t *testing.T) {
	dashboardService, testDB := setupDashboardServiceTest(t)

	alice := &model.User{Email: "alice@example.com", PasswordHash: "x", Name: "Alice"}
	bob := &model.User{Email: "bob@example.com", PasswordHash: "x", Name: "Bob"}
	require.NoError(t, testDB.Create(alice).Error)
	require.NoError(t, testDB.Create(bob).Error)

	january := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	february := time.Date(2026, 2, 5, 12, 0, 0, 0, time.UTC)

	seedDashboardOrder(t, testDB, alice.ID, model.OrderStatusCompleted, 100000, "cod", january)
	seedDashboardOrder(t, testDB, bob.ID, model.OrderStatusShipped, 200000, "bank_transfer", january)
	seedDashboardOrder(t, testDB, alice.ID, model.OrderStatusCompleted, 50000, "cod", february)
	// Pending and cancelled orders never count as revenue
	seedDashboardOrder(t, testDB, alice.ID, model.OrderStatusPending, 999999, "cod", february)
	seedDashboardOrder(t, testDB, bob.ID, model.OrderStatusCancelled, 999999, "cod", february)

	report, err := dashboardService.GetRevenueReport(context.Background(), "month")
	require.NoError(t, err)

	require.Len(t, report.Buckets, 2)
	assert.Equal(t, "2026-01", report.Buckets[0].Period)
	assert.Equal(t, int64(2), report.Buckets[0].Orders)
	assert.Equal(t, int64(2), report.Buckets[0].Customers)
	assert.Equal(t, float64(300000), report.Buckets[0].Revenue)

	assert.Equal(t, "2026-02", report.Buckets[1].Period)
	assert.Equal(t, int64(1), report.Buckets[1].Orders)
	assert.Equal(t, int64(1), report.Buckets[1].Customers)
	assert.Equal(t, float64(50000), report.Buckets[1].Revenue)

	// Payment split sorted by revenue descending
	require.Len(t, report.PaymentMethods, 2)
	assert.Equal(t, "bank_transfer", report.PaymentMethods[0].PaymentMethodID)
	assert.Equal(t, float64(200000), report.PaymentMethods[0].Revenue)
	assert.Equal(t, "cod", report.PaymentMethods[1].PaymentMethodID)
	assert.Equal(t, float64(150000), report.PaymentMethods[1].Revenue)
}

func TestDashboardService_GetRevenueReport_InvalidPeriod(t *testing.T) {
	dashboardService, _ := setupDashboardServiceTest(t)

	_, err := dashboardService.GetRevenueReport(context.Background(), "decade")
	assert.ErrorIs(t, err, ErrInvalidReportPeriod)
}

func TestDashboardService_ExportOrders(t *testing.T) {
	dashboardService, testDB := setupDashboardServiceTest(t)

	user := &model.User{Email: "export@example.com", PasswordHash: "x", Name: "Export"}
	require.NoError(t, testDB.Create(user).Error)
	seedDashboardOrder(t, testDB, user.ID, model.OrderStatusCompleted, 150000, "cod", time.Now())

	file, err := dashboardService.ExportOrders("")
	require.NoError(t, err)

	rows, err := file.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 2) // header + one order
	assert.Equal(t, "Order Number", rows[0][0])
	assert.Equal(t, "completed", rows[1][1])
}
