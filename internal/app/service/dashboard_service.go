package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/app/repository"
	"github.com/haungo2109/be-thamhienmauto/pkg/logger"
	"github.com/haungo2109/be-thamhienmauto/pkg/redis"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 5 * time.Minute
)

var ErrInvalidReportPeriod = errors.New("report period must be week, month or year")

// DashboardStats aggregates storefront counters for the admin home screen.
type DashboardStats struct {
	TotalOrders     int64         `json:"total_orders"`
	PendingOrders   int64         `json:"pending_orders"`
	CompletedOrders int64         `json:"completed_orders"`
	CancelledOrders int64         `json:"cancelled_orders"`
	TotalRevenue    float64       `json:"total_revenue"`
	TotalProducts   int64         `json:"total_products"`
	TotalUsers      int64         `json:"total_users"`
	RecentOrders    []model.Order `json:"recent_orders"`
	GeneratedAt     time.Time     `json:"generated_at"`
}

// RevenueBucket is one time slice of the revenue report.
type RevenueBucket struct {
	Period    string  `json:"period"`
	Orders    int64   `json:"orders"`
	Customers int64   `json:"customers"`
	Revenue   float64 `json:"revenue"`
}

// PaymentMethodShare is the revenue split per payment method.
type PaymentMethodShare struct {
	PaymentMethodID string  `json:"payment_method_id"`
	Orders          int64   `json:"orders"`
	Revenue         float64 `json:"revenue"`
}

// RevenueReport groups fulfilled revenue by period and payment method.
type RevenueReport struct {
	Period         string               `json:"period"`
	Buckets        []RevenueBucket      `json:"buckets"`
	PaymentMethods []PaymentMethodShare `json:"payment_methods"`
	GeneratedAt    time.Time            `json:"generated_at"`
}

type DashboardService interface {
	GetStats(ctx context.Context) (*DashboardStats, error)
	GetRevenueReport(ctx context.Context, period string) (*RevenueReport, error)
	ExportOrders(status model.OrderStatus) (*excelize.File, error)
}

type dashboardService struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
}

func NewDashboardService(db *gorm.DB, orderRepo repository.OrderRepository) DashboardService {
	return &dashboardService{db: db, orderRepo: orderRepo}
}

// GetStats serves the dashboard counters from Redis when a fresh copy
// exists, otherwise recomputes them and refills the cache.
func (s *dashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	var cached DashboardStats
	hit, err := redis.GetJSON(ctx, dashboardCacheKey, &cached)
	if err == nil && hit {
		logger.Debug("Dashboard stats served from cache", nil)
		return &cached, nil
	}

	stats, err := s.computeStats()
	if err != nil {
		return nil, err
	}

	if err := redis.SetJSON(ctx, dashboardCacheKey, stats, dashboardCacheTTL); err != nil {
		logger.Warn("Failed to cache dashboard stats", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return stats, nil
}

func (s *dashboardService) computeStats() (*DashboardStats, error) {
	stats := &DashboardStats{GeneratedAt: time.Now()}

	if err := s.db.Model(&model.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Order{}).
		Where("status = ?", model.OrderStatusPending).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Order{}).
		Where("status = ?", model.OrderStatusCompleted).
		Count(&stats.CompletedOrders).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Order{}).
		Where("status = ?", model.OrderStatusCancelled).
		Count(&stats.CancelledOrders).Error; err != nil {
		return nil, err
	}

	// Revenue counts only orders that reached completion.
	if err := s.db.Model(&model.Order{}).
		Where("status = ?", model.OrderStatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}

	recent, _, err := s.orderRepo.FindWithFilter(repository.OrderFilter{Limit: 10})
	if err != nil {
		return nil, err
	}
	stats.RecentOrders = recent

	return stats, nil
}

// GetRevenueReport groups revenue from completed and shipped orders by the
// requested period. Bucketing runs in Go over a flat projection, so the same
// query works against Postgres and the sqlite test database.
func (s *dashboardService) GetRevenueReport(ctx context.Context, period string) (*RevenueReport, error) {
	switch period {
	case "week", "month", "year":
	default:
		return nil, ErrInvalidReportPeriod
	}

	cacheKey := fmt.Sprintf("dashboard:revenue:%s", period)
	var cached RevenueReport
	hit, err := redis.GetJSON(ctx, cacheKey, &cached)
	if err == nil && hit {
		return &cached, nil
	}

	var rows []struct {
		CreatedAt       time.Time
		TotalAmount     float64
		UserID          uint
		PaymentMethodID string
	}
	if err := s.db.Model(&model.Order{}).
		Select("created_at, total_amount, user_id, payment_method_id").
		Where("status IN ?", []model.OrderStatus{model.OrderStatusCompleted, model.OrderStatusShipped}).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	buckets := make(map[string]*RevenueBucket)
	bucketUsers := make(map[string]map[uint]struct{})
	shares := make(map[string]*PaymentMethodShare)

	for _, row := range rows {
		key := periodKey(row.CreatedAt, period)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &RevenueBucket{Period: key}
			buckets[key] = bucket
			bucketUsers[key] = make(map[uint]struct{})
		}
		bucket.Orders++
		bucket.Revenue += row.TotalAmount
		bucketUsers[key][row.UserID] = struct{}{}

		share, ok := shares[row.PaymentMethodID]
		if !ok {
			share = &PaymentMethodShare{PaymentMethodID: row.PaymentMethodID}
			shares[row.PaymentMethodID] = share
		}
		share.Orders++
		share.Revenue += row.TotalAmount
	}

	report := &RevenueReport{Period: period, GeneratedAt: time.Now()}
	for key, bucket := range buckets {
		bucket.Customers = int64(len(bucketUsers[key]))
		report.Buckets = append(report.Buckets, *bucket)
	}
	sort.Slice(report.Buckets, func(i, j int) bool {
		return report.Buckets[i].Period < report.Buckets[j].Period
	})
	for _, share := range shares {
		report.PaymentMethods = append(report.PaymentMethods, *share)
	}
	sort.Slice(report.PaymentMethods, func(i, j int) bool {
		return report.PaymentMethods[i].Revenue > report.PaymentMethods[j].Revenue
	})

	if err := redis.SetJSON(ctx, cacheKey, report, dashboardCacheTTL); err != nil {
		logger.Warn("Failed to cache revenue report", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return report, nil
}

// periodKey formats a timestamp into its sortable bucket label.
func periodKey(t time.Time, period string) string {
	switch period {
	case "week":
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case "month":
		return t.Format("2006-01")
	default:
		return t.Format("2006")
	}
}

// ExportOrders renders an order listing as a spreadsheet for back-office use.
func (s *dashboardService) ExportOrders(status model.OrderStatus) (*excelize.File, error) {
	orders, _, err := s.orderRepo.FindWithFilter(repository.OrderFilter{Status: status})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Orders"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Order Number", "Status", "Customer", "Phone", "Subtotal",
		"Shipping Fee", "Coupon", "Discount", "Total", "Created At",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, order := range orders {
		values := []interface{}{
			order.OrderNumber,
			string(order.Status),
			order.ShippingName,
			order.ShippingPhone,
			order.SubTotal,
			order.ShippingFee,
			order.CouponCode,
			order.DiscountAmount,
			order.TotalAmount,
			order.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	logger.Info("Exported orders to spreadsheet", map[string]interface{}{
		"count":  len(orders),
		"status": status,
	})
	return f, nil
}

// ExportFilename builds the download name for an order export.
func ExportFilename(status model.OrderStatus) string {
	name := "orders"
	if status != "" {
		name = fmt.Sprintf("orders-%s", status)
	}
	return fmt.Sprintf("%s-%s.xlsx", name, time.Now().Format("20060102"))
}
