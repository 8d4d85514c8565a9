package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/app/service"
	apperr "github.com/haungo2109/be-thamhienmauto/internal/errors"
	"github.com/haungo2109/be-thamhienmauto/internal/middleware"
)

type DashboardController struct {
	dashboardService service.DashboardService
}

func NewDashboardController(dashboardService service.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetStats returns aggregate store counters (admin)
// GET /api/v1/admin/dashboard
func (ctrl *DashboardController) GetStats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stats, err := ctrl.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		log.Error("Failed to compute dashboard stats", err, nil)
		apperr.InternalError(c, "Failed to fetch dashboard stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetRevenueReport returns revenue grouped by period (admin)
// GET /api/v1/admin/dashboard/revenue?period=month
func (ctrl *DashboardController) GetRevenueReport(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	period := c.DefaultQuery("period", "month")
	report, err := ctrl.dashboardService.GetRevenueReport(c.Request.Context(), period)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReportPeriod) {
			apperr.BadRequest(c, apperr.ValidationInvalidRange, err.Error())
			return
		}
		log.Error("Failed to compute revenue report", err, map[string]interface{}{
			"period": period,
		})
		apperr.InternalError(c, "Failed to fetch revenue report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportOrders streams an XLSX order report (admin)
// GET /api/v1/admin/dashboard/orders/export
func (ctrl *DashboardController) ExportOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	status := model.OrderStatus(c.Query("status"))
	file, err := ctrl.dashboardService.ExportOrders(status)
	if err != nil {
		log.Error("Failed to export orders", err, map[string]interface{}{
			"status": status,
		})
		apperr.InternalError(c, "Failed to export orders")
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+service.ExportFilename(status))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		log.Error("Failed to stream order export", err, nil)
	}
}
