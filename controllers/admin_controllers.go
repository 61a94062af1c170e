package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lam3a/rush-backend/models"
	"github.com/lam3a/rush-backend/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats aggregates the numbers the admin landing page shows:
// today's order count and revenue, pending backlog, a status histogram, and
// the active worker headcount.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var todayOrders int64
	ac.DB.Model(&models.Order{}).Where("created_at >= ?", startOfDay).Count(&todayOrders)

	var todayRevenue float64
	ac.DB.Model(&models.Order{}).
		Where("created_at >= ? AND status = ?", startOfDay, models.StatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Row().Scan(&todayRevenue)

	var pendingOrders int64
	ac.DB.Model(&models.Order{}).Where("status = ?", models.StatusPending).Count(&pendingOrders)

	type statusRow struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var byStatus []statusRow
	if err := ac.DB.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var activeWorkers int64
	ac.DB.Model(&models.Worker{}).Where("is_active = ?", true).Count(&activeWorkers)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", gin.H{
		"today_orders":   todayOrders,
		"today_revenue":  todayRevenue,
		"pending_orders": pendingOrders,
		"by_status":      byStatus,
		"active_workers": activeWorkers,
	})
}

// ExportOrders streams the order book as CSV. Optional from/to query params
// (YYYY-MM-DD) bound the creation-date range.
func (ac *AdminController) ExportOrders(c *gin.Context) {
	query := ac.DB.Model(&models.Order{}).Preload("Worker").Order("created_at DESC")

	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("created_at >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("created_at < ?", t.AddDate(0, 0, 1))
		}
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=orders_%s.csv", time.Now().Format("2006-01-02")))

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	w.Write([]string{"order_id", "customer_id", "status", "total", "payment_method", "payment_status", "worker", "preferred_date", "created_at"})
	for _, o := range orders {
		workerName := ""
		if o.Worker != nil {
			workerName = o.Worker.FullName
		}
		w.Write([]string{
			o.ID,
			fmt.Sprintf("%d", o.UserID),
			string(o.Status),
			utils.FormatPrice(o.TotalAmount),
			o.PaymentMethod,
			o.PaymentStatus,
			workerName,
			o.PreferredDate,
			o.CreatedAt.Format(time.RFC3339),
		})
	}
}

// GetOrderHistory returns the append-only status trail for one order.
func (ac *AdminController) GetOrderHistory(c *gin.Context) {
	orderID := c.Param("order_id")

	var history []models.OrderStatusHistory
	if err := ac.DB.Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&history).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order history", history)
}
