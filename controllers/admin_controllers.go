package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sanisidro/restaurant-app/models"
	"github.com/sanisidro/restaurant-app/services"
	"github.com/sanisidro/restaurant-app/utils"
)

type AdminController struct {
	DB           *gorm.DB
	Orders       *services.OrderService
	Reservations *services.ReservationService
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{
		DB:           db,
		Orders:       services.NewOrderService(db),
		Reservations: services.NewReservationService(db),
	}
}

// GetDashboardStats aggregates the counters shown on the admin dashboard.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	role, _ := c.Get("role")
	if role != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	today := time.Now().Format("2006-01-02")

	var stats struct {
		TotalOrders        int64                      `json:"total_orders"`
		TodayOrders        int64                      `json:"today_orders"`
		TodayRevenue       float64                    `json:"today_revenue"`
		OrderStats         *services.OrderStats       `json:"order_stats"`
		ReservationStats   *services.ReservationStats `json:"reservation_stats"`
		TodayReservations  int64                      `json:"today_reservations"`
		AvailableProducts  int64                      `json:"available_products"`
		TotalProducts      int64                      `json:"total_products"`
	}

	ac.DB.Model(&models.Order{}).Count(&stats.TotalOrders)
	ac.DB.Model(&models.Order{}).Where("DATE(ordered_at) = ?", today).Count(&stats.TodayOrders)

	// Delivered orders only; cancelled ones never sold anything
	ac.DB.Model(&models.Order{}).
		Where("status = ? AND DATE(ordered_at) = ?", models.OrderDelivered, today).
		Select("COALESCE(SUM(total), 0)").Row().Scan(&stats.TodayRevenue)

	orderStats, err := ac.Orders.Stats()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	stats.OrderStats = orderStats

	reservationStats, err := ac.Reservations.Stats()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	stats.ReservationStats = reservationStats

	ac.DB.Model(&models.Reservation{}).Where("reservation_date = ?", today).Count(&stats.TodayReservations)
	ac.DB.Model(&models.Product{}).Where("available = ?", true).Count(&stats.AvailableProducts)
	ac.DB.Model(&models.Product{}).Count(&stats.TotalProducts)

	utils.RespondJSON(c, http.StatusOK, "Dashboard statistics", stats)
}
