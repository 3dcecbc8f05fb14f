package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sanisidro/restaurant-app/models"
	"github.com/sanisidro/restaurant-app/services"
	"github.com/sanisidro/restaurant-app/utils"
)

type OrderController struct {
	Service *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{Service: services.NewOrderService(db)}
}

// GetAllOrders -> list orders with their items
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.Service.DB.Preload("Items").Order("ordered_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// CreateOrder -> new order in PENDING with captured unit prices
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var input services.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.Create(input)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByID -> detail of one order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid order id"))
		return
	}

	order, err := oc.Service.GetByID(uint(id))
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetOrderByNumber -> lookup by the public PED number
func (oc *OrderController) GetOrderByNumber(c *gin.Context) {
	order, err := oc.Service.GetByNumber(c.Param("order_number"))
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> staff/admin move an order through its lifecycle
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid order id"))
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.ChangeStatus(uint(id), req.Status)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// UpdateItemQuantity -> change one line item, subtotal and order total follow
func (oc *OrderController) UpdateItemQuantity(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid item id"))
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := oc.Service.ChangeItemQuantity(uint(itemID), req.Quantity)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item quantity updated", item)
}

// GetTodayOrders -> orders placed today
func (oc *OrderController) GetTodayOrders(c *gin.Context) {
	orders, err := oc.Service.ListToday()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders of the day", orders)
}

// GetActiveOrders -> pending + in-preparation queue for the kitchen
func (oc *OrderController) GetActiveOrders(c *gin.Context) {
	orders, err := oc.Service.ListActive()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active orders", orders)
}

// GetOrdersByStatus -> ?status=PENDING etc.
func (oc *OrderController) GetOrdersByStatus(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))
	orders, err := oc.Service.ListByStatus(status)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders by status", orders)
}

// GetOrdersByDateRange -> ?start=...&end=... (RFC3339)
func (oc *OrderController) GetOrdersByDateRange(c *gin.Context) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid start, expected RFC3339"))
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid end, expected RFC3339"))
		return
	}

	orders, err := oc.Service.ListByDateRange(start, end)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders in range", orders)
}

// SearchOrders -> ?q= customer name or phone
func (oc *OrderController) SearchOrders(c *gin.Context) {
	orders, err := oc.Service.SearchByCustomer(c.Query("q"))
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders matching customer", orders)
}

// GetOrderStats -> counts per status
func (oc *OrderController) GetOrderStats(c *gin.Context) {
	stats, err := oc.Service.Stats()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order statistics", stats)
}
