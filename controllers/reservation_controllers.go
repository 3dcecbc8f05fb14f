package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sanisidro/restaurant-app/models"
	"github.com/sanisidro/restaurant-app/services"
	"github.com/sanisidro/restaurant-app/utils"
)

type ReservationController struct {
	Service *services.ReservationService
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{Service: services.NewReservationService(db)}
}

// GetAllReservations -> full list, newest dates first
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	var reservations []models.Reservation
	err := rc.Service.DB.Order("reservation_date desc, reservation_time asc").Find(&reservations).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// CreateReservation -> new PENDING reservation after hours/date validation
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var input services.ReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Service.Create(input)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
}

func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("reservation_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid reservation id"))
		return
	}

	reservation, err := rc.Service.GetByID(uint(id))
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation detail", reservation)
}

// UpdateReservationStatus -> confirm, occupy, complete, cancel or no-show
func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("reservation_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid reservation id"))
		return
	}

	var req struct {
		Status models.ReservationStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Service.ChangeStatus(uint(id), req.Status)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation status updated", reservation)
}

// AssignTable -> set table number, pending reservations auto-confirm
func (rc *ReservationController) AssignTable(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("reservation_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid reservation id"))
		return
	}

	var req struct {
		TableNumber int `json:"table_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Service.AssignTable(uint(id), req.TableNumber)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table assigned", reservation)
}

// CheckAvailability -> ?date=YYYY-MM-DD&time=HH:MM[&table=N]
func (rc *ReservationController) CheckAvailability(c *gin.Context) {
	var tableNumber *int
	if raw := c.Query("table"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid table number"))
			return
		}
		tableNumber = &n
	}

	available, err := rc.Service.CheckAvailability(tableNumber, c.Query("date"), c.Query("time"))
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Availability checked", gin.H{
		"available": available,
	})
}

// GetReservationsByDate -> ?date=YYYY-MM-DD
func (rc *ReservationController) GetReservationsByDate(c *gin.Context) {
	reservations, err := rc.Service.ListByDate(c.Query("date"))
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservations by date", reservations)
}

// GetActiveReservations -> confirmed/occupied from today onward
func (rc *ReservationController) GetActiveReservations(c *gin.Context) {
	reservations, err := rc.Service.ListActive()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active reservations", reservations)
}

// GetReservationsByDateRange -> ?start=YYYY-MM-DD&end=YYYY-MM-DD
func (rc *ReservationController) GetReservationsByDateRange(c *gin.Context) {
	reservations, err := rc.Service.ListByDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservations in range", reservations)
}

// SearchReservations -> ?q= customer name or phone
func (rc *ReservationController) SearchReservations(c *gin.Context) {
	reservations, err := rc.Service.SearchByCustomer(c.Query("q"))
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservations matching customer", reservations)
}

// GetOccupiedTables -> ?date=YYYY-MM-DD&time=HH:MM
func (rc *ReservationController) GetOccupiedTables(c *gin.Context) {
	tables, err := rc.Service.OccupiedTables(c.Query("date"), c.Query("time"))
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Occupied tables", tables)
}

// GetReservationStats -> counts per status
func (rc *ReservationController) GetReservationStats(c *gin.Context) {
	stats, err := rc.Service.Stats()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation statistics", stats)
}
