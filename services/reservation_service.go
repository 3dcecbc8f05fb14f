package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sanisidro/restaurant-app/models"
	"github.com/sanisidro/restaurant-app/utils"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	minPartySize = 1
	maxPartySize = 20

	// Every confirmed or occupied reservation blocks its table for this long.
	occupancyMinutes = 120

	openingMinute = 11 * 60 // 11:00
	closingMinute = 23 * 60 // 23:00
)

// TransitionReservation applies a status change to a reservation value.
// Completed and cancelled reservations are terminal; moving them to the same
// state is a no-op success.
func TransitionReservation(r *models.Reservation, newStatus models.ReservationStatus) error {
	if newStatus == "" || !newStatus.Valid() {
		return &utils.InvalidTransitionError{From: string(r.Status), To: string(newStatus)}
	}

	if r.Status.IsTerminal() && newStatus != r.Status {
		return &utils.InvalidTransitionError{From: string(r.Status), To: string(newStatus)}
	}

	r.Status = newStatus
	return nil
}

// AssignTable sets the table number and auto-confirms a pending reservation.
func AssignTable(r *models.Reservation, tableNumber int) error {
	if tableNumber < 1 {
		return utils.NewValidationError("table number must be at least 1")
	}

	r.TableNumber = &tableNumber

	if r.Status == models.ReservationPending {
		r.Status = models.ReservationConfirmed
	}
	return nil
}

type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

type ReservationInput struct {
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	PartySize       int    `json:"party_size"`
	Notes           string `json:"notes"`
}

// ReservationStats counts reservations per lifecycle state.
type ReservationStats struct {
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Occupied  int64 `json:"occupied"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
	NoShow    int64 `json:"no_show"`
	Total     int64 `json:"total"`
}

// Create validates the request against operating hours and persists a pending
// reservation.
func (s *ReservationService) Create(input ReservationInput) (*models.Reservation, error) {
	if err := requireText("customer name", input.CustomerName, 100); err != nil {
		return nil, err
	}
	if err := validateContact(input.CustomerEmail, input.CustomerPhone); err != nil {
		return nil, err
	}
	if input.PartySize < minPartySize || input.PartySize > maxPartySize {
		return nil, utils.NewValidationError("party size must be between %d and %d", minPartySize, maxPartySize)
	}
	if len(input.Notes) > 500 {
		return nil, utils.NewValidationError("notes cannot exceed 500 characters")
	}

	date, err := time.Parse(dateLayout, input.ReservationDate)
	if err != nil {
		return nil, utils.NewValidationError("invalid reservation date, expected YYYY-MM-DD")
	}
	today, _ := time.Parse(dateLayout, time.Now().Format(dateLayout))
	if !date.After(today) {
		return nil, utils.NewValidationError("reservation date must be in the future")
	}

	minute, err := minuteOfDay(input.ReservationTime)
	if err != nil {
		return nil, err
	}
	if minute < openingMinute || minute > closingMinute {
		return nil, utils.NewValidationError("reservation time must be between 11:00 and 23:00")
	}

	reservation := models.Reservation{
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		ReservationDate: input.ReservationDate,
		ReservationTime: input.ReservationTime,
		PartySize:       input.PartySize,
		Status:          models.ReservationPending,
		Notes:           input.Notes,
	}

	if err := s.DB.Create(&reservation).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %d created for %s on %s %s (party of %d)",
		reservation.ID, reservation.CustomerName,
		reservation.ReservationDate, reservation.ReservationTime, reservation.PartySize)
	return &reservation, nil
}

func (s *ReservationService) GetByID(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reservation %d: %w", id, utils.ErrNotFound)
		}
		return nil, err
	}
	return &reservation, nil
}

func (s *ReservationService) ChangeStatus(id uint, newStatus models.ReservationStatus) (*models.Reservation, error) {
	reservation, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	previous := reservation.Status
	if err := TransitionReservation(reservation, newStatus); err != nil {
		return nil, err
	}

	if err := s.DB.Save(reservation).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %d moved from %s to %s", reservation.ID, previous, reservation.Status)
	return reservation, nil
}

// AssignTable persists a table assignment, auto-confirming pending
// reservations.
func (s *ReservationService) AssignTable(id uint, tableNumber int) (*models.Reservation, error) {
	reservation, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := AssignTable(reservation, tableNumber); err != nil {
		return nil, err
	}

	if err := s.DB.Save(reservation).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %d assigned to table %d (status %s)",
		reservation.ID, tableNumber, reservation.Status)
	return reservation, nil
}

// CheckAvailability reports whether the requested date/time slot is free.
// A confirmed or occupied reservation blocks [start, start+2h); two slots
// conflict iff their windows overlap.
//
// When tableNumber is nil the check counts conflicting reservations across
// every table.
// TODO: confirm with the owners whether a request without a table number
// should really conflict with reservations on all tables, or only signal
// that some table is taken at that slot.
func (s *ReservationService) CheckAvailability(tableNumber *int, date, timeStr string) (bool, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return false, utils.NewValidationError("invalid date, expected YYYY-MM-DD")
	}
	requestedStart, err := minuteOfDay(timeStr)
	if err != nil {
		return false, err
	}
	requestedEnd := requestedStart + occupancyMinutes

	query := s.DB.Where("reservation_date = ? AND status IN ?", date,
		[]models.ReservationStatus{models.ReservationConfirmed, models.ReservationOccupied})
	if tableNumber != nil {
		query = query.Where("table_number = ?", *tableNumber)
	}

	var reservations []models.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		return false, err
	}

	for _, r := range reservations {
		start, err := minuteOfDay(r.ReservationTime)
		if err != nil {
			continue
		}
		end := start + occupancyMinutes
		if start < requestedEnd && requestedStart < end {
			return false, nil
		}
	}
	return true, nil
}

// ListByDate returns reservations for one date ordered by time of day.
func (s *ReservationService) ListByDate(date string) ([]models.Reservation, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, utils.NewValidationError("invalid date, expected YYYY-MM-DD")
	}
	var reservations []models.Reservation
	err := s.DB.Where("reservation_date = ?", date).
		Order("reservation_time asc").
		Find(&reservations).Error
	return reservations, err
}

// ListActive returns confirmed and occupied reservations from today onward.
func (s *ReservationService) ListActive() ([]models.Reservation, error) {
	today := time.Now().Format(dateLayout)
	var reservations []models.Reservation
	err := s.DB.Where("status IN ? AND reservation_date >= ?",
		[]models.ReservationStatus{models.ReservationConfirmed, models.ReservationOccupied}, today).
		Order("reservation_date asc, reservation_time asc").
		Find(&reservations).Error
	return reservations, err
}

func (s *ReservationService) ListByDateRange(start, end string) ([]models.Reservation, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil, utils.NewValidationError("invalid start date, expected YYYY-MM-DD")
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil, utils.NewValidationError("invalid end date, expected YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		return nil, utils.NewValidationError("end date must not be before start date")
	}

	var reservations []models.Reservation
	err = s.DB.Where("reservation_date BETWEEN ? AND ?", start, end).
		Order("reservation_date asc, reservation_time asc").
		Find(&reservations).Error
	return reservations, err
}

func (s *ReservationService) SearchByCustomer(term string) ([]models.Reservation, error) {
	if err := requireText("search term", term, 100); err != nil {
		return nil, err
	}
	pattern := "%" + term + "%"
	var reservations []models.Reservation
	err := s.DB.Where("LOWER(customer_name) LIKE LOWER(?) OR customer_phone LIKE ?", pattern, pattern).
		Order("reservation_date desc").
		Find(&reservations).Error
	return reservations, err
}

// OccupiedTables lists the table numbers taken at an exact date and time.
func (s *ReservationService) OccupiedTables(date, timeStr string) ([]int, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, utils.NewValidationError("invalid date, expected YYYY-MM-DD")
	}
	if _, err := minuteOfDay(timeStr); err != nil {
		return nil, err
	}

	var tables []int
	err := s.DB.Model(&models.Reservation{}).
		Distinct("table_number").
		Where("reservation_date = ? AND reservation_time = ? AND status IN ? AND table_number IS NOT NULL",
			date, timeStr,
			[]models.ReservationStatus{models.ReservationConfirmed, models.ReservationOccupied}).
		Pluck("table_number", &tables).Error
	return tables, err
}

func (s *ReservationService) Stats() (*ReservationStats, error) {
	var stats ReservationStats
	counts := map[models.ReservationStatus]*int64{
		models.ReservationPending:   &stats.Pending,
		models.ReservationConfirmed: &stats.Confirmed,
		models.ReservationOccupied:  &stats.Occupied,
		models.ReservationCompleted: &stats.Completed,
		models.ReservationCancelled: &stats.Cancelled,
		models.ReservationNoShow:    &stats.NoShow,
	}
	for status, dest := range counts {
		if err := s.DB.Model(&models.Reservation{}).Where("status = ?", status).Count(dest).Error; err != nil {
			return nil, err
		}
	}
	stats.Total = stats.Pending + stats.Confirmed + stats.Occupied +
		stats.Completed + stats.Cancelled + stats.NoShow
	return &stats, nil
}

// minuteOfDay parses "HH:MM" into minutes since midnight.
func minuteOfDay(timeStr string) (int, error) {
	t, err := time.Parse(timeLayout, timeStr)
	if err != nil {
		return 0, utils.NewValidationError("invalid time, expected HH:MM")
	}
	return t.Hour()*60 + t.Minute(), nil
}
