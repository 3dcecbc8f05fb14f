package models

import "time"

// Reservation keeps date and time as separate columns ("2006-01-02" and
// "15:04") so slot queries stay portable across MySQL and SQLite.
type Reservation struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	CustomerName    string            `gorm:"type:varchar(100);not null" json:"customer_name"`
	CustomerEmail   string            `gorm:"type:varchar(100)" json:"customer_email,omitempty"`
	CustomerPhone   string            `gorm:"type:varchar(15)" json:"customer_phone,omitempty"`
	ReservationDate string            `gorm:"type:varchar(10);not null;index" json:"reservation_date"`
	ReservationTime string            `gorm:"type:varchar(5);not null" json:"reservation_time"`
	PartySize       int               `gorm:"not null" json:"party_size"`
	Status          ReservationStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	TableNumber     *int              `json:"table_number,omitempty"`
	Notes           string            `gorm:"type:varchar(500)" json:"notes,omitempty"`
	CreatedAt       time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"not null" json:"updated_at"`
}

func (r *Reservation) StatusLabel() string {
	return r.Status.Label()
}

// IsForToday reports whether the reservation falls on the current date.
func (r *Reservation) IsForToday() bool {
	return r.ReservationDate == time.Now().Format("2006-01-02")
}
