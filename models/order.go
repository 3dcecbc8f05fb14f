package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrderNumber   string          `gorm:"type:varchar(20);not null;uniqueIndex" json:"order_number"`
	CustomerName  string          `gorm:"type:varchar(100);not null" json:"customer_name"`
	CustomerEmail string          `gorm:"type:varchar(100)" json:"customer_email,omitempty"`
	CustomerPhone string          `gorm:"type:varchar(15)" json:"customer_phone,omitempty"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	TableNumber   *int            `json:"table_number,omitempty"`
	Notes         string          `gorm:"type:varchar(500)" json:"notes,omitempty"`
	OrderedAt     time.Time       `gorm:"not null" json:"ordered_at"`
	DeliveredAt   *time.Time      `json:"delivered_at,omitempty"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}

// StatusLabel exposes the display text for responses.
func (o *Order) StatusLabel() string {
	return o.Status.Label()
}
