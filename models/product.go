package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(100);not null" json:"name"`
	Description string          `gorm:"type:varchar(500);not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL    *string         `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	Category    string          `gorm:"type:varchar(50);not null" json:"category"`
	Available   bool            `gorm:"not null;default:true" json:"available"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

// IsAvailable reports whether the product may be added to new orders.
func (p *Product) IsAvailable() bool {
	return p != nil && p.Available
}
