package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentType represents a kind of visit a patient can book
type AppointmentType struct {
	ID              string          `gorm:"type:varchar(50);primaryKey" json:"id"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	DurationMinutes int             `gorm:"not null;default:30" json:"duration_minutes"`
	Fee             decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"fee"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AppointmentType) TableName() string {
	return "appointment_types"
}
