package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "No-show"
)

// IsValid reports whether the status is one of the known values
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted,
		AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// Appointment represents a booked patient visit
type Appointment struct {
	ID                uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName          string            `gorm:"type:varchar(255);not null" json:"full_name"`
	Email             string            `gorm:"type:varchar(255);not null" json:"email"`
	Phone             string            `gorm:"type:varchar(50);not null" json:"phone"`
	DoctorID          string            `gorm:"type:varchar(50);not null;index" json:"doctor_id"`
	AppointmentTypeID string            `gorm:"type:varchar(50);not null;index" json:"appointment_type_id"`
	Notes             string            `gorm:"type:text" json:"notes"`
	Date              time.Time         `gorm:"type:date;not null;index" json:"date"`
	Time              string            `gorm:"type:varchar(5);not null" json:"time"`
	Status            AppointmentStatus `gorm:"type:varchar(20);not null;default:'Scheduled';index" json:"status"`
	CreatedAt         time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor          Doctor          `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	AppointmentType AppointmentType `gorm:"foreignKey:AppointmentTypeID" json:"appointment_type,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsScheduled checks if the appointment is still upcoming
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// IsCancelled checks if the appointment was cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// CanTransitionTo reports whether the appointment may move to the given status.
// Only scheduled appointments can be completed, cancelled or marked no-show.
func (a *Appointment) CanTransitionTo(status AppointmentStatus) bool {
	if !status.IsValid() || status == AppointmentStatusScheduled {
		return false
	}
	return a.Status == AppointmentStatusScheduled
}
