package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	FullName          string `json:"full_name" validate:"required,min=2"`
	Email             string `json:"email" validate:"required,email"`
	Phone             string `json:"phone" validate:"required"`
	DoctorID          string `json:"doctor_id" validate:"required"`
	AppointmentTypeID string `json:"appointment_type_id" validate:"required"`
	Notes             string `json:"notes" validate:"omitempty"`
	Date              string `json:"date" validate:"required,datefmt"`
	Time              string `json:"time" validate:"required"` // Format: HH:MM
	Status            string `json:"status" validate:"omitempty,oneof=Scheduled Completed Cancelled No-show"`
}

type UpdateAppointmentRequest struct {
	FullName          string  `json:"full_name" validate:"omitempty,min=2"`
	Email             string  `json:"email" validate:"omitempty,email"`
	Phone             string  `json:"phone" validate:"omitempty"`
	DoctorID          string  `json:"doctor_id" validate:"omitempty"`
	AppointmentTypeID string  `json:"appointment_type_id" validate:"omitempty"`
	Notes             *string `json:"notes" validate:"omitempty"`
	Date              string  `json:"date" validate:"omitempty,datefmt"`
	Time              string  `json:"time" validate:"omitempty"` // Format: HH:MM
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Completed Cancelled No-show"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                uuid.UUID                `json:"id"`
	FullName          string                   `json:"full_name"`
	Email             string                   `json:"email"`
	Phone             string                   `json:"phone"`
	DoctorID          string                   `json:"doctor_id"`
	Doctor            *DoctorResponse          `json:"doctor,omitempty"`
	AppointmentTypeID string                   `json:"appointment_type_id"`
	AppointmentType   *AppointmentTypeResponse `json:"appointment_type,omitempty"`
	Notes             string                   `json:"notes"`
	Date              string                   `json:"date"`
	Time              string                   `json:"time"`
	Status            string                   `json:"status"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int64                 `json:"total"`
}
