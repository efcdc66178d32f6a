package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type SubmitContactRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type SubmitSelectionRequest struct {
	DoctorID          string `json:"doctor_id"`
	AppointmentTypeID string `json:"appointment_type_id"`
	Notes             string `json:"notes"`
}

type SubmitScheduleRequest struct {
	Date string `json:"date" validate:"required,datefmt"`
	Time string `json:"time" validate:"required,slottime"`
}

// Response DTOs

type BookingSessionResponse struct {
	SessionID uuid.UUID     `json:"session_id"`
	Step      string        `json:"step"`
	Draft     DraftResponse `json:"draft"`
}

type DraftResponse struct {
	FullName          string `json:"full_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	DoctorID          string `json:"doctor_id"`
	AppointmentTypeID string `json:"appointment_type_id"`
	Notes             string `json:"notes"`
	Date              string `json:"date"`
	Time              string `json:"time"`
}

type BookingConfirmationResponse struct {
	SessionID   uuid.UUID            `json:"session_id"`
	Step        string               `json:"step"`
	Draft       DraftResponse        `json:"draft"`
	Appointment *AppointmentResponse `json:"appointment"`
}

// SessionSlotsResponse pairs a slot query with the session's (possibly
// reselected) time so the client can render the picker in one round trip.
type SessionSlotsResponse struct {
	SessionID    uuid.UUID        `json:"session_id"`
	SelectedTime string           `json:"selected_time"`
	Day          DaySlotsResponse `json:"day"`
}

type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type DaySlotsResponse struct {
	Date           string         `json:"date"`
	Slots          []SlotResponse `json:"slots"`
	WeekendLimited bool           `json:"weekend_limited"`
	Advisory       string         `json:"advisory,omitempty"`
}
