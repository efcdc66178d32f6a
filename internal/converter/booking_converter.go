package converter

import (
	"mediconnect/internal/booking"
	"mediconnect/internal/delivery/dto"
	"mediconnect/internal/scheduling"

	"github.com/google/uuid"
)

// DraftToResponse converts a wizard Draft to DraftResponse DTO
func DraftToResponse(draft *booking.Draft) dto.DraftResponse {
	return dto.DraftResponse{
		FullName:          draft.FullName,
		Email:             draft.Email,
		Phone:             draft.Phone,
		DoctorID:          draft.DoctorID,
		AppointmentTypeID: draft.AppointmentTypeID,
		Notes:             draft.Notes,
		Date:              draft.Date,
		Time:              draft.Time,
	}
}

// SessionToResponse converts a session ID and its draft to BookingSessionResponse DTO
func SessionToResponse(sessionID uuid.UUID, draft *booking.Draft) *dto.BookingSessionResponse {
	return &dto.BookingSessionResponse{
		SessionID: sessionID,
		Step:      draft.Step.String(),
		Draft:     DraftToResponse(draft),
	}
}

// DaySlotsToResponse converts a generated slot set to DaySlotsResponse DTO
func DaySlotsToResponse(day scheduling.DaySlots) *dto.DaySlotsResponse {
	response := &dto.DaySlotsResponse{
		Date:           day.Date.Format("2006-01-02"),
		Slots:          make([]dto.SlotResponse, len(day.Slots)),
		WeekendLimited: day.WeekendLimited,
	}

	if day.WeekendLimited {
		response.Advisory = "Weekend hours are limited (9 AM - 12 PM)."
	}

	for i, slot := range day.Slots {
		response.Slots[i] = dto.SlotResponse{Time: slot.Time, Available: slot.Available}
	}

	return response
}
