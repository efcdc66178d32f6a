package converter

import (
	"mediconnect/internal/delivery/dto"
	"mediconnect/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                appointment.ID,
		FullName:          appointment.FullName,
		Email:             appointment.Email,
		Phone:             appointment.Phone,
		DoctorID:          appointment.DoctorID,
		AppointmentTypeID: appointment.AppointmentTypeID,
		Notes:             appointment.Notes,
		Date:              appointment.Date.Format("2006-01-02"),
		Time:              appointment.Time,
		Status:            string(appointment.Status),
		CreatedAt:         appointment.CreatedAt,
		UpdatedAt:         appointment.UpdatedAt,
	}

	// Include catalog info if preloaded
	if appointment.Doctor.ID != "" {
		response.Doctor = DoctorToResponse(&appointment.Doctor)
	}
	if appointment.AppointmentType.ID != "" {
		response.AppointmentType = AppointmentTypeToResponse(&appointment.AppointmentType)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
