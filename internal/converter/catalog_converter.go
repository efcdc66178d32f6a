package converter

import (
	"mediconnect/internal/delivery/dto"
	"mediconnect/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:        doctor.ID,
		Name:      doctor.Name,
		Specialty: doctor.Specialty,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		responses[i] = *DoctorToResponse(&doctor)
	}
	return responses
}

// AppointmentTypeToResponse converts an AppointmentType entity to AppointmentTypeResponse DTO
func AppointmentTypeToResponse(appointmentType *entity.AppointmentType) *dto.AppointmentTypeResponse {
	if appointmentType == nil {
		return nil
	}

	return &dto.AppointmentTypeResponse{
		ID:              appointmentType.ID,
		Name:            appointmentType.Name,
		DurationMinutes: appointmentType.DurationMinutes,
		Fee:             appointmentType.Fee,
	}
}

// AppointmentTypesToResponses converts a slice of AppointmentType entities to slice of AppointmentTypeResponse DTOs
func AppointmentTypesToResponses(types []entity.AppointmentType) []dto.AppointmentTypeResponse {
	responses := make([]dto.AppointmentTypeResponse, len(types))
	for i, appointmentType := range types {
		responses[i] = *AppointmentTypeToResponse(&appointmentType)
	}
	return responses
}
