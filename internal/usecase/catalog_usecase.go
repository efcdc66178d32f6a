package usecase

import (
	"context"

	"mediconnect/internal/converter"
	"mediconnect/internal/delivery/dto"
	"mediconnect/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// CatalogUsecase serves the read-only reference data the booking wizard
// renders its pickers from.
type CatalogUsecase interface {
	GetDoctors(ctx context.Context) ([]dto.DoctorResponse, error)
	GetAppointmentTypes(ctx context.Context) ([]dto.AppointmentTypeResponse, error)
}

type catalogUsecase struct {
	log        *logrus.Logger
	doctorRepo repository.DoctorRepository
	typeRepo   repository.AppointmentTypeRepository
}

func NewCatalogUsecase(log *logrus.Logger, doctorRepo repository.DoctorRepository, typeRepo repository.AppointmentTypeRepository) CatalogUsecase {
	return &catalogUsecase{
		log:        log,
		doctorRepo: doctorRepo,
		typeRepo:   typeRepo,
	}
}

func (u *catalogUsecase) GetDoctors(ctx context.Context) ([]dto.DoctorResponse, error) {
	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	return converter.DoctorsToResponses(doctors), nil
}

func (u *catalogUsecase) GetAppointmentTypes(ctx context.Context) ([]dto.AppointmentTypeResponse, error) {
	types, err := u.typeRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find appointment types: %+v", err)
		return nil, err
	}

	return converter.AppointmentTypesToResponses(types), nil
}
