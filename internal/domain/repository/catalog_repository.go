package repository

import (
	"context"

	"mediconnect/internal/domain/entity"
)

type DoctorRepository interface {
	FindAll(ctx context.Context) ([]entity.Doctor, error)
	FindByID(ctx context.Context, id string) (*entity.Doctor, error)
}

type AppointmentTypeRepository interface {
	FindAll(ctx context.Context) ([]entity.AppointmentType, error)
	FindByID(ctx context.Context, id string) (*entity.AppointmentType, error)
}
