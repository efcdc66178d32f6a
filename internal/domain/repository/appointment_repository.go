package repository

import (
	"context"
	"time"

	"mediconnect/internal/domain/entity"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindAll(ctx context.Context, status entity.AppointmentStatus, limit, offset int) ([]entity.Appointment, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	Update(ctx context.Context, appointment *entity.Appointment) error
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	CountActiveAt(ctx context.Context, doctorID string, date time.Time, slotTime string) (int64, error)
}
