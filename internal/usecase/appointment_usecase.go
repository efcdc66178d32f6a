package usecase

import (
	"context"
	"errors"
	"time"

	"mediconnect/internal/converter"
	"mediconnect/internal/delivery/dto"
	"mediconnect/internal/delivery/http/middleware"
	"mediconnect/internal/domain/entity"
	"mediconnect/internal/domain/repository"
	"mediconnect/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrDoctorNotFound          = errors.New("doctor not found")
	ErrAppointmentTypeNotFound = errors.New("appointment type not found")
	ErrInvalidStatus           = errors.New("invalid appointment status")
	ErrInvalidStatusTransition = errors.New("only scheduled appointments can change status")
	ErrInvalidDateFormat       = errors.New("invalid date format, use YYYY-MM-DD")
)

const dateLayout = "2006-01-02"

type AppointmentUsecase interface {
	GetAll(ctx context.Context, status string, page, limit int) (*dto.AppointmentListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	typeRepo        repository.AppointmentTypeRepository
	auditSvc        service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	typeRepo repository.AppointmentTypeRepository,
	auditSvc service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		typeRepo:        typeRepo,
		auditSvc:        auditSvc,
	}
}

// GetAll returns appointments, optionally narrowed to an exact status match.
// An empty result is a successful empty list, never an error.
func (u *appointmentUsecase) GetAll(ctx context.Context, status string, page, limit int) (*dto.AppointmentListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	filter := entity.AppointmentStatus(status)
	if status != "" && !filter.IsValid() {
		return nil, ErrInvalidStatus
	}

	offset := (page - 1) * limit

	appointments, total, err := u.appointmentRepo.FindAll(ctx, filter, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
	}, nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

// Create books an appointment directly (without the wizard), defaulting the
// status to Scheduled when the request omits it.
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	status := entity.AppointmentStatusScheduled
	if req.Status != "" {
		status = entity.AppointmentStatus(req.Status)
		if !status.IsValid() {
			return nil, ErrInvalidStatus
		}
	}

	if err := u.ensureCatalogRefs(ctx, req.DoctorID, req.AppointmentTypeID); err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		FullName:          req.FullName,
		Email:             req.Email,
		Phone:             req.Phone,
		DoctorID:          req.DoctorID,
		AppointmentTypeID: req.AppointmentTypeID,
		Notes:             req.Notes,
		Date:              date,
		Time:              req.Time,
		Status:            status,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	userID := userIDFromContext(ctx)
	if err := u.auditSvc.LogCreate(ctx, u.db.WithContext(ctx), userID, entity.AuditActionAppointmentBook, "appointment", appointment.ID.String(), converter.AppointmentToResponse(appointment)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.log.Infof("Appointment created: id=%s, doctor=%s, date=%s %s", appointment.ID, appointment.DoctorID, req.Date, req.Time)
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	oldValue := converter.AppointmentToResponse(appointment)

	if req.FullName != "" {
		appointment.FullName = req.FullName
	}
	if req.Email != "" {
		appointment.Email = req.Email
	}
	if req.Phone != "" {
		appointment.Phone = req.Phone
	}
	if req.DoctorID != "" {
		if err := u.ensureCatalogRefs(ctx, req.DoctorID, ""); err != nil {
			return nil, err
		}
		appointment.DoctorID = req.DoctorID
	}
	if req.AppointmentTypeID != "" {
		if err := u.ensureCatalogRefs(ctx, "", req.AppointmentTypeID); err != nil {
			return nil, err
		}
		appointment.AppointmentTypeID = req.AppointmentTypeID
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}
	if req.Date != "" {
		date, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		appointment.Date = date
	}
	if req.Time != "" {
		appointment.Time = req.Time
	}

	if err := u.appointmentRepo.Update(ctx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s: %+v", id, err)
		return nil, err
	}

	userID := userIDFromContext(ctx)
	newValue := converter.AppointmentToResponse(appointment)
	if err := u.auditSvc.LogUpdate(ctx, u.db.WithContext(ctx), userID, entity.AuditActionAppointmentUpdate, "appointment", id.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return newValue, nil
}

// UpdateStatus applies a list-view row action. Only Scheduled appointments
// may move to Completed, Cancelled or No-show; the transition is atomic so
// two racing updates cannot both win.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	target := entity.AppointmentStatus(req.Status)
	if !target.IsValid() || target == entity.AppointmentStatusScheduled {
		return nil, ErrInvalidStatus
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !appointment.CanTransitionTo(target) {
		return nil, ErrInvalidStatusTransition
	}

	affected, err := u.appointmentRepo.UpdateStatus(ctx, id, entity.AppointmentStatusScheduled, target)
	if err != nil {
		u.log.Warnf("Failed to update appointment status %s: %+v", id, err)
		return nil, err
	}
	if affected == 0 {
		// Lost the race to a concurrent transition
		return nil, ErrInvalidStatusTransition
	}

	userID := userIDFromContext(ctx)
	if err := u.auditSvc.LogUpdate(ctx, u.db.WithContext(ctx), userID, entity.AuditActionAppointmentStatus, "appointment", id.String(), string(appointment.Status), string(target)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	appointment.Status = target
	u.log.Infof("Appointment status updated: id=%s, status=%s", id, target)
	return converter.AppointmentToResponse(appointment), nil
}

// Delete removes exactly the given appointment and nothing else.
func (u *appointmentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	affected, err := u.appointmentRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	userID := userIDFromContext(ctx)
	if err := u.auditSvc.LogDelete(ctx, u.db.WithContext(ctx), userID, entity.AuditActionAppointmentDelete, "appointment", id.String(), converter.AppointmentToResponse(appointment)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.log.Infof("Appointment deleted: id=%s", id)
	return nil
}

func (u *appointmentUsecase) ensureCatalogRefs(ctx context.Context, doctorID, typeID string) error {
	if doctorID != "" {
		doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
		if err != nil {
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}
	}
	if typeID != "" {
		appointmentType, err := u.typeRepo.FindByID(ctx, typeID)
		if err != nil {
			return err
		}
		if appointmentType == nil {
			return ErrAppointmentTypeNotFound
		}
	}
	return nil
}

// userIDFromContext fetches the acting user for audit entries; anonymous
// callers (the public booking flow) yield nil.
func userIDFromContext(ctx context.Context) *uuid.UUID {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil
	}
	return &userID
}
