package usecase

import (
	"context"
	"time"

	"mediconnect/internal/booking"
	"mediconnect/internal/converter"
	"mediconnect/internal/delivery/dto"
	"mediconnect/internal/domain/entity"
	"mediconnect/internal/domain/repository"
	"mediconnect/internal/scheduling"
	"mediconnect/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BookingDraftStore abstracts the Redis-backed draft storage so the wizard
// flow can be tested against an in-memory fake.
type BookingDraftStore interface {
	Save(ctx context.Context, sessionID uuid.UUID, draft *booking.Draft) error
	Get(ctx context.Context, sessionID uuid.UUID) (*booking.Draft, error)
	Delete(ctx context.Context, sessionID uuid.UUID) error
}

type BookingUsecase interface {
	StartSession(ctx context.Context) (*dto.BookingSessionResponse, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*dto.BookingSessionResponse, error)
	SubmitContact(ctx context.Context, sessionID uuid.UUID, req *dto.SubmitContactRequest) (*dto.BookingSessionResponse, error)
	SubmitSelection(ctx context.Context, sessionID uuid.UUID, req *dto.SubmitSelectionRequest) (*dto.BookingSessionResponse, error)
	Submit(ctx context.Context, sessionID uuid.UUID, req *dto.SubmitScheduleRequest) (*dto.BookingConfirmationResponse, error)
	Back(ctx context.Context, sessionID uuid.UUID) (*dto.BookingSessionResponse, error)
	Reset(ctx context.Context, sessionID uuid.UUID) (*dto.BookingSessionResponse, error)
	GetSlots(ctx context.Context, doctorID, date string) (*dto.DaySlotsResponse, error)
	GetSessionSlots(ctx context.Context, sessionID uuid.UUID, date string) (*dto.SessionSlotsResponse, error)
}

type bookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	draftStore      BookingDraftStore
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	typeRepo        repository.AppointmentTypeRepository
	auditSvc        service.AuditService
	now             func() time.Time
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	draftStore BookingDraftStore,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	typeRepo repository.AppointmentTypeRepository,
	auditSvc service.AuditService,
) BookingUsecase {
	return &bookingUsecase{
		db:              db,
		log:             log,
		draftStore:      draftStore,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		typeRepo:        typeRepo,
		auditSvc:        auditSvc,
		now:             time.Now,
	}
}

// availability treats a slot as taken when any non-cancelled appointment
// already occupies that doctor, date and time.
func (u *bookingUsecase) availability() scheduling.Source {
	return scheduling.SourceFunc(func(ctx context.Context, doctorID string, date time.Time, slotTime string) (bool, error) {
		count, err := u.appointmentRepo.CountActiveAt(ctx, doctorID, date, slotTime)
		if err != nil {
			return false, err
		}
		return count == 0, nil
	})
}

// StartSession creates an empty draft under a fresh session ID.
func (u *bookingUsecase) StartSession(ctx context.Context) (*dto.BookingSessionResponse, error) {
	sessionID := uuid.New()
	draft := booking.NewDraft()

	if err := u.draftStore.Save(ctx, sessionID, draft); err != nil {
		return nil, err
	}

	u.log.Infof("Booking session started: id=%s", sessionID)
	return converter.SessionToResponse(sessionID, draft), nil
}

func (u *bookingUsecase) GetSession(ctx context.Context, sessionID uuid.UUID) (*dto.BookingSessionResponse, error) {
	draft, err := u.draftStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return converter.SessionToResponse(sessionID, draft), nil
}

func (u *bookingUsecase) SubmitContact(ctx context.Context, sessionID uuid.UUID, req *dto.SubmitContactRequest) (*dto.BookingSessionResponse, error) {
	draft, err := u.draftStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := draft.SubmitContact(req.FullName, req.Email, req.Phone); err != nil {
		return nil, err
	}

	if err := u.draftStore.Save(ctx, sessionID, draft); err != nil {
		return nil, err
	}
	return converter.SessionToResponse(sessionID, draft), nil
}

// SubmitSelection checks the chosen doctor and appointment type against the
// catalog before advancing, so a stale or mistyped slug fails here rather
// than at submission.
func (u *bookingUsecase) SubmitSelection(ctx context.Context, sessionID uuid.UUID, req *dto.SubmitSelectionRequest) (*dto.BookingSessionResponse, error) {
	draft, err := u.draftStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if req.DoctorID != "" {
		doctor, err := u.doctorRepo.FindByID(ctx, req.DoctorID)
		if err != nil {
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}
	}
	if req.AppointmentTypeID != "" {
		appointmentType, err := u.typeRepo.FindByID(ctx, req.AppointmentTypeID)
		if err != nil {
			return nil, err
		}
		if appointmentType == nil {
			return nil, ErrAppointmentTypeNotFound
		}
	}

	if err := draft.SubmitSelection(req.DoctorID, req.AppointmentTypeID, req.Notes); err != nil {
		return nil, err
	}

	if err := u.draftStore.Save(ctx, sessionID, draft); err != nil {
		return nil, err
	}
	return converter.SessionToResponse(sessionID, draft), nil
}

// Submit validates the schedule against live availability, persists the
// appointment and confirms the draft. The confirmed draft stays in the
// store so the session can still be reset into a new booking.
func (u *bookingUsecase) Submit(ctx context.Context, sessionID uuid.UUID, req *dto.SubmitScheduleRequest) (*dto.BookingConfirmationResponse, error) {
	draft, err := u.draftStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.Step != booking.StepScheduling {
		return nil, booking.ErrInvalidTransition
	}

	parsed, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, booking.ErrInvalidDateFormat
	}

	day, err := scheduling.Generate(ctx, u.availability(), draft.DoctorID, parsed)
	if err != nil {
		u.log.Warnf("Failed to generate slots for %s on %s: %+v", draft.DoctorID, req.Date, err)
		return nil, err
	}

	if err := draft.SetSchedule(u.now(), day, req.Date, req.Time); err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		FullName:          draft.FullName,
		Email:             draft.Email,
		Phone:             draft.Phone,
		DoctorID:          draft.DoctorID,
		AppointmentTypeID: draft.AppointmentTypeID,
		Notes:             draft.Notes,
		Date:              parsed,
		Time:              draft.Time,
		Status:            entity.AppointmentStatusScheduled,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment from session %s: %+v", sessionID, err)
		return nil, err
	}

	if err := draft.Confirm(); err != nil {
		return nil, err
	}
	if err := u.draftStore.Save(ctx, sessionID, draft); err != nil {
		u.log.Warnf("Failed to save confirmed draft %s: %+v", sessionID, err)
	}

	if err := u.auditSvc.LogCreate(ctx, u.db.WithContext(ctx), nil, entity.AuditActionAppointmentBook, "appointment", appointment.ID.String(), converter.AppointmentToResponse(appointment)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	// Confirmation notice; a mail/SMS sender would hook in here.
	u.log.Infof("Appointment booked: id=%s, patient=%s, doctor=%s, at=%s %s",
		appointment.ID, appointment.Email, appointment.DoctorID, draft.Date, draft.Time)

	return &dto.BookingConfirmationResponse{
		SessionID:   sessionID,
		Step:        draft.Step.String(),
		Draft:       converter.DraftToResponse(draft),
		Appointment: converter.AppointmentToResponse(appointment),
	}, nil
}

func (u *bookingUsecase) Back(ctx context.Context, sessionID uuid.UUID) (*dto.BookingSessionResponse, error) {
	draft, err := u.draftStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := draft.Back(); err != nil {
		return nil, err
	}

	if err := u.draftStore.Save(ctx, sessionID, draft); err != nil {
		return nil, err
	}
	return converter.SessionToResponse(sessionID, draft), nil
}

func (u *bookingUsecase) Reset(ctx context.Context, sessionID uuid.UUID) (*dto.BookingSessionResponse, error) {
	draft, err := u.draftStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	draft.Reset()

	if err := u.draftStore.Save(ctx, sessionID, draft); err != nil {
		return nil, err
	}
	return converter.SessionToResponse(sessionID, draft), nil
}

// GetSlots answers the stateless slot query used before a session exists.
func (u *bookingUsecase) GetSlots(ctx context.Context, doctorID, date string) (*dto.DaySlotsResponse, error) {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, booking.ErrInvalidDateFormat
	}
	if err := scheduling.ValidateDate(u.now(), parsed); err != nil {
		return nil, err
	}

	if doctorID == "" {
		return nil, &booking.ValidationError{Field: "doctor_id", Message: "is required"}
	}
	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	day, err := scheduling.Generate(ctx, u.availability(), doctorID, parsed)
	if err != nil {
		u.log.Warnf("Failed to generate slots for %s on %s: %+v", doctorID, date, err)
		return nil, err
	}

	return converter.DaySlotsToResponse(day), nil
}

// GetSessionSlots regenerates the slot set for a scheduling-step session,
// keeping the draft's selected time when it is still available and moving
// it to the first available slot otherwise.
func (u *bookingUsecase) GetSessionSlots(ctx context.Context, sessionID uuid.UUID, date string) (*dto.SessionSlotsResponse, error) {
	draft, err := u.draftStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.Step != booking.StepScheduling {
		return nil, booking.ErrInvalidTransition
	}

	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, booking.ErrInvalidDateFormat
	}
	if err := scheduling.ValidateDate(u.now(), parsed); err != nil {
		return nil, err
	}

	day, err := scheduling.Generate(ctx, u.availability(), draft.DoctorID, parsed)
	if err != nil {
		u.log.Warnf("Failed to generate slots for %s on %s: %+v", draft.DoctorID, date, err)
		return nil, err
	}

	selected := scheduling.Reselect(day, draft.Time)
	if selected != draft.Time {
		draft.Time = selected
		if err := u.draftStore.Save(ctx, sessionID, draft); err != nil {
			return nil, err
		}
	}

	return &dto.SessionSlotsResponse{
		SessionID:    sessionID,
		SelectedTime: selected,
		Day:          *converter.DaySlotsToResponse(day),
	}, nil
}
