package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"mediconnect/internal/booking"
	"mediconnect/internal/delivery/dto"
	"mediconnect/internal/domain/entity"
	"mediconnect/internal/scheduling"
	"mediconnect/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormtests "gorm.io/gorm/utils/tests"
)

// fakeDraftStore keeps drafts in memory, copying on save and load the way
// the Redis store does through JSON.
type fakeDraftStore struct {
	drafts map[uuid.UUID]booking.Draft
}

func newFakeDraftStore() *fakeDraftStore {
	return &fakeDraftStore{drafts: make(map[uuid.UUID]booking.Draft)}
}

func (f *fakeDraftStore) Save(ctx context.Context, sessionID uuid.UUID, draft *booking.Draft) error {
	f.drafts[sessionID] = *draft
	return nil
}

func (f *fakeDraftStore) Get(ctx context.Context, sessionID uuid.UUID) (*booking.Draft, error) {
	draft, ok := f.drafts[sessionID]
	if !ok {
		return nil, service.ErrDraftNotFound
	}
	copied := draft
	return &copied, nil
}

func (f *fakeDraftStore) Delete(ctx context.Context, sessionID uuid.UUID) error {
	delete(f.drafts, sessionID)
	return nil
}

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*entity.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*entity.Appointment)}
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appointment *entity.Appointment) error {
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	copied := *appointment
	f.appointments[appointment.ID] = &copied
	return nil
}

func (f *fakeAppointmentRepo) FindAll(ctx context.Context, status entity.AppointmentStatus, limit, offset int) ([]entity.Appointment, int64, error) {
	var matched []entity.Appointment
	for _, a := range f.appointments {
		if status != "" && a.Status != status {
			continue
		}
		matched = append(matched, *a)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAppointmentRepo) Update(ctx context.Context, appointment *entity.Appointment) error {
	copied := *appointment
	f.appointments[appointment.ID] = &copied
	return nil
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	a, ok := f.appointments[id]
	if !ok || a.Status != from {
		return 0, nil
	}
	a.Status = to
	return 1, nil
}

func (f *fakeAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, ok := f.appointments[id]; !ok {
		return 0, nil
	}
	delete(f.appointments, id)
	return 1, nil
}

func (f *fakeAppointmentRepo) CountActiveAt(ctx context.Context, doctorID string, date time.Time, slotTime string) (int64, error) {
	var count int64
	for _, a := range f.appointments {
		if a.DoctorID == doctorID &&
			a.Date.Format("2006-01-02") == date.Format("2006-01-02") &&
			a.Time == slotTime &&
			a.Status != entity.AppointmentStatusCancelled {
			count++
		}
	}
	return count, nil
}

type fakeDoctorRepo struct {
	doctors map[string]entity.Doctor
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{doctors: map[string]entity.Doctor{
		"dr-johnson": {ID: "dr-johnson", Name: "Dr. Sarah Johnson", Specialty: "General Practice"},
		"dr-chen":    {ID: "dr-chen", Name: "Dr. Michael Chen", Specialty: "Cardiology"},
	}}
}

func (f *fakeDoctorRepo) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	for _, d := range f.doctors {
		doctors = append(doctors, d)
	}
	return doctors, nil
}

func (f *fakeDoctorRepo) FindByID(ctx context.Context, id string) (*entity.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

type fakeTypeRepo struct {
	types map[string]entity.AppointmentType
}

func newFakeTypeRepo() *fakeTypeRepo {
	return &fakeTypeRepo{types: map[string]entity.AppointmentType{
		"checkup":      {ID: "checkup", Name: "General Checkup", DurationMinutes: 30, Fee: decimal.NewFromInt(75)},
		"consultation": {ID: "consultation", Name: "Specialist Consultation", DurationMinutes: 30, Fee: decimal.NewFromInt(150)},
	}}
}

func (f *fakeTypeRepo) FindAll(ctx context.Context) ([]entity.AppointmentType, error) {
	var types []entity.AppointmentType
	for _, t := range f.types {
		types = append(types, t)
	}
	return types, nil
}

func (f *fakeTypeRepo) FindByID(ctx context.Context, id string) (*entity.AppointmentType, error) {
	t, ok := f.types[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

type fakeAuditService struct {
	actions []string
}

func (f *fakeAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, newValue interface{}) error {
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue, newValue interface{}) error {
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeAuditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue interface{}) error {
	f.actions = append(f.actions, action)
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormtests.DummyDialector{}, &gorm.Config{})
	require.NoError(t, err)
	return db
}

type bookingFixture struct {
	usecase         *bookingUsecase
	draftStore      *fakeDraftStore
	appointmentRepo *fakeAppointmentRepo
	audit           *fakeAuditService
}

// Monday 2026-03-02; tomorrow is a weekday.
var testNow = time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	draftStore := newFakeDraftStore()
	appointmentRepo := newFakeAppointmentRepo()
	audit := &fakeAuditService{}

	log := logrus.New()
	uc := NewBookingUsecase(newTestDB(t), log, draftStore, appointmentRepo, newFakeDoctorRepo(), newFakeTypeRepo(), audit).(*bookingUsecase)
	uc.now = func() time.Time { return testNow }

	return &bookingFixture{
		usecase:         uc,
		draftStore:      draftStore,
		appointmentRepo: appointmentRepo,
		audit:           audit,
	}
}

// walk a session to the scheduling step
func (f *bookingFixture) toScheduling(t *testing.T) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	session, err := f.usecase.StartSession(ctx)
	require.NoError(t, err)

	_, err = f.usecase.SubmitContact(ctx, session.SessionID, &dto.SubmitContactRequest{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "(555) 123-4567",
	})
	require.NoError(t, err)

	_, err = f.usecase.SubmitSelection(ctx, session.SessionID, &dto.SubmitSelectionRequest{
		DoctorID:          "dr-johnson",
		AppointmentTypeID: "checkup",
		Notes:             "mild headache",
	})
	require.NoError(t, err)

	return session.SessionID
}

func TestBookingWizardHappyPath(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	sessionID := f.toScheduling(t)

	confirmation, err := f.usecase.Submit(ctx, sessionID, &dto.SubmitScheduleRequest{
		Date: "2026-03-03",
		Time: "09:00",
	})
	require.NoError(t, err)
	require.Equal(t, "confirmed", confirmation.Step)
	require.NotNil(t, confirmation.Appointment)
	require.Equal(t, "Scheduled", confirmation.Appointment.Status)
	require.Equal(t, "dr-johnson", confirmation.Appointment.DoctorID)
	require.Equal(t, "09:00", confirmation.Appointment.Time)

	// appointment persisted
	require.Len(t, f.appointmentRepo.appointments, 1)
	require.Contains(t, f.audit.actions, entity.AuditActionAppointmentBook)

	// confirmed draft stays in the store so reset still works
	session, err := f.usecase.GetSession(ctx, sessionID)
	require.NoError(t, err)
	require.Equal(t, "confirmed", session.Step)

	reset, err := f.usecase.Reset(ctx, sessionID)
	require.NoError(t, err)
	require.Equal(t, "contact_info", reset.Step)
	require.Empty(t, reset.Draft.FullName)
}

func TestBookingContactValidation(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	session, err := f.usecase.StartSession(ctx)
	require.NoError(t, err)

	_, err = f.usecase.SubmitContact(ctx, session.SessionID, &dto.SubmitContactRequest{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "555-12",
	})
	var validationErr *booking.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "phone", validationErr.Field)

	// draft unchanged
	current, err := f.usecase.GetSession(ctx, session.SessionID)
	require.NoError(t, err)
	require.Equal(t, "contact_info", current.Step)
	require.Empty(t, current.Draft.Phone)
}

func TestBookingUnknownDoctorRejected(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	session, err := f.usecase.StartSession(ctx)
	require.NoError(t, err)

	_, err = f.usecase.SubmitContact(ctx, session.SessionID, &dto.SubmitContactRequest{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "(555) 123-4567",
	})
	require.NoError(t, err)

	_, err = f.usecase.SubmitSelection(ctx, session.SessionID, &dto.SubmitSelectionRequest{
		DoctorID:          "dr-nobody",
		AppointmentTypeID: "checkup",
	})
	require.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestBookingSubmitTakenSlot(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	// another patient already holds 09:00
	require.NoError(t, f.appointmentRepo.Create(ctx, &entity.Appointment{
		FullName:          "First Patient",
		Email:             "first@example.com",
		Phone:             "555-987-6543",
		DoctorID:          "dr-johnson",
		AppointmentTypeID: "checkup",
		Date:              time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
		Time:              "09:00",
		Status:            entity.AppointmentStatusScheduled,
	}))

	sessionID := f.toScheduling(t)

	_, err := f.usecase.Submit(ctx, sessionID, &dto.SubmitScheduleRequest{
		Date: "2026-03-03",
		Time: "09:00",
	})
	require.ErrorIs(t, err, booking.ErrSlotUnavailable)

	// a different slot still books fine
	confirmation, err := f.usecase.Submit(ctx, sessionID, &dto.SubmitScheduleRequest{
		Date: "2026-03-03",
		Time: "09:30",
	})
	require.NoError(t, err)
	require.Equal(t, "09:30", confirmation.Appointment.Time)
}

func TestBookingSubmitOutOfWindow(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	sessionID := f.toScheduling(t)

	tests := []struct {
		name string
		date string
	}{
		{name: "today", date: "2026-03-02"},
		{name: "past", date: "2026-02-27"},
		{name: "beyond window", date: "2026-04-15"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.usecase.Submit(ctx, sessionID, &dto.SubmitScheduleRequest{
				Date: tc.date,
				Time: "09:00",
			})
			require.ErrorIs(t, err, scheduling.ErrDateOutOfWindow)
		})
	}
}

func TestBookingBackPreservesFields(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	sessionID := f.toScheduling(t)

	session, err := f.usecase.Back(ctx, sessionID)
	require.NoError(t, err)
	require.Equal(t, "selection_details", session.Step)
	require.Equal(t, "dr-johnson", session.Draft.DoctorID)
	require.Equal(t, "Jane Doe", session.Draft.FullName)

	session, err = f.usecase.Back(ctx, sessionID)
	require.NoError(t, err)
	require.Equal(t, "contact_info", session.Step)

	// no further back from the first step
	_, err = f.usecase.Back(ctx, sessionID)
	require.ErrorIs(t, err, booking.ErrInvalidTransition)
}

func TestBookingSessionNotFound(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.usecase.GetSession(ctx, uuid.New())
	require.ErrorIs(t, err, service.ErrDraftNotFound)

	_, err = f.usecase.SubmitContact(ctx, uuid.New(), &dto.SubmitContactRequest{})
	require.ErrorIs(t, err, service.ErrDraftNotFound)
}

func TestBookingSessionSlotsReselection(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	sessionID := f.toScheduling(t)

	// pick 09:00 by hand, then have it taken before the slots refresh
	draft, err := f.draftStore.Get(ctx, sessionID)
	require.NoError(t, err)
	draft.Time = "09:00"
	require.NoError(t, f.draftStore.Save(ctx, sessionID, draft))

	require.NoError(t, f.appointmentRepo.Create(ctx, &entity.Appointment{
		DoctorID:          "dr-johnson",
		AppointmentTypeID: "checkup",
		Date:              time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
		Time:              "09:00",
		Status:            entity.AppointmentStatusScheduled,
	}))

	slots, err := f.usecase.GetSessionSlots(ctx, sessionID, "2026-03-03")
	require.NoError(t, err)
	require.Equal(t, "09:30", slots.SelectedTime)

	// the moved selection is persisted on the draft
	draft, err = f.draftStore.Get(ctx, sessionID)
	require.NoError(t, err)
	require.Equal(t, "09:30", draft.Time)

	// a still-available selection is kept
	slots, err = f.usecase.GetSessionSlots(ctx, sessionID, "2026-03-03")
	require.NoError(t, err)
	require.Equal(t, "09:30", slots.SelectedTime)
}

func TestBookingGetSlotsWeekendAdvisory(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	// Saturday within the window
	slots, err := f.usecase.GetSlots(ctx, "dr-johnson", "2026-03-07")
	require.NoError(t, err)
	require.True(t, slots.WeekendLimited)
	require.NotEmpty(t, slots.Advisory)
	require.Len(t, slots.Slots, 6)
	for _, slot := range slots.Slots {
		require.Less(t, slot.Time, "12:00")
	}
}

func TestBookingGetSlotsBadDate(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.usecase.GetSlots(ctx, "dr-johnson", "03/05/2026")
	require.ErrorIs(t, err, booking.ErrInvalidDateFormat)

	_, err = f.usecase.GetSlots(ctx, "dr-nobody", "2026-03-03")
	require.True(t, errors.Is(err, ErrDoctorNotFound))
}

func TestBookingGetSlotsRequiresDoctor(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.usecase.GetSlots(context.Background(), "", "2026-03-03")

	var vErr *booking.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "doctor_id", vErr.Field)
}
