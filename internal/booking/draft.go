// Package booking holds the multi-step booking wizard state machine.
//
// A Draft walks through three steps (contact info, selection details,
// scheduling) and ends Confirmed once the appointment is persisted. Every
// forward transition validates its step's preconditions; backward
// transitions are always allowed and never lose data. The package is pure
// state mutation so the flow is testable without a store or transport.
package booking

import (
	"errors"
	"regexp"
	"time"

	"mediconnect/internal/scheduling"
)

// Step identifies the wizard position.
type Step int

const (
	StepContactInfo Step = iota + 1
	StepSelectionDetails
	StepScheduling
	StepConfirmed
)

func (s Step) String() string {
	switch s {
	case StepContactInfo:
		return "contact_info"
	case StepSelectionDetails:
		return "selection_details"
	case StepScheduling:
		return "scheduling"
	case StepConfirmed:
		return "confirmed"
	}
	return "unknown"
}

const dateLayout = "2006-01-02"

var (
	ErrInvalidTransition = errors.New("operation not allowed in current step")
	ErrNoSlotsAvailable  = errors.New("no available slots for the selected date")
	ErrSlotUnavailable   = errors.New("selected time is not available")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}$`)
)

// ValidationError reports the draft field that failed a step precondition.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// Draft is the in-progress, unpersisted booking form state.
type Draft struct {
	FullName          string `json:"full_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	DoctorID          string `json:"doctor_id"`
	AppointmentTypeID string `json:"appointment_type_id"`
	Notes             string `json:"notes"`
	Date              string `json:"date"`
	Time              string `json:"time"`
	Step              Step   `json:"step"`
}

// NewDraft returns an empty draft positioned at the first step.
func NewDraft() *Draft {
	return &Draft{Step: StepContactInfo}
}

// SubmitContact records the contact triple and advances to selection
// details. Rejected with a ValidationError naming the offending field when
// any of the three values is missing or malformed.
func (d *Draft) SubmitContact(fullName, email, phone string) error {
	if d.Step != StepContactInfo {
		return ErrInvalidTransition
	}

	if fullName == "" {
		return &ValidationError{Field: "full_name", Message: "is required"}
	}
	if email == "" {
		return &ValidationError{Field: "email", Message: "is required"}
	}
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Message: "must be a valid email address"}
	}
	if phone == "" {
		return &ValidationError{Field: "phone", Message: "is required"}
	}
	if !phonePattern.MatchString(phone) {
		return &ValidationError{Field: "phone", Message: "must be a valid 10-digit phone number"}
	}

	d.FullName = fullName
	d.Email = email
	d.Phone = phone
	d.Step = StepSelectionDetails
	return nil
}

// SubmitSelection records the doctor and appointment type and advances to
// scheduling. Notes are optional.
func (d *Draft) SubmitSelection(doctorID, appointmentTypeID, notes string) error {
	if d.Step != StepSelectionDetails {
		return ErrInvalidTransition
	}

	if doctorID == "" {
		return &ValidationError{Field: "doctor_id", Message: "is required"}
	}
	if appointmentTypeID == "" {
		return &ValidationError{Field: "appointment_type_id", Message: "is required"}
	}

	d.DoctorID = doctorID
	d.AppointmentTypeID = appointmentTypeID
	d.Notes = notes
	d.Step = StepScheduling
	return nil
}

// SetSchedule validates the date against the booking window and the time
// against the freshly generated slot set, then records both. The draft stays
// at the scheduling step until Confirm reports successful persistence.
func (d *Draft) SetSchedule(now time.Time, day scheduling.DaySlots, date, slotTime string) error {
	if d.Step != StepScheduling {
		return ErrInvalidTransition
	}

	if date == "" {
		return &ValidationError{Field: "date", Message: "is required"}
	}
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return ErrInvalidDateFormat
	}
	if err := scheduling.ValidateDate(now, parsed); err != nil {
		return err
	}
	if slotTime == "" {
		return &ValidationError{Field: "time", Message: "is required"}
	}
	if !day.HasAvailable() {
		return ErrNoSlotsAvailable
	}
	if !day.IsAvailable(slotTime) {
		return ErrSlotUnavailable
	}

	d.Date = date
	d.Time = slotTime
	return nil
}

// Confirm marks the draft as booked. Only valid after SetSchedule succeeded.
func (d *Draft) Confirm() error {
	if d.Step != StepScheduling || d.Date == "" || d.Time == "" {
		return ErrInvalidTransition
	}
	d.Step = StepConfirmed
	return nil
}

// Back moves one step backwards without touching any recorded field.
func (d *Draft) Back() error {
	if d.Step != StepSelectionDetails && d.Step != StepScheduling {
		return ErrInvalidTransition
	}
	d.Step--
	return nil
}

// Reset clears the draft entirely and returns it to the first step.
// Allowed from any step, including Confirmed.
func (d *Draft) Reset() {
	*d = Draft{Step: StepContactInfo}
}

// ParsedDate returns the scheduled date as a time value.
func (d *Draft) ParsedDate() (time.Time, error) {
	if d.Date == "" {
		return time.Time{}, ErrInvalidDateFormat
	}
	return time.Parse(dateLayout, d.Date)
}
