package booking

import (
	"errors"
	"testing"
	"time"

	"mediconnect/internal/scheduling"
)

func TestSubmitContact(t *testing.T) {
	tests := []struct {
		name      string
		fullName  string
		email     string
		phone     string
		wantField string
	}{
		{name: "valid", fullName: "Jane Doe", email: "jane@x.com", phone: "(555) 123-4567"},
		{name: "valid dashed phone", fullName: "Jane Doe", email: "jane@x.com", phone: "555-123-4567"},
		{name: "valid bare phone", fullName: "Jane Doe", email: "jane@x.com", phone: "5551234567"},
		{name: "valid dotted phone", fullName: "Jane Doe", email: "jane@x.com", phone: "555.123.4567"},
		{name: "missing name", fullName: "", email: "jane@x.com", phone: "5551234567", wantField: "full_name"},
		{name: "missing email", fullName: "Jane Doe", email: "", phone: "5551234567", wantField: "email"},
		{name: "email without domain", fullName: "Jane Doe", email: "jane@x", phone: "5551234567", wantField: "email"},
		{name: "email with space", fullName: "Jane Doe", email: "ja ne@x.com", phone: "5551234567", wantField: "email"},
		{name: "missing phone", fullName: "Jane Doe", email: "jane@x.com", phone: "", wantField: "phone"},
		{name: "short phone", fullName: "Jane Doe", email: "jane@x.com", phone: "555-12", wantField: "phone"},
		{name: "alphabetic phone", fullName: "Jane Doe", email: "jane@x.com", phone: "555-CALL-NOW", wantField: "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft()
			err := d.SubmitContact(tt.fullName, tt.email, tt.phone)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if d.Step != StepSelectionDetails {
					t.Fatalf("step = %v, want selection details", d.Step)
				}
				return
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("error type = %T, want *ValidationError", err)
			}
			if vErr.Field != tt.wantField {
				t.Fatalf("failing field = %q, want %q", vErr.Field, tt.wantField)
			}
			if d.Step != StepContactInfo {
				t.Fatalf("step advanced past contact info on invalid input")
			}
		})
	}
}

func TestSubmitSelection(t *testing.T) {
	d := draftAtStep(t, StepSelectionDetails)

	if err := d.SubmitSelection("", "checkup", ""); err == nil {
		t.Fatalf("expected error for missing doctor")
	}
	if err := d.SubmitSelection("dr-chen", "", ""); err == nil {
		t.Fatalf("expected error for missing appointment type")
	}

	if err := d.SubmitSelection("dr-chen", "checkup", "mild fever"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Step != StepScheduling {
		t.Fatalf("step = %v, want scheduling", d.Step)
	}
	if d.Notes != "mild fever" {
		t.Fatalf("notes not recorded")
	}
}

func TestSetSchedule(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	day := scheduling.DaySlots{
		Slots: []scheduling.Slot{
			{Time: "09:00", Available: true},
			{Time: "09:30", Available: false},
		},
	}
	empty := scheduling.DaySlots{
		Slots: []scheduling.Slot{
			{Time: "09:00", Available: false},
		},
	}

	tests := []struct {
		name    string
		day     scheduling.DaySlots
		date    string
		time    string
		wantErr error
	}{
		{name: "valid", day: day, date: "2026-09-02", time: "09:00"},
		{name: "malformed date", day: day, date: "02-09-2026", time: "09:00", wantErr: ErrInvalidDateFormat},
		{name: "date out of window", day: day, date: "2026-12-25", time: "09:00", wantErr: scheduling.ErrDateOutOfWindow},
		{name: "no slots available", day: empty, date: "2026-09-02", time: "09:00", wantErr: ErrNoSlotsAvailable},
		{name: "slot taken", day: day, date: "2026-09-02", time: "09:30", wantErr: ErrSlotUnavailable},
		{name: "slot not in set", day: day, date: "2026-09-02", time: "12:00", wantErr: ErrSlotUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := draftAtStep(t, StepScheduling)
			err := d.SetSchedule(now, tt.day, tt.date, tt.time)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				if d.Date != "" || d.Time != "" {
					t.Fatalf("schedule recorded despite error")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Date != tt.date || d.Time != tt.time {
				t.Fatalf("schedule not recorded")
			}
		})
	}
}

func TestConfirm(t *testing.T) {
	d := draftAtStep(t, StepScheduling)

	if err := d.Confirm(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("confirm without a schedule: error = %v, want ErrInvalidTransition", err)
	}

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	day := scheduling.DaySlots{Slots: []scheduling.Slot{{Time: "09:00", Available: true}}}
	if err := d.SetSchedule(now, day, "2026-09-02", "09:00"); err != nil {
		t.Fatalf("SetSchedule: %v", err)
	}

	if err := d.Confirm(); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if d.Step != StepConfirmed {
		t.Fatalf("step = %v, want confirmed", d.Step)
	}

	// the final draft survives for display
	if d.FullName != "Jane Doe" || d.DoctorID != "dr-chen" {
		t.Fatalf("confirmed draft lost recorded fields")
	}
}

func TestBack_PreservesFields(t *testing.T) {
	d := draftAtStep(t, StepScheduling)

	if err := d.Back(); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if d.Step != StepSelectionDetails {
		t.Fatalf("step = %v, want selection details", d.Step)
	}
	if d.DoctorID != "dr-chen" || d.FullName != "Jane Doe" {
		t.Fatalf("backward transition dropped fields")
	}

	if err := d.Back(); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if d.Step != StepContactInfo {
		t.Fatalf("step = %v, want contact info", d.Step)
	}

	if err := d.Back(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Back from first step: error = %v, want ErrInvalidTransition", err)
	}
}

func TestStepGating(t *testing.T) {
	d := NewDraft()

	if err := d.SubmitSelection("dr-chen", "checkup", ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("selection from step 1: error = %v, want ErrInvalidTransition", err)
	}

	day := scheduling.DaySlots{Slots: []scheduling.Slot{{Time: "09:00", Available: true}}}
	err := d.SetSchedule(time.Now(), day, "2026-09-02", "09:00")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("schedule from step 1: error = %v, want ErrInvalidTransition", err)
	}
}

func TestReset(t *testing.T) {
	d := draftAtStep(t, StepScheduling)
	d.Reset()

	if d.Step != StepContactInfo {
		t.Fatalf("step = %v, want contact info", d.Step)
	}
	if *d != (Draft{Step: StepContactInfo}) {
		t.Fatalf("reset left residual fields: %+v", d)
	}
}

func draftAtStep(t *testing.T, step Step) *Draft {
	t.Helper()
	d := NewDraft()
	if step >= StepSelectionDetails {
		if err := d.SubmitContact("Jane Doe", "jane@x.com", "(555) 123-4567"); err != nil {
			t.Fatalf("SubmitContact: %v", err)
		}
	}
	if step >= StepScheduling {
		if err := d.SubmitSelection("dr-chen", "checkup", ""); err != nil {
			t.Fatalf("SubmitSelection: %v", err)
		}
	}
	return d
}
