// Package scheduling generates the bookable time slots for a calendar day.
//
// Slots are half-hour boundaries between opening and closing time, minus the
// lunch hour. Weekend days close at noon. Whether an individual slot is
// actually free is delegated to a Source so callers control availability
// (production queries booked appointments, tests inject fixed answers).
package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	// OpeningHour is the first bookable hour of the day.
	OpeningHour = 9
	// ClosingHour is the first non-bookable hour on weekdays.
	ClosingHour = 17
	// LunchHour is excluded entirely; no slot may start within it.
	LunchHour = 12
	// WeekendClosingHour is the first non-bookable hour on weekends.
	WeekendClosingHour = 12
	// SlotIntervalMinutes is the width of a single slot.
	SlotIntervalMinutes = 30
	// BookingWindowDays is how far ahead of tomorrow a date may be booked.
	BookingWindowDays = 30
)

var (
	ErrDateOutOfWindow = errors.New("date must be between tomorrow and 30 days from now")
)

// Source answers whether a specific slot is free for a doctor.
type Source interface {
	IsAvailable(ctx context.Context, doctorID string, date time.Time, slotTime string) (bool, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, doctorID string, date time.Time, slotTime string) (bool, error)

func (f SourceFunc) IsAvailable(ctx context.Context, doctorID string, date time.Time, slotTime string) (bool, error) {
	return f(ctx, doctorID, date, slotTime)
}

// Slot is a single bookable time-of-day unit.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// DaySlots is the generated slot set for one calendar day.
type DaySlots struct {
	Date           time.Time `json:"-"`
	Slots          []Slot    `json:"slots"`
	WeekendLimited bool      `json:"weekend_limited"`
}

// AvailableTimes returns the times of the available slots, in order.
func (d DaySlots) AvailableTimes() []string {
	var times []string
	for _, s := range d.Slots {
		if s.Available {
			times = append(times, s.Time)
		}
	}
	return times
}

// HasAvailable reports whether at least one slot is free.
func (d DaySlots) HasAvailable() bool {
	for _, s := range d.Slots {
		if s.Available {
			return true
		}
	}
	return false
}

// IsAvailable reports whether the given time is a free slot of the day.
func (d DaySlots) IsAvailable(slotTime string) bool {
	for _, s := range d.Slots {
		if s.Time == slotTime {
			return s.Available
		}
	}
	return false
}

// Generate produces the ordered slot set for a doctor on the given date.
// The source is consulted once per candidate slot.
func Generate(ctx context.Context, src Source, doctorID string, date time.Time) (DaySlots, error) {
	weekend := isWeekend(date)

	closing := ClosingHour
	if weekend {
		closing = WeekendClosingHour
	}

	day := DaySlots{
		Date:           date,
		WeekendLimited: weekend,
	}

	for hour := OpeningHour; hour < closing; hour++ {
		if hour == LunchHour {
			continue
		}
		for minute := 0; minute < 60; minute += SlotIntervalMinutes {
			slotTime := fmt.Sprintf("%02d:%02d", hour, minute)

			available, err := src.IsAvailable(ctx, doctorID, date, slotTime)
			if err != nil {
				return DaySlots{}, err
			}

			day.Slots = append(day.Slots, Slot{Time: slotTime, Available: available})
		}
	}

	return day, nil
}

// Reselect resolves a previous time selection against a freshly generated
// slot set: an available selection is kept, otherwise the first available
// slot wins, otherwise the selection becomes empty.
func Reselect(day DaySlots, current string) string {
	if current != "" && day.IsAvailable(current) {
		return current
	}
	for _, s := range day.Slots {
		if s.Available {
			return s.Time
		}
	}
	return ""
}

// ValidateDate checks the booking window: the earliest bookable day is
// tomorrow, the latest is 30 days from now.
func ValidateDate(now, date time.Time) error {
	min := truncateToDay(now).AddDate(0, 0, 1)
	max := truncateToDay(now).AddDate(0, 0, BookingWindowDays)

	// date comes from time.Parse and carries UTC; rebuild it in now's
	// location so the comparison is between calendar days, not instants.
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	if d.Before(min) || d.After(max) {
		return ErrDateOutOfWindow
	}
	return nil
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
