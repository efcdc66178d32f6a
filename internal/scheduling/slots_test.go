package scheduling

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"
)

func allAvailable(ctx context.Context, doctorID string, date time.Time, slotTime string) (bool, error) {
	return true, nil
}

func noneAvailable(ctx context.Context, doctorID string, date time.Time, slotTime string) (bool, error) {
	return false, nil
}

func TestGenerate_WeekdayWindow(t *testing.T) {
	// 2026-09-02 is a Wednesday
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	day, err := Generate(context.Background(), SourceFunc(allAvailable), "dr-johnson", date)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if day.WeekendLimited {
		t.Fatalf("weekday must not set the weekend advisory")
	}

	// 9:00-17:00 minus the lunch hour leaves 7 hours of two slots each
	if len(day.Slots) != 14 {
		t.Fatalf("slot count = %d, want 14", len(day.Slots))
	}

	for _, s := range day.Slots {
		hour, minute := splitTime(t, s.Time)
		if hour < OpeningHour || hour >= ClosingHour {
			t.Errorf("slot %s outside opening hours", s.Time)
		}
		if hour == LunchHour {
			t.Errorf("slot %s falls within the lunch hour", s.Time)
		}
		if minute != 0 && minute != 30 {
			t.Errorf("slot %s is not on a half-hour boundary", s.Time)
		}
	}

	if day.Slots[0].Time != "09:00" {
		t.Errorf("first slot = %s, want 09:00", day.Slots[0].Time)
	}
	if day.Slots[len(day.Slots)-1].Time != "16:30" {
		t.Errorf("last slot = %s, want 16:30", day.Slots[len(day.Slots)-1].Time)
	}
}

func TestGenerate_WeekendLimitsHours(t *testing.T) {
	// 2026-09-05 is a Saturday
	date := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	day, err := Generate(context.Background(), SourceFunc(allAvailable), "dr-johnson", date)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if !day.WeekendLimited {
		t.Fatalf("weekend advisory not set for Saturday")
	}

	if len(day.Slots) != 6 {
		t.Fatalf("slot count = %d, want 6", len(day.Slots))
	}

	for _, s := range day.Slots {
		hour, _ := splitTime(t, s.Time)
		if hour >= 12 {
			t.Errorf("weekend slot %s at or after noon", s.Time)
		}
	}
}

func TestGenerate_SourceDecidesAvailability(t *testing.T) {
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	src := SourceFunc(func(ctx context.Context, doctorID string, d time.Time, slotTime string) (bool, error) {
		return slotTime != "10:00", nil
	})

	day, err := Generate(context.Background(), src, "dr-chen", date)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if day.IsAvailable("10:00") {
		t.Errorf("10:00 should be unavailable")
	}
	if !day.IsAvailable("10:30") {
		t.Errorf("10:30 should be available")
	}
}

func TestGenerate_SourceError(t *testing.T) {
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	wantErr := errors.New("backend down")

	src := SourceFunc(func(ctx context.Context, doctorID string, d time.Time, slotTime string) (bool, error) {
		return false, wantErr
	})

	if _, err := Generate(context.Background(), src, "dr-chen", date); !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want %v", err, wantErr)
	}
}

func TestReselect(t *testing.T) {
	day := DaySlots{
		Slots: []Slot{
			{Time: "09:00", Available: false},
			{Time: "09:30", Available: true},
			{Time: "10:00", Available: true},
		},
	}

	tests := []struct {
		name    string
		day     DaySlots
		current string
		want    string
	}{
		{name: "current still available", day: day, current: "10:00", want: "10:00"},
		{name: "current became unavailable", day: day, current: "09:00", want: "09:30"},
		{name: "current not in set", day: day, current: "16:00", want: "09:30"},
		{name: "empty selection", day: day, current: "", want: "09:30"},
		{name: "no slots at all", day: DaySlots{}, current: "09:30", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reselect(tt.day, tt.current); got != tt.want {
				t.Fatalf("Reselect = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReselect_NoneAvailable(t *testing.T) {
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	day, err := Generate(context.Background(), SourceFunc(noneAvailable), "dr-patel", date)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if got := Reselect(day, "09:00"); got != "" {
		t.Fatalf("Reselect = %q, want empty", got)
	}
	if day.HasAvailable() {
		t.Fatalf("expected no available slots")
	}
}

func TestValidateDate(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date    time.Time
		wantErr bool
	}{
		{name: "today", date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), wantErr: true},
		{name: "tomorrow", date: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), wantErr: false},
		{name: "last day of window", date: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), wantErr: false},
		{name: "past window", date: time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC), wantErr: true},
		{name: "in the past", date: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDate(now, tt.date)
			if tt.wantErr && !errors.Is(err, ErrDateOutOfWindow) {
				t.Fatalf("error = %v, want ErrDateOutOfWindow", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateDate_NonUTCServer(t *testing.T) {
	zones := []struct {
		name string
		loc  *time.Location
	}{
		{name: "west of UTC", loc: time.FixedZone("EST", -5*60*60)},
		{name: "east of UTC", loc: time.FixedZone("JST", 9*60*60)},
	}

	for _, z := range zones {
		t.Run(z.name, func(t *testing.T) {
			now := time.Date(2026, 9, 1, 15, 0, 0, 0, z.loc)

			tomorrow, err := time.Parse("2006-01-02", "2026-09-02")
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if err := ValidateDate(now, tomorrow); err != nil {
				t.Errorf("tomorrow rejected: %v", err)
			}

			lastDay, err := time.Parse("2006-01-02", "2026-10-01")
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if err := ValidateDate(now, lastDay); err != nil {
				t.Errorf("last day of window rejected: %v", err)
			}

			today, err := time.Parse("2006-01-02", "2026-09-01")
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if err := ValidateDate(now, today); !errors.Is(err, ErrDateOutOfWindow) {
				t.Errorf("today: error = %v, want ErrDateOutOfWindow", err)
			}
		})
	}
}

func splitTime(t *testing.T, slotTime string) (int, int) {
	t.Helper()
	parts := strings.Split(slotTime, ":")
	if len(parts) != 2 {
		t.Fatalf("malformed slot time %q", slotTime)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		t.Fatalf("malformed hour in %q", slotTime)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		t.Fatalf("malformed minute in %q", slotTime)
	}
	return hour, minute
}
