package domain

import (
	"errors"
	"testing"
	"time"
)

func TestDay_DaysUntil(t *testing.T) {
	today := NewDay(2024, time.June, 1)

	tests := []struct {
		name string
		due  Day
		want int
	}{
		{name: "same day", due: NewDay(2024, time.June, 1), want: 0},
		{name: "two weeks ahead", due: NewDay(2024, time.June, 15), want: 14},
		{name: "past", due: NewDay(2024, time.May, 20), want: -12},
		{name: "across month", due: NewDay(2024, time.July, 15), want: 44},
		{name: "across leap day", due: NewDay(2024, time.March, 1), want: -92},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := today.DaysUntil(tt.due); got != tt.want {
				t.Errorf("DaysUntil() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDay_DaysUntilAcrossDST(t *testing.T) {
	// Chile leaves daylight saving time in early April.
	start := NewDay(2024, time.April, 6)
	end := NewDay(2024, time.April, 8)

	if got := start.DaysUntil(end); got != 2 {
		t.Errorf("DaysUntil() = %d, want 2", got)
	}
}

func TestDayOf_UsesOwnLocation(t *testing.T) {
	loc := time.FixedZone("UTC-4", -4*60*60)
	instant := time.Date(2024, time.June, 2, 2, 30, 0, 0, time.UTC)

	if got := DayOf(instant.In(loc)); got != NewDay(2024, time.June, 1) {
		t.Errorf("DayOf() = %s, want 2024-06-01", got)
	}
}

func TestParseISODay(t *testing.T) {
	got, err := ParseISODay("2024-06-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != NewDay(2024, time.June, 15) {
		t.Errorf("ParseISODay() = %s", got)
	}

	if _, err := ParseISODay("15-06-2024"); err == nil {
		t.Error("expected error for non-ISO input")
	}
}

func TestDateParseError_Is(t *testing.T) {
	err := &DateParseError{Raw: "", Err: ErrEmptyDate}

	if !errors.Is(err, ErrDateParse) {
		t.Error("expected errors.Is(err, ErrDateParse)")
	}
	if !errors.Is(err, ErrEmptyDate) {
		t.Error("expected errors.Is(err, ErrEmptyDate)")
	}
}
