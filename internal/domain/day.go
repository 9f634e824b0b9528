package domain

import (
	"fmt"
	"time"
)

const isoDayLayout = "2006-01-02"

// Day is a calendar day without time-of-day or zone.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDay(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DayOf returns the calendar day t falls on in its own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

func ParseISODay(s string) (Day, error) {
	t, err := time.Parse(isoDayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("parse iso day %q: %w", s, err)
	}
	return DayOf(t), nil
}

func (d Day) IsZero() bool {
	return d == Day{}
}

// ISO formats the day as YYYY-MM-DD.
func (d Day) ISO() string {
	return d.midnightUTC().Format(isoDayLayout)
}

func (d Day) String() string {
	return d.ISO()
}

// In returns midnight of the day in loc.
func (d Day) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// DaysUntil returns the number of whole days from d to other. The result is
// computed on UTC midnights so daylight-saving transitions never skew it.
func (d Day) DaysUntil(other Day) int {
	return int(other.midnightUTC().Sub(d.midnightUTC()) / (24 * time.Hour))
}

func (d Day) Before(other Day) bool {
	return d.DaysUntil(other) > 0
}

func (d Day) midnightUTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
