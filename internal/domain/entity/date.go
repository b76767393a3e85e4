package entity

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// DateOf returns the calendar day of t as midnight UTC, the form every
// appointment_date is compared in.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return t, nil
}

// WeekdayIndex numbers days Monday=0 .. Sunday=6.
func WeekdayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}
