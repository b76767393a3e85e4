package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// ClockTime is a wall-clock time of day with minute precision, stored as
// minutes after midnight.
type ClockTime int

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ParseClock accepts "HH:MM" and "HH:MM:SS" (seconds must be zero).
func ParseClock(s string) (ClockTime, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Second() != 0 {
			return 0, fmt.Errorf("time %q must not carry seconds", s)
		}
		return NewClockTime(t.Hour(), t.Minute()), nil
	}
	return 0, fmt.Errorf("invalid time %q, use HH:MM", s)
}

// ClockOf returns the time of day of t, truncated to the minute.
func ClockOf(t time.Time) ClockTime {
	return NewClockTime(t.Hour(), t.Minute())
}

func (c ClockTime) Hour() int   { return int(c) / 60 }
func (c ClockTime) Minute() int { return int(c) % 60 }

func (c ClockTime) Valid() bool {
	return c >= 0 && c < minutesPerDay
}

// Duration is the offset from midnight.
func (c ClockTime) Duration() time.Duration {
	return time.Duration(c) * time.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// On places c on the calendar day of date in loc.
func (c ClockTime) On(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), 0, 0, loc)
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Value implements driver.Valuer for SQL time columns.
func (c ClockTime) Value() (driver.Value, error) {
	return c.String() + ":00", nil
}

// Scan implements sql.Scanner for SQL time columns.
func (c *ClockTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = 0
		return nil
	case string:
		return c.scanString(v)
	case []byte:
		return c.scanString(string(v))
	case time.Time:
		*c = ClockOf(v)
		return nil
	case int64:
		// microseconds since midnight
		*c = ClockTime(v / int64(time.Minute/time.Microsecond))
		return nil
	default:
		return fmt.Errorf("cannot scan %T into ClockTime", value)
	}
}

func (c *ClockTime) scanString(s string) error {
	// Postgres may return fractional seconds, e.g. "09:30:00.000000"
	if len(s) > 8 {
		s = s[:8]
	}
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
		if err != nil {
			return fmt.Errorf("cannot scan %q into ClockTime", s)
		}
	}
	*c = NewClockTime(t.Hour(), t.Minute())
	return nil
}
