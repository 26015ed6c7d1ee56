package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ClockTime is a wall-clock time of day stored as minutes since midnight.
// It marshals to "HH:MM" in JSON and to "HH:MM:SS" for Postgres TIME columns.
type ClockTime int

// NewClockTime builds a ClockTime from hours and minutes.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ParseClockTime parses "HH:MM" or "HH:MM:SS".
func ParseClockTime(raw string) (ClockTime, error) {
	layouts := []string{"15:04", "15:04:05"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return NewClockTime(t.Hour(), t.Minute()), nil
		}
	}
	return 0, fmt.Errorf("invalid clock time %q, expected HH:MM", raw)
}

// Hour returns the hour component.
func (c ClockTime) Hour() int { return int(c) / 60 }

// Minute returns the minute component.
func (c ClockTime) Minute() int { return int(c) % 60 }

// Add returns the clock time advanced by the given number of minutes.
// The result may exceed 24h; callers detect day wrap by comparing against EndOfDay.
func (c ClockTime) Add(minutes int) ClockTime { return c + ClockTime(minutes) }

// Before reports whether c is earlier than other.
func (c ClockTime) Before(other ClockTime) bool { return c < other }

// String renders "HH:MM".
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Midnight is 00:00; EndOfDay is 23:59, the clamp for schedules that cross midnight.
const (
	Midnight ClockTime = 0
	EndOfDay ClockTime = 23*60 + 59
)

// MarshalJSON renders the time as a "HH:MM" string.
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts "HH:MM" or "HH:MM:SS" strings.
func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseClockTime(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Value implements driver.Valuer for TIME columns.
func (c ClockTime) Value() (driver.Value, error) {
	return fmt.Sprintf("%02d:%02d:00", c.Hour(), c.Minute()), nil
}

// Scan implements sql.Scanner for TIME columns.
func (c *ClockTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*c = 0
		return nil
	case time.Time:
		*c = NewClockTime(v.Hour(), v.Minute())
		return nil
	case []byte:
		parsed, err := ParseClockTime(string(v))
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case string:
		parsed, err := ParseClockTime(v)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into ClockTime", src)
	}
}

// TimeSlot is a half-open [Start, End) interval within a single day.
type TimeSlot struct {
	Start ClockTime `json:"startTime"`
	End   ClockTime `json:"endTime"`
}

// NewTimeSlot builds a slot from start and end times.
func NewTimeSlot(start, end ClockTime) TimeSlot {
	return TimeSlot{Start: start, End: end}
}

// Valid reports whether the slot has positive length.
func (s TimeSlot) Valid() bool { return s.Start < s.End }

// Overlaps reports whether two half-open intervals intersect.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.Start < other.End && s.End > other.Start
}

// String renders "09:00-09:30".
func (s TimeSlot) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// TimeSlotList stores a slice of slots as a JSONB column.
type TimeSlotList []TimeSlot

// Value implements driver.Valuer.
func (l TimeSlotList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *TimeSlotList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into TimeSlotList", src)
	}
}
