package models

import "time"

// SlotStatus is the classification outcome for a candidate slot.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "AVAILABLE"
	SlotBooked    SlotStatus = "BOOKED"
	SlotBlocked   SlotStatus = "BLOCKED"
	SlotExpired   SlotStatus = "EXPIRED"
)

// AvailabilityType selects which date predicate an availability rule uses.
type AvailabilityType string

const (
	WeeklyRecurring AvailabilityType = "WEEKLY_RECURRING"
	SpecificDate    AvailabilityType = "SPECIFIC_DATE"
	DateRange       AvailabilityType = "DATE_RANGE"
)

// Weekday names a day of week for weekly recurring rules.
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

// WeekdayOf converts a time.Weekday.
func WeekdayOf(d time.Weekday) Weekday {
	switch d {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// AvailabilityRule is a business-authored constraint scoped by recurrence,
// a specific date, or a date range. Rules are additive: all active rules
// matching a date are unioned by the resolver, never ranked.
type AvailabilityRule struct {
	ID             string           `db:"id" json:"id"`
	BusinessID     string           `db:"business_id" json:"businessId"`
	Type           AvailabilityType `db:"availability_type" json:"availabilityType"`
	DayOfWeek      *Weekday         `db:"day_of_week" json:"dayOfWeek,omitempty"`
	SpecificDate   *time.Time       `db:"specific_date" json:"specificDate,omitempty"`
	StartDate      *time.Time       `db:"start_date" json:"startDate,omitempty"`
	EndDate        *time.Time       `db:"end_date" json:"endDate,omitempty"`
	AvailableSlots TimeSlotList     `db:"available_slots" json:"availableSlots"`
	BlockedSlots   TimeSlotList     `db:"blocked_slots" json:"blockedSlots"`
	Active         bool             `db:"is_active" json:"isActive"`
	BlockReason    string           `db:"block_reason" json:"blockReason,omitempty"`
	CreatedAt      time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time        `db:"updated_at" json:"updatedAt"`
}

// AppliesTo reports whether the rule's date predicate matches the given day.
// Inactive rules never apply.
func (r AvailabilityRule) AppliesTo(date time.Time) bool {
	if !r.Active {
		return false
	}
	switch r.Type {
	case WeeklyRecurring:
		return r.DayOfWeek != nil && *r.DayOfWeek == WeekdayOf(date.Weekday())
	case SpecificDate:
		return r.SpecificDate != nil && sameDate(*r.SpecificDate, date)
	case DateRange:
		if r.StartDate == nil || r.EndDate == nil {
			return false
		}
		d := dateOnly(date)
		return !d.Before(dateOnly(*r.StartDate)) && !d.After(dateOnly(*r.EndDate))
	default:
		return false
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
