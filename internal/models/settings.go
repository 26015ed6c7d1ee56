package models

import "time"

// Default slot generation parameters applied when a business has not
// configured its own settings yet.
const (
	DefaultSlotDurationMinutes    = 30
	DefaultMaxAdvanceBookingDays  = 30
	DefaultMinAdvanceBookingHours = 2

	// MaxSlotsPerDay bounds the generator against degenerate settings
	// (zero duration, wrapped windows) producing an unbounded loop.
	MaxSlotsPerDay = 48
)

// ReservationSettings is the per-business configuration governing slot
// generation. One row per business, lazily created with defaults on first
// availability lookup.
type ReservationSettings struct {
	ID                     string    `db:"id" json:"id"`
	BusinessID             string    `db:"business_id" json:"businessId"`
	DefaultStartTime       ClockTime `db:"default_start_time" json:"defaultStartTime"`
	DefaultEndTime         ClockTime `db:"default_end_time" json:"defaultEndTime"`
	SlotDurationMinutes    int       `db:"slot_duration_minutes" json:"slotDurationMinutes"`
	MaxAdvanceBookingDays  int       `db:"max_advance_booking_days" json:"maxAdvanceBookingDays"`
	MinAdvanceBookingHours int       `db:"min_advance_booking_hours" json:"minAdvanceBookingHours"`
	AcceptReservations     bool      `db:"accept_reservations" json:"acceptReservations"`
	AutoConfirm            bool      `db:"auto_confirm" json:"autoConfirm"`
	CreatedAt              time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt              time.Time `db:"updated_at" json:"updatedAt"`
}

// DefaultReservationSettings returns the settings a business starts with:
// open 08:00 to midnight, 30-minute slots, accepting reservations.
func DefaultReservationSettings(businessID string) ReservationSettings {
	return ReservationSettings{
		BusinessID:             businessID,
		DefaultStartTime:       NewClockTime(8, 0),
		DefaultEndTime:         Midnight,
		SlotDurationMinutes:    DefaultSlotDurationMinutes,
		MaxAdvanceBookingDays:  DefaultMaxAdvanceBookingDays,
		MinAdvanceBookingHours: DefaultMinAdvanceBookingHours,
		AcceptReservations:     true,
		AutoConfirm:            true,
	}
}
