package models

import (
	"encoding/json"
	"time"
)

// Reservation is a customer's claim on one time slot with one employee.
// Cancelled reservations are kept for history and excluded from conflict
// checks by the repository queries.
type Reservation struct {
	ID                     string    `db:"id" json:"id"`
	UserID                 string    `db:"user_id" json:"userId"`
	BusinessID             string    `db:"business_id" json:"businessId"`
	ReservationDate        time.Time `db:"reservation_date" json:"reservationDate"`
	SlotStart              ClockTime `db:"slot_start" json:"-"`
	SlotEnd                ClockTime `db:"slot_end" json:"-"`
	AssignedEmployeeUserID string    `db:"assigned_employee_user_id" json:"assignedEmployeeUserId"`
	Notes                  *string   `db:"notes" json:"notes,omitempty"`
	IsCancelled            bool      `db:"is_cancelled" json:"isCancelled"`
	CreatedAt              time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt              time.Time `db:"updated_at" json:"updatedAt"`
}

// Slot returns the reserved interval as a TimeSlot.
func (r Reservation) Slot() TimeSlot {
	return TimeSlot{Start: r.SlotStart, End: r.SlotEnd}
}

// MarshalJSON renders the reserved interval as a nested timeSlot object.
func (r Reservation) MarshalJSON() ([]byte, error) {
	type alias Reservation
	return json.Marshal(struct {
		alias
		TimeSlot TimeSlot `json:"timeSlot"`
	}{alias(r), r.Slot()})
}

// ReservationFilter captures filtering criteria for listing reservations.
type ReservationFilter struct {
	BusinessID string
	UserID     string
	Date       *time.Time
	Page       int
	PageSize   int
}
