package dto

import (
	"time"

	"github.com/tuncerburak97/reservation-http-api/internal/models"
)

// CreateReservationRequest defines the booking payload. When no employee is
// requested the service assigns the first active one.
type CreateReservationRequest struct {
	UserID                 string          `json:"userId" validate:"required"`
	BusinessID             string          `json:"businessId" validate:"required"`
	ReservationDate        time.Time       `json:"reservationDate" validate:"required"`
	TimeSlot               models.TimeSlot `json:"timeSlot" validate:"required"`
	AssignedEmployeeUserID string          `json:"assignedEmployeeUserId,omitempty"`
	Notes                  string          `json:"notes,omitempty"`
}

// UpdateReservationRequest updates mutable reservation fields; nil fields
// keep their current value.
type UpdateReservationRequest struct {
	ReservationDate        *time.Time       `json:"reservationDate,omitempty"`
	TimeSlot               *models.TimeSlot `json:"timeSlot,omitempty"`
	AssignedEmployeeUserID *string          `json:"assignedEmployeeUserId,omitempty"`
	Notes                  *string          `json:"notes,omitempty"`
}
