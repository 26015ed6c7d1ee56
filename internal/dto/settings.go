package dto

import "github.com/tuncerburak97/reservation-http-api/internal/models"

// UpsertSettingsRequest creates or updates reservation settings for a
// business; nil fields keep their current (or default) value.
type UpsertSettingsRequest struct {
	BusinessID             string            `json:"businessId" validate:"required"`
	DefaultStartTime       *models.ClockTime `json:"defaultStartTime,omitempty"`
	DefaultEndTime         *models.ClockTime `json:"defaultEndTime,omitempty"`
	SlotDurationMinutes    *int              `json:"slotDurationMinutes,omitempty" validate:"omitempty,min=5,max=480"`
	MaxAdvanceBookingDays  *int              `json:"maxAdvanceBookingDays,omitempty" validate:"omitempty,min=1,max=365"`
	MinAdvanceBookingHours *int              `json:"minAdvanceBookingHours,omitempty" validate:"omitempty,min=0,max=168"`
	AcceptReservations     *bool             `json:"acceptReservations,omitempty"`
	AutoConfirm            *bool             `json:"autoConfirm,omitempty"`
}
