package dto

import (
	"time"

	"github.com/tuncerburak97/reservation-http-api/internal/models"
)

// SlotInfo is the engine's verdict for one candidate slot.
type SlotInfo struct {
	TimeSlot                 models.TimeSlot   `json:"timeSlot"`
	Status                   models.SlotStatus `json:"status"`
	Reason                   string            `json:"reason,omitempty"`
	IsBookable               bool              `json:"isBookable"`
	AvailableEmployeeUserIDs []string          `json:"availableEmployeeUserIds"`
	ReservedEmployeeUserIDs  []string          `json:"reservedEmployeeUserIds,omitempty"`
}

// DayAvailabilityResponse carries every candidate slot for one business day,
// bucketed by status plus a combined start-ordered timeline.
type DayAvailabilityResponse struct {
	BusinessID     string     `json:"businessId"`
	Date           string     `json:"date"`
	AvailableSlots []SlotInfo `json:"availableSlots"`
	BlockedSlots   []SlotInfo `json:"blockedSlots"`
	BookedSlots    []SlotInfo `json:"bookedSlots"`
	ExpiredSlots   []SlotInfo `json:"expiredSlots"`
	Slots          []SlotInfo `json:"slots"`
}

// CreateAvailabilityRuleRequest defines the payload for creating an
// availability rule. Which date fields are required depends on the type;
// the service enforces that after struct validation.
type CreateAvailabilityRuleRequest struct {
	BusinessID     string                  `json:"businessId" validate:"required"`
	Type           models.AvailabilityType `json:"availabilityType" validate:"required,oneof=WEEKLY_RECURRING SPECIFIC_DATE DATE_RANGE"`
	DayOfWeek      *models.Weekday         `json:"dayOfWeek,omitempty"`
	SpecificDate   *time.Time              `json:"specificDate,omitempty"`
	StartDate      *time.Time              `json:"startDate,omitempty"`
	EndDate        *time.Time              `json:"endDate,omitempty"`
	AvailableSlots []models.TimeSlot       `json:"availableSlots,omitempty"`
	BlockedSlots   []models.TimeSlot       `json:"blockedSlots,omitempty"`
	Active         *bool                   `json:"isActive,omitempty"`
	BlockReason    string                  `json:"blockReason,omitempty"`
}

// UpdateAvailabilityRuleRequest updates mutable rule fields.
type UpdateAvailabilityRuleRequest struct {
	AvailableSlots []models.TimeSlot `json:"availableSlots,omitempty"`
	BlockedSlots   []models.TimeSlot `json:"blockedSlots,omitempty"`
	Active         *bool             `json:"isActive,omitempty"`
	BlockReason    *string           `json:"blockReason,omitempty"`
}
