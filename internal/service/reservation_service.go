package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tuncerburak97/reservation-http-api/internal/dto"
	"github.com/tuncerburak97/reservation-http-api/internal/models"
	"github.com/tuncerburak97/reservation-http-api/internal/repository"
	appErrors "github.com/tuncerburak97/reservation-http-api/pkg/errors"
)

type reservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	FindByID(ctx context.Context, id string) (*models.Reservation, error)
	ListByBusinessAndDate(ctx context.Context, businessID string, date time.Time) ([]models.Reservation, error)
	ListByBusiness(ctx context.Context, businessID string) ([]models.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]models.Reservation, error)
	FindConflicts(ctx context.Context, businessID string, date time.Time, employeeUserID string, slot models.TimeSlot) ([]models.Reservation, error)
	Update(ctx context.Context, reservation *models.Reservation) error
	Cancel(ctx context.Context, id string) error
}

// ReservationServiceConfig tunes booking behaviour.
type ReservationServiceConfig struct {
	// PrecheckConflicts runs a conflict query before inserting. The partial
	// unique index catches the race either way; the precheck just gives a
	// friendlier error without burning an insert.
	PrecheckConflicts bool
}

// ReservationService handles the booking flow: validation, employee
// assignment, the advance-window gates, and conflict detection.
type ReservationService struct {
	repo       reservationRepository
	businesses businessFinder
	users      userFinder
	settings   settingsProvider
	cache      *CacheService
	validator  *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
	cfg        ReservationServiceConfig
}

// ReservationServiceParams groups constructor dependencies.
type ReservationServiceParams struct {
	Repo       reservationRepository
	Businesses businessFinder
	Users      userFinder
	Settings   settingsProvider
	Cache      *CacheService
	Logger     *zap.Logger
	Config     ReservationServiceConfig
}

// NewReservationService constructs a ReservationService.
func NewReservationService(params ReservationServiceParams) *ReservationService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReservationService{
		repo:       params.Repo,
		businesses: params.Businesses,
		users:      params.Users,
		settings:   params.Settings,
		cache:      params.Cache,
		validator:  validator.New(),
		logger:     logger,
		now:        time.Now,
		cfg:        params.Config,
	}
}

// Create books a slot. When no employee is requested the first active
// employee free for the slot is assigned. The partial unique index on
// (business, date, employee, slot start) backstops the conflict check, so
// two racing bookings cannot both commit.
func (s *ReservationService) Create(ctx context.Context, req dto.CreateReservationRequest) (*models.Reservation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if !req.TimeSlot.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "timeSlot start must be before end")
	}

	user, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.Active {
		return nil, appErrors.Clone(appErrors.ErrValidation, "user is inactive")
	}

	business, err := s.businesses.Get(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.GetOrCreateDefaults(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}
	if !settings.AcceptReservations {
		return nil, appErrors.ErrBookingClosed
	}

	date := dateOnly(req.ReservationDate)
	if err := s.checkAdvanceWindow(date, req.TimeSlot.Start, settings); err != nil {
		return nil, err
	}

	employeeID, err := s.resolveEmployee(ctx, business, date, req.TimeSlot, req.AssignedEmployeeUserID, "")
	if err != nil {
		return nil, err
	}

	reservation := &models.Reservation{
		UserID:                 req.UserID,
		BusinessID:             req.BusinessID,
		ReservationDate:        date,
		SlotStart:              req.TimeSlot.Start,
		SlotEnd:                req.TimeSlot.End,
		AssignedEmployeeUserID: employeeID,
		Notes:                  optional(req.Notes),
	}
	if err := s.repo.Create(ctx, reservation); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlot) {
			return nil, appErrors.ErrSlotTaken
		}
		return nil, err
	}

	s.invalidateAvailability(ctx, req.BusinessID)
	s.logger.Info("reservation created",
		zap.String("reservationId", reservation.ID),
		zap.String("businessId", reservation.BusinessID),
		zap.String("employeeUserId", reservation.AssignedEmployeeUserID),
		zap.String("slot", req.TimeSlot.String()))
	return reservation, nil
}

// Get fetches a reservation by ID.
func (s *ReservationService) Get(ctx context.Context, id string) (*models.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrReservationNotFound
		}
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	return reservation, nil
}

// ListByBusiness returns a business's reservations, optionally narrowed to
// one date.
func (s *ReservationService) ListByBusiness(ctx context.Context, businessID string, date *time.Time) ([]models.Reservation, error) {
	if _, err := s.businesses.Get(ctx, businessID); err != nil {
		return nil, err
	}
	if date != nil {
		return s.repo.ListByBusinessAndDate(ctx, businessID, dateOnly(*date))
	}
	return s.repo.ListByBusiness(ctx, businessID)
}

// ListByUser returns a user's reservations.
func (s *ReservationService) ListByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update moves or reassigns an existing reservation, re-running the booking
// gates for the new slot.
func (s *ReservationService) Update(ctx context.Context, id string, req dto.UpdateReservationRequest) (*models.Reservation, error) {
	reservation, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation.IsCancelled {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "reservation is cancelled")
	}

	if req.ReservationDate != nil {
		reservation.ReservationDate = dateOnly(*req.ReservationDate)
	}
	if req.TimeSlot != nil {
		if !req.TimeSlot.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "timeSlot start must be before end")
		}
		reservation.SlotStart = req.TimeSlot.Start
		reservation.SlotEnd = req.TimeSlot.End
	}
	if req.Notes != nil {
		reservation.Notes = req.Notes
	}

	business, err := s.businesses.Get(ctx, reservation.BusinessID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.GetOrCreateDefaults(ctx, reservation.BusinessID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAdvanceWindow(reservation.ReservationDate, reservation.SlotStart, settings); err != nil {
		return nil, err
	}

	requested := reservation.AssignedEmployeeUserID
	if req.AssignedEmployeeUserID != nil {
		requested = *req.AssignedEmployeeUserID
	}
	employeeID, err := s.resolveEmployee(ctx, business, reservation.ReservationDate, reservation.Slot(), requested, reservation.ID)
	if err != nil {
		return nil, err
	}
	reservation.AssignedEmployeeUserID = employeeID
	reservation.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, reservation); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlot) {
			return nil, appErrors.ErrSlotTaken
		}
		return nil, err
	}
	s.invalidateAvailability(ctx, reservation.BusinessID)
	return reservation, nil
}

// Cancel soft-cancels a reservation, freeing its slot.
func (s *ReservationService) Cancel(ctx context.Context, id string) error {
	reservation, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if reservation.IsCancelled {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "reservation is already cancelled")
	}
	if err := s.repo.Cancel(ctx, id); err != nil {
		return err
	}
	s.invalidateAvailability(ctx, reservation.BusinessID)
	s.logger.Info("reservation cancelled", zap.String("reservationId", id), zap.String("businessId", reservation.BusinessID))
	return nil
}

// checkAdvanceWindow enforces the min/max advance booking gates relative to
// the slot's start datetime.
func (s *ReservationService) checkAdvanceWindow(date time.Time, start models.ClockTime, settings *models.ReservationSettings) error {
	now := s.now()
	slotStart := time.Date(date.Year(), date.Month(), date.Day(), start.Hour(), start.Minute(), 0, 0, now.Location())

	minAdvance := time.Duration(settings.MinAdvanceBookingHours) * time.Hour
	if slotStart.Before(now.Add(minAdvance)) {
		if settings.MinAdvanceBookingHours > 0 {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("reservations require at least %d hours notice", settings.MinAdvanceBookingHours))
		}
		return appErrors.Clone(appErrors.ErrValidation, "time slot has already passed")
	}

	if settings.MaxAdvanceBookingDays > 0 {
		latest := dateOnly(now).AddDate(0, 0, settings.MaxAdvanceBookingDays)
		if dateOnly(date).After(latest) {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("reservations can be made at most %d days in advance", settings.MaxAdvanceBookingDays))
		}
	}
	return nil
}

// resolveEmployee validates a requested employee or assigns the first
// active one free for the slot. excludeReservationID keeps an update from
// conflicting with itself.
func (s *ReservationService) resolveEmployee(ctx context.Context, business *models.Business, date time.Time, slot models.TimeSlot, requested string, excludeReservationID string) (string, error) {
	active := business.ActiveEmployees()
	if len(active) == 0 {
		return "", appErrors.Clone(appErrors.ErrPreconditionFailed, "no active employees available")
	}

	if requested != "" {
		if !business.HasActiveEmployee(requested) {
			return "", appErrors.Clone(appErrors.ErrValidation, "requested employee is not an active roster member")
		}
		if s.cfg.PrecheckConflicts {
			taken, err := s.employeeHasBooking(ctx, business.ID, date, requested, slot, excludeReservationID)
			if err != nil {
				return "", err
			}
			if taken {
				return "", appErrors.ErrSlotTaken
			}
		}
		return requested, nil
	}

	if !s.cfg.PrecheckConflicts {
		return active[0].UserID, nil
	}
	for _, employee := range active {
		taken, err := s.employeeHasBooking(ctx, business.ID, date, employee.UserID, slot, excludeReservationID)
		if err != nil {
			return "", err
		}
		if !taken {
			return employee.UserID, nil
		}
	}
	return "", appErrors.ErrSlotTaken
}

func (s *ReservationService) employeeHasBooking(ctx context.Context, businessID string, date time.Time, employeeUserID string, slot models.TimeSlot, excludeReservationID string) (bool, error) {
	conflicts, err := s.repo.FindConflicts(ctx, businessID, date, employeeUserID, slot)
	if err != nil {
		return false, fmt.Errorf("check conflicts: %w", err)
	}
	for _, conflict := range conflicts {
		if conflict.ID != excludeReservationID {
			return true, nil
		}
	}
	return false, nil
}

func (s *ReservationService) invalidateAvailability(ctx context.Context, businessID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, availabilityCachePattern(businessID)); err != nil {
		s.logger.Warn("availability cache invalidation failed", zap.String("businessId", businessID), zap.Error(err))
	}
}
