package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/tuncerburak97/reservation-http-api/internal/dto"
	"github.com/tuncerburak97/reservation-http-api/internal/models"
	appErrors "github.com/tuncerburak97/reservation-http-api/pkg/errors"
)

const (
	reasonDateAlreadyPassed = "date has already passed"
	reasonSlotAlreadyPassed = "time slot has already passed"
	reasonNoActiveEmployees = "no active employees available"
	reasonEmployeesReserved = "employee(s) have existing reservations"
	reasonNotInAvailable    = "not in available time slots"
	reasonBlockedDefault    = "blocked by business"
)

type businessFinder interface {
	Get(ctx context.Context, id string) (*models.Business, error)
}

type settingsProvider interface {
	GetOrCreateDefaults(ctx context.Context, businessID string) (*models.ReservationSettings, error)
}

type ruleFinder interface {
	FindWeekly(ctx context.Context, businessID string, day models.Weekday) ([]models.AvailabilityRule, error)
	FindSpecificDate(ctx context.Context, businessID string, date time.Time) ([]models.AvailabilityRule, error)
	FindRangeContaining(ctx context.Context, businessID string, date time.Time) ([]models.AvailabilityRule, error)
}

type reservationLister interface {
	ListByBusinessAndDate(ctx context.Context, businessID string, date time.Time) ([]models.Reservation, error)
}

// AvailabilityServiceConfig tunes availability resolution behaviour.
type AvailabilityServiceConfig struct {
	CacheTTL     time.Duration
	MaxRangeDays int
}

// AvailabilityService resolves a business day into classified time slots.
// Each resolution fetches its inputs fresh; the service holds no mutable
// state between calls beyond the optional day cache.
type AvailabilityService struct {
	businesses   businessFinder
	settings     settingsProvider
	rules        ruleFinder
	reservations reservationLister
	cache        *CacheService
	metrics      *MetricsService
	logger       *zap.Logger
	now          func() time.Time
	cfg          AvailabilityServiceConfig
}

// AvailabilityServiceParams groups constructor dependencies.
type AvailabilityServiceParams struct {
	Businesses   businessFinder
	Settings     settingsProvider
	Rules        ruleFinder
	Reservations reservationLister
	Cache        *CacheService
	Metrics      *MetricsService
	Logger       *zap.Logger
	Config       AvailabilityServiceConfig
}

// NewAvailabilityService constructs an AvailabilityService with sane defaults.
func NewAvailabilityService(params AvailabilityServiceParams) *AvailabilityService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.MaxRangeDays <= 0 {
		cfg.MaxRangeDays = 31
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{
		businesses:   params.Businesses,
		settings:     params.Settings,
		rules:        params.Rules,
		reservations: params.Reservations,
		cache:        params.Cache,
		metrics:      params.Metrics,
		logger:       logger,
		now:          time.Now,
		cfg:          cfg,
	}
}

// GetAvailability resolves every candidate slot for one business day.
// Results for future days are served from cache when possible; today's
// result is never cached because expiry depends on the wall clock.
func (s *AvailabilityService) GetAvailability(ctx context.Context, businessID string, date time.Time) (*dto.DayAvailabilityResponse, error) {
	if businessID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "businessId is required")
	}
	date = dateOnly(date)
	now := s.now()

	cacheable := s.cache.Enabled() && date.After(dateOnly(now))
	cacheKey := availabilityCacheKey(businessID, date)
	if cacheable {
		var cached dto.DayAvailabilityResponse
		start := time.Now()
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			if s.metrics != nil {
				s.metrics.ObserveSlotResolution("cache", time.Since(start))
			}
			return &cached, nil
		}
	}

	start := time.Now()
	result, err := s.resolveDay(ctx, businessID, date, now)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveSlotResolution("database", time.Since(start))
	}

	if cacheable {
		if err := s.cache.Set(ctx, cacheKey, result, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("availability cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return result, nil
}

// GetAvailabilityForRange resolves each day in [startDate, endDate] in
// ascending order. The inclusive span is capped by configuration.
func (s *AvailabilityService) GetAvailabilityForRange(ctx context.Context, businessID string, startDate, endDate time.Time) ([]dto.DayAvailabilityResponse, error) {
	startDate = dateOnly(startDate)
	endDate = dateOnly(endDate)
	if endDate.Before(startDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must not be before startDate")
	}
	days := int(endDate.Sub(startDate).Hours()/24) + 1
	if days > s.cfg.MaxRangeDays {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("date range exceeds %d days", s.cfg.MaxRangeDays))
	}

	results := make([]dto.DayAvailabilityResponse, 0, days)
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		day, err := s.GetAvailability(ctx, businessID, d)
		if err != nil {
			return nil, err
		}
		results = append(results, *day)
	}
	return results, nil
}

func (s *AvailabilityService) resolveDay(ctx context.Context, businessID string, date time.Time, now time.Time) (*dto.DayAvailabilityResponse, error) {
	business, err := s.businesses.Get(ctx, businessID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.GetOrCreateDefaults(ctx, businessID)
	if err != nil {
		return nil, err
	}

	rules, err := s.rulesForDate(ctx, businessID, date)
	if err != nil {
		return nil, err
	}

	reservations, err := s.reservations.ListByBusinessAndDate(ctx, businessID, date)
	if err != nil {
		return nil, err
	}

	employees := business.ActiveEmployees()
	candidates := generateSlots(*settings)

	classified := make([]dto.SlotInfo, 0, len(candidates))
	for _, slot := range candidates {
		classified = append(classified, classifySlot(slot, rules, reservations, employees, date, now))
	}

	return aggregateDay(businessID, date, classified), nil
}

// rulesForDate unions the active rules matching the date across all three
// rule shapes. Rules are additive; no ranking between them.
func (s *AvailabilityService) rulesForDate(ctx context.Context, businessID string, date time.Time) ([]models.AvailabilityRule, error) {
	weekly, err := s.rules.FindWeekly(ctx, businessID, models.WeekdayOf(date.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("resolve weekly rules: %w", err)
	}
	specific, err := s.rules.FindSpecificDate(ctx, businessID, date)
	if err != nil {
		return nil, fmt.Errorf("resolve specific date rules: %w", err)
	}
	ranged, err := s.rules.FindRangeContaining(ctx, businessID, date)
	if err != nil {
		return nil, fmt.Errorf("resolve date range rules: %w", err)
	}

	merged := make([]models.AvailabilityRule, 0, len(weekly)+len(specific)+len(ranged))
	merged = append(merged, weekly...)
	merged = append(merged, specific...)
	merged = append(merged, ranged...)
	return merged, nil
}

// generateSlots walks a cursor from the configured start time emitting
// fixed-duration slots. A schedule ending at midnight, or apparently before
// its own start, is clamped to 23:59. A final slot that would overrun the
// end is dropped rather than truncated.
func generateSlots(settings models.ReservationSettings) []models.TimeSlot {
	duration := settings.SlotDurationMinutes
	if duration <= 0 {
		duration = models.DefaultSlotDurationMinutes
	}

	end := settings.DefaultEndTime
	if end == models.Midnight || end.Before(settings.DefaultStartTime) {
		end = models.EndOfDay
	}

	slots := make([]models.TimeSlot, 0, models.MaxSlotsPerDay)
	cursor := settings.DefaultStartTime
	for len(slots) < models.MaxSlotsPerDay {
		next := cursor.Add(duration)
		if end.Before(next) {
			break
		}
		slots = append(slots, models.NewTimeSlot(cursor, next))
		cursor = next
	}
	return slots
}

// classifySlot derives the status of one candidate slot. Checks run in
// strict priority order; each check assumes the earlier ones did not
// already decide the slot.
func classifySlot(slot models.TimeSlot, rules []models.AvailabilityRule, reservations []models.Reservation, employees []models.BusinessEmployee, date time.Time, now time.Time) dto.SlotInfo {
	info := dto.SlotInfo{TimeSlot: slot}

	// 1. Rule blocks win unconditionally, even on past dates.
	for _, rule := range rules {
		for _, blocked := range rule.BlockedSlots {
			if slot.Overlaps(blocked) {
				reason := rule.BlockReason
				if reason == "" {
					reason = reasonBlockedDefault
				}
				info.Status = models.SlotBlocked
				info.Reason = reason
				return info
			}
		}
	}

	// 2. Expiry.
	today := dateOnly(now)
	target := dateOnly(date)
	if target.Before(today) {
		info.Status = models.SlotExpired
		info.Reason = reasonDateAlreadyPassed
		return info
	}
	if target.Equal(today) {
		nowClock := models.NewClockTime(now.Hour(), now.Minute())
		if slot.Start.Before(nowClock) {
			info.Status = models.SlotExpired
			info.Reason = reasonSlotAlreadyPassed
			return info
		}
	}

	// 3. Staffing.
	if len(employees) == 0 {
		info.Status = models.SlotBlocked
		info.Reason = reasonNoActiveEmployees
		return info
	}

	// 4. Per-employee partition against assigned reservations.
	available := make([]string, 0, len(employees))
	reserved := make([]string, 0)
	for _, employee := range employees {
		if employeeHasConflict(employee.UserID, slot, reservations) {
			reserved = append(reserved, employee.UserID)
		} else {
			available = append(available, employee.UserID)
		}
	}

	if len(available) > 0 {
		info.Status = models.SlotAvailable
		info.IsBookable = true
		info.AvailableEmployeeUserIDs = available
		info.ReservedEmployeeUserIDs = reserved
	} else {
		info.Status = models.SlotBooked
		info.Reason = reasonEmployeesReserved
		info.ReservedEmployeeUserIDs = reserved
	}

	// 5. Once any rule allow-lists slots for the date, slots outside every
	// allow list are forced to BLOCKED regardless of staffing.
	if hasAllowList(rules) && !overlapsAnyAllowed(slot, rules) {
		return dto.SlotInfo{
			TimeSlot: slot,
			Status:   models.SlotBlocked,
			Reason:   reasonNotInAvailable,
		}
	}

	return info
}

func employeeHasConflict(userID string, slot models.TimeSlot, reservations []models.Reservation) bool {
	for _, reservation := range reservations {
		if reservation.IsCancelled || reservation.AssignedEmployeeUserID != userID {
			continue
		}
		if slot.Overlaps(reservation.Slot()) {
			return true
		}
	}
	return false
}

func hasAllowList(rules []models.AvailabilityRule) bool {
	for _, rule := range rules {
		if len(rule.AvailableSlots) > 0 {
			return true
		}
	}
	return false
}

func overlapsAnyAllowed(slot models.TimeSlot, rules []models.AvailabilityRule) bool {
	for _, rule := range rules {
		for _, allowed := range rule.AvailableSlots {
			if slot.Overlaps(allowed) {
				return true
			}
		}
	}
	return false
}

// aggregateDay partitions classified slots into status buckets and a
// combined timeline, each sorted ascending by start time.
func aggregateDay(businessID string, date time.Time, slots []dto.SlotInfo) *dto.DayAvailabilityResponse {
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].TimeSlot.Start < slots[j].TimeSlot.Start
	})

	resp := &dto.DayAvailabilityResponse{
		BusinessID:     businessID,
		Date:           date.Format("2006-01-02"),
		AvailableSlots: make([]dto.SlotInfo, 0),
		BlockedSlots:   make([]dto.SlotInfo, 0),
		BookedSlots:    make([]dto.SlotInfo, 0),
		ExpiredSlots:   make([]dto.SlotInfo, 0),
		Slots:          slots,
	}
	for _, slot := range slots {
		switch slot.Status {
		case models.SlotAvailable:
			resp.AvailableSlots = append(resp.AvailableSlots, slot)
		case models.SlotBlocked:
			resp.BlockedSlots = append(resp.BlockedSlots, slot)
		case models.SlotBooked:
			resp.BookedSlots = append(resp.BookedSlots, slot)
		case models.SlotExpired:
			resp.ExpiredSlots = append(resp.ExpiredSlots, slot)
		}
	}
	return resp
}

func availabilityCacheKey(businessID string, date time.Time) string {
	return fmt.Sprintf("avail:%s:%s", businessID, date.Format("2006-01-02"))
}

func availabilityCachePattern(businessID string) string {
	return fmt.Sprintf("avail:%s:*", businessID)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
