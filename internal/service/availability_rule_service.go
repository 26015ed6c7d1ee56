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
	appErrors "github.com/tuncerburak97/reservation-http-api/pkg/errors"
)

type availabilityRuleRepository interface {
	Create(ctx context.Context, rule *models.AvailabilityRule) error
	FindByID(ctx context.Context, id string) (*models.AvailabilityRule, error)
	ListByBusiness(ctx context.Context, businessID string) ([]models.AvailabilityRule, error)
	Update(ctx context.Context, rule *models.AvailabilityRule) error
	Delete(ctx context.Context, id string) error
}

// AvailabilityRuleService manages availability rule CRUD with per-type
// payload validation.
type AvailabilityRuleService struct {
	repo       availabilityRuleRepository
	businesses businessFinder
	cache      *CacheService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewAvailabilityRuleService constructs an AvailabilityRuleService.
func NewAvailabilityRuleService(repo availabilityRuleRepository, businesses businessFinder, cache *CacheService, logger *zap.Logger) *AvailabilityRuleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityRuleService{
		repo:       repo,
		businesses: businesses,
		cache:      cache,
		validator:  validator.New(),
		logger:     logger,
	}
}

// Create validates and persists a new rule.
func (s *AvailabilityRuleService) Create(ctx context.Context, req dto.CreateAvailabilityRuleRequest) (*models.AvailabilityRule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if err := validateRuleShape(req); err != nil {
		return nil, err
	}
	if _, err := s.businesses.Get(ctx, req.BusinessID); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	rule := &models.AvailabilityRule{
		BusinessID:     req.BusinessID,
		Type:           req.Type,
		DayOfWeek:      req.DayOfWeek,
		SpecificDate:   req.SpecificDate,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		AvailableSlots: models.TimeSlotList(req.AvailableSlots),
		BlockedSlots:   models.TimeSlotList(req.BlockedSlots),
		Active:         active,
		BlockReason:    req.BlockReason,
	}
	if err := validateRuleSlots(rule); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, rule); err != nil {
		return nil, err
	}
	s.invalidateAvailability(ctx, req.BusinessID)
	s.logger.Info("availability rule created",
		zap.String("ruleId", rule.ID),
		zap.String("businessId", rule.BusinessID),
		zap.String("type", string(rule.Type)))
	return rule, nil
}

// Get fetches a rule by ID.
func (s *AvailabilityRuleService) Get(ctx context.Context, id string) (*models.AvailabilityRule, error) {
	rule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "availability rule not found")
		}
		return nil, fmt.Errorf("find availability rule: %w", err)
	}
	return rule, nil
}

// ListByBusiness returns every rule a business has authored.
func (s *AvailabilityRuleService) ListByBusiness(ctx context.Context, businessID string) ([]models.AvailabilityRule, error) {
	if _, err := s.businesses.Get(ctx, businessID); err != nil {
		return nil, err
	}
	return s.repo.ListByBusiness(ctx, businessID)
}

// Update applies mutable fields to an existing rule. The rule's type and
// date predicate are immutable; author a new rule to change them.
func (s *AvailabilityRuleService) Update(ctx context.Context, id string, req dto.UpdateAvailabilityRuleRequest) (*models.AvailabilityRule, error) {
	rule, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.AvailableSlots != nil {
		rule.AvailableSlots = models.TimeSlotList(req.AvailableSlots)
	}
	if req.BlockedSlots != nil {
		rule.BlockedSlots = models.TimeSlotList(req.BlockedSlots)
	}
	if req.Active != nil {
		rule.Active = *req.Active
	}
	if req.BlockReason != nil {
		rule.BlockReason = *req.BlockReason
	}
	if err := validateRuleSlots(rule); err != nil {
		return nil, err
	}

	rule.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, rule); err != nil {
		return nil, err
	}
	s.invalidateAvailability(ctx, rule.BusinessID)
	return rule, nil
}

// Deactivate flips a rule inactive without deleting it.
func (s *AvailabilityRuleService) Deactivate(ctx context.Context, id string) (*models.AvailabilityRule, error) {
	inactive := false
	return s.Update(ctx, id, dto.UpdateAvailabilityRuleRequest{Active: &inactive})
}

// Delete removes a rule permanently.
func (s *AvailabilityRuleService) Delete(ctx context.Context, id string) error {
	rule, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateAvailability(ctx, rule.BusinessID)
	return nil
}

func (s *AvailabilityRuleService) invalidateAvailability(ctx context.Context, businessID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, availabilityCachePattern(businessID)); err != nil {
		s.logger.Warn("availability cache invalidation failed", zap.String("businessId", businessID), zap.Error(err))
	}
}

// validateRuleShape enforces the date fields each rule type requires.
func validateRuleShape(req dto.CreateAvailabilityRuleRequest) error {
	switch req.Type {
	case models.WeeklyRecurring:
		if req.DayOfWeek == nil {
			return appErrors.Clone(appErrors.ErrValidation, "dayOfWeek is required for WEEKLY_RECURRING rules")
		}
	case models.SpecificDate:
		if req.SpecificDate == nil {
			return appErrors.Clone(appErrors.ErrValidation, "specificDate is required for SPECIFIC_DATE rules")
		}
	case models.DateRange:
		if req.StartDate == nil || req.EndDate == nil {
			return appErrors.Clone(appErrors.ErrValidation, "startDate and endDate are required for DATE_RANGE rules")
		}
		if req.EndDate.Before(*req.StartDate) {
			return appErrors.Clone(appErrors.ErrValidation, "endDate must not be before startDate")
		}
	}
	return nil
}

func validateRuleSlots(rule *models.AvailabilityRule) error {
	for _, slot := range rule.AvailableSlots {
		if !slot.Valid() {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid available slot %s", slot))
		}
	}
	for _, slot := range rule.BlockedSlots {
		if !slot.Valid() {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid blocked slot %s", slot))
		}
	}
	return nil
}
