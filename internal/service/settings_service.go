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

type settingsRepository interface {
	FindByBusinessID(ctx context.Context, businessID string) (*models.ReservationSettings, error)
	List(ctx context.Context) ([]models.ReservationSettings, error)
	Create(ctx context.Context, settings *models.ReservationSettings) error
	Update(ctx context.Context, settings *models.ReservationSettings) error
	DeleteByBusinessID(ctx context.Context, businessID string) error
}

// SettingsService manages per-business reservation settings, lazily
// creating defaults on first access.
type SettingsService struct {
	repo       settingsRepository
	businesses businessFinder
	cache      *CacheService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(repo settingsRepository, businesses businessFinder, cache *CacheService, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{
		repo:       repo,
		businesses: businesses,
		cache:      cache,
		validator:  validator.New(),
		logger:     logger,
	}
}

// GetByBusinessID returns the settings row for a business.
func (s *SettingsService) GetByBusinessID(ctx context.Context, businessID string) (*models.ReservationSettings, error) {
	settings, err := s.repo.FindByBusinessID(ctx, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "reservation settings not found")
		}
		return nil, fmt.Errorf("find reservation settings: %w", err)
	}
	return settings, nil
}

// GetOrCreateDefaults returns the settings for a business, creating a
// default row on first access. Concurrent first accesses are collapsed by
// the business_id unique constraint; the insert loser re-reads the winner's
// row.
func (s *SettingsService) GetOrCreateDefaults(ctx context.Context, businessID string) (*models.ReservationSettings, error) {
	settings, err := s.repo.FindByBusinessID(ctx, businessID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find reservation settings: %w", err)
	}

	defaults := models.DefaultReservationSettings(businessID)
	if err := s.repo.Create(ctx, &defaults); err != nil {
		return nil, err
	}

	settings, err = s.repo.FindByBusinessID(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("re-read reservation settings: %w", err)
	}
	s.logger.Info("created default reservation settings", zap.String("businessId", businessID))
	return settings, nil
}

// CreateOrUpdate applies the request on top of the business's current
// settings, creating defaults first when none exist.
func (s *SettingsService) CreateOrUpdate(ctx context.Context, req dto.UpsertSettingsRequest) (*models.ReservationSettings, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if _, err := s.businesses.Get(ctx, req.BusinessID); err != nil {
		return nil, err
	}

	settings, err := s.GetOrCreateDefaults(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	if req.DefaultStartTime != nil {
		settings.DefaultStartTime = *req.DefaultStartTime
	}
	if req.DefaultEndTime != nil {
		settings.DefaultEndTime = *req.DefaultEndTime
	}
	if req.SlotDurationMinutes != nil {
		settings.SlotDurationMinutes = *req.SlotDurationMinutes
	}
	if req.MaxAdvanceBookingDays != nil {
		settings.MaxAdvanceBookingDays = *req.MaxAdvanceBookingDays
	}
	if req.MinAdvanceBookingHours != nil {
		settings.MinAdvanceBookingHours = *req.MinAdvanceBookingHours
	}
	if req.AcceptReservations != nil {
		settings.AcceptReservations = *req.AcceptReservations
	}
	if req.AutoConfirm != nil {
		settings.AutoConfirm = *req.AutoConfirm
	}

	if settings.DefaultEndTime != models.Midnight && !settings.DefaultStartTime.Before(settings.DefaultEndTime) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "defaultStartTime must be before defaultEndTime")
	}

	settings.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, err
	}
	s.invalidateAvailability(ctx, req.BusinessID)
	return settings, nil
}

// List returns settings for every business.
func (s *SettingsService) List(ctx context.Context) ([]models.ReservationSettings, error) {
	return s.repo.List(ctx)
}

// Delete removes a business's settings row; the next availability lookup
// recreates defaults.
func (s *SettingsService) Delete(ctx context.Context, businessID string) error {
	if err := s.repo.DeleteByBusinessID(ctx, businessID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "reservation settings not found")
		}
		return err
	}
	s.invalidateAvailability(ctx, businessID)
	return nil
}

func (s *SettingsService) invalidateAvailability(ctx context.Context, businessID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, availabilityCachePattern(businessID)); err != nil {
		s.logger.Warn("availability cache invalidation failed", zap.String("businessId", businessID), zap.Error(err))
	}
}
