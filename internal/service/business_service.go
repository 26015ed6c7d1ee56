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

type businessRepository interface {
	Create(ctx context.Context, business *models.Business) error
	FindByID(ctx context.Context, id string) (*models.Business, error)
	List(ctx context.Context, filter models.BusinessFilter) ([]models.Business, int, error)
	Update(ctx context.Context, business *models.Business) error
	Delete(ctx context.Context, id string) error
	ListEmployees(ctx context.Context, businessID string) ([]models.BusinessEmployee, error)
	AddEmployee(ctx context.Context, employee *models.BusinessEmployee) error
	SetEmployeeActive(ctx context.Context, businessID, userID string, active bool) error
	RemoveEmployee(ctx context.Context, businessID, userID string) error
}

type userFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// BusinessService manages businesses and their employee rosters.
type BusinessService struct {
	repo      businessRepository
	users     userFinder
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBusinessService constructs a BusinessService.
func NewBusinessService(repo businessRepository, users userFinder, cache *CacheService, logger *zap.Logger) *BusinessService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BusinessService{
		repo:      repo,
		users:     users,
		cache:     cache,
		validator: validator.New(),
		logger:    logger,
	}
}

// Create registers a business and enrolls its owner as the first active
// employee so an owner-only shop is bookable immediately.
func (s *BusinessService) Create(ctx context.Context, req dto.CreateBusinessRequest) (*models.Business, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	owner, err := s.users.FindByID(ctx, req.OwnerUserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUserNotFound, "owner user not found")
		}
		return nil, fmt.Errorf("find owner: %w", err)
	}
	if !owner.Active {
		return nil, appErrors.Clone(appErrors.ErrValidation, "owner user is inactive")
	}

	business := &models.Business{
		Name:        req.Name,
		OwnerUserID: req.OwnerUserID,
		City:        optional(req.City),
		District:    optional(req.District),
		Address:     optional(req.Address),
		Phone:       optional(req.Phone),
		Email:       optional(req.Email),
	}
	if err := s.repo.Create(ctx, business); err != nil {
		return nil, err
	}
	s.logger.Info("business created", zap.String("businessId", business.ID), zap.String("ownerUserId", business.OwnerUserID))
	return s.Get(ctx, business.ID)
}

// Get fetches a business with its employee roster.
func (s *BusinessService) Get(ctx context.Context, id string) (*models.Business, error) {
	business, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("find business: %w", err)
	}
	return business, nil
}

// List returns businesses matching the filter with pagination metadata.
func (s *BusinessService) List(ctx context.Context, filter models.BusinessFilter) ([]models.Business, *models.Pagination, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	businesses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return businesses, pagination, nil
}

// Update applies mutable fields to a business.
func (s *BusinessService) Update(ctx context.Context, id string, req dto.UpdateBusinessRequest) (*models.Business, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	business, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		business.Name = *req.Name
	}
	if req.City != nil {
		business.City = req.City
	}
	if req.District != nil {
		business.District = req.District
	}
	if req.Address != nil {
		business.Address = req.Address
	}
	if req.Phone != nil {
		business.Phone = req.Phone
	}
	if req.Email != nil {
		business.Email = req.Email
	}
	business.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}

// Delete removes a business and its dependent rows.
func (s *BusinessService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrBusinessNotFound
		}
		return err
	}
	s.invalidateAvailability(ctx, id)
	return nil
}

// ListEmployees returns the roster of a business.
func (s *BusinessService) ListEmployees(ctx context.Context, businessID string) ([]models.BusinessEmployee, error) {
	if _, err := s.Get(ctx, businessID); err != nil {
		return nil, err
	}
	return s.repo.ListEmployees(ctx, businessID)
}

// AddEmployee enrolls a user as an active roster member.
func (s *BusinessService) AddEmployee(ctx context.Context, businessID string, req dto.AddEmployeeRequest) (*models.BusinessEmployee, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	business, err := s.Get(ctx, businessID)
	if err != nil {
		return nil, err
	}
	for _, e := range business.Employees {
		if e.UserID == req.UserID {
			return nil, appErrors.Clone(appErrors.ErrConflict, "user is already on the roster")
		}
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

	employee := &models.BusinessEmployee{
		BusinessID: businessID,
		UserID:     req.UserID,
		Active:     true,
	}
	if err := s.repo.AddEmployee(ctx, employee); err != nil {
		return nil, err
	}
	s.invalidateAvailability(ctx, businessID)
	return employee, nil
}

// SetEmployeeActive toggles a roster member's active flag. Deactivating an
// employee removes them from future availability without touching their
// existing reservations.
func (s *BusinessService) SetEmployeeActive(ctx context.Context, businessID, userID string, active bool) error {
	if _, err := s.Get(ctx, businessID); err != nil {
		return err
	}
	if err := s.repo.SetEmployeeActive(ctx, businessID, userID, active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "employee not found")
		}
		return err
	}
	s.invalidateAvailability(ctx, businessID)
	return nil
}

// RemoveEmployee takes a user off the roster.
func (s *BusinessService) RemoveEmployee(ctx context.Context, businessID, userID string) error {
	if _, err := s.Get(ctx, businessID); err != nil {
		return err
	}
	if err := s.repo.RemoveEmployee(ctx, businessID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "employee not found")
		}
		return err
	}
	s.invalidateAvailability(ctx, businessID)
	return nil
}

func (s *BusinessService) invalidateAvailability(ctx context.Context, businessID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, availabilityCachePattern(businessID)); err != nil {
		s.logger.Warn("availability cache invalidation failed", zap.String("businessId", businessID), zap.Error(err))
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
