package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuncerburak97/reservation-http-api/internal/dto"
	"github.com/tuncerburak97/reservation-http-api/internal/models"
	appErrors "github.com/tuncerburak97/reservation-http-api/pkg/errors"
)

type fakeRuleRepo struct {
	created *models.AvailabilityRule
	stored  *models.AvailabilityRule
	updated *models.AvailabilityRule
	deleted []string
	list    []models.AvailabilityRule
}

func (f *fakeRuleRepo) Create(_ context.Context, rule *models.AvailabilityRule) error {
	rule.ID = uuid.NewString()
	f.created = rule
	return nil
}

func (f *fakeRuleRepo) FindByID(context.Context, string) (*models.AvailabilityRule, error) {
	if f.stored == nil {
		return nil, sql.ErrNoRows
	}
	r := *f.stored
	return &r, nil
}

func (f *fakeRuleRepo) ListByBusiness(context.Context, string) ([]models.AvailabilityRule, error) {
	return f.list, nil
}

func (f *fakeRuleRepo) Update(_ context.Context, rule *models.AvailabilityRule) error {
	f.updated = rule
	return nil
}

func (f *fakeRuleRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestRuleService(repo *fakeRuleRepo) *AvailabilityRuleService {
	return NewAvailabilityRuleService(repo, &fakeBusinesses{business: twoEmployeeBusiness()}, nil, nil)
}

func TestCreateWeeklyRuleRequiresDayOfWeek(t *testing.T) {
	svc := newTestRuleService(&fakeRuleRepo{})

	_, err := svc.Create(context.Background(), dto.CreateAvailabilityRuleRequest{
		BusinessID: "biz-1",
		Type:       models.WeeklyRecurring,
	})
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Message, "dayOfWeek is required")
}

func TestCreateSpecificDateRuleRequiresDate(t *testing.T) {
	svc := newTestRuleService(&fakeRuleRepo{})

	_, err := svc.Create(context.Background(), dto.CreateAvailabilityRuleRequest{
		BusinessID: "biz-1",
		Type:       models.SpecificDate,
	})
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Message, "specificDate is required")
}

func TestCreateDateRangeRuleRequiresOrderedBounds(t *testing.T) {
	svc := newTestRuleService(&fakeRuleRepo{})

	start := testNow.AddDate(0, 0, 10)
	end := testNow.AddDate(0, 0, 5)
	_, err := svc.Create(context.Background(), dto.CreateAvailabilityRuleRequest{
		BusinessID: "biz-1",
		Type:       models.DateRange,
		StartDate:  &start,
		EndDate:    &end,
	})
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Message, "endDate must not be before startDate")
}

func TestCreateRuleDefaultsToActive(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := newTestRuleService(repo)

	day := models.Weekday("MONDAY")
	rule, err := svc.Create(context.Background(), dto.CreateAvailabilityRuleRequest{
		BusinessID: "biz-1",
		Type:       models.WeeklyRecurring,
		DayOfWeek:  &day,
		BlockedSlots: []models.TimeSlot{
			{Start: models.NewClockTime(12, 0), End: models.NewClockTime(13, 0)},
		},
		BlockReason: "lunch",
	})
	require.NoError(t, err)

	assert.True(t, rule.Active)
	assert.NotEmpty(t, rule.ID)
	assert.Equal(t, "lunch", rule.BlockReason)
	require.NotNil(t, repo.created)
}

func TestCreateRuleRejectsInvalidSlot(t *testing.T) {
	svc := newTestRuleService(&fakeRuleRepo{})

	day := models.Weekday("MONDAY")
	_, err := svc.Create(context.Background(), dto.CreateAvailabilityRuleRequest{
		BusinessID: "biz-1",
		Type:       models.WeeklyRecurring,
		DayOfWeek:  &day,
		BlockedSlots: []models.TimeSlot{
			{Start: models.NewClockTime(13, 0), End: models.NewClockTime(12, 0)},
		},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCreateRuleUnknownBusiness(t *testing.T) {
	svc := NewAvailabilityRuleService(&fakeRuleRepo{}, &fakeBusinesses{err: appErrors.ErrBusinessNotFound}, nil, nil)

	day := models.Weekday("MONDAY")
	_, err := svc.Create(context.Background(), dto.CreateAvailabilityRuleRequest{
		BusinessID: "missing",
		Type:       models.WeeklyRecurring,
		DayOfWeek:  &day,
	})
	assert.ErrorIs(t, err, appErrors.ErrBusinessNotFound)
}

func TestUpdateRuleKeepsTypeAndPredicate(t *testing.T) {
	day := models.Weekday("TUESDAY")
	repo := &fakeRuleRepo{stored: &models.AvailabilityRule{
		ID:         "rule-1",
		BusinessID: "biz-1",
		Type:       models.WeeklyRecurring,
		DayOfWeek:  &day,
		Active:     true,
	}}
	svc := newTestRuleService(repo)

	reason := "maintenance"
	rule, err := svc.Update(context.Background(), "rule-1", dto.UpdateAvailabilityRuleRequest{
		BlockedSlots: []models.TimeSlot{
			{Start: models.NewClockTime(9, 0), End: models.NewClockTime(10, 0)},
		},
		BlockReason: &reason,
	})
	require.NoError(t, err)

	assert.Equal(t, models.WeeklyRecurring, rule.Type)
	require.NotNil(t, rule.DayOfWeek)
	assert.Equal(t, day, *rule.DayOfWeek)
	assert.Equal(t, "maintenance", rule.BlockReason)
	assert.Len(t, rule.BlockedSlots, 1)
}

func TestDeactivateRule(t *testing.T) {
	repo := &fakeRuleRepo{stored: &models.AvailabilityRule{
		ID:         "rule-1",
		BusinessID: "biz-1",
		Type:       models.SpecificDate,
		Active:     true,
	}}
	svc := newTestRuleService(repo)

	rule, err := svc.Deactivate(context.Background(), "rule-1")
	require.NoError(t, err)
	assert.False(t, rule.Active)
	require.NotNil(t, repo.updated)
	assert.False(t, repo.updated.Active)
}

func TestDeleteRuleNotFound(t *testing.T) {
	svc := newTestRuleService(&fakeRuleRepo{})

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDeleteRule(t *testing.T) {
	repo := &fakeRuleRepo{stored: &models.AvailabilityRule{ID: "rule-1", BusinessID: "biz-1"}}
	svc := newTestRuleService(repo)

	require.NoError(t, svc.Delete(context.Background(), "rule-1"))
	assert.Equal(t, []string{"rule-1"}, repo.deleted)
}
