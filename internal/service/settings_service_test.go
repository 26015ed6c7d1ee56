package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuncerburak97/reservation-http-api/internal/dto"
	"github.com/tuncerburak97/reservation-http-api/internal/models"
	appErrors "github.com/tuncerburak97/reservation-http-api/pkg/errors"
)

type fakeSettingsRepo struct {
	stored    *models.ReservationSettings
	createErr error
	updates   int
	deleted   []string
	deleteErr error
}

func (f *fakeSettingsRepo) FindByBusinessID(context.Context, string) (*models.ReservationSettings, error) {
	if f.stored == nil {
		return nil, sql.ErrNoRows
	}
	s := *f.stored
	return &s, nil
}

func (f *fakeSettingsRepo) List(context.Context) ([]models.ReservationSettings, error) {
	if f.stored == nil {
		return nil, nil
	}
	return []models.ReservationSettings{*f.stored}, nil
}

func (f *fakeSettingsRepo) Create(_ context.Context, settings *models.ReservationSettings) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.stored == nil {
		s := *settings
		f.stored = &s
	}
	return nil
}

func (f *fakeSettingsRepo) Update(_ context.Context, settings *models.ReservationSettings) error {
	f.updates++
	s := *settings
	f.stored = &s
	return nil
}

func (f *fakeSettingsRepo) DeleteByBusinessID(_ context.Context, businessID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, businessID)
	return nil
}

func TestGetOrCreateDefaultsReturnsExistingRow(t *testing.T) {
	existing := workdaySettings()
	repo := &fakeSettingsRepo{stored: &existing}
	svc := NewSettingsService(repo, &fakeBusinesses{business: twoEmployeeBusiness()}, nil, nil)

	settings, err := svc.GetOrCreateDefaults(context.Background(), "biz-1")
	require.NoError(t, err)
	assert.Equal(t, models.NewClockTime(9, 0), settings.DefaultStartTime)
}

func TestGetOrCreateDefaultsCreatesOnFirstAccess(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, &fakeBusinesses{business: twoEmployeeBusiness()}, nil, nil)

	settings, err := svc.GetOrCreateDefaults(context.Background(), "biz-1")
	require.NoError(t, err)

	assert.Equal(t, models.NewClockTime(8, 0), settings.DefaultStartTime)
	assert.Equal(t, models.Midnight, settings.DefaultEndTime)
	assert.Equal(t, models.DefaultSlotDurationMinutes, settings.SlotDurationMinutes)
	assert.True(t, settings.AcceptReservations)
	require.NotNil(t, repo.stored)
}

func TestGetOrCreateDefaultsInsertLoserReReads(t *testing.T) {
	// Simulate losing the insert race: Create is a no-op because a
	// concurrent winner already stored a row, and the re-read returns it.
	winner := workdaySettings()
	winner.SlotDurationMinutes = 45
	repo := &fakeSettingsRepo{stored: &winner}
	svc := NewSettingsService(repo, &fakeBusinesses{business: twoEmployeeBusiness()}, nil, nil)

	settings, err := svc.GetOrCreateDefaults(context.Background(), "biz-1")
	require.NoError(t, err)
	assert.Equal(t, 45, settings.SlotDurationMinutes)
}

func TestCreateOrUpdateAppliesPartialChanges(t *testing.T) {
	existing := workdaySettings()
	repo := &fakeSettingsRepo{stored: &existing}
	svc := NewSettingsService(repo, &fakeBusinesses{business: twoEmployeeBusiness()}, nil, nil)

	duration := 60
	settings, err := svc.CreateOrUpdate(context.Background(), dto.UpsertSettingsRequest{
		BusinessID:          "biz-1",
		SlotDurationMinutes: &duration,
	})
	require.NoError(t, err)

	assert.Equal(t, 60, settings.SlotDurationMinutes)
	assert.Equal(t, models.NewClockTime(9, 0), settings.DefaultStartTime)
	assert.Equal(t, 1, repo.updates)
}

func TestCreateOrUpdateRejectsInvertedWindow(t *testing.T) {
	existing := workdaySettings()
	repo := &fakeSettingsRepo{stored: &existing}
	svc := NewSettingsService(repo, &fakeBusinesses{business: twoEmployeeBusiness()}, nil, nil)

	start := models.NewClockTime(18, 0)
	end := models.NewClockTime(9, 0)
	_, err := svc.CreateOrUpdate(context.Background(), dto.UpsertSettingsRequest{
		BusinessID:       "biz-1",
		DefaultStartTime: &start,
		DefaultEndTime:   &end,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.updates)
}

func TestCreateOrUpdateAllowsMidnightEnd(t *testing.T) {
	existing := workdaySettings()
	repo := &fakeSettingsRepo{stored: &existing}
	svc := NewSettingsService(repo, &fakeBusinesses{business: twoEmployeeBusiness()}, nil, nil)

	end := models.Midnight
	settings, err := svc.CreateOrUpdate(context.Background(), dto.UpsertSettingsRequest{
		BusinessID:     "biz-1",
		DefaultEndTime: &end,
	})
	require.NoError(t, err)
	assert.Equal(t, models.Midnight, settings.DefaultEndTime)
}

func TestCreateOrUpdateUnknownBusiness(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, &fakeBusinesses{err: appErrors.ErrBusinessNotFound}, nil, nil)

	_, err := svc.CreateOrUpdate(context.Background(), dto.UpsertSettingsRequest{BusinessID: "missing"})
	assert.ErrorIs(t, err, appErrors.ErrBusinessNotFound)
}

func TestDeleteSettings(t *testing.T) {
	existing := workdaySettings()
	repo := &fakeSettingsRepo{stored: &existing}
	svc := NewSettingsService(repo, &fakeBusinesses{business: twoEmployeeBusiness()}, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "biz-1"))
	assert.Equal(t, []string{"biz-1"}, repo.deleted)
}

func TestDeleteSettingsNotFound(t *testing.T) {
	repo := &fakeSettingsRepo{deleteErr: sql.ErrNoRows}
	svc := NewSettingsService(repo, &fakeBusinesses{business: twoEmployeeBusiness()}, nil, nil)

	err := svc.Delete(context.Background(), "biz-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
