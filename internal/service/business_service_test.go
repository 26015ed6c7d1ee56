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

type fakeBusinessRepo struct {
	stored        *models.Business
	listResult    []models.Business
	listTotal     int
	listFilter    models.BusinessFilter
	addedEmployee *models.BusinessEmployee
	activated     map[string]bool
	removed       []string
}

func (f *fakeBusinessRepo) Create(_ context.Context, business *models.Business) error {
	business.ID = uuid.NewString()
	stored := *business
	stored.Employees = []models.BusinessEmployee{
		{BusinessID: business.ID, UserID: business.OwnerUserID, Active: true},
	}
	f.stored = &stored
	return nil
}

func (f *fakeBusinessRepo) FindByID(context.Context, string) (*models.Business, error) {
	if f.stored == nil {
		return nil, sql.ErrNoRows
	}
	b := *f.stored
	return &b, nil
}

func (f *fakeBusinessRepo) List(_ context.Context, filter models.BusinessFilter) ([]models.Business, int, error) {
	f.listFilter = filter
	return f.listResult, f.listTotal, nil
}

func (f *fakeBusinessRepo) Update(_ context.Context, business *models.Business) error {
	b := *business
	f.stored = &b
	return nil
}

func (f *fakeBusinessRepo) Delete(context.Context, string) error {
	if f.stored == nil {
		return sql.ErrNoRows
	}
	f.stored = nil
	return nil
}

func (f *fakeBusinessRepo) ListEmployees(context.Context, string) ([]models.BusinessEmployee, error) {
	if f.stored == nil {
		return nil, nil
	}
	return f.stored.Employees, nil
}

func (f *fakeBusinessRepo) AddEmployee(_ context.Context, employee *models.BusinessEmployee) error {
	f.addedEmployee = employee
	return nil
}

func (f *fakeBusinessRepo) SetEmployeeActive(_ context.Context, _, userID string, active bool) error {
	if f.activated == nil {
		f.activated = make(map[string]bool)
	}
	f.activated[userID] = active
	return nil
}

func (f *fakeBusinessRepo) RemoveEmployee(_ context.Context, _, userID string) error {
	f.removed = append(f.removed, userID)
	return nil
}

func TestCreateBusinessEnrollsOwner(t *testing.T) {
	repo := &fakeBusinessRepo{}
	svc := NewBusinessService(repo, &fakeUsers{user: activeUser()}, nil, nil)

	business, err := svc.Create(context.Background(), dto.CreateBusinessRequest{
		Name:        "Corner Barber",
		OwnerUserID: "user-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, business.ID)
	require.Len(t, business.Employees, 1)
	assert.Equal(t, "user-1", business.Employees[0].UserID)
	assert.True(t, business.Employees[0].Active)
}

func TestCreateBusinessOwnerNotFound(t *testing.T) {
	svc := NewBusinessService(&fakeBusinessRepo{}, &fakeUsers{err: sql.ErrNoRows}, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateBusinessRequest{
		Name:        "Corner Barber",
		OwnerUserID: "missing",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUserNotFound.Code, appErrors.FromError(err).Code)
}

func TestCreateBusinessInactiveOwner(t *testing.T) {
	owner := activeUser()
	owner.Active = false
	svc := NewBusinessService(&fakeBusinessRepo{}, &fakeUsers{user: owner}, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateBusinessRequest{
		Name:        "Corner Barber",
		OwnerUserID: "user-1",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestGetBusinessNotFound(t *testing.T) {
	svc := NewBusinessService(&fakeBusinessRepo{}, &fakeUsers{user: activeUser()}, nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, appErrors.ErrBusinessNotFound)
}

func TestListBusinessesClampsPagination(t *testing.T) {
	repo := &fakeBusinessRepo{listTotal: 3}
	svc := NewBusinessService(repo, &fakeUsers{user: activeUser()}, nil, nil)

	_, pagination, err := svc.List(context.Background(), models.BusinessFilter{Page: 0, PageSize: 500})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listFilter.Page)
	assert.Equal(t, 20, repo.listFilter.PageSize)
	assert.Equal(t, 3, pagination.TotalCount)
}

func TestAddEmployeeRejectsDuplicate(t *testing.T) {
	repo := &fakeBusinessRepo{stored: twoEmployeeBusiness()}
	svc := NewBusinessService(repo, &fakeUsers{user: activeUser()}, nil, nil)

	_, err := svc.AddEmployee(context.Background(), "biz-1", dto.AddEmployeeRequest{UserID: "emp-a"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestAddEmployeeRejectsInactiveUser(t *testing.T) {
	repo := &fakeBusinessRepo{stored: twoEmployeeBusiness()}
	inactive := activeUser()
	inactive.Active = false
	svc := NewBusinessService(repo, &fakeUsers{user: inactive}, nil, nil)

	_, err := svc.AddEmployee(context.Background(), "biz-1", dto.AddEmployeeRequest{UserID: "user-9"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAddEmployee(t *testing.T) {
	repo := &fakeBusinessRepo{stored: twoEmployeeBusiness()}
	svc := NewBusinessService(repo, &fakeUsers{user: &models.User{ID: "user-9", Active: true}}, nil, nil)

	employee, err := svc.AddEmployee(context.Background(), "biz-1", dto.AddEmployeeRequest{UserID: "user-9"})
	require.NoError(t, err)

	assert.Equal(t, "user-9", employee.UserID)
	assert.True(t, employee.Active)
	require.NotNil(t, repo.addedEmployee)
}

func TestSetEmployeeActive(t *testing.T) {
	repo := &fakeBusinessRepo{stored: twoEmployeeBusiness()}
	svc := NewBusinessService(repo, &fakeUsers{user: activeUser()}, nil, nil)

	require.NoError(t, svc.SetEmployeeActive(context.Background(), "biz-1", "emp-a", false))
	assert.Equal(t, map[string]bool{"emp-a": false}, repo.activated)
}

func TestRemoveEmployee(t *testing.T) {
	repo := &fakeBusinessRepo{stored: twoEmployeeBusiness()}
	svc := NewBusinessService(repo, &fakeUsers{user: activeUser()}, nil, nil)

	require.NoError(t, svc.RemoveEmployee(context.Background(), "biz-1", "emp-b"))
	assert.Equal(t, []string{"emp-b"}, repo.removed)
}

func TestDeleteBusinessNotFound(t *testing.T) {
	svc := NewBusinessService(&fakeBusinessRepo{}, &fakeUsers{user: activeUser()}, nil, nil)

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, appErrors.ErrBusinessNotFound)
}
