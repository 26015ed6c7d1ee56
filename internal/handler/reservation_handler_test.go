package handler

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/tuncerburak97/reservation-http-api/internal/models"
	"github.com/tuncerburak97/reservation-http-api/internal/service"
)

type stubUsers struct {
	user *models.User
	err  error
}

func (s *stubUsers) FindByID(context.Context, string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

type stubReservationStore struct {
	existing  *models.Reservation
	conflicts []models.Reservation
	cancelled []string
}

func (s *stubReservationStore) Create(_ context.Context, r *models.Reservation) error {
	r.ID = "res-new"
	return nil
}

func (s *stubReservationStore) FindByID(context.Context, string) (*models.Reservation, error) {
	if s.existing == nil {
		return nil, sql.ErrNoRows
	}
	r := *s.existing
	return &r, nil
}

func (s *stubReservationStore) ListByBusinessAndDate(context.Context, string, time.Time) ([]models.Reservation, error) {
	return nil, nil
}

func (s *stubReservationStore) ListByBusiness(context.Context, string) ([]models.Reservation, error) {
	return nil, nil
}

func (s *stubReservationStore) ListByUser(context.Context, string) ([]models.Reservation, error) {
	return nil, nil
}

func (s *stubReservationStore) FindConflicts(context.Context, string, time.Time, string, models.TimeSlot) ([]models.Reservation, error) {
	return s.conflicts, nil
}

func (s *stubReservationStore) Update(context.Context, *models.Reservation) error {
	return nil
}

func (s *stubReservationStore) Cancel(_ context.Context, id string) error {
	s.cancelled = append(s.cancelled, id)
	return nil
}

func buildReservationRouter(store *stubReservationStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	business := &models.Business{
		ID: "biz-1",
		Employees: []models.BusinessEmployee{
			{UserID: "emp-a", Active: true},
		},
	}
	settings := models.DefaultReservationSettings("biz-1")
	settings.MinAdvanceBookingHours = 0

	reservationSvc := service.NewReservationService(service.ReservationServiceParams{
		Repo:       store,
		Businesses: &stubBusinesses{business: business},
		Users:      &stubUsers{user: &models.User{ID: "user-1", Active: true}},
		Settings:   &stubSettings{settings: settings},
		Config:     service.ReservationServiceConfig{PrecheckConflicts: true},
	})

	r := gin.New()
	RegisterRoutes(r, "/api/v1", Handlers{
		Reservations: NewReservationHandler(reservationSvc),
	})
	return r
}

func reservationPayload(date string) string {
	return fmt.Sprintf(`{"userId":"user-1","businessId":"biz-1","reservationDate":"%sT00:00:00Z","timeSlot":{"startTime":"10:00","endTime":"10:30"}}`, date)
}

func TestReservationCreate(t *testing.T) {
	router := buildReservationRouter(&stubReservationStore{})

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewBufferString(reservationPayload(futureDate(5))))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)

	require.Equal(t, http.StatusCreated, resp.Code)
	require.Contains(t, resp.Body.String(), `"assignedEmployeeUserId":"emp-a"`)
	require.Contains(t, resp.Body.String(), `"timeSlot":{"startTime":"10:00","endTime":"10:30"}`)
}

func TestReservationCreateInvalidPayload(t *testing.T) {
	router := buildReservationRouter(&stubReservationStore{})

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewBufferString(`{"userId":`))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, resp.Body.String(), "VALIDATION_ERROR")
}

func TestReservationCreateSlotTaken(t *testing.T) {
	router := buildReservationRouter(&stubReservationStore{
		conflicts: []models.Reservation{{ID: "other"}},
	})

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewBufferString(reservationPayload(futureDate(5))))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)

	require.Equal(t, http.StatusConflict, resp.Code)
	require.Contains(t, resp.Body.String(), "SLOT_ALREADY_BOOKED")
}

func TestReservationGetNotFound(t *testing.T) {
	router := buildReservationRouter(&stubReservationStore{})

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/reservations/missing", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Contains(t, resp.Body.String(), "RESERVATION_NOT_FOUND")
}

func TestReservationCancel(t *testing.T) {
	store := &stubReservationStore{
		existing: &models.Reservation{ID: "res-1", BusinessID: "biz-1"},
	}
	router := buildReservationRouter(store)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/reservations/res-1/cancel", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusNoContent, resp.Code)
	require.Equal(t, []string{"res-1"}, store.cancelled)
}

func TestReservationCancelAlreadyCancelled(t *testing.T) {
	router := buildReservationRouter(&stubReservationStore{
		existing: &models.Reservation{ID: "res-1", BusinessID: "biz-1", IsCancelled: true},
	})

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/reservations/res-1/cancel", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusPreconditionFailed, resp.Code)
}
