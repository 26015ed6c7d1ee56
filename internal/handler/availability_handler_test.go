package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/tuncerburak97/reservation-http-api/internal/models"
	"github.com/tuncerburak97/reservation-http-api/internal/service"
)

type stubBusinesses struct {
	business *models.Business
	err      error
}

func (s *stubBusinesses) Get(context.Context, string) (*models.Business, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.business, nil
}

type stubSettings struct {
	settings models.ReservationSettings
}

func (s *stubSettings) GetOrCreateDefaults(context.Context, string) (*models.ReservationSettings, error) {
	settings := s.settings
	return &settings, nil
}

type stubRules struct {
	rules []models.AvailabilityRule
}

func (s *stubRules) FindWeekly(context.Context, string, models.Weekday) ([]models.AvailabilityRule, error) {
	return s.rules, nil
}

func (s *stubRules) FindSpecificDate(context.Context, string, time.Time) ([]models.AvailabilityRule, error) {
	return nil, nil
}

func (s *stubRules) FindRangeContaining(context.Context, string, time.Time) ([]models.AvailabilityRule, error) {
	return nil, nil
}

type stubReservationIndex struct {
	reservations []models.Reservation
}

func (s *stubReservationIndex) ListByBusinessAndDate(context.Context, string, time.Time) ([]models.Reservation, error) {
	return s.reservations, nil
}

func buildAvailabilityRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	business := &models.Business{
		ID: "biz-1",
		Employees: []models.BusinessEmployee{
			{UserID: "emp-a", Active: true},
			{UserID: "emp-b", Active: true},
		},
	}
	settings := models.ReservationSettings{
		BusinessID:          "biz-1",
		DefaultStartTime:    models.NewClockTime(9, 0),
		DefaultEndTime:      models.NewClockTime(17, 0),
		SlotDurationMinutes: 30,
	}
	availabilitySvc := service.NewAvailabilityService(service.AvailabilityServiceParams{
		Businesses:   &stubBusinesses{business: business},
		Settings:     &stubSettings{settings: settings},
		Rules:        &stubRules{},
		Reservations: &stubReservationIndex{},
	})
	exportSvc := service.NewExportService(availabilitySvc, nil)

	r := gin.New()
	RegisterRoutes(r, "/api/v1", Handlers{
		Availability: NewAvailabilityHandler(availabilitySvc, exportSvc),
	})
	return r
}

func performRequest(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func TestAvailabilityByDate(t *testing.T) {
	router := buildAvailabilityRouter()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/businesses/biz-1/availability/date/"+futureDate(5), nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"availableSlots"`)
	require.Contains(t, resp.Body.String(), `"09:00"`)
	require.Contains(t, resp.Body.String(), `"processing_time_ms"`)
}

func TestAvailabilityByDateInvalidFormat(t *testing.T) {
	router := buildAvailabilityRouter()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/businesses/biz-1/availability/date/15-03-2026", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, resp.Body.String(), "VALIDATION_ERROR")
}

func TestAvailabilityToday(t *testing.T) {
	router := buildAvailabilityRouter()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/businesses/biz-1/availability/today", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), time.Now().Format("2006-01-02"))
}

func TestAvailabilityRangeRequiresBothDates(t *testing.T) {
	router := buildAvailabilityRouter()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/businesses/biz-1/availability/range?startDate="+futureDate(1), nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAvailabilityRangeTooLong(t *testing.T) {
	router := buildAvailabilityRouter()

	url := fmt.Sprintf("/api/v1/businesses/biz-1/availability/range?startDate=%s&endDate=%s", futureDate(1), futureDate(60))
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, resp.Body.String(), "date range exceeds")
}

func TestAvailabilityWeekReturnsSevenDays(t *testing.T) {
	router := buildAvailabilityRouter()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/businesses/biz-1/availability/week?startDate="+futureDate(1), nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"days":7`)
}

func TestAvailabilityMonthRejectsBadMonth(t *testing.T) {
	router := buildAvailabilityRouter()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/businesses/biz-1/availability/month?month=13", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, resp.Body.String(), "month must be between 1 and 12")
}

func TestAvailabilityExportCSV(t *testing.T) {
	router := buildAvailabilityRouter()

	url := fmt.Sprintf("/api/v1/businesses/biz-1/availability/export?startDate=%s&endDate=%s&format=csv", futureDate(1), futureDate(2))
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "text/csv", resp.Header().Get("Content-Type"))
	require.Contains(t, resp.Header().Get("Content-Disposition"), "attachment")
	require.Contains(t, resp.Body.String(), "Date,Slot,Status")
}
