package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tuncerburak97/reservation-http-api/internal/middleware"
	"github.com/tuncerburak97/reservation-http-api/internal/service"
	appErrors "github.com/tuncerburak97/reservation-http-api/pkg/errors"
	"github.com/tuncerburak97/reservation-http-api/pkg/response"
)

const dateLayout = "2006-01-02"

// AvailabilityHandler exposes the slot resolution endpoints.
type AvailabilityHandler struct {
	availability *service.AvailabilityService
	exporter     *service.ExportService
	now          func() time.Time
}

// NewAvailabilityHandler constructs the availability handler.
func NewAvailabilityHandler(availability *service.AvailabilityService, exporter *service.ExportService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability, exporter: exporter, now: time.Now}
}

// GetByDate godoc
// @Summary Get slot availability for one date
// @Tags Availability
// @Produce json
// @Param id path string true "Business ID"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /businesses/{id}/availability/date/{date} [get]
func (h *AvailabilityHandler) GetByDate(c *gin.Context) {
	date, err := parseDate(c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respondDay(c, c.Param("id"), date)
}

// GetToday godoc
// @Summary Get slot availability for today
// @Tags Availability
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} response.Envelope
// @Router /businesses/{id}/availability/today [get]
func (h *AvailabilityHandler) GetToday(c *gin.Context) {
	h.respondDay(c, c.Param("id"), h.now())
}

// GetTomorrow godoc
// @Summary Get slot availability for tomorrow
// @Tags Availability
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} response.Envelope
// @Router /businesses/{id}/availability/tomorrow [get]
func (h *AvailabilityHandler) GetTomorrow(c *gin.Context) {
	h.respondDay(c, c.Param("id"), h.now().AddDate(0, 0, 1))
}

// GetRange godoc
// @Summary Get slot availability for an inclusive date range
// @Tags Availability
// @Produce json
// @Param id path string true "Business ID"
// @Param startDate query string true "Start date (YYYY-MM-DD)"
// @Param endDate query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /businesses/{id}/availability/range [get]
func (h *AvailabilityHandler) GetRange(c *gin.Context) {
	start, err := parseDate(c.Query("startDate"))
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := parseDate(c.Query("endDate"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respondRange(c, c.Param("id"), start, end)
}

// GetWeek godoc
// @Summary Get slot availability for seven days from a start date
// @Tags Availability
// @Produce json
// @Param id path string true "Business ID"
// @Param startDate query string false "Start date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Router /businesses/{id}/availability/week [get]
func (h *AvailabilityHandler) GetWeek(c *gin.Context) {
	start := h.now()
	if raw := c.Query("startDate"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			response.Error(c, err)
			return
		}
		start = parsed
	}
	h.respondRange(c, c.Param("id"), start, start.AddDate(0, 0, 6))
}

// GetMonth godoc
// @Summary Get slot availability for one calendar month
// @Tags Availability
// @Produce json
// @Param id path string true "Business ID"
// @Param year query int false "Year, defaults to current"
// @Param month query int false "Month (1-12), defaults to current"
// @Success 200 {object} response.Envelope
// @Router /businesses/{id}/availability/month [get]
func (h *AvailabilityHandler) GetMonth(c *gin.Context) {
	now := h.now()
	year := now.Year()
	month := int(now.Month())
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "year must be a number"))
			return
		}
		year = parsed
	}
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "month must be between 1 and 12"))
			return
		}
		month = parsed
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, -1)
	h.respondRange(c, c.Param("id"), start, end)
}

// Export godoc
// @Summary Export availability for a date range as CSV or PDF
// @Tags Availability
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Business ID"
// @Param startDate query string true "Start date (YYYY-MM-DD)"
// @Param endDate query string true "End date (YYYY-MM-DD)"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /businesses/{id}/availability/export [get]
func (h *AvailabilityHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "export service not configured"))
		return
	}
	start, err := parseDate(c.Query("startDate"))
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := parseDate(c.Query("endDate"))
	if err != nil {
		response.Error(c, err)
		return
	}
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))

	result, err := h.exporter.ExportAvailability(c.Request.Context(), c.Param("id"), start, end, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

func (h *AvailabilityHandler) respondDay(c *gin.Context, businessID string, date time.Time) {
	if h.availability == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "availability service not configured"))
		return
	}
	start := time.Now()
	day, err := h.availability.GetAvailability(c.Request.Context(), businessID, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = make(map[string]interface{})
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, day, nil, meta)
}

func (h *AvailabilityHandler) respondRange(c *gin.Context, businessID string, startDate, endDate time.Time) {
	if h.availability == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "availability service not configured"))
		return
	}
	start := time.Now()
	days, err := h.availability.GetAvailabilityForRange(c.Request.Context(), businessID, startDate, endDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = make(map[string]interface{})
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	meta["days"] = len(days)
	response.JSON(c, http.StatusOK, days, nil, meta)
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "date is required in YYYY-MM-DD format")
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", raw))
	}
	return parsed, nil
}
