package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tuncerburak97/reservation-http-api/internal/dto"
	"github.com/tuncerburak97/reservation-http-api/internal/models"
	"github.com/tuncerburak97/reservation-http-api/internal/service"
	appErrors "github.com/tuncerburak97/reservation-http-api/pkg/errors"
	"github.com/tuncerburak97/reservation-http-api/pkg/response"
)

// BusinessHandler exposes business and roster management endpoints.
type BusinessHandler struct {
	businesses *service.BusinessService
}

// NewBusinessHandler constructs the business handler.
func NewBusinessHandler(businesses *service.BusinessService) *BusinessHandler {
	return &BusinessHandler{businesses: businesses}
}

// Create godoc
// @Summary Register a business
// @Tags Businesses
// @Accept json
// @Produce json
// @Param payload body dto.CreateBusinessRequest true "Business payload"
// @Success 201 {object} response.Envelope
// @Router /businesses [post]
func (h *BusinessHandler) Create(c *gin.Context) {
	var req dto.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid business payload"))
		return
	}
	business, err := h.businesses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, business)
}

// Get godoc
// @Summary Get a business with its roster
// @Tags Businesses
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} response.Envelope
// @Router /businesses/{id} [get]
func (h *BusinessHandler) Get(c *gin.Context) {
	business, err := h.businesses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, business, nil)
}

// List godoc
// @Summary List businesses
// @Tags Businesses
// @Produce json
// @Param ownerUserId query string false "Filter by owner"
// @Param search query string false "Name search"
// @Param page query int false "Page" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} response.Envelope
// @Router /businesses [get]
func (h *BusinessHandler) List(c *gin.Context) {
	filter := models.BusinessFilter{
		OwnerUserID: c.Query("ownerUserId"),
		Search:      c.Query("search"),
		Page:        queryInt(c, "page", 1),
		PageSize:    queryInt(c, "pageSize", 20),
	}
	businesses, pagination, err := h.businesses.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, businesses, pagination)
}

// Update godoc
// @Summary Update a business
// @Tags Businesses
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param payload body dto.UpdateBusinessRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Router /businesses/{id} [put]
func (h *BusinessHandler) Update(c *gin.Context) {
	var req dto.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid business payload"))
		return
	}
	business, err := h.businesses.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, business, nil)
}

// Delete godoc
// @Summary Delete a business
// @Tags Businesses
// @Produce json
// @Param id path string true "Business ID"
// @Success 204
// @Router /businesses/{id} [delete]
func (h *BusinessHandler) Delete(c *gin.Context) {
	if err := h.businesses.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListEmployees godoc
// @Summary List a business's roster
// @Tags Businesses
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} response.Envelope
// @Router /businesses/{id}/employees [get]
func (h *BusinessHandler) ListEmployees(c *gin.Context) {
	employees, err := h.businesses.ListEmployees(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, employees, nil)
}

// AddEmployee godoc
// @Summary Add a user to a business roster
// @Tags Businesses
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param payload body dto.AddEmployeeRequest true "Employee payload"
// @Success 201 {object} response.Envelope
// @Router /businesses/{id}/employees [post]
func (h *BusinessHandler) AddEmployee(c *gin.Context) {
	var req dto.AddEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid employee payload"))
		return
	}
	employee, err := h.businesses.AddEmployee(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, employee)
}

// UpdateEmployee godoc
// @Summary Toggle an employee's active flag
// @Tags Businesses
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param userId path string true "Employee user ID"
// @Param payload body dto.UpdateEmployeeRequest true "Employee payload"
// @Success 204
// @Router /businesses/{id}/employees/{userId} [put]
func (h *BusinessHandler) UpdateEmployee(c *gin.Context) {
	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid employee payload"))
		return
	}
	if err := h.businesses.SetEmployeeActive(c.Request.Context(), c.Param("id"), c.Param("userId"), req.Active); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// RemoveEmployee godoc
// @Summary Remove a user from a business roster
// @Tags Businesses
// @Produce json
// @Param id path string true "Business ID"
// @Param userId path string true "Employee user ID"
// @Success 204
// @Router /businesses/{id}/employees/{userId} [delete]
func (h *BusinessHandler) RemoveEmployee(c *gin.Context) {
	if err := h.businesses.RemoveEmployee(c.Request.Context(), c.Param("id"), c.Param("userId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
