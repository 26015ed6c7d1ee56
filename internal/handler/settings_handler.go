package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tuncerburak97/reservation-http-api/internal/dto"
	"github.com/tuncerburak97/reservation-http-api/internal/service"
	appErrors "github.com/tuncerburak97/reservation-http-api/pkg/errors"
	"github.com/tuncerburak97/reservation-http-api/pkg/response"
)

// SettingsHandler exposes reservation settings endpoints.
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler constructs the settings handler.
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Upsert godoc
// @Summary Create or update a business's reservation settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body dto.UpsertSettingsRequest true "Settings payload"
// @Success 200 {object} response.Envelope
// @Router /reservation-settings [put]
func (h *SettingsHandler) Upsert(c *gin.Context) {
	var req dto.UpsertSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid settings payload"))
		return
	}
	settings, err := h.settings.CreateOrUpdate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}

// GetByBusiness godoc
// @Summary Get a business's reservation settings
// @Tags Settings
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} response.Envelope
// @Router /businesses/{id}/reservation-settings [get]
func (h *SettingsHandler) GetByBusiness(c *gin.Context) {
	settings, err := h.settings.GetOrCreateDefaults(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}

// List godoc
// @Summary List reservation settings across businesses
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reservation-settings [get]
func (h *SettingsHandler) List(c *gin.Context) {
	settings, err := h.settings.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}

// Delete godoc
// @Summary Delete a business's reservation settings
// @Tags Settings
// @Produce json
// @Param id path string true "Business ID"
// @Success 204
// @Router /businesses/{id}/reservation-settings [delete]
func (h *SettingsHandler) Delete(c *gin.Context) {
	if err := h.settings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
