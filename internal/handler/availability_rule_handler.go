package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tuncerburak97/reservation-http-api/internal/dto"
	"github.com/tuncerburak97/reservation-http-api/internal/service"
	appErrors "github.com/tuncerburak97/reservation-http-api/pkg/errors"
	"github.com/tuncerburak97/reservation-http-api/pkg/response"
)

// AvailabilityRuleHandler exposes rule authoring endpoints.
type AvailabilityRuleHandler struct {
	rules *service.AvailabilityRuleService
}

// NewAvailabilityRuleHandler constructs the rule handler.
func NewAvailabilityRuleHandler(rules *service.AvailabilityRuleService) *AvailabilityRuleHandler {
	return &AvailabilityRuleHandler{rules: rules}
}

// Create godoc
// @Summary Author an availability rule
// @Tags AvailabilityRules
// @Accept json
// @Produce json
// @Param payload body dto.CreateAvailabilityRuleRequest true "Rule payload"
// @Success 201 {object} response.Envelope
// @Router /availability-rules [post]
func (h *AvailabilityRuleHandler) Create(c *gin.Context) {
	var req dto.CreateAvailabilityRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid rule payload"))
		return
	}
	rule, err := h.rules.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rule)
}

// Get godoc
// @Summary Get an availability rule
// @Tags AvailabilityRules
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} response.Envelope
// @Router /availability-rules/{id} [get]
func (h *AvailabilityRuleHandler) Get(c *gin.Context) {
	rule, err := h.rules.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rule, nil)
}

// ListByBusiness godoc
// @Summary List a business's availability rules
// @Tags AvailabilityRules
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} response.Envelope
// @Router /businesses/{id}/availability-rules [get]
func (h *AvailabilityRuleHandler) ListByBusiness(c *gin.Context) {
	rules, err := h.rules.ListByBusiness(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rules, nil)
}

// Update godoc
// @Summary Update an availability rule
// @Tags AvailabilityRules
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Param payload body dto.UpdateAvailabilityRuleRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Router /availability-rules/{id} [put]
func (h *AvailabilityRuleHandler) Update(c *gin.Context) {
	var req dto.UpdateAvailabilityRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid rule payload"))
		return
	}
	rule, err := h.rules.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rule, nil)
}

// Deactivate godoc
// @Summary Deactivate an availability rule
// @Tags AvailabilityRules
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} response.Envelope
// @Router /availability-rules/{id}/deactivate [post]
func (h *AvailabilityRuleHandler) Deactivate(c *gin.Context) {
	rule, err := h.rules.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rule, nil)
}

// Delete godoc
// @Summary Delete an availability rule
// @Tags AvailabilityRules
// @Produce json
// @Param id path string true "Rule ID"
// @Success 204
// @Router /availability-rules/{id} [delete]
func (h *AvailabilityRuleHandler) Delete(c *gin.Context) {
	if err := h.rules.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
