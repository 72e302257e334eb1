package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scholarpath/intake-api/internal/models"
	"github.com/scholarpath/intake-api/internal/service"
	appErrors "github.com/scholarpath/intake-api/pkg/errors"
	"github.com/scholarpath/intake-api/pkg/response"
)

// ApplicationHandler handles submission lifecycle endpoints.
type ApplicationHandler struct {
	service *service.ApplicationService
	metrics *service.MetricsService
}

// NewApplicationHandler creates a new application handler.
func NewApplicationHandler(svc *service.ApplicationService, metrics *service.MetricsService) *ApplicationHandler {
	return &ApplicationHandler{service: svc, metrics: metrics}
}

// List godoc
// @Summary List applications
// @Description List all submitted applications, newest first
// @Tags Applications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /applications [get]
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, apps)
}

// Submit godoc
// @Summary Submit application
// @Description Validate and persist a scholarship application
// @Tags Applications
// @Accept json
// @Produce json
// @Param payload body service.SubmitApplicationRequest true "Application payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /applications [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req service.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	app, fieldErrors, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(fieldErrors) > 0 {
		response.ValidationFailed(c, fieldErrors)
		return
	}

	h.metrics.RecordSubmission(app.EligibilityResult.Eligible)
	response.Created(c, app)
}

// Delete godoc
// @Summary Delete application
// @Description Delete one application by id
// @Tags Applications
// @Produce json
// @Param id path string true "Application ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /applications/{id} [delete]
func (h *ApplicationHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// BulkDelete godoc
// @Summary Bulk delete applications
// @Description Delete applications within an optional date range and eligibility filter; with no filters the whole store is cleared
// @Tags Applications
// @Produce json
// @Param startDate query string false "Inclusive lower bound, RFC3339"
// @Param endDate query string false "Inclusive upper bound, RFC3339"
// @Param eligibilityStatus query bool false "Eligibility filter"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /applications/bulk-delete [delete]
func (h *ApplicationHandler) BulkDelete(c *gin.Context) {
	var filter models.BulkDeleteFilter

	if raw := c.Query("startDate"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "startDate must be RFC3339"))
			return
		}
		filter.StartDate = &ts
	}

	if raw := c.Query("endDate"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "endDate must be RFC3339"))
			return
		}
		filter.EndDate = &ts
	}

	if raw := c.Query("eligibilityStatus"); raw != "" {
		eligible, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "eligibilityStatus must be a boolean"))
			return
		}
		filter.Eligible = &eligible
	}

	deleted, err := h.service.BulkDelete(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"deletedCount": deleted})
}
