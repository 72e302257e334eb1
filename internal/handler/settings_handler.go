package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scholarpath/intake-api/internal/service"
	appErrors "github.com/scholarpath/intake-api/pkg/errors"
	"github.com/scholarpath/intake-api/pkg/response"
)

// UpdateLogoRequest carries the data-URI encoded logo image.
type UpdateLogoRequest struct {
	Logo string `json:"logo" binding:"required"`
}

// SettingsHandler serves the logo setting.
type SettingsHandler struct {
	service *service.SettingsService
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(svc *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: svc}
}

// GetLogo godoc
// @Summary Get logo
// @Description Fetch the configured logo, null when unset
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings/logo [get]
func (h *SettingsHandler) GetLogo(c *gin.Context) {
	logo, err := h.service.GetLogo(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"logo": logo})
}

// UpdateLogo godoc
// @Summary Update logo
// @Description Create or replace the logo entry
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body UpdateLogoRequest true "Logo payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /settings/logo [put]
func (h *SettingsHandler) UpdateLogo(c *gin.Context) {
	var req UpdateLogoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.service.UpdateLogo(c.Request.Context(), req.Logo); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "logo updated"})
}
