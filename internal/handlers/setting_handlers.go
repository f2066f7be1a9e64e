package handlers

import (
	"errors"
	"net/http"

	"cleanops_backend/internal/middleware"
	"cleanops_backend/internal/services"
	"cleanops_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SettingHandler holds the settings service.
type SettingHandler struct {
	settingsService services.SettingsService
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(ss services.SettingsService) *SettingHandler {
	return &SettingHandler{settingsService: ss}
}

// UpdateSettingRequest is the payload for writing a tenant setting.
type UpdateSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

func respondSettingError(c *gin.Context, err error, logContext string) {
	switch {
	case errors.Is(err, services.ErrSettingNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Setting not found.", err.Error()))
	case errors.Is(err, services.ErrSettingValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
	default:
		utils.LogError(err, logContext)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal error.", "Internal error"))
	}
}

// GetSetting returns one tenant setting by key.
func (h *SettingHandler) GetSetting(c *gin.Context) {
	setting, err := h.settingsService.GetSetting(middleware.OwnerFromContext(c), c.Param("key"))
	if err != nil {
		respondSettingError(c, err, "GetSetting: Error from settingsService.GetSetting")
		return
	}
	c.JSON(http.StatusOK, setting)
}

// UpdateSetting upserts a tenant setting.
func (h *SettingHandler) UpdateSetting(c *gin.Context) {
	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	setting, err := h.settingsService.UpdateSetting(c.Request.Context(), middleware.OwnerFromContext(c), c.Param("key"), req.Value)
	if err != nil {
		respondSettingError(c, err, "UpdateSetting: Error from settingsService.UpdateSetting")
		return
	}
	c.JSON(http.StatusOK, setting)
}

// DeleteSetting removes a tenant setting, reverting the tenant to defaults.
func (h *SettingHandler) DeleteSetting(c *gin.Context) {
	if err := h.settingsService.DeleteSetting(c.Request.Context(), middleware.OwnerFromContext(c), c.Param("key")); err != nil {
		respondSettingError(c, err, "DeleteSetting: Error from settingsService.DeleteSetting")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Setting deleted successfully"})
}
