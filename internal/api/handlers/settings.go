package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/semcache/internal/api/models"
	"github.com/jroosing/semcache/internal/database"
)

// ListSettings godoc
// @Summary List settings
// @Tags settings
// @Produce json
// @Success 200 {object} models.SettingsResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /settings [get]
func (h *Handler) ListSettings(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	all, err := h.db.AllSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.SettingsResponse{Settings: all})
}

// GetSetting godoc
// @Summary Get a setting
// @Tags settings
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} models.SettingResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /settings/{key} [get]
func (h *Handler) GetSetting(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	key := c.Param("key")
	value, err := h.db.GetSetting(key)
	if err != nil {
		h.settingError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SettingResponse{Key: key, Value: value})
}

// PutSetting godoc
// @Summary Set a setting
// @Tags settings
// @Accept json
// @Produce json
// @Param key path string true "Setting key"
// @Param setting body models.SettingRequest true "New value"
// @Success 200 {object} models.SettingResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /settings/{key} [put]
func (h *Handler) PutSetting(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	var req models.SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	key := c.Param("key")
	if err := h.db.SetSetting(key, req.Value); err != nil {
		h.settingError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SettingResponse{Key: key, Value: req.Value})
}

// DeleteSetting godoc
// @Summary Delete a setting
// @Tags settings
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} models.StatusResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /settings/{key} [delete]
func (h *Handler) DeleteSetting(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	if err := h.db.DeleteSetting(c.Param("key")); err != nil {
		h.settingError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "deleted"})
}

func (h *Handler) requireDB(c *gin.Context) bool {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "database not available"})
		return false
	}
	return true
}

func (h *Handler) settingError(c *gin.Context, err error) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
}
