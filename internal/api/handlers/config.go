package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/semcache/internal/api/models"
)

// GetConfig godoc
// @Summary Get current configuration
// @Description Returns the current configuration (sensitive fields redacted)
// @Tags config
// @Produce json
// @Success 200 {object} models.ConfigResponse
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /config [get]
func (h *Handler) GetConfig(c *gin.Context) {
	if h.cfg == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "config unavailable"})
		return
	}

	d := h.cfg.Discovery
	resp := models.ConfigResponse{
		Server: models.ServerConfigResponse{
			Hostname:   h.cfg.Server.Hostname,
			Port:       h.cfg.Server.Port,
			Group:      h.cfg.Server.Group,
			Interfaces: h.cfg.Server.Interfaces,
		},
		Discovery: models.DiscoveryConfigResponse{
			ProbeMaxDelay:  d.ProbeMaxDelay.String(),
			ProbeInterval:  d.ProbeInterval.String(),
			ProbeCount:     d.ProbeCount,
			BrowseWait:     d.BrowseWait.String(),
			PTRRetries:     d.PTRRetries,
			ResolveWait:    d.ResolveWait.String(),
			ResolveRetries: d.ResolveRetries,
			HostTTL:        d.HostTTL,
			ServiceTTL:     d.ServiceTTL,
		},
		Logging: h.cfg.Logging,
		API: models.APIConfigResponse{
			Enabled:  h.cfg.API.Enabled,
			Host:     h.cfg.API.Host,
			Port:     h.cfg.API.Port,
			PagesDir: h.cfg.API.PagesDir,
		},
		Services: h.cfg.Services,
	}

	c.JSON(http.StatusOK, resp)
}
