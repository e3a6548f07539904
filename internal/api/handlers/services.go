package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/semcache/internal/api/models"
	"github.com/jroosing/semcache/internal/config"
	"github.com/jroosing/semcache/internal/database"
	"github.com/jroosing/semcache/internal/discovery"
)

// BrowseServices godoc
// @Summary Browse services
// @Description Discovers instances of a DNS-SD service type on the local network
// @Tags services
// @Produce json
// @Param type query string false "Service type" default(_semcache._tcp)
// @Success 200 {object} models.BrowseResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /services [get]
func (h *Handler) BrowseServices(c *gin.Context) {
	d := h.GetDiscovery()
	if d == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "discovery not running"})
		return
	}

	serviceType := strings.TrimSpace(c.Query("type"))
	if serviceType == "" {
		serviceType = config.DefaultServiceType
	}

	found, err := d.Browse(c.Request.Context(), serviceType)
	if err != nil {
		h.logger.Error("browse failed", "type", serviceType, "err", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	resp := models.BrowseResponse{
		Type:      serviceType,
		Instances: make([]models.ServiceInstanceResponse, 0, len(found)),
		Count:     len(found),
	}
	for _, s := range found {
		resp.Instances = append(resp.Instances, models.ServiceInstanceResponse{
			ServiceType:  s.ServiceType,
			InstanceName: s.InstanceName,
			DomainName:   s.DomainName,
			IPAddress:    s.IPAddress,
			Port:         s.Port,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// RegisterService godoc
// @Summary Register a service
// @Description Probes for conflicts, advertises the service from this host and persists it for restarts
// @Tags services
// @Accept json
// @Produce json
// @Param service body models.RegisterServiceRequest true "Service to advertise"
// @Success 201 {object} models.ServiceInfoResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /services [post]
func (h *Handler) RegisterService(c *gin.Context) {
	d := h.GetDiscovery()
	if d == nil || h.cfg == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "discovery not running"})
		return
	}

	var req models.RegisterServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	if req.Type == "" {
		req.Type = config.DefaultServiceType
	}

	info, err := d.Register(c.Request.Context(), h.cfg.Server.Hostname, req.Name, req.Type, req.Port)
	if errors.Is(err, discovery.ErrNameTaken) {
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("register failed", "name", req.Name, "type", req.Type, "err", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	if h.db != nil {
		if err := h.db.SaveService(req.Name, req.Type, req.Port); err != nil {
			// The service is live; only persistence failed.
			h.logger.Error("failed to persist service", "name", req.Name, "err", err)
		}
	}

	c.JSON(http.StatusCreated, models.ServiceInfoResponse{
		ServiceName: info.ServiceName,
		Type:        info.Type,
		Domain:      info.Domain,
		Port:        info.Port,
	})
}

// ListAdvertisedServices godoc
// @Summary List advertised services
// @Description Returns the services persisted for re-registration on start
// @Tags services
// @Produce json
// @Success 200 {array} models.AdvertisedServiceResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /services/advertised [get]
func (h *Handler) ListAdvertisedServices(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	services, err := h.db.ListServices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	resp := make([]models.AdvertisedServiceResponse, 0, len(services))
	for _, s := range services {
		resp = append(resp, models.AdvertisedServiceResponse{
			Name:      s.Name,
			Type:      s.Type,
			Port:      s.Port,
			CreatedAt: s.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// ForgetAdvertisedService godoc
// @Summary Forget an advertised service
// @Description Removes a persisted service so it is not re-registered on the next start. Live records are left to expire.
// @Tags services
// @Produce json
// @Param name query string true "Instance name"
// @Param type query string false "Service type" default(_semcache._tcp)
// @Success 200 {object} models.StatusResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /services/advertised [delete]
func (h *Handler) ForgetAdvertisedService(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "name is required"})
		return
	}
	serviceType := strings.TrimSpace(c.Query("type"))
	if serviceType == "" {
		serviceType = config.DefaultServiceType
	}
	if err := h.db.DeleteService(name, serviceType); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "deleted"})
}
