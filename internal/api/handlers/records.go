package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/semcache/internal/api/models"
	"github.com/jroosing/semcache/internal/dns"
)

// ListRecords godoc
// @Summary List local records
// @Description Returns the records this host answers mDNS queries with
// @Tags records
// @Produce json
// @Success 200 {object} models.RecordsResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /records [get]
func (h *Handler) ListRecords(c *gin.Context) {
	e := h.GetEngine()
	if e == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "engine not running"})
		return
	}
	records := e.AllRecords()
	resp := models.RecordsResponse{
		Records: make([]models.RecordResponse, 0, len(records)),
		Count:   len(records),
	}
	for _, rr := range records {
		hdr := rr.Header()
		resp.Records = append(resp.Records, models.RecordResponse{
			Name:  hdr.Name,
			Type:  rr.Type().String(),
			Class: hdr.Class,
			TTL:   hdr.TTL,
			Data:  recordData(rr),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// ClearRecords godoc
// @Summary Clear local records
// @Description Drops every record this host advertises; peers see them expire by TTL
// @Tags records
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /records [delete]
func (h *Handler) ClearRecords(c *gin.Context) {
	e := h.GetEngine()
	if e == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "engine not running"})
		return
	}
	e.ClearAllRecords()
	h.logger.Info("local records cleared")
	c.JSON(http.StatusOK, models.StatusResponse{Status: "cleared"})
}

func recordData(rr dns.Record) string {
	switch v := rr.(type) {
	case *dns.ARecord:
		return v.IP
	case *dns.PTRRecord:
		return v.Instance
	case *dns.SRVRecord:
		return fmt.Sprintf("%d %d %d %s", v.Priority, v.Weight, v.Port, v.Target)
	case *dns.OpaqueRecord:
		return fmt.Sprintf(`\# %d`, len(v.Data))
	}
	return ""
}
