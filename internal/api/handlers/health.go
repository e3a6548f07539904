package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/semcache/internal/api/models"
)

// Health godoc
// @Summary Health check
// @Description Returns server health status
// @Tags system
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok"})
}

// Stats godoc
// @Summary Server statistics
// @Description Returns runtime statistics and mDNS engine counters
// @Tags system
// @Produce json
// @Success 200 {object} models.ServerStatsResponse
// @Security ApiKeyAuth
// @Router /stats [get]
func (h *Handler) Stats(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.startTime)

	resp := models.ServerStatsResponse{
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: int64(uptime.Seconds()),
		StartTime:     h.startTime,
		GoRoutines:    runtime.NumGoroutine(),
		MemoryAllocMB: float64(m.Alloc) / 1024 / 1024,
		NumCPU:        runtime.NumCPU(),
	}

	if e := h.GetEngine(); e != nil {
		snap := e.Stats().Snapshot()
		ifaces := e.Interfaces()
		mdnsStats := &models.MDNSStatsResponse{
			State:           e.State().String(),
			Received:        snap.Received,
			DecodeErrors:    snap.DecodeErrors,
			QueriesSeen:     snap.QueriesSeen,
			QueriesAnswered: snap.QueriesAnswered,
			Sent:            snap.Sent,
			SendErrors:      snap.SendErrors,
			RateLimited:     snap.RateLimited,
			LocalRecords:    len(e.AllRecords()),
			Interfaces:      make([]models.InterfaceResponse, 0, len(ifaces)),
		}
		for _, ifi := range ifaces {
			mdnsStats.Interfaces = append(mdnsStats.Interfaces, models.InterfaceResponse{
				Name:         ifi.Name,
				Address:      ifi.Address,
				PrefixLength: ifi.PrefixLength,
			})
		}
		resp.MDNS = mdnsStats
	}

	c.JSON(http.StatusOK, resp)
}
