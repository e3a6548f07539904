package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jroosing/semcache/internal/api/models"
	"github.com/jroosing/semcache/internal/dns"
	"github.com/jroosing/semcache/internal/logging"
	"github.com/jroosing/semcache/internal/mdns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_ReturnsOK(t *testing.T) {
	h := createTestHandler(t, nil)
	r := setupTestRouter(h)

	w := performRequest(r, http.MethodGet, "/api/v1/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[models.StatusResponse](t, w).Status)
}

func TestStats_WithoutEngine(t *testing.T) {
	h := createTestHandler(t, nil)
	r := setupTestRouter(h)

	w := performRequest(r, http.MethodGet, "/api/v1/stats", "")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.ServerStatsResponse](t, w)
	assert.NotEmpty(t, resp.Uptime)
	assert.GreaterOrEqual(t, resp.GoRoutines, 1)
	assert.Positive(t, resp.NumCPU)
	assert.Nil(t, resp.MDNS)
}

func TestStats_WithEngine(t *testing.T) {
	network := mdns.NewMemoryNetwork()
	ctrl, err := mdns.NewController(network.Transport("10.0.0.5"), mdns.Config{Logger: logging.Discard()})
	require.NoError(t, err)
	require.NoError(t, ctrl.Start(context.Background()))
	t.Cleanup(func() { _ = ctrl.Stop() })
	ctrl.AddRecord("host7.local", dns.NewARecord("host7.local", "10.0.0.5", 120))

	h := createTestHandler(t, nil)
	h.SetEngine(ctrl)
	r := setupTestRouter(h)

	w := performRequest(r, http.MethodGet, "/api/v1/stats", "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.ServerStatsResponse](t, w)
	require.NotNil(t, resp.MDNS)
	assert.Equal(t, "started", resp.MDNS.State)
	assert.Equal(t, 1, resp.MDNS.LocalRecords)
	assert.Equal(t, []models.InterfaceResponse{{Name: "mem0", Address: "10.0.0.5", PrefixLength: 24}}, resp.MDNS.Interfaces)
}
