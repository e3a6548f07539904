package handlers_test

import (
	"net/http"
	"testing"

	"github.com/jroosing/semcache/internal/api/models"
	"github.com/jroosing/semcache/internal/dns"
	"github.com/jroosing/semcache/internal/logging"
	"github.com/jroosing/semcache/internal/mdns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecords_NoEngine(t *testing.T) {
	r := setupTestRouter(createTestHandler(t, nil))

	assert.Equal(t, http.StatusServiceUnavailable, performRequest(r, http.MethodGet, "/api/v1/records", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, performRequest(r, http.MethodDelete, "/api/v1/records", "").Code)
}

func TestRecords_ListAndClear(t *testing.T) {
	ctrl, err := mdns.NewController(mdns.NewMemoryNetwork().Transport("10.0.0.5"), mdns.Config{Logger: logging.Discard()})
	require.NoError(t, err)
	ctrl.AddRecord("host7.local", dns.NewARecord("host7.local", "10.0.0.5", 120))
	ctrl.AddRecord("My Cache._semcache._tcp.local",
		dns.NewSRVRecord("My Cache._semcache._tcp.local", 0, 0, 9000, "host7.local", 120))
	ctrl.AddRecord("_semcache._tcp", dns.NewPTRRecord("_semcache._tcp", "My Cache._semcache._tcp.local", 4500))
	ctrl.AddRecord("host7.local", dns.NewOpaqueRecord(dns.NewRRHeader("host7.local", dns.ClassIN, 120), dns.TypeCNAME, []byte{0}))

	h := createTestHandler(t, nil)
	h.SetEngine(ctrl)
	r := setupTestRouter(h)

	w := performRequest(r, http.MethodGet, "/api/v1/records", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.RecordsResponse](t, w)
	assert.Equal(t, 4, resp.Count)
	assert.Equal(t, []models.RecordResponse{
		{Name: "host7.local", Type: "A", Class: 1, TTL: 120, Data: "10.0.0.5"},
		{Name: "host7.local", Type: "CNAME", Class: 1, TTL: 120, Data: `\# 1`},
		{Name: "My Cache._semcache._tcp.local", Type: "SRV", Class: 1, TTL: 120, Data: "0 0 9000 host7.local"},
		{Name: "_semcache._tcp", Type: "PTR", Class: 1, TTL: 4500, Data: "My Cache._semcache._tcp.local"},
	}, resp.Records)

	w = performRequest(r, http.MethodDelete, "/api/v1/records", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, ctrl.AllRecords())

	w = performRequest(r, http.MethodGet, "/api/v1/records", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, decode[models.RecordsResponse](t, w).Count)
}
