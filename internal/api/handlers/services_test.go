package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jroosing/semcache/internal/api/models"
	"github.com/jroosing/semcache/internal/discovery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowseServices_NoDiscovery(t *testing.T) {
	r := setupTestRouter(createTestHandler(t, nil))

	w := performRequest(r, http.MethodGet, "/api/v1/services", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestBrowseServices_DefaultType(t *testing.T) {
	fd := &fakeDiscovery{instances: []discovery.ServiceInstance{{
		ServiceType:  "_semcache._tcp",
		InstanceName: "Peer Cache",
		DomainName:   "peer.local",
		IPAddress:    "10.0.0.9",
		Port:         9000,
	}}}
	h := createTestHandler(t, nil)
	h.SetDiscovery(fd)
	r := setupTestRouter(h)

	w := performRequest(r, http.MethodGet, "/api/v1/services", "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.BrowseResponse](t, w)
	assert.Equal(t, "_semcache._tcp", resp.Type)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, []models.ServiceInstanceResponse{{
		ServiceType:  "_semcache._tcp",
		InstanceName: "Peer Cache",
		DomainName:   "peer.local",
		IPAddress:    "10.0.0.9",
		Port:         9000,
	}}, resp.Instances)
	assert.Equal(t, []string{"_semcache._tcp"}, fd.browsed)
}

func TestBrowseServices_ExplicitTypeAndEmptyResult(t *testing.T) {
	fd := &fakeDiscovery{}
	h := createTestHandler(t, nil)
	h.SetDiscovery(fd)
	r := setupTestRouter(h)

	w := performRequest(r, http.MethodGet, "/api/v1/services?type=_http._tcp", "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.BrowseResponse](t, w)
	assert.Equal(t, "_http._tcp", resp.Type)
	assert.Zero(t, resp.Count)
	assert.NotNil(t, resp.Instances)
}

func TestBrowseServices_Error(t *testing.T) {
	h := createTestHandler(t, nil)
	h.SetDiscovery(&fakeDiscovery{browseErr: errBoom})
	r := setupTestRouter(h)

	w := performRequest(r, http.MethodGet, "/api/v1/services", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRegisterService_PersistsAndReturnsInfo(t *testing.T) {
	db := openTestDB(t)
	fd := &fakeDiscovery{}
	h := createTestHandler(t, db)
	h.SetDiscovery(fd)
	r := setupTestRouter(h)

	w := performRequest(r, http.MethodPost, "/api/v1/services", `{"name":"My Cache","port":9000}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[models.ServiceInfoResponse](t, w)
	assert.Equal(t, models.ServiceInfoResponse{
		ServiceName: "My Cache",
		Type:        "_semcache._tcp",
		Domain:      "host7.local",
		Port:        9000,
	}, resp)
	assert.Equal(t, []string{"host7.local|My Cache|_semcache._tcp|9000"}, fd.registered)

	w = performRequest(r, http.MethodGet, "/api/v1/services/advertised", "")
	require.Equal(t, http.StatusOK, w.Code)
	advertised := decode[[]models.AdvertisedServiceResponse](t, w)
	require.Len(t, advertised, 1)
	assert.Equal(t, "My Cache", advertised[0].Name)
	assert.Equal(t, "_semcache._tcp", advertised[0].Type)
	assert.Equal(t, 9000, advertised[0].Port)
}

func TestRegisterService_Conflicts(t *testing.T) {
	for _, taken := range []error{discovery.ErrHostTaken, discovery.ErrInstanceTaken} {
		t.Run(taken.Error(), func(t *testing.T) {
			db := openTestDB(t)
			h := createTestHandler(t, db)
			h.SetDiscovery(&fakeDiscovery{registerErr: fmt.Errorf("register: %w", taken)})
			r := setupTestRouter(h)

			w := performRequest(r, http.MethodPost, "/api/v1/services", `{"name":"My Cache","port":9000}`)

			assert.Equal(t, http.StatusConflict, w.Code)
			services, err := db.ListServices()
			require.NoError(t, err)
			assert.Empty(t, services)
		})
	}
}

func TestRegisterService_BadRequests(t *testing.T) {
	h := createTestHandler(t, nil)
	h.SetDiscovery(&fakeDiscovery{})
	r := setupTestRouter(h)

	bodies := []string{
		`not json`,
		`{"port":9000}`,
		`{"name":"My Cache"}`,
		`{"name":"My Cache","port":70000}`,
	}
	for _, body := range bodies {
		w := performRequest(r, http.MethodPost, "/api/v1/services", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestRegisterService_NoDiscovery(t *testing.T) {
	r := setupTestRouter(createTestHandler(t, nil))

	w := performRequest(r, http.MethodPost, "/api/v1/services", `{"name":"My Cache","port":9000}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAdvertisedServices_NoDatabase(t *testing.T) {
	r := setupTestRouter(createTestHandler(t, nil))

	assert.Equal(t, http.StatusServiceUnavailable, performRequest(r, http.MethodGet, "/api/v1/services/advertised", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, performRequest(r, http.MethodDelete, "/api/v1/services/advertised?name=x", "").Code)
}

func TestForgetAdvertisedService(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveService("My Cache", "_semcache._tcp", 9000))
	r := setupTestRouter(createTestHandler(t, db))

	w := performRequest(r, http.MethodDelete, "/api/v1/services/advertised", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(r, http.MethodDelete, "/api/v1/services/advertised?name=My%20Cache", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, http.MethodDelete, "/api/v1/services/advertised?name=My%20Cache", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(r, http.MethodGet, "/api/v1/services/advertised", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]models.AdvertisedServiceResponse](t, w))
}
