package handlers_test

import (
	"net/http"
	"testing"

	"github.com/jroosing/semcache/internal/api/models"
	"github.com/jroosing/semcache/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_NoDatabase(t *testing.T) {
	r := setupTestRouter(createTestHandler(t, nil))

	assert.Equal(t, http.StatusServiceUnavailable, performRequest(r, http.MethodGet, "/api/v1/settings", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, performRequest(r, http.MethodGet, "/api/v1/settings/x", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, performRequest(r, http.MethodPut, "/api/v1/settings/x", `{"value":"y"}`).Code)
	assert.Equal(t, http.StatusServiceUnavailable, performRequest(r, http.MethodDelete, "/api/v1/settings/x", "").Code)
}

func TestSettings_CRUD(t *testing.T) {
	db := openTestDB(t)
	r := setupTestRouter(createTestHandler(t, db))
	path := "/api/v1/settings/" + database.SettingInstanceName

	w := performRequest(r, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(r, http.MethodPut, path, `{"value":"Kitchen Cache"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.SettingResponse{Key: database.SettingInstanceName, Value: "Kitchen Cache"}, decode[models.SettingResponse](t, w))

	w = performRequest(r, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Kitchen Cache", decode[models.SettingResponse](t, w).Value)

	w = performRequest(r, http.MethodGet, "/api/v1/settings", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Kitchen Cache", decode[models.SettingsResponse](t, w).Settings[database.SettingInstanceName])

	w = performRequest(r, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSettings_PutRejectsBadJSON(t *testing.T) {
	r := setupTestRouter(createTestHandler(t, openTestDB(t)))

	w := performRequest(r, http.MethodPut, "/api/v1/settings/x", `{`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
