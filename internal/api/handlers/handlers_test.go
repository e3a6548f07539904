// Package handlers_test provides behavior tests for the API handlers package.
package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/semcache/internal/api/handlers"
	"github.com/jroosing/semcache/internal/config"
	"github.com/jroosing/semcache/internal/database"
	"github.com/jroosing/semcache/internal/discovery"
	"github.com/jroosing/semcache/internal/logging"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestRouter(h *handlers.Handler) *gin.Engine {
	r := gin.New()

	api := r.Group("/api/v1")
	api.GET("/health", h.Health)
	api.GET("/stats", h.Stats)
	api.GET("/config", h.GetConfig)
	api.GET("/services", h.BrowseServices)
	api.POST("/services", h.RegisterService)
	api.GET("/services/advertised", h.ListAdvertisedServices)
	api.DELETE("/services/advertised", h.ForgetAdvertisedService)
	api.GET("/records", h.ListRecords)
	api.DELETE("/records", h.ClearRecords)
	api.GET("/settings", h.ListSettings)
	api.GET("/settings/:key", h.GetSetting)
	api.PUT("/settings/:key", h.PutSetting)
	api.DELETE("/settings/:key", h.DeleteSetting)

	return r
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.Hostname = "host7.local"
	return cfg
}

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createTestHandler(t *testing.T, db *database.DB) *handlers.Handler {
	t.Helper()
	return handlers.New(testConfig(), db, logging.Discard())
}

func performRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// fakeDiscovery records calls and returns canned results.
type fakeDiscovery struct {
	mu sync.Mutex

	registerErr error
	instances   []discovery.ServiceInstance
	browseErr   error

	registered []string
	browsed    []string
}

func (f *fakeDiscovery) Register(_ context.Context, host, name, serviceType string, port int) (discovery.ServiceInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.registerErr != nil {
		return discovery.ServiceInfo{}, f.registerErr
	}
	f.registered = append(f.registered, fmt.Sprintf("%s|%s|%s|%d", host, name, serviceType, port))
	return discovery.ServiceInfo{ServiceName: name, Type: serviceType, Domain: host, Port: port}, nil
}

func (f *fakeDiscovery) Browse(_ context.Context, serviceType string) ([]discovery.ServiceInstance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.browsed = append(f.browsed, serviceType)
	return f.instances, f.browseErr
}

var errBoom = errors.New("boom")
