// Package middleware_test provides behavior tests for the API middleware package.
package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jroosing/semcache/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okRouter(mw ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw...)
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": middleware.GetRequestID(c)})
	})
	router.GET("/fail", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
	})
	return router
}

func serve(r http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ============================================================================
// RequireAPIKey Middleware Tests
// ============================================================================

func TestRequireAPIKey(t *testing.T) {
	router := okRouter(middleware.RequireAPIKey("test-secret"))

	tests := []struct {
		name   string
		key    string
		status int
	}{
		{"valid key", "test-secret", http.StatusOK},
		{"wrong key", "nope", http.StatusUnauthorized},
		{"missing key", "", http.StatusUnauthorized},
		{"prefix of key", "test-", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.key != "" {
				headers["X-Api-Key"] = tt.key
			}
			w := serve(router, "/test", headers)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
			}
		})
	}
}

func TestRequireAPIKey_EmptyKeyDisablesAuth(t *testing.T) {
	router := okRouter(middleware.RequireAPIKey(""))

	w := serve(router, "/test", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

// ============================================================================
// RequestID Middleware Tests
// ============================================================================

func TestRequestID_GeneratesID(t *testing.T) {
	router := okRouter(middleware.RequestID())

	w := serve(router, "/test", nil)

	id := w.Header().Get(middleware.RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, id, body["request_id"])
}

func TestRequestID_ReusesValidCallerID(t *testing.T) {
	router := okRouter(middleware.RequestID())
	caller := uuid.NewString()

	w := serve(router, "/test", map[string]string{middleware.RequestIDHeader: caller})
	assert.Equal(t, caller, w.Header().Get(middleware.RequestIDHeader))

	w = serve(router, "/test", map[string]string{middleware.RequestIDHeader: "not-a-uuid"})
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(middleware.RequestIDHeader))
}

// ============================================================================
// SlogRequestLogger Middleware Tests
// ============================================================================

func TestSlogRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	router := okRouter(middleware.RequestID(), middleware.SlogRequestLogger(logger))

	w := serve(router, "/test", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "api request", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/test", entry["path"])
	assert.InDelta(t, 200, entry["status"], 0)
	assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), entry["request_id"])

	buf.Reset()
	serve(router, "/fail", nil)
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
}

func TestSlogRequestLogger_NilLogger(t *testing.T) {
	router := okRouter(middleware.SlogRequestLogger(nil))

	w := serve(router, "/test", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}
