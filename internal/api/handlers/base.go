// Package handlers implements the REST API endpoint handlers for semcache.
//
// REST API Endpoints:
//
// System:
//   - GET /api/v1/health - Health check status
//   - GET /api/v1/stats - Runtime and mDNS engine statistics
//   - GET /api/v1/config - Current configuration (secrets redacted)
//
// Services (DNS-SD):
//   - GET /api/v1/services?type= - Browse the network for a service type
//   - POST /api/v1/services - Register and persist a service on this host
//   - GET /api/v1/services/advertised - Services persisted for re-registration
//   - DELETE /api/v1/services/advertised?name=&type= - Stop re-registering a service
//
// Records:
//   - GET /api/v1/records - Records this host answers for
//   - DELETE /api/v1/records - Drop every local record
//
// Settings:
//   - GET /api/v1/settings - All settings
//   - GET /api/v1/settings/:key - One setting
//   - PUT /api/v1/settings/:key - Set a setting
//   - DELETE /api/v1/settings/:key - Remove a setting
//
// Authentication:
//
// Every endpoint except /health accepts an optional API key in the
// X-API-Key header. When a key is configured it is required.
//
// @title semcache Management API
// @version 1.0
// @description REST API for the semcache mDNS/DNS-SD engine: service registration, browsing and settings.
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:8080
// @BasePath /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package handlers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jroosing/semcache/internal/config"
	"github.com/jroosing/semcache/internal/database"
	"github.com/jroosing/semcache/internal/discovery"
	"github.com/jroosing/semcache/internal/dns"
	"github.com/jroosing/semcache/internal/mdns"
)

// Discovery is the DNS-SD client the service endpoints drive.
type Discovery interface {
	Register(ctx context.Context, host, name, serviceType string, port int) (discovery.ServiceInfo, error)
	Browse(ctx context.Context, serviceType string) ([]discovery.ServiceInstance, error)
}

// Engine is the mDNS controller view the record and stats endpoints use.
type Engine interface {
	State() mdns.State
	Stats() *mdns.Stats
	Interfaces() []mdns.Interface
	AllRecords() []dns.Record
	ClearAllRecords()
}

// Handler contains dependencies for API handlers.
type Handler struct {
	cfg       *config.Config
	db        *database.DB
	logger    *slog.Logger
	startTime time.Time

	// Runtime components (set after the engine starts)
	discovery Discovery
	engine    Engine
	mu        sync.RWMutex
}

// New creates a new Handler. db may be nil, which disables persistence.
func New(cfg *config.Config, db *database.DB, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cfg:       cfg,
		db:        db,
		logger:    logger,
		startTime: time.Now(),
	}
}

// DB returns the database connection for handlers that need it.
func (h *Handler) DB() *database.DB {
	return h.db
}

// SetDiscovery sets the DNS-SD client.
func (h *Handler) SetDiscovery(d Discovery) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.discovery = d
}

// GetDiscovery retrieves the DNS-SD client.
func (h *Handler) GetDiscovery() Discovery {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.discovery
}

// SetEngine sets the mDNS controller.
func (h *Handler) SetEngine(e Engine) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.engine = e
}

// GetEngine retrieves the mDNS controller.
func (h *Handler) GetEngine() Engine {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.engine
}
