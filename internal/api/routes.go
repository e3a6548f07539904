package api

import (
	"log/slog"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/jroosing/semcache/internal/api/handlers"
	"github.com/jroosing/semcache/internal/api/middleware"
	"github.com/jroosing/semcache/internal/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/jroosing/semcache/internal/api/docs" // swagger docs
)

// PagesPrefix is where the optional static pages directory is served.
const PagesPrefix = "/pages"

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config, logger *slog.Logger) {
	// Swagger UI at /swagger/*
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg != nil && cfg.API.PagesDir != "" {
		r.Use(static.Serve(PagesPrefix, static.LocalFile(cfg.API.PagesDir, false)))
		if logger != nil {
			logger.Info("serving static pages", "dir", cfg.API.PagesDir, "prefix", PagesPrefix)
		}
	}

	api := r.Group("/api/v1")

	// Liveness stays open so probes work without the key.
	api.GET("/health", h.Health)

	protected := api.Group("")
	// Optional API key protection.
	if cfg != nil && cfg.API.APIKey != "" {
		protected.Use(middleware.RequireAPIKey(cfg.API.APIKey))
	}

	protected.GET("/stats", h.Stats)
	protected.GET("/config", h.GetConfig)

	protected.GET("/services", h.BrowseServices)
	protected.POST("/services", h.RegisterService)
	protected.GET("/services/advertised", h.ListAdvertisedServices)
	protected.DELETE("/services/advertised", h.ForgetAdvertisedService)

	protected.GET("/records", h.ListRecords)
	protected.DELETE("/records", h.ClearRecords)

	protected.GET("/settings", h.ListSettings)
	protected.GET("/settings/:key", h.GetSetting)
	protected.PUT("/settings/:key", h.PutSetting)
	protected.DELETE("/settings/:key", h.DeleteSetting)
}
