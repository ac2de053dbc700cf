package api

import (
	"github.com/gin-gonic/gin"

	"github.com/elisa-a-v/courtlistener/internal/api/handler"
	"github.com/elisa-a-v/courtlistener/internal/api/middleware"
	"github.com/elisa-a-v/courtlistener/internal/config"
	"github.com/elisa-a-v/courtlistener/internal/repository"
	"github.com/elisa-a-v/courtlistener/internal/service"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	cfg *config.Config,
	searchService *service.SearchService,
	alertRepo *repository.AlertRepository,
) *gin.Engine {
	// Set Gin mode
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.Server.CORS))
	// Maintenance middleware is only installed when the mode is enabled,
	// so normal operation pays nothing for it.
	if cfg.Server.Maintenance.Enabled {
		r.Use(middleware.Maintenance(cfg.Server.Maintenance))
	}

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	searchHandler := handler.NewSearchHandler(searchService)
	alertHandler := handler.NewAlertHandler(alertRepo)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Search
		v1.GET("/search", searchHandler.Search)

		// Opinion clusters
		v1.GET("/clusters/:id", searchHandler.GetCluster)

		// Docket alerts
		v1.GET("/alerts", alertHandler.List)
		v1.POST("/alerts", alertHandler.Subscribe)
		v1.DELETE("/alerts", alertHandler.Unsubscribe)
	}

	return r
}
