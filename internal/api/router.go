package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/driftlab/drift-backend-go/internal/config"
	"github.com/driftlab/drift-backend-go/internal/handler"
	"github.com/driftlab/drift-backend-go/internal/middleware"
	"github.com/driftlab/drift-backend-go/internal/service"
)

// SetupRouter builds the HTTP API
func SetupRouter(cfg *config.Config, generation *service.GenerationService, history *service.HistoryService, location *service.LocationService, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))
	if cfg.Server.RateLimit > 0 {
		r.Use(middleware.RateLimit(cfg.Server.RateLimit, time.Duration(cfg.Server.RateWindowSecs)*time.Second))
	}

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	generationHandler := handler.NewGenerationHandler(generation)
	historyHandler := handler.NewHistoryHandler(history, generation)
	locationHandler := handler.NewLocationHandler(location)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "drift API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/generate", generationHandler.Generate)
		api.GET("/status", generationHandler.Status)
		api.GET("/backends", generationHandler.Backends)
		api.GET("/types", generationHandler.Types)
		api.GET("/formats", generationHandler.Formats)

		locations := api.Group("/location")
		{
			locations.GET("", locationHandler.Geocode)
			locations.GET("/here", locationHandler.Here)
			locations.GET("/reverse", locationHandler.Reverse)
		}

		histories := api.Group("/history")
		{
			histories.GET("", historyHandler.List)
			histories.GET("/:id", historyHandler.Get)
			histories.GET("/:id/share", historyHandler.Share)

			// Mutations require a token when a secret is configured
			auth := middleware.Auth(cfg.Server.JWTSecret)
			histories.PATCH("/:id", auth, historyHandler.Update)
			histories.DELETE("/:id", auth, historyHandler.Delete)
			histories.DELETE("", auth, historyHandler.Clear)
		}
	}

	return r
}
