package http

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/nutritool/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// ClientIP keys the rate limiter, so forwarded headers count only from listed proxies
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		log.Printf("[HTTP] WARNING: ignoring trusted proxies %v: %v", cfg.Server.TrustedProxies, err)
	}

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/nutrients", handler.ListNutrients)
		v1.GET("/run", handler.RunReport)

		foods := v1.Group("/foods")
		{
			foods.GET("", handler.ListFoods)
			foods.GET("/top", handler.TopFoods)
		}
	}

	return router
}
