// Package router assembles the gin engine and registers all routes.
package router

import (
	"time"

	app_errors "opus-gate/internal/errors"
	"opus-gate/internal/handler"
	"opus-gate/internal/i18n"
	"opus-gate/internal/middleware"
	"opus-gate/internal/response"
	"opus-gate/internal/types"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with the full middleware chain and the
// API routes registered.
func NewRouter(serverHandler *handler.Server, configManager types.ConfigManager) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Register global middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(configManager.GetLogConfig()))
	router.Use(middleware.CORS(configManager.GetCORSConfig()))
	router.Use(middleware.RateLimiter(configManager.GetPerformanceConfig()))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestBodySizeLimit(int64(configManager.GetEffectiveServerConfig().MaxRequestBodySizeMB) << 20))
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(i18n.Middleware())

	startTime := time.Now()
	router.Use(func(c *gin.Context) {
		c.Set("serverStartTime", startTime)
		c.Next()
	})

	registerSystemRoutes(router, serverHandler)
	registerAPIRoutes(router, serverHandler)
	registerAdminRoutes(router, serverHandler, configManager)

	router.NoRoute(func(c *gin.Context) {
		response.Error(c, app_errors.NewNotFoundError("route not found: "+c.Request.URL.Path))
	})

	return router
}

// registerSystemRoutes registers system-level routes
func registerSystemRoutes(router *gin.Engine, serverHandler *handler.Server) {
	router.GET("/", serverHandler.Index)
	router.GET("/health", serverHandler.Health)
}

// registerAPIRoutes registers the public translation routes. These stay open
// even when an auth key is configured.
func registerAPIRoutes(router *gin.Engine, serverHandler *handler.Server) {
	router.GET("/languages", serverHandler.Languages)
	router.POST("/translate", serverHandler.Translate)
	router.POST("/translate/batch", serverHandler.TranslateBatch)
}

// registerAdminRoutes registers the management routes, gated by the auth key
// when one is configured.
func registerAdminRoutes(router *gin.Engine, serverHandler *handler.Server, configManager types.ConfigManager) {
	admin := router.Group("")
	admin.Use(middleware.Auth(configManager.GetAuthConfig()))

	admin.DELETE("/cache", serverHandler.ClearCache)
	admin.GET("/cache/stats", serverHandler.CacheStats)
	admin.GET("/history", serverHandler.List)
}
