// Package handler implements the HTTP handlers for the translation API.
package handler

import (
	"context"
	"net/http"
	"time"

	"opus-gate/internal/i18n"
	"opus-gate/internal/version"

	"github.com/gin-gonic/gin"
	"go.uber.org/dig"
	"gorm.io/gorm"
)

// Server aggregates all handlers for route registration.
type Server struct {
	*TranslateHandler
	*CacheHandler
	*HistoryHandler
	*CommonHandler

	DB *gorm.DB
}

// ServerParams defines the dependencies for the Server.
type ServerParams struct {
	dig.In

	DB               *gorm.DB
	TranslateHandler *TranslateHandler
	CacheHandler     *CacheHandler
	HistoryHandler   *HistoryHandler
	CommonHandler    *CommonHandler
}

// NewServer creates a new Server instance.
func NewServer(params ServerParams) *Server {
	return &Server{
		TranslateHandler: params.TranslateHandler,
		CacheHandler:     params.CacheHandler,
		HistoryHandler:   params.HistoryHandler,
		CommonHandler:    params.CommonHandler,
		DB:               params.DB,
	}
}

// ServiceInfo is the root endpoint payload.
type ServiceInfo struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Database  string `json:"database,omitempty"`
	Uptime    string `json:"uptime,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Index handles GET / and returns service information.
func (s *Server) Index(c *gin.Context) {
	c.JSON(http.StatusOK, ServiceInfo{
		Status:  "ok",
		Message: i18n.Message(c, "service.running"),
		Version: version.Version,
	})
}

// Health handles GET /health. The database is pinged so a wedged
// connection shows up as degraded instead of healthy.
func (s *Server) Health(c *gin.Context) {
	status := HealthStatus{
		Status:    "ok",
		Message:   i18n.Message(c, "common.healthy"),
		Timestamp: time.Now().Unix(),
	}

	if start, exists := c.Get("serverStartTime"); exists {
		if startTime, ok := start.(time.Time); ok {
			status.Uptime = time.Since(startTime).Round(time.Second).String()
		}
	}

	if s.DB != nil {
		status.Database = "ok"
		sqlDB, err := s.DB.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			status.Status = "degraded"
			status.Database = "error"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
	}

	c.JSON(http.StatusOK, status)
}
