package handler

import (
	"net/http"

	app_errors "opus-gate/internal/errors"
	"opus-gate/internal/i18n"
	"opus-gate/internal/response"
	"opus-gate/internal/translator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CacheHandler handles the cache management endpoints.
type CacheHandler struct {
	manager *translator.Manager
}

// NewCacheHandler creates a new CacheHandler.
func NewCacheHandler(manager *translator.Manager) *CacheHandler {
	return &CacheHandler{manager: manager}
}

// CacheClearedResponse is the result for DELETE /cache.
type CacheClearedResponse struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	ModelsCleared  int    `json:"models_cleared"`
	ResultsCleared int64  `json:"results_cleared"`
}

// ClearCache handles DELETE /cache. Loaded model handles are dropped and
// the result cache is emptied; the next translation reloads on demand.
func (h *CacheHandler) ClearCache(c *gin.Context) {
	modelsCleared, resultsCleared, err := h.manager.ClearCache()
	if err != nil {
		logrus.WithError(err).Error("Failed to clear caches")
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInternalServer, err.Error()))
		return
	}

	c.JSON(http.StatusOK, CacheClearedResponse{
		Status:         "ok",
		Message:        i18n.Message(c, "cache.cleared"),
		ModelsCleared:  modelsCleared,
		ResultsCleared: resultsCleared,
	})
}

// CacheStats handles GET /cache/stats.
func (h *CacheHandler) CacheStats(c *gin.Context) {
	response.SuccessI18n(c, "cache.stats", h.manager.CacheStats())
}
