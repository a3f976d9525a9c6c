package handler

import (
	"strconv"

	app_errors "opus-gate/internal/errors"
	"opus-gate/internal/response"
	"opus-gate/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HistoryHandler handles the translation history endpoint.
type HistoryHandler struct {
	history *services.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(history *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// List handles GET /history. The optional limit query parameter bounds the
// number of rows returned, newest first.
func (h *HistoryHandler) List(c *gin.Context) {
	limit := services.DefaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.Error(c, app_errors.NewValidationError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	logs, err := h.history.Query(limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to query translation history")
		response.Error(c, app_errors.ErrDatabase)
		return
	}

	response.SuccessI18n(c, "history.listed", logs)
}
