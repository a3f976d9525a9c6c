package handler

import (
	"net/http"

	"opus-gate/internal/translator"

	"github.com/gin-gonic/gin"
)

// CommonHandler handles the informational endpoints.
type CommonHandler struct {
	manager *translator.Manager
}

// NewCommonHandler creates a new CommonHandler.
func NewCommonHandler(manager *translator.Manager) *CommonHandler {
	return &CommonHandler{manager: manager}
}

// LanguageInfo describes the configured languages and routes.
type LanguageInfo struct {
	Languages    map[string]string   `json:"languages"`
	Routes       map[string][]string `json:"routes"`
	Intermediate string              `json:"intermediate,omitempty"`
}

// Languages handles GET /languages.
func (h *CommonHandler) Languages(c *gin.Context) {
	table := h.manager.Table()
	c.JSON(http.StatusOK, LanguageInfo{
		Languages:    table.LanguageNames(),
		Routes:       table.AvailableRoutes(),
		Intermediate: table.Intermediate(),
	})
}
