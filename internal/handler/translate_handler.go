package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	app_errors "opus-gate/internal/errors"
	"opus-gate/internal/middleware"
	"opus-gate/internal/models"
	"opus-gate/internal/response"
	"opus-gate/internal/routing"
	"opus-gate/internal/services"
	"opus-gate/internal/translator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// TranslateHandler handles the translation endpoints.
type TranslateHandler struct {
	manager *translator.Manager
	history *services.HistoryService
}

// NewTranslateHandler creates a new TranslateHandler.
func NewTranslateHandler(manager *translator.Manager, history *services.HistoryService) *TranslateHandler {
	return &TranslateHandler{
		manager: manager,
		history: history,
	}
}

// TranslationRequest is the payload for POST /translate.
type TranslationRequest struct {
	FromLang string `json:"from" binding:"required"`
	ToLang   string `json:"to" binding:"required"`
	Text     string `json:"text" binding:"required"`
}

// TranslationResponse is the result for a single translated text.
// TranslationPath is only present for chained routes.
type TranslationResponse struct {
	OriginalText    string   `json:"original_text"`
	TranslatedText  string   `json:"translated_text"`
	FromLang        string   `json:"from"`
	ToLang          string   `json:"to"`
	TranslationPath []string `json:"translation_path,omitempty"`
}

// BatchTranslationRequest is the payload for POST /translate/batch.
type BatchTranslationRequest struct {
	FromLang string   `json:"from" binding:"required"`
	ToLang   string   `json:"to" binding:"required"`
	Texts    []string `json:"texts" binding:"required,min=1"`
}

// BatchTranslationResponse is the result for POST /translate/batch.
type BatchTranslationResponse struct {
	Translations []TranslationResponse `json:"translations"`
	FromLang     string                `json:"from"`
	ToLang       string                `json:"to"`
}

// Translate handles POST /translate.
func (h *TranslateHandler) Translate(c *gin.Context) {
	var req TranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	start := time.Now()
	result, err := h.manager.Translate(c.Request.Context(), req.FromLang, req.ToLang, req.Text)
	if err != nil {
		h.translationError(c, err)
		return
	}

	h.recordLog(c, result, time.Since(start))

	c.JSON(http.StatusOK, toTranslationResponse(result))
}

// TranslateBatch handles POST /translate/batch.
func (h *TranslateHandler) TranslateBatch(c *gin.Context) {
	var req BatchTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	start := time.Now()
	results, err := h.manager.TranslateBatch(c.Request.Context(), req.FromLang, req.ToLang, req.Texts)
	if err != nil {
		h.translationError(c, err)
		return
	}
	elapsed := time.Since(start)

	translations := make([]TranslationResponse, 0, len(results))
	perItem := elapsed
	if len(results) > 0 {
		perItem = elapsed / time.Duration(len(results))
	}
	for _, result := range results {
		h.recordLog(c, result, perItem)
		translations = append(translations, toTranslationResponse(result))
	}

	c.JSON(http.StatusOK, BatchTranslationResponse{
		Translations: translations,
		FromLang:     req.FromLang,
		ToLang:       req.ToLang,
	})
}

func toTranslationResponse(result *translator.Result) TranslationResponse {
	return TranslationResponse{
		OriginalText:    result.OriginalText,
		TranslatedText:  result.TranslatedText,
		FromLang:        result.From,
		ToLang:          result.To,
		TranslationPath: result.Path,
	}
}

// bindError maps binding failures onto the API error surface, calling out
// the missing field when the validator identifies one.
func (h *TranslateHandler) bindError(c *gin.Context, err error) {
	if errors.Is(err, io.EOF) {
		response.Error(c, app_errors.ErrBadRequest)
		return
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		response.ErrorI18nFromAPIError(c, app_errors.ErrInvalidJSON, "error.invalid_json")
		return
	}

	if field := missingField(err); field != "" {
		response.ErrorI18nFromAPIError(c, app_errors.ErrValidation, "error.missing_field", map[string]any{
			"Field": field,
		})
		return
	}

	response.Error(c, app_errors.NewAPIError(app_errors.ErrValidation, err.Error()))
}

// translationError maps routing and backend failures onto the API error
// surface with localized messages.
func (h *TranslateHandler) translationError(c *gin.Context, err error) {
	var invalidLang *routing.InvalidLanguageError
	if errors.As(err, &invalidLang) {
		response.ErrorI18nFromAPIError(c, app_errors.ErrInvalidLanguage, "error.invalid_language", map[string]any{
			"Code":  invalidLang.Code,
			"Valid": strings.Join(invalidLang.Valid, ", "),
		})
		return
	}

	if errors.Is(err, routing.ErrSameLanguage) {
		response.ErrorI18nFromAPIError(c, app_errors.ErrSameLanguage, "error.same_language")
		return
	}

	var unsupported *routing.UnsupportedRouteError
	if errors.As(err, &unsupported) {
		response.ErrorI18nFromAPIError(c, app_errors.ErrUnsupportedRoute, "error.unsupported_route", map[string]any{
			"From": unsupported.From,
			"To":   unsupported.To,
		})
		return
	}

	// Upstream failures already carry their status and code.
	var apiErr *app_errors.APIError
	if errors.As(err, &apiErr) {
		logrus.WithError(err).Error("Inference backend failed")
		response.Error(c, apiErr)
		return
	}

	logrus.WithError(err).Error("Translation failed")
	response.ErrorI18nFromAPIError(c, app_errors.ErrTranslation, "translate.failed", map[string]any{
		"Reason": err.Error(),
	})
}

// recordLog queues one history row for a translation result.
func (h *TranslateHandler) recordLog(c *gin.Context, result *translator.Result, duration time.Duration) {
	if h.history == nil {
		return
	}

	var path datatypes.JSON
	if len(result.Path) > 0 {
		if raw, err := json.Marshal(result.Path); err == nil {
			path = datatypes.JSON(raw)
		}
	}

	h.history.Record(&models.TranslationLog{
		RequestID:      middleware.GetRequestID(c),
		FromLang:       result.From,
		ToLang:         result.To,
		SourceText:     result.OriginalText,
		TranslatedText: result.TranslatedText,
		Path:           path,
		DurationMs:     duration.Milliseconds(),
		Cached:         result.Cached,
	})
}

// missingField extracts the field name from a required-field binding error.
// Other validation failures (min length and so on) return "".
func missingField(err error) string {
	msg := err.Error()
	if !strings.Contains(msg, "'required' tag") {
		return ""
	}
	const marker = "Error:Field validation for '"
	idx := strings.Index(msg, marker)
	if idx < 0 {
		return ""
	}
	rest := msg[idx+len(marker):]
	end := strings.IndexByte(rest, '\'')
	if end < 0 {
		return ""
	}
	return strings.ToLower(rest[:end])
}
