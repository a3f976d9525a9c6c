package locales

// Messages English (US) translations
var MessagesEnUS = map[string]string{
	// Common messages
	"common.success": "Success",
	"common.healthy": "Service is healthy",

	// Service metadata
	"service.description": "REST API for text translation between Chinese, English and Greek",
	"service.running":     "Translation API is running",

	// Translation related
	"translate.success":       "Translation completed",
	"translate.batch_success": "Batch translation completed",
	"translate.failed":        "Translation failed: {{.Reason}}",

	// Validation errors
	"error.invalid_language":  "Invalid language code: {{.Code}}. Must be one of: {{.Valid}}",
	"error.same_language":     "Source and target languages cannot be the same",
	"error.unsupported_route": "No translation route available from {{.From}} to {{.To}}",
	"error.missing_field":     "Missing required field: {{.Field}}",
	"error.invalid_json":      "Invalid JSON format",

	// Cache related
	"cache.cleared": "Model cache cleared successfully",
	"cache.stats":   "Cache statistics",

	// History related
	"history.listed": "Translation history",
}
