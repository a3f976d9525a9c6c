package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUpstreamError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "nested error message",
			body:     `{"error": {"message": "model not found"}}`,
			expected: "model not found",
		},
		{
			name:     "string error field",
			body:     `{"error": "cuda out of memory"}`,
			expected: "cuda out of memory",
		},
		{
			name:     "fastapi detail field",
			body:     `{"detail": "Model Helsinki-NLP/opus-mt-zh-en is currently loading"}`,
			expected: "Model Helsinki-NLP/opus-mt-zh-en is currently loading",
		},
		{
			name:     "plain message field",
			body:     `{"message": "service unavailable"}`,
			expected: "service unavailable",
		},
		{
			name:     "non-json body",
			body:     "502 Bad Gateway",
			expected: "502 Bad Gateway",
		},
		{
			name:     "empty body",
			body:     "",
			expected: "",
		},
		{
			name:     "whitespace only",
			body:     "  \n ",
			expected: "",
		},
		{
			name:     "json without known fields",
			body:     `{"status": 500}`,
			expected: `{"status": 500}`,
		},
		{
			name:     "error message takes precedence over detail",
			body:     `{"error": {"message": "primary"}, "detail": "secondary"}`,
			expected: "primary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ParseUpstreamError([]byte(tt.body)))
		})
	}
}

func TestParseUpstreamError_Truncates(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", maxErrorBodyLength+100)
	parsed := ParseUpstreamError([]byte(long))
	assert.Len(t, parsed, maxErrorBodyLength)
}

func TestAPIError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Invalid language code", ErrInvalidLanguage.Error())

	custom := NewAPIError(ErrInvalidLanguage, "Invalid language code: fr")
	assert.Equal(t, ErrInvalidLanguage.Code, custom.Code)
	assert.Equal(t, ErrInvalidLanguage.HTTPStatus, custom.HTTPStatus)
	assert.Equal(t, "Invalid language code: fr", custom.Message)

	validation := NewValidationError("texts must not be empty")
	assert.Equal(t, "VALIDATION_FAILED", validation.Code)
}
