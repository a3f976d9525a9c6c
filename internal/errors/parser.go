package errors

import (
	"strings"

	"github.com/tidwall/gjson"
)

// maxErrorBodyLength limits how much upstream error text is surfaced to clients.
const maxErrorBodyLength = 2048

// ParseUpstreamError extracts a human-readable message from an upstream
// inference server error body. It understands several common JSON shapes and
// falls back to the raw (truncated) body for non-JSON responses.
func ParseUpstreamError(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	if gjson.Valid(trimmed) {
		// {"error": {"message": "..."}}
		if msg := gjson.Get(trimmed, "error.message"); msg.Exists() {
			return truncateString(strings.TrimSpace(msg.String()))
		}
		// {"error": "..."}
		if msg := gjson.Get(trimmed, "error"); msg.Exists() && msg.Type == gjson.String {
			return truncateString(strings.TrimSpace(msg.String()))
		}
		// {"detail": "..."} (FastAPI-style inference servers)
		if msg := gjson.Get(trimmed, "detail"); msg.Exists() && msg.Type == gjson.String {
			return truncateString(strings.TrimSpace(msg.String()))
		}
		// {"message": "..."}
		if msg := gjson.Get(trimmed, "message"); msg.Exists() && msg.Type == gjson.String {
			return truncateString(strings.TrimSpace(msg.String()))
		}
	}

	return truncateString(trimmed)
}

func truncateString(s string) string {
	if len(s) > maxErrorBodyLength {
		return s[:maxErrorBodyLength]
	}
	return s
}
