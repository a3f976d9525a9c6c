package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"opus-gate/internal/config"
	app_errors "opus-gate/internal/errors"
	"opus-gate/internal/utils"

	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// HTTPBackend invokes one model on the inference service over HTTP.
// A circuit breaker guards the endpoint so a broken model does not
// burn the full request timeout on every call.
type HTTPBackend struct {
	modelID    string
	endpoint   string
	device     string
	generation config.GenerationParams
	client     *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// ModelID returns the identifier of the model served by this backend.
func (b *HTTPBackend) ModelID() string {
	return b.modelID
}

// Translate sends text to the inference service and returns the model output.
func (b *HTTPBackend) Translate(ctx context.Context, text string) (string, error) {
	result, err := b.breaker.Execute(func() (any, error) {
		return b.invoke(ctx, text)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return "", fmt.Errorf("model %s temporarily unavailable: %w", b.modelID, err)
		}
		return "", err
	}
	return result.(string), nil
}

// Warmup issues a short request so the service loads the model weights.
func (b *HTTPBackend) Warmup(ctx context.Context) error {
	_, err := b.Translate(ctx, "ok")
	return err
}

func (b *HTTPBackend) invoke(ctx context.Context, text string) (string, error) {
	body, err := b.buildPayload(text)
	if err != nil {
		return "", fmt.Errorf("failed to build inference payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", b.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, br, zstd")

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read inference response: %w", err)
	}

	decoded, err := utils.DecompressResponse(resp.Header.Get("Content-Encoding"), raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode inference response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		parsed := app_errors.ParseUpstreamError(decoded)
		return "", app_errors.NewAPIErrorWithUpstream(
			app_errors.ErrBadGateway.HTTPStatus,
			app_errors.ErrBadGateway.Code,
			fmt.Sprintf("model %s returned status %d: %s", b.modelID, resp.StatusCode, parsed),
		)
	}

	translated := b.extractTranslation(decoded)
	if translated == "" {
		return "", fmt.Errorf("model %s returned no translation", b.modelID)
	}
	return translated, nil
}

// buildPayload assembles the inference request body with the configured
// generation parameters attached.
func (b *HTTPBackend) buildPayload(text string) ([]byte, error) {
	payload, err := sjson.SetBytes([]byte(`{}`), "inputs", text)
	if err != nil {
		return nil, err
	}
	payload, err = sjson.SetBytes(payload, "parameters.max_length", b.generation.MaxLength)
	if err != nil {
		return nil, err
	}
	payload, err = sjson.SetBytes(payload, "parameters.num_beams", b.generation.NumBeams)
	if err != nil {
		return nil, err
	}
	payload, err = sjson.SetBytes(payload, "parameters.no_repeat_ngram_size", b.generation.NoRepeatNgramSize)
	if err != nil {
		return nil, err
	}
	payload, err = sjson.SetBytes(payload, "parameters.length_penalty", b.generation.LengthPenalty)
	if err != nil {
		return nil, err
	}
	payload, err = sjson.SetBytes(payload, "parameters.early_stopping", b.generation.EarlyStopping)
	if err != nil {
		return nil, err
	}
	if b.device != "" {
		payload, err = sjson.SetBytes(payload, "options.device", b.device)
		if err != nil {
			return nil, err
		}
	}
	return payload, nil
}

// extractTranslation pulls the translated text out of the response body.
// The service answers with either a bare object or a one-element array.
func (b *HTTPBackend) extractTranslation(body []byte) string {
	if v := gjson.GetBytes(body, "0.translation_text"); v.Exists() {
		return v.String()
	}
	if v := gjson.GetBytes(body, "translation_text"); v.Exists() {
		return v.String()
	}
	return ""
}
