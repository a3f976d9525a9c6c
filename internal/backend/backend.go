// Package backend provides clients against the model inference service.
package backend

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"opus-gate/internal/config"
	"opus-gate/internal/httpclient"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// Backend exposes a single loaded translation model.
type Backend interface {
	// ModelID returns the identifier of the model served by this backend.
	ModelID() string

	// Translate sends text through the model and returns the translation.
	Translate(ctx context.Context, text string) (string, error)

	// Warmup issues a throwaway request so the inference service loads
	// the model before real traffic arrives.
	Warmup(ctx context.Context) error
}

// Factory builds backends against the configured inference service.
type Factory struct {
	clientManager *httpclient.Manager
	inference     config.InferenceConfig
	device        string
}

// NewFactory creates a backend factory from the routes configuration.
func NewFactory(routesConfig *config.RoutesConfig, clientManager *httpclient.Manager) *Factory {
	return &Factory{
		clientManager: clientManager,
		inference:     routesConfig.Inference,
		device:        routesConfig.Device,
	}
}

// New constructs a backend for the given model identifier.
func (f *Factory) New(modelID string) (Backend, error) {
	if modelID == "" {
		return nil, fmt.Errorf("model id cannot be empty")
	}

	base, err := url.Parse(f.inference.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid inference base URL %q: %w", f.inference.BaseURL, err)
	}
	endpoint := base.JoinPath("models", modelID).String()

	client := f.clientManager.GetClient(&httpclient.Config{
		ConnectTimeout:      time.Duration(f.inference.ConnectTimeoutSeconds) * time.Second,
		RequestTimeout:      time.Duration(f.inference.TimeoutSeconds) * time.Second,
		IdleConnTimeout:     120 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		DisableCompression:  true,
	})

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        modelID,
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logrus.WithFields(logrus.Fields{
				"model": name,
				"from":  from.String(),
				"to":    to.String(),
			}).Warn("Inference circuit breaker state changed")
		},
	})

	return &HTTPBackend{
		modelID:    modelID,
		endpoint:   endpoint,
		device:     f.device,
		generation: f.inference.Generation,
		client:     client,
		breaker:    breaker,
	}, nil
}
