package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// GenerationParams are passed through to the inference server on every
// translation request. They mirror the OPUS-MT generation defaults.
type GenerationParams struct {
	MaxLength         int     `json:"max_length"`
	NumBeams          int     `json:"num_beams"`
	NoRepeatNgramSize int     `json:"no_repeat_ngram_size"`
	LengthPenalty     float64 `json:"length_penalty"`
	EarlyStopping     bool    `json:"early_stopping"`
}

// InferenceConfig describes how model backends reach the inference server.
type InferenceConfig struct {
	BaseURL               string           `json:"base_url"`
	TimeoutSeconds        int              `json:"timeout_seconds"`
	ConnectTimeoutSeconds int              `json:"connect_timeout_seconds"`
	Warmup                bool             `json:"warmup"`
	Generation            GenerationParams `json:"generation"`
}

// ResultCacheConfig controls the translation result cache.
type ResultCacheConfig struct {
	Enabled    bool `json:"enabled"`
	TTLSeconds int  `json:"ttl_seconds"`
}

// RoutesConfig is the static routes file, read once at startup and immutable
// thereafter.
type RoutesConfig struct {
	LanguageNames       map[string]string            `json:"language_names"`
	TranslationRoutes   map[string]map[string]string `json:"translation_routes"`
	DefaultIntermediate string                       `json:"default_intermediate"`
	Device              string                       `json:"device"`
	Cache               ResultCacheConfig            `json:"cache"`
	Inference           InferenceConfig              `json:"inference"`
}

// LoadRoutesConfig reads and validates the routes file at path.
func LoadRoutesConfig(path string) (*RoutesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read routes config %s: %w", path, err)
	}

	cfg := &RoutesConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse routes config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid routes config %s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"languages":    len(cfg.LanguageNames),
		"intermediate": cfg.DefaultIntermediate,
		"device":       cfg.Device,
		"cache":        cfg.Cache.Enabled,
	}).Info("Routes configuration loaded")

	return cfg, nil
}

func (c *RoutesConfig) applyDefaults() {
	if c.Device == "" {
		c.Device = "auto"
	}
	if c.Cache.TTLSeconds <= 0 {
		c.Cache.TTLSeconds = 3600
	}
	if c.Inference.TimeoutSeconds <= 0 {
		c.Inference.TimeoutSeconds = 60
	}
	if c.Inference.ConnectTimeoutSeconds <= 0 {
		c.Inference.ConnectTimeoutSeconds = 15
	}
	gen := &c.Inference.Generation
	if gen.MaxLength <= 0 {
		gen.MaxLength = 512
	}
	if gen.NumBeams <= 0 {
		gen.NumBeams = 4
	}
	if gen.NoRepeatNgramSize <= 0 {
		gen.NoRepeatNgramSize = 3
	}
	if gen.LengthPenalty <= 0 {
		gen.LengthPenalty = 2.0
	}
}

func (c *RoutesConfig) validate() error {
	if len(c.LanguageNames) == 0 {
		return fmt.Errorf("language_names must not be empty")
	}
	if len(c.TranslationRoutes) == 0 {
		return fmt.Errorf("translation_routes must not be empty")
	}
	if c.Inference.BaseURL == "" {
		return fmt.Errorf("inference.base_url is required")
	}
	return nil
}
