// Package translator coordinates route resolution, model loading and the
// translation result cache.
package translator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"opus-gate/internal/backend"
	"opus-gate/internal/config"
	"opus-gate/internal/routing"
	"opus-gate/internal/store"

	"github.com/sirupsen/logrus"
)

const resultCachePrefix = "translation:"

// BackendFactory constructs a backend for a model identifier.
type BackendFactory interface {
	New(modelID string) (backend.Backend, error)
}

// Result is the outcome of a single translation.
type Result struct {
	OriginalText   string
	TranslatedText string
	From           string
	To             string
	// Path holds the hop labels for chained routes, nil for direct ones.
	Path []string
	// Cached reports whether the result came from the result cache.
	Cached bool
}

// inflightLoad coordinates concurrent loads of the same model so that only
// one goroutine constructs the backend while the others wait.
type inflightLoad struct {
	wg  sync.WaitGroup
	res backend.Backend
	err error
}

// Manager resolves routes and runs translations through lazily loaded
// model backends.
type Manager struct {
	table   *routing.Table
	factory BackendFactory

	backends    map[string]backend.Backend
	backendLock sync.Mutex

	inFlight     map[string]*inflightLoad
	inFlightLock sync.Mutex

	resultCache  store.Store
	cacheEnabled bool
	cacheTTL     time.Duration

	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
}

// NewManager creates a translation manager. Models are not loaded until the
// first request that needs them, unless Warmup is called.
func NewManager(table *routing.Table, factory BackendFactory, routesConfig *config.RoutesConfig, resultCache store.Store) *Manager {
	return &Manager{
		table:        table,
		factory:      factory,
		backends:     make(map[string]backend.Backend),
		inFlight:     make(map[string]*inflightLoad),
		resultCache:  resultCache,
		cacheEnabled: routesConfig.Cache.Enabled,
		cacheTTL:     time.Duration(routesConfig.Cache.TTLSeconds) * time.Second,
	}
}

// Table returns the route table backing this manager.
func (m *Manager) Table() *routing.Table {
	return m.table
}

// Translate resolves the route for the language pair and runs text through
// it, consulting the result cache first.
func (m *Manager) Translate(ctx context.Context, from, to, text string) (*Result, error) {
	route, err := m.table.Resolve(from, to)
	if err != nil {
		return nil, err
	}

	key := m.cacheKey(from, to, text)
	if cached, ok := m.lookupCache(key); ok {
		return &Result{
			OriginalText:   text,
			TranslatedText: cached,
			From:           from,
			To:             to,
			Path:           route.Hops,
			Cached:         true,
		}, nil
	}

	current := text
	for _, modelID := range route.Models {
		b, err := m.getBackend(modelID)
		if err != nil {
			return nil, fmt.Errorf("failed to load model %s: %w", modelID, err)
		}
		current, err = b.Translate(ctx, current)
		if err != nil {
			return nil, err
		}
	}

	m.storeCache(key, current)

	return &Result{
		OriginalText:   text,
		TranslatedText: current,
		From:           from,
		To:             to,
		Path:           route.Hops,
	}, nil
}

// TranslateBatch translates every text in order. The route is resolved once
// for the whole batch; the first failing item aborts the batch.
func (m *Manager) TranslateBatch(ctx context.Context, from, to string, texts []string) ([]*Result, error) {
	if _, err := m.table.Resolve(from, to); err != nil {
		return nil, err
	}

	results := make([]*Result, 0, len(texts))
	for i, text := range texts {
		result, err := m.Translate(ctx, from, to, text)
		if err != nil {
			return nil, fmt.Errorf("batch item %d: %w", i, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// Warmup loads and exercises every model the route table references.
func (m *Manager) Warmup(ctx context.Context) error {
	for _, modelID := range m.table.ModelIDs() {
		b, err := m.getBackend(modelID)
		if err != nil {
			return fmt.Errorf("failed to load model %s: %w", modelID, err)
		}
		if err := b.Warmup(ctx); err != nil {
			return fmt.Errorf("failed to warm up model %s: %w", modelID, err)
		}
		logrus.WithField("model", modelID).Info("Model warmed up")
	}
	return nil
}

// ClearCache drops every loaded model handle and empties the result cache.
// It returns the number of models and result entries released.
func (m *Manager) ClearCache() (int, int64, error) {
	m.backendLock.Lock()
	modelsCleared := len(m.backends)
	m.backends = make(map[string]backend.Backend)
	m.backendLock.Unlock()

	entriesCleared, err := m.resultCache.Len()
	if err != nil {
		entriesCleared = 0
	}
	if err := m.resultCache.Clear(); err != nil {
		return modelsCleared, 0, fmt.Errorf("failed to clear result cache: %w", err)
	}

	m.cacheHits.Store(0)
	m.cacheMisses.Store(0)

	logrus.WithFields(logrus.Fields{
		"models":  modelsCleared,
		"results": entriesCleared,
	}).Info("Translation caches cleared")
	return modelsCleared, entriesCleared, nil
}

// Stats describes the current cache state.
type Stats struct {
	LoadedModels  []string `json:"loaded_models"`
	ResultEntries int64    `json:"result_entries"`
	CacheEnabled  bool     `json:"cache_enabled"`
	CacheHits     int64    `json:"cache_hits"`
	CacheMisses   int64    `json:"cache_misses"`
}

// CacheStats reports the loaded models and result cache counters.
func (m *Manager) CacheStats() *Stats {
	m.backendLock.Lock()
	loaded := make([]string, 0, len(m.backends))
	for modelID := range m.backends {
		loaded = append(loaded, modelID)
	}
	m.backendLock.Unlock()

	entries, err := m.resultCache.Len()
	if err != nil {
		entries = 0
	}

	return &Stats{
		LoadedModels:  loaded,
		ResultEntries: entries,
		CacheEnabled:  m.cacheEnabled,
		CacheHits:     m.cacheHits.Load(),
		CacheMisses:   m.cacheMisses.Load(),
	}
}

// getBackend returns the cached backend for a model, constructing it once
// even when multiple requests ask for the same unloaded model concurrently.
func (m *Manager) getBackend(modelID string) (backend.Backend, error) {
	m.backendLock.Lock()
	existing, ok := m.backends[modelID]
	m.backendLock.Unlock()
	if ok {
		return existing, nil
	}

	m.inFlightLock.Lock()
	if call, inProgress := m.inFlight[modelID]; inProgress {
		m.inFlightLock.Unlock()
		call.wg.Wait()
		return call.res, call.err
	}
	call := &inflightLoad{}
	call.wg.Add(1)
	m.inFlight[modelID] = call
	m.inFlightLock.Unlock()

	b, err := m.factory.New(modelID)
	if err == nil {
		m.backendLock.Lock()
		if prior, ok := m.backends[modelID]; ok {
			b = prior
		} else {
			m.backends[modelID] = b
			logrus.WithField("model", modelID).Info("Model backend loaded")
		}
		m.backendLock.Unlock()
	}

	call.res = b
	call.err = err
	call.wg.Done()

	m.inFlightLock.Lock()
	delete(m.inFlight, modelID)
	m.inFlightLock.Unlock()

	return b, err
}

func (m *Manager) cacheKey(from, to, text string) string {
	sum := sha256.Sum256([]byte(from + "\x00" + to + "\x00" + text))
	return resultCachePrefix + hex.EncodeToString(sum[:])
}

func (m *Manager) lookupCache(key string) (string, bool) {
	if !m.cacheEnabled {
		return "", false
	}
	value, err := m.resultCache.Get(key)
	if err != nil {
		if err != store.ErrNotFound {
			logrus.WithError(err).Warn("Result cache lookup failed")
		}
		m.cacheMisses.Add(1)
		return "", false
	}
	m.cacheHits.Add(1)
	return string(value), true
}

func (m *Manager) storeCache(key, translated string) {
	if !m.cacheEnabled {
		return
	}
	if err := m.resultCache.Set(key, []byte(translated), m.cacheTTL); err != nil {
		logrus.WithError(err).Warn("Failed to store translation in result cache")
	}
}
