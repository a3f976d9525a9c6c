// Package store provides a pluggable key-value store used for the
// translation result cache. A memory store is used by default; a Redis store
// is selected when REDIS_DSN is configured.
package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a key is not found in the store.
var ErrNotFound = errors.New("key not found")

// Store defines the interface for the key-value store.
type Store interface {
	// Set stores a key-value pair with an optional TTL (0 means no expiry).
	Set(key string, value []byte, ttl time.Duration) error

	// Get retrieves a value by its key. Returns ErrNotFound if absent.
	Get(key string) ([]byte, error)

	// Delete removes a value by its key.
	Delete(key string) error

	// Exists checks if a key exists.
	Exists(key string) (bool, error)

	// SetNX sets a key-value pair if the key does not already exist.
	SetNX(key string, value []byte, ttl time.Duration) (bool, error)

	// Len returns the number of stored entries.
	Len() (int64, error)

	// Clear removes all data.
	Clear() error

	// Close releases resources held by the store.
	Close() error
}
