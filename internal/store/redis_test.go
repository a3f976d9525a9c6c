package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedisStore_KeysAreNamespaced(t *testing.T) {
	t.Parallel()

	s := NewRedisStore(nil)

	// Every key the store touches carries the namespace, so scans over
	// keyNamespace+"*" see exactly this service's data and nothing else.
	assert.Equal(t, "opus-gate:translation:abc", s.key("translation:abc"))
	assert.Equal(t, keyNamespace+"x", s.key("x"))
}
