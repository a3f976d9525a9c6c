package utils

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipCompress(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func brotliCompress(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func zstdCompress(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDecompressResponse(t *testing.T) {
	t.Parallel()

	payload := []byte(`{"translation_text":"γειά σου κόσμε"}`)

	tests := []struct {
		name     string
		encoding string
		data     []byte
	}{
		{"gzip", "gzip", gzipCompress(t, payload)},
		{"brotli", "br", brotliCompress(t, payload)},
		{"zstd", "zstd", zstdCompress(t, payload)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecompressResponse(tt.encoding, tt.data)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestDecompressResponse_Passthrough(t *testing.T) {
	t.Parallel()

	payload := []byte("plain body")

	// No encoding, empty body, unknown encoding and corrupt data all
	// return the input unchanged.
	for _, tc := range []struct {
		encoding string
		data     []byte
	}{
		{"", payload},
		{"gzip", nil},
		{"deflate", payload},
		{"gzip", payload},
	} {
		got, err := DecompressResponse(tc.encoding, tc.data)
		require.NoError(t, err)
		assert.Equal(t, tc.data, got)
	}
}
