package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_Defaults(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	server := m.GetEffectiveServerConfig()
	assert.Equal(t, 8080, server.Port)
	assert.Equal(t, "0.0.0.0", server.Host)
	assert.Equal(t, 4, server.MaxRequestBodySizeMB)

	assert.Empty(t, m.GetAuthConfig().Key)
	assert.Equal(t, 100, m.GetPerformanceConfig().MaxConcurrentRequests)
	assert.Equal(t, "info", m.GetLogConfig().Level)
	assert.Equal(t, "data/opus-gate.db", m.GetDatabaseConfig().DSN)
	assert.Equal(t, "config/translation_config.json", m.GetRoutesConfigPath())
	assert.Empty(t, m.GetRedisDSN())

	cors := m.GetCORSConfig()
	assert.True(t, cors.Enabled)
	assert.Equal(t, []string{"*"}, cors.AllowedOrigins)
}

func TestNewManager_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("AUTH_KEY", "secret")
	t.Setenv("MAX_CONCURRENT_REQUESTS", "10")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("REDIS_DSN", "redis://localhost:6379/0")
	t.Setenv("ROUTES_CONFIG_PATH", "custom/routes.json")
	t.Setenv("LOG_LEVEL", "debug")

	m, err := NewManager()
	require.NoError(t, err)

	assert.Equal(t, 9000, m.GetEffectiveServerConfig().Port)
	assert.Equal(t, "127.0.0.1", m.GetEffectiveServerConfig().Host)
	assert.Equal(t, "secret", m.GetAuthConfig().Key)
	assert.Equal(t, 10, m.GetPerformanceConfig().MaxConcurrentRequests)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, m.GetCORSConfig().AllowedOrigins)
	assert.Equal(t, "redis://localhost:6379/0", m.GetRedisDSN())
	assert.Equal(t, "custom/routes.json", m.GetRoutesConfigPath())
	assert.Equal(t, "debug", m.GetLogConfig().Level)
}

func TestNewManager_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("ENABLE_CORS", "maybe")

	m, err := NewManager()
	require.NoError(t, err)

	assert.Equal(t, 8080, m.GetEffectiveServerConfig().Port)
	assert.True(t, m.GetCORSConfig().Enabled)
}

func TestManager_Validate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "port too large",
			env:     map[string]string{"PORT": "70000"},
			wantErr: "port must be between",
		},
		{
			name:    "port zero",
			env:     map[string]string{"PORT": "0"},
			wantErr: "port must be between",
		},
		{
			name:    "concurrency below one",
			env:     map[string]string{"MAX_CONCURRENT_REQUESTS": "0"},
			wantErr: "max concurrent requests cannot be less than 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := NewManager()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
