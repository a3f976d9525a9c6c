// Package config implements configuration management: process configuration
// from environment variables and the static translation routes file.
package config

import (
	"fmt"
	"os"

	"opus-gate/internal/types"
	"opus-gate/internal/utils"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Constants for configuration limits
const (
	minPort                 = 1
	maxPort                 = 65535
	defaultPort             = 8080
	defaultShutdownTimeout  = 30
	defaultMaxConcurrent    = 100
	defaultMaxBodySizeMB    = 4
	defaultRoutesConfigPath = "config/translation_config.json"
	defaultDatabaseDSN      = "data/opus-gate.db"
	defaultReadWriteTimeout = 120
	defaultIdleConnTimeout  = 120
)

// Config holds all application configuration loaded from the environment.
type Config struct {
	Server      types.ServerConfig
	Auth        types.AuthConfig
	CORS        types.CORSConfig
	Performance types.PerformanceConfig
	Log         types.LogConfig
	Database    types.DatabaseConfig
	RedisDSN    string
	RoutesPath  string
}

// Manager implements types.ConfigManager on top of environment variables.
type Manager struct {
	config *Config
}

// NewManager creates a configuration manager, loading .env when present.
func NewManager() (*Manager, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	m := &Manager{}
	if err := m.ReloadConfig(); err != nil {
		return nil, err
	}
	return m, nil
}

// ReloadConfig re-reads configuration from the environment.
func (m *Manager) ReloadConfig() error {
	config := &Config{
		Server: types.ServerConfig{
			Port:                    utils.ParseInteger(os.Getenv("PORT"), defaultPort),
			Host:                    utils.GetEnvOrDefault("HOST", "0.0.0.0"),
			ReadTimeout:             utils.ParseInteger(os.Getenv("SERVER_READ_TIMEOUT"), defaultReadWriteTimeout),
			WriteTimeout:            utils.ParseInteger(os.Getenv("SERVER_WRITE_TIMEOUT"), defaultReadWriteTimeout),
			IdleTimeout:             utils.ParseInteger(os.Getenv("SERVER_IDLE_TIMEOUT"), defaultIdleConnTimeout),
			GracefulShutdownTimeout: utils.ParseInteger(os.Getenv("SERVER_GRACEFUL_SHUTDOWN_TIMEOUT"), defaultShutdownTimeout),
			MaxRequestBodySizeMB:    utils.ParseInteger(os.Getenv("MAX_REQUEST_BODY_SIZE_MB"), defaultMaxBodySizeMB),
		},
		Auth: types.AuthConfig{
			Key: os.Getenv("AUTH_KEY"),
		},
		CORS: types.CORSConfig{
			Enabled:          utils.ParseBoolean(os.Getenv("ENABLE_CORS"), true),
			AllowedOrigins:   utils.ParseArray(os.Getenv("ALLOWED_ORIGINS"), []string{"*"}),
			AllowedMethods:   utils.ParseArray(os.Getenv("ALLOWED_METHODS"), []string{"GET", "POST", "DELETE", "OPTIONS"}),
			AllowedHeaders:   utils.ParseArray(os.Getenv("ALLOWED_HEADERS"), []string{"*"}),
			AllowCredentials: utils.ParseBoolean(os.Getenv("ALLOW_CREDENTIALS"), false),
		},
		Performance: types.PerformanceConfig{
			MaxConcurrentRequests: utils.ParseInteger(os.Getenv("MAX_CONCURRENT_REQUESTS"), defaultMaxConcurrent),
		},
		Log: types.LogConfig{
			Level:      utils.GetEnvOrDefault("LOG_LEVEL", "info"),
			Format:     utils.GetEnvOrDefault("LOG_FORMAT", "text"),
			EnableFile: utils.ParseBoolean(os.Getenv("LOG_ENABLE_FILE"), false),
			FilePath:   utils.GetEnvOrDefault("LOG_FILE_PATH", "logs/app.log"),
		},
		Database: types.DatabaseConfig{
			DSN: utils.GetEnvOrDefault("DATABASE_DSN", defaultDatabaseDSN),
		},
		RedisDSN:   os.Getenv("REDIS_DSN"),
		RoutesPath: utils.GetEnvOrDefault("ROUTES_CONFIG_PATH", defaultRoutesConfigPath),
	}

	m.config = config
	return m.Validate()
}

// Validate checks the loaded configuration for obvious misconfiguration.
func (m *Manager) Validate() error {
	cfg := m.config

	if cfg.Server.Port < minPort || cfg.Server.Port > maxPort {
		return fmt.Errorf("port must be between %d and %d, got %d", minPort, maxPort, cfg.Server.Port)
	}

	if cfg.Performance.MaxConcurrentRequests < 1 {
		return fmt.Errorf("max concurrent requests cannot be less than 1")
	}

	if cfg.RoutesPath == "" {
		return fmt.Errorf("ROUTES_CONFIG_PATH cannot be empty")
	}

	return nil
}

// GetAuthConfig returns the admin authentication configuration.
func (m *Manager) GetAuthConfig() types.AuthConfig {
	return m.config.Auth
}

// GetCORSConfig returns the CORS configuration.
func (m *Manager) GetCORSConfig() types.CORSConfig {
	return m.config.CORS
}

// GetPerformanceConfig returns the performance configuration.
func (m *Manager) GetPerformanceConfig() types.PerformanceConfig {
	return m.config.Performance
}

// GetLogConfig returns the logging configuration.
func (m *Manager) GetLogConfig() types.LogConfig {
	return m.config.Log
}

// GetDatabaseConfig returns the database configuration.
func (m *Manager) GetDatabaseConfig() types.DatabaseConfig {
	return m.config.Database
}

// GetEffectiveServerConfig returns the server configuration.
func (m *Manager) GetEffectiveServerConfig() types.ServerConfig {
	return m.config.Server
}

// GetRedisDSN returns the Redis DSN, empty when the memory store is used.
func (m *Manager) GetRedisDSN() string {
	return m.config.RedisDSN
}

// GetRoutesConfigPath returns the path of the static routes file.
func (m *Manager) GetRoutesConfigPath() string {
	return m.config.RoutesPath
}

// DisplayServerConfig logs a startup summary of the effective configuration.
func (m *Manager) DisplayServerConfig() {
	cfg := m.config

	storeType := "memory"
	if cfg.RedisDSN != "" {
		storeType = "redis"
	}

	authMode := "disabled"
	if cfg.Auth.Key != "" {
		authMode = "enabled"
	}

	logrus.Info("=== Server Configuration ===")
	logrus.Infof("  Listen: %s:%d", cfg.Server.Host, cfg.Server.Port)
	logrus.Infof("  Routes config: %s", cfg.RoutesPath)
	logrus.Infof("  Result cache store: %s", storeType)
	logrus.Infof("  Database DSN: %s", cfg.Database.DSN)
	logrus.Infof("  Admin auth: %s", authMode)
	logrus.Infof("  CORS enabled: %v", cfg.CORS.Enabled)
	logrus.Infof("  Max concurrent requests: %d", cfg.Performance.MaxConcurrentRequests)
	logrus.Infof("  Log level: %s, format: %s", cfg.Log.Level, cfg.Log.Format)
	logrus.Info("============================")
}
