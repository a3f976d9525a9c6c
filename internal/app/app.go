// Package app provides the main application logic and lifecycle management.
package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"opus-gate/internal/config"
	"opus-gate/internal/httpclient"
	"opus-gate/internal/i18n"
	"opus-gate/internal/services"
	"opus-gate/internal/store"
	"opus-gate/internal/translator"
	"opus-gate/internal/types"
	"opus-gate/internal/version"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/dig"
	"gorm.io/gorm"
)

// App holds all services and manages the application lifecycle.
type App struct {
	engine            *gin.Engine
	configManager     types.ConfigManager
	routesConfig      *config.RoutesConfig
	translatorManager *translator.Manager
	historyService    *services.HistoryService
	httpClientManager *httpclient.Manager
	storage           store.Store
	db                *gorm.DB
	httpServer        *http.Server
}

// AppParams defines the dependencies for the App.
type AppParams struct {
	dig.In

	Engine            *gin.Engine
	ConfigManager     types.ConfigManager
	RoutesConfig      *config.RoutesConfig
	TranslatorManager *translator.Manager
	HistoryService    *services.HistoryService
	HTTPClientManager *httpclient.Manager
	Storage           store.Store
	DB                *gorm.DB
}

// NewApp is the constructor for App, with dependencies injected by dig.
func NewApp(params AppParams) *App {
	return &App{
		engine:            params.Engine,
		configManager:     params.ConfigManager,
		routesConfig:      params.RoutesConfig,
		translatorManager: params.TranslatorManager,
		historyService:    params.HistoryService,
		httpClientManager: params.HTTPClientManager,
		storage:           params.Storage,
		db:                params.DB,
	}
}

// Start runs the application, it is a non-blocking call.
func (a *App) Start() error {
	if err := i18n.Init(); err != nil {
		return fmt.Errorf("failed to initialize i18n: %w", err)
	}

	a.historyService.Start()

	// Optional model warmup: loads every configured model before serving.
	// Without it, the first request per model pays the load cost.
	if a.routesConfig.Inference.Warmup {
		warmupCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(a.routesConfig.Inference.TimeoutSeconds)*time.Second*3)
		defer cancel()
		if err := a.translatorManager.Warmup(warmupCtx); err != nil {
			logrus.WithError(err).Warn("Model warmup failed, models will load on demand")
		}
	}

	a.configManager.DisplayServerConfig()

	serverConfig := a.configManager.GetEffectiveServerConfig()
	a.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port),
		Handler:        a.engine,
		ReadTimeout:    time.Duration(serverConfig.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(serverConfig.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(serverConfig.IdleTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logrus.Infof("Translation API server started successfully on Version: %s", version.Version)
		logrus.Infof("Server address: http://%s:%d", serverConfig.Host, serverConfig.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server startup failed: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the application.
func (a *App) Stop(ctx context.Context) {
	logrus.Info("Shutting down server...")

	serverConfig := a.configManager.GetEffectiveServerConfig()
	totalTimeout := time.Duration(serverConfig.GracefulShutdownTimeout) * time.Second

	// Reserve a few seconds for background services after the HTTP drain.
	httpShutdownTimeout := totalTimeout - 5*time.Second
	if httpShutdownTimeout <= 0 {
		httpShutdownTimeout = totalTimeout
	}
	httpShutdownCtx, cancelHTTPShutdown := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer cancelHTTPShutdown()

	httpShutdownStart := time.Now()
	if err := a.httpServer.Shutdown(httpShutdownCtx); err != nil {
		logrus.Debug("HTTP server graceful shutdown timed out, forcing remaining connections to close.")
		if closeErr := a.httpServer.Close(); closeErr != nil {
			logrus.Errorf("Error forcing HTTP server to close: %v", closeErr)
		}
	}
	logrus.Infof("HTTP server has been shut down. (took %v)", time.Since(httpShutdownStart))

	a.historyService.Stop(ctx)

	if a.httpClientManager != nil {
		a.httpClientManager.CloseIdleConnections()
	}

	// Close storage and database connections in parallel for faster shutdown.
	var wg sync.WaitGroup

	if a.storage != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.storage.Close(); err != nil {
				logrus.WithError(err).Error("Failed to close storage")
			}
		}()
	}

	if a.db != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sqlDB, err := a.db.DB()
			if err != nil {
				logrus.WithError(err).Error("Failed to get underlying sql.DB for closing")
				return
			}
			if err := sqlDB.Close(); err != nil {
				logrus.WithError(err).Error("Failed to close database")
			}
		}()
	}

	wg.Wait()
	logrus.Info("Server exited gracefully")
}
