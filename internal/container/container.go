// Package container wires the application dependencies together.
package container

import (
	"opus-gate/internal/app"
	"opus-gate/internal/backend"
	"opus-gate/internal/config"
	"opus-gate/internal/db"
	"opus-gate/internal/handler"
	"opus-gate/internal/httpclient"
	"opus-gate/internal/router"
	"opus-gate/internal/routing"
	"opus-gate/internal/services"
	"opus-gate/internal/store"
	"opus-gate/internal/translator"
	"opus-gate/internal/types"

	"go.uber.org/dig"
)

// BuildContainer creates and configures the dependency injection container.
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	providers := []any{
		db.NewDB,
		store.NewStore,
		httpclient.NewManager,
		services.NewHistoryService,
		translator.NewManager,
		handler.NewTranslateHandler,
		handler.NewCacheHandler,
		handler.NewHistoryHandler,
		handler.NewCommonHandler,
		handler.NewServer,
		router.NewRouter,
		app.NewApp,
	}

	if err := container.Provide(config.NewManager, dig.As(new(types.ConfigManager))); err != nil {
		return nil, err
	}

	if err := container.Provide(func(configManager types.ConfigManager) (*config.RoutesConfig, error) {
		return config.LoadRoutesConfig(configManager.GetRoutesConfigPath())
	}); err != nil {
		return nil, err
	}

	if err := container.Provide(func(routesConfig *config.RoutesConfig) (*routing.Table, error) {
		return routing.NewTable(routesConfig.LanguageNames, routesConfig.TranslationRoutes, routesConfig.DefaultIntermediate)
	}); err != nil {
		return nil, err
	}

	if err := container.Provide(backend.NewFactory, dig.As(new(translator.BackendFactory))); err != nil {
		return nil, err
	}

	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return nil, err
		}
	}

	return container, nil
}
