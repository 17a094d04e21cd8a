// Package di provides dependency injection configuration for the Galleria server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/galleriaapp/galleria-server/internal/config"
	"github.com/galleriaapp/galleria-server/internal/di/providers"
	"github.com/galleriaapp/galleria-server/internal/logger"
	"github.com/galleriaapp/galleria-server/internal/media/images"
	"github.com/galleriaapp/galleria-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)

	// Market snapshot layer
	do.Provide(injector, providers.ProvideMarketSource)
	do.Provide(injector, providers.ProvideSnapshotWatcher)

	// Storage layer
	do.Provide(injector, providers.ProvideImageStorage)

	// Business services
	do.Provide(injector, providers.ProvideArtistService)
	do.Provide(injector, providers.ProvideArtworkService)
	do.Provide(injector, providers.ProvideCatalogueService)
	do.Provide(injector, providers.ProvideMarketService)
	do.Provide(injector, providers.ProvideCurationService)
	do.Provide(injector, providers.ProvideImageService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)
	do.Provide(injector, providers.ProvideMDNSService)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.MarketSourceHandle](injector)
	_ = do.MustInvoke[*images.Storage](injector)

	// Business services
	_ = do.MustInvoke[*service.ArtistService](injector)
	_ = do.MustInvoke[*service.ArtworkService](injector)
	_ = do.MustInvoke[*service.CatalogueService](injector)
	_ = do.MustInvoke[*service.MarketService](injector)
	_ = do.MustInvoke[*service.CurationService](injector)
	_ = do.MustInvoke[*service.ImageService](injector)

	// Workers
	_ = do.MustInvoke[*providers.SnapshotWatcherHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	_ = do.MustInvoke[*providers.MDNSServiceHandle](injector)

	return nil
}
