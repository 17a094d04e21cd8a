package providers

import (
	"github.com/samber/do/v2"

	"github.com/galleriaapp/galleria-server/internal/config"
	"github.com/galleriaapp/galleria-server/internal/logger"
	"github.com/galleriaapp/galleria-server/internal/media/images"
	"github.com/galleriaapp/galleria-server/internal/service"
)

// ProvideArtistService provides the artist profile service.
func ProvideArtistService(i do.Injector) (*service.ArtistService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewArtistService(storeHandle.Store, log.Logger), nil
}

// ProvideArtworkService provides the artwork inventory service.
func ProvideArtworkService(i do.Injector) (*service.ArtworkService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewArtworkService(storeHandle.Store, log.Logger), nil
}

// ProvideCatalogueService provides the catalogue management service.
func ProvideCatalogueService(i do.Injector) (*service.CatalogueService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogueService(storeHandle.Store, log.Logger), nil
}

// ProvideMarketService provides the marketplace statistics service.
func ProvideMarketService(i do.Injector) (*service.MarketService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sourceHandle := do.MustInvoke[*MarketSourceHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewMarketService(storeHandle.Store, sourceHandle.Source, sseHandle.Manager, log.Logger)
	svc.SetSampleLimit(cfg.Market.SampleLimit)

	return svc, nil
}

// ProvideCurationService provides the catalogue analysis service.
func ProvideCurationService(i do.Injector) (*service.CurationService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	marketService := do.MustInvoke[*service.MarketService](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewCurationService(storeHandle.Store, marketService, sseHandle.Manager, log.Logger)
	svc.SetWorkers(cfg.Curation.BatchWorkers)

	return svc, nil
}

// ProvideImageService provides the artwork image service.
func ProvideImageService(i do.Injector) (*service.ImageService, error) {
	artworkService := do.MustInvoke[*service.ArtworkService](i)
	storage := do.MustInvoke[*images.Storage](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewImageService(artworkService, storage, log.Logger), nil
}
