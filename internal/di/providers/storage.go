package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/galleriaapp/galleria-server/internal/config"
	"github.com/galleriaapp/galleria-server/internal/logger"
	"github.com/galleriaapp/galleria-server/internal/media/images"
)

// ProvideImageStorage provides the artwork image storage.
func ProvideImageStorage(i do.Injector) (*images.Storage, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	storage, err := images.NewStorage(cfg.ImagePath())
	if err != nil {
		return nil, fmt.Errorf("artwork image storage: %w", err)
	}

	log.Info("Image storage initialized", "path", cfg.ImagePath())

	return storage, nil
}
