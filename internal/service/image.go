package service

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/galleriaapp/galleria-server/internal/domain"
	domainerrors "github.com/galleriaapp/galleria-server/internal/errors"
	"github.com/galleriaapp/galleria-server/internal/media/images"
)

// ImageService handles artwork image uploads and retrieval. Uploads
// are decoded, resized into display and thumbnail variants, stored on
// disk, and linked to the artwork record together with a blurhash
// placeholder.
type ImageService struct {
	artworks  *ArtworkService
	processor *images.Processor
	storage   *images.Storage
	logger    *slog.Logger
}

// NewImageService creates an image service writing through storage.
func NewImageService(artworks *ArtworkService, storage *images.Storage, logger *slog.Logger) *ImageService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageService{
		artworks:  artworks,
		processor: images.NewProcessor(storage, logger),
		storage:   storage,
		logger:    logger,
	}
}

// UploadImage processes an uploaded image for an artwork and records
// the stored display path and blurhash on the artwork.
func (s *ImageService) UploadImage(ctx context.Context, artworkID string, data []byte) (*domain.Artwork, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Reject uploads for unknown artworks before doing any decode
	// work.
	if _, err := s.artworks.GetArtwork(ctx, artworkID); err != nil {
		return nil, err
	}

	result, err := s.processor.Process(ctx, artworkID, data)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeValidation, "process image")
	}

	artwork, err := s.artworks.SetArtworkImage(ctx, artworkID, result.DisplayPath, result.BlurHash)
	if err != nil {
		return nil, err
	}

	s.logger.Info("artwork image uploaded",
		"artwork_id", artworkID,
		"width", result.Width,
		"height", result.Height,
		"bytes", len(data),
	)

	return artwork, nil
}

// Image returns the stored bytes for one variant of an artwork's
// image along with an ETag for cache validation.
func (s *ImageService) Image(ctx context.Context, artworkID, variant string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	if !images.ValidVariant(variant) {
		return nil, "", domainerrors.Validationf("unknown image variant %q", variant)
	}

	data, err := s.storage.Get(artworkID, variant)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", domainerrors.NotFoundf("no %s image for artwork %s", variant, artworkID)
		}
		return nil, "", domainerrors.Wrap(err, domainerrors.CodeInternal, "read image")
	}

	etag, err := s.storage.Hash(artworkID, variant)
	if err != nil {
		return nil, "", domainerrors.Wrap(err, domainerrors.CodeInternal, "hash image")
	}

	return data, etag, nil
}

// DeleteImages removes every stored image variant for an artwork.
// Used when the artwork itself is deleted, so missing files are not
// an error.
func (s *ImageService) DeleteImages(ctx context.Context, artworkID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.storage.Delete(artworkID); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "delete images")
	}

	s.logger.Info("artwork images deleted",
		"artwork_id", artworkID,
	)
	return nil
}
