package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/galleriaapp/galleria-server/internal/curation"
	"github.com/galleriaapp/galleria-server/internal/domain"
	domainerrors "github.com/galleriaapp/galleria-server/internal/errors"
	"github.com/galleriaapp/galleria-server/internal/id"
	"github.com/galleriaapp/galleria-server/internal/normalize"
	"github.com/galleriaapp/galleria-server/internal/store"
	"github.com/galleriaapp/galleria-server/internal/taxonomy"
	"github.com/galleriaapp/galleria-server/internal/validation"
)

// ArtworkService orchestrates artwork operations. Facet fields are
// normalized through the taxonomy on the way in so analysis sees
// canonical values.
type ArtworkService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewArtworkService creates a new artwork service. A nil logger falls
// back to the default.
func NewArtworkService(store *store.Store, logger *slog.Logger) *ArtworkService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArtworkService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// CreateArtworkRequest contains the fields for cataloguing an artwork.
type CreateArtworkRequest struct {
	ArtistID    string   `json:"artist_id" validate:"required"`
	Title       string   `json:"title" validate:"required,min=1,max=300"`
	Description string   `json:"description" validate:"max=20000"`
	Medium      string   `json:"medium" validate:"max=100"`
	Style       string   `json:"style" validate:"max=100"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Colors      []string `json:"colors,omitempty" validate:"max=12,dive,max=50"`
	Dimensions  string   `json:"dimensions" validate:"max=100"`
}

// CreateArtwork catalogues a new artwork for an artist. The size
// category is derived from the parsed dimensions and stays in sync
// with them from here on.
func (s *ArtworkService) CreateArtwork(ctx context.Context, req CreateArtworkRequest) (*domain.Artwork, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	// Verify the artist exists before writing anything.
	if _, err := s.store.GetArtist(ctx, req.ArtistID); err != nil {
		return nil, err
	}

	artworkID, err := id.Generate("art")
	if err != nil {
		return nil, fmt.Errorf("generate artwork ID: %w", err)
	}

	dimensions := normalize.Dimensions(req.Dimensions)

	now := time.Now()
	artwork := &domain.Artwork{
		CreatedAt:    now,
		UpdatedAt:    now,
		ID:           artworkID,
		ArtistID:     req.ArtistID,
		Title:        req.Title,
		Description:  normalize.Description(req.Description),
		Medium:       taxonomy.NormalizeMedium(req.Medium),
		Style:        taxonomy.NormalizeStyle(req.Style),
		Price:        req.Price,
		Colors:       taxonomy.NormalizeColors(req.Colors),
		Dimensions:   dimensions,
		SizeCategory: curation.SizeCategoryFor(dimensions),
	}

	if err := s.store.CreateArtwork(ctx, artwork); err != nil {
		return nil, fmt.Errorf("create artwork: %w", err)
	}

	s.logger.Info("artwork created",
		"artwork_id", artworkID,
		"artist_id", req.ArtistID,
		"title", req.Title,
	)

	return artwork, nil
}

// GetArtwork retrieves an artwork by ID.
func (s *ArtworkService) GetArtwork(ctx context.Context, id string) (*domain.Artwork, error) {
	return s.store.GetArtwork(ctx, id)
}

// ListArtworksByArtist returns all artworks for an artist, including
// archived ones.
func (s *ArtworkService) ListArtworksByArtist(ctx context.Context, artistID string) ([]*domain.Artwork, error) {
	return s.store.ListArtworksByArtist(ctx, artistID)
}

// ListArtworks returns a page of artworks across all artists.
func (s *ArtworkService) ListArtworks(ctx context.Context, params store.PaginationParams) (*store.PaginatedResult[*domain.Artwork], error) {
	return s.store.ListArtworks(ctx, params)
}

// UpdateArtworkRequest contains optional field updates for an artwork.
// Nil fields are left unchanged.
type UpdateArtworkRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Medium      *string   `json:"medium,omitempty"`
	Style       *string   `json:"style,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Colors      *[]string `json:"colors,omitempty"`
	Dimensions  *string   `json:"dimensions,omitempty"`
	Archived    *bool     `json:"archived,omitempty"`
}

// UpdateArtwork applies a partial update. Changing the dimensions
// recomputes the size category.
func (s *ArtworkService) UpdateArtwork(ctx context.Context, artworkID string, req UpdateArtworkRequest) (*domain.Artwork, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	artwork, err := s.store.GetArtwork(ctx, artworkID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, domainerrors.Validation("artwork title cannot be empty")
		}
		artwork.Title = *req.Title
	}
	if req.Description != nil {
		artwork.Description = normalize.Description(*req.Description)
	}
	if req.Medium != nil {
		artwork.Medium = taxonomy.NormalizeMedium(*req.Medium)
	}
	if req.Style != nil {
		artwork.Style = taxonomy.NormalizeStyle(*req.Style)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, domainerrors.Validation("price cannot be negative")
		}
		artwork.Price = req.Price
	}
	if req.Colors != nil {
		artwork.Colors = taxonomy.NormalizeColors(*req.Colors)
	}
	if req.Dimensions != nil {
		dimensions := normalize.Dimensions(*req.Dimensions)
		artwork.Dimensions = dimensions
		artwork.SizeCategory = curation.SizeCategoryFor(dimensions)
	}
	if req.Archived != nil {
		artwork.Archived = *req.Archived
	}

	artwork.UpdatedAt = time.Now()

	if err := s.store.UpdateArtwork(ctx, artwork); err != nil {
		return nil, fmt.Errorf("update artwork: %w", err)
	}

	s.logger.Info("artwork updated",
		"artwork_id", artworkID,
		"title", artwork.Title,
	)

	return artwork, nil
}

// SetArtworkImage records the processed image location and blur hash.
// Called after image processing, not exposed as a direct API field.
func (s *ArtworkService) SetArtworkImage(ctx context.Context, artworkID, imagePath, blurHash string) (*domain.Artwork, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	artwork, err := s.store.GetArtwork(ctx, artworkID)
	if err != nil {
		return nil, err
	}

	artwork.ImagePath = imagePath
	artwork.BlurHash = blurHash
	artwork.UpdatedAt = time.Now()

	if err := s.store.UpdateArtwork(ctx, artwork); err != nil {
		return nil, fmt.Errorf("update artwork: %w", err)
	}

	s.logger.Info("artwork image set",
		"artwork_id", artworkID,
		"image_path", imagePath,
	)

	return artwork, nil
}

// DeleteArtwork removes an artwork and scrubs it from the owning
// artist's catalogues.
func (s *ArtworkService) DeleteArtwork(ctx context.Context, artworkID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.store.DeleteArtwork(ctx, artworkID); err != nil {
		return fmt.Errorf("delete artwork: %w", err)
	}

	s.logger.Info("artwork deleted", "artwork_id", artworkID)
	return nil
}

// RecordEngagement atomically increments one of the engagement
// counters. This is the hot path behind view tracking, so it skips the
// usual read-modify-write and delegates to the store's single-key
// increment.
func (s *ArtworkService) RecordEngagement(ctx context.Context, artworkID string, kind domain.EngagementKind) (*domain.Artwork, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !kind.Valid() {
		return nil, domainerrors.Validationf("unknown engagement kind %q", kind)
	}

	artwork, err := s.store.IncrementEngagement(ctx, artworkID, kind)
	if err != nil {
		return nil, fmt.Errorf("record engagement: %w", err)
	}

	return artwork, nil
}
