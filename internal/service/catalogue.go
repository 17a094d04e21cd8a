package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/galleriaapp/galleria-server/internal/domain"
	domainerrors "github.com/galleriaapp/galleria-server/internal/errors"
	"github.com/galleriaapp/galleria-server/internal/id"
	"github.com/galleriaapp/galleria-server/internal/normalize"
	"github.com/galleriaapp/galleria-server/internal/store"
	"github.com/galleriaapp/galleria-server/internal/validation"
)

// CatalogueService orchestrates catalogue operations. Membership
// changes enforce that a catalogue only ever references artworks
// belonging to its own artist.
type CatalogueService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewCatalogueService creates a new catalogue service. A nil logger
// falls back to the default.
func NewCatalogueService(store *store.Store, logger *slog.Logger) *CatalogueService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogueService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// CreateCatalogueRequest contains the fields for creating a catalogue.
type CreateCatalogueRequest struct {
	ArtistID    string `json:"artist_id" validate:"required"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Type        string `json:"type" validate:"required,oneof=showcase portfolio exhibition collection series mixed"`
}

// CreateCatalogue creates an empty catalogue for an artist.
func (s *CatalogueService) CreateCatalogue(ctx context.Context, req CreateCatalogueRequest) (*domain.Catalogue, error) {
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

	catalogueID, err := id.Generate("cat")
	if err != nil {
		return nil, fmt.Errorf("generate catalogue ID: %w", err)
	}

	now := time.Now()
	catalogue := &domain.Catalogue{
		CreatedAt:   now,
		UpdatedAt:   now,
		ID:          catalogueID,
		ArtistID:    req.ArtistID,
		Name:        req.Name,
		Description: normalize.Description(req.Description),
		Type:        domain.CatalogueType(req.Type),
		ArtworkIDs:  []string{},
	}

	if err := s.store.CreateCatalogue(ctx, catalogue); err != nil {
		return nil, fmt.Errorf("create catalogue: %w", err)
	}

	s.logger.Info("catalogue created",
		"catalogue_id", catalogueID,
		"artist_id", req.ArtistID,
		"name", req.Name,
		"type", req.Type,
	)

	return catalogue, nil
}

// GetCatalogue retrieves a catalogue by ID.
func (s *CatalogueService) GetCatalogue(ctx context.Context, id string) (*domain.Catalogue, error) {
	return s.store.GetCatalogue(ctx, id)
}

// ListCataloguesByArtist returns all catalogues for an artist.
func (s *CatalogueService) ListCataloguesByArtist(ctx context.Context, artistID string) ([]*domain.Catalogue, error) {
	return s.store.ListCataloguesByArtist(ctx, artistID)
}

// ListCatalogues returns all catalogues.
func (s *CatalogueService) ListCatalogues(ctx context.Context) ([]*domain.Catalogue, error) {
	return s.store.ListCatalogues(ctx)
}

// UpdateCatalogueRequest contains optional field updates for a
// catalogue. Nil fields are left unchanged.
type UpdateCatalogueRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty"`
}

// UpdateCatalogue applies a partial update to catalogue metadata.
func (s *CatalogueService) UpdateCatalogue(ctx context.Context, catalogueID string, req UpdateCatalogueRequest) (*domain.Catalogue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	catalogue, err := s.store.GetCatalogue(ctx, catalogueID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, domainerrors.Validation("catalogue name cannot be empty")
		}
		catalogue.Name = *req.Name
	}
	if req.Description != nil {
		catalogue.Description = normalize.Description(*req.Description)
	}
	if req.Type != nil {
		catalogueType := domain.CatalogueType(*req.Type)
		if !catalogueType.Valid() {
			return nil, domainerrors.Validationf("invalid catalogue type %q", *req.Type)
		}
		catalogue.Type = catalogueType
	}

	catalogue.UpdatedAt = time.Now()

	if err := s.store.UpdateCatalogue(ctx, catalogue); err != nil {
		return nil, fmt.Errorf("update catalogue: %w", err)
	}

	s.logger.Info("catalogue updated",
		"catalogue_id", catalogueID,
		"name", catalogue.Name,
	)

	return catalogue, nil
}

// DeleteCatalogue removes a catalogue. Artworks themselves are
// untouched.
func (s *CatalogueService) DeleteCatalogue(ctx context.Context, catalogueID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.store.DeleteCatalogue(ctx, catalogueID); err != nil {
		return fmt.Errorf("delete catalogue: %w", err)
	}

	s.logger.Info("catalogue deleted", "catalogue_id", catalogueID)
	return nil
}

// AddArtwork appends an artwork to the end of a catalogue. Adding an
// artwork that is already present is a no-op.
func (s *CatalogueService) AddArtwork(ctx context.Context, catalogueID, artworkID string) (*domain.Catalogue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	catalogue, err := s.store.GetCatalogue(ctx, catalogueID)
	if err != nil {
		return nil, err
	}

	artwork, err := s.store.GetArtwork(ctx, artworkID)
	if err != nil {
		return nil, err
	}

	if artwork.ArtistID != catalogue.ArtistID {
		return nil, domainerrors.Validation("artwork belongs to a different artist")
	}

	catalogue, err = s.store.AddArtworkToCatalogue(ctx, catalogueID, artworkID)
	if err != nil {
		return nil, fmt.Errorf("add artwork to catalogue: %w", err)
	}

	s.logger.Info("artwork added to catalogue",
		"catalogue_id", catalogueID,
		"artwork_id", artworkID,
	)

	return catalogue, nil
}

// RemoveArtwork removes an artwork from a catalogue, preserving the
// order of the remaining entries.
func (s *CatalogueService) RemoveArtwork(ctx context.Context, catalogueID, artworkID string) (*domain.Catalogue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	catalogue, err := s.store.RemoveArtworkFromCatalogue(ctx, catalogueID, artworkID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("artwork removed from catalogue",
		"catalogue_id", catalogueID,
		"artwork_id", artworkID,
	)

	return catalogue, nil
}

// MoveArtwork repositions an artwork within a catalogue. Positions
// outside the valid range are clamped.
func (s *CatalogueService) MoveArtwork(ctx context.Context, catalogueID, artworkID string, position int) (*domain.Catalogue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	catalogue, err := s.store.MoveArtworkInCatalogue(ctx, catalogueID, artworkID, position)
	if err != nil {
		return nil, err
	}

	s.logger.Info("artwork moved in catalogue",
		"catalogue_id", catalogueID,
		"artwork_id", artworkID,
		"position", position,
	)

	return catalogue, nil
}

// ReplaceArtworks swaps the full ordered membership of a catalogue.
// Every artwork must exist and belong to the catalogue's artist.
func (s *CatalogueService) ReplaceArtworks(ctx context.Context, catalogueID string, artworkIDs []string) (*domain.Catalogue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	catalogue, err := s.store.GetCatalogue(ctx, catalogueID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(artworkIDs))
	for _, artworkID := range artworkIDs {
		if seen[artworkID] {
			return nil, domainerrors.Validationf("duplicate artwork %s in catalogue order", artworkID)
		}
		seen[artworkID] = true

		artwork, err := s.store.GetArtwork(ctx, artworkID)
		if err != nil {
			return nil, err
		}
		if artwork.ArtistID != catalogue.ArtistID {
			return nil, domainerrors.Validationf("artwork %s belongs to a different artist", artworkID)
		}
	}

	if artworkIDs == nil {
		artworkIDs = []string{}
	}
	catalogue.ArtworkIDs = artworkIDs
	catalogue.UpdatedAt = time.Now()

	if err := s.store.UpdateCatalogue(ctx, catalogue); err != nil {
		return nil, fmt.Errorf("update catalogue: %w", err)
	}

	s.logger.Info("catalogue artworks replaced",
		"catalogue_id", catalogueID,
		"count", len(artworkIDs),
	)

	return catalogue, nil
}

// CatalogueArtworks returns the catalogue's artworks in display order.
// Entries pointing at since-deleted artworks are skipped.
func (s *CatalogueService) CatalogueArtworks(ctx context.Context, catalogueID string) ([]*domain.Artwork, error) {
	catalogue, err := s.store.GetCatalogue(ctx, catalogueID)
	if err != nil {
		return nil, err
	}

	artworks, err := s.store.GetArtworksBatch(ctx, catalogue.ArtworkIDs)
	if err != nil {
		return nil, fmt.Errorf("get catalogue artworks: %w", err)
	}

	return artworks, nil
}
