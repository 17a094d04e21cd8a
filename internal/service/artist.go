// Package service provides the business logic layer for managing
// artists, artworks, catalogues, and curation.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/galleriaapp/galleria-server/internal/domain"
	domainerrors "github.com/galleriaapp/galleria-server/internal/errors"
	"github.com/galleriaapp/galleria-server/internal/id"
	"github.com/galleriaapp/galleria-server/internal/normalize"
	"github.com/galleriaapp/galleria-server/internal/store"
	"github.com/galleriaapp/galleria-server/internal/taxonomy"
	"github.com/galleriaapp/galleria-server/internal/validation"
)

// ArtistService orchestrates artist profile operations.
type ArtistService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewArtistService creates a new artist service. A nil logger falls
// back to the default.
func NewArtistService(store *store.Store, logger *slog.Logger) *ArtistService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArtistService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// CreateArtistRequest contains the fields for registering an artist.
type CreateArtistRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Bio        string `json:"bio" validate:"max=5000"`
	Experience string `json:"experience" validate:"omitempty,oneof=beginner intermediate advanced expert"`
}

// CreateArtist registers a new artist with a URL slug derived from the
// name. Experience defaults to beginner when omitted.
func (s *ArtistService) CreateArtist(ctx context.Context, req CreateArtistRequest) (*domain.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	slug := taxonomy.Slugify(req.Name)
	if slug == "" {
		return nil, domainerrors.Validation("artist name must contain at least one letter or digit")
	}

	// Pre-check the slug so callers get a clear conflict instead of a
	// bare store error.
	if _, err := s.store.GetArtistBySlug(ctx, slug); err == nil {
		return nil, domainerrors.AlreadyExistsf("artist with slug %q already exists", slug)
	} else if !errors.Is(err, store.ErrArtistNotFound) {
		return nil, fmt.Errorf("check slug: %w", err)
	}

	experience := domain.ExperienceLevel(req.Experience)
	if req.Experience == "" {
		experience = domain.ExperienceBeginner
	}

	artistID, err := id.Generate("artist")
	if err != nil {
		return nil, fmt.Errorf("generate artist ID: %w", err)
	}

	now := time.Now()
	artist := &domain.Artist{
		CreatedAt:  now,
		UpdatedAt:  now,
		ID:         artistID,
		Name:       req.Name,
		Slug:       slug,
		Bio:        normalize.Description(req.Bio),
		Experience: experience,
	}

	if err := s.store.CreateArtist(ctx, artist); err != nil {
		return nil, fmt.Errorf("create artist: %w", err)
	}

	s.logger.Info("artist created",
		"artist_id", artistID,
		"name", req.Name,
		"slug", slug,
	)

	return artist, nil
}

// GetArtist retrieves an artist by ID.
func (s *ArtistService) GetArtist(ctx context.Context, id string) (*domain.Artist, error) {
	return s.store.GetArtist(ctx, id)
}

// GetArtistBySlug retrieves an artist by URL slug.
func (s *ArtistService) GetArtistBySlug(ctx context.Context, slug string) (*domain.Artist, error) {
	return s.store.GetArtistBySlug(ctx, slug)
}

// ListArtists returns all artists.
func (s *ArtistService) ListArtists(ctx context.Context) ([]*domain.Artist, error) {
	return s.store.ListArtists(ctx)
}

// UpdateArtistRequest contains optional field updates for an artist.
// Nil fields are left unchanged.
type UpdateArtistRequest struct {
	Name       *string `json:"name,omitempty"`
	Bio        *string `json:"bio,omitempty"`
	Experience *string `json:"experience,omitempty"`
}

// UpdateArtist applies a partial update to an artist profile. The slug
// intentionally stays stable on rename so existing URLs keep working.
func (s *ArtistService) UpdateArtist(ctx context.Context, artistID string, req UpdateArtistRequest) (*domain.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	artist, err := s.store.GetArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, domainerrors.Validation("artist name cannot be empty")
		}
		artist.Name = *req.Name
	}
	if req.Bio != nil {
		artist.Bio = normalize.Description(*req.Bio)
	}
	if req.Experience != nil {
		experience := domain.ExperienceLevel(*req.Experience)
		if !experience.Valid() {
			return nil, domainerrors.Validationf("invalid experience level %q", *req.Experience)
		}
		artist.Experience = experience
	}

	artist.UpdatedAt = time.Now()

	if err := s.store.UpdateArtist(ctx, artist); err != nil {
		return nil, fmt.Errorf("update artist: %w", err)
	}

	s.logger.Info("artist updated",
		"artist_id", artistID,
		"name", artist.Name,
	)

	return artist, nil
}

// DeleteArtist removes an artist along with their artworks and
// catalogues.
func (s *ArtistService) DeleteArtist(ctx context.Context, artistID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.store.DeleteArtist(ctx, artistID); err != nil {
		return fmt.Errorf("delete artist: %w", err)
	}

	s.logger.Info("artist deleted", "artist_id", artistID)
	return nil
}
