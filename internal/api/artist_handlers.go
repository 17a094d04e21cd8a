package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/galleriaapp/galleria-server/internal/domain"
	domainerrors "github.com/galleriaapp/galleria-server/internal/errors"
	"github.com/galleriaapp/galleria-server/internal/service"
	"github.com/galleriaapp/galleria-server/internal/store"
)

func (s *Server) registerArtistRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listArtists",
		Method:      http.MethodGet,
		Path:        "/api/v1/artists",
		Summary:     "List artists",
		Description: "Returns all artists on this server",
		Tags:        []string{"Artists"},
	}, s.handleListArtists)

	huma.Register(s.api, huma.Operation{
		OperationID: "createArtist",
		Method:      http.MethodPost,
		Path:        "/api/v1/artists",
		Summary:     "Create artist",
		Description: "Registers a new artist with a URL slug derived from the name",
		Tags:        []string{"Artists"},
	}, s.handleCreateArtist)

	huma.Register(s.api, huma.Operation{
		OperationID: "getArtist",
		Method:      http.MethodGet,
		Path:        "/api/v1/artists/{id}",
		Summary:     "Get artist",
		Description: "Returns an artist by ID",
		Tags:        []string{"Artists"},
	}, s.handleGetArtist)

	huma.Register(s.api, huma.Operation{
		OperationID: "getArtistBySlug",
		Method:      http.MethodGet,
		Path:        "/api/v1/artists/slug/{slug}",
		Summary:     "Get artist by slug",
		Description: "Returns an artist by URL slug, for public gallery links",
		Tags:        []string{"Artists"},
	}, s.handleGetArtistBySlug)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateArtist",
		Method:      http.MethodPatch,
		Path:        "/api/v1/artists/{id}",
		Summary:     "Update artist",
		Description: "Updates artist profile fields; the slug stays stable on rename",
		Tags:        []string{"Artists"},
	}, s.handleUpdateArtist)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteArtist",
		Method:      http.MethodDelete,
		Path:        "/api/v1/artists/{id}",
		Summary:     "Delete artist",
		Description: "Deletes an artist along with their artworks and catalogues",
		Tags:        []string{"Artists"},
	}, s.handleDeleteArtist)

	huma.Register(s.api, huma.Operation{
		OperationID: "listArtistArtworks",
		Method:      http.MethodGet,
		Path:        "/api/v1/artists/{id}/artworks",
		Summary:     "List artist artworks",
		Description: "Returns an artist's full inventory, including archived artworks",
		Tags:        []string{"Artists"},
	}, s.handleListArtistArtworks)

	huma.Register(s.api, huma.Operation{
		OperationID: "listArtistCatalogues",
		Method:      http.MethodGet,
		Path:        "/api/v1/artists/{id}/catalogues",
		Summary:     "List artist catalogues",
		Description: "Returns all catalogues owned by an artist",
		Tags:        []string{"Artists"},
	}, s.handleListArtistCatalogues)
}

// === DTOs ===

// ArtistResponse is an artist profile in API responses.
type ArtistResponse struct {
	ID         string    `json:"id" doc:"Artist ID"`
	Name       string    `json:"name" doc:"Display name"`
	Slug       string    `json:"slug" doc:"URL slug derived from the name"`
	Bio        string    `json:"bio,omitempty" doc:"Artist biography"`
	Experience string    `json:"experience" doc:"Experience level"`
	CreatedAt  time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt  time.Time `json:"updated_at" doc:"Last update time"`
}

// ListArtistsResponse contains all artists on the server.
type ListArtistsResponse struct {
	Artists []ArtistResponse `json:"artists" doc:"All artists"`
}

// ListArtistsOutput wraps the artist list for Huma.
type ListArtistsOutput struct {
	Body ListArtistsResponse
}

// CreateArtistRequest contains the artist creation request body.
type CreateArtistRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200" doc:"Display name"`
	Bio        string `json:"bio,omitempty" validate:"max=5000" doc:"Artist biography"`
	Experience string `json:"experience,omitempty" validate:"omitempty,oneof=beginner intermediate advanced expert" doc:"Experience level, defaults to beginner"`
}

// CreateArtistInput wraps the creation request for Huma.
type CreateArtistInput struct {
	Body CreateArtistRequest
}

// ArtistOutput wraps a single artist response for Huma.
type ArtistOutput struct {
	Body ArtistResponse
}

// GetArtistInput contains parameters for fetching an artist.
type GetArtistInput struct {
	ID string `path:"id" doc:"Artist ID"`
}

// GetArtistBySlugInput contains parameters for the slug lookup.
type GetArtistBySlugInput struct {
	Slug string `path:"slug" doc:"Artist URL slug"`
}

// UpdateArtistRequest contains optional artist profile updates.
type UpdateArtistRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=200" doc:"New display name"`
	Bio        *string `json:"bio,omitempty" validate:"omitempty,max=5000" doc:"New biography"`
	Experience *string `json:"experience,omitempty" validate:"omitempty,oneof=beginner intermediate advanced expert" doc:"New experience level"`
}

// UpdateArtistInput wraps the update request for Huma.
type UpdateArtistInput struct {
	ID   string `path:"id" doc:"Artist ID"`
	Body UpdateArtistRequest
}

// DeleteArtistInput contains parameters for deleting an artist.
type DeleteArtistInput struct {
	ID string `path:"id" doc:"Artist ID"`
}

// ArtistArtworksResponse contains an artist's inventory.
type ArtistArtworksResponse struct {
	Artworks []ArtworkResponse `json:"artworks" doc:"Artworks owned by this artist"`
}

// ArtistArtworksOutput wraps the inventory list for Huma.
type ArtistArtworksOutput struct {
	Body ArtistArtworksResponse
}

// ArtistCataloguesResponse contains an artist's catalogues.
type ArtistCataloguesResponse struct {
	Catalogues []CatalogueResponse `json:"catalogues" doc:"Catalogues owned by this artist"`
}

// ArtistCataloguesOutput wraps the catalogue list for Huma.
type ArtistCataloguesOutput struct {
	Body ArtistCataloguesResponse
}

// === Handlers ===

func (s *Server) handleListArtists(ctx context.Context, _ *struct{}) (*ListArtistsOutput, error) {
	artists, err := s.services.Artist.ListArtists(ctx)
	if err != nil {
		s.logger.Error("Failed to list artists", "error", err)
		return nil, huma.Error500InternalServerError("Failed to list artists", err)
	}

	resp := make([]ArtistResponse, len(artists))
	for i, artist := range artists {
		resp[i] = mapArtistResponse(artist)
	}

	return &ListArtistsOutput{Body: ListArtistsResponse{Artists: resp}}, nil
}

func (s *Server) handleCreateArtist(ctx context.Context, input *CreateArtistInput) (*ArtistOutput, error) {
	artist, err := s.services.Artist.CreateArtist(ctx, service.CreateArtistRequest{
		Name:       input.Body.Name,
		Bio:        input.Body.Bio,
		Experience: input.Body.Experience,
	})
	if err != nil {
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) {
			return nil, huma.NewError(domainErr.HTTPStatus(), domainErr.Message, err)
		}
		s.logger.Error("Failed to create artist", "error", err)
		return nil, huma.Error500InternalServerError("Failed to create artist", err)
	}

	return &ArtistOutput{Body: mapArtistResponse(artist)}, nil
}

func (s *Server) handleGetArtist(ctx context.Context, input *GetArtistInput) (*ArtistOutput, error) {
	artist, err := s.services.Artist.GetArtist(ctx, input.ID)
	if err != nil {
		if errors.Is(err, store.ErrArtistNotFound) {
			return nil, huma.Error404NotFound("Artist not found", err)
		}
		s.logger.Error("Failed to get artist", "error", err, "artist_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to get artist", err)
	}

	return &ArtistOutput{Body: mapArtistResponse(artist)}, nil
}

func (s *Server) handleGetArtistBySlug(ctx context.Context, input *GetArtistBySlugInput) (*ArtistOutput, error) {
	artist, err := s.services.Artist.GetArtistBySlug(ctx, input.Slug)
	if err != nil {
		if errors.Is(err, store.ErrArtistNotFound) {
			return nil, huma.Error404NotFound("Artist not found", err)
		}
		s.logger.Error("Failed to get artist by slug", "error", err, "slug", input.Slug)
		return nil, huma.Error500InternalServerError("Failed to get artist", err)
	}

	return &ArtistOutput{Body: mapArtistResponse(artist)}, nil
}

func (s *Server) handleUpdateArtist(ctx context.Context, input *UpdateArtistInput) (*ArtistOutput, error) {
	artist, err := s.services.Artist.UpdateArtist(ctx, input.ID, service.UpdateArtistRequest{
		Name:       input.Body.Name,
		Bio:        input.Body.Bio,
		Experience: input.Body.Experience,
	})
	if err != nil {
		if errors.Is(err, store.ErrArtistNotFound) {
			return nil, huma.Error404NotFound("Artist not found", err)
		}
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) {
			return nil, huma.NewError(domainErr.HTTPStatus(), domainErr.Message, err)
		}
		s.logger.Error("Failed to update artist", "error", err, "artist_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to update artist", err)
	}

	return &ArtistOutput{Body: mapArtistResponse(artist)}, nil
}

func (s *Server) handleDeleteArtist(ctx context.Context, input *DeleteArtistInput) (*MessageOutput, error) {
	// Collect artwork IDs first so image files can be cleaned up after
	// the cascade delete.
	artworks, err := s.services.Artwork.ListArtworksByArtist(ctx, input.ID)
	if err != nil {
		s.logger.Error("Failed to list artworks for deletion", "error", err, "artist_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to delete artist", err)
	}

	if err := s.services.Artist.DeleteArtist(ctx, input.ID); err != nil {
		if errors.Is(err, store.ErrArtistNotFound) {
			return nil, huma.Error404NotFound("Artist not found", err)
		}
		s.logger.Error("Failed to delete artist", "error", err, "artist_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to delete artist", err)
	}

	for _, artwork := range artworks {
		if err := s.services.Image.DeleteImages(ctx, artwork.ID); err != nil {
			s.logger.Warn("failed to delete artwork images",
				"artwork_id", artwork.ID,
				"error", err,
			)
		}
	}

	return &MessageOutput{Body: MessageResponse{Message: "Artist deleted"}}, nil
}

func (s *Server) handleListArtistArtworks(ctx context.Context, input *GetArtistInput) (*ArtistArtworksOutput, error) {
	// Check existence explicitly: an unknown artist and an empty
	// inventory are different answers.
	if _, err := s.services.Artist.GetArtist(ctx, input.ID); err != nil {
		if errors.Is(err, store.ErrArtistNotFound) {
			return nil, huma.Error404NotFound("Artist not found", err)
		}
		s.logger.Error("Failed to get artist", "error", err, "artist_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to list artworks", err)
	}

	artworks, err := s.services.Artwork.ListArtworksByArtist(ctx, input.ID)
	if err != nil {
		s.logger.Error("Failed to list artist artworks", "error", err, "artist_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to list artworks", err)
	}

	resp := make([]ArtworkResponse, len(artworks))
	for i, artwork := range artworks {
		resp[i] = mapArtworkResponse(artwork)
	}

	return &ArtistArtworksOutput{Body: ArtistArtworksResponse{Artworks: resp}}, nil
}

func (s *Server) handleListArtistCatalogues(ctx context.Context, input *GetArtistInput) (*ArtistCataloguesOutput, error) {
	if _, err := s.services.Artist.GetArtist(ctx, input.ID); err != nil {
		if errors.Is(err, store.ErrArtistNotFound) {
			return nil, huma.Error404NotFound("Artist not found", err)
		}
		s.logger.Error("Failed to get artist", "error", err, "artist_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to list catalogues", err)
	}

	catalogues, err := s.services.Catalogue.ListCataloguesByArtist(ctx, input.ID)
	if err != nil {
		s.logger.Error("Failed to list artist catalogues", "error", err, "artist_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to list catalogues", err)
	}

	resp := make([]CatalogueResponse, len(catalogues))
	for i, catalogue := range catalogues {
		resp[i] = mapCatalogueResponse(catalogue)
	}

	return &ArtistCataloguesOutput{Body: ArtistCataloguesResponse{Catalogues: resp}}, nil
}

// === Mappers ===

// mapArtistResponse converts a domain artist to an API response.
func mapArtistResponse(artist *domain.Artist) ArtistResponse {
	return ArtistResponse{
		ID:         artist.ID,
		Name:       artist.Name,
		Slug:       artist.Slug,
		Bio:        artist.Bio,
		Experience: string(artist.Experience),
		CreatedAt:  artist.CreatedAt,
		UpdatedAt:  artist.UpdatedAt,
	}
}
