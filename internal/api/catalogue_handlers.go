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

func (s *Server) registerCatalogueRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCatalogues",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalogues",
		Summary:     "List catalogues",
		Description: "Returns all catalogues on this server",
		Tags:        []string{"Catalogues"},
	}, s.handleListCatalogues)

	huma.Register(s.api, huma.Operation{
		OperationID: "createCatalogue",
		Method:      http.MethodPost,
		Path:        "/api/v1/catalogues",
		Summary:     "Create catalogue",
		Description: "Creates an empty catalogue for an artist",
		Tags:        []string{"Catalogues"},
	}, s.handleCreateCatalogue)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCatalogue",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalogues/{id}",
		Summary:     "Get catalogue",
		Description: "Returns a catalogue by ID",
		Tags:        []string{"Catalogues"},
	}, s.handleGetCatalogue)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCatalogue",
		Method:      http.MethodPatch,
		Path:        "/api/v1/catalogues/{id}",
		Summary:     "Update catalogue",
		Description: "Updates catalogue metadata",
		Tags:        []string{"Catalogues"},
	}, s.handleUpdateCatalogue)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteCatalogue",
		Method:      http.MethodDelete,
		Path:        "/api/v1/catalogues/{id}",
		Summary:     "Delete catalogue",
		Description: "Deletes a catalogue; the artworks themselves are untouched",
		Tags:        []string{"Catalogues"},
	}, s.handleDeleteCatalogue)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCatalogueArtworks",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalogues/{id}/artworks",
		Summary:     "List catalogue artworks",
		Description: "Returns the catalogue's artworks in display order",
		Tags:        []string{"Catalogues"},
	}, s.handleListCatalogueArtworks)

	huma.Register(s.api, huma.Operation{
		OperationID: "replaceCatalogueArtworks",
		Method:      http.MethodPut,
		Path:        "/api/v1/catalogues/{id}/artworks",
		Summary:     "Replace catalogue artworks",
		Description: "Replaces the full ordered membership of a catalogue",
		Tags:        []string{"Catalogues"},
	}, s.handleReplaceCatalogueArtworks)

	huma.Register(s.api, huma.Operation{
		OperationID: "addCatalogueArtwork",
		Method:      http.MethodPost,
		Path:        "/api/v1/catalogues/{id}/artworks",
		Summary:     "Add artwork to catalogue",
		Description: "Appends an artwork to the end of a catalogue",
		Tags:        []string{"Catalogues"},
	}, s.handleAddCatalogueArtwork)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeCatalogueArtwork",
		Method:      http.MethodDelete,
		Path:        "/api/v1/catalogues/{id}/artworks/{artworkId}",
		Summary:     "Remove artwork from catalogue",
		Description: "Removes an artwork from a catalogue, closing the position gap",
		Tags:        []string{"Catalogues"},
	}, s.handleRemoveCatalogueArtwork)

	huma.Register(s.api, huma.Operation{
		OperationID: "moveCatalogueArtwork",
		Method:      http.MethodPatch,
		Path:        "/api/v1/catalogues/{id}/artworks/{artworkId}",
		Summary:     "Move artwork within catalogue",
		Description: "Repositions an artwork; positions outside the valid range are clamped",
		Tags:        []string{"Catalogues"},
	}, s.handleMoveCatalogueArtwork)
}

// === DTOs ===

// CatalogueResponse is a catalogue in API responses.
type CatalogueResponse struct {
	ID          string    `json:"id" doc:"Catalogue ID"`
	ArtistID    string    `json:"artist_id" doc:"Owning artist ID"`
	Name        string    `json:"name" doc:"Catalogue name"`
	Description string    `json:"description,omitempty" doc:"Catalogue description"`
	Type        string    `json:"type" doc:"Catalogue type"`
	ArtworkIDs  []string  `json:"artwork_ids" doc:"Ordered artwork IDs; slice index is display position"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time `json:"updated_at" doc:"Last update time"`
}

// CatalogueOutput wraps a single catalogue response for Huma.
type CatalogueOutput struct {
	Body CatalogueResponse
}

// ListCataloguesResponse contains all catalogues on the server.
type ListCataloguesResponse struct {
	Catalogues []CatalogueResponse `json:"catalogues" doc:"All catalogues"`
}

// ListCataloguesOutput wraps the catalogue list for Huma.
type ListCataloguesOutput struct {
	Body ListCataloguesResponse
}

// CreateCatalogueRequest contains the catalogue creation request body.
type CreateCatalogueRequest struct {
	ArtistID    string `json:"artist_id" validate:"required" doc:"Owning artist ID"`
	Name        string `json:"name" validate:"required,min=1,max=200" doc:"Catalogue name"`
	Description string `json:"description,omitempty" validate:"max=5000" doc:"Catalogue description"`
	Type        string `json:"type" validate:"required,oneof=showcase portfolio exhibition collection series mixed" doc:"Catalogue type, drives peer size benchmarks"`
}

// CreateCatalogueInput wraps the creation request for Huma.
type CreateCatalogueInput struct {
	Body CreateCatalogueRequest
}

// GetCatalogueInput contains parameters for fetching a catalogue.
type GetCatalogueInput struct {
	ID string `path:"id" doc:"Catalogue ID"`
}

// UpdateCatalogueRequest contains optional catalogue metadata updates.
type UpdateCatalogueRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200" doc:"New name"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000" doc:"New description"`
	Type        *string `json:"type,omitempty" validate:"omitempty,oneof=showcase portfolio exhibition collection series mixed" doc:"New catalogue type"`
}

// UpdateCatalogueInput wraps the update request for Huma.
type UpdateCatalogueInput struct {
	ID   string `path:"id" doc:"Catalogue ID"`
	Body UpdateCatalogueRequest
}

// DeleteCatalogueInput contains parameters for deleting a catalogue.
type DeleteCatalogueInput struct {
	ID string `path:"id" doc:"Catalogue ID"`
}

// CatalogueArtworksResponse contains a catalogue's resolved artworks.
type CatalogueArtworksResponse struct {
	Artworks []ArtworkResponse `json:"artworks" doc:"Artworks in display order"`
}

// CatalogueArtworksOutput wraps the resolved artwork list for Huma.
type CatalogueArtworksOutput struct {
	Body CatalogueArtworksResponse
}

// ReplaceCatalogueArtworksRequest carries the full replacement order.
type ReplaceCatalogueArtworksRequest struct {
	ArtworkIDs []string `json:"artwork_ids" doc:"New ordered membership; an empty list clears the catalogue"`
}

// ReplaceCatalogueArtworksInput wraps the replacement request for Huma.
type ReplaceCatalogueArtworksInput struct {
	ID   string `path:"id" doc:"Catalogue ID"`
	Body ReplaceCatalogueArtworksRequest
}

// AddCatalogueArtworkRequest names the artwork to append.
type AddCatalogueArtworkRequest struct {
	ArtworkID string `json:"artwork_id" validate:"required" doc:"Artwork ID to append"`
}

// AddCatalogueArtworkInput wraps the add request for Huma.
type AddCatalogueArtworkInput struct {
	ID   string `path:"id" doc:"Catalogue ID"`
	Body AddCatalogueArtworkRequest
}

// RemoveCatalogueArtworkInput contains parameters for removing an
// artwork from a catalogue.
type RemoveCatalogueArtworkInput struct {
	ID        string `path:"id" doc:"Catalogue ID"`
	ArtworkID string `path:"artworkId" doc:"Artwork ID"`
}

// MoveCatalogueArtworkRequest carries the target position.
type MoveCatalogueArtworkRequest struct {
	Position int `json:"position" validate:"gte=0" doc:"Target position, clamped to the valid range"`
}

// MoveCatalogueArtworkInput wraps the move request for Huma.
type MoveCatalogueArtworkInput struct {
	ID        string `path:"id" doc:"Catalogue ID"`
	ArtworkID string `path:"artworkId" doc:"Artwork ID"`
	Body      MoveCatalogueArtworkRequest
}

// === Handlers ===

func (s *Server) handleListCatalogues(ctx context.Context, _ *struct{}) (*ListCataloguesOutput, error) {
	catalogues, err := s.services.Catalogue.ListCatalogues(ctx)
	if err != nil {
		s.logger.Error("Failed to list catalogues", "error", err)
		return nil, huma.Error500InternalServerError("Failed to list catalogues", err)
	}

	resp := make([]CatalogueResponse, len(catalogues))
	for i, catalogue := range catalogues {
		resp[i] = mapCatalogueResponse(catalogue)
	}

	return &ListCataloguesOutput{Body: ListCataloguesResponse{Catalogues: resp}}, nil
}

func (s *Server) handleCreateCatalogue(ctx context.Context, input *CreateCatalogueInput) (*CatalogueOutput, error) {
	catalogue, err := s.services.Catalogue.CreateCatalogue(ctx, service.CreateCatalogueRequest{
		ArtistID:    input.Body.ArtistID,
		Name:        input.Body.Name,
		Description: input.Body.Description,
		Type:        input.Body.Type,
	})
	if err != nil {
		if errors.Is(err, store.ErrArtistNotFound) {
			return nil, huma.Error404NotFound("Artist not found", err)
		}
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) {
			return nil, huma.NewError(domainErr.HTTPStatus(), domainErr.Message, err)
		}
		s.logger.Error("Failed to create catalogue", "error", err)
		return nil, huma.Error500InternalServerError("Failed to create catalogue", err)
	}

	return &CatalogueOutput{Body: mapCatalogueResponse(catalogue)}, nil
}

func (s *Server) handleGetCatalogue(ctx context.Context, input *GetCatalogueInput) (*CatalogueOutput, error) {
	catalogue, err := s.services.Catalogue.GetCatalogue(ctx, input.ID)
	if err != nil {
		if errors.Is(err, store.ErrCatalogueNotFound) {
			return nil, huma.Error404NotFound("Catalogue not found", err)
		}
		s.logger.Error("Failed to get catalogue", "error", err, "catalogue_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to get catalogue", err)
	}

	return &CatalogueOutput{Body: mapCatalogueResponse(catalogue)}, nil
}

func (s *Server) handleUpdateCatalogue(ctx context.Context, input *UpdateCatalogueInput) (*CatalogueOutput, error) {
	catalogue, err := s.services.Catalogue.UpdateCatalogue(ctx, input.ID, service.UpdateCatalogueRequest{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		Type:        input.Body.Type,
	})
	if err != nil {
		if errors.Is(err, store.ErrCatalogueNotFound) {
			return nil, huma.Error404NotFound("Catalogue not found", err)
		}
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) {
			return nil, huma.NewError(domainErr.HTTPStatus(), domainErr.Message, err)
		}
		s.logger.Error("Failed to update catalogue", "error", err, "catalogue_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to update catalogue", err)
	}

	return &CatalogueOutput{Body: mapCatalogueResponse(catalogue)}, nil
}

func (s *Server) handleDeleteCatalogue(ctx context.Context, input *DeleteCatalogueInput) (*MessageOutput, error) {
	if err := s.services.Catalogue.DeleteCatalogue(ctx, input.ID); err != nil {
		if errors.Is(err, store.ErrCatalogueNotFound) {
			return nil, huma.Error404NotFound("Catalogue not found", err)
		}
		s.logger.Error("Failed to delete catalogue", "error", err, "catalogue_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to delete catalogue", err)
	}

	return &MessageOutput{Body: MessageResponse{Message: "Catalogue deleted"}}, nil
}

func (s *Server) handleListCatalogueArtworks(ctx context.Context, input *GetCatalogueInput) (*CatalogueArtworksOutput, error) {
	artworks, err := s.services.Catalogue.CatalogueArtworks(ctx, input.ID)
	if err != nil {
		if errors.Is(err, store.ErrCatalogueNotFound) {
			return nil, huma.Error404NotFound("Catalogue not found", err)
		}
		s.logger.Error("Failed to list catalogue artworks", "error", err, "catalogue_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to list catalogue artworks", err)
	}

	resp := make([]ArtworkResponse, len(artworks))
	for i, artwork := range artworks {
		resp[i] = mapArtworkResponse(artwork)
	}

	return &CatalogueArtworksOutput{Body: CatalogueArtworksResponse{Artworks: resp}}, nil
}

func (s *Server) handleReplaceCatalogueArtworks(ctx context.Context, input *ReplaceCatalogueArtworksInput) (*CatalogueOutput, error) {
	catalogue, err := s.services.Catalogue.ReplaceArtworks(ctx, input.ID, input.Body.ArtworkIDs)
	if err != nil {
		if errors.Is(err, store.ErrCatalogueNotFound) {
			return nil, huma.Error404NotFound("Catalogue not found", err)
		}
		if errors.Is(err, store.ErrArtworkNotFound) {
			return nil, huma.Error404NotFound("Artwork not found", err)
		}
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) {
			return nil, huma.NewError(domainErr.HTTPStatus(), domainErr.Message, err)
		}
		s.logger.Error("Failed to replace catalogue artworks", "error", err, "catalogue_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to replace catalogue artworks", err)
	}

	return &CatalogueOutput{Body: mapCatalogueResponse(catalogue)}, nil
}

func (s *Server) handleAddCatalogueArtwork(ctx context.Context, input *AddCatalogueArtworkInput) (*CatalogueOutput, error) {
	catalogue, err := s.services.Catalogue.AddArtwork(ctx, input.ID, input.Body.ArtworkID)
	if err != nil {
		if errors.Is(err, store.ErrCatalogueNotFound) {
			return nil, huma.Error404NotFound("Catalogue not found", err)
		}
		if errors.Is(err, store.ErrArtworkNotFound) {
			return nil, huma.Error404NotFound("Artwork not found", err)
		}
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) {
			return nil, huma.NewError(domainErr.HTTPStatus(), domainErr.Message, err)
		}
		s.logger.Error("Failed to add artwork to catalogue",
			"error", err,
			"catalogue_id", input.ID,
			"artwork_id", input.Body.ArtworkID,
		)
		return nil, huma.Error500InternalServerError("Failed to add artwork to catalogue", err)
	}

	return &CatalogueOutput{Body: mapCatalogueResponse(catalogue)}, nil
}

func (s *Server) handleRemoveCatalogueArtwork(ctx context.Context, input *RemoveCatalogueArtworkInput) (*CatalogueOutput, error) {
	catalogue, err := s.services.Catalogue.RemoveArtwork(ctx, input.ID, input.ArtworkID)
	if err != nil {
		if errors.Is(err, store.ErrCatalogueNotFound) {
			return nil, huma.Error404NotFound("Catalogue not found", err)
		}
		if errors.Is(err, store.ErrArtworkNotInCatalogue) {
			return nil, huma.Error404NotFound("Artwork not in catalogue", err)
		}
		s.logger.Error("Failed to remove artwork from catalogue",
			"error", err,
			"catalogue_id", input.ID,
			"artwork_id", input.ArtworkID,
		)
		return nil, huma.Error500InternalServerError("Failed to remove artwork from catalogue", err)
	}

	return &CatalogueOutput{Body: mapCatalogueResponse(catalogue)}, nil
}

func (s *Server) handleMoveCatalogueArtwork(ctx context.Context, input *MoveCatalogueArtworkInput) (*CatalogueOutput, error) {
	catalogue, err := s.services.Catalogue.MoveArtwork(ctx, input.ID, input.ArtworkID, input.Body.Position)
	if err != nil {
		if errors.Is(err, store.ErrCatalogueNotFound) {
			return nil, huma.Error404NotFound("Catalogue not found", err)
		}
		if errors.Is(err, store.ErrArtworkNotInCatalogue) {
			return nil, huma.Error404NotFound("Artwork not in catalogue", err)
		}
		s.logger.Error("Failed to move artwork in catalogue",
			"error", err,
			"catalogue_id", input.ID,
			"artwork_id", input.ArtworkID,
		)
		return nil, huma.Error500InternalServerError("Failed to move artwork in catalogue", err)
	}

	return &CatalogueOutput{Body: mapCatalogueResponse(catalogue)}, nil
}

// === Mappers ===

// mapCatalogueResponse converts a domain catalogue to an API response.
func mapCatalogueResponse(catalogue *domain.Catalogue) CatalogueResponse {
	artworkIDs := catalogue.ArtworkIDs
	if artworkIDs == nil {
		artworkIDs = []string{}
	}

	return CatalogueResponse{
		ID:          catalogue.ID,
		ArtistID:    catalogue.ArtistID,
		Name:        catalogue.Name,
		Description: catalogue.Description,
		Type:        string(catalogue.Type),
		ArtworkIDs:  artworkIDs,
		CreatedAt:   catalogue.CreatedAt,
		UpdatedAt:   catalogue.UpdatedAt,
	}
}
