package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/galleriaapp/galleria-server/internal/domain"
	domainerrors "github.com/galleriaapp/galleria-server/internal/errors"
	"github.com/galleriaapp/galleria-server/internal/http/response"
	"github.com/galleriaapp/galleria-server/internal/media/images"
	"github.com/galleriaapp/galleria-server/internal/service"
	"github.com/galleriaapp/galleria-server/internal/store"
)

func (s *Server) registerArtworkRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listArtworks",
		Method:      http.MethodGet,
		Path:        "/api/v1/artworks",
		Summary:     "List artworks",
		Description: "Returns a page of artworks across all artists",
		Tags:        []string{"Artworks"},
	}, s.handleListArtworks)

	huma.Register(s.api, huma.Operation{
		OperationID: "createArtwork",
		Method:      http.MethodPost,
		Path:        "/api/v1/artworks",
		Summary:     "Create artwork",
		Description: "Catalogues a new artwork; facet values are normalized to the canonical vocabulary",
		Tags:        []string{"Artworks"},
	}, s.handleCreateArtwork)

	huma.Register(s.api, huma.Operation{
		OperationID: "getArtwork",
		Method:      http.MethodGet,
		Path:        "/api/v1/artworks/{id}",
		Summary:     "Get artwork",
		Description: "Returns an artwork by ID",
		Tags:        []string{"Artworks"},
	}, s.handleGetArtwork)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateArtwork",
		Method:      http.MethodPatch,
		Path:        "/api/v1/artworks/{id}",
		Summary:     "Update artwork",
		Description: "Updates artwork fields; changing the dimensions recomputes the size category",
		Tags:        []string{"Artworks"},
	}, s.handleUpdateArtwork)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteArtwork",
		Method:      http.MethodDelete,
		Path:        "/api/v1/artworks/{id}",
		Summary:     "Delete artwork",
		Description: "Deletes an artwork and removes it from its artist's catalogues",
		Tags:        []string{"Artworks"},
	}, s.handleDeleteArtwork)

	huma.Register(s.api, huma.Operation{
		OperationID: "recordEngagement",
		Method:      http.MethodPost,
		Path:        "/api/v1/artworks/{id}/engagement",
		Summary:     "Record engagement",
		Description: "Increments one of the artwork's engagement counters",
		Tags:        []string{"Artworks"},
	}, s.handleRecordEngagement)

	huma.Register(s.api, huma.Operation{
		OperationID: "getArtworkImage",
		Method:      http.MethodGet,
		Path:        "/api/v1/artworks/{id}/image",
		Summary:     "Get artwork image",
		Description: "Redirects to the stored image for an artwork",
		Tags:        []string{"Artworks"},
	}, s.handleGetArtworkImage)

	huma.Register(s.api, huma.Operation{
		OperationID:  "uploadArtworkImage",
		Method:       http.MethodPost,
		Path:         "/api/v1/artworks/{id}/image",
		Summary:      "Upload artwork image",
		Description:  "Uploads an image for an artwork; display and thumbnail variants plus a blurhash are derived",
		Tags:         []string{"Artworks"},
		MaxBodyBytes: MaxUploadSize,
	}, s.handleUploadArtworkImage)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteArtworkImage",
		Method:      http.MethodDelete,
		Path:        "/api/v1/artworks/{id}/image",
		Summary:     "Delete artwork image",
		Description: "Removes every stored image variant and clears the artwork's image fields",
		Tags:        []string{"Artworks"},
	}, s.handleDeleteArtworkImage)
}

// === DTOs ===

// ArtworkResponse is an artwork in API responses.
type ArtworkResponse struct {
	ID           string    `json:"id" doc:"Artwork ID"`
	ArtistID     string    `json:"artist_id" doc:"Owning artist ID"`
	Title        string    `json:"title" doc:"Artwork title"`
	Description  string    `json:"description,omitempty" doc:"Description in markdown"`
	Medium       string    `json:"medium,omitempty" doc:"Canonical medium"`
	Style        string    `json:"style,omitempty" doc:"Canonical style"`
	Price        *float64  `json:"price,omitempty" doc:"Listed price"`
	Colors       []string  `json:"colors,omitempty" doc:"Dominant colors"`
	Dimensions   string    `json:"dimensions,omitempty" doc:"Dimensions as entered"`
	SizeCategory string    `json:"size_category,omitempty" doc:"Size category derived from the dimensions"`
	ImagePath    string    `json:"image_path,omitempty" doc:"Stored display image path"`
	BlurHash     string    `json:"blur_hash,omitempty" doc:"BlurHash placeholder"`
	Views        int64     `json:"views" doc:"View count"`
	Likes        int64     `json:"likes" doc:"Like count"`
	Inquiries    int64     `json:"inquiries" doc:"Inquiry count"`
	Archived     bool      `json:"archived" doc:"Archived artworks never enter the curation pool"`
	CreatedAt    time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time `json:"updated_at" doc:"Last update time"`
}

// ArtworkOutput wraps a single artwork response for Huma.
type ArtworkOutput struct {
	Body ArtworkResponse
}

// ListArtworksInput contains pagination parameters for the artwork list.
type ListArtworksInput struct {
	Limit  int    `query:"limit" doc:"Page size, defaults to 100 with a maximum of 500"`
	Cursor string `query:"cursor" doc:"Opaque cursor from a previous page"`
}

// ListArtworksResponse is one page of artworks.
type ListArtworksResponse struct {
	Artworks   []ArtworkResponse `json:"artworks" doc:"Page of artworks"`
	NextCursor string            `json:"next_cursor,omitempty" doc:"Cursor for the next page"`
	HasMore    bool              `json:"has_more" doc:"Whether more pages exist"`
}

// ListArtworksOutput wraps the artwork page for Huma.
type ListArtworksOutput struct {
	Body ListArtworksResponse
}

// CreateArtworkRequest contains the artwork creation request body.
type CreateArtworkRequest struct {
	ArtistID    string   `json:"artist_id" validate:"required" doc:"Owning artist ID"`
	Title       string   `json:"title" validate:"required,min=1,max=300" doc:"Artwork title"`
	Description string   `json:"description,omitempty" validate:"max=20000" doc:"Description, HTML is converted to markdown"`
	Medium      string   `json:"medium,omitempty" validate:"max=100" doc:"Medium, normalized to the canonical vocabulary"`
	Style       string   `json:"style,omitempty" validate:"max=100" doc:"Style, normalized to the canonical vocabulary"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0" doc:"Listed price"`
	Colors      []string `json:"colors,omitempty" validate:"max=12,dive,max=50" doc:"Dominant colors"`
	Dimensions  string   `json:"dimensions,omitempty" validate:"max=100" doc:"Dimensions as width x height"`
}

// CreateArtworkInput wraps the creation request for Huma.
type CreateArtworkInput struct {
	Body CreateArtworkRequest
}

// GetArtworkInput contains parameters for fetching an artwork.
type GetArtworkInput struct {
	ID string `path:"id" doc:"Artwork ID"`
}

// UpdateArtworkRequest contains optional artwork field updates.
type UpdateArtworkRequest struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,min=1,max=300" doc:"New title"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=20000" doc:"New description"`
	Medium      *string   `json:"medium,omitempty" validate:"omitempty,max=100" doc:"New medium"`
	Style       *string   `json:"style,omitempty" validate:"omitempty,max=100" doc:"New style"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,gte=0" doc:"New price"`
	Colors      *[]string `json:"colors,omitempty" validate:"omitempty,max=12,dive,max=50" doc:"New color list"`
	Dimensions  *string   `json:"dimensions,omitempty" validate:"omitempty,max=100" doc:"New dimensions"`
	Archived    *bool     `json:"archived,omitempty" doc:"Archive or restore the artwork"`
}

// UpdateArtworkInput wraps the update request for Huma.
type UpdateArtworkInput struct {
	ID   string `path:"id" doc:"Artwork ID"`
	Body UpdateArtworkRequest
}

// DeleteArtworkInput contains parameters for deleting an artwork.
type DeleteArtworkInput struct {
	ID string `path:"id" doc:"Artwork ID"`
}

// EngagementRequest names the counter to increment.
type EngagementRequest struct {
	Type string `json:"type" validate:"required,oneof=view like inquiry" doc:"Engagement kind: view, like, or inquiry"`
}

// RecordEngagementInput wraps the engagement request for Huma.
type RecordEngagementInput struct {
	ID   string `path:"id" doc:"Artwork ID"`
	Body EngagementRequest
}

// GetArtworkImageInput contains parameters for the image redirect.
type GetArtworkImageInput struct {
	ID      string `path:"id" doc:"Artwork ID"`
	Variant string `query:"variant" doc:"Image variant: display or thumb, defaults to display"`
}

// ImageRedirectOutput redirects to the raw image URL.
type ImageRedirectOutput struct {
	Status   int
	Location string `header:"Location"`
}

func (o *ImageRedirectOutput) StatusCode() int {
	return o.Status
}

// UploadArtworkImageInput carries the raw image bytes.
type UploadArtworkImageInput struct {
	ID      string `path:"id" doc:"Artwork ID"`
	RawBody []byte
}

// DeleteArtworkImageInput contains parameters for deleting an image.
type DeleteArtworkImageInput struct {
	ID string `path:"id" doc:"Artwork ID"`
}

// === Handlers ===

func (s *Server) handleListArtworks(ctx context.Context, input *ListArtworksInput) (*ListArtworksOutput, error) {
	page, err := s.services.Artwork.ListArtworks(ctx, store.PaginationParams{
		Limit:  input.Limit,
		Cursor: input.Cursor,
	})
	if err != nil {
		if errors.Is(err, store.ErrInvalidCursor) {
			return nil, huma.Error400BadRequest("Invalid pagination cursor", err)
		}
		s.logger.Error("Failed to list artworks", "error", err)
		return nil, huma.Error500InternalServerError("Failed to list artworks", err)
	}

	resp := make([]ArtworkResponse, len(page.Items))
	for i, artwork := range page.Items {
		resp[i] = mapArtworkResponse(artwork)
	}

	return &ListArtworksOutput{Body: ListArtworksResponse{
		Artworks:   resp,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}}, nil
}

func (s *Server) handleCreateArtwork(ctx context.Context, input *CreateArtworkInput) (*ArtworkOutput, error) {
	artwork, err := s.services.Artwork.CreateArtwork(ctx, service.CreateArtworkRequest{
		ArtistID:    input.Body.ArtistID,
		Title:       input.Body.Title,
		Description: input.Body.Description,
		Medium:      input.Body.Medium,
		Style:       input.Body.Style,
		Price:       input.Body.Price,
		Colors:      input.Body.Colors,
		Dimensions:  input.Body.Dimensions,
	})
	if err != nil {
		if errors.Is(err, store.ErrArtistNotFound) {
			return nil, huma.Error404NotFound("Artist not found", err)
		}
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) {
			return nil, huma.NewError(domainErr.HTTPStatus(), domainErr.Message, err)
		}
		s.logger.Error("Failed to create artwork", "error", err)
		return nil, huma.Error500InternalServerError("Failed to create artwork", err)
	}

	return &ArtworkOutput{Body: mapArtworkResponse(artwork)}, nil
}

func (s *Server) handleGetArtwork(ctx context.Context, input *GetArtworkInput) (*ArtworkOutput, error) {
	artwork, err := s.services.Artwork.GetArtwork(ctx, input.ID)
	if err != nil {
		if errors.Is(err, store.ErrArtworkNotFound) {
			return nil, huma.Error404NotFound("Artwork not found", err)
		}
		s.logger.Error("Failed to get artwork", "error", err, "artwork_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to get artwork", err)
	}

	return &ArtworkOutput{Body: mapArtworkResponse(artwork)}, nil
}

func (s *Server) handleUpdateArtwork(ctx context.Context, input *UpdateArtworkInput) (*ArtworkOutput, error) {
	artwork, err := s.services.Artwork.UpdateArtwork(ctx, input.ID, service.UpdateArtworkRequest{
		Title:       input.Body.Title,
		Description: input.Body.Description,
		Medium:      input.Body.Medium,
		Style:       input.Body.Style,
		Price:       input.Body.Price,
		Colors:      input.Body.Colors,
		Dimensions:  input.Body.Dimensions,
		Archived:    input.Body.Archived,
	})
	if err != nil {
		if errors.Is(err, store.ErrArtworkNotFound) {
			return nil, huma.Error404NotFound("Artwork not found", err)
		}
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) {
			return nil, huma.NewError(domainErr.HTTPStatus(), domainErr.Message, err)
		}
		s.logger.Error("Failed to update artwork", "error", err, "artwork_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to update artwork", err)
	}

	return &ArtworkOutput{Body: mapArtworkResponse(artwork)}, nil
}

func (s *Server) handleDeleteArtwork(ctx context.Context, input *DeleteArtworkInput) (*MessageOutput, error) {
	if err := s.services.Artwork.DeleteArtwork(ctx, input.ID); err != nil {
		if errors.Is(err, store.ErrArtworkNotFound) {
			return nil, huma.Error404NotFound("Artwork not found", err)
		}
		s.logger.Error("Failed to delete artwork", "error", err, "artwork_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to delete artwork", err)
	}

	// Image files are cleaned up best-effort; the record is already gone.
	if err := s.services.Image.DeleteImages(ctx, input.ID); err != nil {
		s.logger.Warn("failed to delete artwork images",
			"artwork_id", input.ID,
			"error", err,
		)
	}

	return &MessageOutput{Body: MessageResponse{Message: "Artwork deleted"}}, nil
}

func (s *Server) handleRecordEngagement(ctx context.Context, input *RecordEngagementInput) (*ArtworkOutput, error) {
	artwork, err := s.services.Artwork.RecordEngagement(ctx, input.ID, domain.EngagementKind(input.Body.Type))
	if err != nil {
		if errors.Is(err, store.ErrArtworkNotFound) {
			return nil, huma.Error404NotFound("Artwork not found", err)
		}
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) {
			return nil, huma.NewError(domainErr.HTTPStatus(), domainErr.Message, err)
		}
		s.logger.Error("Failed to record engagement", "error", err, "artwork_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to record engagement", err)
	}

	return &ArtworkOutput{Body: mapArtworkResponse(artwork)}, nil
}

func (s *Server) handleGetArtworkImage(ctx context.Context, input *GetArtworkImageInput) (*ImageRedirectOutput, error) {
	artwork, err := s.services.Artwork.GetArtwork(ctx, input.ID)
	if err != nil {
		if errors.Is(err, store.ErrArtworkNotFound) {
			return nil, huma.Error404NotFound("Artwork not found", err)
		}
		s.logger.Error("Failed to get artwork", "error", err, "artwork_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to get image", err)
	}

	if artwork.ImagePath == "" {
		return nil, huma.Error404NotFound("Artwork has no image")
	}

	variant := input.Variant
	if variant == "" {
		variant = images.VariantDisplay
	}
	if !images.ValidVariant(variant) {
		return nil, huma.Error400BadRequest(fmt.Sprintf("Unknown image variant %q", variant))
	}

	return &ImageRedirectOutput{
		Status:   http.StatusTemporaryRedirect,
		Location: "/" + images.RelativePath(input.ID, variant),
	}, nil
}

func (s *Server) handleUploadArtworkImage(ctx context.Context, input *UploadArtworkImageInput) (*ArtworkOutput, error) {
	if len(input.RawBody) == 0 {
		return nil, huma.Error400BadRequest("Image data required")
	}

	artwork, err := s.services.Image.UploadImage(ctx, input.ID, input.RawBody)
	if err != nil {
		if errors.Is(err, store.ErrArtworkNotFound) {
			return nil, huma.Error404NotFound("Artwork not found", err)
		}
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) {
			return nil, huma.NewError(domainErr.HTTPStatus(), domainErr.Message, err)
		}
		s.logger.Error("Failed to upload artwork image", "error", err, "artwork_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to upload image", err)
	}

	return &ArtworkOutput{Body: mapArtworkResponse(artwork)}, nil
}

func (s *Server) handleDeleteArtworkImage(ctx context.Context, input *DeleteArtworkImageInput) (*MessageOutput, error) {
	artwork, err := s.services.Artwork.GetArtwork(ctx, input.ID)
	if err != nil {
		if errors.Is(err, store.ErrArtworkNotFound) {
			return nil, huma.Error404NotFound("Artwork not found", err)
		}
		s.logger.Error("Failed to get artwork", "error", err, "artwork_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to delete image", err)
	}

	if err := s.services.Image.DeleteImages(ctx, input.ID); err != nil {
		s.logger.Warn("failed to delete image files",
			"artwork_id", input.ID,
			"error", err,
		)
	}

	if artwork.ImagePath != "" {
		if _, err := s.services.Artwork.SetArtworkImage(ctx, input.ID, "", ""); err != nil {
			s.logger.Error("Failed to clear artwork image", "error", err, "artwork_id", input.ID)
			return nil, huma.Error500InternalServerError("Failed to delete image", err)
		}
	}

	return &MessageOutput{Body: MessageResponse{Message: "Image deleted"}}, nil
}

// handleServeArtworkImage streams stored image bytes directly through
// chi. ETag revalidation keeps gallery grids cheap to refresh.
func (s *Server) handleServeArtworkImage(w http.ResponseWriter, r *http.Request) {
	artworkID := chi.URLParam(r, "id")
	variant := strings.TrimSuffix(chi.URLParam(r, "file"), ".jpg")

	if artworkID == "" || !images.ValidVariant(variant) {
		response.NotFound(w, "image not found", s.logger)
		return
	}

	data, etag, err := s.services.Image.Image(r.Context(), artworkID, variant)
	if err != nil {
		response.NotFound(w, "image not found", s.logger)
		return
	}

	quoted := `"` + etag + `"`
	if match := r.Header.Get("If-None-Match"); match != "" && match == quoted {
		w.Header().Set("ETag", quoted)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", CacheOneWeek)
	w.Header().Set("ETag", quoted)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("failed to write image response", "artwork_id", artworkID, "error", err)
	}
}

// === Mappers ===

// mapArtworkResponse converts a domain artwork to an API response.
func mapArtworkResponse(artwork *domain.Artwork) ArtworkResponse {
	return ArtworkResponse{
		ID:           artwork.ID,
		ArtistID:     artwork.ArtistID,
		Title:        artwork.Title,
		Description:  artwork.Description,
		Medium:       artwork.Medium,
		Style:        artwork.Style,
		Price:        artwork.Price,
		Colors:       artwork.Colors,
		Dimensions:   artwork.Dimensions,
		SizeCategory: artwork.SizeCategory,
		ImagePath:    artwork.ImagePath,
		BlurHash:     artwork.BlurHash,
		Views:        artwork.Views,
		Likes:        artwork.Likes,
		Inquiries:    artwork.Inquiries,
		Archived:     artwork.Archived,
		CreatedAt:    artwork.CreatedAt,
		UpdatedAt:    artwork.UpdatedAt,
	}
}
