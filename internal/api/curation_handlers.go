package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/galleriaapp/galleria-server/internal/curation"
	domainerrors "github.com/galleriaapp/galleria-server/internal/errors"
	"github.com/galleriaapp/galleria-server/internal/service"
	"github.com/galleriaapp/galleria-server/internal/store"
)

func (s *Server) registerCurationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCatalogueAnalysis",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalogues/{id}/analysis",
		Summary:     "Analyze catalogue",
		Description: "Returns the catalogue's curation analysis. Serves the stored result when one exists unless fresh=true forces a recompute.",
		Tags:        []string{"Curation"},
	}, s.handleGetCatalogueAnalysis)

	huma.Register(s.api, huma.Operation{
		OperationID: "autoCurateCatalogue",
		Method:      http.MethodPost,
		Path:        "/api/v1/catalogues/{id}/curation",
		Summary:     "Auto-curate catalogue",
		Description: "Generates ranked curation recommendations without mutating the catalogue",
		Tags:        []string{"Curation"},
	}, s.handleAutoCurateCatalogue)

	huma.Register(s.api, huma.Operation{
		OperationID: "analyzeArtistCatalogues",
		Method:      http.MethodGet,
		Path:        "/api/v1/artists/{id}/analyses",
		Summary:     "Analyze artist catalogues",
		Description: "Analyzes every catalogue an artist owns; one failed catalogue does not abort the rest",
		Tags:        []string{"Curation"},
	}, s.handleAnalyzeArtistCatalogues)
}

// === DTOs ===

// AnalysisResponse pairs an analysis with when it was computed.
type AnalysisResponse struct {
	GeneratedAt time.Time          `json:"generated_at" doc:"When this analysis was computed"`
	Analysis    *curation.Analysis `json:"analysis" doc:"Score, gaps, balance, and recommendations"`
}

// AnalysisOutput wraps the analysis response for Huma.
type AnalysisOutput struct {
	Body AnalysisResponse
}

// GetCatalogueAnalysisInput contains parameters for the analysis fetch.
type GetCatalogueAnalysisInput struct {
	ID    string `path:"id" doc:"Catalogue ID"`
	Fresh bool   `query:"fresh" doc:"Recompute even when a stored analysis exists"`
}

// AutoCurateRequest selects which recommendation families to generate.
// Omitted flags default to enabled.
type AutoCurateRequest struct {
	FillGaps            *bool `json:"fill_gaps,omitempty" doc:"Generate gap-filling recommendations, defaults to true"`
	BalanceDistribution *bool `json:"balance_distribution,omitempty" doc:"Generate rebalancing recommendations, defaults to true"`
	MaxArtworks         int   `json:"max_artworks,omitempty" validate:"gte=0" doc:"Cap the recommended catalogue size, 0 means no cap"`
}

// AutoCurateInput wraps the auto-curation request for Huma.
type AutoCurateInput struct {
	ID   string `path:"id" doc:"Catalogue ID"`
	Body AutoCurateRequest
}

// AutoCurateResponse contains the generated recommendations.
type AutoCurateResponse struct {
	CatalogueID     string                    `json:"catalogue_id" doc:"Catalogue the recommendations apply to"`
	Recommendations []curation.Recommendation `json:"recommendations" doc:"Ranked recommendations, highest impact first"`
}

// AutoCurateOutput wraps the recommendations for Huma.
type AutoCurateOutput struct {
	Body AutoCurateResponse
}

// ArtistAnalysesResponse contains one analysis outcome per catalogue.
type ArtistAnalysesResponse struct {
	Analyses []service.ArtistAnalysis `json:"analyses" doc:"One entry per catalogue, in catalogue order"`
}

// ArtistAnalysesOutput wraps the batch result for Huma.
type ArtistAnalysesOutput struct {
	Body ArtistAnalysesResponse
}

// === Handlers ===

func (s *Server) handleGetCatalogueAnalysis(ctx context.Context, input *GetCatalogueAnalysisInput) (*AnalysisOutput, error) {
	if !input.Fresh {
		stored, err := s.services.Curation.LatestAnalysis(ctx, input.ID)
		if err != nil {
			s.logger.Warn("failed to load stored analysis",
				"catalogue_id", input.ID,
				"error", err,
			)
		} else if stored != nil {
			return &AnalysisOutput{Body: AnalysisResponse{
				GeneratedAt: stored.GeneratedAt,
				Analysis:    stored.Analysis,
			}}, nil
		}
	}

	analysis, err := s.services.Curation.AnalyzeCatalogue(ctx, input.ID)
	if err != nil {
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) {
			return nil, huma.NewError(domainErr.HTTPStatus(), domainErr.Message, err)
		}
		s.logger.Error("Failed to analyze catalogue", "error", err, "catalogue_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to analyze catalogue", err)
	}

	return &AnalysisOutput{Body: AnalysisResponse{
		GeneratedAt: time.Now(),
		Analysis:    analysis,
	}}, nil
}

func (s *Server) handleAutoCurateCatalogue(ctx context.Context, input *AutoCurateInput) (*AutoCurateOutput, error) {
	opts := curation.DefaultOptions()
	if input.Body.FillGaps != nil {
		opts.FillGaps = *input.Body.FillGaps
	}
	if input.Body.BalanceDistribution != nil {
		opts.BalanceDistribution = *input.Body.BalanceDistribution
	}
	if input.Body.MaxArtworks > 0 {
		opts.MaxArtworks = input.Body.MaxArtworks
	}

	recommendations, err := s.services.Curation.AutoCurate(ctx, input.ID, opts)
	if err != nil {
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) {
			return nil, huma.NewError(domainErr.HTTPStatus(), domainErr.Message, err)
		}
		s.logger.Error("Failed to auto-curate catalogue", "error", err, "catalogue_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to auto-curate catalogue", err)
	}

	if recommendations == nil {
		recommendations = []curation.Recommendation{}
	}

	return &AutoCurateOutput{Body: AutoCurateResponse{
		CatalogueID:     input.ID,
		Recommendations: recommendations,
	}}, nil
}

func (s *Server) handleAnalyzeArtistCatalogues(ctx context.Context, input *GetArtistInput) (*ArtistAnalysesOutput, error) {
	analyses, err := s.services.Curation.AnalyzeArtistCatalogues(ctx, input.ID)
	if err != nil {
		if errors.Is(err, store.ErrArtistNotFound) {
			return nil, huma.Error404NotFound("Artist not found", err)
		}
		s.logger.Error("Failed to analyze artist catalogues", "error", err, "artist_id", input.ID)
		return nil, huma.Error500InternalServerError("Failed to analyze artist catalogues", err)
	}

	if analyses == nil {
		analyses = []service.ArtistAnalysis{}
	}

	return &ArtistAnalysesOutput{Body: ArtistAnalysesResponse{Analyses: analyses}}, nil
}
