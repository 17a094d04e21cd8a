package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/galleriaapp/galleria-server/internal/curation"
	"github.com/galleriaapp/galleria-server/internal/service"
)

func (s *Server) registerMarketRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getMarketDistribution",
		Method:      http.MethodGet,
		Path:        "/api/v1/market/distribution",
		Summary:     "Get market distribution",
		Description: "Returns the ideal facet distribution the engine compares catalogues against",
		Tags:        []string{"Market"},
	}, s.handleGetMarketDistribution)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMarketStatus",
		Method:      http.MethodGet,
		Path:        "/api/v1/market/status",
		Summary:     "Get market status",
		Description: "Reports snapshot availability, load ID, and reload progress",
		Tags:        []string{"Market"},
	}, s.handleGetMarketStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "reloadMarketSnapshot",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/market/reload",
		Summary:     "Reload market snapshot",
		Description: "Swaps in the current snapshot file and invalidates derived caches",
		Tags:        []string{"Market"},
	}, s.handleReloadMarketSnapshot)
}

// === DTOs ===

// DistributionOutput wraps the ideal distribution for Huma.
type DistributionOutput struct {
	Body curation.Distribution
}

// MarketStatusOutput wraps the snapshot status for Huma.
type MarketStatusOutput struct {
	Body service.MarketStatus
}

// MarketReloadResponse reports a completed snapshot reload.
type MarketReloadResponse struct {
	LoadID  string `json:"load_id" doc:"Load ID of the freshly loaded snapshot"`
	Message string `json:"message" doc:"Status message"`
}

// MarketReloadOutput wraps the reload result for Huma.
type MarketReloadOutput struct {
	Body MarketReloadResponse
}

// === Handlers ===

func (s *Server) handleGetMarketDistribution(ctx context.Context, _ *struct{}) (*DistributionOutput, error) {
	distribution, err := s.services.Market.Distribution(ctx)
	if err != nil {
		s.logger.Error("Failed to get market distribution", "error", err)
		return nil, huma.Error500InternalServerError("Failed to get market distribution", err)
	}

	return &DistributionOutput{Body: distribution}, nil
}

func (s *Server) handleGetMarketStatus(_ context.Context, _ *struct{}) (*MarketStatusOutput, error) {
	return &MarketStatusOutput{Body: s.services.Market.Status()}, nil
}

func (s *Server) handleReloadMarketSnapshot(ctx context.Context, _ *struct{}) (*MarketReloadOutput, error) {
	loadID, err := s.services.Market.Reload(ctx)
	if err != nil {
		s.logger.Error("Failed to reload market snapshot", "error", err)
		return nil, huma.Error503ServiceUnavailable("Market snapshot unavailable", err)
	}

	return &MarketReloadOutput{Body: MarketReloadResponse{
		LoadID:  loadID,
		Message: "Market snapshot reloaded",
	}}, nil
}
